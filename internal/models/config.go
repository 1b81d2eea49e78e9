package models

import (
	"fmt"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

type CloudStorageConfig struct {
	Provider   string `mapstructure:"provider"`
	Region     string `mapstructure:"region"`
	BucketName string `mapstructure:"bucket_name"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

func (d DatabaseConfig) ConnString() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

type Config struct {
	Seed            int           `mapstructure:"seed"`
	Days            int           `mapstructure:"days"`
	DayDuration     time.Duration `mapstructure:"day_duration"`
	InitialVehicles int           `mapstructure:"initial_vehicles"`
	InitialRiders   int           `mapstructure:"initial_riders"`

	// Requests each rider actor issues over the whole run, chosen uniformly
	// from the inclusive range.
	MinRequestsPerRider int `mapstructure:"min_requests_per_rider"`
	MaxRequestsPerRider int `mapstructure:"max_requests_per_rider"`

	SearchRadiusKm float64 `mapstructure:"search_radius_km"`
	FarePerKm      float64 `mapstructure:"fare_per_km"`
	// FarePerMeter takes priority over FarePerKm for all trips when set.
	FarePerMeter            *float64 `mapstructure:"fare_per_meter"`
	CommissionFraction      float64  `mapstructure:"commission_fraction"`
	RatingMin               int      `mapstructure:"rating_min"`
	RatingMax               int      `mapstructure:"rating_max"`
	InitialRatingAverage    float64  `mapstructure:"initial_rating_average"`
	DailyTrackingSampleSize int      `mapstructure:"daily_tracking_sample_size"`
	VehicleSpeedKmh         float64  `mapstructure:"vehicle_speed_kmh"`
	// AccelerationFactor scales down simulated transit time; 60 means one
	// real second stands in for a simulated minute.
	AccelerationFactor float64 `mapstructure:"acceleration_factor"`

	CityName    string  `mapstructure:"city_name"`
	CityLat     float64 `mapstructure:"city_latitude"`
	CityLon     float64 `mapstructure:"city_longitude"`
	UrbanRadius float64 `mapstructure:"urban_radius"`

	// Registration files produced by the affiliation front end. When set,
	// entities come from these instead of the factories.
	VehiclesFile string `mapstructure:"vehicles_file"`
	RidersFile   string `mapstructure:"riders_file"`

	OutputPath        string             `mapstructure:"output_path"`
	OutputFolder      string             `mapstructure:"output_folder"`
	OutputFormat      string             `mapstructure:"output_format"`
	OutputDestination string             `mapstructure:"output_destination"`
	DataDir           string             `mapstructure:"data_dir"`
	CloudStorage      CloudStorageConfig `mapstructure:"cloud_storage"`

	KafkaEnabled     bool   `mapstructure:"kafka_enabled"`
	KafkaBrokerList  string `mapstructure:"kafka_broker_list"`
	SessionTimeoutMs int    `mapstructure:"session_timeout_ms"`

	PostgresEnabled bool           `mapstructure:"postgres_enabled"`
	Database        DatabaseConfig `mapstructure:"database"`
}

// LoadConfig initializes and reads the configuration using Viper
func LoadConfig(cfgFile string) (*Config, error) {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath("examples")
		viper.SetConfigName("config")
		viper.SetConfigType("json")
	}

	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	decoderConfigOption := viper.DecoderConfigOption(func(config *mapstructure.DecoderConfig) {
		config.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			config.DecodeHook,
			mapstructure.StringToTimeDurationHookFunc(),
		)
	})
	if err := viper.Unmarshal(&config, decoderConfigOption); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %w", err)
	}

	// a zero per-meter rate (the flag default) means the per-km rate applies
	if config.FarePerMeter != nil && *config.FarePerMeter == 0 {
		config.FarePerMeter = nil
	}

	return &config, nil
}

func setDefaults() {
	viper.SetDefault("days", 2)
	viper.SetDefault("initial_vehicles", 10)
	viper.SetDefault("initial_riders", 20)
	viper.SetDefault("day_duration", "6s")
	viper.SetDefault("min_requests_per_rider", 1)
	viper.SetDefault("max_requests_per_rider", 3)
	viper.SetDefault("search_radius_km", 2.0)
	viper.SetDefault("fare_per_km", 2.5)
	viper.SetDefault("commission_fraction", 0.20)
	viper.SetDefault("rating_min", 3)
	viper.SetDefault("rating_max", 5)
	viper.SetDefault("initial_rating_average", 5.0)
	viper.SetDefault("daily_tracking_sample_size", 5)
	viper.SetDefault("vehicle_speed_kmh", 60.0)
	viper.SetDefault("acceleration_factor", 1000.0)
	viper.SetDefault("city_name", "Madrid")
	viper.SetDefault("city_latitude", 40.4168)
	viper.SetDefault("city_longitude", -3.7034)
	viper.SetDefault("urban_radius", 5.0)
	viper.SetDefault("data_dir", "data")
	viper.SetDefault("output_destination", "local")
}

// Validate rejects configurations the dispatch core cannot operate under.
func (cfg *Config) Validate() error {
	if cfg.SearchRadiusKm <= 0 {
		return fmt.Errorf("search radius must be positive, got %v", cfg.SearchRadiusKm)
	}
	if cfg.FarePerKm <= 0 {
		return fmt.Errorf("fare per km must be positive, got %v", cfg.FarePerKm)
	}
	if cfg.FarePerMeter != nil && *cfg.FarePerMeter <= 0 {
		return fmt.Errorf("fare per meter must be positive when set, got %v", *cfg.FarePerMeter)
	}
	if cfg.CommissionFraction < 0 || cfg.CommissionFraction > 1 {
		return fmt.Errorf("commission fraction must be within [0,1], got %v", cfg.CommissionFraction)
	}
	if cfg.RatingMin > cfg.RatingMax {
		return fmt.Errorf("rating bounds inverted: min %d > max %d", cfg.RatingMin, cfg.RatingMax)
	}
	if cfg.DailyTrackingSampleSize < 0 {
		return fmt.Errorf("daily tracking sample size must not be negative, got %d", cfg.DailyTrackingSampleSize)
	}
	if cfg.Days <= 0 {
		return fmt.Errorf("days must be positive, got %d", cfg.Days)
	}
	if cfg.AccelerationFactor <= 0 {
		return fmt.Errorf("acceleration factor must be positive, got %v", cfg.AccelerationFactor)
	}
	if cfg.MinRequestsPerRider < 1 || cfg.MaxRequestsPerRider < cfg.MinRequestsPerRider {
		return fmt.Errorf("requests per rider range invalid: [%d,%d]", cfg.MinRequestsPerRider, cfg.MaxRequestsPerRider)
	}
	return nil
}
