package cmd

import (
	"fmt"
	"os"

	"github.com/ardillaCHIKI/App2-taxi/internal/models"
	"github.com/ardillaCHIKI/App2-taxi/internal/simulator"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "taxisim",
	Short: "Simulates a concurrent ride-dispatch operator",
	Long:  `taxisim is a CLI tool that simulates a ride-dispatch operator: concurrent rider actors request trips, a dispatcher reserves the nearest available vehicle, completed trips accrue fares and ratings, and a day controller settles earnings once all in-flight trips have drained.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := models.LoadConfig(cfgFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
		if err := cfg.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "Invalid config: %v\n", err)
			os.Exit(1)
		}

		sim := simulator.NewSimulator(cfg)
		sim.Run()
	},
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.taxisim.yaml)")

	rootCmd.Flags().Int("seed", 42, "Random seed for simulation")
	rootCmd.Flags().Int("days", 2, "Number of operating days to simulate")
	rootCmd.Flags().Int("initial-vehicles", 10, "Initial number of affiliated vehicles")
	rootCmd.Flags().Int("initial-riders", 20, "Initial number of affiliated riders")
	rootCmd.Flags().Float64("search-radius-km", 2.0, "Vehicle search radius in kilometres")
	rootCmd.Flags().Float64("fare-per-km", 2.5, "Fare charged per kilometre")
	rootCmd.Flags().Float64("fare-per-meter", 0, "Fare charged per metre; takes priority over fare-per-km when positive")
	rootCmd.Flags().Float64("commission-fraction", 0.20, "Operator commission taken at settlement")
	rootCmd.Flags().Int("rating-min", 3, "Minimum rating a completed trip can receive")
	rootCmd.Flags().Int("rating-max", 5, "Maximum rating a completed trip can receive")
	rootCmd.Flags().Int("daily-tracking-sample-size", 5, "Trips tracked for the daily report per day")
	rootCmd.Flags().Bool("kafka-enabled", false, "Enable Kafka output")
	rootCmd.Flags().String("kafka-broker-list", "localhost:9092", "Kafka broker list")
	rootCmd.Flags().String("output-path", "", "Output directory path (if not using Kafka)")
	rootCmd.Flags().String("output-format", "json", "Output format: json, csv or parquet")

	// flag names use dashes, config keys use underscores
	for flag, key := range map[string]string{
		"seed":                       "seed",
		"days":                       "days",
		"initial-vehicles":           "initial_vehicles",
		"initial-riders":             "initial_riders",
		"search-radius-km":           "search_radius_km",
		"fare-per-km":                "fare_per_km",
		"fare-per-meter":             "fare_per_meter",
		"commission-fraction":        "commission_fraction",
		"rating-min":                 "rating_min",
		"rating-max":                 "rating_max",
		"daily-tracking-sample-size": "daily_tracking_sample_size",
		"kafka-enabled":              "kafka_enabled",
		"kafka-broker-list":          "kafka_broker_list",
		"output-path":                "output_path",
		"output-format":              "output_format",
	} {
		if err := viper.BindPFlag(key, rootCmd.Flags().Lookup(flag)); err != nil {
			cobra.CheckErr(err)
		}
	}
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".taxisim")
	}

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
