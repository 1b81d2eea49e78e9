package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validConfig() *Config {
	return &Config{
		Days:                    2,
		MinRequestsPerRider:     1,
		MaxRequestsPerRider:     3,
		SearchRadiusKm:          2.0,
		FarePerKm:               2.5,
		CommissionFraction:      0.20,
		RatingMin:               3,
		RatingMax:               5,
		DailyTrackingSampleSize: 5,
		AccelerationFactor:      1000,
	}
}

func TestValidateAcceptsDefaults(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestValidateRejectsBadValues(t *testing.T) {
	negFare := -1.0

	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero radius", func(c *Config) { c.SearchRadiusKm = 0 }},
		{"negative fare per km", func(c *Config) { c.FarePerKm = -2 }},
		{"negative fare per meter", func(c *Config) { c.FarePerMeter = &negFare }},
		{"commission above one", func(c *Config) { c.CommissionFraction = 1.5 }},
		{"inverted rating bounds", func(c *Config) { c.RatingMin = 5; c.RatingMax = 3 }},
		{"negative sample size", func(c *Config) { c.DailyTrackingSampleSize = -1 }},
		{"zero days", func(c *Config) { c.Days = 0 }},
		{"zero acceleration", func(c *Config) { c.AccelerationFactor = 0 }},
		{"inverted request range", func(c *Config) { c.MinRequestsPerRider = 4; c.MaxRequestsPerRider = 2 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
