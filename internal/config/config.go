package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"marathonviz/domain/results"
	"marathonviz/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Race     RaceConfig
	Logging  LoggingConfig
	Variants VariantsConfig
}

// RaceConfig holds the per-run settings shared by every variant
type RaceConfig struct {
	DistanceKm float64 `validate:"gt=0"`
	// IntervalMinutes of 0 defers to the variant's own interval
	IntervalMinutes int `validate:"gte=0"`
	CompetitionName string
}

// LoggingConfig holds logger settings
type LoggingConfig struct {
	Level string `validate:"oneof=ERROR WARN INFO DEBUG TRACE"`
}

// VariantsConfig points at an optional YAML variant catalog
type VariantsConfig struct {
	File string
}

// Settings converts the race configuration into run settings.
func (c *Config) Settings() results.Settings {
	return results.Settings{
		RaceDistanceKm:    c.Race.DistanceKm,
		AnimationInterval: c.Race.IntervalMinutes,
		CompetitionName:   c.Race.CompetitionName,
	}
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	race, err := loadRaceConfig()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load race configuration")
	}

	config := &Config{
		Race:     *race,
		Logging:  *loadLoggingConfig(),
		Variants: *loadVariantsConfig(),
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func loadRaceConfig() (*RaceConfig, error) {
	distance, err := getEnvFloatOrDefault("RACE_DISTANCE_KM", results.DefaultRaceDistanceKm)
	if err != nil {
		return nil, err
	}
	interval, err := getEnvIntOrDefault("ANIMATION_INTERVAL_MINUTES", 0)
	if err != nil {
		return nil, err
	}
	return &RaceConfig{
		DistanceKm:      distance,
		IntervalMinutes: interval,
		CompetitionName: getEnvOrDefault("COMPETITION_NAME", ""),
	}, nil
}

func loadLoggingConfig() *LoggingConfig {
	return &LoggingConfig{
		Level: strings.ToUpper(getEnvOrDefault("LOG_LEVEL", "INFO")),
	}
}

func loadVariantsConfig() *VariantsConfig {
	return &VariantsConfig{
		File: getEnvOrDefault("VARIANTS_FILE", ""),
	}
}

var validate = validator.New()

func validateConfig(config *Config) error {
	if err := validate.Struct(config); err != nil {
		return errors.ConfigInvalid(describeValidation(err))
	}
	return nil
}

// describeValidation turns validator field errors into one readable line
func describeValidation(err error) string {
	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err.Error()
	}
	parts := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		if fe.Param() != "" {
			parts = append(parts, fmt.Sprintf("%s must satisfy %s=%s (got %v)", fe.Namespace(), fe.Tag(), fe.Param(), fe.Value()))
		} else {
			parts = append(parts, fmt.Sprintf("%s failed %s", fe.Namespace(), fe.Tag()))
		}
	}
	return strings.Join(parts, "; ")
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	intValue, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, errors.ConfigInvalid(fmt.Sprintf("%s must be an integer, got %q", key, value))
	}
	return intValue, nil
}

func getEnvFloatOrDefault(key string, defaultValue float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	floatValue, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0, errors.ConfigInvalid(fmt.Sprintf("%s must be a number, got %q", key, value))
	}
	return floatValue, nil
}
