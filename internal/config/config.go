package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"
)

// DatabaseURLEnvVar overrides the configured database URL when set
const DatabaseURLEnvVar = "SHIFTMATCH_DATABASE_URL"

// VisitTemplate defines a recurring care visit to expand into shifts
type VisitTemplate struct {
	ClientID       string   `yaml:"clientID" validate:"required"`
	RRule          string   `yaml:"rrule" validate:"required"`
	StartTime      string   `yaml:"startTime" validate:"required"`
	EndTime        string   `yaml:"endTime" validate:"required"`
	RequiredSkills []string `yaml:"requiredSkills,omitempty"`
}

// Config represents the application configuration
type Config struct {
	DatabaseURL          string          `yaml:"databaseURL" validate:"required"`
	PlanningHorizonWeeks int             `yaml:"planningHorizonWeeks,omitempty" validate:"omitempty,min=1"`
	VisitTemplates       []VisitTemplate `yaml:"visitTemplates,omitempty" validate:"dive"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// LoadWithEnv loads and validates the configuration with an environment suffix
// For example, env="test" will look for "shiftmatch_config.test.yaml"
func LoadWithEnv(env string) (*Config, error) {
	configPath, err := findConfigFile(env)
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if url := os.Getenv(DatabaseURLEnvVar); url != "" {
		cfg.DatabaseURL = url
	}
	if cfg.PlanningHorizonWeeks == 0 {
		cfg.PlanningHorizonWeeks = 2
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate validates the configuration struct and checks rrule syntax
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	for i, template := range cfg.VisitTemplates {
		if _, err := rrule.StrToRRule(template.RRule); err != nil {
			return fmt.Errorf("invalid rrule in visitTemplates[%d]: %w", i, err)
		}
	}

	return nil
}

// findConfigFile searches for shiftmatch_config.yaml in current directory and home directory
// If env is provided, it adds it as an extension (e.g., "shiftmatch_config.test.yaml")
func findConfigFile(env string) (string, error) {
	configFileName := "shiftmatch_config.yaml"
	if env != "" {
		configFileName = "shiftmatch_config." + env + ".yaml"
	}

	// Check current directory
	if _, err := os.Stat(configFileName); err == nil {
		return configFileName, nil
	}

	// Check home directory
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homeConfigPath := filepath.Join(homeDir, configFileName)
	if _, err := os.Stat(homeConfigPath); err == nil {
		return homeConfigPath, nil
	}

	return "", fmt.Errorf("config file not found in current directory or home directory")
}
