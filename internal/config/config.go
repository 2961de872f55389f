package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	Auth       AuthConfig       `yaml:"auth"`
	Tailscale  TailscaleConfig  `yaml:"tailscale"`
	Vault      VaultConfig      `yaml:"vault"`
	DailyNotes DailyNotesConfig `yaml:"daily_notes"`
	Training   TrainingConfig   `yaml:"training"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
}

type AuthConfig struct {
	APIKey string `yaml:"api_key"`
}

type TailscaleConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Hostname string `yaml:"hostname"`
	StateDir string `yaml:"state_dir"`
}

// VaultConfig locates the notes directory. WorkoutFolder is relative to Path.
type VaultConfig struct {
	Path          string `yaml:"path"`
	WorkoutFolder string `yaml:"workout_folder"`
}

// DailyNotesConfig controls appending workout summaries to daily notes.
// Format uses moment-style tokens (YYYY-MM-DD).
type DailyNotesConfig struct {
	Enabled bool   `yaml:"enabled"`
	Folder  string `yaml:"folder"`
	Format  string `yaml:"format"`
	Heading string `yaml:"heading"`
}

type TrainingConfig struct {
	DefaultUnit         string            `yaml:"default_unit"`
	ShowRPE             *bool             `yaml:"show_rpe"`
	RestTimerSeconds    int               `yaml:"rest_timer_seconds"`
	ActiveTemplate      string            `yaml:"active_template"`
	PromptForSplit      bool              `yaml:"prompt_for_split"`
	WeeklySchedule      map[string]string `yaml:"weekly_schedule"` // weekday -> split id
	CustomTemplatesFile string            `yaml:"custom_templates_file"`
	CustomExercisesFile string            `yaml:"custom_exercises_file"`
}

// RPEEnabled reports whether RPE is shown; unset means enabled.
func (t TrainingConfig) RPEEnabled() bool {
	return t.ShowRPE == nil || *t.ShowRPE
}

// DSN returns a PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	sslmode := d.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, sslmode)
}

// Load reads config from a YAML file, fills defaults, then applies environment
// variable overrides. Env vars use the prefix GYMBUDDY_ and underscore-separated paths:
//
//	GYMBUDDY_SERVER_HOST, GYMBUDDY_SERVER_PORT,
//	GYMBUDDY_DB_HOST, GYMBUDDY_DB_PORT, GYMBUDDY_DB_NAME,
//	GYMBUDDY_DB_USER, GYMBUDDY_DB_PASSWORD, GYMBUDDY_DB_SSLMODE,
//	GYMBUDDY_AUTH_API_KEY, GYMBUDDY_TAILSCALE_ENABLED,
//	GYMBUDDY_VAULT_PATH, GYMBUDDY_VAULT_WORKOUT_FOLDER,
//	GYMBUDDY_TRAINING_DEFAULT_UNIT
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyDefaults(cfg)
	applyEnvOverrides(cfg)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Vault.WorkoutFolder == "" {
		cfg.Vault.WorkoutFolder = "Workouts"
	}
	if cfg.DailyNotes.Format == "" {
		cfg.DailyNotes.Format = "YYYY-MM-DD"
	}
	if cfg.DailyNotes.Heading == "" {
		cfg.DailyNotes.Heading = "## Workout"
	}
	if cfg.Training.DefaultUnit == "" {
		cfg.Training.DefaultUnit = "lbs"
	}
	if cfg.Training.RestTimerSeconds == 0 {
		cfg.Training.RestTimerSeconds = 90
	}
	if cfg.Training.ActiveTemplate == "" {
		cfg.Training.ActiveTemplate = "ppl"
	}
	if cfg.Tailscale.Hostname == "" {
		cfg.Tailscale.Hostname = "gymbuddy"
	}
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("GYMBUDDY_SERVER_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("GYMBUDDY_SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("GYMBUDDY_DB_HOST"); v != "" {
		cfg.Database.Host = v
	}
	if v := os.Getenv("GYMBUDDY_DB_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Database.Port = port
		}
	}
	if v := os.Getenv("GYMBUDDY_DB_NAME"); v != "" {
		cfg.Database.Name = v
	}
	if v := os.Getenv("GYMBUDDY_DB_USER"); v != "" {
		cfg.Database.User = v
	}
	if v := os.Getenv("GYMBUDDY_DB_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}
	if v := os.Getenv("GYMBUDDY_DB_SSLMODE"); v != "" {
		cfg.Database.SSLMode = v
	}
	if v := os.Getenv("GYMBUDDY_AUTH_API_KEY"); v != "" {
		cfg.Auth.APIKey = v
	}
	if v := os.Getenv("GYMBUDDY_TAILSCALE_ENABLED"); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			cfg.Tailscale.Enabled = enabled
		}
	}
	if v := os.Getenv("GYMBUDDY_VAULT_PATH"); v != "" {
		cfg.Vault.Path = v
	}
	if v := os.Getenv("GYMBUDDY_VAULT_WORKOUT_FOLDER"); v != "" {
		cfg.Vault.WorkoutFolder = v
	}
	if v := os.Getenv("GYMBUDDY_TRAINING_DEFAULT_UNIT"); v != "" {
		cfg.Training.DefaultUnit = strings.ToLower(v)
	}
}

var weekdays = map[string]bool{
	"monday": true, "tuesday": true, "wednesday": true, "thursday": true,
	"friday": true, "saturday": true, "sunday": true,
}

func (c *Config) validate() error {
	if c.Server.Port == 0 && !c.Tailscale.Enabled {
		return fmt.Errorf("server.port is required")
	}
	if c.Database.Host == "" {
		return fmt.Errorf("database.host is required")
	}
	if c.Database.Port == 0 {
		return fmt.Errorf("database.port is required")
	}
	if c.Database.Name == "" {
		return fmt.Errorf("database.name is required")
	}
	if c.Database.User == "" {
		return fmt.Errorf("database.user is required")
	}
	if c.Auth.APIKey == "" {
		return fmt.Errorf("auth.api_key is required")
	}
	if c.Vault.Path == "" {
		return fmt.Errorf("vault.path is required")
	}
	if c.Training.DefaultUnit != "lbs" && c.Training.DefaultUnit != "kg" {
		return fmt.Errorf("training.default_unit must be lbs or kg, got %q", c.Training.DefaultUnit)
	}
	if c.Training.RestTimerSeconds < 0 {
		return fmt.Errorf("training.rest_timer_seconds must not be negative")
	}
	for day := range c.Training.WeeklySchedule {
		if !weekdays[day] {
			return fmt.Errorf("training.weekly_schedule: unknown day %q", day)
		}
	}
	return nil
}
