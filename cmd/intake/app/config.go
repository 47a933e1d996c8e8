package app

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/hearthops/intake/pkg/errors"
)

// Config holds the application configuration loaded from environment
// variables and .env files.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool

	// Source API credentials
	TypeformToken  string
	TypeformFormID string

	// Record store credentials
	NotionToken string
	NotionDBID  string

	// Logging configuration
	LogLevel  string
	LogFormat string
	LogOutput string
}

// LoadConfig loads configuration from all sources in order of precedence:
// 1. Command-line flags (handled by cobra)
// 2. Environment variables
// 3. .env files
// 4. Defaults
func LoadConfig() (*Config, error) {
	// Load .env files first so Viper's env binding sees their values.
	loadEnvFiles()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	bindCredentials()

	config := &Config{
		Verbose: viper.GetBool("verbose"),
		Quiet:   viper.GetBool("quiet"),
		NoColor: viper.GetBool("no-color"),

		TypeformToken:  viper.GetString("TYPEFORM_TOKEN"),
		TypeformFormID: viper.GetString("TYPEFORM_FORM_ID"),
		NotionToken:    viper.GetString("NOTION_TOKEN"),
		NotionDBID:     viper.GetString("NOTION_DB_ID"),

		LogLevel:  getEnvOrDefault("LOG_LEVEL", ""),
		LogFormat: getEnvOrDefault("LOG_FORMAT", "auto"),
		LogOutput: getEnvOrDefault("LOG_OUTPUT", "stderr"),
	}
	return config, nil
}

// Validate checks that every credential a run needs is present. Called
// before any I/O so a misconfigured run fails immediately.
func (c *Config) Validate() error {
	missing := make([]string, 0, 4)
	if c.TypeformToken == "" {
		missing = append(missing, "TYPEFORM_TOKEN")
	}
	if c.TypeformFormID == "" {
		missing = append(missing, "TYPEFORM_FORM_ID")
	}
	if c.NotionToken == "" {
		missing = append(missing, "NOTION_TOKEN")
	}
	if c.NotionDBID == "" {
		missing = append(missing, "NOTION_DB_ID")
	}
	if len(missing) > 0 {
		return errors.NewConfigError("credentials",
			"missing required settings: "+strings.Join(missing, ", "),
			errors.ErrTokenRequired)
	}
	return nil
}

// UpdateFromFlags updates config values from parsed command flags. This is
// called after cobra parses flags so flag values take precedence over
// environment variables.
func (c *Config) UpdateFromFlags(verbose, quiet, noColor bool, logLevel string) {
	c.Verbose = verbose
	c.Quiet = quiet
	c.NoColor = noColor
	if logLevel != "" {
		c.LogLevel = logLevel
	}
}

// loadEnvFiles loads environment variables from .env files.
// .env.local overrides .env.
func loadEnvFiles() {
	for _, envFile := range []string{".env", ".env.local"} {
		_ = godotenv.Load(envFile)
	}
}

// bindCredentials explicitly binds the credential environment variables to
// Viper so they are visible even without a config file.
func bindCredentials() {
	for _, key := range []string{
		"TYPEFORM_TOKEN",
		"TYPEFORM_FORM_ID",
		"NOTION_TOKEN",
		"NOTION_DB_ID",
	} {
		_ = viper.BindEnv(key)
	}
}

// getEnvOrDefault returns the environment variable value or the default if
// not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
