package app

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/gridscope/ferceqr/pkg/constants"
)

// Config holds the application configuration loaded from config files,
// environment variables, and .env files.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool

	// Config file
	ConfigFile string

	// EQR configuration
	TargetDir  string
	ViewerRoot string
	Database   string
	ChunkSize  int
	Workers    int
	Strict     bool

	// Logging configuration
	LogLevel  string
	LogFormat string
	LogOutput string

	// levelFromFlag marks LogLevel as coming from --log-level rather than
	// the LOG_LEVEL environment variable.
	levelFromFlag bool
}

// LoadConfig loads configuration from all sources in order of precedence:
// 1. Command-line flags (handled by cobra)
// 2. Environment variables
// 3. .env files
// 4. Config file (~/.ferceqr.yaml)
// 5. Defaults
func LoadConfig() (*Config, error) {
	// Load .env files first (before Viper env binding)
	loadEnvFiles()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.SetEnvPrefix("FERCEQR")

	configFile := viper.GetString("config")
	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
			viper.AddConfigPath(".")
			viper.SetConfigType("yaml")
			viper.SetConfigName(".ferceqr")
		}
	}

	// Read config file (ignore error if not found)
	_ = viper.ReadInConfig()

	viper.SetDefault("target_dir", "./eqr_data")
	viper.SetDefault("chunk_size", constants.DefaultChunkSize)
	viper.SetDefault("workers", constants.DefaultWorkers)
	viper.SetDefault("strict", true)

	config := &Config{
		Verbose: viper.GetBool("verbose"),
		Quiet:   viper.GetBool("quiet"),
		NoColor: viper.GetBool("no-color"),

		ConfigFile: viper.ConfigFileUsed(),

		TargetDir:  viper.GetString("target_dir"),
		ViewerRoot: viper.GetString("viewer_root"),
		Database:   viper.GetString("database"),
		ChunkSize:  viper.GetInt("chunk_size"),
		Workers:    viper.GetInt("workers"),
		Strict:     viper.GetBool("strict"),

		LogLevel:  getEnvOrDefault("LOG_LEVEL", ""),
		LogFormat: getEnvOrDefault("LOG_FORMAT", "auto"),
		LogOutput: getEnvOrDefault("LOG_OUTPUT", "stderr"),
	}
	return config, nil
}

// UpdateFromFlags updates config values from parsed command flags. Called
// after cobra parses flags so flag values take precedence over config file
// and env vars.
func (c *Config) UpdateFromFlags(verbose, quiet, noColor bool, logLevel string) {
	c.Verbose = verbose
	c.Quiet = quiet
	c.NoColor = noColor
	if logLevel != "" {
		c.LogLevel = logLevel
		c.levelFromFlag = true
	}
}

// loadEnvFiles loads environment variables from .env files.
// .env.local overrides .env.
func loadEnvFiles() {
	for _, envFile := range []string{".env", ".env.local"} {
		_ = godotenv.Load(envFile)
	}
}

// getEnvOrDefault returns the environment variable value or the default if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
