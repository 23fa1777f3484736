package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Database Configuration
	Database DatabaseConfig `envPrefix:"DATABASE_"`

	// HTTP Configuration (client timeout and server port)
	HTTP HTTPConfig `envPrefix:"HTTP_"`

	// Auth Configuration
	Auth AuthConfig `envPrefix:"AUTH_"`

	// Uploads Configuration
	Uploads UploadsConfig `envPrefix:"UPLOADS_"`

	// Logging Configuration
	Logging LoggingConfig `envPrefix:"LOG_"`

	// CLI Configuration
	CLI CLIConfig `envPrefix:"CLI_"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	URL string `env:"URL" envDefault:"hrdesk.sqlite"`
}

// HTTPConfig holds HTTP configuration shared by the CLI client and the API server
type HTTPConfig struct {
	Port          string        `env:"PORT" envDefault:"8080"`
	ClientTimeout time.Duration `env:"CLIENT_TIMEOUT" envDefault:"10s"`
	// AllowOrigins are the browser origins the API server accepts
	AllowOrigins []string `env:"ALLOW_ORIGINS" envSeparator:"," envDefault:"http://localhost:5173"`
}

// AuthConfig holds token signing and registration settings for the API server
type AuthConfig struct {
	JWTSecret        string        `env:"JWT_SECRET"`
	TokenTTL         time.Duration `env:"TOKEN_TTL" envDefault:"168h"`
	AdminInviteToken string        `env:"ADMIN_INVITE_TOKEN"`
}

// UploadsConfig holds where uploaded images are stored and how they are served
type UploadsConfig struct {
	Dir       string `env:"DIR" envDefault:"uploads"`
	PublicURL string `env:"PUBLIC_URL" envDefault:"http://localhost:8080"`
}

// LoggingConfig holds logging-related configuration
type LoggingConfig struct {
	Level  string `env:"LEVEL" envDefault:"info"`
	Format string `env:"FORMAT" envDefault:"json"` // json, console
}

// CLIConfig holds settings only the command line client reads
type CLIConfig struct {
	UpdateCheck bool `env:"UPDATE_CHECK" envDefault:"true"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env files (fails silently if files don't exist)
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	return parse()
}

// LoadCLI loads configuration for the command line client.
// The CLI logs to the console at warn level unless told otherwise.
func LoadCLI() (*Config, error) {
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	environ := make(map[string]string)
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			environ[k] = v
		}
	}
	for k, v := range cliDefaults {
		if _, ok := environ[k]; !ok {
			environ[k] = v
		}
	}

	return parseWithOptions(env.Options{
		Prefix:      "HRDESK_",
		Environment: environ,
	})
}

var cliDefaults = map[string]string{
	"HRDESK_LOG_LEVEL":  "warn",
	"HRDESK_LOG_FORMAT": "console",
}

func parse() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}

func parseWithOptions(opts env.Options) (*Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}
