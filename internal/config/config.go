package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// DefaultSessionSecret signs session cookies in development only.
const DefaultSessionSecret = "chave_secreta"

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	// Server
	Port int    `mapstructure:"PORT"`
	Env  string `mapstructure:"APP_ENV"` // development | production

	// Database. Driver is "sqlite" (file path DSN) or "postgres".
	DatabaseDriver string `mapstructure:"DATABASE_DRIVER"`
	DatabaseURL    string `mapstructure:"DATABASE_URL"`

	// Web
	SessionSecret string `mapstructure:"SESSION_SECRET"`
	UploadDir     string `mapstructure:"UPLOAD_DIR"`

	// Uploads accepted per client IP per minute on /importar_xml (0 disables)
	ImportRateLimit int `mapstructure:"IMPORT_RATE_LIMIT"`

	// Business
	NomeComercialModo string `mapstructure:"NOME_COMERCIAL_MODO"` // juncao | marcadores
}

// Load reads configuration from environment variables (and optional .env file).
func Load() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	viper.SetDefault("PORT", 5000)
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("DATABASE_DRIVER", "sqlite")
	viper.SetDefault("DATABASE_URL", "database/products_system.db")
	viper.SetDefault("SESSION_SECRET", DefaultSessionSecret)
	viper.SetDefault("UPLOAD_DIR", "uploads")
	viper.SetDefault("IMPORT_RATE_LIMIT", 30)
	viper.SetDefault("NOME_COMERCIAL_MODO", "juncao")

	// Optional .env file for local development, ignored when missing
	_ = viper.ReadInConfig()

	cfg := &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects values the rest of the application cannot work with.
func (c *Config) Validate() error {
	switch c.DatabaseDriver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("config: DATABASE_DRIVER %q não suportado (use sqlite ou postgres)", c.DatabaseDriver)
	}
	switch c.NomeComercialModo {
	case "juncao", "marcadores":
	default:
		return fmt.Errorf("config: NOME_COMERCIAL_MODO %q inválido (use juncao ou marcadores)", c.NomeComercialModo)
	}
	if c.DatabaseURL == "" {
		return fmt.Errorf("config: DATABASE_URL vazio")
	}
	if c.Env == "production" && (c.SessionSecret == "" || c.SessionSecret == DefaultSessionSecret) {
		return fmt.Errorf("config: SESSION_SECRET precisa ser definido em produção")
	}
	return nil
}
