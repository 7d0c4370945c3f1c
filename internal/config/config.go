package config

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	AppEnv     string `mapstructure:"APP_ENV"`
	ServerPort string `mapstructure:"SERVER_PORT"`

	DBHost     string `mapstructure:"HOST"`
	DBName     string `mapstructure:"DB"`
	DBUser     string `mapstructure:"USR"`
	DBPassword string `mapstructure:"PWD"`
	DBPort     string `mapstructure:"PORT"`

	// DatabaseURL overrides the discrete DB settings when set.
	// Supports postgres:// and sqlite:// URLs.
	DatabaseURL string `mapstructure:"DATABASE_URL"`

	AccessTokenSecret        string `mapstructure:"ACCESS_TOKEN_SECRET_KEY"`
	RefreshTokenSecret       string `mapstructure:"REFRESH_TOKEN_SECRET_KEY"`
	Algorithm                string `mapstructure:"ALGORITHM"`
	AccessTokenExpireMinutes int    `mapstructure:"ACCESS_TOKEN_EXPIRE_MINUTES"`
	RefreshTokenExpireDays   int    `mapstructure:"REFRESH_TOKEN_EXPIRE_DAYS"`
}

func LoadConfig() (config Config, err error) {
	// Local .env, if present
	_ = godotenv.Load()

	viper.SetDefault("APP_ENV", "local")
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", "5432")
	viper.SetDefault("DB", "")
	viper.SetDefault("USR", "")
	viper.SetDefault("PWD", "")
	viper.SetDefault("DATABASE_URL", "")
	viper.SetDefault("ACCESS_TOKEN_SECRET_KEY", "")
	viper.SetDefault("REFRESH_TOKEN_SECRET_KEY", "")
	viper.SetDefault("ALGORITHM", "")
	viper.SetDefault("ACCESS_TOKEN_EXPIRE_MINUTES", 0)
	viper.SetDefault("REFRESH_TOKEN_EXPIRE_DAYS", 0)

	viper.AutomaticEnv()

	err = viper.Unmarshal(&config)
	if err != nil {
		return config, fmt.Errorf("unable to decode config: %w", err)
	}

	return config, nil
}

// Validate checks the keys that have no usable default. A missing key here
// is a startup misconfiguration, not a runtime error.
func (c Config) Validate() error {
	if c.AccessTokenSecret == "" {
		return fmt.Errorf("ACCESS_TOKEN_SECRET_KEY is required")
	}
	if c.RefreshTokenSecret == "" {
		return fmt.Errorf("REFRESH_TOKEN_SECRET_KEY is required")
	}
	if c.Algorithm == "" {
		return fmt.Errorf("ALGORITHM is required")
	}
	if method := jwt.GetSigningMethod(c.Algorithm); method == nil {
		return fmt.Errorf("unknown signing algorithm: %s", c.Algorithm)
	}
	if c.AccessTokenExpireMinutes <= 0 {
		return fmt.Errorf("ACCESS_TOKEN_EXPIRE_MINUTES must be positive")
	}
	if c.RefreshTokenExpireDays <= 0 {
		return fmt.Errorf("REFRESH_TOKEN_EXPIRE_DAYS must be positive")
	}
	if c.DatabaseURL == "" && (c.DBName == "" || c.DBUser == "") {
		return fmt.Errorf("either DATABASE_URL or DB and USR must be set")
	}
	return nil
}

// DSN returns the database URL, assembling a Postgres one from the discrete
// settings when DATABASE_URL is not set.
func (c Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName)
}
