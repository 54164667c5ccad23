package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type Config struct {
	Server struct {
		Addr string `mapstructure:"addr"`
		Port string `mapstructure:"port"`
	} `mapstructure:"server"`

	Database struct {
		DSN string `mapstructure:"dsn"`
	} `mapstructure:"database"`

	Tagging struct {
		GoogleAPIKey  string `mapstructure:"google_api_key"`
		Model         string `mapstructure:"model"` // preferred Gemini model, tried first
		OpenaiAPIKey  string `mapstructure:"openai_api_key"`
		OpenaiModel   string `mapstructure:"openai_model"`
		MinTags       int    `mapstructure:"min_tags"`
		MaxTags       int    `mapstructure:"max_tags"`
		AllowFallback bool   `mapstructure:"allow_fallback"` // default policy for persisting heuristic-only results
		Endpoint      string `mapstructure:"endpoint"`       // REST base override, mainly for tests
	} `mapstructure:"tagging"`
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	viper.SetDefault("server.addr", "localhost")
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("tagging.min_tags", 6)
	viper.SetDefault("tagging.max_tags", 10)
	viper.SetDefault("tagging.allow_fallback", false)

	viper.AutomaticEnv()
	// Explicit bindings so the usual environment variables work without a
	// prefix or a config file.
	viper.BindEnv("tagging.google_api_key", "GEMINI_API_KEY", "GOOGLE_API_KEY")
	viper.BindEnv("tagging.openai_api_key", "OPENAI_API_KEY")
	viper.BindEnv("tagging.model", "CARDKEEP_TAG_MODEL")
	viper.BindEnv("database.dsn", "DATABASE_URL")

	if err := viper.ReadInConfig(); err != nil {
		// Missing config file is fine, env vars and defaults carry it.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}
	return &config, nil
}
