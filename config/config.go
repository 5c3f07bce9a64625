package config

import (
	"log/slog"
	"strings"

	"github.com/spf13/viper"
)

var Config Configuration

type Configuration struct {
	Mode string `mapstructure:"mode"`
	LLM  struct {
		BaseURL     string  `mapstructure:"base_url"`
		APIKey      string  `mapstructure:"api_key"`
		Model       string  `mapstructure:"model"`
		Temperature float64 `mapstructure:"temperature"`
	} `mapstructure:"llm"`
}

// LoadConfig reads config/<env>.yaml into Config. A missing file is not an
// error; defaults and environment variables still apply.
func LoadConfig(env string) error {
	viper.SetConfigName(env)
	viper.SetConfigType("yaml")
	viper.AddConfigPath("config") // look for config in the working directory

	viper.SetDefault("mode", "dev")
	viper.SetDefault("llm.base_url", "http://localhost:8000/v1/")
	viper.SetDefault("llm.api_key", "EMPTY")
	viper.SetDefault("llm.model", "gemma-3-1b-it")
	viper.SetDefault("llm.temperature", 0.0)

	viper.SetEnvPrefix("toolprobe")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv() // override config file with environment variables

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return err
		}
		slog.Warn("Config file not found, using defaults", "env", env)
	}

	if err := viper.Unmarshal(&Config); err != nil {
		return err
	}

	slog.Info("Configuration loaded successfully", "env", env)
	return nil
}
