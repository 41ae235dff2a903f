package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Load reads configuration from environment variables and an optional
// config.yaml in the working directory. Environment variables use the
// SCRIPTBUDDY_ prefix with underscores for nesting (for example
// SCRIPTBUDDY_SERVER_PORT) and take precedence over file values.
// Returns a populated Config or an error if loading or validation fails.
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// A missing config file is fine; the environment can supply everything.
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix("SCRIPTBUDDY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// AutomaticEnv does not register keys on its own; bind every key we
	// unmarshal so env-only configuration works without a config file.
	for _, key := range configKeys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind env for %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// configKeys lists every key read from the environment.
var configKeys = []string{
	"server.port",
	"server.log_level",
	"server.static_dir",
	"store.driver",
	"store.csv_path",
	"store.database_url",
	"mail.smtp_host",
	"mail.smtp_port",
	"mail.sender_email",
	"mail.sender_pass",
	"mail.admin_email",
	"mail.max_retries",
	"llm.gemini_api_key",
	"llm.model_name",
	"llm.max_retries",
	"llm.retry_delay_seconds",
	"task.worker_count",
	"task.queue_size",
	"admin.username",
	"admin.password_hash",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.static_dir", "web/static")
	v.SetDefault("store.driver", "csv")
	v.SetDefault("store.csv_path", "data/leads/leads.csv")
	v.SetDefault("mail.smtp_host", "smtp.gmail.com")
	v.SetDefault("mail.smtp_port", 587)
	v.SetDefault("mail.max_retries", 3)
	v.SetDefault("llm.model_name", "gemini-2.0-flash")
	v.SetDefault("llm.max_retries", 3)
	v.SetDefault("llm.retry_delay_seconds", 2)
	v.SetDefault("task.worker_count", 2)
	v.SetDefault("task.queue_size", 100)
}
