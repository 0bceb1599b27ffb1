// Package config загружает настройки hubctl из файла, переменных окружения и флагов
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix префикс переменных окружения: HUBCTL_SERVER, HUBCTL_LOG_LEVEL и т.д.
const EnvPrefix = "HUBCTL"

// Значения по умолчанию
const (
	DefaultServer           = "http://localhost:8080"
	DefaultAPIPrefix        = "/api"
	DefaultDBName           = "hubctl.db"
	DefaultTimeout          = 30 * time.Second
	DefaultRefreshThreshold = 30 * time.Minute
	DefaultLogLevel         = "warn"
	DefaultOutput           = "table"
)

// Config итоговые настройки клиента
type Config struct {
	Server           string        `mapstructure:"server"`
	APIPrefix        string        `mapstructure:"api_prefix"`
	DB               string        `mapstructure:"db"`
	Output           string        `mapstructure:"output"`
	Log              LogConfig     `mapstructure:"log"`
	Timeout          time.Duration `mapstructure:"timeout"`
	RefreshThreshold time.Duration `mapstructure:"refresh_threshold"`
	NoColor          bool          `mapstructure:"no_color"`
}

// LogConfig настройки логирования
type LogConfig struct {
	Level      string `mapstructure:"level"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

// flagKeys связывает флаги командной строки с ключами конфигурации
var flagKeys = map[string]string{
	"server":            "server",
	"api-prefix":        "api_prefix",
	"db":                "db",
	"timeout":           "timeout",
	"refresh-threshold": "refresh_threshold",
	"log-file":          "log.file",
	"log-level":         "log.level",
	"no-color":          "no_color",
	"output":            "output",
}

// DefaultDir каталог конфигурации по умолчанию: ~/.config/hubctl
func DefaultDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "."
	}
	return filepath.Join(dir, "hubctl")
}

// Load собирает конфигурацию. Приоритет: флаги, окружение, файл, значения по умолчанию.
// configFile пустой - ищем config.yaml в DefaultDir, отсутствие файла не ошибка.
// Явно указанный, но несуществующий файл - ошибка.
func Load(configFile string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.AddConfigPath(DefaultDir())
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server", DefaultServer)
	v.SetDefault("api_prefix", DefaultAPIPrefix)
	v.SetDefault("db", filepath.Join(DefaultDir(), DefaultDBName))
	v.SetDefault("timeout", DefaultTimeout)
	v.SetDefault("refresh_threshold", DefaultRefreshThreshold)
	v.SetDefault("output", DefaultOutput)
	v.SetDefault("no_color", false)
	v.SetDefault("log.level", DefaultLogLevel)
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size_mb", 10)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age_days", 28)
}

func (c *Config) validate() error {
	if c.Server == "" {
		return fmt.Errorf("server URL cannot be empty")
	}
	if c.DB == "" {
		return fmt.Errorf("database path cannot be empty")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	if c.RefreshThreshold <= 0 {
		return fmt.Errorf("refresh threshold must be positive, got %s", c.RefreshThreshold)
	}
	return nil
}
