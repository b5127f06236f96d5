package config

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	HTTP struct {
		Addr string
	}
	DB struct {
		Driver string
		DSN    string
	}
	Log struct {
		Level logrus.Level
	}
}

// Load reads config from environment (FUSEN_ prefix) and optional fusen.yaml.
// A single-user bookmark service should run out of the box, so every key
// has a default.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("FUSEN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetConfigName("fusen")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // optional config file

	v.SetDefault("http.addr", ":8080")
	v.SetDefault("db.driver", "sqlite3")
	v.SetDefault("db.dsn", "fusen.db")
	v.SetDefault("log.level", "info")

	cfg := &Config{}
	cfg.HTTP.Addr = v.GetString("http.addr")
	cfg.DB.Driver = v.GetString("db.driver")
	cfg.DB.DSN = v.GetString("db.dsn")

	level, err := logrus.ParseLevel(v.GetString("log.level"))
	if err != nil {
		return nil, fmt.Errorf("invalid FUSEN_LOG_LEVEL: %w", err)
	}
	cfg.Log.Level = level

	switch cfg.DB.Driver {
	case "sqlite3", "mysql", "postgres":
	default:
		return nil, fmt.Errorf("FUSEN_DB_DRIVER must be sqlite3, mysql, or postgres, got %q", cfg.DB.Driver)
	}

	return cfg, nil
}
