// Package config loads typed configuration via github.com/spf13/viper:
// environment variables first, then an optional revq.yaml/revq.json in
// the working directory, falling back to the defaults below.
package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config wraps a viper instance with the typed accessors the rest of
// the codebase expects.
type Config struct {
	v *viper.Viper
}

// Keys used by the server and runner CLIs.
const (
	KeyDebug        = "debug"
	KeyServerPort   = "server.port"
	KeyCORSOrigin   = "server.cors_origin"
	KeyDefaultShots = "runner.default_shots"
	KeyDefaultWork  = "runner.default_workers"
)

// New loads configuration from the environment (prefixed REVQ_, with
// "." mapped to "_") and an optional revq.yaml/revq.json/revq.toml in
// the current directory, applying defaults for anything unset.
func New() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("REVQ")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigName("revq")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetDefault(KeyDebug, false)
	v.SetDefault(KeyServerPort, 8080)
	v.SetDefault(KeyCORSOrigin, "")
	v.SetDefault(KeyDefaultShots, 1024)
	v.SetDefault(KeyDefaultWork, 0)

	if err := v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return nil, err
		}
	}

	return &Config{v: v}, nil
}

func (c *Config) GetBool(key string) bool     { return c.v.GetBool(key) }
func (c *Config) GetInt(key string) int       { return c.v.GetInt(key) }
func (c *Config) GetString(key string) string { return c.v.GetString(key) }
