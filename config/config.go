// Package config loads application configuration.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const envFile = "config/.env"

// NewConfig loads configuration from environment using viper with typed
// defaults and validation, then reads the role classification file.
func NewConfig() (*Config, error) {
	v := viper.New()
	if envMap, err := godotenv.Read(envFile); err == nil {
		for k, val := range envMap {
			if _, exists := os.LookupEnv(k); !exists {
				_ = os.Setenv(k, val)
			}
		}
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)
	bindEnvs(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	roles, err := LoadRoles(cfg.Ops.RolesFile)
	if err != nil {
		return nil, err
	}
	cfg.Roles = *roles

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadRoles reads the static role classification from its own file so the
// team list stays reviewable outside the process environment.
func LoadRoles(path string) (*RolesConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read roles file %s: %w", path, err)
	}

	var roles RolesConfig
	if err := v.Unmarshal(&roles); err != nil {
		return nil, fmt.Errorf("unmarshal roles file %s: %w", path, err)
	}
	return &roles, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "debug")

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.shutdown_timeout", 5*time.Second)

	v.SetDefault("ops.request_timeout", 5*time.Minute)
	v.SetDefault("ops.roles_file", "config/roles.yaml")

	v.SetDefault("sheets.read_range", "Members!A2:D")
	v.SetDefault("sheets.credentials_file", "config/service_account.json")
}

func bindEnvs(v *viper.Viper) {
	keys := []string{
		"logging.level",
		"server.host",
		"server.port",
		"server.shutdown_timeout",
		"ops.request_timeout",
		"ops.roles_file",
		"sheets.spreadsheet_id",
		"sheets.read_range",
		"sheets.credentials_file",
	}

	for _, k := range keys {
		_ = v.BindEnv(k)
	}

	// The token keeps its historical variable name alongside the generic one.
	_ = v.BindEnv("discord.token", "SCHS_ROBOTICS_ROLES_BOT_TOKEN", "DISCORD_TOKEN")
}
