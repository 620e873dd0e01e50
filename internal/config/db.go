package config

import (
	"fmt"
	"time"
)

const (
	defaultConnectRetries       = 5
	defaultConnectRetryInterval = 2 * time.Second
)

type DbConfig struct {
	Username             string        `mapstructure:"username"`
	Password             string        `mapstructure:"password"`
	DbName               string        `mapstructure:"db-name"`
	Address              string        `mapstructure:"address"`
	ConnectRetries       uint          `mapstructure:"connect-retries"`
	ConnectRetryInterval time.Duration `mapstructure:"connect-retry-interval"`
}

func (cfg *DbConfig) Validate() error {
	if cfg.Username == "" {
		return fmt.Errorf("missing db username")
	}

	if cfg.Password == "" {
		return fmt.Errorf("missing db password")
	}

	if cfg.Address == "" {
		return fmt.Errorf("missing db address")
	}

	if cfg.DbName == "" {
		return fmt.Errorf("missing db name")
	}

	if cfg.ConnectRetries == 0 {
		cfg.ConnectRetries = defaultConnectRetries
	}

	if cfg.ConnectRetryInterval <= 0 {
		cfg.ConnectRetryInterval = defaultConnectRetryInterval
	}

	return nil
}
