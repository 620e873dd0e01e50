package config

import (
	"errors"
	"fmt"
)

const defaultQueueName = "ledger_events_queue"

type QueueConfig struct {
	Url       string `mapstructure:"url"`
	User      string `mapstructure:"user"`
	Password  string `mapstructure:"password"`
	QueueName string `mapstructure:"queue-name"`
}

func (cfg *QueueConfig) Validate() error {
	if cfg.Url == "" {
		return errors.New("queue url is required")
	}
	if cfg.User == "" {
		return errors.New("queue user is required")
	}
	if cfg.Password == "" {
		return errors.New("queue password is required")
	}
	if cfg.QueueName == "" {
		cfg.QueueName = defaultQueueName
	}

	return nil
}

// AmqpURL builds the broker connection string from the configured parts.
func (cfg *QueueConfig) AmqpURL() string {
	return fmt.Sprintf("amqp://%s:%s@%s", cfg.User, cfg.Password, cfg.Url)
}
