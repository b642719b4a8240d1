// Package config provides configuration parsing and validation for the
// social feed service.
package config

import (
	"fmt"
)

// Config holds all configuration parameters for the service.
type Config struct {
	HTTPPort      string
	KafkaBrokers  string
	AlarmTopic    string
	ConsumerGroup string
	PostgresDSN   string
	RedisAddr     string
	JWTSecret     string
}

// Validate checks that all required configuration fields are set and have valid values.
// Returns an error if validation fails, nil otherwise.
func (c *Config) Validate() error {
	if c.HTTPPort == "" {
		return fmt.Errorf("http-port cannot be empty")
	}
	if c.KafkaBrokers == "" {
		return fmt.Errorf("kafka-brokers cannot be empty")
	}
	if c.AlarmTopic == "" {
		return fmt.Errorf("alarm-topic cannot be empty")
	}
	if c.ConsumerGroup == "" {
		return fmt.Errorf("consumer-group cannot be empty")
	}
	if c.PostgresDSN == "" {
		return fmt.Errorf("postgres-dsn cannot be empty")
	}
	if c.RedisAddr == "" {
		return fmt.Errorf("redis-addr cannot be empty")
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("jwt-secret cannot be empty")
	}
	return nil
}
