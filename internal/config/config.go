package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	HTTP_PORT           string `mapstructure:"HTTP_PORT"`
	LOG_LEVEL           string `mapstructure:"LOG_LEVEL"`
	KAFKA_BROKERS       string `mapstructure:"KAFKA_BROKERS"`
	KAFKA_REQUEST_TOPIC string `mapstructure:"KAFKA_REQUEST_TOPIC"`
	KAFKA_ISSUED_TOPIC  string `mapstructure:"KAFKA_ISSUED_TOPIC"`
	KAFKA_GROUP_ID      string `mapstructure:"KAFKA_GROUP_ID"`
}

var defaults = map[string]string{
	"HTTP_PORT":           "8080",
	"LOG_LEVEL":           "info",
	"KAFKA_BROKERS":       "",
	"KAFKA_REQUEST_TOPIC": "tracking-number-requests",
	"KAFKA_ISSUED_TOPIC":  "tracking-numbers-issued",
	"KAFKA_GROUP_ID":      "tracking-number-service",
}

// LoadConfig reads the environment, falling back to defaults.
func LoadConfig() (*Config, error) {
	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	v.AutomaticEnv()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config unmarshal: %w", err)
	}
	cfg.KAFKA_BROKERS = strings.TrimSpace(cfg.KAFKA_BROKERS)

	if cfg.HTTP_PORT == "" {
		return nil, fmt.Errorf("HTTP_PORT must not be empty")
	}
	if cfg.KafkaEnabled() && (cfg.KAFKA_REQUEST_TOPIC == "" || cfg.KAFKA_ISSUED_TOPIC == "") {
		return nil, fmt.Errorf("kafka topics must be set when KAFKA_BROKERS is set")
	}
	return cfg, nil
}

func (c *Config) KafkaEnabled() bool { return c.KAFKA_BROKERS != "" }
