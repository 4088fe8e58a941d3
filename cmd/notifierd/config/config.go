package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Environ returns the settings from the environment.
func Environ() (*Config, error) {
	cfg := Config{}
	err := envconfig.Process("", &cfg)
	defaults(&cfg)

	return &cfg, err
}

func defaults(c *Config) {
	if c.Database.Driver == "" {
		c.Database.Driver = "sqlite"
	}
	if c.Database.Config == "" {
		c.Database.Config = "notifier.sqlite"
	}
	if c.Port == 0 {
		c.Port = 8888
	}
	if c.MetricsPort == 0 {
		c.MetricsPort = 8889
	}
	if c.RocketChat.DeliveryTimeout == 0 {
		c.RocketChat.DeliveryTimeout = 10 * time.Second
	}
}

// String returns the configuration in string format.
func (c *Config) String() string {
	out, _ := yaml.Marshal(c)
	return string(out)
}

type Config struct {
	Debug       bool `envconfig:"DEBUG"`
	Logging     Logging
	Host        string `envconfig:"HOST"`
	Port        int    `envconfig:"PORT"`
	MetricsPort int    `envconfig:"METRICS_PORT"`
	Database    Database
	RocketChat  RocketChat
}

type Database struct {
	Driver string `envconfig:"DATABASE_DRIVER"`
	Config string `envconfig:"DATABASE_CONFIG"`
}

// Logging provides the logging configuration.
type Logging struct {
	Debug  bool `envconfig:"DEBUG"`
	Trace  bool `envconfig:"TRACE"`
	Color  bool `envconfig:"LOGS_COLOR"`
	Pretty bool `envconfig:"LOGS_PRETTY"`
	Text   bool `envconfig:"LOGS_TEXT"`
}

type RocketChat struct {
	WebhookURL             string        `envconfig:"WEBHOOK_URL" yaml:"-"`
	Channel                string        `envconfig:"CHANNEL"`
	NotifyBackToNormalOnly bool          `envconfig:"NOTIFY_BACK_TO_NORMAL_ONLY"`
	ShowTestSummary        bool          `envconfig:"SHOW_TEST_SUMMARY"`
	DeliveryTimeout        time.Duration `envconfig:"DELIVERY_TIMEOUT"`
}
