package x_bus

import (
	"github.com/rskv-p/fpmine/constant"
)

// Config selects the NATS server itemsets are published to.
type Config struct {
	URL      string `json:"url" mapstructure:"url"`
	Subject  string `json:"subject" mapstructure:"subject"`
	Embedded bool   `json:"embedded" mapstructure:"embedded"` // run an in-process server
	Host     string `json:"host" mapstructure:"host"`         // embedded listen host
	Port     int    `json:"port" mapstructure:"port"`         // embedded listen port, -1 for random
}

// DefaultConfig returns the local defaults.
func DefaultConfig() Config {
	return Config{
		URL:     constant.DefaultNatsURL,
		Subject: constant.DefaultSubject,
		Host:    "127.0.0.1",
		Port:    4222,
	}
}

// ApplyDefaults fills missing values.
func (c *Config) ApplyDefaults() {
	d := DefaultConfig()
	if c.URL == "" {
		c.URL = d.URL
	}
	if c.Subject == "" {
		c.Subject = d.Subject
	}
	if c.Host == "" {
		c.Host = d.Host
	}
	if c.Port == 0 {
		c.Port = d.Port
	}
}
