package main

import (
	"fmt"

	"github.com/kbukum/mercurekit/config"
	"github.com/kbukum/mercurekit/mercure"
	"github.com/kbukum/mercurekit/observability"
	"github.com/kbukum/mercurekit/server"
	"github.com/kbukum/mercurekit/token"
)

const serviceName = "mercure"

// AppConfig is the full configuration of the mercure binary.
type AppConfig struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`
	Server               server.Config        `yaml:"server" mapstructure:"server"`
	Mercure              mercure.Config       `yaml:"mercure" mapstructure:"mercure"`
	Observability        observability.Config `yaml:"observability" mapstructure:"observability"`
}

// ApplyDefaults sets defaults on every section. Without any configured key
// the development secret is used, and debug mode drops the Secure cookie
// attribute so the embedded hub works over plain HTTP.
func (c *AppConfig) ApplyDefaults() {
	c.ServiceConfig.ApplyDefaults()
	c.Server.ApplyDefaults()
	if c.Mercure.SecretKey == "" && c.Mercure.PublisherSecretKey == "" && c.Mercure.SubscriberSecretKey == "" {
		c.Mercure.SecretKey = token.DefaultSecret
	}
	if c.Debug {
		c.Mercure.InsecureCookie = true
	}
	c.Mercure.ApplyDefaults()
	if c.Observability.Environment == "" {
		c.Observability.Environment = c.Environment
	}
	c.Observability.ApplyDefaults()
}

// Validate validates every section.
func (c *AppConfig) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}
	if err := c.Server.Validate(); err != nil {
		return err
	}
	if err := c.Mercure.Validate(); err != nil {
		return fmt.Errorf("mercure: %w", err)
	}
	if err := c.Observability.Validate(); err != nil {
		return fmt.Errorf("observability: %w", err)
	}
	return nil
}

func loadConfig(configFile, envFile string) (*AppConfig, error) {
	var opts []config.LoaderOption
	if configFile != "" {
		opts = append(opts, config.WithConfigFile(configFile))
	}
	if envFile != "" {
		opts = append(opts, config.WithEnvFile(envFile))
	}

	cfg := &AppConfig{}
	if err := config.LoadConfig(serviceName, cfg, opts...); err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
