package observability

import (
	"fmt"
	"time"
)

// Config controls OpenTelemetry export for a mercure process.
type Config struct {
	Enabled     bool          `yaml:"enabled" mapstructure:"enabled"`
	Endpoint    string        `yaml:"endpoint" mapstructure:"endpoint"` // OTLP HTTP host:port
	Insecure    bool          `yaml:"insecure" mapstructure:"insecure"`
	Environment string        `yaml:"environment" mapstructure:"environment"`
	SampleRate  float64       `yaml:"sample_rate" mapstructure:"sample_rate"` // 0 means 1.0
	Interval    time.Duration `yaml:"interval" mapstructure:"interval"`       // metric export interval
}

// ApplyDefaults sets default values for unset fields.
func (c *Config) ApplyDefaults() {
	if c.Endpoint == "" {
		c.Endpoint = "localhost:4318"
	}
	if c.Environment == "" {
		c.Environment = "development"
	}
	if c.SampleRate == 0 {
		c.SampleRate = 1.0
	}
	if c.Interval == 0 {
		c.Interval = 15 * time.Second
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.SampleRate < 0 || c.SampleRate > 1 {
		return fmt.Errorf("observability.sample_rate must be between 0 and 1 (got: %v)", c.SampleRate)
	}
	if c.Interval < 0 {
		return fmt.Errorf("observability.interval must be non-negative (got: %s)", c.Interval)
	}
	return nil
}

// TracerConfig derives the tracer settings for a service.
func (c Config) TracerConfig(serviceName, serviceVersion string) *TracerConfig {
	return &TracerConfig{
		ServiceName:    serviceName,
		ServiceVersion: serviceVersion,
		Environment:    c.Environment,
		Endpoint:       c.Endpoint,
		Insecure:       c.Insecure,
		SampleRate:     c.SampleRate,
	}
}

// MeterConfig derives the meter settings for a service.
func (c Config) MeterConfig(serviceName, serviceVersion string) *MeterConfig {
	return &MeterConfig{
		ServiceName:    serviceName,
		ServiceVersion: serviceVersion,
		Environment:    c.Environment,
		Endpoint:       c.Endpoint,
		Insecure:       c.Insecure,
		Interval:       c.Interval,
	}
}
