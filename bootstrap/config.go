package bootstrap

import (
	"github.com/kbukum/mercurekit/config"
)

// Config is the constraint for application configuration types. Any struct
// embedding config.ServiceConfig satisfies it through promoted methods as
// long as it keeps or overrides ApplyDefaults and Validate.
//
//	type AppConfig struct {
//	    config.ServiceConfig `yaml:",inline" mapstructure:",squash"`
//	    Mercure mercure.Config `yaml:"mercure" mapstructure:"mercure"`
//	}
type Config interface {
	GetServiceConfig() *config.ServiceConfig
	ApplyDefaults()
	Validate() error
}
