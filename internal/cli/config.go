package cli

import (
	"errors"

	"github.com/BonEvil/DPSessionManager/config"
	"github.com/BonEvil/DPSessionManager/observability"
	"github.com/BonEvil/DPSessionManager/server"
	"github.com/BonEvil/DPSessionManager/session"
	"github.com/BonEvil/DPSessionManager/version"
)

// Config is the dpsession configuration file.
//
//	name: dpsession
//	logging:
//	  level: debug
//	session:
//	  max_concurrent: 4
//	  tls:
//	    ca_file: /etc/ssl/internal-ca.pem
//	observability:
//	  tracing:
//	    enabled: true
//	    endpoint: localhost:4318
type Config struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`

	Session       session.Config       `yaml:"session" mapstructure:"session"`
	Server        server.Config        `yaml:"server" mapstructure:"server"`
	Observability observability.Config `yaml:"observability" mapstructure:"observability"`
}

// ApplyDefaults fills unset fields in every section.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = appName
	}
	if c.Version == "" {
		c.Version = version.Get().Short()
	}
	c.ServiceConfig.ApplyDefaults()
	c.Session.ApplyDefaults()
	c.Server.ApplyDefaults()
	c.Observability.ApplyDefaults(c.Name)
}

// Validate checks every section.
func (c *Config) Validate() error {
	return errors.Join(
		c.ServiceConfig.Validate(),
		c.Session.Validate(),
		c.Server.Validate(),
	)
}

// loadConfig reads the configuration file, .env file and DPSESSION_*
// environment variables over the built-in defaults. An empty path searches
// the usual locations.
func loadConfig(path string) (*Config, error) {
	cfg := &Config{Session: session.DefaultConfig()}
	var opts []config.LoaderOption
	if path != "" {
		opts = append(opts, config.WithConfigFile(path))
	}
	if err := config.LoadConfig(appName, cfg, opts...); err != nil {
		return nil, err
	}
	return cfg, nil
}
