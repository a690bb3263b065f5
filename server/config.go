package server

import (
	"fmt"
	"net/http"

	"github.com/BonEvil/DPSessionManager/validation"
)

// Config holds echo server configuration.
type Config struct {
	Host         string `yaml:"host" mapstructure:"host"`
	Port         int    `yaml:"port" mapstructure:"port"`
	ReadTimeout  int    `yaml:"read_timeout" mapstructure:"read_timeout"`   // seconds
	WriteTimeout int    `yaml:"write_timeout" mapstructure:"write_timeout"` // seconds
	IdleTimeout  int    `yaml:"idle_timeout" mapstructure:"idle_timeout"`   // seconds

	// ContentType is declared on echo responses unless the request asks for
	// another one. "none" omits the header.
	ContentType string `yaml:"content_type" mapstructure:"content_type"`
	// Status is the echo response status unless the request asks for another.
	Status int `yaml:"status" mapstructure:"status"`
}

// ApplyDefaults sets default values for unset fields. A zero Port stays
// zero and binds an ephemeral port.
func (c *Config) ApplyDefaults() {
	if c.Host == "" {
		c.Host = "127.0.0.1"
	}
	if c.ReadTimeout == 0 {
		c.ReadTimeout = 15
	}
	if c.WriteTimeout == 0 {
		c.WriteTimeout = 15
	}
	if c.IdleTimeout == 0 {
		c.IdleTimeout = 60
	}
	if c.ContentType == "" {
		c.ContentType = "application/json"
	}
	if c.Status == 0 {
		c.Status = http.StatusOK
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	return validation.New("server").
		Check(c.Port >= 0 && c.Port <= 65535, "port", fmt.Sprintf("must be between 0 and 65535 (got: %d)", c.Port)).
		NonNegative("read_timeout", int64(c.ReadTimeout)).
		NonNegative("write_timeout", int64(c.WriteTimeout)).
		NonNegative("idle_timeout", int64(c.IdleTimeout)).
		Check(validStatus(c.Status), "status", fmt.Sprintf("must be a valid HTTP status (got: %d)", c.Status)).
		Err()
}

func validStatus(code int) bool {
	return code >= 100 && code <= 599
}
