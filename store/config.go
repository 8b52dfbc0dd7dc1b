package store

import (
	"fmt"
	"strings"

	"github.com/kelseyhightower/envconfig"
)

func NewConfig() (*Config, error) {
	cfg := &Config{}
	if err := envconfig.Process("", cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

type Config struct {
	DatabaseName string `envconfig:"COACH_DATABASE_NAME" default:"coach"`
	Hosts        string `envconfig:"COACH_STORE_ADDRESSES" default:"localhost"`
	OptParams    string `envconfig:"COACH_STORE_OPT_PARAMS"`
	Password     string `envconfig:"COACH_STORE_PASSWORD"`
	Scheme       string `envconfig:"COACH_STORE_SCHEME" default:"mongodb"`
	Ssl          bool   `envconfig:"COACH_STORE_TLS"`
	User         string `envconfig:"COACH_STORE_USERNAME"`

	// SnapshotReads runs the reads of one analytics request in a snapshot session.
	// Requires a replica set.
	SnapshotReads bool `envconfig:"COACH_STORE_SNAPSHOT_READS" default:"false"`
}

// GetConnectionString assembles the mongo uri. Unset scheme and hosts fall back to
// mongodb://localhost, and ssl is always stated explicitly.
func (c *Config) GetConnectionString() (string, error) {
	scheme, hosts := c.Scheme, c.Hosts
	if scheme == "" {
		scheme = "mongodb"
	}
	if hosts == "" {
		hosts = "localhost"
	}

	var b strings.Builder
	b.WriteString(scheme + "://")
	if c.User != "" {
		b.WriteString(c.User)
		if c.Password != "" {
			b.WriteString(":" + c.Password)
		}
		b.WriteString("@")
	}
	fmt.Fprintf(&b, "%s/?ssl=%t", hosts, c.Ssl)
	if c.OptParams != "" {
		b.WriteString("&" + c.OptParams)
	}
	return b.String(), nil
}
