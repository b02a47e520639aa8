// Package config defines the configuration tree for lattice.
// The tree maps logical connection names to per-connection entries and
// carries two reserved top-level entries: "options" (global defaults applied
// to every connection) and "clusters" (the legacy cluster namespace).
//
// A per-connection entry may hold flat node parameters, an options override,
// a "clusters" node list (cluster-as-first-class-citizen form), or a
// "replicas" node list (primary/replica form). Which of these governs the
// entry is decided by the manager's resolution chain, not here; this package
// only models the shapes.
//
// Example:
//
//	driver: goredis
//	options:
//	  prefix: "app:"
//	main:
//	  host: redis-1.internal
//	  port: 6379
//	cache:
//	  options:
//	    pool_size: 32
//	  clusters:
//	    - host: c1.internal
//	    - host: c2.internal
package config

import (
	"net"
	"strconv"
	"time"

	"github.com/ajitpratap0/lattice/pkg/errors"
)

// DefaultPort is used when a node omits its port.
const DefaultPort = 6379

// Params holds the flat connection parameters for one node.
// URL, when set, takes precedence over the discrete fields; connectors own
// that interpretation.
type Params struct {
	URL      string `yaml:"url" json:"url,omitempty"`
	Host     string `yaml:"host" json:"host,omitempty"`
	Port     int    `yaml:"port" json:"port,omitempty"`
	Username string `yaml:"username" json:"username,omitempty"`
	Password string `yaml:"password" json:"-"`
	Database int    `yaml:"database" json:"database,omitempty"`
	TLS      bool   `yaml:"tls" json:"tls,omitempty"`
}

// Addr returns the host:port address for the node, applying defaults for
// missing pieces.
func (p Params) Addr() string {
	host := p.Host
	if host == "" {
		host = "127.0.0.1"
	}
	port := p.Port
	if port == 0 {
		port = DefaultPort
	}
	return net.JoinHostPort(host, strconv.Itoa(port))
}

// Options carries connection tunables. A connection-scoped Options entry
// overrides the global one field by field; connectors perform that merge via
// MergedUnder.
type Options struct {
	Prefix       string        `yaml:"prefix" json:"prefix,omitempty"`
	MaxRetries   int           `yaml:"max_retries" json:"max_retries,omitempty"`
	DialTimeout  time.Duration `yaml:"dial_timeout" json:"dial_timeout,omitempty"`
	ReadTimeout  time.Duration `yaml:"read_timeout" json:"read_timeout,omitempty"`
	WriteTimeout time.Duration `yaml:"write_timeout" json:"write_timeout,omitempty"`
	PoolSize     int           `yaml:"pool_size" json:"pool_size,omitempty"`
}

// MergedUnder returns a copy of o with zero-valued fields filled in from
// global. Local values always win.
func (o Options) MergedUnder(global Options) Options {
	merged := o
	if merged.Prefix == "" {
		merged.Prefix = global.Prefix
	}
	if merged.MaxRetries == 0 {
		merged.MaxRetries = global.MaxRetries
	}
	if merged.DialTimeout == 0 {
		merged.DialTimeout = global.DialTimeout
	}
	if merged.ReadTimeout == 0 {
		merged.ReadTimeout = global.ReadTimeout
	}
	if merged.WriteTimeout == 0 {
		merged.WriteTimeout = global.WriteTimeout
	}
	if merged.PoolSize == 0 {
		merged.PoolSize = global.PoolSize
	}
	return merged
}

// Connection is one named entry in the configuration tree. The structural
// checks on Clusters, Replicas and the flat Params are independent; the
// manager evaluates them in a fixed priority order.
type Connection struct {
	Params   Params   `yaml:",inline" json:"params"`
	Options  Options  `yaml:"options" json:"options"`
	Clusters []Params `yaml:"clusters" json:"clusters,omitempty"`
	Replicas []Params `yaml:"replicas" json:"replicas,omitempty"`
}

// ClusterNamespace is the reserved legacy "clusters" entry: its own options
// plus a mapping from cluster name to node list.
type ClusterNamespace struct {
	Options Options             `yaml:"options" json:"options"`
	Named   map[string][]Params `yaml:",inline" json:"named,omitempty"`
}

// Config is the configuration tree supplied once at manager construction and
// read-only for the manager's lifetime. Every top-level YAML key that is not
// driver, options or clusters is a connection entry.
type Config struct {
	Driver      string                `yaml:"driver" json:"driver"`
	Options     Options               `yaml:"options" json:"options"`
	Clusters    ClusterNamespace      `yaml:"clusters" json:"clusters"`
	Connections map[string]Connection `yaml:",inline" json:"connections"`
}

// Validate checks the tree for the problems this layer can catch early.
// Shape problems inside entries (a clusters list with unreachable nodes,
// contradictory params) are left to the connector.
func (c *Config) Validate() error {
	if c.Driver == "" {
		return errors.New(errors.ErrorTypeValidation, "driver is required")
	}
	for name, conn := range c.Connections {
		for i, node := range conn.Clusters {
			if node.URL == "" && node.Host == "" {
				return errors.Newf(errors.ErrorTypeValidation,
					"connection [%s] clusters[%d] needs a host or url", name, i)
			}
		}
		for i, node := range conn.Replicas {
			if node.URL == "" && node.Host == "" {
				return errors.Newf(errors.ErrorTypeValidation,
					"connection [%s] replicas[%d] needs a host or url", name, i)
			}
		}
	}
	return nil
}
