// Package connector defines the driver contract that turns configuration
// into live store connections, and the registry drivers register with.
package connector

import (
	"context"
	"errors"
	"time"

	"github.com/ajitpratap0/lattice/pkg/config"
)

// ErrNil is returned by read commands when the key does not exist. Drivers
// translate their own nil-reply sentinel into this one so callers never
// depend on a driver library.
var ErrNil = errors.New("lattice: nil reply")

// Connector produces live connections from configuration. Exactly two
// operations exist: one for a single node and one for a set of nodes
// addressed collectively. The connector owns the option merge policy, which
// is why it receives the connection-scoped and global options separately.
type Connector interface {
	// ConnectSingle produces a connection to a single node.
	ConnectSingle(ctx context.Context, params config.Params, globalOptions config.Options) (Connection, error)

	// ConnectCluster produces a connection addressing nodes collectively.
	// Both cluster and primary/replica topologies arrive here; the node
	// list is what distinguishes them.
	ConnectCluster(ctx context.Context, nodes []config.Params, localOptions, globalOptions config.Options) (Connection, error)
}

// Commands is the command surface every connection handle exposes. The
// manager implements it too, forwarding each call to its default connection,
// which makes the manager a drop-in stand-in for that connection.
type Commands interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, expiration time.Duration) error
	Del(ctx context.Context, keys ...string) (int64, error)
	Exists(ctx context.Context, keys ...string) (int64, error)
	Incr(ctx context.Context, key string) (int64, error)
	Expire(ctx context.Context, key string, ttl time.Duration) (bool, error)
	TTL(ctx context.Context, key string) (time.Duration, error)
	Ping(ctx context.Context) error
}

// Connection is a live handle produced by a Connector. The manager never
// inspects it beyond this surface; it stores it and hands it back.
type Connection interface {
	Commands

	// Driver reports the name of the driver that produced the handle.
	Driver() string

	Close() error
}
