// Package goredis implements the connector contract on top of
// github.com/redis/go-redis. Single nodes use redis.Client, collective
// topologies use redis.ClusterClient; both are handed back behind the
// driver-neutral Connection interface.
package goredis

import (
	"context"
	"crypto/tls"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/ajitpratap0/lattice/pkg/config"
	"github.com/ajitpratap0/lattice/pkg/connector"
	"github.com/ajitpratap0/lattice/pkg/errors"
	"github.com/ajitpratap0/lattice/pkg/logger"
)

// Driver is the name this connector registers under.
const Driver = "goredis"

func init() {
	if err := connector.Register(Driver, New); err != nil {
		logger.Error("failed to register goredis driver", zap.Error(err))
	}
}

// New creates a goredis connector
func New() (connector.Connector, error) {
	return &Connector{
		logger: logger.Get().With(zap.String("component", "goredis_connector")),
	}, nil
}

// Connector builds go-redis backed connections.
type Connector struct {
	logger *zap.Logger
}

// ConnectSingle connects to a single node described by params. Global
// options apply as-is; a single connection has no local options entry.
func (c *Connector) ConnectSingle(ctx context.Context, params config.Params, globalOptions config.Options) (connector.Connection, error) {
	opts, err := buildOptions(params, globalOptions)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, errors.Wrap(err, errors.ErrorTypeConnection, "failed to connect to "+params.Addr())
	}

	c.logger.Debug("single connection established", zap.String("addr", opts.Addr))
	return &conn{client: client, prefix: globalOptions.Prefix}, nil
}

// ConnectCluster connects to a set of nodes addressed collectively. The
// local options override the global ones field by field.
func (c *Connector) ConnectCluster(ctx context.Context, nodes []config.Params, localOptions, globalOptions config.Options) (connector.Connection, error) {
	if len(nodes) == 0 {
		return nil, errors.New(errors.ErrorTypeConfig, "cluster topology needs at least one node")
	}

	merged := localOptions.MergedUnder(globalOptions)
	opts := buildClusterOptions(nodes, merged)

	client := redis.NewClusterClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, errors.Wrap(err, errors.ErrorTypeConnection, "failed to connect to cluster")
	}

	c.logger.Debug("cluster connection established", zap.Strings("addrs", opts.Addrs))
	return &conn{client: client, prefix: merged.Prefix}, nil
}

// buildOptions maps node params and options onto go-redis single-node
// options. A url param wins over the discrete fields.
func buildOptions(params config.Params, options config.Options) (*redis.Options, error) {
	var opts *redis.Options
	if params.URL != "" {
		parsed, err := redis.ParseURL(params.URL)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrorTypeConfig, "invalid connection url")
		}
		opts = parsed
	} else {
		opts = &redis.Options{
			Addr:     params.Addr(),
			Username: params.Username,
			Password: params.Password,
			DB:       params.Database,
		}
		if params.TLS {
			opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
		}
	}

	opts.MaxRetries = options.MaxRetries
	opts.DialTimeout = options.DialTimeout
	opts.ReadTimeout = options.ReadTimeout
	opts.WriteTimeout = options.WriteTimeout
	opts.PoolSize = options.PoolSize
	return opts, nil
}

// buildClusterOptions maps a node list and merged options onto go-redis
// cluster options. Credentials come from the first node that carries them.
func buildClusterOptions(nodes []config.Params, options config.Options) *redis.ClusterOptions {
	opts := &redis.ClusterOptions{
		Addrs:        make([]string, 0, len(nodes)),
		MaxRetries:   options.MaxRetries,
		DialTimeout:  options.DialTimeout,
		ReadTimeout:  options.ReadTimeout,
		WriteTimeout: options.WriteTimeout,
		PoolSize:     options.PoolSize,
	}

	for _, node := range nodes {
		opts.Addrs = append(opts.Addrs, node.Addr())
		if opts.Username == "" {
			opts.Username = node.Username
		}
		if opts.Password == "" {
			opts.Password = node.Password
		}
		if node.TLS && opts.TLSConfig == nil {
			opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
		}
	}

	return opts
}

// conn adapts a go-redis client to the Connection interface. Both Client and
// ClusterClient satisfy UniversalClient, so one adapter covers both shapes.
type conn struct {
	client redis.UniversalClient
	prefix string
}

func (c *conn) key(k string) string {
	return c.prefix + k
}

func (c *conn) keys(ks []string) []string {
	if c.prefix == "" {
		return ks
	}
	prefixed := make([]string, len(ks))
	for i, k := range ks {
		prefixed[i] = c.prefix + k
	}
	return prefixed
}

func (c *conn) Get(ctx context.Context, key string) (string, error) {
	v, err := c.client.Get(ctx, c.key(key)).Result()
	if err == redis.Nil {
		return "", connector.ErrNil
	}
	return v, err
}

func (c *conn) Set(ctx context.Context, key, value string, expiration time.Duration) error {
	return c.client.Set(ctx, c.key(key), value, expiration).Err()
}

func (c *conn) Del(ctx context.Context, keys ...string) (int64, error) {
	return c.client.Del(ctx, c.keys(keys)...).Result()
}

func (c *conn) Exists(ctx context.Context, keys ...string) (int64, error) {
	return c.client.Exists(ctx, c.keys(keys)...).Result()
}

func (c *conn) Incr(ctx context.Context, key string) (int64, error) {
	return c.client.Incr(ctx, c.key(key)).Result()
}

func (c *conn) Expire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	return c.client.Expire(ctx, c.key(key), ttl).Result()
}

func (c *conn) TTL(ctx context.Context, key string) (time.Duration, error) {
	return c.client.TTL(ctx, c.key(key)).Result()
}

func (c *conn) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *conn) Driver() string {
	return Driver
}

func (c *conn) Close() error {
	return c.client.Close()
}
