// Package rueidis implements the connector contract on top of
// github.com/redis/rueidis. rueidis drives single nodes and clusters through
// the same client, so both connector operations funnel into one constructor;
// only the initial address list differs.
package rueidis

import (
	"context"
	"crypto/tls"
	"net"
	"time"

	rue "github.com/redis/rueidis"
	"go.uber.org/zap"

	"github.com/ajitpratap0/lattice/pkg/config"
	"github.com/ajitpratap0/lattice/pkg/connector"
	"github.com/ajitpratap0/lattice/pkg/errors"
	"github.com/ajitpratap0/lattice/pkg/logger"
)

// Driver is the name this connector registers under.
const Driver = "rueidis"

func init() {
	if err := connector.Register(Driver, New); err != nil {
		logger.Error("failed to register rueidis driver", zap.Error(err))
	}
}

// New creates a rueidis connector
func New() (connector.Connector, error) {
	return &Connector{
		logger: logger.Get().With(zap.String("component", "rueidis_connector")),
	}, nil
}

// Connector builds rueidis backed connections.
type Connector struct {
	logger *zap.Logger
}

func (c *Connector) ConnectSingle(ctx context.Context, params config.Params, globalOptions config.Options) (connector.Connection, error) {
	opt := buildClientOption([]config.Params{params}, globalOptions)
	opt.SelectDB = params.Database

	client, err := rue.NewClient(opt)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeConnection, "failed to connect to "+params.Addr())
	}

	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		client.Close()
		return nil, errors.Wrap(err, errors.ErrorTypeConnection, "failed to ping "+params.Addr())
	}

	c.logger.Debug("single connection established", zap.String("addr", params.Addr()))
	return &conn{client: client, prefix: globalOptions.Prefix}, nil
}

func (c *Connector) ConnectCluster(ctx context.Context, nodes []config.Params, localOptions, globalOptions config.Options) (connector.Connection, error) {
	if len(nodes) == 0 {
		return nil, errors.New(errors.ErrorTypeConfig, "cluster topology needs at least one node")
	}

	merged := localOptions.MergedUnder(globalOptions)
	opt := buildClientOption(nodes, merged)
	opt.ShuffleInit = true

	client, err := rue.NewClient(opt)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeConnection, "failed to connect to cluster")
	}

	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		client.Close()
		return nil, errors.Wrap(err, errors.ErrorTypeConnection, "failed to ping cluster")
	}

	c.logger.Debug("cluster connection established", zap.Int("nodes", len(nodes)))
	return &conn{client: client, prefix: merged.Prefix}, nil
}

// buildClientOption maps a node list and options onto a rueidis ClientOption.
// Credentials come from the first node that carries them. Client-side caching
// stays off so RESP2-only servers keep working.
func buildClientOption(nodes []config.Params, options config.Options) rue.ClientOption {
	opt := rue.ClientOption{
		InitAddress:  make([]string, 0, len(nodes)),
		DisableCache: true,
		Dialer:       net.Dialer{Timeout: options.DialTimeout},
	}

	for _, node := range nodes {
		opt.InitAddress = append(opt.InitAddress, node.Addr())
		if opt.Username == "" {
			opt.Username = node.Username
		}
		if opt.Password == "" {
			opt.Password = node.Password
		}
		if node.TLS && opt.TLSConfig == nil {
			opt.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
		}
	}

	if options.WriteTimeout > 0 {
		opt.ConnWriteTimeout = options.WriteTimeout
	}
	if options.PoolSize > 0 {
		opt.BlockingPoolSize = options.PoolSize
	}
	// rueidis retries internally; a negative max_retries disables it.
	if options.MaxRetries < 0 {
		opt.DisableRetry = true
	}

	return opt
}

// conn adapts a rueidis client to the Connection interface.
type conn struct {
	client rue.Client
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
	v, err := c.client.Do(ctx, c.client.B().Get().Key(c.key(key)).Build()).ToString()
	if rue.IsRedisNil(err) {
		return "", connector.ErrNil
	}
	return v, err
}

func (c *conn) Set(ctx context.Context, key, value string, expiration time.Duration) error {
	builder := c.client.B().Set().Key(c.key(key)).Value(value)
	if expiration > 0 {
		return c.client.Do(ctx, builder.Ex(expiration).Build()).Error()
	}
	return c.client.Do(ctx, builder.Build()).Error()
}

func (c *conn) Del(ctx context.Context, keys ...string) (int64, error) {
	return c.client.Do(ctx, c.client.B().Del().Key(c.keys(keys)...).Build()).AsInt64()
}

func (c *conn) Exists(ctx context.Context, keys ...string) (int64, error) {
	return c.client.Do(ctx, c.client.B().Exists().Key(c.keys(keys)...).Build()).AsInt64()
}

func (c *conn) Incr(ctx context.Context, key string) (int64, error) {
	return c.client.Do(ctx, c.client.B().Incr().Key(c.key(key)).Build()).AsInt64()
}

func (c *conn) Expire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	return c.client.Do(ctx, c.client.B().Expire().Key(c.key(key)).Seconds(int64(ttl.Seconds())).Build()).AsBool()
}

func (c *conn) TTL(ctx context.Context, key string) (time.Duration, error) {
	seconds, err := c.client.Do(ctx, c.client.B().Ttl().Key(c.key(key)).Build()).AsInt64()
	if err != nil {
		return 0, err
	}
	return time.Duration(seconds) * time.Second, nil
}

func (c *conn) Ping(ctx context.Context) error {
	return c.client.Do(ctx, c.client.B().Ping().Build()).Error()
}

func (c *conn) Driver() string {
	return Driver
}

func (c *conn) Close() error {
	c.client.Close()
	return nil
}
