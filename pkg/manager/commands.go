package manager

import (
	"context"
	"time"

	"github.com/ajitpratap0/lattice/pkg/connector"
)

// The manager is a drop-in stand-in for its default connection: every
// command resolves "default" and forwards to it. A resolution failure
// surfaces through the command's own error return.
var _ connector.Commands = (*Manager)(nil)

func (m *Manager) Get(ctx context.Context, key string) (string, error) {
	conn, err := m.Connection(ctx, DefaultConnection)
	if err != nil {
		return "", err
	}
	return conn.Get(ctx, key)
}

func (m *Manager) Set(ctx context.Context, key, value string, expiration time.Duration) error {
	conn, err := m.Connection(ctx, DefaultConnection)
	if err != nil {
		return err
	}
	return conn.Set(ctx, key, value, expiration)
}

func (m *Manager) Del(ctx context.Context, keys ...string) (int64, error) {
	conn, err := m.Connection(ctx, DefaultConnection)
	if err != nil {
		return 0, err
	}
	return conn.Del(ctx, keys...)
}

func (m *Manager) Exists(ctx context.Context, keys ...string) (int64, error) {
	conn, err := m.Connection(ctx, DefaultConnection)
	if err != nil {
		return 0, err
	}
	return conn.Exists(ctx, keys...)
}

func (m *Manager) Incr(ctx context.Context, key string) (int64, error) {
	conn, err := m.Connection(ctx, DefaultConnection)
	if err != nil {
		return 0, err
	}
	return conn.Incr(ctx, key)
}

func (m *Manager) Expire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	conn, err := m.Connection(ctx, DefaultConnection)
	if err != nil {
		return false, err
	}
	return conn.Expire(ctx, key, ttl)
}

func (m *Manager) TTL(ctx context.Context, key string) (time.Duration, error) {
	conn, err := m.Connection(ctx, DefaultConnection)
	if err != nil {
		return 0, err
	}
	return conn.TTL(ctx, key)
}

func (m *Manager) Ping(ctx context.Context) error {
	conn, err := m.Connection(ctx, DefaultConnection)
	if err != nil {
		return err
	}
	return conn.Ping(ctx)
}
