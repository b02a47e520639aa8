package connector_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajitpratap0/lattice/pkg/config"
	"github.com/ajitpratap0/lattice/pkg/connector"
	"github.com/ajitpratap0/lattice/pkg/errors"
)

type nopConnector struct{}

func (nopConnector) ConnectSingle(ctx context.Context, params config.Params, globalOptions config.Options) (connector.Connection, error) {
	return nil, nil
}

func (nopConnector) ConnectCluster(ctx context.Context, nodes []config.Params, localOptions, globalOptions config.Options) (connector.Connection, error) {
	return nil, nil
}

func nopFactory() (connector.Connector, error) {
	return nopConnector{}, nil
}

func TestRegistry_RegisterAndCreate(t *testing.T) {
	registry := connector.NewRegistry()

	require.NoError(t, registry.Register("test", nopFactory))
	assert.True(t, registry.Has("test"))
	assert.Equal(t, []string{"test"}, registry.List())

	conn, err := registry.Create("test")
	require.NoError(t, err)
	assert.NotNil(t, conn)
}

func TestRegistry_DuplicateRegistration(t *testing.T) {
	registry := connector.NewRegistry()

	require.NoError(t, registry.Register("test", nopFactory))
	err := registry.Register("test", nopFactory)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeConfig))
	assert.Contains(t, err.Error(), "already registered")
}

func TestRegistry_UnknownDriver(t *testing.T) {
	registry := connector.NewRegistry()

	_, err := registry.Create("missing")
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeConfig))
	assert.Contains(t, err.Error(), "driver missing not registered")
}

func TestRegistry_FactoryFailure(t *testing.T) {
	registry := connector.NewRegistry()

	require.NoError(t, registry.Register("broken", func() (connector.Connector, error) {
		return nil, errors.New(errors.ErrorTypeInternal, "boom")
	}))

	_, err := registry.Create("broken")
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeConfig))
	assert.Contains(t, err.Error(), "failed to create connector for driver broken")
}

func TestRegistry_Clear(t *testing.T) {
	registry := connector.NewRegistry()

	require.NoError(t, registry.Register("test", nopFactory))
	registry.Clear()
	assert.False(t, registry.Has("test"))
	assert.Empty(t, registry.List())
}
