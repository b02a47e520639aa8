package manager

import (
	"context"

	"go.uber.org/zap"

	"github.com/ajitpratap0/lattice/pkg/config"
	"github.com/ajitpratap0/lattice/pkg/connector"
	"github.com/ajitpratap0/lattice/pkg/errors"
	"github.com/ajitpratap0/lattice/pkg/metrics"
)

// Topology is the physical shape a logical connection name resolves to.
type Topology string

const (
	// TopologySingle is a flat entry: one node, connected directly.
	TopologySingle Topology = "single"
	// TopologyClusterOption is an entry carrying a clusters node list.
	TopologyClusterOption Topology = "cluster_option"
	// TopologyReplicaOption is an entry carrying a replicas node list.
	TopologyReplicaOption Topology = "replica_option"
	// TopologyCluster is a name found only under the legacy top-level
	// clusters namespace.
	TopologyCluster Topology = "cluster"
	// TopologyUndefined means the name matches no resolution path.
	TopologyUndefined Topology = "undefined"
)

// Classify applies the resolution priority chain to name. The order is a
// contract: an entry carrying both flat params and a clusters or replicas
// sub-entry is a topology descriptor, not a flat connection, and the legacy
// top-level clusters namespace is only consulted when the name has no direct
// entry at all.
func Classify(cfg *config.Config, name string) Topology {
	if entry, ok := cfg.Connections[name]; ok {
		switch {
		case len(entry.Clusters) > 0:
			return TopologyClusterOption
		case len(entry.Replicas) > 0:
			return TopologyReplicaOption
		default:
			return TopologySingle
		}
	}
	if _, ok := cfg.Clusters.Named[name]; ok {
		return TopologyCluster
	}
	return TopologyUndefined
}

// resolve runs the classification and dispatches to the connector. name must
// already be normalized.
func (m *Manager) resolve(ctx context.Context, name string) (connector.Connection, error) {
	topology := Classify(m.cfg, name)
	if topology == TopologyUndefined {
		metrics.ResolutionsTotal.WithLabelValues(m.driver, string(topology), "failure").Inc()
		return nil, errors.Newf(errors.ErrorTypeConfig, "connection [%s] not configured", name)
	}

	timer := metrics.NewTimer(m.driver, string(topology))
	conn, err := m.connect(ctx, name, topology)
	timer.ObserveDuration()

	if err != nil {
		metrics.ResolutionsTotal.WithLabelValues(m.driver, string(topology), "failure").Inc()
		return nil, err
	}

	metrics.ResolutionsTotal.WithLabelValues(m.driver, string(topology), "success").Inc()
	m.logger.Debug("connection resolved",
		zap.String("connection", name),
		zap.String("topology", string(topology)))
	return conn, nil
}

// connect dispatches a classified name to the matching connector operation.
// The connector receives local and global options separately; it owns the
// merge policy.
func (m *Manager) connect(ctx context.Context, name string, topology Topology) (connector.Connection, error) {
	switch topology {
	case TopologyClusterOption:
		entry := m.cfg.Connections[name]
		return m.connector.ConnectCluster(ctx, entry.Clusters, entry.Options, m.cfg.Options)
	case TopologyReplicaOption:
		entry := m.cfg.Connections[name]
		return m.connector.ConnectCluster(ctx, entry.Replicas, entry.Options, m.cfg.Options)
	case TopologySingle:
		entry := m.cfg.Connections[name]
		return m.connector.ConnectSingle(ctx, entry.Params, m.cfg.Options)
	case TopologyCluster:
		return m.connector.ConnectCluster(ctx, m.cfg.Clusters.Named[name], m.cfg.Clusters.Options, m.cfg.Options)
	default:
		return nil, errors.Newf(errors.ErrorTypeConfig, "connection [%s] not configured", name)
	}
}
