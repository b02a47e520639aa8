package manager_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ajitpratap0/lattice/pkg/config"
	"github.com/ajitpratap0/lattice/pkg/manager"
)

// The classification order is a contract: later cases are unreachable once an
// earlier one matches, even when an entry satisfies several shapes at once.
func TestClassify_PriorityChain(t *testing.T) {
	node := config.Params{Host: "n1"}

	cfg := &config.Config{
		Connections: map[string]config.Connection{
			"flat": {Params: config.Params{Host: "h1"}},
			"with-clusters": {
				Clusters: []config.Params{node},
			},
			"with-replicas": {
				Replicas: []config.Params{node},
			},
			"clusters-beat-replicas": {
				Clusters: []config.Params{node},
				Replicas: []config.Params{node},
			},
			"clusters-beat-flat": {
				Params:   config.Params{Host: "h1"},
				Clusters: []config.Params{node},
			},
			"replicas-beat-flat": {
				Params:   config.Params{Host: "h1"},
				Replicas: []config.Params{node},
			},
			"shadowed": {Params: config.Params{Host: "direct"}},
		},
		Clusters: config.ClusterNamespace{
			Named: map[string][]config.Params{
				"legacy":   {node, node},
				"shadowed": {node},
			},
		},
	}

	tests := []struct {
		name string
		want manager.Topology
	}{
		{"flat", manager.TopologySingle},
		{"with-clusters", manager.TopologyClusterOption},
		{"with-replicas", manager.TopologyReplicaOption},
		{"clusters-beat-replicas", manager.TopologyClusterOption},
		{"clusters-beat-flat", manager.TopologyClusterOption},
		{"replicas-beat-flat", manager.TopologyReplicaOption},
		{"legacy", manager.TopologyCluster},
		// A direct entry hides the legacy namespace entirely.
		{"shadowed", manager.TopologySingle},
		{"absent", manager.TopologyUndefined},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, manager.Classify(cfg, tt.name))
		})
	}
}

func TestClassify_EmptyTree(t *testing.T) {
	cfg := &config.Config{}
	assert.Equal(t, manager.TopologyUndefined, manager.Classify(cfg, "default"))
}
