// Package lattice provides connection resolution for Redis-compatible
// key-value stores: a configuration tree maps logical connection names to
// physical topologies (single node, cluster, primary/replica set), and a
// manager turns those names into live, cached connections through
// pluggable drivers.
//
// # Architecture
//
// Four pieces cooperate:
//
// 1. The configuration tree (pkg/config) models named entries, the global
// options entry and the legacy clusters namespace.
//
// 2. Drivers (pkg/connector/goredis, pkg/connector/rueidis) implement the
// two-operation connector contract and self-register with the driver
// registry via init.
//
// 3. The resolver inside the manager (pkg/manager) classifies a name with a
// fixed priority chain: a clusters sub-entry wins over a replicas sub-entry,
// which wins over flat parameters, with the legacy top-level clusters
// namespace as a final fallback.
//
// 4. The registry of resolved connections caches every handle until the
// manager closes.
//
// # Quick Start
//
//	cfg, err := config.Load("lattice.yaml")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	mgr, err := manager.New("goredis", cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer mgr.Close()
//
//	cache, err := mgr.Connection(ctx, "cache")
//	if err != nil {
//		log.Fatal(err)
//	}
//	value, err := cache.Get(ctx, "greeting")
//
// The manager also stands in for its default connection, so mgr.Get(ctx, k)
// is mgr.Connection(ctx, "default") followed by Get.
package lattice
