package main

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"sort"
	"time"

	gojson "github.com/goccy/go-json"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ajitpratap0/lattice/pkg/config"
	"github.com/ajitpratap0/lattice/pkg/connector"
	"github.com/ajitpratap0/lattice/pkg/logger"
	"github.com/ajitpratap0/lattice/pkg/manager"

	// Import drivers to register them
	_ "github.com/ajitpratap0/lattice/pkg/connector/goredis"
	_ "github.com/ajitpratap0/lattice/pkg/connector/rueidis"
)

var version = "0.1.0"

func main() {
	// Load .env file if it exists
	_ = godotenv.Load() // Ignore error if .env doesn't exist

	var logLevel string

	root := &cobra.Command{
		Use:   "lattice",
		Short: "Lattice - connection resolution for Redis-compatible stores",
		Long: `Lattice resolves named logical connections from a configuration tree to
single-node, cluster or replica-set topologies, and caches the live
connections it constructs.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return logger.Init(logger.Config{Level: logLevel, Encoding: "console"})
		},
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")

	// Version command
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("Lattice v%s\n", version)
			fmt.Printf("Go version: %s\n", runtime.Version())
			fmt.Printf("OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	})

	// Drivers command
	root.AddCommand(&cobra.Command{
		Use:   "drivers",
		Short: "List registered drivers",
		Run: func(cmd *cobra.Command, args []string) {
			drivers := connector.List()
			sort.Strings(drivers)
			for _, name := range drivers {
				fmt.Printf("  - %s\n", name)
			}
		},
	})

	var configFile string

	// Connections command: classify every configured name without connecting
	connectionsCmd := &cobra.Command{
		Use:   "connections",
		Short: "Show configured connection names and their topologies",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configFile)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			type entry struct {
				Name     string `json:"name"`
				Topology string `json:"topology"`
				Nodes    int    `json:"nodes"`
			}

			entries := make([]entry, 0, len(cfg.Connections)+len(cfg.Clusters.Named))
			for name, conn := range cfg.Connections {
				e := entry{Name: name, Topology: string(manager.Classify(cfg, name)), Nodes: 1}
				if n := len(conn.Clusters); n > 0 {
					e.Nodes = n
				} else if n := len(conn.Replicas); n > 0 {
					e.Nodes = n
				}
				entries = append(entries, e)
			}
			for name, nodes := range cfg.Clusters.Named {
				if _, shadowed := cfg.Connections[name]; shadowed {
					continue
				}
				entries = append(entries, entry{
					Name:     name,
					Topology: string(manager.Classify(cfg, name)),
					Nodes:    len(nodes),
				})
			}
			sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })

			out, err := gojson.MarshalIndent(entries, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(out))
			return nil
		},
	}
	connectionsCmd.Flags().StringVarP(&configFile, "config", "c", "lattice.yaml", "Configuration file")
	root.AddCommand(connectionsCmd)

	// Ping command: resolve a connection and round-trip it
	var connectionName string
	var timeout time.Duration

	pingCmd := &cobra.Command{
		Use:   "ping",
		Short: "Resolve a connection and ping it",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configFile)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			mgr, err := manager.New("", cfg)
			if err != nil {
				return err
			}
			defer func() {
				if err := mgr.Close(); err != nil {
					logger.Warn("close failed", zap.Error(err))
				}
			}()

			ctx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()

			start := time.Now()
			conn, err := mgr.Connection(ctx, connectionName)
			if err != nil {
				return err
			}
			if err := conn.Ping(ctx); err != nil {
				return err
			}

			fmt.Printf("PONG from [%s] via %s in %s\n",
				connectionName, conn.Driver(), time.Since(start).Round(time.Microsecond))
			return nil
		},
	}
	pingCmd.Flags().StringVarP(&configFile, "config", "c", "lattice.yaml", "Configuration file")
	pingCmd.Flags().StringVarP(&connectionName, "connection", "n", manager.DefaultConnection, "Connection name")
	pingCmd.Flags().DurationVar(&timeout, "timeout", 10*time.Second, "Overall timeout")
	root.AddCommand(pingCmd)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
