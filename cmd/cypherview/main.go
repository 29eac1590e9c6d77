// Package main provides the cypherview CLI entry point.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/orneryd/cypherview/pkg/colorstore"
	"github.com/orneryd/cypherview/pkg/config"
	"github.com/orneryd/cypherview/pkg/interp"
	"github.com/orneryd/cypherview/pkg/neo4j"
	"github.com/orneryd/cypherview/pkg/result"
	"github.com/orneryd/cypherview/pkg/schema"
)

var (
	version = "0.1.0"
	commit  = "dev"
)

var configFile string

func main() {
	rootCmd := &cobra.Command{
		Use:   "cypherview",
		Short: "cypherview - render Cypher query results as tables or graphs",
		Long: `cypherview executes Cypher statements against a Neo4j-compatible
engine and renders the result of the last statement either as a
fixed-width table or as a node/relationship graph with stable label
colors.

Connection settings come from NEO4J_* environment variables
(NEO4J_URI, NEO4J_AUTH, ...) and can be overridden with --config.`,
	}
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "YAML config file overriding environment settings")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("cypherview v%s (%s)\n", version, commit)
		},
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:   "run [query]",
		Short: "Execute Cypher statements and print the rendered result",
		Long: `Execute one or more Cypher statements (separated by ';') and print
the rendered result of the last one. The query is read from the
argument, or from stdin when no argument is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runQuery,
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:   "labels",
		Short: "Print the label to color mapping of the connected engine",
		Args:  cobra.NoArgs,
		RunE:  runLabels,
	})

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runQuery(cmd *cobra.Command, args []string) error {
	query, err := readQuery(args)
	if err != nil {
		return err
	}

	ctx := context.Background()
	in, cleanup, err := buildInterpreter(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	res := in.Interpret(ctx, query)
	if res.Code == result.Error {
		return fmt.Errorf("%s", res.Body)
	}
	if res.Body != "" {
		fmt.Println(res.Body)
	}
	return nil
}

func runLabels(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	_, cache, cleanup, err := connect(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	labels, err := cache.Labels(ctx, true)
	if err != nil {
		return err
	}

	names := make([]string, 0, len(labels))
	for name := range labels {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("%s\t%s\n", name, labels[name])
	}
	return nil
}

func readQuery(args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("reading query from stdin: %w", err)
	}
	query := strings.TrimSpace(string(data))
	if query == "" {
		return "", fmt.Errorf("no query given")
	}
	return query, nil
}

func loadConfig() (*config.Config, error) {
	cfg := config.LoadFromEnv()
	if configFile != "" {
		if err := cfg.LoadFile(configFile); err != nil {
			return nil, err
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// connect dials the engine and assembles the schema cache, optionally
// backed by the persistent color store.
func connect(ctx context.Context, cfg *config.Config) (*neo4j.Client, *schema.Cache, func(), error) {
	client := neo4j.NewClient(neo4j.Config{
		URI:               cfg.Connection.URI,
		Username:          cfg.Connection.Username,
		Password:          cfg.Connection.Password,
		Database:          cfg.Connection.Database,
		ConnectionTimeout: cfg.Connection.Timeout,
	})
	if err := client.Connect(ctx); err != nil {
		return nil, nil, nil, err
	}

	var opts []schema.Option
	var store *colorstore.Store
	if cfg.Colors.StorePath != "" {
		var err error
		store, err = colorstore.Open(cfg.Colors.StorePath)
		if err != nil {
			client.Close(ctx)
			return nil, nil, nil, err
		}
		opts = append(opts, schema.WithColorStore(store))
	}

	cleanup := func() {
		if store != nil {
			store.Close()
		}
		client.Close(ctx)
	}
	return client, schema.NewCache(client, opts...), cleanup, nil
}

func buildInterpreter(ctx context.Context) (*interp.Interpreter, func(), error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}

	client, cache, cleanup, err := connect(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	in := interp.New(client, cache,
		interp.WithMultiStatement(cfg.Interpreter.MultiStatement),
		interp.WithMaxConcurrency(cfg.Interpreter.MaxConcurrency),
	)
	return in, cleanup, nil
}
