package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	// Import toolsets to register them
	_ "github.com/hypen-code/hypen-argocd-mcp/pkg/toolsets/applications"
	_ "github.com/hypen-code/hypen-argocd-mcp/pkg/toolsets/diagnostics"
	_ "github.com/hypen-code/hypen-argocd-mcp/pkg/toolsets/revisions"
	_ "github.com/hypen-code/hypen-argocd-mcp/pkg/toolsets/sync"

	"github.com/hypen-code/hypen-argocd-mcp/pkg/argocd"
	"github.com/hypen-code/hypen-argocd-mcp/pkg/mcp"
	"github.com/hypen-code/hypen-argocd-mcp/pkg/toolsets"
	"github.com/hypen-code/hypen-argocd-mcp/pkg/version"
)

var (
	showVersion bool
	readOnly    bool
	insecure    bool
	httpMode    bool
	httpAddr    string
	debug       bool
)

var rootCmd = &cobra.Command{
	Use:   "argocd-mcp-server",
	Short: "MCP server for operating ArgoCD applications",
	Long: `A Model Context Protocol (MCP) server that gives AI assistants
bounded, classified summaries of ArgoCD applications, logs, events,
diffs and deployment history, plus gated sync/rollback/patch operations.

Connection settings come from the environment:
  ARGOCD_BASE_URL      ArgoCD API base URL (required)
  ARGOCD_ACCESS_TOKEN  API token (required)
  ARGOCD_INSECURE      skip TLS verification (true/false)
  ARGOCD_READ_ONLY     block all mutating operations (true/false)`,
	RunE: run,
}

func init() {
	rootCmd.Flags().BoolVar(&showVersion, "version", false, "Show version information")
	rootCmd.Flags().BoolVar(&readOnly, "read-only", false, "Block all mutating operations (also via ARGOCD_READ_ONLY)")
	rootCmd.Flags().BoolVar(&insecure, "insecure", false, "Skip TLS verification (also via ARGOCD_INSECURE)")
	rootCmd.Flags().BoolVar(&httpMode, "http", false, "Run in HTTP/SSE mode instead of STDIO")
	rootCmd.Flags().StringVar(&httpAddr, "http-addr", "localhost:8080", "HTTP server address (only used with --http)")
	rootCmd.Flags().BoolVar(&debug, "debug", false, "Enable debug logging")
}

func Execute() error {
	return rootCmd.Execute()
}

// envBool reads a boolean environment variable the strict way: anything
// strconv.ParseBool rejects counts as false.
func envBool(key string) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return false
	}
	return v
}

// newLogger builds a logger writing to stderr. Stdout is reserved for the
// MCP stdio transport.
func newLogger() (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	if debug {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return cfg.Build()
}

func run(cmd *cobra.Command, args []string) error {
	if showVersion {
		fmt.Println(version.Info())
		return nil
	}

	log, err := newLogger()
	if err != nil {
		return errors.Wrap(err, "failed to create logger")
	}
	defer log.Sync() //nolint:errcheck

	cfg := argocd.Config{
		BaseURL:     os.Getenv("ARGOCD_BASE_URL"),
		AccessToken: os.Getenv("ARGOCD_ACCESS_TOKEN"),
		Insecure:    insecure || envBool("ARGOCD_INSECURE"),
	}
	if cfg.BaseURL == "" {
		return errors.New("ARGOCD_BASE_URL is required")
	}
	if cfg.AccessToken == "" {
		return errors.New("ARGOCD_ACCESS_TOKEN is required")
	}

	// The mutation gate is fixed here and never changes afterwards.
	readOnlyMode := readOnly || envBool("ARGOCD_READ_ONLY")

	provider, err := argocd.NewProvider(cfg, readOnlyMode, log)
	if err != nil {
		return errors.Wrap(err, "failed to create ArgoCD provider")
	}

	allToolsets := toolsets.All()
	if len(allToolsets) == 0 {
		return errors.New("no toolsets registered")
	}

	log.Info("starting",
		zap.String("version", version.Version),
		zap.String("base_url", cfg.BaseURL),
		zap.Bool("read_only", readOnlyMode),
		zap.Bool("insecure", cfg.Insecure),
		zap.Int("toolsets", len(allToolsets)))

	server, err := mcp.NewServer(provider, allToolsets, log)
	if err != nil {
		return errors.Wrap(err, "failed to create MCP server")
	}

	ctx := cmd.Context()

	if httpMode {
		if err := server.ServeHTTP(ctx, httpAddr); err != nil {
			return errors.Wrap(err, "failed to start MCP server")
		}
	} else {
		if err := server.ServeStdio(ctx); err != nil {
			return errors.Wrap(err, "failed to start MCP server")
		}
	}

	return nil
}
