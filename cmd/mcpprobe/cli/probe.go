package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/tkingovr/mcp-probe/internal/config"
	"github.com/tkingovr/mcp-probe/internal/probe"
	"github.com/tkingovr/mcp-probe/internal/report"
)

var (
	probeHost    string
	probePort    int
	probeTimeout time.Duration
	probeFormat  string
)

func addProbeFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&probeHost, "host", config.DefaultHost, "MCP server host")
	cmd.Flags().IntVarP(&probePort, "port", "p", config.DefaultPort, "MCP server port")
	cmd.Flags().DurationVar(&probeTimeout, "timeout", config.DefaultTimeout, "timeout per request")
	cmd.Flags().StringVar(&probeFormat, "format", config.DefaultFormat, "output format: text or json")
}

// resolveConfig layers defaults, the config file, the environment and
// explicitly set flags, in that order.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if cfgFile != "" {
		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
	}

	if envFile != "" {
		if err := config.LoadDotEnv(envFile); err != nil {
			return nil, err
		}
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, fmt.Errorf("applying environment: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("host") {
		cfg.Host = probeHost
	}
	if flags.Changed("port") {
		cfg.Port = probePort
	}
	if flags.Changed("timeout") {
		cfg.Timeout = probeTimeout
	}
	if flags.Changed("format") {
		cfg.Format = probeFormat
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runProbe(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	runner, err := probe.NewRunner(cfg, probe.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("creating runner: %w", err)
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			logger.Info("interrupted, abandoning remaining probe steps")
			cancel()
		case <-ctx.Done():
		}
	}()

	logger.Debug("probing MCP server",
		slog.String("target", cfg.BaseURL()),
		slog.Duration("timeout", cfg.Timeout),
		slog.String("format", cfg.Format),
	)

	rep := runner.Run(ctx)
	if err := report.NewPrinter(cmd.OutOrStdout(), cfg.Format).Print(rep); err != nil {
		logger.Error("writing report", "error", err)
	}
	return nil
}
