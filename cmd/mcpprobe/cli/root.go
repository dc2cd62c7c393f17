package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	cfgFile string
	envFile string
	verbose bool
	logger  *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "mcpprobe",
	Short: "mcpprobe — smoke test for MCP servers over HTTP",
	Long: `mcpprobe checks that a locally running MCP (Model Context Protocol)
server answers over HTTP. It issues a GET to the SSE endpoint and a
JSON-RPC initialize request, then prints what came back.

Probe failures are reported on stdout; the exit code is 0 whenever the
probe ran.`,
	Example: `  mcpprobe
  mcpprobe --port 9000
  mcpprobe -c probe.yaml --format json`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		logger = slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
			Level: level,
		}))
	},
	RunE: runProbe,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "probe config file (YAML)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file with MCPPROBE_* overrides")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	addProbeFlags(rootCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
