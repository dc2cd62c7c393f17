package cli

import (
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective probe configuration as YAML",
	Long: `Resolve defaults, the config file, MCPPROBE_* environment variables
and flags, then print the result in config file format.`,
	Example: `  mcpprobe config --port 9000
  MCPPROBE_TIMEOUT=2s mcpprobe config -c probe.yaml`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	addProbeFlags(configCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	data, err := cfg.MarshalYAML()
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}
