package main

import (
	"os"

	"github.com/tkingovr/mcp-probe/cmd/mcpprobe/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
