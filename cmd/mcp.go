package cmd

import (
	"github.com/davemolk/sircast/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the Sircast MCP server",
	Long:  `Launch an MCP server that allows AI agents to run the compartment pipeline via standard tools.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return sharedSetup(rootCtx, cmd, args)
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, datasets)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
