package app

import (
	"github.com/spf13/cobra"

	"github.com/blackwell-systems/writewatch/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run an MCP stdio server exposing the analysis tools",
	Long: `Start a Model Context Protocol stdio server so an editor or agent can
call the analysis engine directly. The server exposes three tools:

  generate_suggestions  Ranked suggestions, metrics and score for a text
  estimate_similarity   Similarity against a reference text or the built-in corpus
  compute_metrics       Readability, tone and lexical metrics with the score

Logs go to stderr; stdout carries only JSON-RPC messages.

Example MCP configuration:
  {"mcpServers":{"writewatch":{"command":"writewatch","args":["mcp"]}}}`,
	Args: cobra.NoArgs,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	srv := mcp.NewServer(e.engine(), appVersion, e.logger)
	return srv.Run(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout())
}
