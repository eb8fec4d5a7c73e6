package cmd

import (
	"context"
	"log"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/job-tracker/internal/mcptools"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve matching and assistant tools over MCP stdio",
	Long:  "Serve matching and assistant tools over the Model Context Protocol on stdin/stdout. Logs go to stderr.",
	Run: func(_ *cobra.Command, _ []string) {
		serveMCP()
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func serveMCP() {
	d, err := setup(context.Background())
	if err != nil {
		log.Fatal(err)
	}
	defer d.close()

	d.logger.Info("starting the mcp server", zap.String("version", version))

	if err := mcptools.New(d.board, d.assistant, d.logger).Serve(version); err != nil {
		d.logger.Fatal("mcp server stopped", zap.Error(err))
	}
}
