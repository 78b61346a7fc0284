package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/kinetic"
	"github.com/aretw0/kinetic/internal/cli"
	"github.com/aretw0/kinetic/internal/logging"
	mcpadapter "github.com/aretw0/kinetic/pkg/adapters/mcp"
	"github.com/aretw0/kinetic/pkg/adapters/sim"
	"github.com/aretw0/kinetic/pkg/domain"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Starts the inquiry dialog as an MCP server over stdio.
This lets AI agents walk the guided contact flow as tools: start the
inquiry, pick a work type and source, submit details, and read the
transcript back.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		scriptPath, _ := cmd.Flags().GetString("script")

		// Logs must not corrupt JSON-RPC on stdout.
		log.SetOutput(os.Stderr)
		logger := logging.NewJSON(os.Stderr, slog.LevelInfo)

		surface := cli.NewDemoSurface(false)
		view := sim.NewView()
		page, err := cli.BuildPage(context.Background(), surface, view, scriptPath, domain.LifecycleHooks{}, logger)
		if err != nil {
			return err
		}
		defer page.Teardown()

		srv := mcpadapter.NewServer(page.Dialog(), page.Script(), kinetic.Version)

		logger.Info("starting kinetic MCP server (stdio)")
		if err := srv.ServeStdio(); err != nil {
			logger.Error("MCP server execution failed", "err", err)
			os.Exit(1)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
