package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/aretw0/kinetic/internal/cli"
	"github.com/aretw0/kinetic/internal/logging"
	"github.com/aretw0/kinetic/internal/presentation/tui"
	"github.com/aretw0/kinetic/pkg/adapters/sim"
	"github.com/aretw0/kinetic/pkg/domain"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the page simulation in the terminal",
	Long:  `Starts an interactive terminal simulation of the page: scroll to reveal sections, watch the hero fade, and walk through the inquiry dialog.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		scriptPath, _ := cmd.Flags().GetString("script")
		reduced, _ := cmd.Flags().GetBool("reduced-motion")
		debug, _ := cmd.Flags().GetBool("debug")

		logger := logging.NewNop()
		if debug {
			logger = logging.New(slog.LevelDebug)
		}

		surface := cli.NewDemoSurface(reduced)
		view := sim.NewView()
		page, err := cli.BuildPage(context.Background(), surface, view, scriptPath, domain.LifecycleHooks{}, logger)
		if err != nil {
			return err
		}
		defer page.Teardown()

		model := tui.NewModel(page, surface, view, cli.DemoBlocks(), cli.DemoDocHeight, cli.TerminalWidth())
		if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().Bool("reduced-motion", false, "Simulate the reduced-motion preference")
	runCmd.Flags().Bool("debug", false, "Log engine events to stderr")

	// Make 'run' the default if no command is provided
	rootCmd.RunE = runCmd.RunE
}
