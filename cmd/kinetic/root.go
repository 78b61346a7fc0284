package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "kinetic",
	Short: "Kinetic is a motion-driven presentation engine",
	Long:  `Kinetic drives viewport reveals, scroll-linked effects and a guided inquiry dialog over a host page surface.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("script", "", "Path to a YAML dialog script (default: built-in)")
}
