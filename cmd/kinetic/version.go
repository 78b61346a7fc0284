package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/kinetic"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of kinetic",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("kinetic version %s\n", strings.TrimSpace(kinetic.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
