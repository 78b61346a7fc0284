package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/kinetic/pkg/adapters/yamlscript"
)

var validateCmd = &cobra.Command{
	Use:   "validate <script.yaml>",
	Short: "Check a dialog script for consistency",
	Long:  `Parses a YAML dialog script and reports missing prompts, empty option lists and a malformed recipient address.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runValidate(args[0]); err != nil {
			fmt.Printf("Validation failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Script is valid! ✅")
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(path string) error {
	src := yamlscript.NewSource(path)
	script, err := src.Load(context.Background())
	if err != nil {
		return err
	}

	fmt.Printf("Work types: %d, sources: %d, recipient: %s\n",
		len(script.Work.Options), len(script.Source.Options), script.Recipient)
	return nil
}
