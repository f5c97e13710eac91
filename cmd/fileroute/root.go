package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "fileroute",
	Short: "Fileroute - file identification and routing",
	Long: `Fileroute identifies file formats by magic-byte signatures with a fallback
to extension heuristics, and routes each identified format to the handler
that should extract its content.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(identifyCmd)
	rootCmd.AddCommand(dbCmd)
	rootCmd.AddCommand(routeCmd)
	rootCmd.AddCommand(formatsCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
