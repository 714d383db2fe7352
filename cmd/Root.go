// Package cmd implements the gridqn command line interface
package cmd

import (
	"github.com/spf13/cobra"
)

var (
	configPath string
	noColour   bool
)

// RootCommand returns the gridqn command and its subcommands
func RootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gridqn",
		Short: "Train and evaluate deep Q-learning agents on a gridworld",
		// Errors are logged by main
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "",
		"Path to a YAML configuration, defaults are used if empty")
	cmd.PersistentFlags().BoolVar(&noColour, "no-color", false,
		"Disable coloured output")

	cmd.AddCommand(
		TrainCommand(),
		EvaluateCommand(),
	)
	return cmd
}
