// Command plannerctl previews study plans and runs maintenance tasks.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var configFile string

func main() {
	rootCommand := cobra.Command{
		Use:           "plannerctl",
		Short:         "Studie Planner command line tools",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCommand.PersistentFlags().StringVar(&configFile, "config", "", "config file path")

	rootCommand.AddCommand(
		newPreviewCommand(),
		newMigrateCommand(),
		newTokenCommand(),
	)
	if err := rootCommand.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "plannerctl: %v\n", err)
		os.Exit(1)
	}
}
