package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jdahm/lattice/internal/cli"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Manage stored run records",
	Long:  `Lists, shows and deletes run records from the configured store.`,
}

var runsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored run records, oldest first",
	Run: func(cmd *cobra.Command, args []string) {
		if err := cli.ListRuns(runsOptionsFromFlags(cmd)); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

var runsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one stored run record",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := cli.ShowRun(runsOptionsFromFlags(cmd), args[0]); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

var runsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete one stored run record",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := cli.DeleteRun(runsOptionsFromFlags(cmd), args[0]); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func runsOptionsFromFlags(cmd *cobra.Command) cli.RunsOptions {
	return cli.RunsOptions{
		Store:    storeOptionsFromFlags(cmd),
		LogLevel: logLevelFromFlags(cmd),
	}
}

func init() {
	rootCmd.AddCommand(runsCmd)
	runsCmd.AddCommand(runsListCmd)
	runsCmd.AddCommand(runsShowCmd)
	runsCmd.AddCommand(runsDeleteCmd)
}
