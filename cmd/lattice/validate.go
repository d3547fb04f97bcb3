package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jdahm/lattice/internal/validator"
	"github.com/jdahm/lattice/pkg/backend"
)

var validateCmd = &cobra.Command{
	Use:   "validate <scenario.yaml>",
	Short: "Check a scenario file for problems",
	Long:  `Loads the scenario and reports every validation problem at once, including unknown backend names.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		sc, err := validator.CheckFile(args[0], backend.Names())
		if err != nil {
			fmt.Printf("Validation failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Scenario '%s' is valid! ✅\n", sc.Name)
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
