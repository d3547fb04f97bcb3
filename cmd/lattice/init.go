package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/jdahm/lattice/pkg/scenario"
)

var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a starter scenario file",
	Long:  `Writes the built-in demo scenario as a YAML file to edit and run.`,
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		path := "scenario.yaml"
		if len(args) > 0 {
			path = args[0]
		}
		force, _ := cmd.Flags().GetBool("force")

		if err := writeStarter(path, force); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Wrote starter scenario to %s\n", path)
	},
}

func writeStarter(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
	}

	data, err := yaml.Marshal(scenario.Default())
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().Bool("force", false, "Overwrite an existing file")
}
