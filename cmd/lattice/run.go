package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jdahm/lattice/internal/cli"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run [scenario.yaml]",
	Short: "Run a hyperdiffusion scenario to completion",
	Long: `Integrates the scenario with the selected backend and prints the run
record. Without a scenario file the built-in demo scenario is used.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		scenarioPath, _ := cmd.Flags().GetString("scenario")
		if !cmd.Flags().Changed("scenario") && len(args) > 0 {
			scenarioPath = args[0]
		}
		backendName, _ := cmd.Flags().GetString("backend")
		steps, _ := cmd.Flags().GetInt("steps")
		quiet, _ := cmd.Flags().GetBool("quiet")
		format, _ := cmd.Flags().GetString("format")

		opts := cli.RunOptions{
			ScenarioPath: scenarioPath,
			Backend:      backendName,
			Steps:        steps,
			LogLevel:     logLevelFromFlags(cmd),
			Quiet:        quiet,
			Format:       format,
			Store:        storeOptionsFromFlags(cmd),
		}

		if err := cli.Execute(opts); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringP("scenario", "f", "", "Path to a scenario file (YAML)")
	runCmd.Flags().StringP("backend", "b", "", "Backend overriding the scenario document")
	runCmd.Flags().Int("steps", -1, "Step count overriding the scenario document")
	runCmd.Flags().BoolP("quiet", "q", false, "Suppress the banner and progress messages")
	runCmd.Flags().StringP("format", "o", "markdown", "Output format (markdown, json, yaml)")

	// Make 'run' the default if no command is provided.
	rootCmd.Run = runCmd.Run
	rootCmd.Args = runCmd.Args
	rootCmd.Flags().AddFlagSet(runCmd.Flags())
}
