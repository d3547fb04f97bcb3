package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jdahm/lattice/internal/cli"
)

// benchCmd represents the bench command
var benchCmd = &cobra.Command{
	Use:   "bench [scenario.yaml]",
	Short: "Time a scenario across backends and compare the results",
	Long: `Runs the scenario once per backend and repetition, checks that all
backends produce the same field and reports timing statistics. Without a
scenario file the built-in demo scenario is used.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		scenarioPath, _ := cmd.Flags().GetString("scenario")
		if !cmd.Flags().Changed("scenario") && len(args) > 0 {
			scenarioPath = args[0]
		}
		backends, _ := cmd.Flags().GetStringSlice("backends")
		reps, _ := cmd.Flags().GetInt("reps")
		warmup, _ := cmd.Flags().GetInt("warmup")
		format, _ := cmd.Flags().GetString("format")

		opts := cli.BenchOptions{
			ScenarioPath: scenarioPath,
			Backends:     backends,
			Reps:         reps,
			Warmup:       warmup,
			LogLevel:     logLevelFromFlags(cmd),
			Format:       format,
		}

		if err := cli.ExecuteBench(opts); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(benchCmd)

	benchCmd.Flags().StringP("scenario", "f", "", "Path to a scenario file (YAML)")
	benchCmd.Flags().StringSlice("backends", nil, "Backends to compare; the first is the baseline (default: all)")
	benchCmd.Flags().Int("reps", 5, "Timed repetitions per backend")
	benchCmd.Flags().Int("warmup", 1, "Untimed warmup runs per backend")
	benchCmd.Flags().StringP("format", "o", "markdown", "Output format: markdown, json or yaml")
}
