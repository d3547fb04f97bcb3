package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jdahm/lattice"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of lattice",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("lattice version %s\n", strings.TrimSpace(lattice.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
