package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jdahm/lattice/pkg/backend"
)

var backendsCmd = &cobra.Command{
	Use:   "backends",
	Short: "List the registered stencil backends",
	Run: func(cmd *cobra.Command, args []string) {
		for _, name := range backend.Names() {
			fmt.Println(name)
		}
	},
}

func init() {
	rootCmd.AddCommand(backendsCmd)
}
