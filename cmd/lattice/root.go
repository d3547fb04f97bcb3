package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jdahm/lattice/internal/cli"
)

var rootCmd = &cobra.Command{
	Use:   "lattice",
	Short: "Lattice is a 3D hyperdiffusion stencil bench",
	Long: `Lattice integrates a fourth-order hyperdiffusion operator on a halo-padded
3D grid and compares interchangeable stencil backends against each other.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("log-level", "info", "Log level: debug, info, warn, error or off")
	rootCmd.PersistentFlags().String("store", "none", "Run record store: none, memory, file or redis")
	rootCmd.PersistentFlags().String("store-path", "", "Base directory for the file store")
	rootCmd.PersistentFlags().String("redis-addr", "localhost:6379", "Redis address for the redis store")
	rootCmd.PersistentFlags().String("redis-password", "", "Redis password for the redis store")
	rootCmd.PersistentFlags().Int("redis-db", 0, "Redis database number for the redis store")
}

func storeOptionsFromFlags(cmd *cobra.Command) cli.StoreOptions {
	kind, _ := cmd.Flags().GetString("store")
	path, _ := cmd.Flags().GetString("store-path")
	addr, _ := cmd.Flags().GetString("redis-addr")
	password, _ := cmd.Flags().GetString("redis-password")
	db, _ := cmd.Flags().GetInt("redis-db")

	return cli.StoreOptions{
		Kind:          kind,
		Path:          path,
		RedisAddr:     addr,
		RedisPassword: password,
		RedisDB:       db,
	}
}

func logLevelFromFlags(cmd *cobra.Command) string {
	level, _ := cmd.Flags().GetString("log-level")
	return level
}
