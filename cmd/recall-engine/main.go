// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the recall-engine CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/recall-engine/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the recall-engine CLI.
var rootCmd = &cobra.Command{
	Use:   "recall-engine",
	Short: "Tag-indexed question/answer block store",
	Long: `recall-engine stores question/answer blocks with free-form tags and
answers exact multi-tag intersection queries.

Blocks are managed through the block subcommand, the tag catalog through
tag, and multi-tag queries through query. serve exposes the same
operations over a small JSON HTTP API.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./recall-engine.yaml or ~/.config/recall-engine/config.yaml)")
	rootCmd.PersistentFlags().String("data-dir", "", "directory holding the block database (default: ./data)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("recall-engine")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "recall-engine"))
		}
	}

	viper.SetEnvPrefix("RECALL_ENGINE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// storeConfig resolves the store settings: flag, then config file, then
// the built-in default.
func storeConfig(cmd *cobra.Command) types.StoreConfig {
	dataDir, _ := cmd.Flags().GetString("data-dir")
	if dataDir == "" {
		dataDir = viper.GetString("store.data_dir")
	}
	if dataDir == "" {
		dataDir = "data"
	}
	return types.StoreConfig{DataDir: dataDir}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
