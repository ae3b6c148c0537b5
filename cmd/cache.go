package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jpalaw/ghrecap/internal/config"
	"github.com/jpalaw/ghrecap/internal/logging"
	"github.com/jpalaw/ghrecap/internal/store"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the local activity cache",
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all cached activity",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		cache, err := store.New(cfg.Cache.Path)
		if err != nil {
			return fmt.Errorf("failed to open cache: %w", err)
		}
		defer cache.Close()

		if err := cache.Clear(); err != nil {
			return err
		}
		logging.Info("cache cleared", "path", cfg.Cache.Path)
		return nil
	},
}

func init() {
	cacheCmd.AddCommand(cacheClearCmd)
}
