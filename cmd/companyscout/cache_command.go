package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"companyscout/internal/logging"
	"companyscout/internal/lookupcache"
)

func newCacheCommand(ctx *commandContext) *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect and manage the registry response cache",
	}

	cacheCmd.AddCommand(newCacheStatsCommand(ctx))
	cacheCmd.AddCommand(newCachePurgeCommand(ctx))

	return cacheCmd
}

func newCacheStatsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show registry cache usage",
		RunE: func(cmd *cobra.Command, args []string) error {
			runCtx, cfg, _, err := ctx.runContext(cmd)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !cfg.Registry.CacheEnabled {
				fmt.Fprintln(out, "Registry cache is disabled ([registry] cache_enabled = false)")
				return nil
			}
			store, err := lookupcache.Open(runCtx, cfg.CachePath())
			if err != nil {
				return err
			}
			defer store.Close()

			count, err := store.Count(runCtx)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Path:    %s\n", store.Path())
			fmt.Fprintf(out, "Entries: %d\n", count)
			fmt.Fprintf(out, "TTL:     %s\n", cfg.RegistryCacheTTL())
			return nil
		},
	}
}

func newCachePurgeCommand(ctx *commandContext) *cobra.Command {
	var expired bool

	cmd := &cobra.Command{
		Use:   "purge",
		Short: "Delete cached registry responses",
		RunE: func(cmd *cobra.Command, args []string) error {
			runCtx, cfg, logger, err := ctx.runContext(cmd)
			if err != nil {
				return err
			}
			store, err := lookupcache.Open(runCtx, cfg.CachePath())
			if err != nil {
				return err
			}
			defer store.Close()

			var olderThan time.Duration
			if expired {
				olderThan = cfg.RegistryCacheTTL()
			}
			removed, err := store.Purge(runCtx, olderThan)
			if err != nil {
				return err
			}
			logger.Info("registry cache purged",
				logging.String("path", store.Path()),
				logging.Int("removed", int(removed)),
				logging.Bool("expired_only", expired),
			)
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d cached responses\n", removed)
			return nil
		},
	}

	cmd.Flags().BoolVar(&expired, "expired", false, "Only remove entries older than [registry] cache_ttl_hours")
	return cmd
}
