package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/stormnotes/suite/internal/cache"
	"github.com/stormnotes/suite/internal/config"
)

// NewCacheCmd creates the cache command group
func NewCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect and purge the timezone lookup cache",
	}
	cmd.AddCommand(newCachePurgeCmd())
	return cmd
}

func newCachePurgeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "purge",
		Short: "Delete all cached timezone lookups",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			opts, err := redis.ParseURL(cfg.RedisURL)
			if err != nil {
				return fmt.Errorf("invalid REDIS_URL: %w", err)
			}
			client := redis.NewClient(opts)
			defer client.Close()

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			var deleted int64
			iter := client.Scan(ctx, 0, cache.KeyPrefix+"*", 100).Iterator()
			for iter.Next(ctx) {
				if err := client.Del(ctx, iter.Val()).Err(); err != nil {
					return fmt.Errorf("failed to delete %s: %w", iter.Val(), err)
				}
				deleted++
			}
			if err := iter.Err(); err != nil {
				return fmt.Errorf("scan failed: %w", err)
			}

			fmt.Printf("✓ Purged %d cached entries\n", deleted)
			return nil
		},
	}
}
