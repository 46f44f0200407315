package collab

import (
	"context"
	"log/slog"
	"time"

	"github.com/mgalvez/quotelists-go/internal/store"
)

// CleanerConfig holds invite cleaner configuration
type CleanerConfig struct {
	CleanInterval time.Duration
	KeepDuration  time.Duration
}

// Cleaner periodically removes stale invites. Invites are ephemeral bearer
// tokens; anything older than KeepDuration is swept.
type Cleaner struct {
	invites store.Invites
	config  CleanerConfig
	logger  *slog.Logger
}

// NewCleaner creates a new invite cleaner
func NewCleaner(invites store.Invites, config CleanerConfig, logger *slog.Logger) *Cleaner {
	return &Cleaner{invites: invites, config: config, logger: logger}
}

// Start begins the periodic cleanup process
func (c *Cleaner) Start(ctx context.Context) error {
	c.logger.Info("starting invite cleaner",
		"clean_interval", c.config.CleanInterval,
		"keep_duration", c.config.KeepDuration,
	)

	if err := c.clean(ctx); err != nil {
		c.logger.Error("initial invite cleanup failed", "error", err)
	}

	ticker := time.NewTicker(c.config.CleanInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			c.logger.Info("stopping invite cleaner")
			return ctx.Err()
		case <-ticker.C:
			if err := c.clean(ctx); err != nil {
				c.logger.Error("invite cleanup failed", "error", err)
			}
		}
	}
}

func (c *Cleaner) clean(ctx context.Context) error {
	cutoff := time.Now().Add(-c.config.KeepDuration)

	deleted, err := c.invites.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return err
	}

	c.logger.Info("invite cleanup completed", "deleted", deleted, "cutoff", cutoff)
	return nil
}

// CleanOnce performs a single cleanup operation (useful for testing or manual cleanup)
func (c *Cleaner) CleanOnce(ctx context.Context) error {
	return c.clean(ctx)
}
