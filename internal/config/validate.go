package config

import (
	"fmt"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535 (got %d)", c.Server.Port)
	}
	if c.Server.RateLimitPerMin <= 0 {
		return fmt.Errorf("server.rate_limit_per_min must be > 0 (got %d)", c.Server.RateLimitPerMin)
	}
	if c.Database.MaxConns < c.Database.MinConns {
		return fmt.Errorf("database.max_conns (%d) must be >= database.min_conns (%d)",
			c.Database.MaxConns, c.Database.MinConns)
	}

	if err := c.Rotation.validate(); err != nil {
		return fmt.Errorf("rotation: %w", err)
	}

	return nil
}

func (c *RotationConfig) validate() error {
	if _, err := c.Location(); err != nil {
		return fmt.Errorf("timezone: %w", err)
	}
	if c.ScoreMinPlacements < 0 {
		return fmt.Errorf("score_min_placements must be >= 0 (got %d)", c.ScoreMinPlacements)
	}
	if c.TrendBucketCap <= 0 {
		return fmt.Errorf("trend_bucket_cap must be > 0 (got %d)", c.TrendBucketCap)
	}
	if c.DashboardRangeDays <= 0 {
		return fmt.Errorf("dashboard_range_days must be > 0 (got %d)", c.DashboardRangeDays)
	}
	return nil
}
