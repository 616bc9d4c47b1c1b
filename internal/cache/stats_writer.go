// Package cache stores freshly aggregated stats snapshots in Redis so the
// presentation layer can render dashboards without re-folding the pick
// collection.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"pickline/models"
)

// SnapshotTTL bounds how stale a cached roll-up may get before the next
// settlement sweep refreshes it.
const SnapshotTTL = time.Hour

// StatsWriter handles writing aggregate stats snapshots to Redis.
type StatsWriter struct {
	client *redis.Client
}

// NewStatsWriter creates a new stats writer.
func NewStatsWriter(client *redis.Client) *StatsWriter {
	return &StatsWriter{
		client: client,
	}
}

// WriteSnapshot stores one scope's roll-up. Scope keys follow
// "all", "week:<n>" and "team:<name>".
func (w *StatsWriter) WriteSnapshot(ctx context.Context, scope string, stats models.AggregateStats) error {
	key := fmt.Sprintf("stats:%s", scope)

	data, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("marshaling stats: %w", err)
	}

	return w.client.Set(ctx, key, data, SnapshotTTL).Err()
}

// WeekScope builds the per-week scope key.
func WeekScope(week int) string { return fmt.Sprintf("week:%d", week) }

// TeamScope builds the per-team scope key.
func TeamScope(team string) string { return fmt.Sprintf("team:%s", team) }

// ReadSnapshot retrieves one scope's roll-up from Redis.
func (w *StatsWriter) ReadSnapshot(ctx context.Context, scope string) (*models.AggregateStats, error) {
	key := fmt.Sprintf("stats:%s", scope)

	data, err := w.client.Get(ctx, key).Result()
	if err != nil {
		return nil, err
	}

	var stats models.AggregateStats
	if err := json.Unmarshal([]byte(data), &stats); err != nil {
		return nil, fmt.Errorf("unmarshaling stats: %w", err)
	}

	return &stats, nil
}
