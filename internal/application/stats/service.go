// Package stats syncs LeetCode solve statistics into the portfolio's store.
package stats

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/portfolio-backend/internal/domain"
	"github.com/portfolio-backend/internal/pkg/id"
)

type Service interface {
	// Sync fetches fresh stats for username, persists them and archives the
	// raw upstream payload when an archive store is configured.
	Sync(ctx context.Context, username string) (*domain.LeetCodeStats, error)
	Get(ctx context.Context, username string) (*domain.LeetCodeStats, error)
}

// StatsFetcher retrieves solve counts from the upstream API.
type StatsFetcher interface {
	FetchStats(ctx context.Context, username string) (*domain.LeetCodeStats, []byte, error)
}

// StatsRepository persists synced stats.
type StatsRepository interface {
	Put(ctx context.Context, s *domain.LeetCodeStats) error
	Get(ctx context.Context, username string) (*domain.LeetCodeStats, error)
}

// SnapshotStore archives raw upstream payloads. Optional.
type SnapshotStore interface {
	PutSnapshot(ctx context.Context, key string, body []byte) (string, error)
}

type service struct {
	fetcher   StatsFetcher
	repo      StatsRepository
	snapshots SnapshotStore
}

func NewService(fetcher StatsFetcher, repo StatsRepository, snapshots SnapshotStore) Service {
	return &service{fetcher: fetcher, repo: repo, snapshots: snapshots}
}

func (s *service) Sync(ctx context.Context, username string) (*domain.LeetCodeStats, error) {
	if username == "" {
		return nil, fmt.Errorf("username required: %w", domain.ErrBadRequest)
	}

	stats, raw, err := s.fetcher.FetchStats(ctx, username)
	if err != nil {
		return nil, err
	}
	stats.SyncedAt = time.Now().UTC()

	if err := s.repo.Put(ctx, stats); err != nil {
		return nil, fmt.Errorf("store stats: %w", err)
	}

	if s.snapshots != nil {
		key := fmt.Sprintf("snapshots/leetcode/%s.json", id.New())
		if url, err := s.snapshots.PutSnapshot(ctx, key, raw); err != nil {
			// The sync itself succeeded; losing an archive copy is not fatal.
			slog.Warn("failed to archive sync snapshot", "username", username, "err", err)
		} else {
			slog.Info("archived sync snapshot", "username", username, "url", url)
		}
	}
	return stats, nil
}

func (s *service) Get(ctx context.Context, username string) (*domain.LeetCodeStats, error) {
	if username == "" {
		return nil, fmt.Errorf("username required: %w", domain.ErrBadRequest)
	}
	return s.repo.Get(ctx, username)
}
