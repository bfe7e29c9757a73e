package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	appErrors "github.com/pmpmaster/pmp-api/app/errors"
	"github.com/pmpmaster/pmp-api/app/models"
	"github.com/pmpmaster/pmp-api/app/store"
)

const (
	dashboardCacheKey = "dashboard:stats"
	dashboardCacheTTL = 30 * time.Second
)

// DashboardService serves the aggregate statistics, with a short-TTL
// cache-aside in Redis to keep the reporting queries off every page load.
// A nil redis client disables caching entirely.
type DashboardService struct {
	store       store.Storage
	redisClient *redis.Client
}

func NewDashboardService(store store.Storage, redisClient *redis.Client) *DashboardService {
	return &DashboardService{store: store, redisClient: redisClient}
}

func (s *DashboardService) Stats(ctx context.Context) (*models.DashboardStats, *appErrors.AppError) {
	if s.redisClient != nil {
		if val, err := s.redisClient.Get(ctx, dashboardCacheKey).Result(); err == nil {
			var cached models.DashboardStats
			if err := json.Unmarshal([]byte(val), &cached); err == nil {
				return &cached, nil
			}
			// Unreadable cache entry: fall through and recompute.
		}
	}

	stats, err := s.store.Dashboard.Stats(ctx)
	if err != nil {
		return nil, appErrors.NewInternal("failed to fetch dashboard statistics").WithErr(err)
	}

	if s.redisClient != nil {
		if payload, err := json.Marshal(stats); err == nil {
			// Cache write failures are invisible to the caller.
			_ = s.redisClient.Set(ctx, dashboardCacheKey, payload, dashboardCacheTTL).Err()
		}
	}

	return stats, nil
}
