package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"quiz-prep/internal/cache"
	"quiz-prep/internal/domain"
	"quiz-prep/internal/logger"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// DefaultStatsTTL is used when no statistics TTL is configured.
const DefaultStatsTTL = 5 * time.Minute

// StatsService serves the statistics view through a read-through cache.
type StatsService interface {
	GetStatistics(ctx context.Context, userID string) (*domain.StatsView, error)
	// Invalidate drops the cached view so the next read sees fresh progress.
	Invalidate(ctx context.Context, userID string)
}

type statsServiceImpl struct {
	aggregator ProgressAggregator
	cache      domain.Cache
	ttl        time.Duration
	sfGroup    singleflight.Group

	// epochs counts invalidations per user. A load that overlaps an invalidation
	// must not write its view back.
	mu     sync.Mutex
	epochs map[string]uint64
}

// NewStatsService creates a StatsService. A nil cache disables caching.
func NewStatsService(aggregator ProgressAggregator, c domain.Cache, ttl time.Duration) StatsService {
	if ttl <= 0 {
		ttl = DefaultStatsTTL
	}
	if c == nil {
		logger.Get().Warn("StatsService initialized with nil cache. Statistics will be read directly.")
	}
	return &statsServiceImpl{aggregator: aggregator, cache: c, ttl: ttl, epochs: make(map[string]uint64)}
}

func (s *statsServiceImpl) GetStatistics(ctx context.Context, userID string) (*domain.StatsView, error) {
	if s.cache == nil {
		return s.aggregator.GetStatistics(ctx, userID)
	}

	key := cache.StatsKey(userID)
	if view, ok := s.fromCache(ctx, key); ok {
		return view, nil
	}

	res, err, _ := s.sfGroup.Do(key, func() (interface{}, error) {
		epoch := s.epoch(userID)
		view, err := s.aggregator.GetStatistics(ctx, userID)
		if err != nil {
			return nil, err
		}
		s.store(ctx, userID, key, epoch, view)
		return view, nil
	})
	if err != nil {
		return nil, err
	}
	view, ok := res.(*domain.StatsView)
	if !ok {
		return nil, fmt.Errorf("unexpected type from singleflight.Do for statistics: %T", res)
	}
	return view, nil
}

// store caches view unless userID was invalidated since epoch was read. An
// invalidation that lands during the Set is caught by the second check.
func (s *statsServiceImpl) store(ctx context.Context, userID, key string, epoch uint64, view *domain.StatsView) {
	if s.epoch(userID) != epoch {
		logger.Get().Debug("Statistics invalidated during load, not caching", zap.String("key", key))
		return
	}
	data, err := json.Marshal(view)
	if err != nil {
		logger.Get().Error("Failed to marshal statistics for caching", zap.Error(err), zap.String("key", key))
		return
	}
	if err := s.cache.Set(ctx, key, string(data), s.ttl); err != nil {
		logger.Get().Error("Failed to cache statistics", zap.Error(err), zap.String("key", key))
		return
	}
	if s.epoch(userID) != epoch {
		if err := s.cache.Delete(ctx, key); err != nil {
			logger.Get().Error("Failed to drop stale statistics", zap.Error(err), zap.String("key", key))
		}
	}
}

func (s *statsServiceImpl) epoch(userID string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.epochs[userID]
}

func (s *statsServiceImpl) fromCache(ctx context.Context, key string) (*domain.StatsView, bool) {
	data, err := s.cache.Get(ctx, key)
	if err != nil {
		if errors.Is(err, domain.ErrCacheMiss) {
			logger.Get().Debug("Statistics cache miss", zap.String("key", key))
		} else {
			logger.Get().Error("Failed to get statistics from cache", zap.Error(err), zap.String("key", key))
		}
		return nil, false
	}
	var view domain.StatsView
	if err := json.Unmarshal([]byte(data), &view); err != nil {
		logger.Get().Error("Failed to unmarshal cached statistics", zap.Error(err), zap.String("key", key))
		return nil, false
	}
	return &view, true
}

func (s *statsServiceImpl) Invalidate(ctx context.Context, userID string) {
	if s.cache == nil {
		return
	}
	s.mu.Lock()
	s.epochs[userID]++
	s.mu.Unlock()

	key := cache.StatsKey(userID)
	// Readers arriving after this point start a fresh load instead of joining one
	// that began before the invalidation.
	s.sfGroup.Forget(key)
	if err := s.cache.Delete(ctx, key); err != nil {
		logger.Get().Error("Failed to invalidate cached statistics", zap.Error(err), zap.String("key", key))
	}
}
