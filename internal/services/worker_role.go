package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/MakMD/floor-boss-work-sub000/internal/repositories"
)

// WorkerRoleService resolves a worker's current role, caching lookups in
// Redis so the per-request admin gate does not hit Postgres every time. Cache
// failures degrade to a database read.
type WorkerRoleService struct {
	workerRepo repositories.WorkerRepositoryInterface
	cacheRepo  repositories.CacheRepositoryInterface
	logger     *zap.Logger
	cacheTTL   time.Duration
}

func NewWorkerRoleService(
	workerRepo repositories.WorkerRepositoryInterface,
	cacheRepo repositories.CacheRepositoryInterface,
	logger *zap.Logger,
	cacheTTL time.Duration,
) *WorkerRoleService {
	return &WorkerRoleService{
		workerRepo: workerRepo,
		cacheRepo:  cacheRepo,
		logger:     logger,
		cacheTTL:   cacheTTL,
	}
}

func roleCacheKey(workerID string) string {
	return "worker_role:" + workerID
}

func (s *WorkerRoleService) ResolveRole(ctx context.Context, workerID string) (string, error) {
	if s.cacheRepo != nil {
		if role, err := s.cacheRepo.Get(ctx, roleCacheKey(workerID)); err == nil && role != "" {
			return role, nil
		}
	}

	worker, err := s.workerRepo.FindByID(ctx, workerID)
	if err != nil {
		return "", err
	}

	if s.cacheRepo != nil {
		if err := s.cacheRepo.Set(ctx, roleCacheKey(workerID), worker.Role, s.cacheTTL); err != nil {
			s.logger.Warn("failed to cache worker role", zap.String("workerID", workerID), zap.Error(err))
		}
	}
	return worker.Role, nil
}

// InvalidateRole drops the cached role, forcing the next resolution to read
// the database.
func (s *WorkerRoleService) InvalidateRole(ctx context.Context, workerID string) {
	if s.cacheRepo == nil {
		return
	}
	if err := s.cacheRepo.Del(ctx, roleCacheKey(workerID)); err != nil {
		s.logger.Warn("failed to invalidate cached role", zap.String("workerID", workerID), zap.Error(err))
	}
}
