package services

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/MakMD/floor-boss-work-sub000/internal/dto"
	"github.com/MakMD/floor-boss-work-sub000/internal/repositories"
	apperrors "github.com/MakMD/floor-boss-work-sub000/pkg/errors"
)

// ActivityPageSize is the fixed feed window size.
const ActivityPageSize = 10

type ActivityFeedServiceInterface interface {
	NewFeed(actor dto.Actor, term string) *ActivityFeed
}

type ActivityFeedService struct {
	repo   repositories.ActivityRepositoryInterface
	logger *zap.Logger
}

func NewActivityFeedService(repo repositories.ActivityRepositoryInterface, logger *zap.Logger) *ActivityFeedService {
	return &ActivityFeedService{repo: repo, logger: logger}
}

// NewFeed opens a feed session for the given actor with an initial committed
// search term. The HTTP layer opens one per request; a long-lived caller may
// keep one and page through it.
func (s *ActivityFeedService) NewFeed(actor dto.Actor, term string) *ActivityFeed {
	return &ActivityFeed{
		repo:   s.repo,
		logger: s.logger,
		actor:  actor,
		term:   term,
	}
}

// ActivityFeed serves a reverse-chronological, searchable, incrementally
// loadable window over the activity log. Page 0 replaces the loaded set,
// later pages append to it. Only admins see records; other roles silently get
// empty results.
type ActivityFeed struct {
	repo   repositories.ActivityRepositoryInterface
	logger *zap.Logger
	actor  dto.Actor

	mu         sync.Mutex
	term       string
	generation uint64
	loaded     []dto.ActivityDTO
	total      uint64
	hasMore    bool
}

// Search commits a new term, resets pagination and fetches the first page.
// Callers are responsible for coalescing rapid input before invoking it: one
// call means one query.
func (f *ActivityFeed) Search(ctx context.Context, term string) (*dto.ActivityPageDTO, error) {
	f.mu.Lock()
	f.term = term
	f.generation++
	f.mu.Unlock()

	return f.FetchPage(ctx, 0)
}

// FetchPage loads the window at pageIndex. The hasMore flag is true iff the
// returned page is full-sized and the backend-reported total exceeds the
// number of records loaded so far. A response that raced with a newer Search
// is discarded and the current loaded window is returned instead.
func (f *ActivityFeed) FetchPage(ctx context.Context, pageIndex int) (*dto.ActivityPageDTO, error) {
	if pageIndex < 0 {
		return nil, apperrors.NewInvalidInputError("page index must not be negative, got %d", pageIndex)
	}

	if !f.actor.IsAdmin() {
		// Legacy behavior: no permission error, just an empty feed.
		return &dto.ActivityPageDTO{Records: []dto.ActivityDTO{}, HasMore: false, Page: pageIndex}, nil
	}

	f.mu.Lock()
	term := f.term
	generation := f.generation
	f.mu.Unlock()

	offset := uint64(pageIndex) * ActivityPageSize
	items, total, err := f.repo.List(ctx, term, ActivityPageSize, offset)
	if err != nil {
		f.logger.Error("failed to fetch activity page",
			zap.Int("page", pageIndex), zap.String("term", term), zap.Error(err))
		return nil, err
	}

	records := make([]dto.ActivityDTO, 0, len(items))
	for _, item := range items {
		records = append(records, enrichActivity(item))
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.generation != generation {
		// A newer Search started while this request was in flight.
		return &dto.ActivityPageDTO{
			Records:    append([]dto.ActivityDTO(nil), f.loaded...),
			HasMore:    f.hasMore,
			TotalCount: f.total,
			Page:       pageIndex,
		}, nil
	}

	if pageIndex == 0 {
		f.loaded = records
	} else {
		f.loaded = append(f.loaded, records...)
	}
	f.total = total
	f.hasMore = len(records) == ActivityPageSize && total > uint64(len(f.loaded))

	return &dto.ActivityPageDTO{
		Records:    records,
		HasMore:    f.hasMore,
		TotalCount: total,
		Page:       pageIndex,
	}, nil
}

// DeleteByID removes the record from the backend, then drops it from the
// loaded set. A missing row reports ErrNotFound. Non-admins get ErrNotFound
// as well: to them the record does not exist.
func (f *ActivityFeed) DeleteByID(ctx context.Context, id string) error {
	if !f.actor.IsAdmin() {
		return apperrors.ErrNotFound
	}

	if err := f.repo.Delete(ctx, id); err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	for i, rec := range f.loaded {
		if rec.ID == id {
			f.loaded = append(f.loaded[:i], f.loaded[i+1:]...)
			break
		}
	}
	if f.total > 0 {
		f.total--
	}

	f.logger.Info("activity deleted", zap.String("id", id), zap.String("actor", f.actor.ID))
	return nil
}

// Loaded returns a copy of the records loaded so far.
func (f *ActivityFeed) Loaded() []dto.ActivityDTO {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]dto.ActivityDTO(nil), f.loaded...)
}

func enrichActivity(item repositories.ActivityItem) dto.ActivityDTO {
	rec := dto.ActivityDTO{
		ID:        item.ID,
		CreatedAt: item.CreatedAt.UTC().Format(time.RFC3339),
		Details:   item.Details,
	}

	if item.ActionType.Valid {
		rec.ActionType = &item.ActionType.String
	}
	if item.Message.Valid {
		rec.Message = &item.Message.String
	}
	if item.JobID.Valid {
		rec.JobID = &item.JobID.String
	}
	if item.WorkerID.Valid {
		rec.WorkerID = &item.WorkerID.String
	}

	if item.JobAddress.Valid || item.JobClient.Valid || item.JobWorkOrderNumber.Valid {
		rec.Job = &dto.ActivityJobDTO{
			Address:         item.JobAddress.String,
			Client:          item.JobClient.String,
			WorkOrderNumber: item.JobWorkOrderNumber.String,
		}
	}

	if item.WorkerName.Valid && item.WorkerName.String != "" {
		rec.Worker = &dto.ActivityWorkerDTO{Name: item.WorkerName.String}
		rec.WorkerName = item.WorkerName.String
	} else {
		rec.WorkerName = "system"
	}

	rec.Text = RenderActivityMessage(item.ActionType, item.Message, item.Details)
	return rec
}
