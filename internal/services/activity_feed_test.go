package services

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/MakMD/floor-boss-work-sub000/internal/dto"
	"github.com/MakMD/floor-boss-work-sub000/internal/entities"
	"github.com/MakMD/floor-boss-work-sub000/internal/repositories"
	apperrors "github.com/MakMD/floor-boss-work-sub000/pkg/errors"
)

// fakeActivityRepo keeps activities in memory, newest first, and mimics the
// repository's search and pagination semantics.
type fakeActivityRepo struct {
	items     []repositories.ActivityItem
	listCalls int
}

func (f *fakeActivityRepo) List(ctx context.Context, term string, limit, offset uint64) ([]repositories.ActivityItem, uint64, error) {
	f.listCalls++

	var matched []repositories.ActivityItem
	for _, item := range f.items {
		if term == "" || f.matches(item, term) {
			matched = append(matched, item)
		}
	}

	total := uint64(len(matched))
	if offset >= total {
		return nil, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return matched[offset:end], total, nil
}

func (f *fakeActivityRepo) matches(item repositories.ActivityItem, term string) bool {
	term = strings.ToLower(term)
	for _, s := range []string{item.Message.String, item.JobAddress.String, item.WorkerName.String} {
		if strings.Contains(strings.ToLower(s), term) {
			return true
		}
	}
	return false
}

func (f *fakeActivityRepo) Create(ctx context.Context, activity *entities.Activity) (string, error) {
	id := fmt.Sprintf("act-%d", len(f.items)+1)
	item := repositories.ActivityItem{Activity: *activity}
	item.ID = id
	item.CreatedAt = time.Now()
	f.items = append([]repositories.ActivityItem{item}, f.items...)
	return id, nil
}

func (f *fakeActivityRepo) Delete(ctx context.Context, id string) error {
	for i, item := range f.items {
		if item.ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return apperrors.ErrNotFound
}

func seedActivities(n int) *fakeActivityRepo {
	repo := &fakeActivityRepo{}
	for i := n; i >= 1; i-- {
		item := repositories.ActivityItem{}
		item.ID = fmt.Sprintf("act-%d", i)
		item.CreatedAt = time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC).Add(time.Duration(i) * time.Minute)
		item.Message = null.StringFrom(fmt.Sprintf("entry %d", i))
		repo.items = append(repo.items, item)
	}
	return repo
}

var adminActor = dto.Actor{ID: "6f1f6f1a-9159-4d6c-9f8a-0f4a6cbb2a01", Role: entities.RoleAdmin}
var workerActor = dto.Actor{ID: "3d0a2e44-51f7-4a8e-b8f3-65a6fd0c9a02", Role: entities.RoleWorker}

func newTestFeed(repo repositories.ActivityRepositoryInterface, actor dto.Actor) *ActivityFeed {
	return NewActivityFeedService(repo, zap.NewNop()).NewFeed(actor, "")
}

func TestActivityFeed_FirstPage(t *testing.T) {
	repo := seedActivities(25)
	feed := newTestFeed(repo, adminActor)

	page, err := feed.FetchPage(context.Background(), 0)
	require.NoError(t, err)

	assert.Len(t, page.Records, 10)
	assert.Equal(t, uint64(25), page.TotalCount)
	assert.True(t, page.HasMore)
	assert.Equal(t, "act-25", page.Records[0].ID, "newest record comes first")
}

func TestActivityFeed_PagesAppendAndHasMore(t *testing.T) {
	repo := seedActivities(25)
	feed := newTestFeed(repo, adminActor)

	_, err := feed.FetchPage(context.Background(), 0)
	require.NoError(t, err)

	page1, err := feed.FetchPage(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, page1.Records, 10)
	assert.True(t, page1.HasMore, "20 of 25 loaded")
	assert.Len(t, feed.Loaded(), 20)

	page2, err := feed.FetchPage(context.Background(), 2)
	require.NoError(t, err)
	assert.Len(t, page2.Records, 5)
	assert.False(t, page2.HasMore, "short page means the end")
	assert.Len(t, feed.Loaded(), 25)
}

func TestActivityFeed_HasMoreFalseOnExactMultiple(t *testing.T) {
	repo := seedActivities(20)
	feed := newTestFeed(repo, adminActor)

	_, err := feed.FetchPage(context.Background(), 0)
	require.NoError(t, err)

	page1, err := feed.FetchPage(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, page1.Records, 10)
	assert.False(t, page1.HasMore, "full page but everything is loaded")
}

func TestActivityFeed_PageZeroReplacesLoadedSet(t *testing.T) {
	repo := seedActivities(25)
	feed := newTestFeed(repo, adminActor)

	_, err := feed.FetchPage(context.Background(), 0)
	require.NoError(t, err)
	_, err = feed.FetchPage(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, feed.Loaded(), 20)

	_, err = feed.FetchPage(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, feed.Loaded(), 10, "page 0 starts the window over")
}

func TestActivityFeed_Search(t *testing.T) {
	repo := seedActivities(5)
	repo.items[0].Message = null.StringFrom("order created at 12 Main St")
	feed := newTestFeed(repo, adminActor)

	page, err := feed.Search(context.Background(), "main st")
	require.NoError(t, err)

	require.Len(t, page.Records, 1)
	assert.Equal(t, uint64(1), page.TotalCount)
	assert.False(t, page.HasMore)
	assert.Contains(t, *page.Records[0].Message, "Main St")

	// Clearing the term brings everything back.
	page, err = feed.Search(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, uint64(5), page.TotalCount)
}

func TestActivityFeed_SearchNoMatches(t *testing.T) {
	repo := seedActivities(5)
	feed := newTestFeed(repo, adminActor)

	page, err := feed.Search(context.Background(), "no such thing")
	require.NoError(t, err)

	assert.Empty(t, page.Records)
	assert.Equal(t, uint64(0), page.TotalCount)
	assert.False(t, page.HasMore)
}

func TestActivityFeed_NegativePageRejected(t *testing.T) {
	feed := newTestFeed(seedActivities(5), adminActor)

	_, err := feed.FetchPage(context.Background(), -1)

	var invalid *apperrors.InvalidInputError
	assert.ErrorAs(t, err, &invalid)
}

func TestActivityFeed_NonAdminGetsEmptyFeed(t *testing.T) {
	repo := seedActivities(5)
	feed := newTestFeed(repo, workerActor)

	page, err := feed.FetchPage(context.Background(), 0)
	require.NoError(t, err, "no permission error, just an empty page")

	assert.Empty(t, page.Records)
	assert.False(t, page.HasMore)
	assert.Zero(t, repo.listCalls, "the backend is never queried")
}

func TestActivityFeed_DeleteByID(t *testing.T) {
	repo := seedActivities(5)
	feed := newTestFeed(repo, adminActor)

	_, err := feed.FetchPage(context.Background(), 0)
	require.NoError(t, err)

	require.NoError(t, feed.DeleteByID(context.Background(), "act-3"))
	assert.Len(t, feed.Loaded(), 4)
	for _, rec := range feed.Loaded() {
		assert.NotEqual(t, "act-3", rec.ID)
	}

	err = feed.DeleteByID(context.Background(), "act-3")
	assert.ErrorIs(t, err, apperrors.ErrNotFound, "second delete of the same id")
}

func TestActivityFeed_DeleteByIDNonAdmin(t *testing.T) {
	repo := seedActivities(5)
	feed := newTestFeed(repo, workerActor)

	err := feed.DeleteByID(context.Background(), "act-1")

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Len(t, repo.items, 5, "nothing was deleted")
}

// slowTermRepo stalls List calls for one term until released, letting a test
// order the repository responses of two overlapping searches.
type slowTermRepo struct {
	inner   *fakeActivityRepo
	slow    string
	entered chan struct{}
	release chan struct{}
}

func (r *slowTermRepo) List(ctx context.Context, term string, limit, offset uint64) ([]repositories.ActivityItem, uint64, error) {
	if term == r.slow {
		r.entered <- struct{}{}
		<-r.release
	}
	return r.inner.List(ctx, term, limit, offset)
}

func (r *slowTermRepo) Create(ctx context.Context, activity *entities.Activity) (string, error) {
	return r.inner.Create(ctx, activity)
}

func (r *slowTermRepo) Delete(ctx context.Context, id string) error {
	return r.inner.Delete(ctx, id)
}

func TestActivityFeed_StaleSearchResponseDiscarded(t *testing.T) {
	inner := &fakeActivityRepo{}
	for i := 1; i <= 3; i++ {
		item := repositories.ActivityItem{}
		item.ID = fmt.Sprintf("fresh-%d", i)
		item.Message = null.StringFrom(fmt.Sprintf("fresh entry %d", i))
		inner.items = append(inner.items, item)
	}
	for i := 1; i <= 2; i++ {
		item := repositories.ActivityItem{}
		item.ID = fmt.Sprintf("stale-%d", i)
		item.Message = null.StringFrom(fmt.Sprintf("stale entry %d", i))
		inner.items = append(inner.items, item)
	}

	repo := &slowTermRepo{
		inner:   inner,
		slow:    "stale",
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
	feed := newTestFeed(repo, adminActor)

	staleDone := make(chan *dto.ActivityPageDTO, 1)
	go func() {
		page, err := feed.Search(context.Background(), "stale")
		assert.NoError(t, err)
		staleDone <- page
	}()

	// Wait until the first search is stuck in the repository, then commit a
	// newer search before letting the old response through.
	<-repo.entered
	freshPage, err := feed.Search(context.Background(), "fresh")
	require.NoError(t, err)
	require.Len(t, freshPage.Records, 3)
	close(repo.release)
	stalePage := <-staleDone

	loaded := feed.Loaded()
	require.Len(t, loaded, 3, "the superseded response must not replace the window")
	for _, rec := range loaded {
		assert.Contains(t, *rec.Message, "fresh")
	}
	require.Len(t, stalePage.Records, 3)
	for _, rec := range stalePage.Records {
		assert.Contains(t, *rec.Message, "fresh", "the old search reports the current window")
	}
}

func TestActivityFeed_WorkerNameFallsBackToSystem(t *testing.T) {
	repo := seedActivities(1)
	feed := newTestFeed(repo, adminActor)

	page, err := feed.FetchPage(context.Background(), 0)
	require.NoError(t, err)

	require.Len(t, page.Records, 1)
	assert.Equal(t, "system", page.Records[0].WorkerName)
}
