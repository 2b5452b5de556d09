package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ad-board/internal/core/domain"
	"ad-board/internal/core/port"
	"ad-board/internal/metrics"
)

// fakeAdRepo is an in-memory port.AdRepository used by the service tests.
type fakeAdRepo struct {
	ads       map[int64]domain.Advertisement
	nextID    int64
	clock     time.Time
	insertErr error
}

func newFakeAdRepo() *fakeAdRepo {
	return &fakeAdRepo{
		ads:   make(map[int64]domain.Advertisement),
		clock: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (r *fakeAdRepo) tick() time.Time {
	r.clock = r.clock.Add(time.Second)
	return r.clock
}

func (r *fakeAdRepo) Insert(_ context.Context, ad domain.Advertisement) (*domain.Advertisement, error) {
	if r.insertErr != nil {
		return nil, r.insertErr
	}
	r.nextID++
	ad.ID = r.nextID
	now := r.tick()
	ad.CreatedAt = now
	ad.UpdatedAt = now
	r.ads[ad.ID] = ad
	return &ad, nil
}

func (r *fakeAdRepo) Get(_ context.Context, id int64) (*domain.Advertisement, error) {
	ad, ok := r.ads[id]
	if !ok {
		return nil, port.ErrNotFound
	}
	return &ad, nil
}

func (r *fakeAdRepo) sorted() []domain.Advertisement {
	out := make([]domain.Advertisement, 0, len(r.ads))
	for _, ad := range r.ads {
		out = append(out, ad)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (r *fakeAdRepo) List(_ context.Context, f port.AdFilter) ([]domain.Advertisement, error) {
	var out []domain.Advertisement
	for _, ad := range r.sorted() {
		if f.Status != nil && ad.Status != *f.Status {
			continue
		}
		out = append(out, ad)
	}
	if f.Offset >= len(out) {
		return nil, nil
	}
	out = out[f.Offset:]
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (r *fakeAdRepo) ListActive(ctx context.Context) ([]domain.Advertisement, error) {
	status := domain.StatusActive
	return r.List(ctx, port.AdFilter{Status: &status, Limit: len(r.ads)})
}

func (r *fakeAdRepo) Update(_ context.Context, id int64, upd port.AdUpdate) (*domain.Advertisement, error) {
	ad, ok := r.ads[id]
	if !ok {
		return nil, port.ErrNotFound
	}
	if upd.Description != nil {
		ad.Description = *upd.Description
	}
	if upd.StartTime != nil {
		ad.StartTime = *upd.StartTime
	}
	if upd.EndTime != nil {
		ad.EndTime = *upd.EndTime
	}
	if upd.ImpressionCount != nil {
		ad.ImpressionCount = *upd.ImpressionCount
	}
	if upd.Status != nil {
		ad.Status = *upd.Status
	}
	ad.UpdatedAt = r.tick()
	r.ads[id] = ad
	return &ad, nil
}

func (r *fakeAdRepo) IncrementImpression(_ context.Context, id int64) (*domain.Advertisement, error) {
	ad, ok := r.ads[id]
	if !ok {
		return nil, port.ErrNotFound
	}
	ad.CurrentImpressions++
	if ad.CurrentImpressions >= ad.ImpressionCount {
		ad.Status = domain.StatusCompleted
	}
	ad.UpdatedAt = r.tick()
	r.ads[id] = ad
	return &ad, nil
}

func (r *fakeAdRepo) Delete(_ context.Context, id int64) error {
	delete(r.ads, id)
	return nil
}

// fakeBlobs is an in-memory port.BlobStorage.
type fakeBlobs struct {
	objects   map[string][]byte
	deleted   []string
	uploadErr error
	deleteErr error
}

func newFakeBlobs() *fakeBlobs {
	return &fakeBlobs{objects: make(map[string][]byte)}
}

func (b *fakeBlobs) EnsureBucket(context.Context) error { return nil }

func (b *fakeBlobs) Upload(_ context.Context, path string, data []byte, _ string) error {
	if b.uploadErr != nil {
		return b.uploadErr
	}
	b.objects[path] = data
	return nil
}

func (b *fakeBlobs) PublicURL(path string) string {
	return "https://cdn.example.com/" + path
}

func (b *fakeBlobs) Delete(_ context.Context, path string) error {
	b.deleted = append(b.deleted, path)
	if b.deleteErr != nil {
		return b.deleteErr
	}
	delete(b.objects, path)
	return nil
}

func newTestAdService(repo *fakeAdRepo, blobs *fakeBlobs) *AdService {
	m := metrics.New("test", prometheus.NewRegistry())
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewAdService(repo, blobs, m, logger)
}

func validCreateRequest() port.CreateAdRequest {
	return port.CreateAdRequest{
		ImageData:       []byte("png-bytes"),
		ImageFilename:   "banner.PNG",
		Description:     "spring sale",
		StartTime:       time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		EndTime:         time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
		ImpressionCount: 3,
	}
}

func TestCreateSetsDefaults(t *testing.T) {
	repo := newFakeAdRepo()
	blobs := newFakeBlobs()
	svc := newTestAdService(repo, blobs)

	ad, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	assert.Equal(t, 0, ad.CurrentImpressions)
	assert.Equal(t, domain.StatusActive, ad.Status)
	assert.True(t, ad.EndTime.After(ad.StartTime))
	assert.True(t, strings.HasPrefix(ad.ImagePath, "advertisements/"))
	assert.True(t, strings.HasSuffix(ad.ImagePath, ".png"))
	assert.Equal(t, "https://cdn.example.com/"+ad.ImagePath, ad.ImageURL)
	assert.Contains(t, blobs.objects, ad.ImagePath)
}

func TestCreateValidation(t *testing.T) {
	repo := newFakeAdRepo()
	blobs := newFakeBlobs()
	svc := newTestAdService(repo, blobs)

	req := validCreateRequest()
	req.ImageData = nil
	_, err := svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, port.ErrEmptyImage)

	req = validCreateRequest()
	req.EndTime = req.StartTime
	_, err = svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, port.ErrInvalidTimeRange)

	req = validCreateRequest()
	req.ImpressionCount = 0
	_, err = svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, port.ErrInvalidImpressionGoal)

	// no side effect happened for any rejected request
	assert.Empty(t, blobs.objects)
	assert.Empty(t, repo.ads)
}

func TestCreateInsertFailureCleansUpBlob(t *testing.T) {
	repo := newFakeAdRepo()
	repo.insertErr = errors.New("insert failed")
	blobs := newFakeBlobs()
	svc := newTestAdService(repo, blobs)

	_, err := svc.Create(context.Background(), validCreateRequest())
	require.Error(t, err)
	require.Len(t, blobs.deleted, 1)
	assert.Empty(t, blobs.objects)
}

func TestIncrementImpressionCompletesAtQuota(t *testing.T) {
	repo := newFakeAdRepo()
	blobs := newFakeBlobs()
	svc := newTestAdService(repo, blobs)

	ad, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	for i := 1; i <= 2; i++ {
		got, err := svc.IncrementImpression(context.Background(), ad.ID)
		require.NoError(t, err)
		assert.Equal(t, i, got.CurrentImpressions)
		assert.Equal(t, domain.StatusActive, got.Status)
	}

	got, err := svc.IncrementImpression(context.Background(), ad.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.CurrentImpressions)
	assert.Equal(t, domain.StatusCompleted, got.Status)

	// further increments keep counting but never revert the status
	got, err = svc.IncrementImpression(context.Background(), ad.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, got.CurrentImpressions)
	assert.Equal(t, domain.StatusCompleted, got.Status)
}

func TestIncrementImpressionNotFound(t *testing.T) {
	svc := newTestAdService(newFakeAdRepo(), newFakeBlobs())
	_, err := svc.IncrementImpression(context.Background(), 42)
	assert.ErrorIs(t, err, port.ErrNotFound)
}

func TestUpdateEmptySetRejected(t *testing.T) {
	repo := newFakeAdRepo()
	svc := newTestAdService(repo, newFakeBlobs())

	ad, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)
	before := repo.ads[ad.ID].UpdatedAt

	_, err = svc.Update(context.Background(), ad.ID, port.AdUpdate{})
	assert.ErrorIs(t, err, port.ErrNoFieldsToUpdate)
	assert.Equal(t, before, repo.ads[ad.ID].UpdatedAt)
}

func TestUpdateRevalidatesTimeWindow(t *testing.T) {
	repo := newFakeAdRepo()
	svc := newTestAdService(repo, newFakeBlobs())

	ad, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	// end before the stored start is rejected against the merged record
	end := ad.StartTime.Add(-time.Hour)
	_, err = svc.Update(context.Background(), ad.ID, port.AdUpdate{EndTime: &end})
	assert.ErrorIs(t, err, port.ErrInvalidTimeRange)

	// moving both bounds consistently is allowed
	start := ad.StartTime.Add(48 * time.Hour)
	end = start.Add(time.Hour)
	updated, err := svc.Update(context.Background(), ad.ID, port.AdUpdate{StartTime: &start, EndTime: &end})
	require.NoError(t, err)
	assert.Equal(t, start, updated.StartTime)
	assert.Equal(t, end, updated.EndTime)
}

func TestUpdateValidatesStatusAndQuota(t *testing.T) {
	repo := newFakeAdRepo()
	svc := newTestAdService(repo, newFakeBlobs())

	ad, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	bad := domain.Status("archived")
	_, err = svc.Update(context.Background(), ad.ID, port.AdUpdate{Status: &bad})
	assert.ErrorIs(t, err, port.ErrInvalidStatus)

	zero := 0
	_, err = svc.Update(context.Background(), ad.ID, port.AdUpdate{ImpressionCount: &zero})
	assert.ErrorIs(t, err, port.ErrInvalidImpressionGoal)

	paused := domain.StatusPaused
	updated, err := svc.Update(context.Background(), ad.ID, port.AdUpdate{Status: &paused})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPaused, updated.Status)
}

func TestUpdateNotFound(t *testing.T) {
	svc := newTestAdService(newFakeAdRepo(), newFakeBlobs())
	desc := "x"
	_, err := svc.Update(context.Background(), 7, port.AdUpdate{Description: &desc})
	assert.ErrorIs(t, err, port.ErrNotFound)
}

func TestDeleteRemovesBlobAndRow(t *testing.T) {
	repo := newFakeAdRepo()
	blobs := newFakeBlobs()
	svc := newTestAdService(repo, blobs)

	ad, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), ad.ID))
	assert.Empty(t, repo.ads)
	assert.NotContains(t, blobs.objects, ad.ImagePath)
}

func TestDeleteToleratesBlobFailure(t *testing.T) {
	repo := newFakeAdRepo()
	blobs := newFakeBlobs()
	svc := newTestAdService(repo, blobs)

	ad, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	blobs.deleteErr = errors.New("storage down")
	require.NoError(t, svc.Delete(context.Background(), ad.ID))
	assert.Empty(t, repo.ads)
}

func TestDeleteSkipsMissingBlobPath(t *testing.T) {
	repo := newFakeAdRepo()
	blobs := newFakeBlobs()
	svc := newTestAdService(repo, blobs)

	ad, err := repo.Insert(context.Background(), domain.Advertisement{
		Description:     "no image",
		StartTime:       time.Now(),
		EndTime:         time.Now().Add(time.Hour),
		ImpressionCount: 1,
		Status:          domain.StatusActive,
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), ad.ID))
	assert.Empty(t, blobs.deleted)
	assert.Empty(t, repo.ads)
}

func TestDeleteNotFound(t *testing.T) {
	svc := newTestAdService(newFakeAdRepo(), newFakeBlobs())
	err := svc.Delete(context.Background(), 99)
	assert.ErrorIs(t, err, port.ErrNotFound)
}

func TestListPaginationIsDisjointAndOrdered(t *testing.T) {
	repo := newFakeAdRepo()
	svc := newTestAdService(repo, newFakeBlobs())

	for i := 0; i < 5; i++ {
		_, err := svc.Create(context.Background(), validCreateRequest())
		require.NoError(t, err)
	}

	page1, err := svc.List(context.Background(), port.AdFilter{Limit: 2, Offset: 0})
	require.NoError(t, err)
	page2, err := svc.List(context.Background(), port.AdFilter{Limit: 2, Offset: 2})
	require.NoError(t, err)

	require.Len(t, page1, 2)
	require.Len(t, page2, 2)
	// newest first: ids 5,4 then 3,2
	assert.Equal(t, []int64{5, 4}, []int64{page1[0].ID, page1[1].ID})
	assert.Equal(t, []int64{3, 2}, []int64{page2[0].ID, page2[1].ID})
	for _, a := range page1 {
		for _, b := range page2 {
			assert.NotEqual(t, a.ID, b.ID)
		}
	}
}

func TestListStatusFilterMatchesListActive(t *testing.T) {
	repo := newFakeAdRepo()
	svc := newTestAdService(repo, newFakeBlobs())

	first, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)
	second, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	paused := domain.StatusPaused
	_, err = svc.Update(context.Background(), second.ID, port.AdUpdate{Status: &paused})
	require.NoError(t, err)

	active := domain.StatusActive
	filtered, err := svc.List(context.Background(), port.AdFilter{Status: &active, Limit: 10})
	require.NoError(t, err)
	activeList, err := svc.ListActive(context.Background())
	require.NoError(t, err)

	require.Len(t, filtered, 1)
	assert.Equal(t, first.ID, filtered[0].ID)
	assert.Equal(t, filtered, activeList)
}
