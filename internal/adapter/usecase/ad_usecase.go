package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"path"
	"strings"

	"github.com/google/uuid"

	"ad-board/internal/core/domain"
	"ad-board/internal/core/port"
	"ad-board/internal/metrics"
)

// AdService owns the advertisement lifecycle: creation validation, listing,
// partial updates, impression accounting with the completed transition, and
// deletion with cascading image cleanup. It is the sole writer of
// advertisement state; the repository and blob storage behind it carry no
// business rules.
type AdService struct {
	repo    port.AdRepository
	blobs   port.BlobStorage
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// NewAdService creates the lifecycle service with its collaborators.
func NewAdService(repo port.AdRepository, blobs port.BlobStorage, m *metrics.Metrics, logger *slog.Logger) *AdService {
	return &AdService{repo: repo, blobs: blobs, metrics: m, logger: logger}
}

// Create validates the request, uploads the image under a fresh storage key
// and persists the advertisement with zero impressions in status active.
// If the row insert fails after a successful upload the blob is removed
// best-effort so no orphan is left behind.
func (s *AdService) Create(ctx context.Context, req port.CreateAdRequest) (*domain.Advertisement, error) {
	if len(req.ImageData) == 0 {
		return nil, port.ErrEmptyImage
	}
	if !req.EndTime.After(req.StartTime) {
		return nil, port.ErrInvalidTimeRange
	}
	if req.ImpressionCount < 1 {
		return nil, port.ErrInvalidImpressionGoal
	}

	ext := strings.TrimPrefix(strings.ToLower(path.Ext(req.ImageFilename)), ".")
	if ext == "" {
		ext = "png"
	}
	storagePath := fmt.Sprintf("advertisements/%s.%s", uuid.NewString(), ext)

	if err := s.blobs.Upload(ctx, storagePath, req.ImageData, "image/"+ext); err != nil {
		return nil, fmt.Errorf("upload image: %w", err)
	}

	ad := domain.Advertisement{
		ImageURL:           s.blobs.PublicURL(storagePath),
		ImagePath:          storagePath,
		Description:        req.Description,
		StartTime:          req.StartTime,
		EndTime:            req.EndTime,
		ImpressionCount:    req.ImpressionCount,
		CurrentImpressions: 0,
		Status:             domain.StatusActive,
	}
	created, err := s.repo.Insert(ctx, ad)
	if err != nil {
		// compensate the already uploaded blob so it does not orphan
		if delErr := s.blobs.Delete(ctx, storagePath); delErr != nil {
			s.logger.Warn("failed to clean up image after insert failure",
				slog.String("path", storagePath), slog.Any("error", delErr))
		}
		return nil, fmt.Errorf("persist advertisement: %w", err)
	}
	s.metrics.AdsCreated.Inc()
	return created, nil
}

// Get returns one advertisement or port.ErrNotFound.
func (s *AdService) Get(ctx context.Context, id int64) (*domain.Advertisement, error) {
	return s.repo.Get(ctx, id)
}

// List returns a page of advertisements ordered by creation time, newest
// first.
func (s *AdService) List(ctx context.Context, f port.AdFilter) ([]domain.Advertisement, error) {
	return s.repo.List(ctx, f)
}

// ListActive returns advertisements whose stored status is active. The
// time window and remaining quota are not consulted; callers needing the
// live-eligible set filter with Advertisement.Displayable.
func (s *AdService) ListActive(ctx context.Context) ([]domain.Advertisement, error) {
	return s.repo.ListActive(ctx)
}

// Update applies a partial update. When either time bound changes the
// window invariant is re-validated against the merged record.
func (s *AdService) Update(ctx context.Context, id int64, upd port.AdUpdate) (*domain.Advertisement, error) {
	if upd.Empty() {
		return nil, port.ErrNoFieldsToUpdate
	}
	if upd.Status != nil && !upd.Status.Valid() {
		return nil, port.ErrInvalidStatus
	}
	if upd.ImpressionCount != nil && *upd.ImpressionCount < 1 {
		return nil, port.ErrInvalidImpressionGoal
	}
	if upd.StartTime != nil || upd.EndTime != nil {
		current, err := s.repo.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		start, end := current.StartTime, current.EndTime
		if upd.StartTime != nil {
			start = *upd.StartTime
		}
		if upd.EndTime != nil {
			end = *upd.EndTime
		}
		if !end.After(start) {
			return nil, port.ErrInvalidTimeRange
		}
	}
	return s.repo.Update(ctx, id, upd)
}

// IncrementImpression records one display event. The counter and the
// completed transition are a single storage-layer operation, so concurrent
// calls against the same id cannot lose counts.
func (s *AdService) IncrementImpression(ctx context.Context, id int64) (*domain.Advertisement, error) {
	ad, err := s.repo.IncrementImpression(ctx, id)
	if err != nil {
		return nil, err
	}
	s.metrics.ImpressionsServed.Inc()
	if ad.Status == domain.StatusCompleted && ad.CurrentImpressions == ad.ImpressionCount {
		s.metrics.CampaignsCompleted.Inc()
	}
	return ad, nil
}

// Delete removes the stored image best-effort, then the row. A failing or
// missing blob never blocks row deletion; only an unresolvable id is an
// error.
func (s *AdService) Delete(ctx context.Context, id int64) error {
	ad, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if ad.ImagePath != "" {
		if err := s.blobs.Delete(ctx, ad.ImagePath); err != nil {
			s.logger.Warn("failed to delete advertisement image",
				slog.Int64("id", id), slog.String("path", ad.ImagePath), slog.Any("error", err))
		}
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete advertisement: %w", err)
	}
	s.metrics.AdsDeleted.Inc()
	return nil
}
