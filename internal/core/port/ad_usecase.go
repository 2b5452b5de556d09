package port

import (
	"context"
	"errors"
	"time"

	"ad-board/internal/core/domain"
)

// Validation errors reported before any side effect occurs.
var (
	ErrEmptyImage            = errors.New("image data is empty")
	ErrInvalidTimeRange      = errors.New("end time must be after start time")
	ErrInvalidImpressionGoal = errors.New("impression count must be at least 1")
	ErrNoFieldsToUpdate      = errors.New("no fields to update")
	ErrInvalidStatus         = errors.New("invalid status")
)

// CreateAdRequest carries everything needed to create an advertisement.
type CreateAdRequest struct {
	ImageData       []byte
	ImageFilename   string
	Description     string
	StartTime       time.Time
	EndTime         time.Time
	ImpressionCount int
}

// AdUseCase defines the business operations of the advertisement lifecycle.
// This interface is the primary port into the application domain; the
// service behind it is the sole writer of advertisement state.
type AdUseCase interface {
	// Create validates the request, uploads the image and persists a new
	// advertisement with zero impressions in status active.
	Create(ctx context.Context, req CreateAdRequest) (*domain.Advertisement, error)
	// Get returns one advertisement or ErrNotFound.
	Get(ctx context.Context, id int64) (*domain.Advertisement, error)
	// List returns a page of advertisements, newest first.
	List(ctx context.Context, f AdFilter) ([]domain.Advertisement, error)
	// ListActive returns the advertisements whose stored status is active.
	ListActive(ctx context.Context) ([]domain.Advertisement, error)
	// Update applies a partial update. An empty update set is rejected with
	// ErrNoFieldsToUpdate; the time-window invariant is re-validated
	// against the merged record when either bound changes.
	Update(ctx context.Context, id int64, upd AdUpdate) (*domain.Advertisement, error)
	// IncrementImpression records one display event; reaching the quota
	// flips the advertisement to completed in the same write.
	IncrementImpression(ctx context.Context, id int64) (*domain.Advertisement, error)
	// Delete removes the image best-effort, then the row.
	Delete(ctx context.Context, id int64) error
}
