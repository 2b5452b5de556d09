package port

import (
	"context"
	"errors"
	"time"

	"ad-board/internal/core/domain"
)

// ErrNotFound is returned when an advertisement id does not resolve to a row.
var ErrNotFound = errors.New("advertisement not found")

// AdFilter bounds a listing. A nil Status matches every row; Limit and
// Offset paginate the result after the status filter is applied. Rows are
// always ordered by created_at descending.
type AdFilter struct {
	Status *domain.Status
	Limit  int
	Offset int
}

// AdUpdate is a partial update of the mutable advertisement fields. Nil
// fields are left untouched.
type AdUpdate struct {
	Description     *string
	StartTime       *time.Time
	EndTime         *time.Time
	ImpressionCount *int
	Status          *domain.Status
}

// Empty reports whether the update carries no fields.
func (u AdUpdate) Empty() bool {
	return u.Description == nil && u.StartTime == nil && u.EndTime == nil &&
		u.ImpressionCount == nil && u.Status == nil
}

// AdRepository defines the persistence layer for advertisements. It is an
// outbound port in hexagonal architecture; implementations carry no business
// rules and surface store errors verbatim, mapping only "no such row" to
// ErrNotFound.
type AdRepository interface {
	// Insert persists a new advertisement and returns it with the
	// store-assigned id and timestamps.
	Insert(ctx context.Context, ad domain.Advertisement) (*domain.Advertisement, error)
	// Get returns an advertisement by id, or ErrNotFound.
	Get(ctx context.Context, id int64) (*domain.Advertisement, error)
	// List returns advertisements matching the filter, newest first.
	List(ctx context.Context, f AdFilter) ([]domain.Advertisement, error)
	// ListActive returns all advertisements whose stored status is active,
	// newest first. No time-window or quota filtering is applied.
	ListActive(ctx context.Context) ([]domain.Advertisement, error)
	// Update applies a partial update by id and returns the updated row.
	Update(ctx context.Context, id int64, upd AdUpdate) (*domain.Advertisement, error)
	// IncrementImpression atomically increments current_impressions and
	// flips status to completed when the new count reaches the quota. The
	// increment and the transition happen in one conditional update so
	// concurrent calls cannot lose counts or mis-time the flip.
	IncrementImpression(ctx context.Context, id int64) (*domain.Advertisement, error)
	// Delete removes the row by id. Deleting an absent row is not an error.
	Delete(ctx context.Context, id int64) error
}

// BlobStorage defines the object-storage layer holding advertisement
// images. Paths are bucket-relative keys.
type BlobStorage interface {
	// EnsureBucket creates the configured bucket if it does not exist.
	EnsureBucket(ctx context.Context) error
	// Upload stores data under path with the given content type.
	Upload(ctx context.Context, path string, data []byte, contentType string) error
	// PublicURL returns the public retrieval URL for path.
	PublicURL(path string) string
	// Delete removes the object at path.
	Delete(ctx context.Context, path string) error
}
