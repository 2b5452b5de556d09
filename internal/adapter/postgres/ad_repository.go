package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"ad-board/internal/core/domain"
	"ad-board/internal/core/port"
)

const adColumns = `id, image_url, image_path, description, start_time, end_time,
       impression_count, current_impressions, status, created_at, updated_at`

// AdRepository implements port.AdRepository using pgxpool for PostgreSQL.
type AdRepository struct {
	pool *pgxpool.Pool
}

// NewAdRepository returns a new repository instance.
func NewAdRepository(pool *pgxpool.Pool) *AdRepository {
	return &AdRepository{pool: pool}
}

func scanAd(row pgx.CollectableRow) (domain.Advertisement, error) {
	var ad domain.Advertisement
	err := row.Scan(
		&ad.ID,
		&ad.ImageURL,
		&ad.ImagePath,
		&ad.Description,
		&ad.StartTime,
		&ad.EndTime,
		&ad.ImpressionCount,
		&ad.CurrentImpressions,
		&ad.Status,
		&ad.CreatedAt,
		&ad.UpdatedAt,
	)
	return ad, err
}

// Insert persists a new advertisement and returns it with the assigned id.
func (r *AdRepository) Insert(ctx context.Context, ad domain.Advertisement) (*domain.Advertisement, error) {
	query := `INSERT INTO advertisements
    (image_url, image_path, description, start_time, end_time, impression_count, current_impressions, status, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,now(),now())
RETURNING ` + adColumns
	rows, err := r.pool.Query(ctx, query,
		ad.ImageURL, ad.ImagePath, ad.Description, ad.StartTime, ad.EndTime,
		ad.ImpressionCount, ad.CurrentImpressions, ad.Status)
	if err != nil {
		return nil, err
	}
	created, err := pgx.CollectOneRow(rows, scanAd)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// Get returns an advertisement by id.
func (r *AdRepository) Get(ctx context.Context, id int64) (*domain.Advertisement, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+adColumns+` FROM advertisements WHERE id = $1`, id)
	if err != nil {
		return nil, err
	}
	ad, err := pgx.CollectOneRow(rows, scanAd)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, port.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &ad, nil
}

// List returns advertisements matching the filter ordered by created_at
// descending.
func (r *AdRepository) List(ctx context.Context, f port.AdFilter) ([]domain.Advertisement, error) {
	args := []interface{}{f.Limit, f.Offset}
	where := ""
	if f.Status != nil {
		where = "WHERE status = $3"
		args = append(args, *f.Status)
	}
	query := fmt.Sprintf(`SELECT %s FROM advertisements %s ORDER BY created_at DESC LIMIT $1 OFFSET $2`, adColumns, where)
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, scanAd)
}

// ListActive returns advertisements with stored status active, newest first.
func (r *AdRepository) ListActive(ctx context.Context) ([]domain.Advertisement, error) {
	query := `SELECT ` + adColumns + ` FROM advertisements WHERE status = $1 ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query, domain.StatusActive)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, scanAd)
}

// Update applies the non-nil fields of upd to the row and stamps updated_at.
func (r *AdRepository) Update(ctx context.Context, id int64, upd port.AdUpdate) (*domain.Advertisement, error) {
	set, args := buildUpdateSet(upd)
	if len(set) == 0 {
		return nil, port.ErrNoFieldsToUpdate
	}
	args = append(args, id)
	query := fmt.Sprintf(`UPDATE advertisements SET %s, updated_at = now() WHERE id = $%d RETURNING %s`,
		strings.Join(set, ", "), len(args), adColumns)
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	ad, err := pgx.CollectOneRow(rows, scanAd)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, port.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &ad, nil
}

// buildUpdateSet turns the non-nil fields of upd into SET clauses with
// matching positional arguments.
func buildUpdateSet(upd port.AdUpdate) ([]string, []interface{}) {
	var (
		set  []string
		args []interface{}
	)
	add := func(column string, value interface{}) {
		args = append(args, value)
		set = append(set, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if upd.Description != nil {
		add("description", *upd.Description)
	}
	if upd.StartTime != nil {
		add("start_time", *upd.StartTime)
	}
	if upd.EndTime != nil {
		add("end_time", *upd.EndTime)
	}
	if upd.ImpressionCount != nil {
		add("impression_count", *upd.ImpressionCount)
	}
	if upd.Status != nil {
		add("status", *upd.Status)
	}
	return set, args
}

// IncrementImpression increments the counter and flips status to completed
// when the new count reaches the quota, as a single conditional update.
// Concurrent increments against the same id serialize on the row, so no
// count is lost and the transition fires exactly once.
func (r *AdRepository) IncrementImpression(ctx context.Context, id int64) (*domain.Advertisement, error) {
	query := `UPDATE advertisements
SET current_impressions = current_impressions + 1,
    status = CASE WHEN current_impressions + 1 >= impression_count THEN 'completed' ELSE status END,
    updated_at = now()
WHERE id = $1
RETURNING ` + adColumns
	rows, err := r.pool.Query(ctx, query, id)
	if err != nil {
		return nil, err
	}
	ad, err := pgx.CollectOneRow(rows, scanAd)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, port.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &ad, nil
}

// Delete removes the row by id. Deleting an absent row is a no-op.
func (r *AdRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM advertisements WHERE id = $1`, id)
	return err
}
