package db

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Seed inserts demo advertisements for local development. Each campaign
// gets a synthetic image reference, a display window around the current
// time and a small impression quota.
func Seed(ctx context.Context, db *pgxpool.Pool) error {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	statuses := []string{"active", "active", "active", "paused", "completed"}
	for i := 1; i <= 5; i++ {
		imagePath := fmt.Sprintf("advertisements/%s.png", uuid.NewString())
		imageURL := fmt.Sprintf("https://example.supabase.co/storage/v1/object/public/advertisements/%s", imagePath)
		description := fmt.Sprintf("Demo advertisement %d", i)
		start := time.Now().AddDate(0, 0, -1)
		end := time.Now().AddDate(0, 1, 0)
		quota := 100 + r.Intn(900)
		current := 0
		status := statuses[i-1]
		if status == "completed" {
			current = quota
		}
		_, err := db.Exec(ctx, `INSERT INTO advertisements
    (image_url, image_path, description, start_time, end_time, impression_count, current_impressions, status, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,now(),now())`,
			imageURL, imagePath, description, start, end, quota, current, status)
		if err != nil {
			return err
		}
	}
	return nil
}
