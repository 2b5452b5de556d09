package domain

import "time"

// Status is the lifecycle state of an advertisement. A campaign is created
// active, may be paused or resumed by an explicit update, and becomes
// completed once its impression quota is exhausted. Completed is terminal:
// nothing in the service reactivates a completed campaign automatically.
type Status string

const (
	StatusActive    Status = "active"
	StatusPaused    Status = "paused"
	StatusCompleted Status = "completed"
)

// Valid reports whether s is one of the known lifecycle states.
func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusPaused, StatusCompleted:
		return true
	}
	return false
}

// Advertisement is a time-boxed, impression-limited ad campaign. The image
// lives in object storage; ImagePath is the storage-internal key needed for
// deletion, ImageURL the public retrieval URL derived from it.
type Advertisement struct {
	ID                 int64     `json:"id"`
	ImageURL           string    `json:"image_url"`
	ImagePath          string    `json:"image_path"`
	Description        string    `json:"description"`
	StartTime          time.Time `json:"start_time"`
	EndTime            time.Time `json:"end_time"`
	ImpressionCount    int       `json:"impression_count"`
	CurrentImpressions int       `json:"current_impressions"`
	Status             Status    `json:"status"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// Displayable reports whether the advertisement is currently eligible to be
// shown: status active, now inside [StartTime, EndTime) and quota not yet
// exhausted. Note that the active listing endpoint filters by status only;
// callers that need the live-eligible set apply this predicate themselves.
func (a Advertisement) Displayable(now time.Time) bool {
	if a.Status != StatusActive {
		return false
	}
	if now.Before(a.StartTime) || !now.Before(a.EndTime) {
		return false
	}
	return a.CurrentImpressions < a.ImpressionCount
}
