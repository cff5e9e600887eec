package store

import (
	"context"
	"errors"
	"time"

	"github.com/abhisek/iotfit/internal/assessment"
	"github.com/abhisek/iotfit/internal/scoring"
	"github.com/abhisek/iotfit/internal/session"
)

// ErrNotFound is returned when no result matches an id.
var ErrNotFound = errors.New("result not found")

// ErrAmbiguousID is returned when an id prefix matches more than one result.
var ErrAmbiguousID = errors.New("ambiguous result id")

// QueryOpts configures result queries with filtering and pagination.
type QueryOpts struct {
	Limit          int                    // max results (0 = unlimited)
	Label          string                 // exact label match ("" = any)
	Recommendation scoring.Recommendation // ("" = any)
	From           time.Time              // completed_at >= From
	To             time.Time              // completed_at <= To
}

// Record is a stored, completed assessment.
type Record struct {
	ID          string
	Sequence    int64
	Label       string
	StartedAt   time.Time
	CompletedAt time.Time
	Responses   []scoring.Response
	Outcome     scoring.Outcome
}

// RecordFrom converts a completed session into a record ready to save.
func RecordFrom(c session.Completed) *Record {
	return &Record{
		ID:          c.SessionID,
		Label:       c.Label,
		StartedAt:   c.StartedAt,
		CompletedAt: c.CompletedAt,
		Responses:   c.Responses,
		Outcome:     c.Outcome,
	}
}

// Stats aggregates the stored history.
type Stats struct {
	Count            int
	MeanFit          float64
	BestFit          int
	MeanByCategory   map[assessment.Category]float64
	ByRecommendation map[scoring.Recommendation]int
	First            time.Time
	Latest           time.Time
}

// ResultRepo manages the local history of completed assessments.
type ResultRepo interface {
	// Save stores a record, assigning its sequence. An empty ID is filled in.
	Save(ctx context.Context, rec *Record) error

	// List returns records newest first.
	List(ctx context.Context, opts QueryOpts) ([]Record, error)

	// Get returns a record by id or unique id prefix.
	Get(ctx context.Context, id string) (*Record, error)

	// Stats aggregates every stored record.
	Stats(ctx context.Context) (Stats, error)

	// Clear deletes every record and returns how many were removed.
	Clear(ctx context.Context) (int, error)
}
