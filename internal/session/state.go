package session

import (
	"errors"
	"time"

	"github.com/abhisek/iotfit/internal/scoring"
)

var (
	// ErrIncomplete is returned by Complete when questions remain unanswered.
	ErrIncomplete = errors.New("assessment incomplete")

	// ErrNotActive is returned when answering outside the question phase.
	ErrNotActive = errors.New("session not active")
)

// Phase represents where the learner is in the assessment.
type Phase int

const (
	PhaseIntro    Phase = iota // Overview shown, nothing answered
	PhaseActive                // Serving questions
	PhaseComplete              // Scored, showing results
)

func (p Phase) String() string {
	switch p {
	case PhaseIntro:
		return "intro"
	case PhaseActive:
		return "active"
	case PhaseComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// Completed is the record of a finished attempt.
type Completed struct {
	SessionID   string
	Label       string
	StartedAt   time.Time
	CompletedAt time.Time
	Responses   []scoring.Response
	Outcome     scoring.Outcome
}

// Duration returns how long the attempt took.
func (c Completed) Duration() time.Duration {
	return c.CompletedAt.Sub(c.StartedAt)
}
