package sponsor

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"
)

// Sponsor is a person or entity with sponsorship credit.
// Current counts the remaining times the sponsor can be drawn before
// the pool resets; it never exceeds Level and never goes negative.
type Sponsor struct {
	ID      string
	Name    string
	Level   int
	Current int
}

// New creates a sponsor with a fresh UUID and a full credit balance.
// The name is NFC-normalized so that lookups and display are stable
// regardless of how the name was typed.
func New(name string, level int) Sponsor {
	return Sponsor{
		ID:      uuid.NewString(),
		Name:    norm.NFC.String(name),
		Level:   level,
		Current: level,
	}
}

// Gratitude is an immutable audit record of one sponsor being thanked.
// Every event produced by a single crediting batch shares the same
// timestamp.
type Gratitude struct {
	ID          string
	SponsorID   string
	Timestamp   time.Time
	Description string
}

// CommitRecord links a gratitude event to the commit that triggered it.
// At most one record exists per gratitude event.
type CommitRecord struct {
	GratitudeID      string
	CommitMessage    string
	WorkingDirectory string
	PreMessagePath   string
	CommitSource     string
	CommitObject     string
	ParentCommit     string
}

// HistoryEntry is one row of the gratitude log, joined to the sponsor
// that was thanked and, when present, the commit attachment.
type HistoryEntry struct {
	Event       Gratitude
	SponsorName string
	Commit      *CommitRecord
}
