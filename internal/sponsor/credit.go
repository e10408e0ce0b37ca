package sponsor

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Store opens transactions against the sponsor database.
// The crediting engine never touches the database outside a Tx, so
// the set of qualifying sponsors it observes cannot change between
// selection and decrement.
type Store interface {
	Begin(ctx context.Context) (Tx, error)
}

// Tx is one open transaction over the sponsor database. Draw, the
// gratitude insert, any describer writes, and the decrement all run
// on the same Tx; either all of them commit or none are observed.
type Tx interface {
	// DrawSponsors returns up to limit distinct sponsors with
	// remaining credit, in uniform random order. The sequence may be
	// empty and is never longer than limit.
	DrawSponsors(ctx context.Context, limit int) ([]Sponsor, error)

	// SaveSponsor inserts or updates a sponsor keyed by ID.
	SaveSponsor(ctx context.Context, s Sponsor) error

	// AddGratitude appends an immutable gratitude event.
	AddGratitude(ctx context.Context, g Gratitude) error

	// AddCommitRecord appends a commit attachment for a gratitude
	// event. At most one attachment may exist per event.
	AddCommitRecord(ctx context.Context, rec CommitRecord) error

	// ResetAllSponsors sets every sponsor's current credit back to its
	// level and reports how many sponsors were reset.
	ResetAllSponsors(ctx context.Context) (int, error)

	Commit() error
	Rollback() error
}

// maxAttempts bounds the draw-reset-redraw sequence. The first
// attempt may find the pool exhausted and reset it; the second runs
// against the freshly reset pool. More attempts can never help: a
// reset pool that still yields nothing has no drawable sponsors.
const maxAttempts = 2

// Result is the outcome of one Credit call. Exactly one of three
// shapes occurs: Names is non-empty (sponsors were thanked), Empty is
// true (no sponsors exist, nobody to thank), or Credit returned an
// InvariantError instead of a Result.
type Result struct {
	// Names is the formatted name list of the thanked sponsors.
	Names string

	// Thanked is the number of sponsors credited.
	Thanked int

	// Reset is true if the pool was exhausted and reset before the
	// draw that produced Names.
	Reset bool

	// Empty is true when the store holds no sponsors at all. This is
	// a valid, silent outcome, not an error.
	Empty bool
}

// Engine runs the crediting transaction against a Store.
type Engine struct {
	store Store

	// now supplies batch timestamps; overridable for testing.
	now func() time.Time
}

// NewEngine creates a crediting engine using wall-clock time.
func NewEngine(st Store) *Engine {
	return &Engine{store: st, now: time.Now}
}

// NewEngineWithClock creates a crediting engine with a custom time
// source. Used for testing shared-timestamp behavior.
func NewEngineWithClock(st Store, now func() time.Time) *Engine {
	return &Engine{store: st, now: now}
}

// Credit draws up to howMany sponsors with remaining credit, thanks
// each one, and returns their formatted names.
//
// For every drawn sponsor it appends a gratitude event carrying the
// describer's description, invokes the describer's callback on the
// same transaction, and decrements the sponsor's balance by one. All
// events in the batch share a single timestamp.
//
// If the draw comes back empty the pool is reset (current := level
// for every sponsor), the reset is committed, and the whole sequence
// runs once more. A reset that touches zero sponsors means the store
// is empty; Credit then reports Empty without writing anything.
//
// howMany must be positive; callers validate it at the boundary.
func (e *Engine) Credit(ctx context.Context, howMany int, describer Describer) (Result, error) {
	didReset := false

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		names, err := e.creditOnce(ctx, howMany, describer)
		if err != nil {
			return Result{}, err
		}
		if len(names) > 0 {
			return Result{
				Names:   FormatNames(names),
				Thanked: len(names),
				Reset:   didReset,
			}, nil
		}

		reset, err := e.resetPool(ctx)
		if err != nil {
			return Result{}, err
		}
		if reset == 0 {
			// Nothing to reset: the store has no sponsors.
			return Result{Empty: true}, nil
		}
		didReset = true
	}

	// A non-empty reset was committed yet the redraw still produced
	// nothing. The draw filter only excludes current <= 0, so this
	// cannot happen for sponsors with a positive level.
	return Result{}, &InvariantError{
		Code:    ErrCodeAttemptsExhausted,
		Message: fmt.Sprintf("no drawable sponsors after %d attempts despite a non-empty reset", maxAttempts),
	}
}

// creditOnce runs a single draw-and-thank transaction. It returns the
// drawn sponsors' names in draw order, or an empty slice when the
// pool is exhausted. On any error the transaction is rolled back and
// no writes are observed.
func (e *Engine) creditOnce(ctx context.Context, howMany int, describer Describer) (names []string, err error) {
	tx, err := e.store.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("credit: begin: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	drawn, err := tx.DrawSponsors(ctx, howMany)
	if err != nil {
		return nil, fmt.Errorf("credit: draw: %w", err)
	}
	if len(drawn) == 0 {
		return nil, nil
	}

	timestamp := e.now()
	for _, sp := range drawn {
		if err := thank(ctx, tx, sp, timestamp, describer); err != nil {
			return nil, err
		}
		names = append(names, sp.Name)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("credit: commit: %w", err)
	}
	return names, nil
}

// thank records one gratitude event for sp, runs the describer's
// callback on the same transaction, and decrements the sponsor's
// balance by one.
func thank(ctx context.Context, tx Tx, sp Sponsor, timestamp time.Time, describer Describer) error {
	gratitudeID := uuid.NewString()

	if err := tx.AddGratitude(ctx, Gratitude{
		ID:          gratitudeID,
		SponsorID:   sp.ID,
		Timestamp:   timestamp,
		Description: describer.DescriptionString(),
	}); err != nil {
		return fmt.Errorf("credit: add gratitude for %s: %w", sp.ID, err)
	}

	if err := describer.DescribeGratitude(ctx, tx, timestamp, gratitudeID); err != nil {
		return fmt.Errorf("credit: describe gratitude %s: %w", gratitudeID, err)
	}

	sp.Current--
	if err := tx.SaveSponsor(ctx, sp); err != nil {
		return fmt.Errorf("credit: save sponsor %s: %w", sp.ID, err)
	}
	return nil
}

// resetPool restores every sponsor's credit in its own transaction.
// The reset must be durably committed before the retry draw reads
// sponsor state.
func (e *Engine) resetPool(ctx context.Context) (reset int, err error) {
	tx, err := e.store.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("credit: begin reset: %w", err)
	}
	defer tx.Rollback()

	reset, err = tx.ResetAllSponsors(ctx)
	if err != nil {
		return 0, fmt.Errorf("credit: reset pool: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("credit: commit reset: %w", err)
	}
	return reset, nil
}
