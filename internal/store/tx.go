package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/roach88/sponcom/internal/sponsor"
)

// Tx is one open transaction over the sponsor database. It implements
// sponsor.Tx: the draw, the gratitude writes, and the decrement for a
// crediting batch all run here, so either all of them commit or none
// are observed.
type Tx struct {
	tx *sql.Tx
}

// DrawSponsors returns up to limit sponsors with remaining credit, in
// uniform random order. ORDER BY RANDOM() gives every qualifying
// sponsor the same chance regardless of insertion order.
func (t *Tx) DrawSponsors(ctx context.Context, limit int) ([]sponsor.Sponsor, error) {
	rows, err := t.tx.QueryContext(ctx, `
		SELECT id, name, level, current
		FROM sponsors
		WHERE current > 0
		ORDER BY RANDOM()
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("draw sponsors: %w", err)
	}
	defer rows.Close()

	var drawn []sponsor.Sponsor
	for rows.Next() {
		var sp sponsor.Sponsor
		if err := rows.Scan(&sp.ID, &sp.Name, &sp.Level, &sp.Current); err != nil {
			return nil, fmt.Errorf("scan drawn sponsor: %w", err)
		}
		drawn = append(drawn, sp)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate drawn sponsors: %w", err)
	}

	return drawn, nil
}

// SaveSponsor inserts or updates a sponsor keyed by id.
func (t *Tx) SaveSponsor(ctx context.Context, sp sponsor.Sponsor) error {
	_, err := t.tx.ExecContext(ctx, `
		INSERT INTO sponsors (id, name, level, current)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
		(name, level, current) =
		(excluded.name, excluded.level, excluded.current)
	`,
		sp.ID,
		sp.Name,
		sp.Level,
		sp.Current,
	)
	if err != nil {
		return fmt.Errorf("save sponsor: %w", err)
	}
	return nil
}

// AddGratitude appends a gratitude event. Events are immutable once
// written; there is no update path.
func (t *Tx) AddGratitude(ctx context.Context, g sponsor.Gratitude) error {
	_, err := t.tx.ExecContext(ctx, `
		INSERT INTO gratitude_events (id, sponsor_id, timestamp, description)
		VALUES (?, ?, ?, ?)
	`,
		g.ID,
		g.SponsorID,
		g.Timestamp.UnixMilli(),
		g.Description,
	)
	if err != nil {
		return fmt.Errorf("add gratitude: %w", err)
	}
	return nil
}

// AddCommitRecord appends a commit attachment for a gratitude event.
// The UNIQUE constraint on gratitude_id enforces at most one
// attachment per event.
func (t *Tx) AddCommitRecord(ctx context.Context, rec sponsor.CommitRecord) error {
	_, err := t.tx.ExecContext(ctx, `
		INSERT INTO commit_attachments
		(gratitude_id, commit_message, working_directory, pre_message_path,
		 commit_source, commit_object, parent_commit)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		rec.GratitudeID,
		rec.CommitMessage,
		rec.WorkingDirectory,
		rec.PreMessagePath,
		rec.CommitSource,
		rec.CommitObject,
		rec.ParentCommit,
	)
	if err != nil {
		return fmt.Errorf("add commit record: %w", err)
	}
	return nil
}

// ResetAllSponsors restores every sponsor's credit to its level and
// reports how many sponsors were touched. Zero means the store holds
// no sponsors.
func (t *Tx) ResetAllSponsors(ctx context.Context) (int, error) {
	result, err := t.tx.ExecContext(ctx, `
		UPDATE sponsors SET current = level
	`)
	if err != nil {
		return 0, fmt.Errorf("reset sponsors: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("reset sponsors: rows affected: %w", err)
	}
	return int(affected), nil
}

// Commit commits the transaction.
func (t *Tx) Commit() error {
	return t.tx.Commit()
}

// Rollback aborts the transaction. No-op after a successful Commit.
func (t *Tx) Rollback() error {
	return t.tx.Rollback()
}

// millisToTime converts a stored Unix-millisecond timestamp back to
// wall-clock time.
func millisToTime(ms int64) time.Time {
	return time.UnixMilli(ms)
}
