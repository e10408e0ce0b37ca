package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/roach88/sponcom/internal/sponsor"
)

// ListSponsors returns all sponsors ordered by name, then id for a
// deterministic tie-break.
//
// Returns an empty slice (not nil) if no sponsors exist.
func (s *Store) ListSponsors(ctx context.Context) ([]sponsor.Sponsor, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, level, current
		FROM sponsors
		ORDER BY name ASC, id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query sponsors: %w", err)
	}
	defer rows.Close()

	var sponsors []sponsor.Sponsor
	for rows.Next() {
		var sp sponsor.Sponsor
		if err := rows.Scan(&sp.ID, &sp.Name, &sp.Level, &sp.Current); err != nil {
			return nil, fmt.Errorf("scan sponsor: %w", err)
		}
		sponsors = append(sponsors, sp)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sponsors: %w", err)
	}

	if sponsors == nil {
		sponsors = []sponsor.Sponsor{}
	}

	return sponsors, nil
}

// GetSponsor retrieves a single sponsor by id.
// Returns sql.ErrNoRows if not found.
func (s *Store) GetSponsor(ctx context.Context, id string) (sponsor.Sponsor, error) {
	var sp sponsor.Sponsor
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, level, current
		FROM sponsors
		WHERE id = ?
	`, id).Scan(&sp.ID, &sp.Name, &sp.Level, &sp.Current)
	if err != nil {
		return sponsor.Sponsor{}, err
	}
	return sp, nil
}

// ListGratitude returns the gratitude log in chronological order,
// with id as a deterministic tie-break for events sharing a batch
// timestamp.
//
// Returns an empty slice (not nil) if no events exist.
func (s *Store) ListGratitude(ctx context.Context) ([]sponsor.Gratitude, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, sponsor_id, timestamp, description
		FROM gratitude_events
		ORDER BY timestamp ASC, id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query gratitude: %w", err)
	}
	defer rows.Close()

	var events []sponsor.Gratitude
	for rows.Next() {
		g, err := scanGratitude(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, g)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate gratitude: %w", err)
	}

	if events == nil {
		events = []sponsor.Gratitude{}
	}

	return events, nil
}

// GetCommitRecord retrieves the commit attachment for a gratitude
// event. Returns nil (not an error) if the event has no attachment.
func (s *Store) GetCommitRecord(ctx context.Context, gratitudeID string) (*sponsor.CommitRecord, error) {
	var rec sponsor.CommitRecord
	var preMessagePath, commitSource, commitObject sql.NullString

	err := s.db.QueryRowContext(ctx, `
		SELECT gratitude_id, commit_message, working_directory,
		       pre_message_path, commit_source, commit_object, parent_commit
		FROM commit_attachments
		WHERE gratitude_id = ?
	`, gratitudeID).Scan(
		&rec.GratitudeID,
		&rec.CommitMessage,
		&rec.WorkingDirectory,
		&preMessagePath,
		&commitSource,
		&commitObject,
		&rec.ParentCommit,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query commit record: %w", err)
	}

	rec.PreMessagePath = preMessagePath.String
	rec.CommitSource = commitSource.String
	rec.CommitObject = commitObject.String
	return &rec, nil
}

// History returns the gratitude log in chronological order, each
// entry joined to the thanked sponsor's name and, when present, its
// commit attachment.
//
// Returns an empty slice (not nil) if no events exist.
func (s *Store) History(ctx context.Context) ([]sponsor.HistoryEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT g.id, g.sponsor_id, g.timestamp, g.description, sp.name,
		       c.gratitude_id, c.commit_message, c.working_directory,
		       c.pre_message_path, c.commit_source, c.commit_object, c.parent_commit
		FROM gratitude_events g
		JOIN sponsors sp ON g.sponsor_id = sp.id
		LEFT JOIN commit_attachments c ON c.gratitude_id = g.id
		ORDER BY g.timestamp ASC, g.id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var entries []sponsor.HistoryEntry
	for rows.Next() {
		var entry sponsor.HistoryEntry
		var ms int64
		var gratitudeID, commitMessage, workingDirectory sql.NullString
		var preMessagePath, commitSource, commitObject, parentCommit sql.NullString

		if err := rows.Scan(
			&entry.Event.ID, &entry.Event.SponsorID, &ms, &entry.Event.Description,
			&entry.SponsorName,
			&gratitudeID, &commitMessage, &workingDirectory,
			&preMessagePath, &commitSource, &commitObject, &parentCommit,
		); err != nil {
			return nil, fmt.Errorf("scan history entry: %w", err)
		}
		entry.Event.Timestamp = millisToTime(ms)

		if gratitudeID.Valid {
			entry.Commit = &sponsor.CommitRecord{
				GratitudeID:      gratitudeID.String,
				CommitMessage:    commitMessage.String,
				WorkingDirectory: workingDirectory.String,
				PreMessagePath:   preMessagePath.String,
				CommitSource:     commitSource.String,
				CommitObject:     commitObject.String,
				ParentCommit:     parentCommit.String,
			}
		}

		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate history: %w", err)
	}

	if entries == nil {
		entries = []sponsor.HistoryEntry{}
	}

	return entries, nil
}

// scanGratitude scans a row into a Gratitude struct.
func scanGratitude(rows *sql.Rows) (sponsor.Gratitude, error) {
	var g sponsor.Gratitude
	var ms int64

	if err := rows.Scan(&g.ID, &g.SponsorID, &ms, &g.Description); err != nil {
		return sponsor.Gratitude{}, fmt.Errorf("scan gratitude: %w", err)
	}

	g.Timestamp = millisToTime(ms)
	return g, nil
}
