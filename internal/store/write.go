package store

import (
	"context"
	"fmt"

	"github.com/roach88/sponcom/internal/sponsor"
)

// UpsertSponsor inserts or updates a sponsor outside the crediting
// transaction. Used by administrative commands (add, level changes);
// the crediting engine saves sponsors through its own Tx instead.
func (s *Store) UpsertSponsor(ctx context.Context, sp sponsor.Sponsor) error {
	_, err := s.db.ExecContext(ctx, `
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
		return fmt.Errorf("upsert sponsor: %w", err)
	}
	return nil
}
