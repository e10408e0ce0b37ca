// Package store provides SQLite-backed durable storage for sponsors,
// gratitude events, and commit attachments.
//
// Three related record sets:
//   - sponsors: the root entities, keyed by opaque UUID strings
//   - gratitude_events: append-only audit log, foreign key to sponsors
//   - commit_attachments: at most one per gratitude event
//
// The crediting engine works exclusively through Tx (see Begin), so
// the random draw and the balance decrement always share one
// transaction. A CHECK constraint backs the 0 <= current <= level
// invariant at the database level.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
//
// Schema bootstrap is idempotent: Open may be called against an
// already-initialized database and is a no-op.
package store
