// Package testutil provides test doubles for the crediting engine.
package testutil

import (
	"context"
	"sync"

	"github.com/roach88/sponcom/internal/sponsor"
)

// MemStore is an in-memory sponsor.Store for engine tests. Unlike the
// SQLite store it draws sponsors in insertion order, so tests can
// assert on exact outcomes.
//
// Transactions are snapshot-based: Begin copies the state, Commit
// writes the copy back, Rollback discards it. A failed transaction
// therefore leaves the store untouched, matching the rollback
// semantics the engine relies on.
//
// Thread-safety: safe for concurrent use via internal mutex, though
// tests typically drive it from one goroutine.
type MemStore struct {
	mu       sync.Mutex
	sponsors map[string]sponsor.Sponsor
	order    []string
	events   []sponsor.Gratitude
	commits  map[string]sponsor.CommitRecord

	// BeginErr, when set, makes Begin fail. Per-operation failures
	// are injected through FailNextDraw and friends on the Tx.
	BeginErr error

	// FailDraw, FailSave, FailGratitude, FailCommitRecord and
	// FailReset make the corresponding Tx operation fail.
	FailDraw         error
	FailSave         error
	FailGratitude    error
	FailCommitRecord error
	FailReset        error

	// Begun counts opened transactions, committed or not.
	Begun int
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{
		sponsors: make(map[string]sponsor.Sponsor),
		commits:  make(map[string]sponsor.CommitRecord),
	}
}

// Seed inserts sponsors directly, outside any transaction.
func (m *MemStore) Seed(sponsors ...sponsor.Sponsor) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, sp := range sponsors {
		if _, ok := m.sponsors[sp.ID]; !ok {
			m.order = append(m.order, sp.ID)
		}
		m.sponsors[sp.ID] = sp
	}
}

// Sponsors returns all sponsors in insertion order.
func (m *MemStore) Sponsors() []sponsor.Sponsor {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]sponsor.Sponsor, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.sponsors[id])
	}
	return out
}

// Events returns all gratitude events in append order.
func (m *MemStore) Events() []sponsor.Gratitude {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]sponsor.Gratitude, len(m.events))
	copy(out, m.events)
	return out
}

// CommitRecord returns the commit attachment for a gratitude event,
// or nil if none exists.
func (m *MemStore) CommitRecord(gratitudeID string) *sponsor.CommitRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	if rec, ok := m.commits[gratitudeID]; ok {
		return &rec
	}
	return nil
}

// Begin implements sponsor.Store.
func (m *MemStore) Begin(ctx context.Context) (sponsor.Tx, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.BeginErr != nil {
		return nil, m.BeginErr
	}
	m.Begun++

	tx := &memTx{store: m}
	tx.sponsors = make(map[string]sponsor.Sponsor, len(m.sponsors))
	for id, sp := range m.sponsors {
		tx.sponsors[id] = sp
	}
	tx.order = append([]string(nil), m.order...)
	tx.events = append([]sponsor.Gratitude(nil), m.events...)
	tx.commits = make(map[string]sponsor.CommitRecord, len(m.commits))
	for id, rec := range m.commits {
		tx.commits[id] = rec
	}
	return tx, nil
}

type memTx struct {
	store    *MemStore
	sponsors map[string]sponsor.Sponsor
	order    []string
	events   []sponsor.Gratitude
	commits  map[string]sponsor.CommitRecord
	done     bool
}

func (t *memTx) DrawSponsors(ctx context.Context, limit int) ([]sponsor.Sponsor, error) {
	if err := t.store.FailDraw; err != nil {
		return nil, err
	}
	var drawn []sponsor.Sponsor
	for _, id := range t.order {
		if len(drawn) == limit {
			break
		}
		if sp := t.sponsors[id]; sp.Current > 0 {
			drawn = append(drawn, sp)
		}
	}
	return drawn, nil
}

func (t *memTx) SaveSponsor(ctx context.Context, sp sponsor.Sponsor) error {
	if err := t.store.FailSave; err != nil {
		return err
	}
	if _, ok := t.sponsors[sp.ID]; !ok {
		t.order = append(t.order, sp.ID)
	}
	t.sponsors[sp.ID] = sp
	return nil
}

func (t *memTx) AddGratitude(ctx context.Context, g sponsor.Gratitude) error {
	if err := t.store.FailGratitude; err != nil {
		return err
	}
	t.events = append(t.events, g)
	return nil
}

func (t *memTx) AddCommitRecord(ctx context.Context, rec sponsor.CommitRecord) error {
	if err := t.store.FailCommitRecord; err != nil {
		return err
	}
	t.commits[rec.GratitudeID] = rec
	return nil
}

func (t *memTx) ResetAllSponsors(ctx context.Context) (int, error) {
	if err := t.store.FailReset; err != nil {
		return 0, err
	}
	for id, sp := range t.sponsors {
		sp.Current = sp.Level
		t.sponsors[id] = sp
	}
	return len(t.sponsors), nil
}

func (t *memTx) Commit() error {
	if t.done {
		return nil
	}
	t.done = true

	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	t.store.sponsors = t.sponsors
	t.store.order = t.order
	t.store.events = t.events
	t.store.commits = t.commits
	return nil
}

func (t *memTx) Rollback() error {
	t.done = true
	return nil
}
