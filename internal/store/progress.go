package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/jmoiron/sqlx"

	"github.com/okrylov/praktik/internal/progress"
)

// identityLocks hands out one mutex per learner identity so that
// read-modify-write cycles on the same record never interleave.
type identityLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newIdentityLocks() *identityLocks {
	return &identityLocks{locks: make(map[string]*sync.Mutex)}
}

func (il *identityLocks) get(identity string) *sync.Mutex {
	il.mu.Lock()
	defer il.mu.Unlock()
	m, ok := il.locks[identity]
	if !ok {
		m = &sync.Mutex{}
		il.locks[identity] = m
	}
	return m
}

// progressRepo implements ProgressRepo over the learner_progress table.
// Records are stored as a single JSON document per identity; the engine
// always reads and writes the whole record, so per-field columns would
// only add migration churn.
type progressRepo struct {
	db    *sqlx.DB
	locks *identityLocks
}

func (r *progressRepo) Get(ctx context.Context, identity, firstSkill string) (progress.Record, error) {
	var raw string
	err := r.db.GetContext(ctx, &raw,
		`SELECT record FROM learner_progress WHERE identity = ?`, identity)
	if errors.Is(err, sql.ErrNoRows) {
		return progress.NewRecord(firstSkill), nil
	}
	if err != nil {
		return progress.Record{}, fmt.Errorf("load progress: %w", err)
	}

	var rec progress.Record
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return progress.Record{}, fmt.Errorf("decode progress record: %w", err)
	}
	rec.Normalize()
	return rec, nil
}

func (r *progressRepo) Put(ctx context.Context, identity string, rec progress.Record) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode progress record: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO learner_progress (identity, record, updated_at)
		 VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT (identity) DO UPDATE SET
		   record = excluded.record,
		   updated_at = CURRENT_TIMESTAMP`,
		identity, string(raw))
	if err != nil {
		return fmt.Errorf("save progress: %w", err)
	}
	return nil
}

func (r *progressRepo) Update(ctx context.Context, identity, firstSkill string, fn func(rec *progress.Record) error) (progress.Record, error) {
	lock := r.locks.get(identity)
	lock.Lock()
	defer lock.Unlock()

	rec, err := r.Get(ctx, identity, firstSkill)
	if err != nil {
		return progress.Record{}, err
	}

	if err := fn(&rec); err != nil {
		return progress.Record{}, err
	}

	if err := r.Put(ctx, identity, rec); err != nil {
		return progress.Record{}, err
	}
	return rec, nil
}

func (r *progressRepo) Reset(ctx context.Context, identity string) error {
	lock := r.locks.get(identity)
	lock.Lock()
	defer lock.Unlock()

	_, err := r.db.ExecContext(ctx,
		`DELETE FROM learner_progress WHERE identity = ?`, identity)
	if err != nil {
		return fmt.Errorf("reset progress: %w", err)
	}
	return nil
}
