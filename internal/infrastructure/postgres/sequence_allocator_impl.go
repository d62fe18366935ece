package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/oksasatya/alc-backend/internal/domain/repository"
)

// SequenceAllocator keeps named counters in the sequences table. Next is a
// single upsert so concurrent callers serialize on the row lock.
type SequenceAllocator struct {
	db *sql.DB
}

func NewSequenceAllocator(db *sql.DB) *SequenceAllocator {
	return &SequenceAllocator{db: db}
}

func (a *SequenceAllocator) Next(ctx context.Context, name string) (int64, error) {
	var v int64
	err := a.db.QueryRowContext(ctx, `
		INSERT INTO sequences (name, value) VALUES ($1, 1)
		ON CONFLICT (name) DO UPDATE SET value = sequences.value + 1, updated_at = now()
		RETURNING value
	`, name).Scan(&v)
	return v, err
}

func (a *SequenceAllocator) Peek(ctx context.Context, name string) (int64, error) {
	var v int64
	err := a.db.QueryRowContext(ctx, `SELECT value FROM sequences WHERE name = $1`, name).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	return v, err
}

var _ repository.SequenceAllocator = (*SequenceAllocator)(nil)
