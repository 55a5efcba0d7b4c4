package store

import (
	"context"
	"database/sql"
)

// Store is a byte-valued key/value tier.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// DBTX is the subset of database/sql used by SQLiteStore.
// Both *sql.DB and *sql.Tx satisfy it.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Tier names where a record is persisted.
type Tier int

const (
	TierNone Tier = iota
	TierDurable
	TierEphemeral
)

func (t Tier) String() string {
	switch t {
	case TierDurable:
		return "durable"
	case TierEphemeral:
		return "ephemeral"
	default:
		return "none"
	}
}
