// Package store defines the record store contract and its backends.
package store

import (
	"context"
	"fmt"

	"github.com/hpungsan/tally/internal/db"
	"github.com/hpungsan/tally/internal/record"
)

// Backend names accepted by Open.
const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
)

// Store is a keyed collection of records.
// Implementations must be safe for concurrent use; each method is atomic with
// respect to the others. Listing order is insertion order.
type Store interface {
	// Insert adds rec. Returns DUPLICATE_VALUE if a record with the same value exists.
	Insert(ctx context.Context, rec *record.Record) error

	// GetByKey returns the record with the given id, or NOT_FOUND.
	GetByKey(ctx context.Context, key string) (*record.Record, error)

	// GetByValue returns the record whose value equals value, or NOT_FOUND.
	GetByValue(ctx context.Context, value string) (*record.Record, error)

	ExistsByValue(ctx context.Context, value string) (bool, error)

	// DeleteByValue removes the record with the given value and reports whether one existed.
	DeleteByValue(ctx context.Context, value string) (bool, error)

	// DeleteByKey removes the record with the given id and reports whether one existed.
	DeleteByKey(ctx context.Context, key string) (bool, error)

	ListAll(ctx context.Context) ([]*record.Record, error)

	// Filter returns the records matching every present field of f.
	Filter(ctx context.Context, f record.Filters) ([]*record.Record, error)

	Count(ctx context.Context) (int, error)

	Close() error
}

// Open creates an empty store for the named backend.
func Open(backend string) (Store, error) {
	switch backend {
	case "", BackendMemory:
		return NewMemory(), nil
	case BackendSQLite:
		return db.Open()
	default:
		return nil, fmt.Errorf("unknown store backend %q (want %q or %q)", backend, BackendMemory, BackendSQLite)
	}
}
