// Package tx provides transaction management abstractions.
// This package defines the interface that decouples domain logic from the
// storage implementation; domain services depend on it, never on pgx directly.
package tx

import (
	"context"
)

// Manager defines the contract for transaction management.
// Implementations handle BEGIN, COMMIT and ROLLBACK.
//
// The actual implementation lives in infrastructure/storage.
type Manager interface {
	// RunInTransaction executes fn within a database transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn succeeds, the transaction is committed.
	//
	// Nested calls reuse the existing transaction from context.
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// RunSerializable executes fn like RunInTransaction but under serializable
	// isolation. Required for bill settlement: two concurrent bills for the
	// same scarce item must not both observe sufficient stock.
	RunSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}
