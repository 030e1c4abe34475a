package models

import "context"

// AccountDirectory is the persistence contract the ledger core depends on.
//
// SaveAll must persist every account as a single atomic write — the
// transfer orchestrator's all-or-nothing guarantee rests on it. For any
// two concurrent operations touching the same account number, an
// implementation must apply their balance effects as if serialized in some
// order: the gorm directory takes row locks inside a database transaction,
// the in-memory one holds a single mutex.
type AccountDirectory interface {
	// FindByNumber resolves an account or fails with AccountNotFoundError.
	FindByNumber(ctx context.Context, number string) (*Account, error)
	// Save upserts one account and returns the persisted representation.
	Save(ctx context.Context, account *Account) (*Account, error)
	// SaveAll upserts all accounts atomically.
	SaveAll(ctx context.Context, accounts []*Account) ([]*Account, error)
	// FindAll lists every account ordered by number.
	FindAll(ctx context.Context) ([]*Account, error)
	// InTransaction runs fn against a transactional view of the directory.
	// Writes made through the view become visible only after fn returns
	// nil; a non-nil error discards them.
	InTransaction(ctx context.Context, fn func(AccountDirectory) error) error
}
