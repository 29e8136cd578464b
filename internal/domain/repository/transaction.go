package repository

import "context"

// TransactionManager defines the interface for running multiple document
// reads and writes atomically. This keeps the usecase layer free of any
// dependency on the concrete store SDK.
type TransactionManager interface {
	// Execute runs a function within a store transaction. If the function
	// returns an error the transaction is discarded, otherwise it is
	// committed. All repository operations obtained through the factory are
	// bound to the same transaction.
	Execute(ctx context.Context, fn func(txRepoFactory RepositoryFactory) error) error
}

// RepositoryFactory provides repository instances bound to one transaction.
type RepositoryFactory interface {
	// PantryRepo returns a PantryRepository bound to the current transaction.
	PantryRepo() PantryRepository

	// UserRepo returns a UserRepository bound to the current transaction.
	UserRepo() UserRepository
}
