package unitofwork

import "context"

type RepositoryFactory interface {
	NewUnitOfWork(ctx context.Context) UnitOfWork
	// Ping reports whether the underlying store is reachable.
	Ping(ctx context.Context) error
}
