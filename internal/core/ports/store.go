package ports

import "context"

// Gateway hands out request-scoped persistence handles.
type Gateway interface {
	Acquire(ctx context.Context) (Handle, error)
	Ping(ctx context.Context) error
}

// Handle is a request-scoped unit of work.
//
// Writes made through the repositories are durable no later than Commit;
// a backend may apply them earlier. Release must be called on every exit
// path; it discards anything still pending and is safe to call after Commit.
type Handle interface {
	Todos() TodoRepository
	Users() UserRepository
	Commit() error
	Release()
}
