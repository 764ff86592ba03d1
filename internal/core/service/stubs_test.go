package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/todoapp/todo-api/internal/core/domain"
	"github.com/todoapp/todo-api/internal/core/ports"
)

var discardLogger = zerolog.Nop()

// ---------------------------------------------------------------------------
// In-memory stub handle and repositories
// ---------------------------------------------------------------------------

type stubHandle struct {
	todos     *stubTodoRepo
	users     *stubUserRepo
	commits   int
	commitErr error
}

func newStubHandle() *stubHandle {
	return &stubHandle{
		todos: &stubTodoRepo{rows: make(map[int64]*domain.Todo)},
		users: &stubUserRepo{rows: make(map[int64]*domain.User)},
	}
}

func (h *stubHandle) Todos() ports.TodoRepository { return h.todos }
func (h *stubHandle) Users() ports.UserRepository { return h.users }
func (h *stubHandle) Release()                    {}

func (h *stubHandle) Commit() error {
	if h.commitErr != nil {
		return h.commitErr
	}
	h.commits++
	return nil
}

type stubTodoRepo struct {
	rows      map[int64]*domain.Todo
	nextID    int64
	createErr error
}

func (r *stubTodoRepo) ListByOwner(_ context.Context, ownerID int64) ([]*domain.Todo, error) {
	var out []*domain.Todo
	for _, t := range r.rows {
		if t.OwnerID == ownerID {
			clone := *t
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubTodoRepo) FindByIDAndOwner(_ context.Context, id, ownerID int64) (*domain.Todo, error) {
	t, ok := r.rows[id]
	if !ok || t.OwnerID != ownerID {
		return nil, domain.ErrTodoNotFound
	}
	clone := *t
	return &clone, nil
}

func (r *stubTodoRepo) Create(_ context.Context, t *domain.Todo) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.nextID++
	t.ID = r.nextID
	clone := *t
	r.rows[t.ID] = &clone
	return nil
}

func (r *stubTodoRepo) Update(_ context.Context, t *domain.Todo) error {
	existing, ok := r.rows[t.ID]
	if !ok || existing.OwnerID != t.OwnerID {
		return domain.ErrTodoNotFound
	}
	clone := *t
	r.rows[t.ID] = &clone
	return nil
}

func (r *stubTodoRepo) DeleteByIDAndOwner(_ context.Context, id, ownerID int64) error {
	t, ok := r.rows[id]
	if !ok || t.OwnerID != ownerID {
		return domain.ErrTodoNotFound
	}
	delete(r.rows, id)
	return nil
}

type stubUserRepo struct {
	rows   map[int64]*domain.User
	nextID int64
}

func (r *stubUserRepo) Create(_ context.Context, u *domain.User) error {
	for _, existing := range r.rows {
		if existing.Username == u.Username || existing.Email == u.Email {
			return domain.ErrUserExists
		}
	}
	r.nextID++
	u.ID = r.nextID
	clone := *u
	r.rows[u.ID] = &clone
	return nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range r.rows {
		if u.Username == username {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id int64) (*domain.User, error) {
	u, ok := r.rows[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) UpdatePassword(_ context.Context, id int64, hashedPassword string) error {
	u, ok := r.rows[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.HashedPassword = hashedPassword
	return nil
}

func (r *stubUserRepo) UpdatePhoneNumber(_ context.Context, id int64, phone *string) error {
	u, ok := r.rows[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.PhoneNumber = phone
	return nil
}

type stubSessions struct {
	mu     sync.Mutex
	active map[string]int64
	err    error
}

func newStubSessions() *stubSessions {
	return &stubSessions{active: make(map[string]int64)}
}

func (s *stubSessions) Register(_ context.Context, sessionID string, userID int64, _ time.Duration) error {
	if s.err != nil {
		return s.err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active[sessionID] = userID
	return nil
}

func (s *stubSessions) Active(_ context.Context, sessionID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.active[sessionID]
	return ok, nil
}

func (s *stubSessions) Revoke(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.active, sessionID)
	return nil
}

func (s *stubSessions) Ping(context.Context) error { return nil }

var errStorage = errors.New("storage unavailable")
