package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/todoapp/todo-api/internal/core/domain"
	"github.com/todoapp/todo-api/internal/core/ports"
)

type stubTodoService struct {
	listFn   func(ctx context.Context, caller domain.Identity) ([]*domain.Todo, error)
	getFn    func(ctx context.Context, caller domain.Identity, id int64) (*domain.Todo, error)
	createFn func(ctx context.Context, caller domain.Identity, in domain.TodoFields) (*domain.Todo, error)
	updateFn func(ctx context.Context, caller domain.Identity, id int64, in domain.TodoFields) error
	deleteFn func(ctx context.Context, caller domain.Identity, id int64) error
}

func (s *stubTodoService) List(ctx context.Context, caller domain.Identity, _ ports.Handle) ([]*domain.Todo, error) {
	return s.listFn(ctx, caller)
}

func (s *stubTodoService) Get(ctx context.Context, caller domain.Identity, _ ports.Handle, id int64) (*domain.Todo, error) {
	return s.getFn(ctx, caller, id)
}

func (s *stubTodoService) Create(ctx context.Context, caller domain.Identity, _ ports.Handle, in domain.TodoFields) (*domain.Todo, error) {
	return s.createFn(ctx, caller, in)
}

func (s *stubTodoService) Update(ctx context.Context, caller domain.Identity, _ ports.Handle, id int64, in domain.TodoFields) error {
	return s.updateFn(ctx, caller, id, in)
}

func (s *stubTodoService) Delete(ctx context.Context, caller domain.Identity, _ ports.Handle, id int64) error {
	return s.deleteFn(ctx, caller, id)
}

func TestTodoHandler_List(t *testing.T) {
	stub := &stubTodoService{
		listFn: func(_ context.Context, got domain.Identity) ([]*domain.Todo, error) {
			if got.ID != caller.ID {
				t.Fatalf("unexpected caller %+v", got)
			}
			return []*domain.Todo{
				{ID: 1, Title: "abc", Description: "def", Priority: 1, OwnerID: caller.ID},
				{ID: 3, Title: "ghi", Description: "jkl", Priority: 5, Completed: true, OwnerID: caller.ID},
			}, nil
		},
	}
	h := NewTodoHandler(stub, newMetrics())

	c, rec := newContext(t, http.MethodGet, "/todos", nil, caller)
	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp) != 2 {
		t.Fatalf("expected 2 todos, got %d", len(resp))
	}
	if resp[1]["completed"] != true || resp[1]["owner_id"] != float64(caller.ID) {
		t.Fatalf("unexpected payload %+v", resp[1])
	}
}

func TestTodoHandler_List_EmptyArray(t *testing.T) {
	stub := &stubTodoService{
		listFn: func(context.Context, domain.Identity) ([]*domain.Todo, error) { return []*domain.Todo{}, nil },
	}
	h := NewTodoHandler(stub, newMetrics())

	c, rec := newContext(t, http.MethodGet, "/todos", nil, caller)
	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if body := rec.Body.String(); body != "[]\n" {
		t.Fatalf("expected empty JSON array, got %q", body)
	}
}

func TestTodoHandler_Unauthenticated(t *testing.T) {
	stub := &stubTodoService{}
	h := NewTodoHandler(stub, newMetrics())

	c, _ := newContext(t, http.MethodGet, "/todos", nil, domain.Identity{})
	if err := h.List(c); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestTodoHandler_Get(t *testing.T) {
	stub := &stubTodoService{
		getFn: func(_ context.Context, _ domain.Identity, id int64) (*domain.Todo, error) {
			if id != 42 {
				t.Fatalf("unexpected id %d", id)
			}
			return &domain.Todo{ID: 42, Title: "abc", Description: "def", Priority: 2, OwnerID: caller.ID}, nil
		},
	}
	h := NewTodoHandler(stub, newMetrics())

	c, rec := newContext(t, http.MethodGet, "/todos/42", nil, caller)
	c.SetParamNames("id")
	c.SetParamValues("42")

	if err := h.Get(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	for _, key := range []string{"id", "title", "description", "priority", "completed", "owner_id"} {
		if _, ok := resp[key]; !ok {
			t.Errorf("missing key %q", key)
		}
	}
}

func TestTodoHandler_Get_InvalidID(t *testing.T) {
	stub := &stubTodoService{
		getFn: func(context.Context, domain.Identity, int64) (*domain.Todo, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := NewTodoHandler(stub, newMetrics())

	for _, raw := range []string{"0", "-3", "abc", "1.5", "99999999999999999999"} {
		c, _ := newContext(t, http.MethodGet, "/todos/"+raw, nil, caller)
		c.SetParamNames("id")
		c.SetParamValues(raw)

		err := h.Get(c)
		if !errors.Is(err, domain.ErrInvalidID) {
			t.Fatalf("id %q: expected ErrInvalidID, got %v", raw, err)
		}
		if err.Error() != "id must be a positive integer" {
			t.Fatalf("id %q: unexpected message %q", raw, err.Error())
		}
	}
}

func TestTodoHandler_Get_NotFoundPassesThrough(t *testing.T) {
	stub := &stubTodoService{
		getFn: func(context.Context, domain.Identity, int64) (*domain.Todo, error) {
			return nil, domain.ErrTodoNotFound
		},
	}
	h := NewTodoHandler(stub, newMetrics())

	c, _ := newContext(t, http.MethodGet, "/todos/9", nil, caller)
	c.SetParamNames("id")
	c.SetParamValues("9")

	if err := h.Get(c); !errors.Is(err, domain.ErrTodoNotFound) {
		t.Fatalf("expected ErrTodoNotFound, got %v", err)
	}
}

func TestTodoHandler_Create(t *testing.T) {
	var received domain.TodoFields
	stub := &stubTodoService{
		createFn: func(_ context.Context, _ domain.Identity, in domain.TodoFields) (*domain.Todo, error) {
			received = in
			return &domain.Todo{ID: 11, OwnerID: caller.ID}, nil
		},
	}
	m := newMetrics()
	h := NewTodoHandler(stub, m)

	body := jsonBody(`{"title":"abc","description":"def","priority":5,"completed":true,"owner_id":999}`)
	c, rec := newContext(t, http.MethodPost, "/todos/todo", body, caller)

	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if rec.Body.Len() != 0 {
		t.Fatalf("expected empty body, got %q", rec.Body.String())
	}
	if loc := rec.Header().Get("Location"); loc != "/todos/11" {
		t.Fatalf("unexpected Location %q", loc)
	}
	want := domain.TodoFields{Title: "abc", Description: "def", Priority: 5, Completed: true}
	if received != want {
		t.Fatalf("unexpected fields %+v", received)
	}
	if got := testutil.ToFloat64(m.TodoMutationsTotal.WithLabelValues("create")); got != 1 {
		t.Fatalf("expected create counter 1, got %v", got)
	}
}

func TestTodoHandler_Create_ValidationFailures(t *testing.T) {
	stub := &stubTodoService{
		createFn: func(context.Context, domain.Identity, domain.TodoFields) (*domain.Todo, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := NewTodoHandler(stub, newMetrics())

	cases := map[string]string{
		"short title":         `{"title":"ab","description":"def","priority":3,"completed":false}`,
		"short description":   `{"title":"abc","description":"de","priority":3,"completed":false}`,
		"long description":    `{"title":"abc","description":"` + string(make101()) + `","priority":3,"completed":false}`,
		"priority zero":       `{"title":"abc","description":"def","priority":0,"completed":false}`,
		"priority six":        `{"title":"abc","description":"def","priority":6,"completed":false}`,
		"missing completed":   `{"title":"abc","description":"def","priority":3}`,
		"legacy complete key": `{"title":"abc","description":"def","priority":3,"complete":true}`,
		"malformed json":      `{"title":`,
		"wrong type":          `{"title":"abc","description":"def","priority":"high","completed":false}`,
	}
	for name, payload := range cases {
		t.Run(name, func(t *testing.T) {
			c, _ := newContext(t, http.MethodPost, "/todos/todo", jsonBody(payload), caller)
			if err := h.Create(c); httpStatus(err) != http.StatusUnprocessableEntity {
				t.Fatalf("expected 422, got %v", err)
			}
		})
	}
}

func make101() []byte {
	b := make([]byte, 101)
	for i := range b {
		b[i] = 'x'
	}
	return b
}

func TestTodoHandler_Update(t *testing.T) {
	called := false
	stub := &stubTodoService{
		updateFn: func(_ context.Context, _ domain.Identity, id int64, in domain.TodoFields) error {
			called = true
			if id != 5 || in.Title != "new" || in.Completed {
				t.Fatalf("unexpected args %d %+v", id, in)
			}
			return nil
		},
	}
	h := NewTodoHandler(stub, newMetrics())

	c, rec := newContext(t, http.MethodPut, "/todos/todo/5", jsonBody(`{"title":"new","description":"def","priority":1,"completed":false}`), caller)
	c.SetParamNames("id")
	c.SetParamValues("5")

	if err := h.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called || rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d (called=%v)", rec.Code, called)
	}
}

func TestTodoHandler_Delete(t *testing.T) {
	calls := 0
	stub := &stubTodoService{
		deleteFn: func(_ context.Context, _ domain.Identity, id int64) error {
			calls++
			if calls > 1 {
				return domain.ErrTodoNotFound
			}
			return nil
		},
	}
	m := newMetrics()
	h := NewTodoHandler(stub, m)

	c, rec := newContext(t, http.MethodDelete, "/todos/todo/5", nil, caller)
	c.SetParamNames("id")
	c.SetParamValues("5")
	if err := h.Delete(c); err != nil {
		t.Fatalf("first delete: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}

	c, _ = newContext(t, http.MethodDelete, "/todos/todo/5", nil, caller)
	c.SetParamNames("id")
	c.SetParamValues("5")
	if err := h.Delete(c); !errors.Is(err, domain.ErrTodoNotFound) {
		t.Fatalf("second delete: expected ErrTodoNotFound, got %v", err)
	}
	if got := testutil.ToFloat64(m.TodoMutationsTotal.WithLabelValues("delete")); got != 1 {
		t.Fatalf("expected delete counter 1, got %v", got)
	}
}
