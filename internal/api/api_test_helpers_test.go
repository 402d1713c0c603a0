package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/tasktrack/tasktrack-api/internal/api/shared"
	"github.com/tasktrack/tasktrack-api/internal/config"
	"github.com/tasktrack/tasktrack-api/internal/domain"
	"github.com/tasktrack/tasktrack-api/internal/service"
	"github.com/tasktrack/tasktrack-api/internal/service/auth"
	"github.com/tasktrack/tasktrack-api/internal/store"
)

// fakeUserStore is an in-memory UserStore for handler tests.
type fakeUserStore struct {
	mu    sync.Mutex
	users map[uuid.UUID]*domain.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[uuid.UUID]*domain.User)}
}

func (s *fakeUserStore) Create(ctx context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Email == user.Email {
			return store.ErrEmailExists
		}
	}
	copied := *user
	s.users[user.ID] = &copied
	return nil
}

func (s *fakeUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (s *fakeUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	normalized := domain.NormalizeEmail(email)
	for _, user := range s.users {
		if user.Email == normalized {
			copied := *user
			return &copied, nil
		}
	}
	return nil, store.ErrUserNotFound
}

func (s *fakeUserStore) Update(ctx context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[user.ID]; !ok {
		return store.ErrUserNotFound
	}
	for id, existing := range s.users {
		if id != user.ID && existing.Email == user.Email {
			return store.ErrEmailExists
		}
	}
	copied := *user
	s.users[user.ID] = &copied
	return nil
}

func (s *fakeUserStore) List(ctx context.Context) ([]*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	result := make([]*domain.User, 0, len(s.users))
	for _, user := range s.users {
		copied := *user
		result = append(result, &copied)
	}
	return result, nil
}

var _ store.UserStore = (*fakeUserStore)(nil)

// fakeTaskStore and fakeCategoryStore back the real services in handler
// tests, so requests exercise the full handler-service path.
type fakeTaskStore struct {
	mu    sync.Mutex
	tasks map[uuid.UUID]*domain.Task
}

func newFakeTaskStore() *fakeTaskStore {
	return &fakeTaskStore{tasks: make(map[uuid.UUID]*domain.Task)}
}

func (s *fakeTaskStore) Create(ctx context.Context, task *domain.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *task
	s.tasks[task.ID] = &copied
	return nil
}

func (s *fakeTaskStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	task, ok := s.tasks[id]
	if !ok {
		return nil, store.ErrTaskNotFound
	}
	copied := *task
	return &copied, nil
}

func (s *fakeTaskStore) Update(ctx context.Context, task *domain.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tasks[task.ID]; !ok {
		return store.ErrTaskNotFound
	}
	copied := *task
	s.tasks[task.ID] = &copied
	return nil
}

func (s *fakeTaskStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tasks[id]; !ok {
		return store.ErrTaskNotFound
	}
	delete(s.tasks, id)
	return nil
}

func (s *fakeTaskStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Task, error) {
	return s.list(func(t *domain.Task) bool { return t.UserID == userID })
}

func (s *fakeTaskStore) ListByUserAndStatus(
	ctx context.Context,
	userID uuid.UUID,
	status domain.TaskStatus,
) ([]*domain.Task, error) {
	return s.list(func(t *domain.Task) bool { return t.UserID == userID && t.Status == status })
}

func (s *fakeTaskStore) ListByUserAndPriority(
	ctx context.Context,
	userID uuid.UUID,
	priority domain.TaskPriority,
) ([]*domain.Task, error) {
	return s.list(func(t *domain.Task) bool { return t.UserID == userID && t.Priority == priority })
}

func (s *fakeTaskStore) list(keep func(*domain.Task) bool) ([]*domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []*domain.Task
	for _, task := range s.tasks {
		if keep(task) {
			copied := *task
			result = append(result, &copied)
		}
	}
	return result, nil
}

var _ store.TaskStore = (*fakeTaskStore)(nil)

type fakeCategoryStore struct {
	mu         sync.Mutex
	categories map[uuid.UUID]*domain.Category
}

func newFakeCategoryStore() *fakeCategoryStore {
	return &fakeCategoryStore{categories: make(map[uuid.UUID]*domain.Category)}
}

func (s *fakeCategoryStore) Create(ctx context.Context, category *domain.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *category
	s.categories[category.ID] = &copied
	return nil
}

func (s *fakeCategoryStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	category, ok := s.categories[id]
	if !ok {
		return nil, store.ErrCategoryNotFound
	}
	copied := *category
	return &copied, nil
}

func (s *fakeCategoryStore) Update(ctx context.Context, category *domain.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.categories[category.ID]; !ok {
		return store.ErrCategoryNotFound
	}
	copied := *category
	s.categories[category.ID] = &copied
	return nil
}

func (s *fakeCategoryStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.categories[id]; !ok {
		return store.ErrCategoryNotFound
	}
	delete(s.categories, id)
	return nil
}

func (s *fakeCategoryStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []*domain.Category
	for _, category := range s.categories {
		if category.UserID == userID {
			copied := *category
			result = append(result, &copied)
		}
	}
	return result, nil
}

var _ store.CategoryStore = (*fakeCategoryStore)(nil)

// testAuthConfig returns a config suitable for exercising the real JWT
// service in handler tests.
func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		TokenSecret:          "test-secret-that-is-long-enough-for-testing",
		TokenLifetimeMinutes: 60,
		BcryptCost:           4, // bcrypt.MinCost keeps hashing fast in tests
	}
}

// injectClaims is a test middleware standing in for the real
// authentication middleware: every request carries the given identity.
func injectClaims(claims auth.Claims) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := shared.WithClaims(r.Context(), claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// taskRouterFor mounts the task and category routes behind an identity
// injected for the given user, backed by shared fake stores.
func taskRouterFor(
	t *testing.T,
	userID uuid.UUID,
	taskStore *fakeTaskStore,
	categoryStore *fakeCategoryStore,
) http.Handler {
	t.Helper()

	taskService, err := service.NewTaskService(taskStore, categoryStore, nil)
	require.NoError(t, err)
	categoryService, err := service.NewCategoryService(categoryStore, nil)
	require.NoError(t, err)

	taskHandler := NewTaskHandler(taskService, nil)
	categoryHandler := NewCategoryHandler(categoryService, nil)

	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Use(injectClaims(auth.Claims{UserID: userID, Role: domain.RoleUser}))

		r.Post("/tasks", taskHandler.CreateTask)
		r.Get("/tasks", taskHandler.ListTasks)
		r.Get("/tasks/{id}", taskHandler.GetTask)
		r.Put("/tasks/{id}", taskHandler.UpdateTask)
		r.Delete("/tasks/{id}", taskHandler.DeleteTask)
		r.Get("/tasks/status/{status}", taskHandler.ListTasksByStatus)
		r.Get("/tasks/priority/{priority}", taskHandler.ListTasksByPriority)
		r.Patch("/tasks/{id}/complete", taskHandler.ToggleTaskCompletion)

		r.Post("/categories", categoryHandler.CreateCategory)
		r.Get("/categories", categoryHandler.ListCategories)
		r.Get("/categories/{id}", categoryHandler.GetCategory)
		r.Put("/categories/{id}", categoryHandler.UpdateCategory)
		r.Delete("/categories/{id}", categoryHandler.DeleteCategory)
	})
	return r
}

// doJSON performs a request with an optional JSON body against the handler
// and returns the recorder.
func doJSON(t *testing.T, handler http.Handler, method, target string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

// decodeBody unmarshals a recorder's JSON body into dst.
func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), dst))
}
