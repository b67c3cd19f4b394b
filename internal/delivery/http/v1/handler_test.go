package v1

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/Varshithx/task-manager/internal/delivery/http/token"
	"github.com/Varshithx/task-manager/internal/models"
	"github.com/Varshithx/task-manager/internal/services"
)

// In-memory fakes implementing the service contracts, so the handlers,
// middleware and token codec run against real routing end to end.

type fakeAccounts struct {
	users     map[string]*models.User // keyed by username
	passwords map[string]string
	nextID    int
}

func newFakeAccounts() *fakeAccounts {
	return &fakeAccounts{
		users:     make(map[string]*models.User),
		passwords: make(map[string]string),
	}
}

func (f *fakeAccounts) Register(_ context.Context, params services.RegisterParams) (*models.User, error) {
	username := strings.TrimSpace(params.Username)
	email := strings.TrimSpace(params.Email)
	if username == "" || email == "" || params.Password == "" {
		return nil, services.ErrMissingFields
	}
	if len(params.Password) < 6 {
		return nil, services.ErrPasswordTooShort
	}
	if _, ok := f.users[username]; ok {
		return nil, services.ErrUsernameTaken
	}
	for _, user := range f.users {
		if user.Email == email {
			return nil, services.ErrEmailTaken
		}
	}

	f.nextID++
	user := &models.User{
		ID:        fmt.Sprintf("u-%d", f.nextID),
		Username:  username,
		Email:     email,
		CreatedAt: time.Now().UTC(),
	}
	f.users[username] = user
	f.passwords[username] = params.Password
	return user, nil
}

func (f *fakeAccounts) Login(_ context.Context, params services.LoginParams) (*models.User, error) {
	user, ok := f.users[strings.TrimSpace(params.Username)]
	if !ok || f.passwords[user.Username] != params.Password {
		return nil, services.ErrInvalidCredentials
	}
	return user, nil
}

func (f *fakeAccounts) GetUserByID(_ context.Context, userID string) (*models.User, error) {
	for _, user := range f.users {
		if user.ID == userID {
			return user, nil
		}
	}
	return nil, services.ErrUserNotFound
}

type fakeSessions struct {
	sessions map[string]*models.Session
	nextID   int
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{sessions: make(map[string]*models.Session)}
}

func (f *fakeSessions) Create(_ context.Context, userID string) (*models.Session, error) {
	f.nextID++
	session := &models.Session{
		ID:        fmt.Sprintf("s-%d", f.nextID),
		UserID:    userID,
		ExpiresAt: time.Now().Add(time.Hour),
		CreatedAt: time.Now().UTC(),
	}
	f.sessions[session.ID] = session
	return session, nil
}

func (f *fakeSessions) GetByID(_ context.Context, sessionID string) (*models.Session, error) {
	session, ok := f.sessions[sessionID]
	if !ok {
		return nil, services.ErrSessionNotFound
	}
	if session.ExpiresAt.Before(time.Now()) {
		delete(f.sessions, sessionID)
		return nil, services.ErrSessionExpired
	}
	return session, nil
}

func (f *fakeSessions) Delete(_ context.Context, sessionID string) error {
	delete(f.sessions, sessionID)
	return nil
}

type fakeTasks struct {
	tasks  map[int64]*models.Task
	nextID int64
	clock  time.Time
}

func newFakeTasks() *fakeTasks {
	return &fakeTasks{
		tasks: make(map[int64]*models.Task),
		clock: time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC),
	}
}

func (f *fakeTasks) Create(_ context.Context, ownerID, title, content string) (*models.Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, services.ErrEmptyTitle
	}

	f.nextID++
	f.clock = f.clock.Add(time.Second)
	task := &models.Task{
		ID:        f.nextID,
		UserID:    ownerID,
		Title:     title,
		Content:   strings.TrimSpace(content),
		CreatedAt: f.clock,
	}
	f.tasks[task.ID] = task
	return task, nil
}

func (f *fakeTasks) List(_ context.Context, ownerID string) ([]*models.Task, error) {
	owned := make([]*models.Task, 0)
	for _, task := range f.tasks {
		if task.UserID == ownerID {
			owned = append(owned, task)
		}
	}
	sort.Slice(owned, func(i, j int) bool {
		if !owned[i].CreatedAt.Equal(owned[j].CreatedAt) {
			return owned[i].CreatedAt.After(owned[j].CreatedAt)
		}
		return owned[i].ID > owned[j].ID
	})
	return owned, nil
}

func (f *fakeTasks) find(ownerID string, taskID int64) (*models.Task, error) {
	task, ok := f.tasks[taskID]
	if !ok || task.UserID != ownerID {
		return nil, services.ErrTaskNotFound
	}
	return task, nil
}

func (f *fakeTasks) Update(_ context.Context, ownerID string, taskID int64, title, content string) (*models.Task, error) {
	task, err := f.find(ownerID, taskID)
	if err != nil {
		return nil, err
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, services.ErrEmptyTitle
	}
	task.Title = title
	task.Content = strings.TrimSpace(content)
	return task, nil
}

func (f *fakeTasks) Toggle(_ context.Context, ownerID string, taskID int64) (*models.Task, error) {
	task, err := f.find(ownerID, taskID)
	if err != nil {
		return nil, err
	}
	task.Done = !task.Done
	return task, nil
}

func (f *fakeTasks) Delete(_ context.Context, ownerID string, taskID int64) error {
	task, err := f.find(ownerID, taskID)
	if err != nil {
		return err
	}
	delete(f.tasks, task.ID)
	return nil
}

type testEnv struct {
	router   *gin.Engine
	accounts *fakeAccounts
	sessions *fakeSessions
	tasks    *fakeTasks
}

func newTestEnv(t *testing.T, opts ...func(*envOptions)) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	var o envOptions
	for _, opt := range opts {
		opt(&o)
	}

	env := &testEnv{
		accounts: newFakeAccounts(),
		sessions: newFakeSessions(),
		tasks:    newFakeTasks(),
	}

	codec := token.NewCodec("task-manager", "test-signing-key", time.Hour)
	handler := New(zerolog.Nop(), env.accounts, env.sessions, env.tasks, codec, o.secureCookie)

	router := gin.New()
	api := router.Group("/api")
	api.POST("/register", handler.HandleRegister)
	api.POST("/login", handler.HandleLogin)
	api.POST("/logout", handler.HandleAuthMiddleware, handler.HandleLogout)
	api.GET("/me", handler.HandleAuthMiddleware, handler.HandleMe)

	tasks := api.Group("/tasks", handler.HandleAuthMiddleware)
	tasks.GET("", handler.HandleListTasks)
	tasks.POST("", handler.HandleCreateTask)
	tasks.PUT("/:id", handler.HandleUpdateTask)
	tasks.PUT("/:id/toggle", handler.HandleToggleTask)
	tasks.DELETE("/:id", handler.HandleDeleteTask)

	env.router = router
	return env
}

type envOptions struct {
	secureCookie bool
}

func withSecureCookies() func(*envOptions) {
	return func(o *envOptions) { o.secureCookie = true }
}

type envelope struct {
	Success bool             `json:"success"`
	Message string           `json:"message"`
	User    map[string]any   `json:"user"`
	Task    map[string]any   `json:"task"`
	Tasks   []map[string]any `json:"tasks"`
}

func (e *testEnv) do(t *testing.T, method, path string, body any, cookies ...*http.Cookie) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec, env
}

// register + login, returning the session cookie.
func (e *testEnv) signUp(t *testing.T, username, email, password string) *http.Cookie {
	t.Helper()

	rec, _ := e.do(t, http.MethodPost, "/api/register", gin.H{
		"username": username,
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, _ = e.do(t, http.MethodPost, "/api/login", gin.H{
		"username": username,
		"password": password,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == token.Cookie {
			return cookie
		}
	}
	t.Fatal("login did not set a session cookie")
	return nil
}
