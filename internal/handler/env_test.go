package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/sportsboard/sportsboard-go/internal/crypto"
	"github.com/sportsboard/sportsboard-go/internal/handler"
	"github.com/sportsboard/sportsboard-go/internal/middleware"
	"github.com/sportsboard/sportsboard-go/internal/model"
	"github.com/sportsboard/sportsboard-go/internal/repository"
	"github.com/sportsboard/sportsboard-go/internal/repository/memory"
	"github.com/sportsboard/sportsboard-go/internal/service"
)

const testSecret = "test-secret-for-handler-tests-0123456789"

// callCounter records every call that reaches the store.
type callCounter struct {
	mu     sync.Mutex
	reads  int
	writes int
}

func (c *callCounter) read() {
	c.mu.Lock()
	c.reads++
	c.mu.Unlock()
}

func (c *callCounter) write() {
	c.mu.Lock()
	c.writes++
	c.mu.Unlock()
}

func (c *callCounter) snapshot() (reads, writes int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.reads, c.writes
}

func (c *callCounter) reset() {
	c.mu.Lock()
	c.reads, c.writes = 0, 0
	c.mu.Unlock()
}

type countingUsers struct {
	repository.UserStore
	c *callCounter
}

func (u countingUsers) Create(ctx context.Context, user *model.User) error {
	u.c.write()
	return u.UserStore.Create(ctx, user)
}

func (u countingUsers) GetByID(ctx context.Context, id string) (*model.User, error) {
	u.c.read()
	return u.UserStore.GetByID(ctx, id)
}

func (u countingUsers) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	u.c.read()
	return u.UserStore.GetByEmail(ctx, email)
}

type countingDisciplines struct {
	repository.DisciplineStore
	c *callCounter
}

func (d countingDisciplines) Create(ctx context.Context, disc *model.Discipline) error {
	d.c.write()
	return d.DisciplineStore.Create(ctx, disc)
}

func (d countingDisciplines) GetByID(ctx context.Context, id string) (*model.Discipline, error) {
	d.c.read()
	return d.DisciplineStore.GetByID(ctx, id)
}

func (d countingDisciplines) List(ctx context.Context) ([]model.Discipline, error) {
	d.c.read()
	return d.DisciplineStore.List(ctx)
}

func (d countingDisciplines) Update(ctx context.Context, disc *model.Discipline) error {
	d.c.write()
	return d.DisciplineStore.Update(ctx, disc)
}

func (d countingDisciplines) Delete(ctx context.Context, id string) error {
	d.c.write()
	return d.DisciplineStore.Delete(ctx, id)
}

type countingEvents struct {
	repository.EventStore
	c *callCounter
}

func (e countingEvents) Create(ctx context.Context, ev *model.Event) error {
	e.c.write()
	return e.EventStore.Create(ctx, ev)
}

func (e countingEvents) GetByID(ctx context.Context, id string) (*model.Event, error) {
	e.c.read()
	return e.EventStore.GetByID(ctx, id)
}

func (e countingEvents) ListByDiscipline(ctx context.Context, disciplineID string) ([]model.Event, error) {
	e.c.read()
	return e.EventStore.ListByDiscipline(ctx, disciplineID)
}

func (e countingEvents) Update(ctx context.Context, ev *model.Event) error {
	e.c.write()
	return e.EventStore.Update(ctx, ev)
}

func (e countingEvents) Delete(ctx context.Context, id string) error {
	e.c.write()
	return e.EventStore.Delete(ctx, id)
}

type testEnv struct {
	t      *testing.T
	router http.Handler
	store  *memory.Store
	calls  *callCounter
	tokens *crypto.TokenIssuer
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	store := memory.New()
	calls := &callCounter{}
	tokens := crypto.NewTokenIssuer(testSecret, time.Hour)

	users := countingUsers{store.Users(), calls}
	disciplines := countingDisciplines{store.Disciplines(), calls}
	events := countingEvents{store.Events(), calls}

	router := handler.NewRouter(handler.Deps{
		Store:       store,
		Auth:        service.NewAuthService(users, tokens, []string{"admin@example.com"}),
		Disciplines: service.NewDisciplineService(disciplines),
		Events:      service.NewEventService(events, disciplines),
		AuthLimiter: middleware.NewRateLimiter(ctx, 100, 100),
		FrontendURL: "http://localhost:3000",
	})

	return &testEnv{t: t, router: router, store: store, calls: calls, tokens: tokens}
}

// seedUser stores a user directly and returns a session cookie for it.
func (e *testEnv) seedUser(id string, role model.Role) *http.Cookie {
	e.t.Helper()

	now := time.Now().UTC()
	err := e.store.Users().Create(context.Background(), &model.User{
		ID:        id,
		Email:     id + "@example.com",
		Name:      id,
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	})
	require.NoError(e.t, err)

	token, err := e.tokens.Generate(id)
	require.NoError(e.t, err)
	return &http.Cookie{Name: middleware.CookieName, Value: token}
}

func (e *testEnv) do(method, path string, body any, cookie *http.Cookie) *httptest.ResponseRecorder {
	e.t.Helper()

	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(e.t, err)
		r = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

// seedDiscipline creates a discipline through the API as admin.
func (e *testEnv) seedDiscipline(admin *http.Cookie, name string) model.Discipline {
	e.t.Helper()
	rec := e.do(http.MethodPost, "/app/sports", model.DisciplineRequest{Name: name}, admin)
	require.Equal(e.t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[model.Discipline](e.t, rec)
}

// seedEvent creates an event through the API as the given user.
func (e *testEnv) seedEvent(owner *http.Cookie, disciplineID, name string, starts time.Time) model.Event {
	e.t.Helper()
	rec := e.do(http.MethodPost, "/app/sports/"+disciplineID+"/events",
		model.CreateEventRequest{Name: name, StartsAt: starts}, owner)
	require.Equal(e.t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[model.Event](e.t, rec)
}
