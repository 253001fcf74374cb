package web

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockguard/internal/alerts"
	"stockguard/internal/analysis"
	"stockguard/internal/common"
	"stockguard/internal/config"
	"stockguard/internal/logging"
	"stockguard/internal/market"
	"stockguard/internal/session"
	"stockguard/internal/wallet"
)

type memRepo struct {
	mu   sync.Mutex
	data map[string]string
}

func newMemRepo() *memRepo {
	return &memRepo{data: make(map[string]string)}
}

func (r *memRepo) Get(ctx context.Context, key string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.data[key]
	if !ok {
		return "", common.ErrNotFound
	}
	return v, nil
}

func (r *memRepo) Set(ctx context.Context, key, value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[key] = value
	return nil
}

func (r *memRepo) Delete(ctx context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.data, key)
	return nil
}

type testEnv struct {
	server   *Server
	sessions *session.Store
	triage   *alerts.Triage
	handler  http.Handler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	cfg := &config.Config{
		EndpointAddr:            ":0",
		SecretKey:               "testsecret",
		SessionValidityDuration: time.Hour,
		TickInterval:            time.Second,
	}

	sessions := session.NewStore(newMemRepo(), cfg.SecretKey, cfg.SessionValidityDuration, log)
	registry := alerts.Seeded(time.Now())
	triage := alerts.NewTriage(registry)
	gen := market.NewGenerator(1)
	hub := market.NewHub(gen, cfg.TickInterval, log)
	analysisClient := analysis.NewClient(analysis.ClientOptions{BaseURL: "http://127.0.0.1:1"}, log)
	walletSub := wallet.NewSimulated("0.01 ETH")

	srv := NewServer(cfg, log, sessions, registry, triage, gen, hub, analysisClient, walletSub)
	router, err := srv.buildRouter()
	require.NoError(t, err)

	return &testEnv{server: srv, sessions: sessions, triage: triage, handler: router}
}

func (e *testEnv) do(method, path string, body string, hdr map[string]string) *httptest.ResponseRecorder {
	var rdr io.Reader
	if body != "" {
		rdr = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rdr)
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	e.handler.ServeHTTP(w, req)
	return w
}

func (e *testEnv) login(t *testing.T) {
	t.Helper()
	e.sessions.Initialize(context.Background())
	_, _, err := e.sessions.Login(context.Background(), "alice@example.com", "pw")
	require.NoError(t, err)
}

func TestGuardRedirectsAnonymousPages(t *testing.T) {
	env := newTestEnv(t)
	env.sessions.Initialize(context.Background())

	for _, path := range []string{"/dashboard", "/profile", "/settings", "/live-market", "/alerts"} {
		w := env.do(http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusFound, w.Code, path)
		assert.Equal(t, "/login", w.Header().Get("Location"), path)
	}
}

func TestGuardRendersLoadingWhileInitializing(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodGet, "/dashboard", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Restoring your session")
}

func TestGuardAPIStatuses(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodGet, "/api/alerts", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	env.sessions.Initialize(context.Background())
	w = env.do(http.MethodGet, "/api/alerts", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	env.login(t)
	w = env.do(http.MethodGet, "/api/alerts", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGuardAllowsAuthenticatedPages(t *testing.T) {
	env := newTestEnv(t)
	env.login(t)

	w := env.do(http.MethodGet, "/dashboard", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "alice")
}

func TestPublicPagesNeedNoSession(t *testing.T) {
	env := newTestEnv(t)
	env.sessions.Initialize(context.Background())

	for _, path := range []string{"/", "/features", "/pricing", "/contact", "/login", "/signup"} {
		w := env.do(http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusOK, w.Code, path)
	}
}

func TestLoginJSON(t *testing.T) {
	env := newTestEnv(t)
	env.sessions.Initialize(context.Background())

	w := env.do(http.MethodPost, "/login",
		`{"email":"bob@example.com","password":"hunter2"}`,
		map[string]string{"Content-Type": "application/json"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"bob@example.com"`)
	assert.Contains(t, w.Body.String(), `"bob"`)
	assert.Equal(t, session.StateAuthenticated, env.sessions.State())

	cookie := w.Header().Get("Set-Cookie")
	assert.Contains(t, cookie, common.SessionCookieName)
}

func TestLoginValidation(t *testing.T) {
	env := newTestEnv(t)
	env.sessions.Initialize(context.Background())

	w := env.do(http.MethodPost, "/login",
		`{"email":"","password":"pw"}`,
		map[string]string{"Content-Type": "application/json"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, session.StateAnonymous, env.sessions.State())
}

func TestLoginFormRedirects(t *testing.T) {
	env := newTestEnv(t)
	env.sessions.Initialize(context.Background())

	w := env.do(http.MethodPost, "/login",
		"email=carol%40example.com&password=pw",
		map[string]string{"Content-Type": "application/x-www-form-urlencoded"})

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/dashboard", w.Header().Get("Location"))
}

func TestSignupJSON(t *testing.T) {
	env := newTestEnv(t)
	env.sessions.Initialize(context.Background())

	w := env.do(http.MethodPost, "/signup",
		`{"name":"Dan","email":"dan@example.com","password":"pw"}`,
		map[string]string{"Content-Type": "application/json"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"Dan"`)
}

func TestLogout(t *testing.T) {
	env := newTestEnv(t)
	env.login(t)

	w := env.do(http.MethodPost, "/logout", "", map[string]string{"Accept": "application/json"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, session.StateAnonymous, env.sessions.State())

	w = env.do(http.MethodGet, "/dashboard", "", nil)
	assert.Equal(t, http.StatusFound, w.Code)
}

func TestSessionEndpointIsPublic(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodGet, "/api/session", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "initializing")

	env.login(t)
	w = env.do(http.MethodGet, "/api/session", "", nil)
	assert.Contains(t, w.Body.String(), "authenticated")
	assert.Contains(t, w.Body.String(), "alice@example.com")
}

func TestNotFoundPage(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodGet, "/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "404")
}
