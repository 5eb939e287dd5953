package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/candyhouse/talent-profile/internal/config"
	"github.com/candyhouse/talent-profile/internal/db"
	"github.com/candyhouse/talent-profile/internal/server/ratelimit"
	"github.com/candyhouse/talent-profile/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// newTestServer builds a server over an in-memory SQLite database with rate
// limiting disabled.
func newTestServer(t *testing.T) *Server {
	t.Helper()
	return newTestServerWithLimits(t, &ratelimit.Config{Enabled: false})
}

func newTestServerWithLimits(t *testing.T, rl *ratelimit.Config) *Server {
	t.Helper()

	database, err := db.OpenSQLite(context.Background(), ":memory:")
	require.NoError(t, err)

	s := NewWithDeps(Config{Port: 0}, Deps{
		DB:        database,
		JWT:       &config.JWTConfig{Secret: testJWTSecret, Issuer: config.DefaultJWTIssuer, ExpirationHours: 24},
		Password:  &config.PasswordConfig{BcryptCost: bcrypt.MinCost},
		RateLimit: rl,
		Logger:    zap.NewNop(),
	})
	t.Cleanup(s.Close)
	return s
}

func doJSON(t *testing.T, h http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func registerAndLogin(t *testing.T, h http.Handler, email string) string {
	t.Helper()

	w := doJSON(t, h, http.MethodPost, "/talent/register", "", types.TalentRegister{
		Email: email, FirstName: "Ada", LastName: "Lovelace", Password: "secret123",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doJSON(t, h, http.MethodPost, "/talent/login", "", types.LoginRequest{Username: email, Password: "secret123"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp types.LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func TestHandleHealth(t *testing.T) {
	s := newTestServer(t)

	w := doJSON(t, s.Handler(), http.MethodGet, "/health", "", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestCORS_Preflight(t *testing.T) {
	s := newTestServer(t)

	w := doJSON(t, s.Handler(), http.MethodOptions, "/talent/profile", "", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "PUT")
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), "Authorization")
}

func TestProfile_RequiresToken(t *testing.T) {
	s := newTestServer(t)
	h := s.Handler()

	w := doJSON(t, h, http.MethodGet, "/talent/profile", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, h, http.MethodPut, "/talent/profile", "not-a-token", types.EmptyResume())
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProfile_SeededOnRegister(t *testing.T) {
	s := newTestServer(t)
	h := s.Handler()
	token := registerAndLogin(t, h, "ada@example.com")

	w := doJSON(t, h, http.MethodGet, "/talent/profile", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var got types.Resume
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.NotEmpty(t, got.AccountID)
	assert.Equal(t, "Ada", got.FirstName)
	assert.Equal(t, "Lovelace", got.LastName)
	assert.True(t, got.Negotiable)
	assert.Empty(t, got.Skills)
}

func TestProfile_PutThenGet(t *testing.T) {
	s := newTestServer(t)
	h := s.Handler()
	token := registerAndLogin(t, h, "ada@example.com")

	w := doJSON(t, h, http.MethodGet, "/talent/profile", token, nil)
	var seeded types.Resume
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &seeded))

	update := seeded.Clone()
	update.AccountID = "someone-else"
	update.Skills = []string{"Go", "SQL"}
	update.TotalYearOfExperience = 7.5
	update.Experiences = []types.Experience{{
		Company: "Analytical Engines", Title: "Engineer", StartDate: 1700000000000,
		IsCurrentlyWorking: true, TechStack: []string{"Go"},
	}}

	w = doJSON(t, h, http.MethodPut, "/talent/profile", token, update)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var saved types.Resume
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &saved))
	assert.Equal(t, seeded.AccountID, saved.AccountID, "accountId is forced to the caller")

	w = doJSON(t, h, http.MethodGet, "/talent/profile", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var got types.Resume
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))

	update.AccountID = seeded.AccountID
	assert.Equal(t, update, got)
}

func TestProfile_PutInvalidBody(t *testing.T) {
	s := newTestServer(t)
	h := s.Handler()
	token := registerAndLogin(t, h, "ada@example.com")

	req := httptest.NewRequest(http.MethodPut, "/talent/profile", bytes.NewBufferString("{not json"))
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid request body")
}

func TestProfile_AccountsAreIsolated(t *testing.T) {
	s := newTestServer(t)
	h := s.Handler()
	adaToken := registerAndLogin(t, h, "ada@example.com")
	graceToken := registerAndLogin(t, h, "grace@example.com")

	w := doJSON(t, h, http.MethodGet, "/talent/profile", adaToken, nil)
	var ada types.Resume
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ada))
	ada.Skills = []string{"Analytical Engine"}
	w = doJSON(t, h, http.MethodPut, "/talent/profile", adaToken, ada)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, h, http.MethodGet, "/talent/profile", graceToken, nil)
	var grace types.Resume
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &grace))
	assert.NotEqual(t, ada.AccountID, grace.AccountID)
	assert.Empty(t, grace.Skills)
}

func TestRateLimit_Returns429(t *testing.T) {
	s := newTestServerWithLimits(t, &ratelimit.Config{
		Enabled:       true,
		DefaultLimit:  2,
		DefaultWindow: time.Hour,
	})
	h := s.Handler()

	for i := 0; i < 2; i++ {
		w := doJSON(t, h, http.MethodGet, "/talent/profile", "", nil)
		require.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))
	}

	w := doJSON(t, h, http.MethodGet, "/talent/profile", "", nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
	assert.Contains(t, w.Body.String(), "rate_limit_exceeded")

	w = doJSON(t, h, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code, "health is never limited")
}

func TestServe_ShutsDownOnCancel(t *testing.T) {
	s := newTestServer(t)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	url := "http://" + ln.Addr().String() + "/health"
	require.Eventually(t, func() bool {
		resp, err := http.Get(url)
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestNew_RequiresDatabase(t *testing.T) {
	t.Setenv("JWT_SECRET", testJWTSecret)
	t.Setenv("BCRYPT_COST", "10")

	_, err := New(context.Background(), Config{}, zap.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL or SQLITE_PATH")
}

func TestNew_RequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := New(context.Background(), Config{SQLitePath: ":memory:"}, zap.NewNop())
	require.Error(t, err)
}

func TestNew_SQLite(t *testing.T) {
	t.Setenv("JWT_SECRET", testJWTSecret)
	t.Setenv("BCRYPT_COST", "10")
	t.Setenv("RATE_LIMIT_ENABLED", "false")

	s, err := New(context.Background(), Config{SQLitePath: ":memory:"}, zap.NewNop())
	require.NoError(t, err)
	defer s.Close()

	w := doJSON(t, s.Handler(), http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
