package http

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/cmlabs-hris/training-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/training-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/training-backend-go/internal/pkg/sse"
	"github.com/cmlabs-hris/training-backend-go/internal/repository/memory"
	authService "github.com/cmlabs-hris/training-backend-go/internal/service/auth"
	userService "github.com/cmlabs-hris/training-backend-go/internal/service/user"
	"github.com/cmlabs-hris/training-backend-go/internal/store"
)

const testPassword = "password123"

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details"`
	} `json:"error"`
	Meta *struct {
		TotalItems  int    `json:"total_items"`
		QueryString string `json:"query_string"`
	} `json:"meta"`
}

type apiFixture struct {
	db       *memory.DB
	jwt      *jwt.JWTService
	registry *store.Registry
	hub      *sse.Hub
	server   *httptest.Server
}

func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()
	db := memory.New()
	jwtService, err := jwt.NewJWTService("handler-test-secret", "1h", "24h", false)
	require.NoError(t, err)

	hub := sse.NewHub()
	backend := store.Backend{
		Employees:  db.Employees(),
		Programs:   db.Programs(),
		Sessions:   db.Sessions(),
		Results:    db.Results(),
		NewHire:    db.NewHire(),
		Dashboard:  db.Dashboard(),
		ChangeLogs: db.ChangeLogs(),
		Tx:         db,
	}
	registry := store.NewRegistry(backend, nil, store.WithNotifier(ChangeNotifier(hub)))

	resolver := user.NewResolver([]string{"example.com"}, []string{"boss@example.com"})
	auth := authService.NewAuthService(db, db.Users(), db.RefreshTokens(), jwtService, nil, resolver, nil)
	auth.Subscribe(IdentityListener(registry, hub))

	router := NewRouter(RouterConfig{CORSOrigins: []string{"http://localhost:3000"}}, jwtService, Handlers{
		Auth:      NewAuthHandler(jwtService, auth, nil, "http://localhost:3000", false),
		Users:     NewUserHandler(userService.NewUserService(db.Users(), resolver)),
		Employees: NewEmployeeHandler(registry),
		Programs:  NewProgramHandler(registry),
		Sessions:  NewSessionHandler(registry),
		Results:   NewResultHandler(registry),
		NewHire:   NewNewHireHandler(registry),
		Dashboard: NewDashboardHandler(registry),
		ChangeLog: NewChangeLogHandler(db.ChangeLogs()),
		Events:    NewEventHandler(hub, jwtService),
	})
	server := httptest.NewServer(router)
	t.Cleanup(func() {
		hub.Close()
		server.Close()
	})
	return &apiFixture{db: db, jwt: jwtService, registry: registry, hub: hub, server: server}
}

func (f *apiFixture) token(t *testing.T, email string, role user.Role) string {
	t.Helper()
	token, _, err := f.jwt.GenerateAccessToken("u-"+email, email, role)
	require.NoError(t, err)
	return token
}

func (f *apiFixture) do(t *testing.T, method, path, token string, body any) (*http.Response, envelope) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, f.server.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := f.server.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 && strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(raw, &env), string(raw))
	}
	return resp, env
}

func newEmployee(id, department string) map[string]string {
	return map[string]string{
		"employee_id": id,
		"name":        "Employee " + id,
		"department":  department,
		"position":    "Operator",
		"hire_date":   "2023-04-01",
	}
}

func TestRequestsWithoutTokenAreRejected(t *testing.T) {
	f := newAPIFixture(t)

	resp, _ := f.do(t, http.MethodGet, "/api/v1/employees", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	refresh, _, err := f.jwt.GenerateRefreshToken("u-1")
	require.NoError(t, err)
	resp, _ = f.do(t, http.MethodGet, "/api/v1/employees", refresh, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestPermissionsGateEdits(t *testing.T) {
	f := newAPIFixture(t)
	viewer := f.token(t, "viewer@example.com", user.RoleViewer)
	trainer := f.token(t, "trainer@example.com", user.RoleTrainer)

	resp, _ := f.do(t, http.MethodGet, "/api/v1/employees", viewer, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, env := f.do(t, http.MethodPost, "/api/v1/employees", viewer, newEmployee("EMP001", "Assembly"))
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	require.NotNil(t, env.Error)
	assert.Equal(t, "FORBIDDEN", env.Error.Code)

	resp, _ = f.do(t, http.MethodPost, "/api/v1/employees", trainer, newEmployee("EMP001", "Assembly"))
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = f.do(t, http.MethodGet, "/api/v1/users", trainer, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestEmployeeListCarriesQueryString(t *testing.T) {
	f := newAPIFixture(t)
	admin := f.token(t, "boss@example.com", user.RoleAdmin)

	for _, e := range []map[string]string{newEmployee("EMP001", "Assembly"), newEmployee("EMP002", "Paint")} {
		resp, _ := f.do(t, http.MethodPost, "/api/v1/employees", admin, e)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	resp, env := f.do(t, http.MethodGet, "/api/v1/employees?department=Assembly", admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotNil(t, env.Meta)
	assert.Equal(t, 1, env.Meta.TotalItems)
	assert.Equal(t, "?department=Assembly", env.Meta.QueryString)

	// The filter sticks to the caller's store until it is changed.
	_, env = f.do(t, http.MethodGet, "/api/v1/employees", admin, nil)
	assert.Equal(t, 1, env.Meta.TotalItems)
	assert.Equal(t, "?department=Assembly", env.Meta.QueryString)

	_, env = f.do(t, http.MethodGet, "/api/v1/employees?department=", admin, nil)
	assert.Equal(t, 2, env.Meta.TotalItems)
	assert.Equal(t, "", env.Meta.QueryString)

	// Another identity starts from the defaults.
	other := f.token(t, "kim@example.com", user.RoleViewer)
	_, env = f.do(t, http.MethodGet, "/api/v1/employees", other, nil)
	assert.Equal(t, 2, env.Meta.TotalItems)
}

func TestEmployeeValidationAndConflicts(t *testing.T) {
	f := newAPIFixture(t)
	admin := f.token(t, "boss@example.com", user.RoleAdmin)

	resp, env := f.do(t, http.MethodPost, "/api/v1/employees", admin, newEmployee("bad id", "Assembly"))
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	require.NotNil(t, env.Error)
	assert.Contains(t, env.Error.Details, "employee_id")

	resp, _ = f.do(t, http.MethodPost, "/api/v1/employees", admin, newEmployee("EMP001", "Assembly"))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp, _ = f.do(t, http.MethodPost, "/api/v1/employees", admin, newEmployee("EMP001", "Assembly"))
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp, _ = f.do(t, http.MethodGet, "/api/v1/employees/EMP999", admin, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = f.do(t, http.MethodGet, "/api/v1/employees/not-an-id", admin, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestDeactivateEmployeeKeepsRowAndLogs(t *testing.T) {
	f := newAPIFixture(t)
	admin := f.token(t, "boss@example.com", user.RoleAdmin)

	resp, _ := f.do(t, http.MethodPost, "/api/v1/employees", admin, newEmployee("EMP001", "Assembly"))
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, _ = f.do(t, http.MethodDelete, "/api/v1/employees/EMP001", admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, env := f.do(t, http.MethodGet, "/api/v1/employees/EMP001", admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var got struct {
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, "INACTIVE", got.Status)

	resp, env = f.do(t, http.MethodGet, "/api/v1/changelog?entity_type=employee&entity_id=EMP001", admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var entries []struct {
		Action    string `json:"action"`
		ChangedBy string `json:"changed_by"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &entries))
	require.Len(t, entries, 2)
	actions := []string{entries[0].Action, entries[1].Action}
	assert.ElementsMatch(t, []string{"CREATE", "DELETE"}, actions)
	assert.Equal(t, "boss@example.com", entries[0].ChangedBy)
	assert.Equal(t, "?entity_id=EMP001&entity_type=employee", env.Meta.QueryString)
}

func TestResultsAreNeverDeleted(t *testing.T) {
	f := newAPIFixture(t)
	admin := f.token(t, "boss@example.com", user.RoleAdmin)

	resp, _ := f.do(t, http.MethodDelete, "/api/v1/results/RES-ABC123", admin, nil)
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)

	resp, env := f.do(t, http.MethodPut, "/api/v1/results/RES-ABC123", admin, map[string]any{"remarks": "typo"})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	require.NotNil(t, env.Error)
	assert.Contains(t, env.Error.Details, "reason")

	resp, _ = f.do(t, http.MethodPut, "/api/v1/results/RES-ABC123", admin, map[string]any{"remarks": "typo", "reason": "wrong remark"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDashboardQueryValidation(t *testing.T) {
	f := newAPIFixture(t)
	viewer := f.token(t, "viewer@example.com", user.RoleViewer)

	resp, _ := f.do(t, http.MethodGet, "/api/v1/dashboard/monthly?year=abc", viewer, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	resp, env := f.do(t, http.MethodGet, "/api/v1/dashboard/monthly?year=2024", viewer, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var months []json.RawMessage
	require.NoError(t, json.Unmarshal(env.Data, &months))
	assert.Len(t, months, 12)

	resp, _ = f.do(t, http.MethodGet, "/api/v1/dashboard/", viewer, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func addUser(t *testing.T, db *memory.DB, email string, role user.Role) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)
	h := string(hash)
	_, err = db.Users().Create(context.Background(), user.User{Email: email, Name: "Test", PasswordHash: &h, Role: role})
	require.NoError(t, err)
}

func TestLoginLogoutFlow(t *testing.T) {
	f := newAPIFixture(t)
	addUser(t, f.db, "kim@example.com", user.RoleTrainer)

	resp, env := f.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{"email": "kim@example.com", "password": testPassword})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var tokens struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &tokens))
	require.NotEmpty(t, tokens.AccessToken)

	resp, env = f.do(t, http.MethodGet, "/api/v1/auth/me", tokens.AccessToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var identity struct {
		Role        string          `json:"role"`
		Permissions map[string]bool `json:"permissions"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &identity))
	assert.Equal(t, "TRAINER", identity.Role)
	assert.True(t, identity.Permissions["can_edit_sessions"])
	assert.False(t, identity.Permissions["can_edit_programs"])

	resp, _ = f.do(t, http.MethodGet, "/api/v1/employees", tokens.AccessToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, f.registry.Len())

	req, err := http.NewRequest(http.MethodPost, f.server.URL+"/api/v1/auth/logout", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+tokens.AccessToken)
	req.AddCookie(&http.Cookie{Name: refreshTokenCookieName, Value: tokens.RefreshToken})
	logout, err := f.server.Client().Do(req)
	require.NoError(t, err)
	logout.Body.Close()
	require.Equal(t, http.StatusOK, logout.StatusCode)

	assert.Equal(t, 0, f.registry.Len())
	resp, _ = f.do(t, http.MethodGet, "/api/v1/auth/me", tokens.AccessToken, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = f.do(t, http.MethodPost, "/api/v1/auth/refresh", "", map[string]string{"refresh_token": tokens.RefreshToken})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestGoogleLoginDisabled(t *testing.T) {
	f := newAPIFixture(t)
	resp, _ := f.do(t, http.MethodGet, "/api/v1/auth/login/oauth/google", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestEventStreamReceivesChanges(t *testing.T) {
	f := newAPIFixture(t)
	admin := f.token(t, "boss@example.com", user.RoleAdmin)

	resp, env := f.do(t, http.MethodGet, "/api/v1/auth/sse-token", admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var sseToken sseTokenResponse
	require.NoError(t, json.Unmarshal(env.Data, &sseToken))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.server.URL+"/api/v1/events?token="+sseToken.Token, nil)
	require.NoError(t, err)
	stream, err := f.server.Client().Do(req)
	require.NoError(t, err)
	defer stream.Body.Close()
	require.Equal(t, http.StatusOK, stream.StatusCode)
	assert.Equal(t, "text/event-stream", stream.Header.Get("Content-Type"))

	lines := bufio.NewScanner(stream.Body)
	next := func() string {
		for lines.Scan() {
			if line := lines.Text(); strings.HasPrefix(line, "event: ") {
				return strings.TrimPrefix(line, "event: ")
			}
		}
		return ""
	}
	require.Equal(t, EventConnected, next())

	resp, _ = f.do(t, http.MethodPost, "/api/v1/employees", admin, newEmployee("EMP001", "Assembly"))
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	assert.Equal(t, EventChange, next())
	require.True(t, lines.Scan())
	assert.Contains(t, lines.Text(), `"entity_id":"EMP001"`)

	resp, _ = f.do(t, http.MethodGet, "/api/v1/events?token=garbage", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
