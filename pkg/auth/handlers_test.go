package auth

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tanabooks/tana/pkg/binder"
	"github.com/tanabooks/tana/pkg/config"
	"github.com/tanabooks/tana/pkg/database"
	"github.com/tanabooks/tana/pkg/errcodes"
	"github.com/tanabooks/tana/pkg/migrations"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

func setupTestDB(t *testing.T) *bun.DB {
	t.Helper()

	sqldb, err := sql.Open(sqliteshim.ShimName, ":memory:")
	require.NoError(t, err)
	sqldb.SetMaxOpenConns(1)

	db := bun.NewDB(sqldb, sqlitedialect.New())

	require.NoError(t, database.Configure(db, time.Second))

	_, err = migrations.BringUpToDate(context.Background(), db)
	require.NoError(t, err)

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

func setupTestServer(t *testing.T, db *bun.DB) (*echo.Echo, *Service) {
	t.Helper()

	e := echo.New()
	b, err := binder.New()
	require.NoError(t, err)
	e.Binder = b
	e.HTTPErrorHandler = errcodes.NewHandler().Handle

	cfg := config.NewForTest()
	authService := RegisterRoutes(e, db, cfg.JWTSecret)

	return e, authService
}

func doRequest(e *echo.Echo, method, path, body, token string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}

	rr := httptest.NewRecorder()
	e.ServeHTTP(rr, req)
	return rr
}

func TestSetupCreatesFirstUser(t *testing.T) {
	db := setupTestDB(t)
	e, _ := setupTestServer(t, db)

	rr := doRequest(e, http.MethodPost, "/auth/setup", `{"username":"admin","password":"password123"}`, "")
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var resp TokenResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)
}

func TestSetupClosedAfterFirstUser(t *testing.T) {
	db := setupTestDB(t)
	e, _ := setupTestServer(t, db)

	rr := doRequest(e, http.MethodPost, "/auth/setup", `{"username":"admin","password":"password123"}`, "")
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = doRequest(e, http.MethodPost, "/auth/setup", `{"username":"intruder","password":"password123"}`, "")
	assert.Equal(t, http.StatusForbidden, rr.Code)
}

func TestSetupValidatesPasswordLength(t *testing.T) {
	db := setupTestDB(t)
	e, _ := setupTestServer(t, db)

	rr := doRequest(e, http.MethodPost, "/auth/setup", `{"username":"admin","password":"short"}`, "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestLogin(t *testing.T) {
	db := setupTestDB(t)
	e, _ := setupTestServer(t, db)

	rr := doRequest(e, http.MethodPost, "/auth/setup", `{"username":"admin","password":"password123"}`, "")
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = doRequest(e, http.MethodPost, "/auth/login", `{"username":"admin","password":"password123"}`, "")
	require.Equal(t, http.StatusOK, rr.Code)

	var resp TokenResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)
}

func TestLoginCaseInsensitiveUsername(t *testing.T) {
	db := setupTestDB(t)
	e, _ := setupTestServer(t, db)

	rr := doRequest(e, http.MethodPost, "/auth/setup", `{"username":"Admin","password":"password123"}`, "")
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = doRequest(e, http.MethodPost, "/auth/login", `{"username":"admin","password":"password123"}`, "")
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestLoginWrongPassword(t *testing.T) {
	db := setupTestDB(t)
	e, _ := setupTestServer(t, db)

	rr := doRequest(e, http.MethodPost, "/auth/setup", `{"username":"admin","password":"password123"}`, "")
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = doRequest(e, http.MethodPost, "/auth/login", `{"username":"admin","password":"wrong-password"}`, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestLoginUnknownUser(t *testing.T) {
	db := setupTestDB(t)
	e, _ := setupTestServer(t, db)

	rr := doRequest(e, http.MethodPost, "/auth/login", `{"username":"ghost","password":"password123"}`, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestMe(t *testing.T) {
	db := setupTestDB(t)
	e, _ := setupTestServer(t, db)

	rr := doRequest(e, http.MethodPost, "/auth/setup", `{"username":"admin","password":"password123"}`, "")
	require.Equal(t, http.StatusCreated, rr.Code)

	var tokenResp TokenResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &tokenResp))

	rr = doRequest(e, http.MethodGet, "/auth/me", "", tokenResp.Token)
	require.Equal(t, http.StatusOK, rr.Code)

	var me MeResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &me))
	assert.Equal(t, "admin", me.Username)
}

func TestMeWithoutToken(t *testing.T) {
	db := setupTestDB(t)
	e, _ := setupTestServer(t, db)

	rr := doRequest(e, http.MethodGet, "/auth/me", "", "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestMeWithGarbageToken(t *testing.T) {
	db := setupTestDB(t)
	e, _ := setupTestServer(t, db)

	rr := doRequest(e, http.MethodGet, "/auth/me", "", "not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}
