package integration_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"mwork_admission/internal/app"
	"mwork_admission/internal/auth"
	"mwork_admission/internal/config"
	"mwork_admission/internal/models"
	"mwork_admission/test/helpers"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testJWTSecret = "my_super_secret_key_for_tests_12345"

// TestServer - собранное приложение поверх изолированной SQLite
type TestServer struct {
	DB  *gorm.DB
	App *app.App

	cancel  context.CancelFunc
	stopped bool
}

// NewTestServer собирает приложение так же, как app.Run, но без сети и Postgres.
// Остановка регистрируется в t.Cleanup.
func NewTestServer(t *testing.T) *TestServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{}
	cfg.Server.Env = "test"
	cfg.JWT.Secret = testJWTSecret
	cfg.Admission.LockTimeout = 5 * time.Second
	cfg.Admission.DispatchBuffer = 64
	cfg.Admission.DispatchWorkers = 1
	cfg.Admission.WorkerInterval = time.Hour

	db := helpers.OpenTestDB(t)
	application := app.Build(cfg, db)

	ctx, cancel := context.WithCancel(context.Background())
	application.Start(ctx)

	ts := &TestServer{DB: db, App: application, cancel: cancel}
	t.Cleanup(ts.Close)
	return ts
}

// Close останавливает воркеры и досылает события. Повторный вызов ничего не делает.
func (ts *TestServer) Close() {
	if ts.stopped {
		return
	}
	ts.stopped = true
	ts.cancel()
	ts.App.Stop()
}

// Token выпускает access токен для пользователя
func (ts *TestServer) Token(t *testing.T, user *models.User) string {
	t.Helper()

	claims := auth.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		Role: user.Role,
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testJWTSecret))
	require.NoError(t, err)
	return token
}

// SendRequest прогоняет запрос через роутер и возвращает ответ и тело строкой
func (ts *TestServer) SendRequest(t *testing.T, method, path, token string, body interface{}) (*http.Response, string) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	ts.App.Router.ServeHTTP(rec, req)

	res := rec.Result()
	return res, rec.Body.String()
}

// DecodeJSON разбирает тело ответа в v
func DecodeJSON(t *testing.T, body string, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal([]byte(body), v), "body: "+body)
}
