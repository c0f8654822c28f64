package integration_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"docflow_backend/internal/app"
	"docflow_backend/internal/config"
	"docflow_backend/internal/logger"
	"docflow_backend/test/helpers"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// TestServer - роутер приложения поверх временной sqlite-базы
type TestServer struct {
	Server *httptest.Server
	DB     *gorm.DB
	Config *config.Config
}

func newTestConfig(t *testing.T) *config.Config {
	cfg := &config.Config{}
	cfg.Server.Env = "test"
	cfg.Server.AllowOrigins = []string{"http://localhost:3000"}
	cfg.Database.Driver = "sqlite"
	cfg.JWT.Secret = "integration-secret-integration-secret"
	cfg.JWT.TTL = 60
	cfg.JWT.CookieName = "token"
	cfg.RateLimit.SignIn = "100-M"
	cfg.Storage.Type = "local"
	cfg.Storage.BasePath = filepath.Join(t.TempDir(), "uploads")
	cfg.Upload.MaxSize = 1 << 20
	cfg.Logs.Dir = filepath.Join(t.TempDir(), "logs")
	cfg.Logs.MaxSizeMB = 1
	cfg.Logs.MaxBackups = 1
	cfg.Logs.TailLines = 50
	return cfg
}

// NewTestServer поднимает httptest-сервер с полным набором маршрутов
func NewTestServer(t *testing.T) *TestServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := newTestConfig(t)
	db := helpers.NewTestDB(t)

	require.NoError(t, logger.InitAudit(logger.AuditConfig{Dir: cfg.Logs.Dir, MaxSizeMB: 1, MaxBackups: 1}))
	t.Cleanup(logger.CloseAudit)

	ctx, cancel := context.WithCancel(context.Background())
	router, cleanup, err := app.SetupRouter(ctx, cfg, db)
	require.NoError(t, err)

	server := httptest.NewServer(router)
	t.Cleanup(func() {
		server.Close()
		cancel()
		cleanup()
	})

	return &TestServer{Server: server, DB: db, Config: cfg}
}

// SendRequest отправляет JSON-запрос. token передается в заголовке Bearer.
func (ts *TestServer) SendRequest(t *testing.T, method, path, token string, body interface{}) (*http.Response, string) {
	t.Helper()

	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		require.NoError(t, err, "Ошибка кодирования JSON для запроса")
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, ts.Server.URL+path, reqBody)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return ts.do(t, req)
}

// SendMultipart отправляет форму с файлом в поле "file"
func (ts *TestServer) SendMultipart(t *testing.T, path, token string, fields map[string]string, filename, content string) (*http.Response, string) {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, writer.WriteField(k, v))
	}
	if filename != "" {
		part, err := writer.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, err = part.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req, err := http.NewRequest(http.MethodPost, ts.Server.URL+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return ts.do(t, req)
}

func (ts *TestServer) do(t *testing.T, req *http.Request) (*http.Response, string) {
	t.Helper()
	res, err := ts.Server.Client().Do(req)
	require.NoError(t, err, "Ошибка отправки HTTP-запроса")
	defer res.Body.Close()

	resBodyBytes, err := io.ReadAll(res.Body)
	require.NoError(t, err, "Ошибка чтения тела ответа")
	return res, string(resBodyBytes)
}

// Login входит под пользователем с паролем helpers.DefaultPassword и возвращает токен
func (ts *TestServer) Login(t *testing.T, username string) string {
	t.Helper()
	res, body := ts.SendRequest(t, http.MethodPost, "/api/auth/signin", "", map[string]string{
		"username": username,
		"password": helpers.DefaultPassword,
	})
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	var payload struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &payload))
	require.NotEmpty(t, payload.Token)
	return payload.Token
}

func decodeJSON(t *testing.T, body string, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal([]byte(body), out), body)
}

func idPath(format string, id uint) string {
	return fmt.Sprintf(format, id)
}
