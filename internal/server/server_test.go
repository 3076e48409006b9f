package server_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"taskboard/internal/auth"
	"taskboard/internal/board"
	"taskboard/internal/config"
	"taskboard/internal/server"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		ServerPort:     "0",
		LogLevel:       "error",
		LogFormat:      "json",
		StorageDriver:  config.StorageMemory,
		WIPPolicy:      "hard",
		JWTExpiryHours: 1,
	}
}

func quietLogger() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}

func newServer(t *testing.T, cfg *config.Config) *server.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	s, err := server.Init(cfg, quietLogger())
	require.NoError(t, err)
	return s
}

func do(s *server.Server, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp := httptest.NewRecorder()
	s.Engine.ServeHTTP(resp, req)
	return resp
}

func TestInit_DefaultBoard(t *testing.T) {
	s := newServer(t, testConfig())

	resp := do(s, "GET", "/health", nil, "")
	assert.Equal(t, http.StatusOK, resp.Code)

	resp = do(s, "GET", "/board", nil, "")
	require.Equal(t, http.StatusOK, resp.Code)

	var snap board.Snapshot
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &snap))
	require.Len(t, snap.Columns, 4)
	assert.Equal(t, "todo", snap.Columns[0].ID)
	assert.Equal(t, "done", snap.Columns[3].ID)
}

func TestInit_MoveAndMetrics(t *testing.T) {
	s := newServer(t, testConfig())

	resp := do(s, "POST", "/tasks/task-1/move", map[string]interface{}{"column_id": "done", "position": 0}, "")
	require.Equal(t, http.StatusOK, resp.Code)

	col, ok := s.Coordinator.FindColumnOf("task-1")
	assert.True(t, ok)
	assert.Equal(t, "done", col)

	resp = do(s, "GET", "/metrics", nil, "")
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `taskboard_moves_total{outcome="applied",reason="none"} 1`)
	assert.Contains(t, resp.Body.String(), `taskboard_column_tasks{column="done"} 3`)
}

func TestInit_SeedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
columns:
  - id: todo
    title: To Do
    tasks:
      - id: A
        title: Only task
  - id: done
    title: Done
    capacity: 1
`), 0o600))

	cfg := testConfig()
	cfg.BoardSeedFile = path
	s := newServer(t, cfg)

	assert.Equal(t, []string{"A"}, s.Coordinator.Snapshot().TaskIDs("todo"))
}

func TestInit_InvalidConfig(t *testing.T) {
	cfg := testConfig()
	cfg.WIPPolicy = "lenient"

	_, err := server.Init(cfg, quietLogger())

	assert.Error(t, err)
}

func TestInit_MoveRequiresTokenWhenSecretSet(t *testing.T) {
	cfg := testConfig()
	cfg.JWTSecret = "test-secret"
	s := newServer(t, cfg)
	body := map[string]interface{}{"column_id": "in_progress", "position": 0}

	resp := do(s, "POST", "/tasks/task-1/move", body, "")
	assert.Equal(t, http.StatusUnauthorized, resp.Code)

	// Чтение доступно без токена
	resp = do(s, "GET", "/board/view", nil, "")
	assert.Equal(t, http.StatusOK, resp.Code)

	token, err := auth.GenerateToken(cfg.JWTSecret, uuid.NewString(), time.Hour)
	require.NoError(t, err)

	resp = do(s, "POST", "/tasks/task-1/move", body, token)
	assert.Equal(t, http.StatusOK, resp.Code)
}
