package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/capsort/capsort/internal/models"
	"github.com/capsort/capsort/internal/server/middleware"
	"github.com/capsort/capsort/internal/server/storage/sqlstore"
	"github.com/capsort/capsort/pkg/api"
)

// setupTestLogger creates a logger for testing
func setupTestLogger() *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: slog.LevelError,
	}
	handler := slog.NewTextHandler(os.Stdout, opts)
	return slog.New(handler)
}

func setupTestStorage(t *testing.T) *sqlstore.Storage {
	t.Helper()

	store, err := sqlstore.New(context.Background(), sqlstore.DialectSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = store.Close()
	})

	return store
}

func createUser(t *testing.T, store *sqlstore.Storage, email string, role models.Role) *models.User {
	t.Helper()

	user := &models.User{
		FullName:      "Test " + string(role),
		ContactNumber: "+63 912 345 6789",
		Email:         email,
		PasswordHash:  "$2a$04$hash",
		Role:          role,
	}
	require.NoError(t, store.CreateUser(context.Background(), user))

	return user
}

func createProject(t *testing.T, store *sqlstore.Storage, uploader int64, title, field string, year int) *models.Project {
	t.Helper()

	project := &models.Project{
		Title:      title,
		Author:     "Maria Clara",
		Year:       year,
		Field:      field,
		FileURL:    "https://files.example.com/" + title + ".pdf",
		UploadedBy: uploader,
	}
	require.NoError(t, store.CreateProject(context.Background(), project))

	return project
}

// testRequest описывает запрос к одному маршруту chi
type testRequest struct {
	body     any
	identity *models.Identity
	method   string
	pattern  string
	path     string
}

// serve регистрирует handler по шаблону и выполняет запрос
func serve(t *testing.T, h http.HandlerFunc, tr testRequest) *httptest.ResponseRecorder {
	t.Helper()

	var body io.Reader
	switch b := tr.body.(type) {
	case nil:
	case string:
		body = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		body = bytes.NewBuffer(raw)
	}

	pattern := tr.pattern
	if pattern == "" {
		pattern = tr.path
	}

	r := chi.NewRouter()
	r.Method(tr.method, pattern, h)

	req := httptest.NewRequest(tr.method, tr.path, body)
	req.Header.Set("Content-Type", "application/json")
	if tr.identity != nil {
		req = req.WithContext(middleware.WithIdentity(req.Context(), *tr.identity))
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	return w
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.NewDecoder(w.Body).Decode(&v), "body: %s", w.Body.String())
	return v
}

func errorMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	return decodeBody[api.ErrorResponse](t, w).Message
}
