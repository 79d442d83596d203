package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todo-app-go/internal/db"
	"todo-app-go/pkg/logger"
)

type taskBody struct {
	ID        string `json:"id"`
	Completed bool   `json:"completed"`
}

type taskListBody struct {
	Items     []taskBody `json:"items"`
	Total     int        `json:"total"`
	Available bool       `json:"available"`
}

// newSQLiteApp builds the application on real lanes over a file-backed SQLite table and
// a seeded remote store with the given latency.
func newSQLiteApp(t *testing.T, latency time.Duration) (*App, string) {
	t.Helper()

	dir := t.TempDir()
	t.Chdir(dir)
	path := filepath.Join(dir, "data", "todo.db")
	t.Setenv("LOCAL_DRIVER", "sqlite")
	t.Setenv("SQLITE_PATH", path)
	t.Setenv("REMOTE_LATENCY", latency.String())
	t.Setenv("REMOTE_SEED", "true")
	t.Setenv("NETWORK_THREADS", "3")
	t.Setenv("REQUEST_TIMEOUT", "10s")

	application, err := New(logger.NewNop())
	require.NoError(t, err)
	return application, path
}

func call(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func countRows(t *testing.T, path, where string) int {
	t.Helper()
	conn, err := db.OpenSQLite(path)
	require.NoError(t, err)
	defer conn.Close()

	var count int
	require.NoError(t, conn.QueryRow(`SELECT COUNT(*) FROM tasks`+where).Scan(&count))
	return count
}

func TestConcurrentRequestsOverRealLanes(t *testing.T) {
	application, path := newSQLiteApp(t, 5*time.Millisecond)
	h := application.HTTPServer().Handler

	rec := call(t, h, http.MethodGet, "/api/tasks", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var seeded taskListBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &seeded))
	require.True(t, seeded.Available)
	require.Equal(t, 2, seeded.Total, "empty local table falls back to the seeded remote")

	const workers = 8
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			created := call(t, h, http.MethodPost, "/api/tasks", `{"title":"parallel task"}`)
			if !assert.Equal(t, http.StatusCreated, created.Code) {
				return
			}
			var task taskBody
			if !assert.NoError(t, json.Unmarshal(created.Body.Bytes(), &task)) {
				return
			}

			assert.Equal(t, http.StatusNoContent, call(t, h, http.MethodPost, "/api/tasks/"+task.ID+"/complete", "").Code)

			fetched := call(t, h, http.MethodGet, "/api/tasks/"+task.ID, "")
			if assert.Equal(t, http.StatusOK, fetched.Code) {
				var got taskBody
				assert.NoError(t, json.Unmarshal(fetched.Body.Bytes(), &got))
				assert.True(t, got.Completed)
			}

			assert.Equal(t, http.StatusOK, call(t, h, http.MethodGet, "/api/tasks?filter=completed", "").Code)
		}()
	}
	wg.Wait()

	rec = call(t, h, http.MethodGet, "/api/tasks/stats", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"active":2,"completed":8,"total":10}`, rec.Body.String())

	require.Equal(t, http.StatusAccepted, call(t, h, http.MethodPost, "/api/tasks/refresh", "").Code)
	rec = call(t, h, http.MethodGet, "/api/tasks", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var refreshed taskListBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &refreshed))
	assert.Equal(t, 10, refreshed.Total)

	rec = call(t, h, http.MethodGet, "/api/idle?wait=2s", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"resource":"GLOBAL","idle":true,"pending":0}`, rec.Body.String())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, application.Close(ctx))

	assert.Equal(t, 10, countRows(t, path, ""))
	assert.Equal(t, 8, countRows(t, path, " WHERE completed = 1"))
}

func TestCloseLetsInFlightRefreshReachDisk(t *testing.T) {
	application, path := newSQLiteApp(t, 50*time.Millisecond)
	h := application.HTTPServer().Handler

	done := make(chan *httptest.ResponseRecorder, 1)
	go func() {
		done <- call(t, h, http.MethodGet, "/api/tasks", "")
	}()

	require.Eventually(t, func() bool {
		return application.lanes.Pending() > 0
	}, time.Second, time.Millisecond, "list never reached the lanes")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, application.Close(ctx))

	select {
	case rec := <-done:
		require.Equal(t, http.StatusOK, rec.Code)
		var list taskListBody
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
		assert.Equal(t, 2, list.Total)
	case <-time.After(2 * time.Second):
		t.Fatal("in-flight list never answered")
	}

	assert.Equal(t, 2, countRows(t, path, ""), "remote rows are mirrored locally before the lanes stop")
}
