package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeAPI(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"accessToken": "tok"})
	})
	mux.HandleFunc("GET /notes", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode([]map[string]any{
			{"title": "Fix printer", "ticket": 500, "completed": true, "username": "alice"},
			{"title": "Orphaned", "ticket": 501},
		})
	})
	mux.HandleFunc("GET /users", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "No users found"})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestRootCommand_PrintsBothLists(t *testing.T) {
	t.Parallel()

	srv := fakeAPI(t)
	var out bytes.Buffer
	cmd := newRootCommand(&out)
	cmd.SetArgs([]string{"--server", srv.URL, "-u", "alice", "-p", "pw"})

	require.NoError(t, cmd.Execute())

	got := out.String()
	assert.Contains(t, got, "Fix printer")
	assert.Contains(t, got, "Completed")
	assert.Contains(t, got, "Orphaned")
	assert.Contains(t, got, "(no users)")
}

func TestNotesCommand_RequiresCredentials(t *testing.T) {
	t.Setenv("NOTES_USERNAME", "")
	t.Setenv("NOTES_PASSWORD", "")

	var out bytes.Buffer
	cmd := newRootCommand(&out)
	cmd.SetArgs([]string{"notes", "--server", "http://127.0.0.1:1"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "username and password are required")
}
