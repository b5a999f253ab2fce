package shared_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/phrazzld/notes-api/internal/api/shared"
	"github.com/phrazzld/notes-api/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondWithMessage(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/notes", nil)

	shared.RespondWithMessage(w, r, http.StatusCreated, "New note for user dave created")

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var body shared.MessageResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, "New note for user dave created", body.Message)
}

func TestRespondWithErrorAndLog(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		status    int
		opts      []shared.ResponseOption
		wantLevel string
	}{
		{name: "server error", status: http.StatusInternalServerError, wantLevel: "ERROR"},
		{name: "rate limited", status: http.StatusTooManyRequests, wantLevel: "WARN"},
		{name: "bad request", status: http.StatusBadRequest, wantLevel: "DEBUG"},
		{
			name:      "elevated unauthorized",
			status:    http.StatusUnauthorized,
			opts:      []shared.ResponseOption{shared.WithElevatedLogLevel()},
			wantLevel: "WARN",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			buf, log := logger.NewTestLogger(t)
			r := httptest.NewRequest(http.MethodPatch, "/users", nil)
			r = r.WithContext(logger.WithLogger(r.Context(), log))
			w := httptest.NewRecorder()

			cause := errors.New("dial postgres://notes:hunter22@db/notes")
			shared.RespondWithErrorAndLog(w, r, tt.status, "safe message", cause, tt.opts...)

			assert.Equal(t, tt.status, w.Code)
			assert.JSONEq(t, `{"message":"safe message"}`, w.Body.String())
			assert.NotContains(t, w.Body.String(), "hunter22")

			entries, err := buf.GetLogEntries()
			require.NoError(t, err)
			require.Len(t, entries, 1)
			assert.Equal(t, tt.wantLevel, entries[0]["level"])
			assert.NotContains(t, entries[0]["error"], "hunter22")
		})
	}
}
