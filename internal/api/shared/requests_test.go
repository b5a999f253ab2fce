package shared_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/phrazzld/notes-api/internal/api/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type loginPayload struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func TestDecodeJSON(t *testing.T) {
	t.Parallel()

	t.Run("valid body", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodPost, "/auth", strings.NewReader(`{"username":"dave","password":"pw"}`))
		var p loginPayload
		require.NoError(t, shared.DecodeJSON(httptest.NewRecorder(), r, &p))
		assert.Equal(t, "dave", p.Username)
	})

	t.Run("malformed body", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodPost, "/auth", strings.NewReader(`{"username":`))
		var p loginPayload
		assert.Error(t, shared.DecodeJSON(httptest.NewRecorder(), r, &p))
	})

	t.Run("oversized body", func(t *testing.T) {
		t.Parallel()
		big := `{"username":"` + strings.Repeat("a", shared.MaxRequestBodyBytes) + `"}`
		r := httptest.NewRequest(http.MethodPost, "/auth", strings.NewReader(big))
		var p loginPayload
		assert.Error(t, shared.DecodeJSON(httptest.NewRecorder(), r, &p))
	})
}

func TestValidateRequest(t *testing.T) {
	t.Parallel()

	assert.NoError(t, shared.ValidateRequest(loginPayload{Username: "dave", Password: "pw"}))
	assert.Error(t, shared.ValidateRequest(loginPayload{Username: "dave"}))
}
