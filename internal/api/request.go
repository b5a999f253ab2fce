package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/phrazzld/notes-api/internal/api/shared"
)

// decodeBody decodes an optional JSON body into v. An empty body leaves v untouched,
// so the service reports the missing fields instead of a parse failure.
func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) error {
	if r.Body == nil || r.Body == http.NoBody {
		return nil
	}
	if err := shared.DecodeJSON(w, r, v); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
