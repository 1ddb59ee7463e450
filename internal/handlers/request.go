package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

const maxBodyBytes = 1 << 20

// decodeBody reads a JSON payload. A missing, empty or null body is rejected.
func decodeBody[R any](w http.ResponseWriter, r *http.Request) (R, error) {
	var req R

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return req, badRequest("request body could not be read")
	}
	body = bytes.TrimSpace(body)
	if len(body) == 0 || bytes.Equal(body, []byte("null")) {
		return req, badRequest("request body is required")
	}
	if err := json.Unmarshal(body, &req); err != nil {
		return req, badRequest("request body is not valid JSON")
	}
	return req, nil
}

// pathID parses an integer URL parameter. Unknown ids, zero included, are
// left to the services to report.
func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil {
		return 0, badRequest("invalid " + name)
	}
	return id, nil
}
