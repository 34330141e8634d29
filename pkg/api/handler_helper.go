package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dd0wney/cluso-segmenter/pkg/segment"
)

// maxRequestBody caps inline graph uploads at 32 MiB.
const maxRequestBody = 32 << 20

// writeJSON writes a JSON response with the given status code
func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// writeError writes a JSON error response
func writeError(w http.ResponseWriter, status int, message, code string) {
	writeJSON(w, status, ErrorResponse{Error: message, Code: code})
}

// writeSegmentationError maps segmentation failures to HTTP statuses
func writeSegmentationError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, segment.ErrInvalidConfiguration):
		writeError(w, http.StatusBadRequest, err.Error(), "invalid_configuration")
	case errors.Is(err, segment.ErrInconsistentConstraint):
		writeError(w, http.StatusBadRequest, err.Error(), "inconsistent_constraint")
	case errors.Is(err, segment.ErrUnresolvableCycle):
		writeError(w, http.StatusUnprocessableEntity, err.Error(), "unresolvable_cycle")
	default:
		writeError(w, http.StatusInternalServerError, err.Error(), "internal")
	}
}

// decodeJSON decodes a request body with a size cap and strict field checks
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(dst)
}
