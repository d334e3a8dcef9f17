package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/becsite/backend/internal/ratelimit"
	"github.com/becsite/backend/internal/validation"
)

// maxBodyBytes bounds form and checkout request bodies.
const maxBodyBytes = 64 << 10

type successResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type validationResponse struct {
	Error   string                 `json:"error"`
	Details validation.FieldErrors `json:"details"`
}

// admitForm runs the steps shared by the public form endpoints: the rate
// limit, then the JSON syntax check. On false the response has been written.
func admitForm(w http.ResponseWriter, r *http.Request, guard *ratelimit.Guard, route string) ([]byte, ratelimit.Result, bool) {
	res := guard.Check(r, route)
	if !res.Allowed {
		w.Header().Set("Retry-After", strconv.Itoa(guard.RetryAfterSeconds()))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))
		writeError(w, http.StatusTooManyRequests, msgTooManyRequests)
		return nil, res, false
	}

	raw, ok := readJSONBody(w, r)
	return raw, res, ok
}

// readJSONBody reads a bounded body and rejects anything that is not JSON.
// Oversized bodies get a 413.
func readJSONBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		writeError(w, http.StatusRequestEntityTooLarge, msgBodyTooLarge)
		return nil, false
	}
	if err != nil || !json.Valid(raw) {
		writeError(w, http.StatusBadRequest, msgInvalidJSON)
		return nil, false
	}
	return raw, true
}

// rejectInvalid writes the 400 for errs unless the only violation is the
// honeypot, which callers answer with a fake success instead.
func rejectInvalid(w http.ResponseWriter, errs validation.FieldErrors) bool {
	if errs.Without("honeypot") == nil {
		return false
	}
	writeJSON(w, http.StatusBadRequest, validationResponse{Error: msgValidation, Details: errs})
	return true
}

func writeSuccess(w http.ResponseWriter, res ratelimit.Result, msg string) {
	w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))
	writeJSON(w, http.StatusOK, successResponse{Success: true, Message: msg})
}
