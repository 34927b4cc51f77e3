package server

import (
	"net/http"
	"strconv"
)

// Caller identity arrives pre-authenticated as an X-User-ID header; the
// store validates that the id belongs to the addressed game.
const userIDHeader = "X-User-ID"

func callerID(r *http.Request) (int, bool) {
	raw := r.Header.Get(userIDHeader)
	if raw == "" {
		return 0, false
	}
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func requireCaller(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, ok := callerID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return 0, false
	}
	return id, true
}
