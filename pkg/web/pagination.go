package web

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
)

const (
	DefaultPageLimit = 50
	MaxPageLimit     = 500
)

// ParsePage reads the optional "offset" and "limit" query parameters.
// Missing values fall back to 0 and DefaultPageLimit; invalid values produce a 400 response and false.
func ParsePage(w http.ResponseWriter, r *http.Request, logger *slog.Logger) (offset, limit int32, ok bool) {
	offset, ok = parseQueryInt32(w, r, logger, "offset", 0, func(v int64) bool { return v >= 0 })
	if !ok {
		return 0, 0, false
	}
	limit, ok = parseQueryInt32(w, r, logger, "limit", DefaultPageLimit, func(v int64) bool { return v > 0 && v <= MaxPageLimit })
	if !ok {
		return 0, 0, false
	}
	return offset, limit, true
}

func parseQueryInt32(w http.ResponseWriter, r *http.Request, logger *slog.Logger, key string, fallback int32, valid func(int64) bool) (int32, bool) {
	value := r.URL.Query().Get(key)
	if value == "" {
		return fallback, true
	}
	intValue, err := strconv.ParseInt(value, 10, 32)
	if err != nil || !valid(intValue) {
		RespondError(w, logger, http.StatusBadRequest, fmt.Sprintf("Invalid %s number: %s", key, value))
		return 0, false
	}
	return int32(intValue), true
}
