package rest

import (
	"log/slog"
	"net/http"

	cerrors "github.com/abgdnv/storecatalog/internal/errors"
	"github.com/abgdnv/storecatalog/pkg/web"
)

// statusFor maps a business error kind to its HTTP status.
func statusFor(kind cerrors.Kind) int {
	switch kind {
	case cerrors.KindNotFound:
		return http.StatusNotFound
	case cerrors.KindPreconditionFailed:
		return http.StatusPreconditionFailed
	case cerrors.KindBadRequest:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// respondServiceError writes business errors with their message verbatim and hides everything else behind fallback.
func respondServiceError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error, fallback string) {
	if message, ok := cerrors.MessageOf(err); ok {
		kind := cerrors.KindOf(err)
		logger.WarnContext(r.Context(), "Request rejected", "kind", kind.String(), "error", message)
		web.RespondError(w, logger, statusFor(kind), message)
		return
	}
	logger.ErrorContext(r.Context(), fallback, "error", err)
	web.RespondError(w, logger, http.StatusInternalServerError, fallback)
}
