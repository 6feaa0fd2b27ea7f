package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/shubhamkumaar/socioBuy-backend/internal/service"
	"github.com/shubhamkumaar/socioBuy-backend/internal/suggest"
)

// APIHandlers exposes HTTP handlers for the REST API.
type APIHandlers struct {
	logger    *slog.Logger
	accounts  *service.AccountService
	social    *service.SocialService
	catalog   *service.CatalogService
	orders    *service.OrderService
	suggester *suggest.Client
}

// NewAPIHandlers constructs an APIHandlers instance. The suggester may be
// nil or disabled; cart suggestions then carry no generated messages.
func NewAPIHandlers(
	logger *slog.Logger,
	accounts *service.AccountService,
	social *service.SocialService,
	catalog *service.CatalogService,
	orders *service.OrderService,
	suggester *suggest.Client,
) *APIHandlers {
	return &APIHandlers{
		logger:    logger,
		accounts:  accounts,
		social:    social,
		catalog:   catalog,
		orders:    orders,
		suggester: suggester,
	}
}

// --- Shared helpers ---

// statusForError maps the service error taxonomy onto HTTP status codes.
func statusForError(err error) (int, string) {
	var svcErr *service.Error
	if errors.As(err, &svcErr) {
		switch svcErr.Kind() {
		case service.KindNotFound:
			return http.StatusNotFound, svcErr.Message()
		case service.KindConflict:
			return http.StatusConflict, svcErr.Message()
		case service.KindValidation:
			return http.StatusBadRequest, svcErr.Message()
		case service.KindUnauthorized:
			return http.StatusUnauthorized, svcErr.Message()
		}
	}
	return http.StatusInternalServerError, "internal server error"
}

// respondServiceError writes the mapped status, logging store failures.
func (h *APIHandlers) respondServiceError(w http.ResponseWriter, err error, logMsg string, args ...any) {
	status, msg := statusForError(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error(logMsg, append([]any{"error", err}, args...)...)
	}
	writeError(w, status, msg)
}

func decodeJSON(r *http.Request, dst any) error {
	if r.Body == nil {
		return errors.New("request body is required")
	}
	defer r.Body.Close()

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return err
	}
	return nil
}

func writeError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{
		"error": msg,
	})
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
