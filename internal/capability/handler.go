package capability

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi"
	"github.com/slalom/capabilities-management/internal"
	"github.com/slalom/capabilities-management/internal/auth"
	"github.com/slalom/capabilities-management/internal/transport"
	"github.com/slalom/capabilities-management/pkg/logger"
)

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(svc ServiceAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     svc,
	}
}

// List returns the full capability map keyed by name.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	h.WriteJSON(w, http.StatusOK, h.Service.ListCapabilities())
}

// Register handles POST /capabilities/{name}/register?email=...
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.UserFromContext(r.Context())
	if !ok {
		h.WriteBearerChallenge(w, internal.ErrInvalidToken)
		return
	}

	name := capabilityName(r)
	email := r.URL.Query().Get("email")
	if email == "" {
		h.WriteAppError(w, internal.NewValidationError("email query parameter is required", internal.ErrCodeMissingEmail))
		return
	}

	if err := h.Service.RegisterConsultant(actor, name, email); err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, RegistrationResponse{
		Message:      fmt.Sprintf("Registered %s for %s", email, name),
		RegisteredBy: actor.Email,
	})
}

// Unregister handles DELETE /capabilities/{name}/unregister?email=...
func (h *Handler) Unregister(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.UserFromContext(r.Context())
	if !ok {
		h.WriteBearerChallenge(w, internal.ErrInvalidToken)
		return
	}

	name := capabilityName(r)
	email := r.URL.Query().Get("email")
	if email == "" {
		h.WriteAppError(w, internal.NewValidationError("email query parameter is required", internal.ErrCodeMissingEmail))
		return
	}

	if err := h.Service.UnregisterConsultant(actor, name, email); err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, RegistrationResponse{
		Message:        fmt.Sprintf("Unregistered %s from %s", email, name),
		UnregisteredBy: actor.Email,
	})
}

func (h *Handler) writeServiceError(w http.ResponseWriter, err error) {
	if appErr, ok := internal.IsAppError(err); ok {
		h.WriteAppError(w, appErr)
		return
	}
	h.Logger.Error("capability operation failed", "error", err)
	h.WriteError(w, http.StatusInternalServerError, "internal server error")
}

// capabilityName decodes the {name} path segment; capability names contain
// spaces and slashes ("UX/UI Design"), so the raw segment is unescaped.
func capabilityName(r *http.Request) string {
	name := chi.URLParam(r, "name")
	if decoded, err := url.PathUnescape(name); err == nil {
		return decoded
	}
	return name
}
