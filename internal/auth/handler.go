package auth

import (
	"log/slog"
	"net/http"

	"github.com/slalom/capabilities-management/internal"
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

// Login handles the form-encoded login. It accepts the OAuth2 password-grant
// field names ("username"/"password") and falls back to "email".
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid form body")
		return
	}

	email := r.PostFormValue("username")
	if email == "" {
		email = r.PostFormValue("email")
	}
	dto := LoginDTO{
		Email:    email,
		Password: r.PostFormValue("password"),
	}

	user, err := h.Service.Authenticate(dto)
	if err != nil {
		h.Logger.Warn("authentication failed", "email", dto.Email, "error", err)

		if _, ok := err.(ValidationError); ok {
			h.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		if appErr, ok := internal.IsAppError(err); ok && appErr.Type == internal.ErrorTypeAuthentication {
			h.WriteBearerChallenge(w, appErr)
			return
		}
		h.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	token, err := h.Service.IssueToken(user, h.Service.AccessTokenTTL())
	if err != nil {
		h.Logger.Error("token issuance failed", "email", user.Email, "error", err)
		h.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.Logger.Info("login succeeded", "email", user.Email, "role", user.Role)
	h.WriteJSON(w, http.StatusOK, NewTokenResponse(token, user))
}

// Me returns the authenticated user's profile.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		h.WriteBearerChallenge(w, internal.ErrInvalidToken)
		return
	}
	h.WriteJSON(w, http.StatusOK, NewMeResponse(user))
}

// AuthMiddleware verifies the bearer token and loads the user into the
// request context. Missing, invalid, and expired tokens all produce 401 with
// a bearer challenge; token decode failures are never server errors.
func (h *Handler) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := h.ExtractTokenFromHeader(r)
		if token == "" {
			h.WriteBearerChallenge(w, internal.NewAuthenticationError("Not authenticated", internal.ErrCodeInvalidToken))
			return
		}

		claims, err := h.Service.VerifyToken(token)
		if err != nil {
			h.Logger.Warn("token verification failed", "error", err)
			if appErr, ok := internal.IsAppError(err); ok {
				h.WriteBearerChallenge(w, appErr)
			} else {
				h.WriteBearerChallenge(w, internal.ErrInvalidToken)
			}
			return
		}

		user, err := h.Service.GetUser(claims.Subject)
		if err != nil {
			h.Logger.Warn("token subject has no user record", "subject", claims.Subject)
			h.WriteBearerChallenge(w, internal.ErrInvalidToken)
			return
		}

		ctx := logger.With(r.Context(), "user", user.Email, "role", user.Role)
		next.ServeHTTP(w, r.WithContext(ContextWithUser(ctx, user)))
	})
}
