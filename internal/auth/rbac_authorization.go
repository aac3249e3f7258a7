package auth

import (
	"log/slog"
	"net/http"

	"github.com/slalom/capabilities-management/internal"
	"github.com/slalom/capabilities-management/internal/transport"
)

// RBACAuthorization gates routes on matrix permissions. Fine-grained checks
// (ownership, target identity) stay in the services; this middleware covers
// the coarse role checks.
type RBACAuthorization struct {
	authorizer *Authorizer
	base       *transport.BaseHandler
	logger     *slog.Logger
}

func NewRBACAuthorization(authorizer *Authorizer, logger *slog.Logger) *RBACAuthorization {
	return &RBACAuthorization{
		authorizer: authorizer,
		base:       transport.NewBaseHandler(logger),
		logger:     logger,
	}
}

func (ra *RBACAuthorization) Check(next http.HandlerFunc, permission Permission) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		if !ok {
			ra.logger.Warn("authorization check failed: user not found in context")
			ra.base.WriteBearerChallenge(w, internal.ErrInvalidToken)
			return
		}

		if !ra.authorizer.HasPermission(user.Role, permission) {
			ra.logger.WarnContext(r.Context(), "access denied: insufficient permissions",
				"email", user.Email,
				"role", user.Role,
				"required_permission", permission)
			ra.base.WriteAppError(w, internal.NewAuthorizationError(
				"Missing permission: "+string(permission), internal.ErrCodeInsufficientPermission))
			return
		}

		next.ServeHTTP(w, r)
	}
}

func (ra *RBACAuthorization) Middleware(permission Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return ra.Check(next.ServeHTTP, permission)
	}
}

// RequireCapabilityRead guards the capability listing routes.
func (ra *RBACAuthorization) RequireCapabilityRead() func(http.Handler) http.Handler {
	return ra.Middleware(PermReadCapabilities)
}
