package rest

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/httprate"
	"github.com/unrolled/secure"

	"github.com/slalom/capabilities-management/internal/auth"
	"github.com/slalom/capabilities-management/internal/capability"
	"github.com/slalom/capabilities-management/internal/transport/middleware"
	"github.com/slalom/capabilities-management/internal/transport/swagger"
	"github.com/slalom/capabilities-management/web"
)

// RegisterAllRoutes wires the middleware stack and all endpoints.
func RegisterAllRoutes(
	router *chi.Mux,
	authHandler *auth.Handler,
	rbac *auth.RBACAuthorization,
	capabilityHandler *capability.Handler,
	allowedOrigins string,
	logger *slog.Logger,
) {
	healthHandler := NewHealthHandler()

	secureMiddleware := secure.New(secure.Options{
		FrameDeny:          true,
		ContentTypeNosniff: true,
		BrowserXssFilter:   true,
		ReferrerPolicy:     "strict-origin-when-cross-origin",
	})

	// Apply global middleware
	router.Use(middleware.CORS(allowedOrigins))
	router.Use(middleware.RequestID)
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(secureMiddleware.Handler)

	// Frontend entry point and static assets
	router.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/static/index.html", http.StatusTemporaryRedirect)
	})
	router.Handle("/static/*", web.StaticHandler())

	// Serve OpenAPI spec at root and the Swagger UI
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	// Health check routes
	router.Get("/health", healthHandler.healthCheckHandler)
	router.Get("/ping", healthHandler.pingHandler)

	// Login is rate limited per client IP to slow down credential stuffing.
	router.Group(func(r chi.Router) {
		r.Use(httprate.Limit(10, time.Minute, httprate.WithKeyFuncs(httprate.KeyByIP)))
		r.Post("/token", authHandler.Login)
	})

	// Protected routes that require authentication
	router.Group(func(pr chi.Router) {
		pr.Use(authHandler.AuthMiddleware)

		pr.Get("/auth/me", authHandler.Me)

		pr.Route("/capabilities", func(cr chi.Router) {
			cr.Group(func(rr chi.Router) {
				rr.Use(rbac.RequireCapabilityRead())
				rr.Get("/", capabilityHandler.List)
			})

			// Fine-grained authorization (ownership, target identity) happens
			// in the capability service, not here.
			cr.Post("/{name}/register", capabilityHandler.Register)
			cr.Delete("/{name}/unregister", capabilityHandler.Unregister)
		})
	})
}
