package capability

import (
	"log/slog"

	"github.com/slalom/capabilities-management/internal/auth"
)

// ServiceAPI is the surface the HTTP layer depends on.
type ServiceAPI interface {
	ListCapabilities() map[string]Capability
	GetCapability(name string) (Capability, error)
	RegisterConsultant(actor *auth.User, name, email string) error
	UnregisterConsultant(actor *auth.User, name, email string) error
}

// Service orchestrates authorization and registry mutations. Authorization is
// always decided before touching registry state.
type Service struct {
	registry   *Registry
	authorizer *auth.Authorizer
	logger     *slog.Logger
}

func NewService(registry *Registry, authorizer *auth.Authorizer, logger *slog.Logger) *Service {
	return &Service{
		registry:   registry,
		authorizer: authorizer,
		logger:     logger,
	}
}

func (s *Service) ListCapabilities() map[string]Capability {
	return s.registry.List()
}

func (s *Service) GetCapability(name string) (Capability, error) {
	return s.registry.Get(name)
}

// RegisterConsultant adds email to the capability roster. The capability must
// exist before the authorization rules are consulted, so an unknown name is
// reported as 404 even to callers who would be denied.
func (s *Service) RegisterConsultant(actor *auth.User, name, email string) error {
	if _, err := s.registry.Get(name); err != nil {
		return err
	}

	if decision := s.authorizer.AuthorizeRegistration(actor, email); !decision.Allowed {
		s.logger.Warn("registration denied",
			"actor", actor.Email,
			"role", actor.Role,
			"target", email,
			"capability", name,
			"reason", decision.Reason.Code)
		return decision.Reason
	}

	if err := s.registry.Register(name, email); err != nil {
		return err
	}

	s.logger.Info("consultant registered",
		"actor", actor.Email,
		"consultant", email,
		"capability", name)
	return nil
}

// UnregisterConsultant removes email from the capability roster. Authorization
// is checked before capability existence, so unauthorized callers get 403
// even for unknown capabilities.
func (s *Service) UnregisterConsultant(actor *auth.User, name, email string) error {
	if decision := s.authorizer.AuthorizeUnregistration(actor); !decision.Allowed {
		s.logger.Warn("unregistration denied",
			"actor", actor.Email,
			"role", actor.Role,
			"target", email,
			"capability", name,
			"reason", decision.Reason.Code)
		return decision.Reason
	}

	if err := s.registry.Unregister(name, email); err != nil {
		return err
	}

	s.logger.Info("consultant unregistered",
		"actor", actor.Email,
		"consultant", email,
		"capability", name)
	return nil
}
