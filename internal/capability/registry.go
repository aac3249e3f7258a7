package capability

import (
	"sync"

	"github.com/slalom/capabilities-management/internal"
)

// Registry is the in-memory capability store. State lives for the process
// lifetime and is lost on restart. The mutex closes the check-then-mutate
// race between concurrent registrations for the same capability.
type Registry struct {
	mu           sync.RWMutex
	capabilities map[string]*Capability
}

func NewRegistry(seed map[string]*Capability) *Registry {
	caps := make(map[string]*Capability, len(seed))
	for name, c := range seed {
		copied := c.clone()
		copied.Name = name
		caps[name] = &copied
	}
	return &Registry{capabilities: caps}
}

// Get returns a defensive copy of the named capability.
func (r *Registry) Get(name string) (Capability, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.capabilities[name]
	if !ok {
		return Capability{}, internal.ErrCapabilityNotFound
	}
	return c.clone(), nil
}

// List returns defensive copies of all capabilities keyed by name.
func (r *Registry) List() map[string]Capability {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]Capability, len(r.capabilities))
	for name, c := range r.capabilities {
		out[name] = c.clone()
	}
	return out
}

// Register appends email to the capability's roster. Duplicate registrations
// are rejected, not silently ignored.
func (r *Registry) Register(name, email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.capabilities[name]
	if !ok {
		return internal.ErrCapabilityNotFound
	}
	if c.hasConsultant(email) {
		return internal.ErrAlreadyRegistered
	}
	c.Consultants = append(c.Consultants, email)
	return nil
}

// Unregister removes email from the capability's roster. Removing a
// non-member is rejected, not silently ignored.
func (r *Registry) Unregister(name, email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.capabilities[name]
	if !ok {
		return internal.ErrCapabilityNotFound
	}
	for i, e := range c.Consultants {
		if e == email {
			c.Consultants = append(c.Consultants[:i], c.Consultants[i+1:]...)
			return nil
		}
	}
	return internal.ErrNotRegistered
}

// Len reports the number of capabilities.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.capabilities)
}
