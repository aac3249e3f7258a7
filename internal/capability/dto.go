package capability

// RegistrationResponse confirms a roster mutation, naming the consultant and
// the acting user.
type RegistrationResponse struct {
	Message        string `json:"message"`
	RegisteredBy   string `json:"registered_by,omitempty"`
	UnregisteredBy string `json:"unregistered_by,omitempty"`
}
