package auth

import "time"

// LoginDTO carries the form-encoded login fields. The form uses the OAuth2
// password-grant field name "username" for the email.
type LoginDTO struct {
	Email    string
	Password string
}

// ValidationError represents a simple validation error from DTO validation.
type ValidationError struct {
	Msg string
}

func (v ValidationError) Error() string { return v.Msg }

// Validate checks required fields and returns a ValidationError on failure.
func (d LoginDTO) Validate() error {
	if d.Email == "" {
		return ValidationError{Msg: "email is required"}
	}
	if d.Password == "" {
		return ValidationError{Msg: "password is required"}
	}
	return nil
}

// UserResponse is the user payload embedded in the login response.
type UserResponse struct {
	Email    string `json:"email"`
	Role     string `json:"role"`
	FullName string `json:"full_name"`
	Market   string `json:"market"`
}

// TokenResponse is the login response body.
type TokenResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	User        UserResponse `json:"user"`
}

// MeResponse is the current-user payload for /auth/me.
type MeResponse struct {
	Email     string     `json:"email"`
	Role      string     `json:"role"`
	FullName  string     `json:"full_name"`
	Market    string     `json:"market"`
	LastLogin *time.Time `json:"last_login"`
}

func NewTokenResponse(token string, user *User) TokenResponse {
	return TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User: UserResponse{
			Email:    user.Email,
			Role:     user.Role.String(),
			FullName: user.FullName,
			Market:   user.Market,
		},
	}
}

func NewMeResponse(user *User) MeResponse {
	return MeResponse{
		Email:     user.Email,
		Role:      user.Role.String(),
		FullName:  user.FullName,
		Market:    user.Market,
		LastLogin: user.LastLogin,
	}
}
