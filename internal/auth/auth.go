package auth

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/slalom/capabilities-management/internal"
)

// User is the identity record owned by the credential store. Other packages
// only read it.
type User struct {
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	Role         Role       `json:"role"`
	FullName     string     `json:"full_name"`
	Market       string     `json:"market"`
	IsActive     bool       `json:"is_active"`
	CreatedAt    time.Time  `json:"created_at"`
	LastLogin    *time.Time `json:"last_login"`
}

// Claims are the JWT token claims: subject email, role, expiry.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies signed session tokens.
type TokenService interface {
	IssueToken(user *User, ttl time.Duration) (string, error)
	VerifyToken(raw string) (*Claims, error)
}

// ServiceAPI is the surface the HTTP layer depends on.
type ServiceAPI interface {
	Authenticate(dto LoginDTO) (*User, error)
	IssueToken(user *User, ttl time.Duration) (string, error)
	VerifyToken(raw string) (*Claims, error)
	GetUser(email string) (*User, error)
	AccessTokenTTL() time.Duration
}

// UserFromContext returns the authenticated user placed in the request
// context by the auth middleware.
func UserFromContext(ctx context.Context) (*User, bool) {
	user, ok := ctx.Value(internal.ContextUserKey).(*User)
	return user, ok && user != nil
}

// ContextWithUser stores the authenticated user in the request context.
func ContextWithUser(ctx context.Context, user *User) context.Context {
	return context.WithValue(ctx, internal.ContextUserKey, user)
}
