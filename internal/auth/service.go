package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/slalom/capabilities-management/internal"
	"golang.org/x/crypto/bcrypt"
)

// Service is the credential store plus token service.
type Service struct {
	store          *UserStore
	tokenGenerator *JWTTokenGenerator
	bcryptCost     int
}

// NewService creates a new auth service
func NewService(store *UserStore, tokenGen *JWTTokenGenerator, bcryptCost int) *Service {
	return &Service{
		store:          store,
		tokenGenerator: tokenGen,
		bcryptCost:     bcryptCost,
	}
}

// Authenticate validates credentials and returns the user. Unknown email and
// wrong password produce the same error so responses cannot be used to
// enumerate accounts.
func (s *Service) Authenticate(dto LoginDTO) (*User, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	storedHash, ok := s.store.PasswordHash(dto.Email)
	if !ok {
		return nil, internal.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(dto.Password)); err != nil {
		return nil, internal.ErrInvalidCredentials
	}

	user, err := s.store.Get(dto.Email)
	if err != nil {
		return nil, internal.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, internal.ErrUserInactive
	}

	now := time.Now().UTC()
	s.store.TouchLastLogin(dto.Email, now)
	user.LastLogin = &now

	return user, nil
}

// IssueToken creates a session token for the user with the given lifetime.
func (s *Service) IssueToken(user *User, ttl time.Duration) (string, error) {
	return s.tokenGenerator.IssueToken(user, ttl)
}

// VerifyToken validates a session token and returns its claims.
func (s *Service) VerifyToken(raw string) (*Claims, error) {
	return s.tokenGenerator.VerifyToken(raw)
}

// GetUser loads a user record by email.
func (s *Service) GetUser(email string) (*User, error) {
	return s.store.Get(email)
}

// AccessTokenTTL reports the configured default token lifetime.
func (s *Service) AccessTokenTTL() time.Duration {
	return s.tokenGenerator.AccessTokenTTL
}

// HashPassword creates a bcrypt hash of the password
func (s *Service) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// JWTTokenGenerator signs and verifies HS256 session tokens with a single
// symmetric secret.
type JWTTokenGenerator struct {
	Secret         []byte
	AccessTokenTTL time.Duration
}

// NewJWTTokenGenerator creates a new JWT token generator
func NewJWTTokenGenerator(secret string, accessTTL time.Duration) *JWTTokenGenerator {
	if accessTTL <= 0 {
		accessTTL = internal.DefaultAccessTokenDuration
	}
	return &JWTTokenGenerator{
		Secret:         []byte(secret),
		AccessTokenTTL: accessTTL,
	}
}

// IssueToken encodes {sub: email, role, exp: now + ttl} and signs it. The
// ttl is honored exactly: a zero or negative ttl produces an already-expired
// token. Callers wanting the configured default pass AccessTokenTTL.
func (j *JWTTokenGenerator) IssueToken(user *User, ttl time.Duration) (string, error) {
	now := time.Now()

	claims := &Claims{
		Role: user.Role.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Email,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.Secret)
}

// VerifyToken checks signature and expiry on every call; there is no
// partial-trust mode. A token without a subject is invalid.
func (j *JWTTokenGenerator) VerifyToken(raw string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(raw, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return j.Secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, internal.ErrTokenExpired
		}
		return nil, internal.ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, internal.ErrInvalidToken
	}
	if claims.Subject == "" {
		return nil, internal.ErrInvalidToken
	}
	if _, err := ParseRole(claims.Role); err != nil {
		return nil, internal.ErrInvalidToken
	}

	return claims, nil
}
