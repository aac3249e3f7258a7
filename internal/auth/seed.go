package auth

import (
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
)

type seedUser struct {
	Email    string
	Password string
	Role     Role
	FullName string
	Market   string
}

// Demo roster covering every role. Passwords are hashed at startup so each
// hash carries a fresh salt.
var seedUsers = []seedUser{
	{"partner@slalom.com", "partner123", RolePartner, "Victoria Chen", "Seattle"},
	{"director@slalom.com", "director123", RoleManagingDirector, "Marcus Webb", "Chicago"},
	{"manager@slalom.com", "manager123", RoleSeniorManager, "Priya Nair", "Denver"},
	{"consultant@slalom.com", "consultant123", RoleConsultant, "Alice Smith", "Seattle"},
	{"viewer@slalom.com", "viewer123", RoleViewer, "Guest Viewer", "Remote"},
}

// SeedUserStore builds the in-memory user store from the demo roster.
func SeedUserStore(bcryptCost int) (*UserStore, error) {
	store := NewUserStore()
	now := time.Now().UTC()

	for _, su := range seedUsers {
		hash, err := bcrypt.GenerateFromPassword([]byte(su.Password), bcryptCost)
		if err != nil {
			return nil, fmt.Errorf("hash seed password for %s: %w", su.Email, err)
		}
		store.Add(&User{
			Email:        su.Email,
			PasswordHash: string(hash),
			Role:         su.Role,
			FullName:     su.FullName,
			Market:       su.Market,
			IsActive:     true,
			CreatedAt:    now,
		})
	}
	return store, nil
}
