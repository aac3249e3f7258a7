package auth

import (
	"testing"
	"time"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"github.com/slalom/capabilities-management/internal"
	"golang.org/x/crypto/bcrypt"
)

func TestAuth(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "Auth Module Suite")
}

func newTestStore() *UserStore {
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("correct_password"), bcrypt.MinCost)

	store := NewUserStore()
	store.Add(&User{
		Email:        "consultant@example.com",
		PasswordHash: string(hashedPassword),
		Role:         RoleConsultant,
		FullName:     "Connie Consultant",
		Market:       "Seattle",
		IsActive:     true,
		CreatedAt:    time.Now().UTC(),
	})
	store.Add(&User{
		Email:        "partner@example.com",
		PasswordHash: string(hashedPassword),
		Role:         RolePartner,
		FullName:     "Paula Partner",
		Market:       "Chicago",
		IsActive:     true,
		CreatedAt:    time.Now().UTC(),
	})
	store.Add(&User{
		Email:        "inactive@example.com",
		PasswordHash: string(hashedPassword),
		Role:         RoleViewer,
		FullName:     "Ira Inactive",
		Market:       "Remote",
		IsActive:     false,
		CreatedAt:    time.Now().UTC(),
	})
	return store
}

var _ = ginkgo.Describe("AuthService", func() {
	var (
		service  *Service
		store    *UserStore
		tokenGen *JWTTokenGenerator
		secret   string        = "test-secret-key-at-least-32-chars-long"
		ttl      time.Duration = 8 * time.Hour
	)

	ginkgo.BeforeEach(func() {
		store = newTestStore()
		tokenGen = NewJWTTokenGenerator(secret, ttl)
		service = NewService(store, tokenGen, bcrypt.MinCost)
	})

	ginkgo.Describe("Authenticate", func() {
		ginkgo.Context("when credentials are valid", func() {
			ginkgo.It("should return the user with role and profile", func() {
				user, err := service.Authenticate(LoginDTO{
					Email:    "consultant@example.com",
					Password: "correct_password",
				})

				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(user.Email).To(gomega.Equal("consultant@example.com"))
				gomega.Expect(user.Role).To(gomega.Equal(RoleConsultant))
				gomega.Expect(user.FullName).To(gomega.Equal("Connie Consultant"))
			})

			ginkgo.It("should record the login time", func() {
				before := time.Now().UTC()

				user, err := service.Authenticate(LoginDTO{
					Email:    "partner@example.com",
					Password: "correct_password",
				})

				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(user.LastLogin).ToNot(gomega.BeNil())
				gomega.Expect(*user.LastLogin).To(gomega.BeTemporally(">=", before))

				stored, err := store.Get("partner@example.com")
				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(stored.LastLogin).ToNot(gomega.BeNil())
			})
		})

		ginkgo.Context("when credentials are invalid", func() {
			ginkgo.It("should not distinguish unknown email from wrong password", func() {
				_, unknownErr := service.Authenticate(LoginDTO{
					Email:    "nobody@example.com",
					Password: "correct_password",
				})
				_, wrongErr := service.Authenticate(LoginDTO{
					Email:    "consultant@example.com",
					Password: "wrong_password",
				})

				gomega.Expect(unknownErr).To(gomega.Equal(internal.ErrInvalidCredentials))
				gomega.Expect(wrongErr).To(gomega.Equal(internal.ErrInvalidCredentials))
			})

			ginkgo.It("should not record a login time on failure", func() {
				_, err := service.Authenticate(LoginDTO{
					Email:    "consultant@example.com",
					Password: "wrong_password",
				})
				gomega.Expect(err).To(gomega.HaveOccurred())

				stored, err := store.Get("consultant@example.com")
				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(stored.LastLogin).To(gomega.BeNil())
			})
		})

		ginkgo.Context("when the account is inactive", func() {
			ginkgo.It("should reject the login", func() {
				_, err := service.Authenticate(LoginDTO{
					Email:    "inactive@example.com",
					Password: "correct_password",
				})

				gomega.Expect(err).To(gomega.Equal(internal.ErrUserInactive))
			})
		})

		ginkgo.Context("when input validation fails", func() {
			ginkgo.It("should return validation error for empty email", func() {
				_, err := service.Authenticate(LoginDTO{Email: "", Password: "password"})

				gomega.Expect(err).To(gomega.HaveOccurred())
				gomega.Expect(err.Error()).To(gomega.ContainSubstring("email is required"))
			})

			ginkgo.It("should return validation error for empty password", func() {
				_, err := service.Authenticate(LoginDTO{Email: "consultant@example.com", Password: ""})

				gomega.Expect(err).To(gomega.HaveOccurred())
				gomega.Expect(err.Error()).To(gomega.ContainSubstring("password is required"))
			})
		})
	})

	ginkgo.Describe("HashPassword", func() {
		ginkgo.It("should generate different hashes for same password", func() {
			hash1, err1 := service.HashPassword("same_password")
			hash2, err2 := service.HashPassword("same_password")

			gomega.Expect(err1).ToNot(gomega.HaveOccurred())
			gomega.Expect(err2).ToNot(gomega.HaveOccurred())
			gomega.Expect(hash1).ToNot(gomega.Equal(hash2)) // Salts make them different
		})
	})
})

var _ = ginkgo.Describe("JWTTokenGenerator", func() {
	var (
		tokenGen *JWTTokenGenerator
		user     *User
		secret   string = "another-test-secret-key-32-chars!!"
	)

	ginkgo.BeforeEach(func() {
		tokenGen = NewJWTTokenGenerator(secret, 8*time.Hour)
		user = &User{Email: "consultant@example.com", Role: RoleConsultant}
	})

	ginkgo.Describe("IssueToken", func() {
		ginkgo.It("should round-trip subject and role through verification", func() {
			token, err := tokenGen.IssueToken(user, tokenGen.AccessTokenTTL)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(token).ToNot(gomega.BeEmpty())

			claims, err := tokenGen.VerifyToken(token)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(claims.Subject).To(gomega.Equal("consultant@example.com"))
			gomega.Expect(claims.Role).To(gomega.Equal("consultant"))
			gomega.Expect(claims.ExpiresAt.Time).To(gomega.BeTemporally("~", time.Now().Add(8*time.Hour), time.Minute))
		})

		ginkgo.It("should default the generator TTL to 8 hours when unset", func() {
			gen := NewJWTTokenGenerator(secret, 0)
			gomega.Expect(gen.AccessTokenTTL).To(gomega.Equal(480 * time.Minute))
		})
	})

	ginkgo.Describe("VerifyToken", func() {
		ginkgo.Context("with an expired token", func() {
			ginkgo.It("should reject a token issued with a past expiry", func() {
				token, err := tokenGen.IssueToken(user, -time.Hour)
				gomega.Expect(err).ToNot(gomega.HaveOccurred())

				claims, err := tokenGen.VerifyToken(token)
				gomega.Expect(err).To(gomega.Equal(internal.ErrTokenExpired))
				gomega.Expect(claims).To(gomega.BeNil())
			})

			ginkgo.It("should reject a token issued with TTL zero", func() {
				token, err := tokenGen.IssueToken(user, 0)
				gomega.Expect(err).ToNot(gomega.HaveOccurred())

				time.Sleep(10 * time.Millisecond)

				claims, err := tokenGen.VerifyToken(token)
				gomega.Expect(err).To(gomega.Equal(internal.ErrTokenExpired))
				gomega.Expect(claims).To(gomega.BeNil())
			})
		})

		ginkgo.Context("with an invalid token", func() {
			ginkgo.It("should return error for malformed token", func() {
				claims, err := tokenGen.VerifyToken("invalid.token.here")

				gomega.Expect(err).To(gomega.Equal(internal.ErrInvalidToken))
				gomega.Expect(claims).To(gomega.BeNil())
			})

			ginkgo.It("should return error for empty token", func() {
				claims, err := tokenGen.VerifyToken("")

				gomega.Expect(err).To(gomega.HaveOccurred())
				gomega.Expect(claims).To(gomega.BeNil())
			})

			ginkgo.It("should reject a token signed with a different secret", func() {
				otherGen := NewJWTTokenGenerator("a-completely-different-secret-key!!", 8*time.Hour)
				token, err := otherGen.IssueToken(user, time.Hour)
				gomega.Expect(err).ToNot(gomega.HaveOccurred())

				claims, err := tokenGen.VerifyToken(token)
				gomega.Expect(err).To(gomega.Equal(internal.ErrInvalidToken))
				gomega.Expect(claims).To(gomega.BeNil())
			})

			ginkgo.It("should reject a token without a subject", func() {
				token, err := tokenGen.IssueToken(&User{Email: "", Role: RoleViewer}, time.Hour)
				gomega.Expect(err).ToNot(gomega.HaveOccurred())

				claims, err := tokenGen.VerifyToken(token)
				gomega.Expect(err).To(gomega.Equal(internal.ErrInvalidToken))
				gomega.Expect(claims).To(gomega.BeNil())
			})

			ginkgo.It("should reject a token carrying an unknown role", func() {
				token, err := tokenGen.IssueToken(&User{Email: "x@example.com", Role: Role("superuser")}, time.Hour)
				gomega.Expect(err).ToNot(gomega.HaveOccurred())

				claims, err := tokenGen.VerifyToken(token)
				gomega.Expect(err).To(gomega.Equal(internal.ErrInvalidToken))
				gomega.Expect(claims).To(gomega.BeNil())
			})
		})
	})
})
