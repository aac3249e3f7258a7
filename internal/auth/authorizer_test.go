package auth

import (
	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"github.com/slalom/capabilities-management/internal"
)

var _ = ginkgo.Describe("Authorizer", func() {
	var authorizer *Authorizer

	ginkgo.BeforeEach(func() {
		authorizer = NewAuthorizer(NewRolePermissionMatrix())
	})

	ginkgo.Describe("HasPermission", func() {
		// Hard-coded fixture of the full matrix; any drift in the real matrix
		// must show up here.
		expected := map[Role]map[Permission]bool{
			RolePartner: {
				PermReadCapabilities:       true,
				PermWriteRegistrations:     true,
				PermWriteAllRegistrations:  true,
				PermDeleteAllRegistrations: true,
			},
			RoleManagingDirector: {
				PermReadCapabilities:       true,
				PermWriteRegistrations:     true,
				PermWriteAllRegistrations:  true,
				PermDeleteAllRegistrations: true,
			},
			RoleSeniorManager: {
				PermReadCapabilities:       true,
				PermWriteRegistrations:     true,
				PermWriteAllRegistrations:  true,
				PermDeleteAllRegistrations: false,
			},
			RoleConsultant: {
				PermReadCapabilities:       true,
				PermWriteRegistrations:     true,
				PermWriteAllRegistrations:  false,
				PermDeleteAllRegistrations: false,
			},
			RoleViewer: {
				PermReadCapabilities:       true,
				PermWriteRegistrations:     false,
				PermWriteAllRegistrations:  false,
				PermDeleteAllRegistrations: false,
			},
		}

		ginkgo.It("should match the fixture for every role and permission", func() {
			for _, role := range RoleRanking {
				for _, perm := range AllPermissions() {
					got := authorizer.HasPermission(role, perm)
					gomega.Expect(got).To(gomega.Equal(expected[role][perm]),
						"role %s permission %s", role, perm)
				}
			}
		})

		ginkgo.It("should deny everything for an unknown role", func() {
			for _, perm := range AllPermissions() {
				gomega.Expect(authorizer.HasPermission(Role("intern"), perm)).To(gomega.BeFalse())
			}
		})
	})

	ginkgo.Describe("AuthorizeRegistration", func() {
		ginkgo.Context("when the actor is a Consultant", func() {
			actor := &User{Email: "consultant@slalom.com", Role: RoleConsultant}

			ginkgo.It("should allow registering their own email", func() {
				decision := authorizer.AuthorizeRegistration(actor, "consultant@slalom.com")
				gomega.Expect(decision.Allowed).To(gomega.BeTrue())
			})

			ginkgo.It("should deny registering anyone else with the self-only reason", func() {
				decision := authorizer.AuthorizeRegistration(actor, "other@slalom.com")
				gomega.Expect(decision.Allowed).To(gomega.BeFalse())
				gomega.Expect(decision.Reason).To(gomega.Equal(internal.ErrSelfOnly))
			})
		})

		ginkgo.Context("when the actor holds a write permission", func() {
			ginkgo.It("should allow a SeniorManager to register anyone", func() {
				actor := &User{Email: "manager@slalom.com", Role: RoleSeniorManager}
				decision := authorizer.AuthorizeRegistration(actor, "other@slalom.com")
				gomega.Expect(decision.Allowed).To(gomega.BeTrue())
			})

			// SeniorManager and above bypass the self-ownership branch
			// entirely; their own email is just another target.
			ginkgo.It("should allow a Partner to register themselves via the matrix", func() {
				actor := &User{Email: "partner@slalom.com", Role: RolePartner}
				decision := authorizer.AuthorizeRegistration(actor, "partner@slalom.com")
				gomega.Expect(decision.Allowed).To(gomega.BeTrue())
			})
		})

		ginkgo.Context("when the actor is a Viewer", func() {
			actor := &User{Email: "viewer@slalom.com", Role: RoleViewer}

			ginkgo.It("should deny registering another email", func() {
				decision := authorizer.AuthorizeRegistration(actor, "other@slalom.com")
				gomega.Expect(decision.Allowed).To(gomega.BeFalse())
				gomega.Expect(decision.Reason).To(gomega.Equal(internal.ErrInsufficientPermission))
			})

			ginkgo.It("should deny registering even their own email", func() {
				decision := authorizer.AuthorizeRegistration(actor, "viewer@slalom.com")
				gomega.Expect(decision.Allowed).To(gomega.BeFalse())
				gomega.Expect(decision.Reason).To(gomega.Equal(internal.ErrInsufficientPermission))
			})
		})
	})

	ginkgo.Describe("AuthorizeUnregistration", func() {
		ginkgo.It("should allow Partner and ManagingDirector", func() {
			for _, role := range []Role{RolePartner, RoleManagingDirector} {
				actor := &User{Email: "actor@slalom.com", Role: role}
				decision := authorizer.AuthorizeUnregistration(actor)
				gomega.Expect(decision.Allowed).To(gomega.BeTrue(), "role %s", role)
			}
		})

		ginkgo.It("should deny SeniorManager, Consultant, and Viewer", func() {
			for _, role := range []Role{RoleSeniorManager, RoleConsultant, RoleViewer} {
				actor := &User{Email: "actor@slalom.com", Role: role}
				decision := authorizer.AuthorizeUnregistration(actor)
				gomega.Expect(decision.Allowed).To(gomega.BeFalse(), "role %s", role)
				gomega.Expect(decision.Reason).To(gomega.Equal(internal.ErrCannotUnregister))
			}
		})
	})
})

var _ = ginkgo.Describe("ParseRole", func() {
	ginkgo.It("should accept every role in the ranking", func() {
		for _, role := range RoleRanking {
			parsed, err := ParseRole(role.String())
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(parsed).To(gomega.Equal(role))
		}
	})

	ginkgo.It("should reject roles outside the enumeration", func() {
		_, err := ParseRole("admin")
		gomega.Expect(err).To(gomega.HaveOccurred())
	})
})
