package capability

import (
	"log/slog"
	"os"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"github.com/slalom/capabilities-management/internal"
	"github.com/slalom/capabilities-management/internal/auth"
)

var _ = ginkgo.Describe("Service", func() {
	var (
		registry *Registry
		service  *Service

		partner    = &auth.User{Email: "partner@slalom.com", Role: auth.RolePartner}
		manager    = &auth.User{Email: "manager@slalom.com", Role: auth.RoleSeniorManager}
		consultant = &auth.User{Email: "consultant@slalom.com", Role: auth.RoleConsultant}
		viewer     = &auth.User{Email: "viewer@slalom.com", Role: auth.RoleViewer}
	)

	ginkgo.BeforeEach(func() {
		registry = NewRegistry(SeedCapabilities())
		authorizer := auth.NewAuthorizer(auth.NewRolePermissionMatrix())
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = NewService(registry, authorizer, logger)
	})

	ginkgo.Describe("RegisterConsultant", func() {
		ginkgo.It("should let a consultant register themselves exactly once", func() {
			err := service.RegisterConsultant(consultant, "Cloud Architecture", consultant.Email)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			err = service.RegisterConsultant(consultant, "Cloud Architecture", consultant.Email)
			gomega.Expect(err).To(gomega.Equal(internal.ErrAlreadyRegistered))
		})

		ginkgo.It("should deny a consultant registering someone else even for an existing capability", func() {
			err := service.RegisterConsultant(consultant, "Cloud Architecture", "other@slalom.com")
			gomega.Expect(err).To(gomega.Equal(internal.ErrSelfOnly))
		})

		ginkgo.It("should report an unknown capability before authorization", func() {
			err := service.RegisterConsultant(viewer, "Quantum Computing", "other@slalom.com")
			gomega.Expect(err).To(gomega.Equal(internal.ErrCapabilityNotFound))
		})

		ginkgo.It("should let a senior manager register anyone", func() {
			err := service.RegisterConsultant(manager, "Data Analytics", "new.hire@slalom.com")
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			c, err := registry.Get("Data Analytics")
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(c.Consultants).To(gomega.ContainElement("new.hire@slalom.com"))
		})

		ginkgo.It("should deny a viewer and leave the roster untouched", func() {
			before, _ := registry.Get("Data Analytics")

			err := service.RegisterConsultant(viewer, "Data Analytics", "other@slalom.com")
			gomega.Expect(err).To(gomega.Equal(internal.ErrInsufficientPermission))

			after, _ := registry.Get("Data Analytics")
			gomega.Expect(after.Consultants).To(gomega.Equal(before.Consultants))
		})
	})

	ginkgo.Describe("UnregisterConsultant", func() {
		ginkgo.It("should let a partner remove any consultant", func() {
			err := service.UnregisterConsultant(partner, "Cloud Architecture", "alice.smith@slalom.com")
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
		})

		ginkgo.It("should deny a senior manager even for their own email", func() {
			gomega.Expect(service.RegisterConsultant(manager, "Cloud Architecture", manager.Email)).To(gomega.Succeed())

			err := service.UnregisterConsultant(manager, "Cloud Architecture", manager.Email)
			gomega.Expect(err).To(gomega.Equal(internal.ErrCannotUnregister))
		})

		ginkgo.It("should return the authorization failure before checking capability existence", func() {
			err := service.UnregisterConsultant(consultant, "Quantum Computing", consultant.Email)
			gomega.Expect(err).To(gomega.Equal(internal.ErrCannotUnregister))
		})

		ginkgo.It("should report removing a non-member", func() {
			err := service.UnregisterConsultant(partner, "Cloud Architecture", "stranger@slalom.com")
			gomega.Expect(err).To(gomega.Equal(internal.ErrNotRegistered))
		})
	})
})
