package main_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestCapabilitiesManagement(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "CapabilitiesManagement Suite")
}
