package sentinel_test

import (
	"testing"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

func TestSentinel(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Sentinel Suite")
}
