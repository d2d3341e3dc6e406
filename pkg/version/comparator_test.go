package version_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	srvErrors "github.com/yukihiko-shinoda/staticpress-e2e/pkg/errors"
	"github.com/yukihiko-shinoda/staticpress-e2e/pkg/version"
)

var _ = Describe("Compare", func() {
	// Given two version strings from different release lines
	// When we compare them in both directions
	// Then the results are inverse of each other
	It("should be inverse under argument swap", func() {
		pairs := [][2]string{
			{"5.0.0", "4.6"},
			{"4.6", "4.6.0"},
			{"6.8.3", "6.8.30"},
			{"10", "9"},
			{"1.2.3", "1.2.3"},
		}
		for _, p := range pairs {
			forward, err := version.Compare(p[0], p[1])
			Expect(err).NotTo(HaveOccurred())
			backward, err := version.Compare(p[1], p[0])
			Expect(err).NotTo(HaveOccurred())
			Expect(forward).To(Equal(-backward))
		}
	})

	It("should order across component boundaries", func() {
		rel, err := version.Compare("5.0.0", "4.6")
		Expect(err).NotTo(HaveOccurred())
		Expect(rel).To(Equal(version.Greater))
	})

	// Given a shorter version string
	// When the missing components are zero-padded
	// Then "4.6" equals "4.6.0"
	It("should zero-pad shorter versions", func() {
		rel, err := version.Compare("4.6", "4.6.0")
		Expect(err).NotTo(HaveOccurred())
		Expect(rel).To(Equal(version.Equal))
	})

	It("should compare components as integers, not strings", func() {
		rel, err := version.Compare("6.8.3", "6.8.30")
		Expect(err).NotTo(HaveOccurred())
		Expect(rel).To(Equal(version.Less))

		rel, err = version.Compare("10", "9")
		Expect(err).NotTo(HaveOccurred())
		Expect(rel).To(Equal(version.Greater))
	})

	It("should ignore leading zeros", func() {
		rel, err := version.Compare("4.06", "4.6")
		Expect(err).NotTo(HaveOccurred())
		Expect(rel).To(Equal(version.Equal))
	})

	It("should coerce non-numeric components to zero", func() {
		rel, err := version.Compare("5.0-beta", "5.0.0")
		Expect(err).NotTo(HaveOccurred())
		// "0-beta" coerces to 0, so both sides read 5.0.0
		Expect(rel).To(Equal(version.Equal))
	})

	It("should reject empty inputs", func() {
		_, err := version.Compare("", "5.0.0")
		Expect(err).To(HaveOccurred())
		Expect(srvErrors.IsInvalidVersionFormatError(err)).To(BeTrue())

		_, err = version.Compare("5.0.0", "")
		Expect(err).To(HaveOccurred())
		Expect(srvErrors.IsInvalidVersionFormatError(err)).To(BeTrue())
	})
})

var _ = Describe("AtLeast", func() {
	It("should report whether a version meets a minimum", func() {
		ok, err := version.AtLeast("5.4.2", "5.0.0")
		Expect(err).NotTo(HaveOccurred())
		Expect(ok).To(BeTrue())

		ok, err = version.AtLeast("4.3", "5.0.0")
		Expect(err).NotTo(HaveOccurred())
		Expect(ok).To(BeFalse())

		ok, err = version.AtLeast("5.0", "5.0.0")
		Expect(err).NotTo(HaveOccurred())
		Expect(ok).To(BeTrue())
	})
})
