package tusclient

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("ParseExtensions", func() {
	It("should trim tokens and keep order", func() {
		Ω(ParseExtensions("creation, termination")).Should(Equal([]Extension{ExtensionCreation, ExtensionTermination}))
	})
	It("should keep duplicates", func() {
		Ω(ParseExtensions("checksum,checksum")).Should(Equal([]Extension{ExtensionChecksum, ExtensionChecksum}))
	})
	It("should drop unknown tokens", func() {
		Ω(ParseExtensions("creation,foo-bar,  expiration ,")).Should(Equal([]Extension{ExtensionCreation, ExtensionExpiration}))
	})
	It("should return nothing for empty value", func() {
		Ω(ParseExtensions("")).Should(BeEmpty())
	})
	It("should parse every known token", func() {
		Ω(ParseExtensions("creation,creation-with-upload,creation-defer-length,expiration,checksum,checksum-trailer," +
			"termination,concatenation,concatenation-unfinished")).Should(Equal([]Extension{
			ExtensionCreation, ExtensionCreationWithUpload, ExtensionCreationDeferLength, ExtensionExpiration,
			ExtensionChecksum, ExtensionChecksumTrailer, ExtensionTermination, ExtensionConcatenation,
			ExtensionConcatenationUnfinished,
		}))
	})
	Specify("String should return wire token", func() {
		Ω(ExtensionCreationDeferLength.String()).Should(Equal("creation-defer-length"))
		Ω(Extension(0).String()).Should(Equal("unknown"))
	})
	Specify("String should give back every parsed token", func() {
		for token, e := range extensionTokens {
			Ω(e.String()).Should(Equal(token))
			Ω(ParseExtensions(e.String())).Should(Equal([]Extension{e}))
		}
	})
})
