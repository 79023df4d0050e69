package tusclient

import "strings"

// Extension is a protocol extension the server may support
type Extension uint8

const (
	ExtensionCreation Extension = iota + 1
	ExtensionCreationWithUpload
	ExtensionCreationDeferLength
	ExtensionExpiration
	ExtensionChecksum
	ExtensionChecksumTrailer
	ExtensionTermination
	ExtensionConcatenation
	ExtensionConcatenationUnfinished
)

var extensionTokens = map[string]Extension{
	"creation":                 ExtensionCreation,
	"creation-with-upload":     ExtensionCreationWithUpload,
	"creation-defer-length":    ExtensionCreationDeferLength,
	"expiration":               ExtensionExpiration,
	"checksum":                 ExtensionChecksum,
	"checksum-trailer":         ExtensionChecksumTrailer,
	"termination":              ExtensionTermination,
	"concatenation":            ExtensionConcatenation,
	"concatenation-unfinished": ExtensionConcatenationUnfinished,
}

// String returns the token the extension has in Tus-Extension header
var extensionNames = make(map[Extension]string, len(extensionTokens))

func init() {
	for token, e := range extensionTokens {
		extensionNames[e] = token
	}
}

func (e Extension) String() string {
	if token, ok := extensionNames[e]; ok {
		return token
	}
	return "unknown"
}

// ParseExtensions parses a comma-separated Tus-Extension value. Extensions are returned in order they appear,
// duplicates are kept. Unknown tokens are dropped.
func ParseExtensions(s string) []Extension {
	var res []Extension
	for _, tok := range strings.Split(s, ",") {
		if e, ok := extensionTokens[strings.TrimSpace(tok)]; ok {
			res = append(res, e)
		}
	}
	return res
}

func splitList(s string) []string {
	var res []string
	for _, tok := range strings.Split(s, ",") {
		if tok = strings.TrimSpace(tok); tok != "" {
			res = append(res, tok)
		}
	}
	return res
}
