package tusclient

import "github.com/bdragon300/tusclient/checksum"

// ServerInfo contains the capabilities the server announces in response to OPTIONS request
type ServerInfo struct {
	SupportedVersions  []string
	Extensions         []Extension
	MaxUploadSize      int64
	ChecksumAlgorithms []checksum.Algorithm
}

// HasExtension reports whether the server announced extension e
func (s ServerInfo) HasExtension(e Extension) bool {
	for _, ext := range s.Extensions {
		if ext == e {
			return true
		}
	}
	return false
}
