package checksum

import (
	"encoding/base64"
	"fmt"
)

// Header returns the Upload-Checksum header value for data: algorithm name and base64-encoded digest
// separated by a space.
func Header(algo Algorithm, data []byte) (string, error) {
	newHash, ok := Algorithms[algo]
	if !ok {
		return "", fmt.Errorf("unknown checksum algorithm %q", algo)
	}
	h := newHash()
	h.Write(data) // hash.Hash never returns an error
	return string(algo) + " " + base64.StdEncoding.EncodeToString(h.Sum(nil)), nil
}
