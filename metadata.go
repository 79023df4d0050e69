package tusclient

import (
	"encoding/base64"
	"sort"
	"strings"
)

// EncodeMetadata serializes metadata into Upload-Metadata header value. Pairs are joined as "key:value" separated
// by ";", and the whole string is base64-encoded once. Keys go in sorted order.
func EncodeMetadata(metadata map[string]string) (string, error) {
	keys := make([]string, 0, len(metadata))
	for k, v := range metadata {
		switch {
		case k == "":
			return "", &ConfigError{Param: "metadata", Reason: "empty key"}
		case strings.ContainsAny(k, ":;"):
			return "", &ConfigError{Param: "metadata", Reason: "key " + quote(k) + " contains ':' or ';'"}
		case strings.ContainsAny(v, ":;"):
			return "", &ConfigError{Param: "metadata", Reason: "value of key " + quote(k) + " contains ':' or ';'"}
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, len(keys))
	for i, k := range keys {
		pairs[i] = k + ":" + metadata[k]
	}
	return base64.StdEncoding.EncodeToString([]byte(strings.Join(pairs, ";"))), nil
}

// DecodeMetadata parses Upload-Metadata header value. Only a broken base64 is an error: segments without ":"
// (e.g. truncated trailing fragment) are skipped, the rest is returned.
func DecodeMetadata(raw string) (map[string]string, error) {
	data, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return nil, &ParseError{Context: "Upload-Metadata base64 value", Err: err}
	}

	res := make(map[string]string)
	for _, seg := range strings.Split(string(data), ";") {
		k, v, ok := strings.Cut(seg, ":")
		if !ok {
			continue
		}
		res[k] = v
	}
	return res, nil
}

func quote(s string) string {
	return "'" + s + "'"
}
