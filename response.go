package tusclient

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/bdragon300/tusclient/checksum"
)

// isMissing reports whether the status means that the upload is absent or not accessible anymore
func isMissing(status int) bool {
	switch status {
	case http.StatusNotFound, http.StatusGone, http.StatusForbidden:
		return true
	}
	return false
}

func parseUploadInfo(resp *Response) (info UploadInfo, err error) {
	switch resp.StatusCode {
	case http.StatusOK, http.StatusNoContent:
	default:
		// Any error status collapses to "not found" for inspection
		return UploadInfo{}, ErrNotFound
	}

	info.TotalSize = SizeUnknown
	if v := resp.Header.Get("Upload-Length"); v != "" {
		if info.TotalSize, err = parseSize("Upload-Length", v); err != nil {
			return UploadInfo{}, err
		}
	}
	if info.BytesUploaded, err = parseSize("Upload-Offset", resp.Header.Get("Upload-Offset")); err != nil {
		return UploadInfo{}, err
	}
	if info.TotalSize != SizeUnknown && info.BytesUploaded > info.TotalSize {
		return UploadInfo{}, &ParseError{
			Context: "Upload-Offset",
			Err:     fmt.Errorf("offset %d exceeds upload length %d", info.BytesUploaded, info.TotalSize),
		}
	}
	if resp.Header.Has("Upload-Metadata") {
		if info.Metadata, err = DecodeMetadata(resp.Header.Get("Upload-Metadata")); err != nil {
			return UploadInfo{}, err
		}
	}
	if v := resp.Header.Get("Upload-Expires"); v != "" {
		var t time.Time
		if t, err = http.ParseTime(v); err != nil {
			return UploadInfo{}, &ParseError{Context: "Upload-Expires " + quote(v), Err: err}
		}
		info.Expires = &t
	}
	return
}

func parseServerInfo(resp *Response) (info ServerInfo, err error) {
	switch resp.StatusCode {
	case http.StatusOK, http.StatusNoContent:
	default:
		return ServerInfo{}, &ServerError{StatusCode: resp.StatusCode}
	}

	info.SupportedVersions = splitList(resp.Header.Get("Tus-Version"))
	info.Extensions = ParseExtensions(resp.Header.Get("Tus-Extension"))
	info.MaxUploadSize = SizeUnknown
	if v := resp.Header.Get("Tus-Max-Size"); v != "" {
		if info.MaxUploadSize, err = parseSize("Tus-Max-Size", v); err != nil {
			return ServerInfo{}, err
		}
	}
	for _, name := range splitList(resp.Header.Get("Tus-Checksum-Algorithm")) {
		if algo, ok := checksum.GetAlgorithm(name); ok {
			info.ChecksumAlgorithms = append(info.ChecksumAlgorithms, algo)
		}
	}
	return
}

func parseCreated(resp *Response) (string, error) {
	if resp.StatusCode != http.StatusCreated {
		return "", &ServerError{StatusCode: resp.StatusCode}
	}
	loc := resp.Header.Get("Location")
	if loc == "" {
		return "", &ParseError{Context: "Location", Err: fmt.Errorf("header is missing in %d response", resp.StatusCode)}
	}
	return loc, nil
}

func parseTransferred(resp *Response) (int64, error) {
	switch {
	case resp.StatusCode == http.StatusNoContent:
		return parseSize("Upload-Offset", resp.Header.Get("Upload-Offset"))
	case isMissing(resp.StatusCode):
		return 0, ErrNotFound
	}
	return 0, &ServerError{StatusCode: resp.StatusCode}
}

func parseDeleted(resp *Response) error {
	switch {
	case resp.StatusCode == http.StatusNoContent:
		return nil
	case isMissing(resp.StatusCode):
		return ErrNotFound
	}
	return &ServerError{StatusCode: resp.StatusCode}
}

// parseSize parses a decimal unsigned integer header value that must fit in int64
func parseSize(name, value string) (int64, error) {
	if value == "" {
		return 0, &ParseError{Context: name, Err: fmt.Errorf("header is missing")}
	}
	n, err := strconv.ParseUint(value, 10, 63)
	if err != nil {
		return 0, &ParseError{Context: name + " integer value " + quote(value), Err: err}
	}
	return int64(n), nil
}
