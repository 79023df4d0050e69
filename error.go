package tusclient

import (
	"errors"
	"fmt"
	"net/http"
)

// StatusChecksumMismatch is returned by the server when the Upload-Checksum of a chunk does not match its data.
const StatusChecksumMismatch = 460

var (
	ErrProtocol         = errors.New("tus protocol error")
	ErrNotFound         = errors.New("upload does not exist")
	ErrUnknownSize      = errors.New("upload size is unknown")
	ErrFileTooLarge     = errors.New("file is too large")
	ErrChecksumMismatch = errors.New("checksum mismatch")
)

// ServerError is returned when the server replies with a status code the operation does not expect.
type ServerError struct {
	StatusCode int
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("server returned unexpected HTTP %d code", e.StatusCode)
}

func (e *ServerError) Is(target error) bool {
	switch target {
	case ErrFileTooLarge:
		return e.StatusCode == http.StatusRequestEntityTooLarge
	case ErrChecksumMismatch:
		return e.StatusCode == StatusChecksumMismatch
	case ErrProtocol:
		// 2xx codes the operation did not ask for mean the server does not follow the protocol
		return e.StatusCode >= 200 && e.StatusCode < 300
	}
	return false
}

// ParseError means a header value could not be decoded.
type ParseError struct {
	Context string
	Err     error
}

func (e *ParseError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("cannot parse %s", e.Context)
	}
	return fmt.Sprintf("cannot parse %s: %s", e.Context, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

func (e *ParseError) Is(target error) bool { return target == ErrProtocol }

// OffsetMismatchError is returned when the server acknowledged an offset other than the one the client expected.
type OffsetMismatchError struct {
	Expected int64
	Actual   int64
}

func (e *OffsetMismatchError) Error() string {
	return fmt.Sprintf("client and server offsets are not synced: expected %d, server returned %d", e.Expected, e.Actual)
}

func (e *OffsetMismatchError) Is(target error) bool { return target == ErrProtocol }

// TransportError wraps a failure of the Transport itself, no response was received.
type TransportError struct {
	Method Method
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s request failed: %s", e.Method, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// IOError wraps a read or seek failure of the local stream.
type IOError struct {
	Op  string
	Err error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("local stream %s: %s", e.Op, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// ConfigError is an invalid parameter passed by the caller.
type ConfigError struct {
	Param  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Param, e.Reason)
}
