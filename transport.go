package tusclient

import (
	"context"
	"net/http"
	"strings"
)

// Method is a kind of request the protocol uses.
type Method uint8

const (
	MethodHead Method = iota
	MethodOptions
	MethodPost
	MethodPatch
	MethodDelete
)

// String returns the HTTP verb of the method.
func (m Method) String() string {
	switch m {
	case MethodHead:
		return http.MethodHead
	case MethodOptions:
		return http.MethodOptions
	case MethodPost:
		return http.MethodPost
	case MethodPatch:
		return http.MethodPatch
	case MethodDelete:
		return http.MethodDelete
	}
	return "UNKNOWN"
}

// Header is a header mapping with case-insensitive keys. Keys are stored lowercased.
type Header map[string]string

func (h Header) Get(key string) string {
	return h[strings.ToLower(key)]
}

func (h Header) Set(key, value string) {
	h[strings.ToLower(key)] = value
}

func (h Header) Has(key string) bool {
	_, ok := h[strings.ToLower(key)]
	return ok
}

// Request is a single protocol request passed to Transport.
//
// Body is borrowed for the duration of one RoundTrip call, Transport must not retain it after return.
type Request struct {
	Method   Method
	Location string
	Header   Header
	Body     []byte
}

// Response is what Transport returns for a Request. Body is not needed by the protocol and is not exposed.
type Response struct {
	StatusCode int
	Header     Header
}

// Transport performs one request/response exchange with the server. The error is returned only when
// no response was received; any HTTP status is a valid Response.
type Transport interface {
	RoundTrip(ctx context.Context, req *Request) (*Response, error)
}

// TransportFunc is an adapter to use an ordinary function as Transport.
type TransportFunc func(ctx context.Context, req *Request) (*Response, error)

func (f TransportFunc) RoundTrip(ctx context.Context, req *Request) (*Response, error) {
	return f(ctx, req)
}
