// Package httptransport implements tusclient.Transport over HTTP.
package httptransport

import (
	"context"
	"fmt"
	"net/url"

	"github.com/bdragon300/tusclient"
	"github.com/imroc/req/v3"
)

const userAgent = "tusclient"

// Transport sends tus requests over HTTP. Request locations are resolved against BaseURL, so they may be both
// absolute URLs and paths, as servers return them in Location header.
type Transport struct {
	BaseURL *url.URL

	client *req.Client
}

// New returns a Transport using client. If client is nil, a new req.Client without retries is used: the tus
// engine expects every exchange to happen exactly once.
func New(baseURL *url.URL, client *req.Client) *Transport {
	if baseURL == nil {
		panic("baseURL is nil")
	}
	if client == nil {
		client = req.C().SetUserAgent(userAgent)
	}
	return &Transport{BaseURL: baseURL, client: client}
}

// NewFromString is New with base URL given as a string
func NewFromString(baseURL string, client *req.Client) (*Transport, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url %q: %w", baseURL, err)
	}
	return New(u, client), nil
}

func (t *Transport) RoundTrip(ctx context.Context, r *tusclient.Request) (*tusclient.Response, error) {
	loc, err := url.Parse(r.Location)
	if err != nil {
		return nil, fmt.Errorf("parse location %q: %w", r.Location, err)
	}
	u := t.BaseURL.ResolveReference(loc).String()

	request := t.client.R().SetContext(ctx)
	for k, v := range r.Header {
		request.SetHeader(k, v)
	}
	if r.Body != nil {
		request.SetBodyBytes(r.Body)
	}

	resp, err := request.Send(r.Method.String(), u)
	if err != nil {
		return nil, err
	}

	h := tusclient.Header{}
	for k, values := range resp.Header {
		if len(values) > 0 {
			h.Set(k, values[0])
		}
	}
	return &tusclient.Response{StatusCode: resp.StatusCode, Header: h}, nil
}
