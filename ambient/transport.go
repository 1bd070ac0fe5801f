package ambient

import (
	"context"
	"net/http"
)

// Transport is an http.RoundTripper that attaches the ambient context
// to outbound requests that were not given one, so a request issued
// inside a timed attempt is cancelled when the attempt times out
// without the caller threading the context through.
//
// Requests that already carry a real context are passed through
// untouched.
type Transport struct {
	// Base performs the actual round trip.
	// Default: http.DefaultTransport
	Base http.RoundTripper
}

// RoundTrip implements http.RoundTripper.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}
	return base.RoundTrip(Attach(req))
}

// Attach returns req bound to the ambient context when req carries
// only the background context. Requests with an explicit context are
// returned unchanged.
func Attach(req *http.Request) *http.Request {
	if req.Context() != context.Background() {
		return req
	}
	ctx := Active()
	if ctx == context.Background() {
		return req
	}
	return req.WithContext(ctx)
}

// Client returns an http.Client whose transport attaches the ambient
// context to outbound requests.
func Client() *http.Client {
	return &http.Client{Transport: &Transport{}}
}
