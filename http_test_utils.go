package main

import (
	"io"
	"net/http"
	"strings"
)

// roundTripperFunc lets a test stub APIClient's transport with a closure.
type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

// newResponse builds a canned API response for a request captured by a
// roundTripperFunc.
func newResponse(status int, body string, headers map[string]string, req *http.Request) *http.Response {
	header := make(http.Header, len(headers))
	for name, value := range headers {
		header.Set(name, value)
	}
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     header,
		Request:    req,
	}
}

// clientForResponse answers every request with the same canned response.
func clientForResponse(status int, body string, headers map[string]string) *http.Client {
	return &http.Client{Transport: roundTripperFunc(func(r *http.Request) (*http.Response, error) {
		return newResponse(status, body, headers, r), nil
	})}
}
