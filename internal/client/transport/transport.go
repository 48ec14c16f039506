// Package transport implements the client's authenticated request pipeline:
// a RoundTripper that attaches the session's bearer token to every outbound
// call and enforces the reauthentication contract on 401 responses.
package transport

import (
	"net/http"
	"strings"
)

// loginPath identifies the one endpoint whose 401 must not clear the
// session, so wrong credentials don't loop the user back to login forever.
const loginPath = "/auth/login"

// SessionStore is the minimal session surface the pipeline needs.
type SessionStore interface {
	Token() string
	ClearToken() error
}

// Transport decorates a base RoundTripper with bearer-credential injection
// and centralized handling of authorization failures. Every response passes
// through the same check; only status code and request path are inspected.
type Transport struct {
	// Base performs the actual HTTP exchange. Defaults to http.DefaultTransport.
	Base http.RoundTripper
	// Session supplies the current token and absorbs forced logouts.
	Session SessionStore
	// OnUnauthorized is invoked after the token has been cleared on an
	// authorization failure, so the UI can force navigation to the login
	// screen. May be nil.
	OnUnauthorized func()
}

// NewClient returns an http.Client whose requests flow through the pipeline.
func NewClient(session SessionStore, onUnauthorized func()) *http.Client {
	return &http.Client{
		Transport: &Transport{Session: session, OnUnauthorized: onUnauthorized},
	}
}

// RoundTrip attaches the bearer token when one is present, performs the
// exchange, and on a 401 from any endpoint other than login clears the
// session token and fires OnUnauthorized before handing the response back
// to the caller unchanged.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())
	if token := t.Session.Token(); token != "" {
		clone.Header.Set("Authorization", "Bearer "+token)
	}

	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}
	resp, err := base.RoundTrip(clone)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized && !strings.HasSuffix(req.URL.Path, loginPath) {
		_ = t.Session.ClearToken()
		if t.OnUnauthorized != nil {
			t.OnUnauthorized()
		}
	}
	return resp, nil
}
