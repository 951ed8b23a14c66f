// Package module composes HTTP surfaces as prefix-mounted units, each with
// its own router and middleware stack.
package module

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"braincheck/pkg/middleware"
)

// Module serves a single-level path prefix by stripping it and delegating
// to an inner handler wrapped with the module's middleware.
type Module struct {
	prefix     string
	inner      http.Handler
	middleware middleware.System
}

// New creates a Module for the given prefix (e.g. "/channel"). Panics on an
// empty, unrooted, or multi-level prefix.
func New(prefix string, inner http.Handler) *Module {
	if prefix == "" || !strings.HasPrefix(prefix, "/") {
		panic(fmt.Errorf("module prefix must start with /: %q", prefix))
	}
	if strings.Count(prefix, "/") != 1 {
		panic(fmt.Errorf("module prefix must be a single-level sub-path: %q", prefix))
	}
	return &Module{
		prefix:     prefix,
		inner:      inner,
		middleware: middleware.New(),
	}
}

// Prefix returns the module's mount prefix.
func (m *Module) Prefix() string {
	return m.prefix
}

// Use appends middleware to the module's stack.
func (m *Module) Use(mw func(http.Handler) http.Handler) {
	m.middleware.Use(mw)
}

// Serve strips the module prefix from the request path and dispatches to the
// wrapped inner handler.
func (m *Module) Serve(w http.ResponseWriter, req *http.Request) {
	path := strings.TrimPrefix(req.URL.Path, m.prefix)
	if path == "" {
		path = "/"
	}

	scoped := new(http.Request)
	*scoped = *req
	scoped.URL = new(url.URL)
	*scoped.URL = *req.URL
	scoped.URL.Path = path
	scoped.URL.RawPath = ""

	m.middleware.Apply(m.inner).ServeHTTP(w, scoped)
}
