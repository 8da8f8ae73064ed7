// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

// Package guistate maps GUI URLs to application state and back.
//
// A path is read as one of four branches, selected by its first segment:
//
//	/<root keyword>                 {Root: keyword}
//	/q/<terms...>                   {Search: "terms/..."}
//	/u/<user>[/<profile|path...>]   {User: {...}}
//	/i/<section>/<sub-path...>...   {GUI: {section: "sub-path", ...}}
//
// Anything else maps to the empty State. Routing never fails: an unexpected
// URL degrades to the empty State rather than an error.
package guistate

import (
	"net/url"

	"github.com/juju/errors"
	"github.com/juju/loggo/v2"
)

var logger = loggo.GetLogger("juju.gui.guistate")

// Logger is the logging interface used by the router.
type Logger interface {
	Debugf(string, ...interface{})
}

// History is implemented by the collaborator that performs navigation.
type History interface {
	// Push records url as the current location.
	Push(url string) error
}

// Config holds the configuration of a Router.
type Config struct {
	// BaseURL is the scheme, host, port and optional path prefix under
	// which the GUI is served. It may be empty for relative URLs.
	BaseURL string

	// History is optional. When set, Navigate pushes URLs onto it.
	History History

	// Logger is optional.
	Logger Logger
}

// Validate ensures the config is usable.
func (c Config) Validate() error {
	if c.BaseURL == "" {
		return nil
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return errors.NotValidf("BaseURL %q", c.BaseURL)
	}
	if u.RawQuery != "" || u.Fragment != "" {
		return errors.NotValidf("BaseURL %q with query or fragment", c.BaseURL)
	}
	return nil
}

// Router converts between URLs and States for a fixed base URL.
type Router struct {
	baseURL string
	history History
	logger  Logger
}

// NewRouter returns a Router for the supplied config.
func NewRouter(config Config) (*Router, error) {
	if err := config.Validate(); err != nil {
		return nil, errors.Trace(err)
	}
	r := &Router{
		baseURL: config.BaseURL,
		history: config.History,
		logger:  config.Logger,
	}
	if r.logger == nil {
		r.logger = logger
	}
	return r, nil
}

// BaseURL returns the base URL the router was configured with.
func (r *Router) BaseURL() string {
	return r.baseURL
}

// SanitizeURL returns the GUI path of rawURL relative to the base URL.
func (r *Router) SanitizeURL(rawURL string) string {
	return SanitizeURL(rawURL, r.baseURL)
}

// BuildState parses rawURL into a State.
func (r *Router) BuildState(rawURL string) State {
	path := r.SanitizeURL(rawURL)
	state := ParsePath(path)
	if state.IsEmpty() && path != "" {
		r.logger.Debugf("no state for URL %q (path %q)", rawURL, path)
	}
	return state
}

// Serialize returns the URL for state under the base URL.
func (r *Router) Serialize(state State) string {
	return SerializeState(state, r.baseURL)
}

// Navigate serializes state and, if a History is configured, pushes the
// resulting URL onto it. The URL is returned in either case.
func (r *Router) Navigate(state State) (string, error) {
	target := r.Serialize(state)
	if r.history == nil {
		return target, nil
	}
	if err := r.history.Push(target); err != nil {
		return "", errors.Annotatef(err, "navigating to %q", target)
	}
	return target, nil
}
