// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package guistate

import (
	"net/url"
	"strings"

	"github.com/juju/names/v5"
)

// SanitizeURL strips baseURL, any query or fragment, and leading and trailing
// slashes from rawURL, leaving the relative GUI path. If baseURL does not
// prefix rawURL, the path of rawURL is used instead, less the path prefix of
// baseURL, so that proxies and rewritten ports are tolerated. It never fails;
// the result is a best effort.
func SanitizeURL(rawURL, baseURL string) string {
	path, matched := trimBase(rawURL, baseURL)
	if !matched {
		path = rawURL
		if u, err := url.Parse(rawURL); err == nil && u.Host != "" {
			path = u.EscapedPath()
		}
	}
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	if !matched {
		path = trimBasePath(path, baseURL)
	}
	return strings.Trim(path, "/")
}

// trimBasePath removes the path prefix of baseURL from path, matching whole
// segments only.
func trimBasePath(path, baseURL string) string {
	u, err := url.Parse(baseURL)
	if err != nil {
		return path
	}
	prefix := strings.Trim(u.EscapedPath(), "/")
	if prefix == "" {
		return path
	}
	rest := strings.TrimLeft(path, "/")
	if rest == prefix {
		return ""
	}
	if strings.HasPrefix(rest, prefix+"/") {
		return rest[len(prefix):]
	}
	return path
}

// trimBase removes base from the front of rawURL, only matching on a whole
// path boundary so that "http://x.com" does not prefix "http://x.company".
func trimBase(rawURL, base string) (string, bool) {
	base = strings.TrimRight(base, "/")
	if base == "" || !strings.HasPrefix(rawURL, base) {
		return "", false
	}
	rest := rawURL[len(base):]
	if rest != "" && !strings.ContainsRune("/?#", rune(rest[0])) {
		return "", false
	}
	return rest, true
}

// ParsePath parses a sanitized GUI path into a State. Unrecognised paths
// result in the empty State; ParsePath never fails.
func ParsePath(path string) State {
	segments := splitSegments(path)
	if len(segments) == 0 {
		return State{}
	}
	head, rest := segments[0], segments[1:]

	// Root states are terminal: anything after the keyword is ignored.
	if IsRootReserved(head) {
		return State{Root: head}
	}

	branch, ok := BranchForDelimiter(head)
	if !ok {
		return State{}
	}
	switch branch {
	case BranchSearch:
		if len(rest) == 0 {
			return State{}
		}
		return State{Search: strings.Join(rest, "/")}
	case BranchUser:
		user, ok := parseUser(rest)
		if !ok {
			return State{}
		}
		return State{User: user}
	case BranchGUI:
		return State{GUI: ParseGUI(rest)}
	}
	return State{}
}

// ParseGUI parses the segments following the GUI delimiter. Each section
// marker takes every following segment up to the next marker as its
// sub-path. A repeated marker overwrites the earlier value. Segments before
// the first marker are ignored. The result is never nil.
func ParseGUI(segments []string) map[string]string {
	gui := make(map[string]string)
	var (
		section string
		parts   []string
	)
	flush := func() {
		if section != "" {
			gui[section] = strings.Join(parts, "/")
		}
	}
	for _, segment := range segments {
		if segment == "" {
			continue
		}
		if IsGUISection(segment) {
			flush()
			section, parts = segment, nil
			continue
		}
		if section == "" {
			continue
		}
		parts = append(parts, segment)
	}
	flush()
	return gui
}

func parseUser(segments []string) (*UserState, bool) {
	if len(segments) == 0 || !names.IsValidUser(segments[0]) {
		return nil, false
	}
	user := &UserState{Name: segments[0]}
	rest := segments[1:]
	switch {
	case len(rest) == 0:
	case IsProfileReserved(rest[0]):
		user.Profile = strings.Join(rest, "/")
	default:
		user.Path = strings.Join(rest, "/")
	}
	return user, true
}

// splitSegments splits path on slashes, dropping the empty segments left by
// repeated slashes.
func splitSegments(path string) []string {
	var segments []string
	for _, segment := range strings.Split(path, "/") {
		if segment != "" {
			segments = append(segments, segment)
		}
	}
	return segments
}
