// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package guistate

import (
	"strings"
)

// SerializeState returns the URL for state under baseURL. It is the inverse
// of parsing for every state the URL grammar can produce. Only one branch is
// written, chosen as described by State.Branch. GUI sections are written in
// marker order; keys that are not section markers are not written.
func SerializeState(state State, baseURL string) string {
	base := strings.TrimRight(baseURL, "/")
	return base + "/" + strings.Join(pathSegments(state), "/")
}

func pathSegments(state State) []string {
	branch, ok := state.Branch()
	if !ok {
		return nil
	}
	switch branch {
	case BranchRoot:
		return []string{state.Root}
	case BranchUser:
		segments := []string{UserDelimiter, state.User.Name}
		if state.User.Profile != "" {
			return append(segments, state.User.Profile)
		}
		if state.User.Path != "" {
			return append(segments, state.User.Path)
		}
		return segments
	case BranchGUI:
		segments := []string{GUIDelimiter}
		for _, section := range guiSections {
			value, ok := state.GUI[section]
			if !ok {
				continue
			}
			segments = append(segments, section)
			if value != "" {
				segments = append(segments, value)
			}
		}
		return segments
	case BranchSearch:
		return []string{SearchDelimiter, state.Search}
	}
	return nil
}
