// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package guistate

import (
	"github.com/juju/collections/set"
)

// Branch names one of the top level parts of a State.
type Branch string

const (
	BranchRoot   Branch = "root"
	BranchSearch Branch = "search"
	BranchUser   Branch = "user"
	BranchGUI    Branch = "gui"
)

const (
	// SearchDelimiter introduces a search path: /q/<terms>.
	SearchDelimiter = "q"

	// UserDelimiter introduces a user path: /u/<user>[/<profile or path>].
	UserDelimiter = "u"

	// GUIDelimiter introduces the GUI section grammar: /i/<section>/...
	GUIDelimiter = "i"
)

// The GUI section markers recognised after the GUI delimiter, in the order
// they are written when a state is serialized.
const (
	SectionInspector    = "inspector"
	SectionMachines     = "machines"
	SectionApplications = "applications"
	SectionDeploy       = "deploy"
)

var (
	delimiters = map[string]Branch{
		SearchDelimiter: BranchSearch,
		UserDelimiter:   BranchUser,
		GUIDelimiter:    BranchGUI,
	}

	rootReserved = set.NewStrings(
		"about",
		"bigdata",
		"docs",
		"juju",
		"login",
		"logout",
		"new",
		"store",
	)

	profileReserved = set.NewStrings(
		"charms",
		"issues",
		"revenue",
		"settings",
	)

	guiSections = []string{
		SectionInspector,
		SectionMachines,
		SectionApplications,
		SectionDeploy,
	}
	guiMarkers = set.NewStrings(guiSections...)
)

// BranchForDelimiter returns the branch selected by the given prefix token.
func BranchForDelimiter(token string) (Branch, bool) {
	b, ok := delimiters[token]
	return b, ok
}

// IsRootReserved reports whether word selects a root state when it is the
// first segment of a path.
func IsRootReserved(word string) bool {
	return rootReserved.Contains(word)
}

// IsProfileReserved reports whether word selects a profile sub-view when it
// follows the user name in a user path.
func IsProfileReserved(word string) bool {
	return profileReserved.Contains(word)
}

// IsGUISection reports whether word is a GUI section marker.
func IsGUISection(word string) bool {
	return guiMarkers.Contains(word)
}

// RootReserved returns the sorted root keywords.
func RootReserved() []string {
	return rootReserved.SortedValues()
}

// ProfileReserved returns the sorted profile keywords.
func ProfileReserved() []string {
	return profileReserved.SortedValues()
}

// GUISections returns the GUI section markers in serialization order.
func GUISections() []string {
	return append([]string(nil), guiSections...)
}
