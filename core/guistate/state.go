// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package guistate

// State is the structured form of a GUI URL. At most one of Root, User, GUI
// and Search is expected to be populated; the zero State means no state was
// recognised and the default view should be shown.
type State struct {
	// Root holds a reserved keyword for a full page view such as "login"
	// or "store".
	Root string `yaml:"root,omitempty" json:"root,omitempty"`

	// Search holds the slash joined search terms.
	Search string `yaml:"search,omitempty" json:"search,omitempty"`

	// User holds the user profile state.
	User *UserState `yaml:"user,omitempty" json:"user,omitempty"`

	// GUI maps section markers to their sub-paths. A section with an empty
	// sub-path is active with no further detail. A non-nil empty map means
	// the GUI branch is active with no section; it is omitted when encoded,
	// so keep the branch alongside to tell it from the empty State.
	GUI map[string]string `yaml:"gui,omitempty" json:"gui,omitempty"`
}

// UserState describes the /u/ branch of a URL.
type UserState struct {
	// Name is the user name.
	Name string `yaml:"name" json:"name"`

	// Profile is set when the segment after the user name is a reserved
	// profile keyword. Any further segments are kept in it, slash joined.
	Profile string `yaml:"profile,omitempty" json:"profile,omitempty"`

	// Path holds the raw segments after the user name when they do not
	// select a profile view.
	Path string `yaml:"path,omitempty" json:"path,omitempty"`
}

// IsEmpty reports whether no branch of the state is populated.
func (s State) IsEmpty() bool {
	_, ok := s.Branch()
	return !ok
}

// Branch returns the branch that is written when the state is serialized.
// States with more than one populated branch resolve in the order root,
// user, gui, search.
func (s State) Branch() (Branch, bool) {
	switch {
	case s.Root != "":
		return BranchRoot, true
	case s.User != nil && s.User.Name != "":
		return BranchUser, true
	case s.GUI != nil:
		return BranchGUI, true
	case s.Search != "":
		return BranchSearch, true
	}
	return "", false
}
