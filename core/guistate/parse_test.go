// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package guistate_test

import (
	"github.com/juju/testing"
	jc "github.com/juju/testing/checkers"
	gc "gopkg.in/check.v1"

	"github.com/juju/juju-gui/core/guistate"
)

type parseSuite struct {
	testing.IsolationSuite
}

var _ = gc.Suite(&parseSuite{})

var sanitizeTests = []struct {
	about   string
	url     string
	baseURL string
	expect  string
}{{
	about:   "base stripped",
	url:     "http://x.com/i/machines",
	baseURL: "http://x.com",
	expect:  "i/machines",
}, {
	about:   "trailing slashes stripped",
	url:     "http://x.com/i/machines//",
	baseURL: "http://x.com",
	expect:  "i/machines",
}, {
	about:   "base with trailing slash",
	url:     "http://x.com/q/apache2",
	baseURL: "http://x.com/",
	expect:  "q/apache2",
}, {
	about:   "base with path prefix",
	url:     "http://x.com/gui/login",
	baseURL: "http://x.com/gui",
	expect:  "login",
}, {
	about:   "query and fragment dropped",
	url:     "http://x.com/q/mysql?sort=name#top",
	baseURL: "http://x.com",
	expect:  "q/mysql",
}, {
	about:   "different port falls back to the path",
	url:     "http://x.com:8080/i/inspector/ghost",
	baseURL: "http://x.com",
	expect:  "i/inspector/ghost",
}, {
	about:   "different port keeps the base path prefix stripped",
	url:     "http://x.com:8080/gui/login",
	baseURL: "http://x.com/gui",
	expect:  "login",
}, {
	about:   "relative URL under the base path prefix",
	url:     "/gui/u/hatch/charms",
	baseURL: "https://demo.example.com/gui",
	expect:  "u/hatch/charms",
}, {
	about:   "relative URL equal to the base path prefix",
	url:     "/gui/?q=x",
	baseURL: "http://x.com/gui",
	expect:  "",
}, {
	about:   "base path prefix only matches whole segments",
	url:     "http://x.com:8080/guide/login",
	baseURL: "http://x.com/gui",
	expect:  "guide/login",
}, {
	about:   "different host falls back to the path",
	url:     "https://proxy.example.com/u/hatch",
	baseURL: "http://x.com",
	expect:  "u/hatch",
}, {
	about:   "host prefix is not a path boundary",
	url:     "http://x.company/store",
	baseURL: "http://x.com",
	expect:  "store",
}, {
	about:   "relative URL",
	url:     "/i/machines/",
	baseURL: "http://x.com",
	expect:  "i/machines",
}, {
	about:   "no base",
	url:     "/about",
	baseURL: "",
	expect:  "about",
}, {
	about:   "base only",
	url:     "http://x.com",
	baseURL: "http://x.com",
	expect:  "",
}, {
	about:   "unparseable URL is returned stripped",
	url:     "%zz/store/",
	baseURL: "http://x.com",
	expect:  "%zz/store",
}}

func (s *parseSuite) TestSanitizeURL(c *gc.C) {
	for i, test := range sanitizeTests {
		c.Logf("test %d: %s", i, test.about)
		c.Check(guistate.SanitizeURL(test.url, test.baseURL), gc.Equals, test.expect)
	}
}

var parsePathTests = []struct {
	about  string
	path   string
	expect guistate.State
}{{
	about:  "empty path",
	path:   "",
	expect: guistate.State{},
}, {
	about:  "root keyword",
	path:   "login",
	expect: guistate.State{Root: "login"},
}, {
	about:  "root states are terminal",
	path:   "login/extra/segments",
	expect: guistate.State{Root: "login"},
}, {
	about:  "search",
	path:   "q/foo/bar",
	expect: guistate.State{Search: "foo/bar"},
}, {
	about:  "search without terms",
	path:   "q",
	expect: guistate.State{},
}, {
	about:  "repeated slashes are dropped",
	path:   "q//foo///bar",
	expect: guistate.State{Search: "foo/bar"},
}, {
	about:  "user",
	path:   "u/hatch",
	expect: guistate.State{User: &guistate.UserState{Name: "hatch"}},
}, {
	about:  "user profile view",
	path:   "u/hatch/charms",
	expect: guistate.State{User: &guistate.UserState{Name: "hatch", Profile: "charms"}},
}, {
	about:  "user profile view with detail",
	path:   "u/hatch/settings/keys",
	expect: guistate.State{User: &guistate.UserState{Name: "hatch", Profile: "settings/keys"}},
}, {
	about:  "user path",
	path:   "u/hatch/ghost/42",
	expect: guistate.State{User: &guistate.UserState{Name: "hatch", Path: "ghost/42"}},
}, {
	about:  "user without a name",
	path:   "u",
	expect: guistate.State{},
}, {
	about:  "invalid user name",
	path:   "u/-hatch/charms",
	expect: guistate.State{},
}, {
	about:  "gui without sections",
	path:   "i",
	expect: guistate.State{GUI: map[string]string{}},
}, {
	about:  "gui section without detail",
	path:   "i/machines",
	expect: guistate.State{GUI: map[string]string{"machines": ""}},
}, {
	about: "gui sections are independent",
	path:  "i/applications/inspector/ghost",
	expect: guistate.State{GUI: map[string]string{
		"applications": "",
		"inspector":    "ghost",
	}},
}, {
	about: "gui sections take every segment up to the next marker",
	path:  "i/inspector/apache2/machines/3/lxc-0/deploy/foo",
	expect: guistate.State{GUI: map[string]string{
		"inspector": "apache2",
		"machines":  "3/lxc-0",
		"deploy":    "foo",
	}},
}, {
	about: "a repeated marker overwrites only its own value",
	path:  "i/inspector/apache2/machines/3/inspector/mysql/unit/0",
	expect: guistate.State{GUI: map[string]string{
		"inspector": "mysql/unit/0",
		"machines":  "3",
	}},
}, {
	about: "segments before the first marker are ignored",
	path:  "i/stray/deploy/bundle",
	expect: guistate.State{GUI: map[string]string{
		"deploy": "bundle",
	}},
}, {
	about:  "unrecognised first segment",
	path:   "nonsense/path",
	expect: guistate.State{},
}, {
	about:  "delimiters are case sensitive",
	path:   "Q/foo",
	expect: guistate.State{},
}}

func (s *parseSuite) TestParsePath(c *gc.C) {
	for i, test := range parsePathTests {
		c.Logf("test %d: %s", i, test.about)
		state := guistate.ParsePath(test.path)
		c.Check(state, jc.DeepEquals, test.expect)
		c.Check(state.IsEmpty(), gc.Equals, test.expect.IsEmpty())
	}
}

func (s *parseSuite) TestParseGUIIsNeverNil(c *gc.C) {
	gui := guistate.ParseGUI(nil)
	c.Assert(gui, gc.NotNil)
	c.Assert(gui, gc.HasLen, 0)
}

func (s *parseSuite) TestReservedWords(c *gc.C) {
	c.Check(guistate.RootReserved(), jc.DeepEquals, []string{
		"about", "bigdata", "docs", "juju", "login", "logout", "new", "store",
	})
	c.Check(guistate.ProfileReserved(), jc.DeepEquals, []string{
		"charms", "issues", "revenue", "settings",
	})
	c.Check(guistate.GUISections(), jc.DeepEquals, []string{
		"inspector", "machines", "applications", "deploy",
	})
	for _, token := range []string{"q", "u", "i"} {
		_, ok := guistate.BranchForDelimiter(token)
		c.Check(ok, jc.IsTrue, gc.Commentf("token %q", token))
		c.Check(guistate.IsRootReserved(token), jc.IsFalse)
	}
	_, ok := guistate.BranchForDelimiter("x")
	c.Check(ok, jc.IsFalse)
}
