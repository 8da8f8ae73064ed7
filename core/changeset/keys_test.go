// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package changeset_test

import (
	"regexp"
	"strconv"

	"github.com/juju/collections/set"
	"github.com/juju/testing"
	jc "github.com/juju/testing/checkers"
	gc "gopkg.in/check.v1"

	"github.com/juju/juju-gui/core/changeset"
)

type keysSuite struct {
	testing.IsolationSuite
}

var _ = gc.Suite(&keysSuite{})

var randomKeyPattern = regexp.MustCompile(`^service-([0-9]+)$`)

func (s *keysSuite) TestRandomKeysFillTheSpace(c *gc.C) {
	keys := changeset.NewSeededRandomKeys(1, 2)
	used := set.NewStrings()

	for i := 0; i < changeset.MaxRandomKey; i++ {
		key, err := keys.Generate("service", used.Contains)
		c.Assert(err, jc.ErrorIsNil)

		match := randomKeyPattern.FindStringSubmatch(key)
		c.Assert(match, gc.HasLen, 2, gc.Commentf("key %q", key))
		n, err := strconv.Atoi(match[1])
		c.Assert(err, jc.ErrorIsNil)
		c.Assert(n >= 1 && n <= changeset.MaxRandomKey, jc.IsTrue, gc.Commentf("key %q", key))
		c.Assert(used.Contains(key), jc.IsFalse, gc.Commentf("key %q reused", key))
		used.Add(key)
	}

	_, err := keys.Generate("service", used.Contains)
	c.Assert(err, gc.ErrorMatches, `no free "service" keys left`)

	// Other types have their own space.
	key, err := keys.Generate("addUnits", used.Contains)
	c.Assert(err, jc.ErrorIsNil)
	c.Assert(key, gc.Matches, `addUnits-[0-9]+`)
}

func (s *keysSuite) TestRandomKeysAreSeeded(c *gc.C) {
	a := changeset.NewSeededRandomKeys(7, 11)
	b := changeset.NewSeededRandomKeys(7, 11)
	none := func(string) bool { return false }
	for i := 0; i < 10; i++ {
		keyA, err := a.Generate("expose", none)
		c.Assert(err, jc.ErrorIsNil)
		keyB, err := b.Generate("expose", none)
		c.Assert(err, jc.ErrorIsNil)
		c.Check(keyA, gc.Equals, keyB)
	}
}

func (s *keysSuite) TestSequentialKeys(c *gc.C) {
	keys := changeset.NewSequentialKeys()
	used := set.NewStrings("service-2")

	var generated []string
	for _, recordType := range []string{"service", "service", "expose", "service"} {
		key, err := keys.Generate(recordType, used.Contains)
		c.Assert(err, jc.ErrorIsNil)
		generated = append(generated, key)
	}
	c.Assert(generated, jc.DeepEquals, []string{"service-1", "service-3", "expose-1", "service-4"})
}

func (s *keysSuite) TestZeroValueKeys(c *gc.C) {
	none := func(string) bool { return false }

	var sequential changeset.SequentialKeys
	key, err := sequential.Generate("expose", none)
	c.Assert(err, jc.ErrorIsNil)
	c.Check(key, gc.Equals, "expose-1")

	var random changeset.RandomKeys
	key, err = random.Generate("service", none)
	c.Assert(err, jc.ErrorIsNil)
	c.Check(key, gc.Matches, `service-[0-9]+`)
}

func (s *keysSuite) TestUUIDKeys(c *gc.C) {
	key, err := changeset.UUIDKeys{}.Generate("deploy", func(string) bool { return false })
	c.Assert(err, jc.ErrorIsNil)
	c.Assert(key, gc.Matches, `deploy-[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}`)
}

func (s *keysSuite) TestXIDKeys(c *gc.C) {
	used := set.NewStrings()
	var previous string
	for i := 0; i < 10; i++ {
		key, err := changeset.XIDKeys{}.Generate("expose", used.Contains)
		c.Assert(err, jc.ErrorIsNil)
		c.Assert(key, gc.Matches, `expose-[0-9a-v]{20}`)
		c.Assert(used.Contains(key), jc.IsFalse)
		c.Assert(key > previous, jc.IsTrue)
		used.Add(key)
		previous = key
	}
}
