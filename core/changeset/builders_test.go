// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package changeset_test

import (
	"context"

	"github.com/juju/errors"
	jc "github.com/juju/testing/checkers"
	"go.uber.org/mock/gomock"
	gc "gopkg.in/check.v1"

	"github.com/juju/juju-gui/core/changeset"
	coretesting "github.com/juju/juju-gui/testing"
)

type buildersSuite struct {
	baseSuite
}

var _ = gc.Suite(&buildersSuite{})

func (s *buildersSuite) TestImmediateDeployBypassesQueue(c *gc.C) {
	ctrl := gomock.NewController(c)
	defer ctrl.Finish()
	env := NewMockEnvironment(ctrl)
	cs := s.newChangeSet(c, env)
	completed := s.watch(changeset.TaskCompleteTopic)

	env.EXPECT().Deploy(changeset.DeployArgs{
		CharmURL:        "ch:ghost",
		ApplicationName: "ghost",
		NumUnits:        1,
	}, gomock.Any()).Do(func(_ changeset.DeployArgs, callback changeset.Callback) {
		callback(nil, "deployed")
	})

	var results []any
	key, err := cs.Deploy("ch:ghost", "ghost", nil, "", 1, "", "", func(err error, r ...any) {
		c.Check(err, jc.ErrorIsNil)
		results = r
	}, changeset.Options{Immediate: true})
	c.Assert(err, jc.ErrorIsNil)
	c.Assert(key, gc.Equals, "")
	c.Assert(results, jc.DeepEquals, []any{"deployed"})

	n, err := cs.Len()
	c.Assert(err, jc.ErrorIsNil)
	c.Assert(n, gc.Equals, 0)
	completed.AssertNoEvent(c)
	c.Assert(changeset.ImmediateCalls(cs, changeset.Deploy), gc.Equals, float64(1))
}

func (s *buildersSuite) TestQueuedDeploy(c *gc.C) {
	env := coretesting.NewRecordingEnvironment()
	cs := s.newChangeSet(c, env)

	config := map[string]any{"debug": true}
	key, err := cs.Deploy("ch:ghost", "ghost", config, "debug: true", 2, "mem=2G", "lxd:0", noop, changeset.Options{})
	c.Assert(err, jc.ErrorIsNil)
	c.Assert(key, gc.Equals, "service-1")
	c.Assert(env.Calls(), gc.HasLen, 0)

	record, err := cs.Record(key)
	c.Assert(err, jc.ErrorIsNil)
	c.Assert(record.Type, gc.Equals, changeset.ServiceRecordType)
	c.Assert(record.Commands, gc.HasLen, 1)
	cmd := record.Commands[0]
	c.Assert(cmd.Method, gc.Equals, changeset.Deploy)
	c.Assert(cmd.Args, gc.HasLen, 8)
	c.Assert(cmd.Args[:7], jc.DeepEquals, []any{"ch:ghost", "ghost", config, "debug: true", 2, "mem=2G", "lxd:0"})

	c.Assert(cs.Commit(context.Background()), jc.ErrorIsNil)
	calls := env.Calls()
	c.Assert(calls, gc.HasLen, 1)
	c.Assert(calls[0].Args, jc.DeepEquals, []any{changeset.DeployArgs{
		CharmURL:        "ch:ghost",
		ApplicationName: "ghost",
		Config:          config,
		ConfigRaw:       "debug: true",
		NumUnits:        2,
		Constraints:     "mem=2G",
		ToMachine:       "lxd:0",
	}})
}

func (s *buildersSuite) TestRecordTypes(c *gc.C) {
	env := coretesting.NewSynchronousEnvironment()
	cs := s.newChangeSet(c, env)
	var opts changeset.Options

	for _, build := range []func() (string, error){
		func() (string, error) { return cs.Deploy("ch:mysql", "mysql", nil, "", 1, "", "", noop, opts) },
		func() (string, error) { return cs.AddUnits("mysql", 2, "", noop, opts) },
		func() (string, error) { return cs.RemoveUnits([]string{"mysql/1"}, noop, opts) },
		func() (string, error) { return cs.SetConfig("mysql", map[string]any{"a": 1}, "", noop, opts) },
		func() (string, error) { return cs.AddRelation("wordpress:db", "mysql", noop, opts) },
		func() (string, error) { return cs.RemoveRelation("wordpress:db", "mysql", noop, opts) },
		func() (string, error) { return cs.DestroyApplication("mysql", noop, opts) },
		func() (string, error) { return cs.Expose("mysql", noop, opts) },
		func() (string, error) { return cs.Unexpose("mysql", noop, opts) },
		func() (string, error) { return cs.AddMachines([]changeset.MachineParams{{}}, noop, opts) },
		func() (string, error) { return cs.DestroyMachines([]string{"0/lxd/1"}, false, noop, opts) },
		func() (string, error) { return cs.UpdateAnnotations("application-mysql", nil, noop, opts) },
	} {
		_, err := build()
		c.Assert(err, jc.ErrorIsNil)
	}

	records, err := cs.Records()
	c.Assert(err, jc.ErrorIsNil)
	var types []string
	for _, record := range records {
		c.Check(record.Key, gc.Equals, record.Type+"-1")
		c.Check(record.Commands, gc.HasLen, 1)
		types = append(types, record.Type)
	}
	c.Assert(types, jc.DeepEquals, []string{
		"service",
		"addUnits",
		"removeUnits",
		"setConfig",
		"addRelation",
		"removeRelation",
		"destroyApplication",
		"expose",
		"unexpose",
		"addMachines",
		"destroyMachines",
		"updateAnnotations",
	})

	c.Assert(cs.Commit(context.Background()), jc.ErrorIsNil)
	c.Assert(env.Methods(), jc.DeepEquals, []changeset.Method{
		changeset.Deploy,
		changeset.AddUnits,
		changeset.RemoveUnits,
		changeset.SetConfig,
		changeset.AddRelation,
		changeset.RemoveRelation,
		changeset.DestroyApplication,
		changeset.Expose,
		changeset.Unexpose,
		changeset.AddMachines,
		changeset.DestroyMachines,
		changeset.UpdateAnnotations,
	})
	records, err = cs.Records()
	c.Assert(err, jc.ErrorIsNil)
	for _, record := range records {
		c.Check(record.Commands[0].Executed, jc.IsTrue, gc.Commentf("record %s", record.Key))
	}
}

func (s *buildersSuite) TestImmediateCallsForEveryBuilder(c *gc.C) {
	env := coretesting.NewSynchronousEnvironment()
	cs := s.newChangeSet(c, env)
	opts := changeset.Options{Immediate: true}

	calls := 0
	count := func(error, ...any) { calls++ }
	for _, build := range []func() (string, error){
		func() (string, error) { return cs.AddUnits("mysql", 1, "lxd", count, opts) },
		func() (string, error) { return cs.Expose("mysql", count, opts) },
		func() (string, error) { return cs.DestroyMachines([]string{"3"}, true, count, opts) },
	} {
		key, err := build()
		c.Assert(err, jc.ErrorIsNil)
		c.Assert(key, gc.Equals, "")
	}
	c.Assert(calls, gc.Equals, 3)
	n, err := cs.Len()
	c.Assert(err, jc.ErrorIsNil)
	c.Assert(n, gc.Equals, 0)
	c.Assert(env.Calls()[2].Args, jc.DeepEquals, []any{[]string{"3"}, true})
}

func (s *buildersSuite) TestBuilderCopiesSlices(c *gc.C) {
	env := coretesting.NewRecordingEnvironment()
	cs := s.newChangeSet(c, env)

	units := []string{"mysql/0"}
	key, err := cs.RemoveUnits(units, noop, changeset.Options{})
	c.Assert(err, jc.ErrorIsNil)
	units[0] = "wordpress/0"

	record, err := cs.Record(key)
	c.Assert(err, jc.ErrorIsNil)
	c.Assert(record.Commands[0].Args[0], jc.DeepEquals, []string{"mysql/0"})
}

func (s *buildersSuite) TestBuilderCopiesMaps(c *gc.C) {
	env := coretesting.NewRecordingEnvironment()
	cs := s.newChangeSet(c, env)

	config := map[string]any{
		"tuning": map[string]any{"level": "safest"},
	}
	key, err := cs.SetConfig("mysql", config, "", noop, changeset.Options{})
	c.Assert(err, jc.ErrorIsNil)
	config["tuning"].(map[string]any)["level"] = "fastest"
	config["extra"] = true

	annotations := map[string]string{"gui-x": "10"}
	annotationsKey, err := cs.UpdateAnnotations("application-mysql", annotations, noop, changeset.Options{})
	c.Assert(err, jc.ErrorIsNil)
	annotations["gui-x"] = "20"

	record, err := cs.Record(key)
	c.Assert(err, jc.ErrorIsNil)
	c.Assert(record.Commands[0].Args[1], jc.DeepEquals, map[string]any{
		"tuning": map[string]any{"level": "safest"},
	})
	record, err = cs.Record(annotationsKey)
	c.Assert(err, jc.ErrorIsNil)
	c.Assert(record.Commands[0].Args[1], jc.DeepEquals, map[string]string{"gui-x": "10"})
}

func (s *buildersSuite) TestValidation(c *gc.C) {
	env := coretesting.NewRecordingEnvironment()
	cs := s.newChangeSet(c, env)
	var opts changeset.Options

	for i, test := range []struct {
		build func() (string, error)
		err   string
	}{{
		func() (string, error) { return cs.Deploy("", "mysql", nil, "", 1, "", "", noop, opts) },
		`empty charm URL not valid`,
	}, {
		func() (string, error) { return cs.Deploy("ch:mysql", "MySQL", nil, "", 1, "", "", noop, opts) },
		`application name "MySQL" not valid`,
	}, {
		func() (string, error) { return cs.Deploy("ch:mysql", "mysql", nil, "", -1, "", "", noop, opts) },
		`-1 units not valid`,
	}, {
		func() (string, error) { return cs.Deploy("ch:mysql", "mysql", nil, "", 1, "", "lxc:x", noop, opts) },
		`placement "lxc:x" not valid`,
	}, {
		func() (string, error) { return cs.AddUnits("mysql", 0, "", noop, opts) },
		`0 units not valid`,
	}, {
		func() (string, error) { return cs.RemoveUnits(nil, noop, opts) },
		`empty unit list not valid`,
	}, {
		func() (string, error) { return cs.RemoveUnits([]string{"mysql"}, noop, opts) },
		`unit name "mysql" not valid`,
	}, {
		func() (string, error) { return cs.SetConfig("9lives", nil, "", noop, opts) },
		`application name "9lives" not valid`,
	}, {
		func() (string, error) { return cs.AddRelation("wordpress:db", ":db", noop, opts) },
		`endpoint ":db" not valid`,
	}, {
		func() (string, error) { return cs.Expose("", noop, opts) },
		`application name "" not valid`,
	}, {
		func() (string, error) { return cs.AddMachines(nil, noop, opts) },
		`empty machine list not valid`,
	}, {
		func() (string, error) {
			return cs.AddMachines([]changeset.MachineParams{{ParentID: "0"}}, noop, opts)
		},
		`parent machine "0" without container type not valid`,
	}, {
		func() (string, error) { return cs.DestroyMachines([]string{"-1"}, false, noop, opts) },
		`machine "-1" not valid`,
	}, {
		func() (string, error) { return cs.UpdateAnnotations("", nil, noop, opts) },
		`empty entity not valid`,
	}} {
		c.Logf("test %d", i)
		_, err := test.build()
		c.Check(err, jc.Satisfies, errors.IsNotValid)
		c.Check(err, gc.ErrorMatches, test.err)
	}

	records, err := cs.Records()
	c.Assert(err, jc.ErrorIsNil)
	c.Assert(records, gc.HasLen, 0)
}
