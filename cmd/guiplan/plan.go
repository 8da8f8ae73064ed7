// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package main

import (
	"context"
	"time"

	"github.com/juju/clock"
	"github.com/juju/errors"
	"github.com/juju/gnuflag"
	"github.com/juju/loggo/v2"
	"github.com/juju/pubsub/v2"
	"github.com/prometheus/client_golang/prometheus"
	"gopkg.in/yaml.v3"

	"github.com/juju/juju-gui/cmd"
	"github.com/juju/juju-gui/core/changeset"
)

var logger = loggo.GetLogger("juju.gui.cmd.guiplan")

const planDoc = `
guiplan loads a plan of model changes, queues each of them in a change set
and commits the change set against a dry-run environment. Nothing outside
the command is modified.

The plan is a YAML document (or "-" for stdin) holding a list of
operations. Every operation names its method and the fields that method
uses. Operations marked immediate bypass the change set and are applied
as soon as they are loaded.

    operations:
      - method: deploy
        charm: ch:mysql
        application: mysql
        num-units: 1
      - method: addRelation
        endpoints: [wordpress:db, mysql]
      - method: expose
        application: wordpress
        immediate: true

Examples:
    guiplan plan.yaml
    guiplan --no-commit --format tabular plan.yaml
    guiplan --keys uuid --metrics --format json - < plan.yaml
`

// plan is the document read by the command.
type plan struct {
	Operations []operation `yaml:"operations"`
}

// operation is one change of a plan. Only the fields used by Method
// are read.
type operation struct {
	Method      changeset.Method          `yaml:"method"`
	Immediate   bool                      `yaml:"immediate,omitempty"`
	Charm       string                    `yaml:"charm,omitempty"`
	Application string                    `yaml:"application,omitempty"`
	Config      map[string]any            `yaml:"config,omitempty"`
	ConfigRaw   string                    `yaml:"config-raw,omitempty"`
	NumUnits    int                       `yaml:"num-units,omitempty"`
	Constraints string                    `yaml:"constraints,omitempty"`
	To          string                    `yaml:"to,omitempty"`
	Units       []string                  `yaml:"units,omitempty"`
	Endpoints   []string                  `yaml:"endpoints,omitempty"`
	Machines    []changeset.MachineParams `yaml:"machines,omitempty"`
	MachineIDs  []string                  `yaml:"machine-ids,omitempty"`
	Force       bool                      `yaml:"force,omitempty"`
	Entity      string                    `yaml:"entity,omitempty"`
	Annotations map[string]string         `yaml:"annotations,omitempty"`
}

// planResult is written once the plan has been applied.
type planResult struct {
	Records   []recordResult     `yaml:"records" json:"records"`
	Immediate []string           `yaml:"immediate,omitempty" json:"immediate,omitempty"`
	Committed []string           `yaml:"committed,omitempty" json:"committed,omitempty"`
	Metrics   map[string]float64 `yaml:"metrics,omitempty" json:"metrics,omitempty"`
}

type recordResult struct {
	Key      string          `yaml:"key" json:"key"`
	Type     string          `yaml:"type" json:"type"`
	Created  time.Time       `yaml:"created" json:"created"`
	Commands []commandResult `yaml:"commands" json:"commands"`
}

type commandResult struct {
	Method   changeset.Method `yaml:"method" json:"method"`
	Executed bool             `yaml:"executed" json:"executed"`
}

type planCommand struct {
	out cmd.Output
	log cmd.Log

	clock clock.Clock

	plan     cmd.FileVar
	keys     string
	seed     uint64
	noCommit bool
	metrics  bool
	timeout  time.Duration
}

func newPlanCommand() *planCommand {
	return &planCommand{clock: clock.WallClock}
}

// Info implements cmd.Command.
func (c *planCommand) Info() *cmd.Info {
	return &cmd.Info{
		Name:    "guiplan",
		Args:    "<plan-file>",
		Purpose: "Queue and commit a plan of model changes without applying them.",
		Doc:     planDoc,
	}
}

// SetFlags implements cmd.Command.
func (c *planCommand) SetFlags(f *gnuflag.FlagSet) {
	c.log.AddFlags(f)
	c.out.AddFlags(f, "yaml", map[string]cmd.Formatter{
		"yaml":    cmd.FormatYaml,
		"json":    cmd.FormatJson,
		"tabular": formatTabular,
	})
	f.StringVar(&c.keys, "keys", "random", "Record key generator (random|sequential|uuid|xid)")
	f.Uint64Var(&c.seed, "seed", 0, "Seed for the random key generator")
	f.BoolVar(&c.noCommit, "no-commit", false, "Queue the plan without committing it")
	f.BoolVar(&c.metrics, "metrics", false, "Include the change set metrics in the output")
	f.DurationVar(&c.timeout, "timeout", time.Minute, "Maximum time to spend committing")
}

// Init implements cmd.Command.
func (c *planCommand) Init(args []string) error {
	switch c.keys {
	case "random", "sequential", "uuid", "xid":
	default:
		return errors.NotValidf("key generator %q", c.keys)
	}
	if len(args) == 0 {
		return errors.New("no plan specified")
	}
	if err := c.plan.Set(args[0]); err != nil {
		return errors.Trace(err)
	}
	return cmd.CheckEmpty(args[1:])
}

func (c *planCommand) keyGenerator() changeset.KeyGenerator {
	switch c.keys {
	case "sequential":
		return changeset.NewSequentialKeys()
	case "uuid":
		return changeset.UUIDKeys{}
	case "xid":
		return changeset.XIDKeys{}
	}
	if c.seed != 0 {
		return changeset.NewSeededRandomKeys(c.seed, c.seed)
	}
	return changeset.NewRandomKeys()
}

func (c *planCommand) readPlan(ctx *cmd.Context) (plan, error) {
	var p plan
	data, err := c.plan.Read(ctx)
	if err != nil {
		return p, errors.Annotate(err, "reading plan")
	}
	if err := yaml.Unmarshal(data, &p); err != nil {
		return p, errors.Annotatef(err, "parsing plan %q", c.plan.Path)
	}
	if len(p.Operations) == 0 {
		return p, errors.NotValidf("plan %q without operations", c.plan.Path)
	}
	return p, nil
}

// Run implements cmd.Command.
func (c *planCommand) Run(ctx *cmd.Context) (err error) {
	restore, err := c.log.Start(ctx)
	if err != nil {
		return errors.Trace(err)
	}
	defer restore()

	p, err := c.readPlan(ctx)
	if err != nil {
		return errors.Trace(err)
	}

	hub := pubsub.NewSimpleHub(&pubsub.SimpleHubConfig{
		Logger: loggo.GetLogger("juju.gui.cmd.guiplan.hub"),
	})
	unsubscribe := hub.Subscribe(changeset.ModifiedTopic, func(topic string, data any) {
		if event, ok := data.(changeset.ModifiedEvent); ok {
			logger.Debugf("change set %s %s", event.Change, event.Key)
		}
	})
	defer unsubscribe()

	env := newDryRunEnvironment(logger)
	registry := prometheus.NewRegistry()
	cs, err := changeset.NewChangeSet(changeset.Config{
		Environment:          env,
		Hub:                  hub,
		Clock:                c.clock,
		Keys:                 c.keyGenerator(),
		Logger:               logger,
		PrometheusRegisterer: registry,
	})
	if err != nil {
		return errors.Trace(err)
	}
	defer func() {
		cs.Kill()
		if waitErr := cs.Wait(); err == nil {
			err = errors.Trace(waitErr)
		}
	}()

	for i, op := range p.Operations {
		if _, err := queue(cs, op); err != nil {
			return errors.Annotatef(err, "operation %d", i)
		}
	}
	immediate := env.Calls()

	if !c.noCommit {
		commitCtx, cancel := context.WithTimeout(context.Background(), c.timeout)
		defer cancel()
		if err := cs.Commit(commitCtx); err != nil {
			return errors.Annotate(err, "committing plan")
		}
	}

	records, err := cs.Records()
	if err != nil {
		return errors.Trace(err)
	}
	result := planResult{
		Records:   make([]recordResult, len(records)),
		Immediate: immediate,
		Committed: env.Calls()[len(immediate):],
	}
	for i, record := range records {
		result.Records[i] = recordResult{
			Key:      record.Key,
			Type:     record.Type,
			Created:  record.Created,
			Commands: make([]commandResult, len(record.Commands)),
		}
		for j, command := range record.Commands {
			result.Records[i].Commands[j] = commandResult{
				Method:   command.Method,
				Executed: command.Executed,
			}
		}
	}
	if c.metrics {
		if result.Metrics, err = gatherMetrics(registry); err != nil {
			return errors.Trace(err)
		}
	}
	return errors.Trace(c.out.Write(ctx, result))
}

// queue adds op to the change set, or applies it at once when it is
// immediate. It returns the key of the new record, if any.
func queue(cs *changeset.ChangeSet, op operation) (string, error) {
	opts := changeset.Options{Immediate: op.Immediate}
	switch op.Method {
	case changeset.Deploy:
		return cs.Deploy(op.Charm, op.Application, op.Config, op.ConfigRaw, op.NumUnits, op.Constraints, op.To, nil, opts)
	case changeset.AddUnits:
		return cs.AddUnits(op.Application, op.NumUnits, op.To, nil, opts)
	case changeset.RemoveUnits:
		return cs.RemoveUnits(op.Units, nil, opts)
	case changeset.SetConfig:
		return cs.SetConfig(op.Application, op.Config, op.ConfigRaw, nil, opts)
	case changeset.AddRelation, changeset.RemoveRelation:
		if len(op.Endpoints) != 2 {
			return "", errors.NotValidf("%s with %d endpoints", op.Method, len(op.Endpoints))
		}
		if op.Method == changeset.AddRelation {
			return cs.AddRelation(op.Endpoints[0], op.Endpoints[1], nil, opts)
		}
		return cs.RemoveRelation(op.Endpoints[0], op.Endpoints[1], nil, opts)
	case changeset.DestroyApplication:
		return cs.DestroyApplication(op.Application, nil, opts)
	case changeset.Expose:
		return cs.Expose(op.Application, nil, opts)
	case changeset.Unexpose:
		return cs.Unexpose(op.Application, nil, opts)
	case changeset.AddMachines:
		return cs.AddMachines(op.Machines, nil, opts)
	case changeset.DestroyMachines:
		return cs.DestroyMachines(op.MachineIDs, op.Force, nil, opts)
	case changeset.UpdateAnnotations:
		return cs.UpdateAnnotations(op.Entity, op.Annotations, nil, opts)
	}
	return "", errors.NotSupportedf("method %q", op.Method)
}

// gatherMetrics sums the samples of every metric family in the registry.
func gatherMetrics(registry *prometheus.Registry) (map[string]float64, error) {
	families, err := registry.Gather()
	if err != nil {
		return nil, errors.Annotate(err, "gathering metrics")
	}
	result := make(map[string]float64, len(families))
	for _, family := range families {
		var total float64
		for _, metric := range family.GetMetric() {
			total += metric.GetCounter().GetValue() + metric.GetGauge().GetValue()
		}
		result[family.GetName()] = total
	}
	return result, nil
}
