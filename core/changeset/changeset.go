// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

// Package changeset queues environment operations so they can be reviewed
// and later committed together.
//
// A ChangeSet holds records, each keyed by a unique "<type>-<suffix>" key
// and holding one or more commands. A command names an Environment method
// and carries its positional arguments, the last of which is the completion
// callback. Commit hands every command to the environment in the order it
// was queued. The environment reports completion through the callback,
// which the change set intercepts to mark the command executed and to
// publish events on the configured hub.
//
// The record store is owned by a single goroutine. Environment calls and
// user callbacks always run outside it, so a callback may safely use the
// change set again.
package changeset

import (
	"context"

	"github.com/juju/errors"
	"github.com/juju/loggo/v2"
	"github.com/juju/worker/v4/catacomb"
)

var logger = loggo.GetLogger("juju.gui.changeset")

// ErrStopped is returned by operations on a change set that has been
// killed.
var ErrStopped = errors.New("change set stopped")

// operation is run on the loop goroutine, which owns the records.
type operation struct {
	apply  func() error
	result chan error
}

// ChangeSet is a worker that accumulates records of environment commands
// and commits them on demand.
type ChangeSet struct {
	catacomb catacomb.Catacomb
	config   Config
	logger   Logger
	metrics  *Collector

	operations chan operation

	// records, order and lastID are only accessed by the loop.
	records map[string]*Record
	order   []string
	lastID  uint64
}

// NewChangeSet returns a new ChangeSet configured as supplied. The caller
// takes responsibility for killing, and handling errors from, the returned
// worker.
func NewChangeSet(config Config) (*ChangeSet, error) {
	if err := config.Validate(); err != nil {
		return nil, errors.Trace(err)
	}
	if config.Keys == nil {
		config.Keys = NewRandomKeys()
	}
	cs := &ChangeSet{
		config:     config,
		logger:     config.Logger,
		metrics:    NewMetricsCollector(),
		operations: make(chan operation),
		records:    make(map[string]*Record),
	}
	if cs.logger == nil {
		cs.logger = logger
	}
	if err := catacomb.Invoke(catacomb.Plan{
		Site: &cs.catacomb,
		Work: cs.loop,
	}); err != nil {
		return nil, errors.Trace(err)
	}
	return cs, nil
}

// Kill is part of the worker.Worker interface.
func (cs *ChangeSet) Kill() {
	cs.catacomb.Kill(nil)
}

// Wait is part of the worker.Worker interface.
func (cs *ChangeSet) Wait() error {
	return cs.catacomb.Wait()
}

func (cs *ChangeSet) loop() error {
	if registerer := cs.config.PrometheusRegisterer; registerer != nil {
		if err := registerer.Register(cs.metrics); err != nil {
			cs.logger.Debugf("change set metrics not registered: %v", err)
		} else {
			defer registerer.Unregister(cs.metrics)
		}
	}
	for {
		select {
		case <-cs.catacomb.Dying():
			return cs.catacomb.ErrDying()
		case op := <-cs.operations:
			op.result <- op.apply()
		}
	}
}

// run executes apply on the loop goroutine and returns its result.
func (cs *ChangeSet) run(apply func() error) error {
	op := operation{
		apply:  apply,
		result: make(chan error, 1),
	}
	select {
	case <-cs.catacomb.Dying():
		return ErrStopped
	case cs.operations <- op:
	}
	return <-op.result
}

func (cs *ChangeSet) publish(topic string, data any) {
	_ = cs.config.Hub.Publish(topic, data)
}

// nextID must only be called on the loop goroutine.
func (cs *ChangeSet) nextID() uint64 {
	cs.lastID++
	return cs.lastID
}

// exists must only be called on the loop goroutine.
func (cs *ChangeSet) exists(key string) bool {
	_, ok := cs.records[key]
	return ok
}

// GenerateUniqueKey returns a key for recordType that no current record
// uses. The key is not reserved.
func (cs *ChangeSet) GenerateUniqueKey(recordType string) (string, error) {
	if recordType == "" {
		return "", errors.NotValidf("empty record type")
	}
	var key string
	err := cs.run(func() error {
		var err error
		key, err = cs.config.Keys.Generate(recordType, cs.exists)
		return errors.Trace(err)
	})
	if err != nil {
		return "", errors.Trace(err)
	}
	return key, nil
}

// CreateRecord adds an empty record of recordType under a fresh key and
// returns the key.
func (cs *ChangeSet) CreateRecord(recordType string) (string, error) {
	key, err := cs.createRecord(recordType)
	return key, errors.Trace(err)
}

// createRecord adds a record holding cmds in a single step, so no other
// caller can see the record without them.
func (cs *ChangeSet) createRecord(recordType string, cmds ...Command) (string, error) {
	if recordType == "" {
		return "", errors.NotValidf("empty record type")
	}
	var key string
	err := cs.run(func() error {
		var err error
		key, err = cs.config.Keys.Generate(recordType, cs.exists)
		if err != nil {
			return errors.Annotatef(err, "creating %q record", recordType)
		}
		commands := make([]Command, len(cmds))
		for i, cmd := range cmds {
			cmd.id = cs.nextID()
			commands[i] = cmd
		}
		cs.records[key] = &Record{
			Key:      key,
			Type:     recordType,
			Created:  cs.config.Clock.Now(),
			Commands: commands,
		}
		cs.order = append(cs.order, key)
		return nil
	})
	if err != nil {
		return "", errors.Trace(err)
	}
	cs.logger.Debugf("created record %q", key)
	cs.metrics.records.Inc()
	cs.metrics.recordsCreated.WithLabelValues(recordType).Inc()
	for _, cmd := range cmds {
		cs.metrics.commandsEnqueued.WithLabelValues(string(cmd.Method)).Inc()
	}
	cs.publish(ModifiedTopic, ModifiedEvent{Change: RecordCreated, Key: key})
	return key, nil
}

// EnqueueCommand appends a command calling method with args to the record
// with the given key. The final argument must be the completion callback.
// Nothing is sent to the environment.
func (cs *ChangeSet) EnqueueCommand(key string, method Method, args ...any) (CommandRef, error) {
	var ref CommandRef
	err := cs.run(func() error {
		record, ok := cs.records[key]
		if !ok {
			return errors.NotFoundf("record %q", key)
		}
		record.Commands = append(record.Commands, Command{
			Method: method,
			Args:   append([]any(nil), args...),
			id:     cs.nextID(),
		})
		ref = CommandRef{Key: key, Index: len(record.Commands) - 1}
		return nil
	})
	if err != nil {
		return CommandRef{}, errors.Trace(err)
	}
	cs.logger.Debugf("queued %s as %s", method, ref)
	cs.metrics.commandsEnqueued.WithLabelValues(string(method)).Inc()
	cs.publish(ModifiedTopic, ModifiedEvent{Change: CommandEnqueued, Key: key})
	return ref, nil
}

// Execute hands the referenced command to the environment with its
// callback wrapped. The command is marked executed when the environment
// calls back, not when Execute returns.
func (cs *ChangeSet) Execute(ref CommandRef) error {
	cmd, err := cs.command(ref)
	if err != nil {
		return errors.Trace(err)
	}
	return errors.Trace(cs.execute(ref, cmd))
}

func (cs *ChangeSet) execute(ref CommandRef, cmd Command) error {
	if !cmd.Method.IsValid() {
		return errors.NotSupportedf("environment method %q", cmd.Method)
	}
	args, err := cs.wrapCallback(ref, cmd)
	if err != nil {
		return errors.Trace(err)
	}
	cs.logger.Debugf("executing %s %s", cmd.Method, ref)
	if err := dispatch(cs.config.Environment, cmd.Method, args); err != nil {
		return errors.Annotatef(err, "executing %s", ref)
	}
	cs.metrics.commandsExecuted.WithLabelValues(string(cmd.Method)).Inc()
	return nil
}

// wrapCallback returns a copy of the command's arguments whose final
// callback marks the command executed, calls the original callback and
// publishes a TaskCompleteTopic event, in that order.
func (cs *ChangeSet) wrapCallback(ref CommandRef, cmd Command) ([]any, error) {
	if len(cmd.Args) == 0 {
		return nil, errors.NotValidf("%s command %s without callback", cmd.Method, ref)
	}
	last := len(cmd.Args) - 1
	var original Callback
	switch callback := cmd.Args[last].(type) {
	case nil:
	case Callback:
		original = callback
	case func(error, ...any):
		original = callback
	default:
		return nil, errors.NotValidf("%s command %s callback of type %T", cmd.Method, ref, callback)
	}

	args := append([]any(nil), cmd.Args...)
	args[last] = Callback(func(err error, results ...any) {
		executed, markErr := cs.markExecuted(ref, cmd.id)
		if markErr != nil {
			cs.logger.Warningf("completing %s: %v", ref, markErr)
			executed = cmd.copy()
			executed.Executed = true
		}
		cs.metrics.commandsComplete.WithLabelValues(string(cmd.Method)).Inc()
		if original != nil {
			original(err, results...)
		}
		cs.publish(TaskCompleteTopic, CommandEvent{Ref: ref, Command: executed})
	})
	return args, nil
}

// markExecuted marks the command at ref executed, provided it is still the
// command with the given id. A ref reused after Clear is not touched.
func (cs *ChangeSet) markExecuted(ref CommandRef, id uint64) (Command, error) {
	var cmd Command
	err := cs.run(func() error {
		target, err := cs.lookup(ref)
		if err != nil {
			return errors.Trace(err)
		}
		if target.id != id {
			return errors.NotFoundf("command %s #%d", ref, id)
		}
		target.Executed = true
		cmd = target.copy()
		return nil
	})
	return cmd, errors.Trace(err)
}

// lookup must only be called on the loop goroutine.
func (cs *ChangeSet) lookup(ref CommandRef) (*Command, error) {
	record, ok := cs.records[ref.Key]
	if !ok {
		return nil, errors.NotFoundf("record %q", ref.Key)
	}
	if ref.Index < 0 || ref.Index >= len(record.Commands) {
		return nil, errors.NotFoundf("command %s", ref)
	}
	return &record.Commands[ref.Index], nil
}

func (cs *ChangeSet) command(ref CommandRef) (Command, error) {
	var cmd Command
	err := cs.run(func() error {
		target, err := cs.lookup(ref)
		if err != nil {
			return errors.Trace(err)
		}
		cmd = target.copy()
		return nil
	})
	return cmd, errors.Trace(err)
}

type queued struct {
	ref CommandRef
	cmd Command
}

// Commit executes every command of every record, records in creation
// order and commands in queue order, publishing a CommitTopic event after
// each one. It stops at the first command that cannot be executed or when
// ctx is done. Commit does not wait for callbacks and does not clear the
// change set: committing again executes every command again.
func (cs *ChangeSet) Commit(ctx context.Context) error {
	var pending []queued
	err := cs.run(func() error {
		for _, key := range cs.order {
			for i, cmd := range cs.records[key].Commands {
				pending = append(pending, queued{
					ref: CommandRef{Key: key, Index: i},
					cmd: cmd.copy(),
				})
			}
		}
		return nil
	})
	if err != nil {
		return errors.Trace(err)
	}

	cs.logger.Debugf("committing %d commands", len(pending))
	for _, q := range pending {
		if err := ctx.Err(); err != nil {
			return errors.Annotatef(err, "committing %s", q.ref)
		}
		if err := cs.execute(q.ref, q.cmd); err != nil {
			return errors.Trace(err)
		}
		cs.publish(CommitTopic, CommandEvent{Ref: q.ref, Command: q.cmd})
	}
	return nil
}

// Clear removes every record.
func (cs *ChangeSet) Clear() error {
	err := cs.run(func() error {
		cs.records = make(map[string]*Record)
		cs.order = nil
		return nil
	})
	if err != nil {
		return errors.Trace(err)
	}
	cs.metrics.records.Set(0)
	cs.publish(ModifiedTopic, ModifiedEvent{Change: Cleared})
	return nil
}

// Records returns a copy of every record in creation order.
func (cs *ChangeSet) Records() ([]Record, error) {
	var records []Record
	err := cs.run(func() error {
		records = make([]Record, 0, len(cs.order))
		for _, key := range cs.order {
			records = append(records, cs.records[key].copy())
		}
		return nil
	})
	if err != nil {
		return nil, errors.Trace(err)
	}
	return records, nil
}

// Record returns a copy of the record with the given key.
func (cs *ChangeSet) Record(key string) (Record, error) {
	var record Record
	err := cs.run(func() error {
		found, ok := cs.records[key]
		if !ok {
			return errors.NotFoundf("record %q", key)
		}
		record = found.copy()
		return nil
	})
	return record, errors.Trace(err)
}

// Len returns the number of records.
func (cs *ChangeSet) Len() (int, error) {
	var n int
	err := cs.run(func() error {
		n = len(cs.order)
		return nil
	})
	return n, errors.Trace(err)
}
