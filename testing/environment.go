// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package testing

import (
	"sync"

	"github.com/juju/errors"

	"github.com/juju/juju-gui/core/changeset"
)

// Call records a single call made to a RecordingEnvironment. Args holds
// the positional arguments without the callback.
type Call struct {
	Method   changeset.Method
	Args     []any
	Callback changeset.Callback
}

// RecordingEnvironment is a changeset.Environment that records every call.
// When Synchronous is set it calls back before returning, with Err and
// Results; otherwise callbacks are held until Complete is called.
type RecordingEnvironment struct {
	Synchronous bool
	Err         error
	Results     []any

	mu    sync.Mutex
	calls []Call
}

var _ changeset.Environment = (*RecordingEnvironment)(nil)

// NewRecordingEnvironment returns a RecordingEnvironment holding callbacks.
func NewRecordingEnvironment() *RecordingEnvironment {
	return &RecordingEnvironment{}
}

// NewSynchronousEnvironment returns a RecordingEnvironment that calls
// back successfully before returning.
func NewSynchronousEnvironment() *RecordingEnvironment {
	return &RecordingEnvironment{Synchronous: true}
}

func (e *RecordingEnvironment) record(method changeset.Method, callback changeset.Callback, args ...any) {
	e.mu.Lock()
	e.calls = append(e.calls, Call{
		Method:   method,
		Args:     args,
		Callback: callback,
	})
	synchronous := e.Synchronous
	e.mu.Unlock()

	if synchronous && callback != nil {
		callback(e.Err, e.Results...)
	}
}

// Calls returns the calls made so far.
func (e *RecordingEnvironment) Calls() []Call {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]Call(nil), e.calls...)
}

// Methods returns the method of each call made so far.
func (e *RecordingEnvironment) Methods() []changeset.Method {
	var methods []changeset.Method
	for _, call := range e.Calls() {
		methods = append(methods, call.Method)
	}
	return methods
}

// Complete calls back for the call with the given index.
func (e *RecordingEnvironment) Complete(index int, err error, results ...any) error {
	calls := e.Calls()
	if index < 0 || index >= len(calls) {
		return errors.NotFoundf("call %d", index)
	}
	if calls[index].Callback == nil {
		return errors.NotValidf("call %d without callback", index)
	}
	calls[index].Callback(err, results...)
	return nil
}

// CompleteAll calls back successfully for every call made so far.
func (e *RecordingEnvironment) CompleteAll() error {
	for i := range e.Calls() {
		if err := e.Complete(i, nil); err != nil {
			return errors.Trace(err)
		}
	}
	return nil
}

func (e *RecordingEnvironment) Deploy(args changeset.DeployArgs, callback changeset.Callback) {
	e.record(changeset.Deploy, callback, args)
}

func (e *RecordingEnvironment) AddUnits(application string, numUnits int, toMachine string, callback changeset.Callback) {
	e.record(changeset.AddUnits, callback, application, numUnits, toMachine)
}

func (e *RecordingEnvironment) RemoveUnits(units []string, callback changeset.Callback) {
	e.record(changeset.RemoveUnits, callback, units)
}

func (e *RecordingEnvironment) SetConfig(application string, config map[string]any, configRaw string, callback changeset.Callback) {
	e.record(changeset.SetConfig, callback, application, config, configRaw)
}

func (e *RecordingEnvironment) AddRelation(endpointA, endpointB string, callback changeset.Callback) {
	e.record(changeset.AddRelation, callback, endpointA, endpointB)
}

func (e *RecordingEnvironment) RemoveRelation(endpointA, endpointB string, callback changeset.Callback) {
	e.record(changeset.RemoveRelation, callback, endpointA, endpointB)
}

func (e *RecordingEnvironment) DestroyApplication(application string, callback changeset.Callback) {
	e.record(changeset.DestroyApplication, callback, application)
}

func (e *RecordingEnvironment) Expose(application string, callback changeset.Callback) {
	e.record(changeset.Expose, callback, application)
}

func (e *RecordingEnvironment) Unexpose(application string, callback changeset.Callback) {
	e.record(changeset.Unexpose, callback, application)
}

func (e *RecordingEnvironment) AddMachines(params []changeset.MachineParams, callback changeset.Callback) {
	e.record(changeset.AddMachines, callback, params)
}

func (e *RecordingEnvironment) DestroyMachines(machines []string, force bool, callback changeset.Callback) {
	e.record(changeset.DestroyMachines, callback, machines, force)
}

func (e *RecordingEnvironment) UpdateAnnotations(entity string, annotations map[string]string, callback changeset.Callback) {
	e.record(changeset.UpdateAnnotations, callback, entity, annotations)
}
