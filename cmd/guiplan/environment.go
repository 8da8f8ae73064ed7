// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package main

import (
	"fmt"
	"strings"
	"sync"

	"github.com/juju/juju-gui/core/changeset"
)

// dryRunEnvironment accepts every operation without touching a model. Each
// call is described, remembered and reported back as successful before the
// method returns.
type dryRunEnvironment struct {
	logger Logger

	mu    sync.Mutex
	calls []string
}

// Logger represents the logging methods called.
type Logger interface {
	Debugf(string, ...any)
	Infof(string, ...any)
}

func newDryRunEnvironment(logger Logger) *dryRunEnvironment {
	return &dryRunEnvironment{logger: logger}
}

func (e *dryRunEnvironment) apply(callback changeset.Callback, format string, args ...any) {
	call := fmt.Sprintf(format, args...)
	e.mu.Lock()
	e.calls = append(e.calls, call)
	e.mu.Unlock()

	e.logger.Infof("dry run: %s", call)
	if callback != nil {
		callback(nil, call)
	}
}

// Calls returns the description of every call made so far.
func (e *dryRunEnvironment) Calls() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.calls...)
}

func (e *dryRunEnvironment) Deploy(args changeset.DeployArgs, callback changeset.Callback) {
	call := fmt.Sprintf("deploy %s as %s with %d units", args.CharmURL, args.ApplicationName, args.NumUnits)
	if args.ToMachine != "" {
		call += " to " + args.ToMachine
	}
	e.apply(callback, "%s", call)
}

func (e *dryRunEnvironment) AddUnits(application string, numUnits int, toMachine string, callback changeset.Callback) {
	if toMachine == "" {
		e.apply(callback, "add %d units to %s", numUnits, application)
		return
	}
	e.apply(callback, "add %d units to %s on %s", numUnits, application, toMachine)
}

func (e *dryRunEnvironment) RemoveUnits(units []string, callback changeset.Callback) {
	e.apply(callback, "remove units %s", strings.Join(units, ", "))
}

func (e *dryRunEnvironment) SetConfig(application string, config map[string]any, configRaw string, callback changeset.Callback) {
	if configRaw != "" {
		e.apply(callback, "set raw config of %s", application)
		return
	}
	e.apply(callback, "set %d config options of %s", len(config), application)
}

func (e *dryRunEnvironment) AddRelation(endpointA, endpointB string, callback changeset.Callback) {
	e.apply(callback, "relate %s and %s", endpointA, endpointB)
}

func (e *dryRunEnvironment) RemoveRelation(endpointA, endpointB string, callback changeset.Callback) {
	e.apply(callback, "remove relation between %s and %s", endpointA, endpointB)
}

func (e *dryRunEnvironment) DestroyApplication(application string, callback changeset.Callback) {
	e.apply(callback, "destroy %s", application)
}

func (e *dryRunEnvironment) Expose(application string, callback changeset.Callback) {
	e.apply(callback, "expose %s", application)
}

func (e *dryRunEnvironment) Unexpose(application string, callback changeset.Callback) {
	e.apply(callback, "unexpose %s", application)
}

func (e *dryRunEnvironment) AddMachines(params []changeset.MachineParams, callback changeset.Callback) {
	e.apply(callback, "add %d machines", len(params))
}

func (e *dryRunEnvironment) DestroyMachines(machines []string, force bool, callback changeset.Callback) {
	if force {
		e.apply(callback, "force destroy machines %s", strings.Join(machines, ", "))
		return
	}
	e.apply(callback, "destroy machines %s", strings.Join(machines, ", "))
}

func (e *dryRunEnvironment) UpdateAnnotations(entity string, annotations map[string]string, callback changeset.Callback) {
	e.apply(callback, "annotate %s with %d annotations", entity, len(annotations))
}
