// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package changeset

import (
	"maps"
	"strings"

	"github.com/juju/collections/set"
	"github.com/juju/errors"
	"github.com/juju/names/v5"
	"github.com/mohae/deepcopy"
)

// The builders below either call the environment straight away, when
// Options.Immediate is set, or queue the operation in a new record of the
// method's record type. A queued operation returns the record key; an
// immediate one returns an empty key.

// Deploy queues or calls a deploy of charmURL as application.
func (cs *ChangeSet) Deploy(
	charmURL, application string,
	config map[string]any, configRaw string,
	numUnits int, constraints, toMachine string,
	callback Callback, opts Options,
) (string, error) {
	if charmURL == "" {
		return "", errors.NotValidf("empty charm URL")
	}
	if err := validateApplication(application); err != nil {
		return "", errors.Trace(err)
	}
	if numUnits < 0 {
		return "", errors.NotValidf("%d units", numUnits)
	}
	if err := validatePlacement(toMachine); err != nil {
		return "", errors.Trace(err)
	}
	return cs.queueOrCall(Deploy, opts,
		charmURL, application, copyConfig(config), configRaw, numUnits, constraints, toMachine, callback)
}

// AddUnits queues or calls the addition of units to application.
func (cs *ChangeSet) AddUnits(application string, numUnits int, toMachine string, callback Callback, opts Options) (string, error) {
	if err := validateApplication(application); err != nil {
		return "", errors.Trace(err)
	}
	if numUnits < 1 {
		return "", errors.NotValidf("%d units", numUnits)
	}
	if err := validatePlacement(toMachine); err != nil {
		return "", errors.Trace(err)
	}
	return cs.queueOrCall(AddUnits, opts, application, numUnits, toMachine, callback)
}

// RemoveUnits queues or calls the removal of units.
func (cs *ChangeSet) RemoveUnits(units []string, callback Callback, opts Options) (string, error) {
	if len(units) == 0 {
		return "", errors.NotValidf("empty unit list")
	}
	for _, unit := range units {
		if !names.IsValidUnit(unit) {
			return "", errors.NotValidf("unit name %q", unit)
		}
	}
	return cs.queueOrCall(RemoveUnits, opts, append([]string(nil), units...), callback)
}

// SetConfig queues or calls a config change of application.
func (cs *ChangeSet) SetConfig(application string, config map[string]any, configRaw string, callback Callback, opts Options) (string, error) {
	if err := validateApplication(application); err != nil {
		return "", errors.Trace(err)
	}
	return cs.queueOrCall(SetConfig, opts, application, copyConfig(config), configRaw, callback)
}

// AddRelation queues or calls the relation of two endpoints.
func (cs *ChangeSet) AddRelation(endpointA, endpointB string, callback Callback, opts Options) (string, error) {
	if err := validateEndpoints(endpointA, endpointB); err != nil {
		return "", errors.Trace(err)
	}
	return cs.queueOrCall(AddRelation, opts, endpointA, endpointB, callback)
}

// RemoveRelation queues or calls the removal of the relation between two
// endpoints.
func (cs *ChangeSet) RemoveRelation(endpointA, endpointB string, callback Callback, opts Options) (string, error) {
	if err := validateEndpoints(endpointA, endpointB); err != nil {
		return "", errors.Trace(err)
	}
	return cs.queueOrCall(RemoveRelation, opts, endpointA, endpointB, callback)
}

// DestroyApplication queues or calls the removal of application.
func (cs *ChangeSet) DestroyApplication(application string, callback Callback, opts Options) (string, error) {
	return cs.applicationOperation(DestroyApplication, application, callback, opts)
}

// Expose queues or calls the exposure of application.
func (cs *ChangeSet) Expose(application string, callback Callback, opts Options) (string, error) {
	return cs.applicationOperation(Expose, application, callback, opts)
}

// Unexpose queues or calls the withdrawal of application's exposure.
func (cs *ChangeSet) Unexpose(application string, callback Callback, opts Options) (string, error) {
	return cs.applicationOperation(Unexpose, application, callback, opts)
}

func (cs *ChangeSet) applicationOperation(method Method, application string, callback Callback, opts Options) (string, error) {
	if err := validateApplication(application); err != nil {
		return "", errors.Trace(err)
	}
	return cs.queueOrCall(method, opts, application, callback)
}

// AddMachines queues or calls the addition of machines and containers.
func (cs *ChangeSet) AddMachines(params []MachineParams, callback Callback, opts Options) (string, error) {
	if len(params) == 0 {
		return "", errors.NotValidf("empty machine list")
	}
	for _, p := range params {
		if p.ParentID != "" && !names.IsValidMachine(p.ParentID) {
			return "", errors.NotValidf("parent machine %q", p.ParentID)
		}
		if p.ParentID != "" && p.ContainerType == "" {
			return "", errors.NotValidf("parent machine %q without container type", p.ParentID)
		}
	}
	return cs.queueOrCall(AddMachines, opts, append([]MachineParams(nil), params...), callback)
}

// DestroyMachines queues or calls the removal of machines.
func (cs *ChangeSet) DestroyMachines(machines []string, force bool, callback Callback, opts Options) (string, error) {
	if len(machines) == 0 {
		return "", errors.NotValidf("empty machine list")
	}
	for _, machine := range machines {
		if !names.IsValidMachine(machine) {
			return "", errors.NotValidf("machine %q", machine)
		}
	}
	return cs.queueOrCall(DestroyMachines, opts, append([]string(nil), machines...), force, callback)
}

// UpdateAnnotations queues or calls an annotation update of entity.
func (cs *ChangeSet) UpdateAnnotations(entity string, annotations map[string]string, callback Callback, opts Options) (string, error) {
	if entity == "" {
		return "", errors.NotValidf("empty entity")
	}
	return cs.queueOrCall(UpdateAnnotations, opts, entity, maps.Clone(annotations), callback)
}

func (cs *ChangeSet) queueOrCall(method Method, opts Options, args ...any) (string, error) {
	if opts.Immediate {
		cs.logger.Debugf("calling %s immediately", method)
		cs.metrics.immediateCalls.WithLabelValues(string(method)).Inc()
		return "", errors.Trace(dispatch(cs.config.Environment, method, args))
	}
	key, err := cs.createRecord(method.RecordType(), Command{
		Method: method,
		Args:   args,
	})
	if err != nil {
		return "", errors.Trace(err)
	}
	return key, nil
}

// copyConfig returns a deep copy of config, so that later changes made by
// the caller do not leak into a queued command.
func copyConfig(config map[string]any) map[string]any {
	if config == nil {
		return nil
	}
	return deepcopy.Copy(config).(map[string]any)
}

func validateApplication(application string) error {
	if !names.IsValidApplication(application) {
		return errors.NotValidf("application name %q", application)
	}
	return nil
}

var containerTypes = set.NewStrings("lxd", "kvm")

// validatePlacement accepts an empty placement, a machine, or a new
// container such as "lxd:3" or "lxd".
func validatePlacement(toMachine string) error {
	if toMachine == "" || names.IsValidMachine(toMachine) {
		return nil
	}
	containerType, machine, ok := strings.Cut(toMachine, ":")
	if containerTypes.Contains(containerType) && (!ok || names.IsValidMachine(machine)) {
		return nil
	}
	return errors.NotValidf("placement %q", toMachine)
}

func validateEndpoints(endpointA, endpointB string) error {
	for _, endpoint := range []string{endpointA, endpointB} {
		application, _, _ := strings.Cut(endpoint, ":")
		if !names.IsValidApplication(application) {
			return errors.NotValidf("endpoint %q", endpoint)
		}
	}
	return nil
}
