// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package changeset

import (
	"reflect"

	"github.com/juju/errors"
)

// dispatcher calls the environment operation for a command, unpacking its
// positional arguments.
type dispatcher func(env Environment, args []any) error

var dispatchTable = map[Method]dispatcher{
	Deploy: func(env Environment, args []any) error {
		var (
			deploy   DeployArgs
			callback Callback
		)
		if err := unpack(Deploy, args,
			&deploy.CharmURL,
			&deploy.ApplicationName,
			&deploy.Config,
			&deploy.ConfigRaw,
			&deploy.NumUnits,
			&deploy.Constraints,
			&deploy.ToMachine,
			&callback,
		); err != nil {
			return errors.Trace(err)
		}
		env.Deploy(deploy, callback)
		return nil
	},
	AddUnits: func(env Environment, args []any) error {
		var (
			application, toMachine string
			numUnits               int
			callback               Callback
		)
		if err := unpack(AddUnits, args, &application, &numUnits, &toMachine, &callback); err != nil {
			return errors.Trace(err)
		}
		env.AddUnits(application, numUnits, toMachine, callback)
		return nil
	},
	RemoveUnits: func(env Environment, args []any) error {
		var (
			units    []string
			callback Callback
		)
		if err := unpack(RemoveUnits, args, &units, &callback); err != nil {
			return errors.Trace(err)
		}
		env.RemoveUnits(units, callback)
		return nil
	},
	SetConfig: func(env Environment, args []any) error {
		var (
			application, configRaw string
			config                 map[string]any
			callback               Callback
		)
		if err := unpack(SetConfig, args, &application, &config, &configRaw, &callback); err != nil {
			return errors.Trace(err)
		}
		env.SetConfig(application, config, configRaw, callback)
		return nil
	},
	AddRelation: func(env Environment, args []any) error {
		var (
			endpointA, endpointB string
			callback             Callback
		)
		if err := unpack(AddRelation, args, &endpointA, &endpointB, &callback); err != nil {
			return errors.Trace(err)
		}
		env.AddRelation(endpointA, endpointB, callback)
		return nil
	},
	RemoveRelation: func(env Environment, args []any) error {
		var (
			endpointA, endpointB string
			callback             Callback
		)
		if err := unpack(RemoveRelation, args, &endpointA, &endpointB, &callback); err != nil {
			return errors.Trace(err)
		}
		env.RemoveRelation(endpointA, endpointB, callback)
		return nil
	},
	DestroyApplication: applicationDispatcher(DestroyApplication, Environment.DestroyApplication),
	Expose:             applicationDispatcher(Expose, Environment.Expose),
	Unexpose:           applicationDispatcher(Unexpose, Environment.Unexpose),
	AddMachines: func(env Environment, args []any) error {
		var (
			params   []MachineParams
			callback Callback
		)
		if err := unpack(AddMachines, args, &params, &callback); err != nil {
			return errors.Trace(err)
		}
		env.AddMachines(params, callback)
		return nil
	},
	DestroyMachines: func(env Environment, args []any) error {
		var (
			machines []string
			force    bool
			callback Callback
		)
		if err := unpack(DestroyMachines, args, &machines, &force, &callback); err != nil {
			return errors.Trace(err)
		}
		env.DestroyMachines(machines, force, callback)
		return nil
	},
	UpdateAnnotations: func(env Environment, args []any) error {
		var (
			entity      string
			annotations map[string]string
			callback    Callback
		)
		if err := unpack(UpdateAnnotations, args, &entity, &annotations, &callback); err != nil {
			return errors.Trace(err)
		}
		env.UpdateAnnotations(entity, annotations, callback)
		return nil
	},
}

func applicationDispatcher(method Method, call func(Environment, string, Callback)) dispatcher {
	return func(env Environment, args []any) error {
		var (
			application string
			callback    Callback
		)
		if err := unpack(method, args, &application, &callback); err != nil {
			return errors.Trace(err)
		}
		call(env, application, callback)
		return nil
	}
}

// dispatch calls the named environment operation with args. It fails if
// the environment has no such operation or the arguments do not fit it.
func dispatch(env Environment, method Method, args []any) error {
	call, ok := dispatchTable[method]
	if !ok {
		return errors.NotSupportedf("environment method %q", method)
	}
	return errors.Trace(call(env, args))
}

// unpack assigns args to the values pointed at by targets. A nil argument
// leaves its target at the zero value.
func unpack(method Method, args []any, targets ...any) error {
	if len(args) != len(targets) {
		return errors.NotValidf("%s with %d arguments (expected %d)", method, len(args), len(targets))
	}
	for i, arg := range args {
		if arg == nil {
			continue
		}
		target := reflect.ValueOf(targets[i]).Elem()
		value := reflect.ValueOf(arg)
		if !value.Type().AssignableTo(target.Type()) {
			if !value.Type().ConvertibleTo(target.Type()) || value.Kind() != target.Kind() {
				return errors.NotValidf("%s argument %d of type %T", method, i, arg)
			}
			value = value.Convert(target.Type())
		}
		target.Set(value)
	}
	return nil
}
