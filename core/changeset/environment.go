// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package changeset

// Environment is the remote model the change set applies its commands to.
// Every operation reports its outcome only through the supplied callback,
// which may be called before the method returns or at any later time.
type Environment interface {
	Deploy(args DeployArgs, callback Callback)
	AddUnits(application string, numUnits int, toMachine string, callback Callback)
	RemoveUnits(units []string, callback Callback)
	SetConfig(application string, config map[string]any, configRaw string, callback Callback)
	AddRelation(endpointA, endpointB string, callback Callback)
	RemoveRelation(endpointA, endpointB string, callback Callback)
	DestroyApplication(application string, callback Callback)
	Expose(application string, callback Callback)
	Unexpose(application string, callback Callback)
	AddMachines(params []MachineParams, callback Callback)
	DestroyMachines(machines []string, force bool, callback Callback)
	UpdateAnnotations(entity string, annotations map[string]string, callback Callback)
}

// DeployArgs holds the arguments of a deploy call.
type DeployArgs struct {
	CharmURL        string
	ApplicationName string
	Config          map[string]any
	// ConfigRaw is the application config as a YAML document. It is
	// passed through untouched.
	ConfigRaw   string
	NumUnits    int
	Constraints string
	ToMachine   string
}

// MachineParams describes a machine or container to add.
type MachineParams struct {
	Base          string `yaml:"base,omitempty"`
	Constraints   string `yaml:"constraints,omitempty"`
	ContainerType string `yaml:"container-type,omitempty"`
	ParentID      string `yaml:"parent-id,omitempty"`
}
