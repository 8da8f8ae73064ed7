// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package changeset

import (
	"fmt"
	"time"
)

// Method names an operation of the Environment.
type Method string

const (
	Deploy             Method = "deploy"
	AddUnits           Method = "addUnits"
	RemoveUnits        Method = "removeUnits"
	SetConfig          Method = "setConfig"
	AddRelation        Method = "addRelation"
	RemoveRelation     Method = "removeRelation"
	DestroyApplication Method = "destroyApplication"
	Expose             Method = "expose"
	Unexpose           Method = "unexpose"
	AddMachines        Method = "addMachines"
	DestroyMachines    Method = "destroyMachines"
	UpdateAnnotations  Method = "updateAnnotations"
)

// ServiceRecordType is the record type used for deployments.
const ServiceRecordType = "service"

// RecordType returns the type of record the builders create for the method.
func (m Method) RecordType() string {
	if m == Deploy {
		return ServiceRecordType
	}
	return string(m)
}

// IsValid reports whether the method is one the Environment supports.
func (m Method) IsValid() bool {
	_, ok := dispatchTable[m]
	return ok
}

// Callback is called by the environment when an operation completes. err
// is the error of the operation, if any, and results carries anything else
// the environment reports. The change set treats any invocation as
// completion, whatever err holds.
type Callback func(err error, results ...any)

// Command describes a single environment call. The final element of Args is
// the completion Callback.
type Command struct {
	Method   Method
	Args     []any
	Executed bool

	// id is unique within a change set, so a ref reused after Clear
	// does not reach a newer command.
	id uint64
}

func (c Command) copy() Command {
	c.Args = append([]any(nil), c.Args...)
	return c
}

// Record groups the commands queued under one change set key.
type Record struct {
	Key      string
	Type     string
	Created  time.Time
	Commands []Command
}

func (r *Record) copy() Record {
	result := *r
	result.Commands = make([]Command, len(r.Commands))
	for i, cmd := range r.Commands {
		result.Commands[i] = cmd.copy()
	}
	return result
}

// CommandRef addresses a command within a change set.
type CommandRef struct {
	Key   string
	Index int
}

// String implements fmt.Stringer.
func (r CommandRef) String() string {
	return fmt.Sprintf("%s[%d]", r.Key, r.Index)
}

// Options modify how a builder handles its operation.
type Options struct {
	// Immediate calls the environment straight away instead of queueing
	// the operation. No record is created.
	Immediate bool
}
