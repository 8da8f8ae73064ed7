// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package testing

import (
	"fmt"
	"sync"

	"github.com/juju/loggo/v2"
)

// CheckLog is an interface that can be used to log messages to a
// *testing.T or *check.C.
type CheckLog interface {
	Logf(string, ...any)
}

// CheckLogger logs to a *testing.T or *check.C and remembers every message
// at or above Warning so tests can assert on them.
type CheckLogger struct {
	Log CheckLog

	mu       sync.Mutex
	warnings []string
}

// NewCheckLogger returns a CheckLogger that logs to the given CheckLog.
func NewCheckLogger(log CheckLog) *CheckLogger {
	return &CheckLogger{Log: log}
}

func (c *CheckLogger) Errorf(msg string, args ...any) {
	c.Logf(loggo.ERROR, msg, args...)
}
func (c *CheckLogger) Warningf(msg string, args ...any) {
	c.Logf(loggo.WARNING, msg, args...)
}
func (c *CheckLogger) Infof(msg string, args ...any) {
	c.Logf(loggo.INFO, msg, args...)
}
func (c *CheckLogger) Debugf(msg string, args ...any) {
	c.Logf(loggo.DEBUG, msg, args...)
}

// Logf logs msg at the given level.
func (c *CheckLogger) Logf(level loggo.Level, msg string, args ...any) {
	formatted := fmt.Sprintf(msg, args...)
	if level >= loggo.WARNING {
		c.mu.Lock()
		c.warnings = append(c.warnings, formatted)
		c.mu.Unlock()
	}
	c.Log.Logf("%s: %s", level.String(), formatted)
}

// Warnings returns the messages logged at Warning or above.
func (c *CheckLogger) Warnings() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.warnings...)
}
