// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package changeset

import (
	"github.com/juju/clock"
	"github.com/juju/errors"
	"github.com/juju/pubsub/v2"
	"github.com/prometheus/client_golang/prometheus"
)

// Logger represents the logging methods called.
type Logger interface {
	Debugf(message string, args ...any)
	Warningf(message string, args ...any)
}

// Config holds the dependencies of a ChangeSet.
type Config struct {
	// Environment receives the commands as they are executed.
	Environment Environment

	// Hub receives the change set's events. See the *Topic constants.
	Hub *pubsub.SimpleHub

	// Clock stamps the creation time of records.
	Clock clock.Clock

	// Keys generates record keys. It defaults to RandomKeys.
	Keys KeyGenerator

	// Logger defaults to the package logger.
	Logger Logger

	// PrometheusRegisterer is optional. When set, the change set's
	// metrics are registered with it while the change set runs.
	PrometheusRegisterer prometheus.Registerer
}

// Validate returns an error if the config cannot be used to start a
// ChangeSet.
func (config Config) Validate() error {
	if config.Environment == nil {
		return errors.NotValidf("nil Environment")
	}
	if config.Hub == nil {
		return errors.NotValidf("nil Hub")
	}
	if config.Clock == nil {
		return errors.NotValidf("nil Clock")
	}
	return nil
}
