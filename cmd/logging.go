// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/juju/errors"
	"github.com/juju/gnuflag"
	"github.com/juju/loggo/v2"
)

// LoggingConfigEnvKey names the environment variable holding the default
// logging configuration.
const LoggingConfigEnvKey = "JUJU_GUI_LOGGING_CONFIG"

// Log supplies the logging flags of a command and configures loggo to
// write to the command's stderr.
type Log struct {
	Verbose bool
	Debug   bool
	Config  string
}

// AddFlags adds --verbose, --debug and --logging-config to f.
func (l *Log) AddFlags(f *gnuflag.FlagSet) {
	f.BoolVar(&l.Verbose, "verbose", false, "Show more verbose output")
	f.BoolVar(&l.Debug, "debug", false, "Equivalent to --logging-config=<root>=DEBUG")
	f.StringVar(&l.Config, "logging-config", os.Getenv(LoggingConfigEnvKey), "Specify log levels for modules")
}

// Start configures logging for a run of a command. The returned function
// restores the previous configuration.
func (l *Log) Start(ctx *Context) (func(), error) {
	previousConfig := loggo.LoggerInfo()
	previousWriter, err := loggo.ReplaceDefaultWriter(loggo.NewSimpleWriter(ctx.Stderr, logFormatter))
	if err != nil {
		return nil, errors.Annotate(err, "replacing log writer")
	}
	restore := func() {
		_, _ = loggo.ReplaceDefaultWriter(previousWriter)
		loggo.DefaultContext().ResetLoggerLevels()
		_ = loggo.ConfigureLoggers(previousConfig)
	}

	level := loggo.WARNING
	switch {
	case l.Debug:
		level = loggo.DEBUG
	case l.Verbose:
		level = loggo.INFO
	}
	if err := loggo.ConfigureLoggers(fmt.Sprintf("<root>=%s", level)); err != nil {
		restore()
		return nil, errors.Trace(err)
	}
	if l.Config != "" {
		if err := loggo.ConfigureLoggers(l.Config); err != nil {
			restore()
			return nil, errors.Annotatef(err, "parsing logging config %q", l.Config)
		}
	}
	return restore, nil
}

func logFormatter(entry loggo.Entry) string {
	ts := entry.Timestamp.In(time.UTC).Format("2006-01-02 15:04:05")
	return fmt.Sprintf("%s %s %s %s", ts, entry.Level, entry.Module, entry.Message)
}
