// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package main

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/juju/ansiterm"
	"github.com/juju/errors"
	"github.com/juju/naturalsort"
)

var (
	executedColor = ansiterm.Foreground(ansiterm.Green)
	pendingColor  = ansiterm.Foreground(ansiterm.Yellow)
)

// formatTabular writes a planResult as a table of records followed by the
// environment calls made.
func formatTabular(writer io.Writer, value any) error {
	result, ok := value.(planResult)
	if !ok {
		return errors.Errorf("expected value of type %T, got %T", result, value)
	}

	tw := ansiterm.NewTabWriter(writer, 0, 1, 2, ' ', 0)
	fmt.Fprintln(tw, "Key\tType\tMethod\tStatus\tCreated")
	for _, record := range result.Records {
		for _, command := range record.Commands {
			fmt.Fprintf(tw, "%s\t%s\t%s\t", record.Key, record.Type, command.Method)
			if command.Executed {
				executedColor.Fprintf(tw, "executed")
			} else {
				pendingColor.Fprintf(tw, "pending")
			}
			fmt.Fprintf(tw, "\t%s\n", humanize.Time(record.Created))
		}
	}
	writeCalls(tw, "Immediate", result.Immediate)
	writeCalls(tw, "Committed", result.Committed)

	if len(result.Metrics) > 0 {
		names := make([]string, 0, len(result.Metrics))
		for name := range result.Metrics {
			names = append(names, name)
		}
		naturalsort.Sort(names)
		fmt.Fprintln(tw)
		fmt.Fprintln(tw, "Metric\tValue")
		for _, name := range names {
			fmt.Fprintf(tw, "%s\t%g\n", name, result.Metrics[name])
		}
	}
	return errors.Trace(tw.Flush())
}

func writeCalls(w io.Writer, heading string, calls []string) {
	if len(calls) == 0 {
		return
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, heading)
	for _, call := range calls {
		fmt.Fprintln(w, call)
	}
}
