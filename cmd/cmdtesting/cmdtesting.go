// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package cmdtesting

import (
	"bytes"
	"io"
	"strings"

	gc "gopkg.in/check.v1"

	"github.com/juju/juju-gui/cmd"
)

// Context returns a command context whose output goes to buffers and whose
// directory is a fresh temporary one.
func Context(c *gc.C) *cmd.Context {
	return ContextWithStdin(c, "")
}

// ContextWithStdin is like Context but reads stdin from input.
func ContextWithStdin(c *gc.C, input string) *cmd.Context {
	return &cmd.Context{
		Dir:    c.MkDir(),
		Stdin:  strings.NewReader(input),
		Stdout: &bytes.Buffer{},
		Stderr: &bytes.Buffer{},
	}
}

// Stdout returns what the command wrote to stdout.
func Stdout(ctx *cmd.Context) string {
	return bufferString(ctx.Stdout)
}

// Stderr returns what the command wrote to stderr.
func Stderr(ctx *cmd.Context) string {
	return bufferString(ctx.Stderr)
}

func bufferString(stream io.Writer) string {
	return stream.(*bytes.Buffer).String()
}

// InitCommand parses args on com without running it.
func InitCommand(com cmd.Command, args []string) error {
	return cmd.Parse(com, cmd.NewFlagSet(com), args)
}

// RunCommand parses args on com and runs it in ctx.
func RunCommand(ctx *cmd.Context, com cmd.Command, args ...string) error {
	if err := InitCommand(com, args); err != nil {
		return err
	}
	return com.Run(ctx)
}

// HelpText returns a command's formatted help text.
func HelpText(com cmd.Command) string {
	return string(com.Info().Help(cmd.NewFlagSet(com)))
}
