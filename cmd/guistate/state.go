// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package main

import (
	"fmt"

	"github.com/juju/errors"
	"github.com/juju/gnuflag"
	"github.com/juju/loggo/v2"
	"gopkg.in/yaml.v3"

	"github.com/juju/juju-gui/cmd"
	"github.com/juju/juju-gui/core/guistate"
)

var logger = loggo.GetLogger("juju.gui.cmd.guistate")

const stateDoc = `
guistate translates GUI URLs into the state they describe, one entry per
URL, in the order given.

With --serialize, it instead reads a state document (YAML or JSON, or "-"
for stdin) and prints the canonical URL for it. The document is either a
single state or the list of entries printed by this command, in which case
one URL is printed per entry.

Examples:
    guistate http://localhost:8080/i/inspector/mysql/machines/3
    guistate --base-url https://demo.example.com/gui --format json /gui/u/hatch/charms
    guistate --serialize state.yaml
    guistate /i/inspector/mysql | guistate --serialize -
`

// urlState is one entry of the command's output.
type urlState struct {
	URL    string          `yaml:"url" json:"url"`
	Branch guistate.Branch `yaml:"branch,omitempty" json:"branch,omitempty"`
	State  guistate.State  `yaml:"state" json:"state"`
}

type stateCommand struct {
	out cmd.Output
	log cmd.Log

	baseURL   string
	serialize cmd.FileVar
	urls      []string
}

func newStateCommand() *stateCommand {
	return &stateCommand{}
}

// Info implements cmd.Command.
func (c *stateCommand) Info() *cmd.Info {
	return &cmd.Info{
		Name:    "guistate",
		Args:    "<url> ...",
		Purpose: "Parse GUI URLs into states and back.",
		Doc:     stateDoc,
	}
}

// SetFlags implements cmd.Command.
func (c *stateCommand) SetFlags(f *gnuflag.FlagSet) {
	c.log.AddFlags(f)
	c.out.AddFlags(f, "yaml", cmd.DefaultFormatters)
	f.StringVar(&c.baseURL, "base-url", "", "The URL the GUI is served from")
	f.Var(&c.serialize, "serialize", "Print the URL for the state in this file")
}

// Init implements cmd.Command.
func (c *stateCommand) Init(args []string) error {
	if c.serialize.Path != "" {
		return errors.Trace(cmd.CheckEmpty(args))
	}
	if len(args) == 0 {
		return errors.New("no URLs specified")
	}
	c.urls = args
	return nil
}

// Run implements cmd.Command.
func (c *stateCommand) Run(ctx *cmd.Context) error {
	restore, err := c.log.Start(ctx)
	if err != nil {
		return errors.Trace(err)
	}
	defer restore()

	router, err := guistate.NewRouter(guistate.Config{
		BaseURL: c.baseURL,
		Logger:  logger,
	})
	if err != nil {
		return errors.Trace(err)
	}

	if c.serialize.Path != "" {
		return errors.Trace(c.serializeState(ctx, router))
	}

	results := make([]urlState, len(c.urls))
	for i, url := range c.urls {
		state := router.BuildState(url)
		branch, _ := state.Branch()
		results[i] = urlState{
			URL:    url,
			Branch: branch,
			State:  state,
		}
	}
	return errors.Trace(c.out.Write(ctx, results))
}

func (c *stateCommand) serializeState(ctx *cmd.Context, router *guistate.Router) error {
	data, err := c.serialize.Read(ctx)
	if err != nil {
		return errors.Annotate(err, "reading state")
	}
	var entries []urlState
	if err := yaml.Unmarshal(data, &entries); err != nil || len(entries) == 0 {
		var state guistate.State
		if err := yaml.Unmarshal(data, &state); err != nil {
			return errors.Annotatef(err, "parsing state %q", c.serialize.Path)
		}
		entries = []urlState{{State: state}}
	}
	for _, entry := range entries {
		state := entry.State
		// An empty GUI map does not survive encoding; the branch does.
		if entry.Branch == guistate.BranchGUI && state.GUI == nil {
			state.GUI = map[string]string{}
		}
		if _, err := fmt.Fprintln(ctx.Stdout, router.Serialize(state)); err != nil {
			return errors.Trace(err)
		}
	}
	return nil
}
