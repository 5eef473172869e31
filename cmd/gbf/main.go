// Copyright (C) 2017 Google Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// The gbf command converts symbol tables between YAML and the goto binary
// format, and inspects goto binary files.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"strconv"

	"github.com/alecthomas/kingpin/v2"
	"github.com/fatih/color"
	"github.com/model-checking/rmc/core/log"
	"github.com/pkg/errors"
)

// command is a sub-command that has been selected on the command line.
type command interface {
	run(ctx context.Context, stdout io.Writer) error
}

type app struct {
	*kingpin.Application
	level    *string
	style    *string
	jobs     *int
	commands map[string]command
}

// newApp returns the application. exit is called with the status after
// help or usage has been printed.
func newApp(exit func(int)) *app {
	a := &app{
		Application: kingpin.New("gbf", "Reads, writes and inspects goto binary files."),
		commands:    map[string]command{},
	}
	a.Terminate(exit)
	a.HelpFlag.Short('h')
	a.level = a.Flag("log-level", "The lowest severity of logged messages.").
		Default("info").Enum(log.SeverityNames()...)
	a.style = a.Flag("log-style", "The style of logged messages.").
		Default("normal").Enum(log.StyleNames()...)
	a.jobs = a.Flag("jobs", "The number of files processed at once.").
		Short('j').Default(strconv.Itoa(runtime.NumCPU())).Int()

	a.addEncodeCommand()
	a.addDecodeCommand()
	a.addStatsCommand()
	a.addCheckCommand()
	return a
}

func (a *app) add(name string, cmd command) {
	a.commands[name] = cmd
}

// context returns a context logging with the selected severity and style.
func (a *app) context(ctx context.Context, w log.Writer) context.Context {
	severity, err := log.ParseSeverity(*a.level)
	if err != nil {
		severity = log.Info
	}
	style, ok := log.FindStyle(*a.style)
	if !ok {
		style = log.Normal
	}
	if !color.NoColor {
		style = style.Colored()
	}
	ctx = log.PutHandler(ctx, style.Handler(w))
	return log.PutFilter(ctx, log.SeverityFilter(severity))
}

// run parses args and runs the selected command.
func (a *app) run(ctx context.Context, args []string, stdout io.Writer, logs log.Writer) error {
	a.UsageWriter(stdout)
	name, err := a.Parse(args)
	if err != nil {
		return err
	}
	cmd, ok := a.commands[name]
	if !ok {
		return errors.Errorf("no command given")
	}
	return cmd.run(a.context(ctx, logs), stdout)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newApp(os.Exit).run(ctx, os.Args[1:], os.Stdout, log.Std())
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "gbf: %v\n", err)
		os.Exit(1)
	}
}
