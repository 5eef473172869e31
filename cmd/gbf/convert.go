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

package main

import (
	"context"
	"io"
	"os"

	"github.com/model-checking/rmc/core/log"
	"github.com/model-checking/rmc/gbf"
	"github.com/model-checking/rmc/irep/irtext"
	"github.com/pkg/errors"
)

// encodeCommand converts a YAML symbol table to a goto binary file.
type encodeCommand struct {
	in  *string
	out *string
}

func (a *app) addEncodeCommand() {
	cmd := &encodeCommand{}
	c := a.Command("encode", "Convert a YAML symbol table to a goto binary file.")
	cmd.in = c.Arg("in", "The YAML file to read, or - for stdin.").Required().String()
	cmd.out = c.Arg("out", "The goto binary file to write.").Required().String()
	a.add(c.FullCommand(), cmd)
}

func (cmd *encodeCommand) run(ctx context.Context, stdout io.Writer) error {
	var in io.Reader = os.Stdin
	if *cmd.in != "-" {
		f, err := os.Open(*cmd.in)
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}
	table, err := irtext.Decode(in)
	if err != nil {
		return errors.Wrapf(err, "Reading %s", *cmd.in)
	}
	if err := gbf.WriteFile(ctx, *cmd.out, table); err != nil {
		return err
	}
	log.I(ctx, "Wrote %d symbols to %s", table.Len(), *cmd.out)
	return nil
}

// decodeCommand prints a goto binary file as a YAML symbol table.
type decodeCommand struct {
	in *string
}

func (a *app) addDecodeCommand() {
	cmd := &decodeCommand{}
	c := a.Command("decode", "Print a goto binary file as a YAML symbol table.")
	cmd.in = c.Arg("in", "The goto binary file to read.").Required().ExistingFile()
	a.add(c.FullCommand(), cmd)
}

func (cmd *decodeCommand) run(ctx context.Context, stdout io.Writer) error {
	table, err := gbf.ReadFile(ctx, *cmd.in)
	if err != nil {
		return err
	}
	return irtext.Encode(stdout, table)
}
