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
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/golang/protobuf/jsonpb"
	"github.com/model-checking/rmc/core/fault"
	"github.com/model-checking/rmc/gbf"
	"github.com/pkg/errors"
	"google.golang.org/protobuf/types/known/structpb"
)

// statsCommand prints sharing statistics for goto binary files.
type statsCommand struct {
	jobs  *int
	json  *bool
	files *[]string
}

func (a *app) addStatsCommand() {
	cmd := &statsCommand{jobs: a.jobs}
	c := a.Command("stats", "Print sharing statistics for goto binary files.")
	cmd.json = c.Flag("json", "Print one JSON object per file.").Bool()
	cmd.files = c.Arg("file", "The files to inspect.").Required().ExistingFiles()
	a.add(c.FullCommand(), cmd)
}

func (cmd *statsCommand) run(ctx context.Context, stdout io.Writer) error {
	errs := fault.List{}
	for _, r := range readAll(ctx, *cmd.files, *cmd.jobs) {
		if r.err != nil {
			errs.Collect(errors.Wrap(r.err, r.file))
			continue
		}
		var err error
		if *cmd.json {
			err = printJSON(stdout, r)
		} else {
			printStats(stdout, r)
		}
		errs.Collect(err)
	}
	return errs.Err()
}

func printStats(w io.Writer, r result) {
	s := r.stats
	bold := color.New(color.Bold)
	bold.Fprintf(w, "%s:\n", r.file)
	fmt.Fprintf(w, "\tsize: %v, symbols: %v\n", humanize.Bytes(uint64(s.Bytes)), humanize.Comma(int64(s.Symbols)))
	printSharing(w, "atoms", s.Atoms)
	printSharing(w, "nodes", s.Nodes)
	fmt.Fprintf(w, "\tnumbering: %v atoms, %v nodes, %v key words\n",
		humanize.Comma(int64(s.EngineAtoms)),
		humanize.Comma(int64(s.EngineNodes)),
		humanize.Comma(int64(s.KeyWords)))
}

func printSharing(w io.Writer, kind string, s gbf.Sharing) {
	fmt.Fprintf(w, "\t%s: %v distinct, %v references, %.2f per %s (min %v for #%d, max %v for #%d)\n",
		kind,
		humanize.Comma(int64(s.Distinct)),
		humanize.Comma(int64(s.References)),
		s.Average(),
		kind[:len(kind)-1],
		humanize.Comma(int64(s.Min)), s.MinNumber,
		humanize.Comma(int64(s.Max)), s.MaxNumber)
}

func printJSON(w io.Writer, r result) error {
	pb, err := r.stats.Proto()
	if err != nil {
		return err
	}
	pb.Fields["file"] = structpb.NewStringValue(r.file)
	m := jsonpb.Marshaler{OrigName: true}
	if err := m.Marshal(w, pb); err != nil {
		return err
	}
	_, err = io.WriteString(w, "\n")
	return err
}
