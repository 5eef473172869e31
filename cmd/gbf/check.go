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

	"github.com/model-checking/rmc/core/fault"
	"github.com/model-checking/rmc/core/log"
	"github.com/model-checking/rmc/gbf"
	"github.com/pkg/errors"
)

// checkCommand reads goto binary files and reports the ones that fail.
type checkCommand struct {
	jobs  *int
	files *[]string
}

func (a *app) addCheckCommand() {
	cmd := &checkCommand{jobs: a.jobs}
	c := a.Command("check", "Check that goto binary files can be read.")
	cmd.files = c.Arg("file", "The files to check.").Required().Strings()
	a.add(c.FullCommand(), cmd)
}

func (cmd *checkCommand) run(ctx context.Context, stdout io.Writer) error {
	errs := fault.List{}
	for _, r := range readAll(ctx, *cmd.files, *cmd.jobs) {
		if r.err == nil {
			fmt.Fprintf(stdout, "%s: ok, %d symbols\n", r.file, r.stats.Symbols)
			continue
		}
		kind := "error"
		if gbf.IsFormatError(r.err) {
			kind = "malformed"
		}
		fmt.Fprintf(stdout, "%s: %s\n", r.file, kind)
		log.E(log.PutTag(ctx, r.file), "%v", r.err)
		errs.Collect(errors.Wrap(r.err, r.file))
	}
	if err := errs.Err(); err != nil {
		return errors.Wrapf(err, "%d of %d files failed", len(errs), len(*cmd.files))
	}
	return nil
}
