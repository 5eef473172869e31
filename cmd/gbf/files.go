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
	"os"

	"github.com/model-checking/rmc/core/log"
	"github.com/model-checking/rmc/gbf"
	"golang.org/x/sync/errgroup"
)

// result is the outcome of reading one goto binary file.
type result struct {
	file  string
	stats gbf.Stats
	err   error
}

// readAll reads every file, up to jobs at a time, and returns the results
// in the order of files. A failure to read one file does not stop the others.
func readAll(ctx context.Context, files []string, jobs int) []result {
	results := make([]result, len(files))
	g := errgroup.Group{}
	if jobs > 0 {
		g.SetLimit(jobs)
	}
	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			results[i] = readOne(log.PutTag(ctx, file), file)
			return nil
		})
	}
	g.Wait()
	return results
}

func readOne(ctx context.Context, file string) result {
	f, err := os.Open(file)
	if err != nil {
		return result{file: file, err: err}
	}
	defer f.Close()
	r := gbf.NewReader(f, nil)
	if _, err := r.ReadAll(ctx); err != nil {
		return result{file: file, stats: r.Stats(), err: err}
	}
	log.D(ctx, "Read %d symbols", r.Stats().Symbols)
	return result{file: file, stats: r.Stats()}
}
