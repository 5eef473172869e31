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
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/model-checking/rmc/core/fault"
	"github.com/model-checking/rmc/core/log"
	"github.com/model-checking/rmc/gbf"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const table = `symbols:
  - name: main::x
    module: main
    base_name: x
    mode: C
    flags: [is_static_lifetime, is_lvalue]
    type:
      id: signedbv
      named:
        - width: "32"
  - name: main::z
    module: main
    base_name: z
    mode: C
    type:
      id: signedbv
      named:
        - width: "32"
    value:
      id: plus
      sub:
        - id: symbol
          named:
            - identifier: main::x
        - constant
`

func run(t *testing.T, args ...string) (string, string, error) {
	stdout := &bytes.Buffer{}
	logs, buf := log.Buffer()
	err := newApp(func(int) {}).run(context.Background(), args, stdout, logs)
	return stdout.String(), buf.String(), err
}

func TestEncodeDecode(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "main.yaml")
	out := filepath.Join(dir, "main.gb")
	require.NoError(t, os.WriteFile(in, []byte(table), 0644))

	_, logs, err := run(t, "encode", in, out)
	require.NoError(t, err)
	assert.Contains(t, logs, "Wrote 2 symbols to "+out)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x7f, 'G', 'B', 'F', 0x05}, data[:5])

	stdout, _, err := run(t, "decode", out)
	require.NoError(t, err)
	assert.Equal(t, table, stdout)
}

func TestStatsAndCheck(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "main.yaml")
	good := filepath.Join(dir, "good.gb")
	bad := filepath.Join(dir, "bad.gb")
	require.NoError(t, os.WriteFile(in, []byte(table), 0644))
	_, _, err := run(t, "encode", in, good)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(bad, []byte{0x7f, 'G', 'B', 'F', 0x06}, 0644))

	stdout, _, err := run(t, "stats", good)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stdout, good+":\n"), stdout)
	assert.Contains(t, stdout, "symbols: 2")

	stdout, _, err = run(t, "--jobs=2", "stats", "--json", good, good)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	require.Len(t, lines, 2)
	for _, line := range lines {
		var got struct {
			File    string  `json:"file"`
			Symbols float64 `json:"symbols"`
			Nodes   struct {
				References float64 `json:"references"`
			} `json:"nodes"`
		}
		require.NoError(t, json.Unmarshal([]byte(line), &got), line)
		assert.Equal(t, good, got.File)
		assert.Equal(t, 2.0, got.Symbols)
		assert.Equal(t, 10.0, got.Nodes.References)
	}

	stdout, logs, err := run(t, "check", good, bad, filepath.Join(dir, "missing.gb"))
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "2 of 3 files failed: "+bad+": "), err.Error())
	failed, ok := errors.Cause(err).(fault.List)
	require.True(t, ok, "cause is %T", errors.Cause(err))
	require.Len(t, failed, 2)
	assert.Equal(t, gbf.ErrUnsupportedVersion{Version: 6}, errors.Cause(failed[0]))
	assert.True(t, os.IsNotExist(errors.Cause(failed[1])))
	assert.Equal(t, good+": ok, 2 symbols\n"+bad+": malformed\n"+filepath.Join(dir, "missing.gb")+": error\n", stdout)
	assert.Contains(t, logs, "Unsupported goto binary version: 6")
}

func TestLogLevel(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "main.yaml")
	require.NoError(t, os.WriteFile(in, []byte(table), 0644))

	_, logs, err := run(t, "--log-level=warning", "encode", in, filepath.Join(dir, "main.gb"))
	require.NoError(t, err)
	assert.Empty(t, logs)

	_, logs, err = run(t, "--log-level=debug", "--log-style=brief", "encode", in, filepath.Join(dir, "main.gb"))
	require.NoError(t, err)
	assert.Contains(t, logs, "Wrote goto binary")
}

func TestUsageErrors(t *testing.T) {
	stdout, _, err := run(t)
	assert.Error(t, err)
	assert.Contains(t, stdout, "usage: gbf")
	_, _, err = run(t, "encode", "only-one-arg")
	assert.Error(t, err)
	_, _, err = run(t, "--log-level=loud", "check", "x")
	assert.Error(t, err)
}

func TestNoCommand(t *testing.T) {
	a := newApp(func(int) {})
	a.commands = map[string]command{}
	err := a.run(context.Background(), []string{"check", "x"}, &bytes.Buffer{}, func(string, log.Severity) {})
	assert.EqualError(t, err, "no command given")
}
