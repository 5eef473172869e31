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

package gbf

import (
	"context"
	"io"
	"os"

	"github.com/google/renameio/v2"
	"github.com/model-checking/rmc/core/log"
	"github.com/model-checking/rmc/irep"
	"github.com/pkg/errors"
)

// WriteAll writes a complete stream holding t and flushes it.
func (w *Writer) WriteAll(ctx context.Context, t *irep.SymbolTable) error {
	w.WriteHeader()
	w.WriteTable(ctx, t)
	w.WriteFunctionMap()
	if err := w.Flush(); err != nil {
		return errors.Wrapf(err, "Writing goto binary at offset %d", w.w.Offset())
	}
	return nil
}

// ReadAll reads a complete stream and returns its symbol table.
func (r *Reader) ReadAll(ctx context.Context) (*irep.SymbolTable, error) {
	r.ReadHeader()
	t := r.ReadTable(ctx)
	r.ReadFunctionMap()
	if err := r.Error(); err != nil {
		return nil, errors.Wrapf(err, "Reading goto binary at offset %d", r.Offset())
	}
	return t, nil
}

// Write writes t to to as a goto binary stream, numbering it afresh.
func Write(ctx context.Context, to io.Writer, t *irep.SymbolTable) error {
	w := NewWriter(to, nil)
	if err := w.WriteAll(ctx, t); err != nil {
		return err
	}
	logStats(ctx, "Wrote goto binary", w.Stats())
	return nil
}

// Read reads a goto binary stream from from.
func Read(ctx context.Context, from io.Reader) (*irep.SymbolTable, error) {
	r := NewReader(from, nil)
	t, err := r.ReadAll(ctx)
	if err != nil {
		return nil, err
	}
	logStats(ctx, "Read goto binary", r.Stats())
	return t, nil
}

// WriteFile writes t to the file at path. The file is replaced atomically:
// if writing fails the previous contents of path are left untouched.
func WriteFile(ctx context.Context, path string, t *irep.SymbolTable) error {
	f, err := renameio.NewPendingFile(path, renameio.WithPermissions(0644), renameio.WithExistingPermissions())
	if err != nil {
		return errors.Wrapf(err, "Creating %s", path)
	}
	defer f.Cleanup()
	if err := Write(log.PutTag(ctx, path), f, t); err != nil {
		return err
	}
	if err := f.CloseAtomicallyReplace(); err != nil {
		return errors.Wrapf(err, "Replacing %s", path)
	}
	return nil
}

// ReadFile reads the goto binary file at path.
func ReadFile(ctx context.Context, path string) (*irep.SymbolTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(log.PutTag(ctx, path), f)
}

func logStats(ctx context.Context, msg string, s Stats) {
	log.Bind(ctx, log.V{
		"symbols": s.Symbols,
		"atoms":   s.Atoms.Distinct,
		"nodes":   s.Nodes.Distinct,
		"bytes":   s.Bytes,
	}).D("%s", msg)
}
