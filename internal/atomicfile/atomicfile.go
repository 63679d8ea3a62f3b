// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package atomicfile writes artifact files so that a failed write
// never leaves a truncated file behind: contents go to a temporary
// file in the destination directory, which is renamed into place only
// after a successful close.
package atomicfile

import (
	"io"
	"os"
	"path/filepath"
)

// Write creates or replaces the file at path with the bytes produced
// by contents. If contents or any I/O step fails, the destination is
// left untouched and the temporary file is removed.
func Write(path string, contents func(io.Writer) error) (err error) {
	dir, base := filepath.Split(path)
	f, err := os.CreateTemp(dir, base+".tmp")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			f.Close()
			os.Remove(f.Name())
		}
	}()
	if err = contents(f); err != nil {
		return err
	}
	if err = f.Chmod(0644); err != nil {
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), path)
}
