// Copyright (c) 2026 vkt
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package asset abstracts where shader binaries and textures come
// from. Rendering code asks for a fully-read byte buffer by logical
// path and does not care whether it was a plain directory or a pak
// archive that answered.
package asset

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrEmptyAsset is returned when a named asset resolves to zero bytes.
// A zero-size shader or texture always indicates a broken bundle, so
// the failure is loud instead of letting Vulkan report something
// harder to trace.
var ErrEmptyAsset = errors.New("asset: zero-size asset")

// Source supplies raw bytes for named assets.
type Source interface {
	// ReadAll returns the entire contents of the named asset.
	ReadAll(name string) ([]byte, error)
}

// Dir is a Source backed by a directory on disk.
type Dir string

// ReadAll implements Source.
func (d Dir) ReadAll(name string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(string(d), filepath.FromSlash(name)))
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyAsset, name)
	}
	return data, nil
}
