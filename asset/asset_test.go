// Copyright (c) 2026 vkt
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package asset_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/vkt/hellovk/asset"
)

func TestDirReadAll(t *testing.T) {
	dir := t.TempDir()
	want := []byte("shader bytes")
	if err := os.WriteFile(filepath.Join(dir, "triangle.vert.spv"), want, 0o644); err != nil {
		t.Fatal(err)
	}

	src := asset.Dir(dir)
	got, err := src.ReadAll("triangle.vert.spv")
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, want) {
		t.Error("contents differ")
	}
}

func TestDirMissingFile(t *testing.T) {
	src := asset.Dir(t.TempDir())
	if _, err := src.ReadAll("nothing.spv"); err == nil {
		t.Error("missing file read succeeded")
	}
}

func TestDirEmptyFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "empty.spv"), nil, 0o644); err != nil {
		t.Fatal(err)
	}

	src := asset.Dir(dir)
	if _, err := src.ReadAll("empty.spv"); !errors.Is(err, asset.ErrEmptyAsset) {
		t.Errorf("got %v, want ErrEmptyAsset", err)
	}
}
