// Copyright (c) 2026 vkt
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package main

import (
	"path/filepath"
	"testing"
)

func TestEntryPath(t *testing.T) {
	tests := []struct {
		name    string
		want    string
		wantErr bool
	}{
		{name: "shader.vert.spv", want: "shader.vert.spv"},
		{name: "textures/wall.png", want: filepath.Join("textures", "wall.png")},
		{name: "../escape", wantErr: true},
		{name: "sub/../../escape", wantErr: true},
		{name: "..", wantErr: true},
		{name: "/etc/passwd", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := entryPath(tt.name)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("entry %q accepted as %q", tt.name, got)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
