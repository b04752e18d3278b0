// Copyright (c) 2026 vkt
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core

import (
	"image"
	"testing"
)

func TestMipChain(t *testing.T) {
	chain := mipChain(image.NewRGBA(image.Rect(0, 0, 8, 5)))

	wantDims := [][2]int{{8, 5}, {4, 2}, {2, 1}, {1, 1}}
	if len(chain) != len(wantDims) {
		t.Fatalf("got %d levels, want %d", len(chain), len(wantDims))
	}
	for i, level := range chain {
		w, h := level.Bounds().Dx(), level.Bounds().Dy()
		if w != wantDims[i][0] || h != wantDims[i][1] {
			t.Errorf("level %d: got %dx%d, want %dx%d",
				i, w, h, wantDims[i][0], wantDims[i][1])
		}
	}
}

func TestMipChainSingle(t *testing.T) {
	chain := mipChain(image.NewRGBA(image.Rect(0, 0, 1, 1)))
	if len(chain) != 1 {
		t.Errorf("1x1 image produced %d levels", len(chain))
	}
}
