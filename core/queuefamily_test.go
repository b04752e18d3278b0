// Copyright (c) 2026 vkt
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core

import "testing"

func TestQueueFamilyIndicesComplete(t *testing.T) {
	var indices QueueFamilyIndices
	if indices.Complete() {
		t.Error("empty indices reported complete")
	}

	indices.Graphics.Set(0)
	if indices.Complete() {
		t.Error("graphics-only indices reported complete")
	}

	indices.Present.Set(1)
	if !indices.Complete() {
		t.Error("full indices reported incomplete")
	}
}

func TestQueueFamilyIndicesDistinct(t *testing.T) {
	var indices QueueFamilyIndices
	indices.Graphics.Set(0)
	indices.Present.Set(0)

	if got := indices.Distinct(); len(got) != 1 || got[0] != 0 {
		t.Errorf("shared family: got %v, want [0]", got)
	}

	indices.Present.Set(2)
	if got := indices.Distinct(); len(got) != 2 || got[0] != 0 || got[1] != 2 {
		t.Errorf("split families: got %v, want [0 2]", got)
	}
}
