// Copyright (c) 2026 vkt
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core

import (
	"testing"

	vk "github.com/vulkan-go/vulkan"
)

func TestFramesInFlight(t *testing.T) {
	if framesInFlight != 2 {
		t.Errorf("got %d frame slots, want 2", framesInFlight)
	}
}

func TestSlotFencesStartSignaled(t *testing.T) {
	fci := slotFenceCreateInfo()
	if fci.Flags&vk.FenceCreateFlags(vk.FenceCreateSignaledBit) == 0 {
		t.Error("slot fences must be created signaled, or the first frame deadlocks")
	}
}
