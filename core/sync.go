// Copyright (c) 2026 vkt
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core

import (
	"errors"

	vk "github.com/vulkan-go/vulkan"
)

// framesInFlight is the number of frames that may be recorded before
// the CPU has to wait for the GPU. Two gives double buffering of the
// submission state.
const framesInFlight = 2

// frameSync is the synchronisation set of one in-flight frame slot.
type frameSync struct {
	// imageAvailable is signaled when the acquired swapchain image
	// is ready to be rendered to.
	imageAvailable vk.Semaphore

	// renderFinished is signaled by the submission and waited on by
	// the present call.
	renderFinished vk.Semaphore

	// inFlight gates reuse of this slot. Created signaled so the
	// first wait returns immediately.
	inFlight vk.Fence
}

// slotFenceCreateInfo is the template for slot fences. They start
// signaled so the first wait on a slot returns immediately.
func slotFenceCreateInfo() vk.FenceCreateInfo {
	return vk.FenceCreateInfo{
		SType: vk.StructureTypeFenceCreateInfo,
		Flags: vk.FenceCreateFlags(vk.FenceCreateSignaledBit),
	}
}

// createSyncObjects allocates the semaphore/semaphore/fence triple for
// every frame slot.
func createSyncObjects(device vk.Device) ([framesInFlight]frameSync, error) {
	var sets [framesInFlight]frameSync

	sci := vk.SemaphoreCreateInfo{
		SType: vk.StructureTypeSemaphoreCreateInfo,
	}
	fci := slotFenceCreateInfo()

	for i := 0; i < framesInFlight; i++ {
		if err := vk.Error(vk.CreateSemaphore(device, &sci, nil, &sets[i].imageAvailable)); err != nil {
			return sets, fatal("vk.CreateSemaphore()", errors.New(err.Error()))
		}
		if err := vk.Error(vk.CreateSemaphore(device, &sci, nil, &sets[i].renderFinished)); err != nil {
			return sets, fatal("vk.CreateSemaphore()", errors.New(err.Error()))
		}
		if err := vk.Error(vk.CreateFence(device, &fci, nil, &sets[i].inFlight)); err != nil {
			return sets, fatal("vk.CreateFence()", errors.New(err.Error()))
		}
	}

	return sets, nil
}

// destroySyncObjects releases every slot's objects. The device must be
// idle before this is called.
func destroySyncObjects(device vk.Device, sets *[framesInFlight]frameSync) {
	for i := 0; i < framesInFlight; i++ {
		if sets[i].imageAvailable != vk.Semaphore(vk.NullHandle) {
			vk.DestroySemaphore(device, sets[i].imageAvailable, nil)
		}
		if sets[i].renderFinished != vk.Semaphore(vk.NullHandle) {
			vk.DestroySemaphore(device, sets[i].renderFinished, nil)
		}
		if sets[i].inFlight != vk.Fence(vk.NullHandle) {
			vk.DestroyFence(device, sets[i].inFlight, nil)
		}
		sets[i] = frameSync{}
	}
}
