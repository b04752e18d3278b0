// Copyright (c) 2026 vkt
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core

import (
	vk "github.com/vulkan-go/vulkan"

	"github.com/vkt/hellovk/internal/optional"
)

// QueueFamilyIndices holds the indices of the queue families the
// renderer needs. Graphics and present may name the same family.
type QueueFamilyIndices struct {
	// Graphics is the index of a family with graphics capability.
	Graphics optional.Optional[uint32]

	// Present is the index of a family able to present to the
	// target surface.
	Present optional.Optional[uint32]
}

// Complete reports whether both families have been discovered.
func (f QueueFamilyIndices) Complete() bool {
	return f.Graphics.HasValue() && f.Present.HasValue()
}

// Distinct returns the de-duplicated family index set, used when
// requesting one queue per family at device creation.
func (f QueueFamilyIndices) Distinct() []uint32 {
	if !f.Complete() {
		return nil
	}
	g, p := f.Graphics.Get(), f.Present.Get()
	if g == p {
		return []uint32{g}
	}
	return []uint32{g, p}
}

// findQueueFamilies discovers the graphics and present capable queue
// families of device, relative to surface.
func findQueueFamilies(device vk.PhysicalDevice, surface vk.Surface) QueueFamilyIndices {
	var indices QueueFamilyIndices

	var familyCount uint32
	vk.GetPhysicalDeviceQueueFamilyProperties(device, &familyCount, nil)
	families := make([]vk.QueueFamilyProperties, familyCount)
	vk.GetPhysicalDeviceQueueFamilyProperties(device, &familyCount, families)

	for i, family := range families {
		family.Deref()

		if !indices.Graphics.HasValue() &&
			family.QueueFlags&vk.QueueFlags(vk.QueueGraphicsBit) != 0 {
			indices.Graphics.Set(uint32(i))
		}

		var supportsPresent vk.Bool32
		vk.GetPhysicalDeviceSurfaceSupport(device, uint32(i), surface, &supportsPresent)
		if !indices.Present.HasValue() && supportsPresent.B() {
			indices.Present.Set(uint32(i))
		}

		if indices.Complete() {
			break
		}
	}

	return indices
}
