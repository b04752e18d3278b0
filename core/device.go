// Copyright (c) 2026 vkt
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core

import (
	"errors"

	vk "github.com/vulkan-go/vulkan"
)

// selectPhysicalDevice returns the first enumerated device that
// satisfies every suitability predicate, together with its discovered
// queue families. First match wins, no scoring: on the target class of
// hardware there is rarely more than one device, and a deterministic
// pick keeps behaviour reproducible.
func selectPhysicalDevice(devices []vk.PhysicalDevice, surface vk.Surface, requiredExtensions []string) (vk.PhysicalDevice, QueueFamilyIndices, error) {
	return firstSuitable(devices, func(device vk.PhysicalDevice) (QueueFamilyIndices, bool) {
		return deviceSuitable(device, surface, requiredExtensions)
	})
}

func firstSuitable(devices []vk.PhysicalDevice, suitable func(vk.PhysicalDevice) (QueueFamilyIndices, bool)) (vk.PhysicalDevice, QueueFamilyIndices, error) {
	for _, device := range devices {
		if indices, ok := suitable(device); ok {
			return device, indices, nil
		}
	}
	return nil, QueueFamilyIndices{}, ErrNoSuitableDevice
}

// deviceSuitable tests the four selection predicates: a graphics
// family, a present family, the required device extensions, and a
// surface with at least one format and one present mode.
func deviceSuitable(device vk.PhysicalDevice, surface vk.Surface, requiredExtensions []string) (QueueFamilyIndices, bool) {
	indices := findQueueFamilies(device, surface)
	if !indices.Complete() {
		return indices, false
	}

	if !supportsExtensions(device, requiredExtensions) {
		return indices, false
	}

	support, err := querySurfaceSupport(device, surface)
	if err != nil {
		return indices, false
	}
	if len(support.formats) == 0 || len(support.presentModes) == 0 {
		return indices, false
	}

	return indices, true
}

func supportsExtensions(device vk.PhysicalDevice, required []string) bool {
	var count uint32
	if err := vk.Error(vk.EnumerateDeviceExtensionProperties(device, "", &count, nil)); err != nil {
		return false
	}
	available := make([]vk.ExtensionProperties, count)
	if err := vk.Error(vk.EnumerateDeviceExtensionProperties(device, "", &count, available)); err != nil {
		return false
	}

	missing := make(map[string]struct{}, len(required))
	for _, name := range required {
		missing[name] = struct{}{}
	}
	for _, ext := range available {
		ext.Deref()
		delete(missing, vk.ToString(ext.ExtensionName[:]))
	}
	return len(missing) == 0
}

// createLogicalDevice builds a logical device over the discovered
// queue families, requesting one queue per distinct family, and
// retrieves both queue handles. Failure here is unrecoverable.
func createLogicalDevice(physicalDevice vk.PhysicalDevice, indices QueueFamilyIndices, cfg RendererConfiguration, debug bool) (vk.Device, vk.Queue, vk.Queue, error) {
	if !indices.Complete() {
		return nil, nil, nil, fatal("core.createLogicalDevice", ErrIncompleteQueues)
	}

	queueInfos := []vk.DeviceQueueCreateInfo{}
	for _, family := range indices.Distinct() {
		queueInfos = append(queueInfos, vk.DeviceQueueCreateInfo{
			SType:            vk.StructureTypeDeviceQueueCreateInfo,
			QueueFamilyIndex: family,
			QueueCount:       1,
			PQueuePriorities: []float32{1.0},
		})
	}

	extensions := safeStrings(cfg.DeviceExtensions)
	dci := vk.DeviceCreateInfo{
		SType:                   vk.StructureTypeDeviceCreateInfo,
		QueueCreateInfoCount:    uint32(len(queueInfos)),
		PQueueCreateInfos:       queueInfos,
		EnabledExtensionCount:   uint32(len(extensions)),
		PpEnabledExtensionNames: extensions,
		PEnabledFeatures:        []vk.PhysicalDeviceFeatures{{}},
	}
	if debug {
		layers := safeStrings([]string{"VK_LAYER_KHRONOS_validation"})
		dci.EnabledLayerCount = uint32(len(layers))
		dci.PpEnabledLayerNames = layers
	}

	var device vk.Device
	if err := vk.Error(vk.CreateDevice(physicalDevice, &dci, nil, &device)); err != nil {
		return nil, nil, nil, fatal("vk.CreateDevice()", errors.New(err.Error()))
	}

	var graphicsQueue vk.Queue
	vk.GetDeviceQueue(device, indices.Graphics.Get(), 0, &graphicsQueue)

	var presentQueue vk.Queue
	vk.GetDeviceQueue(device, indices.Present.Get(), 0, &presentQueue)

	return device, graphicsQueue, presentQueue, nil
}
