// Copyright (c) 2026 vkt
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package core contains the Vulkan lifecycle machinery: instance and
// device setup, swapchain management and the per-frame synchronisation
// that gates submission. All Vulkan calls are expected to happen on the
// single OS thread that drives the event loop.
package core

import (
	"unsafe"

	vk "github.com/vulkan-go/vulkan"

	"github.com/vkt/hellovk/asset"
)

// Instance describes a Vulkan instance and supporting methods.
// Once created it is ready to use.
type Instance interface {
	// PhysicalDevicesInfo returns a struct for each physical device
	// along with info about those devices.
	PhysicalDevicesInfo() []PhysicalDeviceInfo

	// AvailableDevices returns handles of physical devices
	// from the Vulkan API.
	AvailableDevices() []vk.PhysicalDevice

	// Instance returns the raw instance handle, needed by the
	// windowing layer to create a surface.
	Instance() vk.Instance

	// SetSurface hands a window surface over to the instance. The
	// transfer is exclusive: a previously held surface is released
	// before the new one is retained.
	SetSurface(unsafe.Pointer)

	// Surface returns the window surface. When no surface was set
	// it returns vk.NullSurface.
	Surface() vk.Surface

	// Extensions returns the instance extensions that were enabled.
	Extensions() []string

	// Destroy destroys internal members.
	Destroy()
}

// Renderer describes the rendering machinery. It is created with
// internal values only and must be initialised with Initialise()
// before the first frame.
type Renderer interface {
	// Reset hands over the asset source used for shaders and
	// textures. Must be called before Initialise.
	Reset(assets asset.Source)

	// Initialise walks the full setup path: device selection, logical
	// device, swapchain, pipeline and synchronisation objects.
	Initialise() error

	// Draw renders and presents one frame.
	Draw() error

	// NotifyOrientationChange flags the swapchain for recreation on
	// the next frame boundary.
	NotifyOrientationChange()

	// Destroy tears everything down in reverse acquisition order.
	// Safe to call more than once.
	Destroy()
}

// ShaderType represents the type of shader thats loaded.
type ShaderType int

// Identifies shader objects with their types.
const (
	VertexShaderType ShaderType = iota
	FragmentShaderType
	UnknownShaderType
)
