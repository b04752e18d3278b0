// Copyright (c) 2026 vkt
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core

import (
	"strconv"

	"github.com/gobuffalo/envy"
)

// Configuration defines a global engine configuration setting.
type Configuration struct {
	Time     TimeConfiguration
	Instance InstanceConfiguration
	Renderer RendererConfiguration
}

// TimeConfiguration is used to configure time services.
type TimeConfiguration struct {
	// FramesPerSecond caps frames per second that is put out.
	// To unlimit, set to 0.
	FramesPerSecond int

	// EventPollDelay is the interval between platform event
	// polls, in milliseconds.
	EventPollDelay int
}

// InstanceConfiguration configures the Vulkan instance.
type InstanceConfiguration struct {
	// DebugMode enables the validation layers and the diagnostics
	// callback. Needs the layers installed on the target system.
	DebugMode bool

	Extensions []string
	Layers     []string
}

// RendererConfiguration is used to configure the renderer.
type RendererConfiguration struct {
	ScreenWidth  uint32
	ScreenHeight uint32

	// DebugMode mirrors the instance setting onto the logical device.
	// Modern loaders ignore device layers but older ones still read
	// the list.
	DebugMode bool

	// DeviceExtensions every selected physical device must support.
	DeviceExtensions []string

	// VertexShader and FragmentShader are logical paths into the
	// asset source, pointing at compiled SPIR-V.
	VertexShader   string
	FragmentShader string

	// TexturePath optionally names an image asset that is uploaded
	// and sampled by the fragment stage. Empty disables texturing.
	TexturePath string
}

// FromEnv builds a Configuration from the process environment,
// falling back to defaults usable on a desktop development machine.
// Recognised variables: HELLOVK_WIDTH, HELLOVK_HEIGHT, HELLOVK_FPS,
// HELLOVK_DEBUG, HELLOVK_VERT, HELLOVK_FRAG, HELLOVK_TEXTURE.
func FromEnv() Configuration {
	return Configuration{
		Time: TimeConfiguration{
			FramesPerSecond: envInt("HELLOVK_FPS", 60),
			EventPollDelay:  50,
		},
		Instance: InstanceConfiguration{
			DebugMode: envBool("HELLOVK_DEBUG", false),
		},
		Renderer: RendererConfiguration{
			DebugMode:        envBool("HELLOVK_DEBUG", false),
			ScreenWidth:      uint32(envInt("HELLOVK_WIDTH", 1080)),
			ScreenHeight:     uint32(envInt("HELLOVK_HEIGHT", 2400)),
			DeviceExtensions: []string{"VK_KHR_swapchain"},
			VertexShader:     envy.Get("HELLOVK_VERT", "triangle.vert.spv"),
			FragmentShader:   envy.Get("HELLOVK_FRAG", "triangle.frag.spv"),
			TexturePath:      envy.Get("HELLOVK_TEXTURE", ""),
		},
	}
}

func envInt(key string, def int) int {
	v, err := strconv.Atoi(envy.Get(key, strconv.Itoa(def)))
	if err != nil {
		return def
	}
	return v
}

func envBool(key string, def bool) bool {
	v, err := strconv.ParseBool(envy.Get(key, strconv.FormatBool(def)))
	if err != nil {
		return def
	}
	return v
}
