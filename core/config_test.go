// Copyright (c) 2026 vkt
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core_test

import (
	"testing"

	"github.com/gobuffalo/envy"

	"github.com/vkt/hellovk/core"
)

func TestFromEnvDefaults(t *testing.T) {
	envy.Temp(func() {
		cfg := core.FromEnv()

		if cfg.Renderer.ScreenWidth != 1080 || cfg.Renderer.ScreenHeight != 2400 {
			t.Errorf("got default extent %dx%d",
				cfg.Renderer.ScreenWidth, cfg.Renderer.ScreenHeight)
		}
		if cfg.Time.FramesPerSecond != 60 {
			t.Errorf("got default fps %d", cfg.Time.FramesPerSecond)
		}
		if cfg.Instance.DebugMode {
			t.Error("debug mode on by default")
		}
		if len(cfg.Renderer.DeviceExtensions) != 1 ||
			cfg.Renderer.DeviceExtensions[0] != "VK_KHR_swapchain" {
			t.Errorf("got device extensions %v", cfg.Renderer.DeviceExtensions)
		}
		if cfg.Renderer.VertexShader != "triangle.vert.spv" ||
			cfg.Renderer.FragmentShader != "triangle.frag.spv" {
			t.Error("unexpected default shader paths")
		}
	})
}

func TestFromEnvOverrides(t *testing.T) {
	envy.Temp(func() {
		envy.Set("HELLOVK_WIDTH", "720")
		envy.Set("HELLOVK_HEIGHT", "1280")
		envy.Set("HELLOVK_FPS", "30")
		envy.Set("HELLOVK_DEBUG", "true")
		envy.Set("HELLOVK_TEXTURE", "bricks.png")

		cfg := core.FromEnv()
		if cfg.Renderer.ScreenWidth != 720 || cfg.Renderer.ScreenHeight != 1280 {
			t.Errorf("got extent %dx%d", cfg.Renderer.ScreenWidth, cfg.Renderer.ScreenHeight)
		}
		if cfg.Time.FramesPerSecond != 30 {
			t.Errorf("got fps %d", cfg.Time.FramesPerSecond)
		}
		if !cfg.Instance.DebugMode || !cfg.Renderer.DebugMode {
			t.Error("debug mode not picked up")
		}
		if cfg.Renderer.TexturePath != "bricks.png" {
			t.Errorf("got texture path %q", cfg.Renderer.TexturePath)
		}
	})
}

func TestFromEnvMalformedValues(t *testing.T) {
	envy.Temp(func() {
		envy.Set("HELLOVK_FPS", "not-a-number")
		envy.Set("HELLOVK_DEBUG", "maybe")

		cfg := core.FromEnv()
		if cfg.Time.FramesPerSecond != 60 {
			t.Errorf("malformed fps not defaulted, got %d", cfg.Time.FramesPerSecond)
		}
		if cfg.Instance.DebugMode {
			t.Error("malformed bool not defaulted")
		}
	})
}
