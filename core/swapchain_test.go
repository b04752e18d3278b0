// Copyright (c) 2026 vkt
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core

import (
	"testing"

	vk "github.com/vulkan-go/vulkan"

	"github.com/vkt/hellovk/internal/optional"
)

func TestDisplaySizeIdentity(t *testing.T) {
	tests := []struct {
		name      string
		extent    vk.Extent2D
		transform vk.SurfaceTransformFlagBits
		want      vk.Extent2D
	}{
		{
			name:      "identity keeps extent",
			extent:    vk.Extent2D{Width: 1080, Height: 2400},
			transform: vk.SurfaceTransformIdentityBit,
			want:      vk.Extent2D{Width: 1080, Height: 2400},
		},
		{
			name:      "rotate90 swaps",
			extent:    vk.Extent2D{Width: 1080, Height: 2400},
			transform: vk.SurfaceTransformRotate90Bit,
			want:      vk.Extent2D{Width: 2400, Height: 1080},
		},
		{
			name:      "rotate180 keeps extent",
			extent:    vk.Extent2D{Width: 1080, Height: 2400},
			transform: vk.SurfaceTransformRotate180Bit,
			want:      vk.Extent2D{Width: 1080, Height: 2400},
		},
		{
			name:      "rotate270 swaps",
			extent:    vk.Extent2D{Width: 1080, Height: 2400},
			transform: vk.SurfaceTransformRotate270Bit,
			want:      vk.Extent2D{Width: 2400, Height: 1080},
		},
		{
			name:      "mirror rotate90 swaps",
			extent:    vk.Extent2D{Width: 800, Height: 600},
			transform: vk.SurfaceTransformHorizontalMirrorRotate90Bit,
			want:      vk.Extent2D{Width: 600, Height: 800},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			capabilities := vk.SurfaceCapabilities{
				CurrentExtent:    tt.extent,
				CurrentTransform: tt.transform,
			}
			got := displaySizeIdentity(capabilities)
			if got != tt.want {
				t.Errorf("got %dx%d, want %dx%d",
					got.Width, got.Height, tt.want.Width, tt.want.Height)
			}
		})
	}
}

func TestDisplaySizeIdentityRotationInvariant(t *testing.T) {
	// The extent computed under a 90 degree transform must equal the
	// one computed under identity, that is the whole point of swapping.
	upright := vk.SurfaceCapabilities{
		CurrentExtent:    vk.Extent2D{Width: 1080, Height: 2400},
		CurrentTransform: vk.SurfaceTransformIdentityBit,
	}
	rotated := vk.SurfaceCapabilities{
		CurrentExtent:    vk.Extent2D{Width: 2400, Height: 1080},
		CurrentTransform: vk.SurfaceTransformRotate90Bit,
	}
	if displaySizeIdentity(upright) != displaySizeIdentity(rotated) {
		t.Error("extent is not rotation invariant")
	}
}

func TestSwapImageCount(t *testing.T) {
	tests := []struct {
		name     string
		min, max uint32
		want     uint32
	}{
		{name: "one over minimum", min: 2, max: 8, want: 3},
		{name: "exactly at maximum", min: 2, max: 3, want: 3},
		{name: "clamped to maximum", min: 3, max: 3, want: 3},
		{name: "zero maximum is unbounded", min: 2, max: 0, want: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			capabilities := vk.SurfaceCapabilities{
				MinImageCount: tt.min,
				MaxImageCount: tt.max,
			}
			if got := swapImageCount(capabilities); got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestSwapchainSharingMode(t *testing.T) {
	var sameFamily QueueFamilyIndices
	sameFamily.Graphics.Set(0)
	sameFamily.Present.Set(0)

	mode, families := swapchainSharingMode(sameFamily)
	if mode != vk.SharingModeExclusive {
		t.Errorf("same family: got mode %d, want exclusive", mode)
	}
	if len(families) != 0 {
		t.Errorf("same family: got %d family indices, want none", len(families))
	}

	var splitFamily QueueFamilyIndices
	splitFamily.Graphics.Set(0)
	splitFamily.Present.Set(2)

	mode, families = swapchainSharingMode(splitFamily)
	if mode != vk.SharingModeConcurrent {
		t.Errorf("split family: got mode %d, want concurrent", mode)
	}
	if len(families) != 2 || families[0] != 0 || families[1] != 2 {
		t.Errorf("split family: got indices %v, want [0 2]", families)
	}
}

func TestSwapchainSharingModeIncomplete(t *testing.T) {
	indices := QueueFamilyIndices{Graphics: optional.Of[uint32](1)}
	mode, families := swapchainSharingMode(indices)
	if mode != vk.SharingModeExclusive || families != nil {
		t.Error("incomplete indices must fall back to exclusive")
	}
}

func TestChooseSurfaceFormat(t *testing.T) {
	preferred := vk.SurfaceFormat{
		Format:     vk.FormatB8g8r8a8Srgb,
		ColorSpace: vk.ColorSpaceSrgbNonlinear,
	}
	other := vk.SurfaceFormat{
		Format:     vk.FormatR8g8b8a8Unorm,
		ColorSpace: vk.ColorSpaceSrgbNonlinear,
	}

	if got := chooseSurfaceFormat([]vk.SurfaceFormat{other, preferred}); got != preferred {
		t.Error("preferred format not picked when available")
	}
	if got := chooseSurfaceFormat([]vk.SurfaceFormat{other}); got != other {
		t.Error("first format not picked as fallback")
	}
}

func TestRotated90or270(t *testing.T) {
	rotating := []vk.SurfaceTransformFlagBits{
		vk.SurfaceTransformRotate90Bit,
		vk.SurfaceTransformRotate270Bit,
		vk.SurfaceTransformHorizontalMirrorRotate90Bit,
		vk.SurfaceTransformHorizontalMirrorRotate270Bit,
	}
	for _, transform := range rotating {
		if !rotated90or270(transform) {
			t.Errorf("transform %x should rotate", transform)
		}
	}

	upright := []vk.SurfaceTransformFlagBits{
		vk.SurfaceTransformIdentityBit,
		vk.SurfaceTransformRotate180Bit,
		vk.SurfaceTransformHorizontalMirrorBit,
	}
	for _, transform := range upright {
		if rotated90or270(transform) {
			t.Errorf("transform %x should not rotate", transform)
		}
	}
}
