// Copyright (c) 2026 vkt
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package model_test

import (
	"math"
	"testing"

	glm "github.com/go-gl/mathgl/mgl32"
	vk "github.com/vulkan-go/vulkan"

	"github.com/vkt/hellovk/model"
)

func TestBindingDescription(t *testing.T) {
	binding := model.BindingDescription()
	if binding.Binding != 0 {
		t.Errorf("got binding %d", binding.Binding)
	}
	if binding.Stride != 36 {
		t.Errorf("got stride %d, want 36", binding.Stride)
	}
	if binding.InputRate != vk.VertexInputRateVertex {
		t.Error("wrong input rate")
	}
}

func TestAttributeDescriptions(t *testing.T) {
	attrs := model.AttributeDescriptions()
	if len(attrs) != 3 {
		t.Fatalf("got %d attributes, want 3", len(attrs))
	}

	wantOffsets := []uint32{0, 12, 28}
	wantFormats := []vk.Format{
		vk.FormatR32g32b32Sfloat,
		vk.FormatR32g32b32a32Sfloat,
		vk.FormatR32g32Sfloat,
	}
	for i, attr := range attrs {
		if attr.Location != uint32(i) {
			t.Errorf("attribute %d: got location %d", i, attr.Location)
		}
		if attr.Offset != wantOffsets[i] {
			t.Errorf("attribute %d: got offset %d, want %d", i, attr.Offset, wantOffsets[i])
		}
		if attr.Format != wantFormats[i] {
			t.Errorf("attribute %d: wrong format", i)
		}
	}
}

func TestVertexBytes(t *testing.T) {
	vertices := model.Triangle()
	data := model.VertexBytes(vertices)
	if len(data) != len(vertices)*36 {
		t.Errorf("got %d bytes, want %d", len(data), len(vertices)*36)
	}
	if model.VertexBytes(nil) != nil {
		t.Error("empty slice should yield nil")
	}
}

func TestUniformSize(t *testing.T) {
	if model.UniformSize != 3*16*4 {
		t.Errorf("got %d, want %d", model.UniformSize, 3*16*4)
	}
	var u model.Uniform
	if len(u.Bytes()) != model.UniformSize {
		t.Error("Bytes length disagrees with UniformSize")
	}
}

func TestPretransformRotationIdentity(t *testing.T) {
	got := model.PretransformRotation(vk.SurfaceTransformIdentityBit)
	if !got.ApproxEqual(glm.Ident4()) {
		t.Error("identity transform must yield identity matrix")
	}
}

func TestPretransformRotation90(t *testing.T) {
	rotation := model.PretransformRotation(vk.SurfaceTransformRotate90Bit)
	got := rotation.Mul4x1(glm.Vec4{1, 0, 0, 1})
	want := glm.Vec4{0, 1, 0, 1}
	if !approxVec4(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestPretransformRotation180(t *testing.T) {
	rotation := model.PretransformRotation(vk.SurfaceTransformRotate180Bit)
	got := rotation.Mul4x1(glm.Vec4{1, 0, 0, 1})
	want := glm.Vec4{-1, 0, 0, 1}
	if !approxVec4(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestPretransformRotation270(t *testing.T) {
	rotation := model.PretransformRotation(vk.SurfaceTransformRotate270Bit)
	got := rotation.Mul4x1(glm.Vec4{1, 0, 0, 1})
	want := glm.Vec4{0, -1, 0, 1}
	if !approxVec4(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func approxVec4(a, b glm.Vec4) bool {
	const epsilon = 1e-5
	for i := 0; i < 4; i++ {
		if math.Abs(float64(a[i]-b[i])) > epsilon {
			return false
		}
	}
	return true
}
