// Copyright (c) 2026 vkt
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package model holds the vertex and uniform layouts shared between
// the renderer and the shader interface.
package model

import (
	"unsafe"

	glm "github.com/go-gl/mathgl/mgl32"
	vk "github.com/vulkan-go/vulkan"
)

// Vertex is the vertex layout consumed by the triangle pipeline.
type Vertex struct {
	Pos   glm.Vec3
	Color glm.Vec4
	UV    glm.Vec2
}

// vertexSize is the stride of one Vertex in bytes.
const vertexSize = int(unsafe.Sizeof(Vertex{}))

// BindingDescription returns the single vertex buffer binding.
func BindingDescription() vk.VertexInputBindingDescription {
	return vk.VertexInputBindingDescription{
		Binding:   0,
		Stride:    uint32(vertexSize),
		InputRate: vk.VertexInputRateVertex,
	}
}

// AttributeDescriptions returns the attribute layout matching Vertex.
func AttributeDescriptions() []vk.VertexInputAttributeDescription {
	return []vk.VertexInputAttributeDescription{
		{
			Binding:  0,
			Location: 0,
			Format:   vk.FormatR32g32b32Sfloat,
			Offset:   uint32(unsafe.Offsetof(Vertex{}.Pos)),
		},
		{
			Binding:  0,
			Location: 1,
			Format:   vk.FormatR32g32b32a32Sfloat,
			Offset:   uint32(unsafe.Offsetof(Vertex{}.Color)),
		},
		{
			Binding:  0,
			Location: 2,
			Format:   vk.FormatR32g32Sfloat,
			Offset:   uint32(unsafe.Offsetof(Vertex{}.UV)),
		},
	}
}

// Triangle returns the classic clip-space triangle.
func Triangle() []Vertex {
	return []Vertex{
		{Pos: glm.Vec3{0, -0.5, 0}, Color: glm.Vec4{1, 0, 0, 1}, UV: glm.Vec2{0.5, 0}},
		{Pos: glm.Vec3{0.5, 0.5, 0}, Color: glm.Vec4{0, 1, 0, 1}, UV: glm.Vec2{1, 1}},
		{Pos: glm.Vec3{-0.5, 0.5, 0}, Color: glm.Vec4{0, 0, 1, 1}, UV: glm.Vec2{0, 1}},
	}
}

// VertexBytes reslices vertices into their raw byte representation
// for an upload into a mapped buffer.
func VertexBytes(vertices []Vertex) []byte {
	if len(vertices) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&vertices[0])), len(vertices)*vertexSize)
}

// Uniform is the model-view-projection block read by the vertex
// shader.
type Uniform struct {
	Model      glm.Mat4
	View       glm.Mat4
	Projection glm.Mat4
}

// UniformSize is the byte size of the uniform block.
const UniformSize = int(unsafe.Sizeof(Uniform{}))

// Bytes reslices the uniform into its raw byte representation.
func (u *Uniform) Bytes() []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(u)), UniformSize)
}

// PretransformRotation returns the rotation that compensates for the
// surface pre-transform reported by the compositor. Rendering applies
// it on top of the projection so geometry stays upright while the
// compositor rotates the whole image back.
func PretransformRotation(transform vk.SurfaceTransformFlagBits) glm.Mat4 {
	switch {
	case transform&vk.SurfaceTransformRotate90Bit != 0:
		return glm.HomogRotate3DZ(glm.DegToRad(90))
	case transform&vk.SurfaceTransformRotate180Bit != 0:
		return glm.HomogRotate3DZ(glm.DegToRad(180))
	case transform&vk.SurfaceTransformRotate270Bit != 0:
		return glm.HomogRotate3DZ(glm.DegToRad(270))
	default:
		return glm.Ident4()
	}
}
