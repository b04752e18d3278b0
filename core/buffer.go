// Copyright (c) 2026 vkt
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core

import (
	"errors"
	"fmt"
	"unsafe"

	vk "github.com/vulkan-go/vulkan"

	"github.com/vkt/hellovk/model"
)

// findMemoryType returns the index of a memory type that is allowed by
// typeBits and carries all requested property flags.
func findMemoryType(physicalDevice vk.PhysicalDevice, typeBits uint32, properties vk.MemoryPropertyFlags) (uint32, error) {
	var memoryProperties vk.PhysicalDeviceMemoryProperties
	vk.GetPhysicalDeviceMemoryProperties(physicalDevice, &memoryProperties)
	memoryProperties.Deref()

	for idx := uint32(0); idx < memoryProperties.MemoryTypeCount; idx++ {
		memoryType := memoryProperties.MemoryTypes[idx]
		memoryType.Deref()
		if typeBits&(1<<idx) != 0 && memoryType.PropertyFlags&properties == properties {
			return idx, nil
		}
	}
	return 0, errors.New("core: no memory type satisfies the requested properties")
}

// createBuffer allocates a buffer together with backing memory and
// binds them.
func (v *VulkanRenderer) createBuffer(size vk.DeviceSize, usage vk.BufferUsageFlags, properties vk.MemoryPropertyFlags) (vk.Buffer, vk.DeviceMemory, error) {
	bci := vk.BufferCreateInfo{
		SType:       vk.StructureTypeBufferCreateInfo,
		Size:        size,
		Usage:       usage,
		SharingMode: vk.SharingModeExclusive,
	}

	var buffer vk.Buffer
	if err := vk.Error(vk.CreateBuffer(v.logicalDevice, &bci, nil, &buffer)); err != nil {
		return nil, nil, errors.New("vk.CreateBuffer(): " + err.Error())
	}

	var requirements vk.MemoryRequirements
	vk.GetBufferMemoryRequirements(v.logicalDevice, buffer, &requirements)
	requirements.Deref()

	memoryType, err := findMemoryType(v.physicalDevice, requirements.MemoryTypeBits, properties)
	if err != nil {
		vk.DestroyBuffer(v.logicalDevice, buffer, nil)
		return nil, nil, err
	}

	mai := vk.MemoryAllocateInfo{
		SType:           vk.StructureTypeMemoryAllocateInfo,
		AllocationSize:  requirements.Size,
		MemoryTypeIndex: memoryType,
	}

	var memory vk.DeviceMemory
	if err := vk.Error(vk.AllocateMemory(v.logicalDevice, &mai, nil, &memory)); err != nil {
		vk.DestroyBuffer(v.logicalDevice, buffer, nil)
		return nil, nil, errors.New("vk.AllocateMemory(): " + err.Error())
	}
	if err := vk.Error(vk.BindBufferMemory(v.logicalDevice, buffer, memory, 0)); err != nil {
		vk.FreeMemory(v.logicalDevice, memory, nil)
		vk.DestroyBuffer(v.logicalDevice, buffer, nil)
		return nil, nil, errors.New("vk.BindBufferMemory(): " + err.Error())
	}

	return buffer, memory, nil
}

// createVertexBuffer uploads the triangle vertices into a host-visible
// buffer.
func (v *VulkanRenderer) createVertexBuffer() error {
	vertices := model.Triangle()
	data := model.VertexBytes(vertices)

	buffer, memory, err := v.createBuffer(
		vk.DeviceSize(len(data)),
		vk.BufferUsageFlags(vk.BufferUsageVertexBufferBit),
		vk.MemoryPropertyFlags(vk.MemoryPropertyHostVisibleBit|vk.MemoryPropertyHostCoherentBit))
	if err != nil {
		return fatal("core.createVertexBuffer", err)
	}

	var mapped unsafe.Pointer
	if err := vk.Error(vk.MapMemory(v.logicalDevice, memory, 0, vk.DeviceSize(len(data)), 0, &mapped)); err != nil {
		vk.FreeMemory(v.logicalDevice, memory, nil)
		vk.DestroyBuffer(v.logicalDevice, buffer, nil)
		return fatal("vk.MapMemory()", errors.New(err.Error()))
	}
	vk.Memcopy(mapped, data)
	vk.UnmapMemory(v.logicalDevice, memory)

	v.vertexBuffer = buffer
	v.vertexMemory = memory
	v.vertexCount = uint32(len(vertices))
	return nil
}

// createUniformBuffers allocates one persistently mapped uniform
// buffer per frame slot.
func (v *VulkanRenderer) createUniformBuffers() error {
	for idx := 0; idx < framesInFlight; idx++ {
		buffer, memory, err := v.createBuffer(
			vk.DeviceSize(model.UniformSize),
			vk.BufferUsageFlags(vk.BufferUsageUniformBufferBit),
			vk.MemoryPropertyFlags(vk.MemoryPropertyHostVisibleBit|vk.MemoryPropertyHostCoherentBit))
		if err != nil {
			return fatal("core.createUniformBuffers", err)
		}

		var mapped unsafe.Pointer
		if err := vk.Error(vk.MapMemory(v.logicalDevice, memory, 0, vk.DeviceSize(model.UniformSize), 0, &mapped)); err != nil {
			vk.FreeMemory(v.logicalDevice, memory, nil)
			vk.DestroyBuffer(v.logicalDevice, buffer, nil)
			return fatal("vk.MapMemory()", errors.New(err.Error()))
		}

		v.uniformBuffers[idx] = buffer
		v.uniformMemory[idx] = memory
		v.uniformMapped[idx] = mapped
	}
	return nil
}

func (v *VulkanRenderer) destroyUniformBuffers() {
	for idx := 0; idx < framesInFlight; idx++ {
		if v.uniformMapped[idx] != nil {
			vk.UnmapMemory(v.logicalDevice, v.uniformMemory[idx])
			v.uniformMapped[idx] = nil
		}
		if v.uniformBuffers[idx] != vk.Buffer(vk.NullHandle) {
			vk.DestroyBuffer(v.logicalDevice, v.uniformBuffers[idx], nil)
			v.uniformBuffers[idx] = vk.Buffer(vk.NullHandle)
		}
		if v.uniformMemory[idx] != vk.DeviceMemory(vk.NullHandle) {
			vk.FreeMemory(v.logicalDevice, v.uniformMemory[idx], nil)
			v.uniformMemory[idx] = vk.DeviceMemory(vk.NullHandle)
		}
	}
}

// createDescriptorPool sizes the pool for one uniform descriptor per
// frame slot, plus a sampler descriptor per slot when a texture is
// configured.
func (v *VulkanRenderer) createDescriptorPool() error {
	sizes := []vk.DescriptorPoolSize{{
		Type:            vk.DescriptorTypeUniformBuffer,
		DescriptorCount: framesInFlight,
	}}
	if v.configuration.TexturePath != "" {
		sizes = append(sizes, vk.DescriptorPoolSize{
			Type:            vk.DescriptorTypeCombinedImageSampler,
			DescriptorCount: framesInFlight,
		})
	}

	dpci := vk.DescriptorPoolCreateInfo{
		SType:         vk.StructureTypeDescriptorPoolCreateInfo,
		PoolSizeCount: uint32(len(sizes)),
		PPoolSizes:    sizes,
		MaxSets:       framesInFlight,
	}

	var pool vk.DescriptorPool
	if err := vk.Error(vk.CreateDescriptorPool(v.logicalDevice, &dpci, nil, &pool)); err != nil {
		return fatal("vk.CreateDescriptorPool()", errors.New(err.Error()))
	}
	v.descriptorPool = pool
	return nil
}

// allocateDescriptorSets allocates and writes one descriptor set per
// frame slot, pointing at that slot's uniform buffer and, when
// present, the shared texture.
func (v *VulkanRenderer) allocateDescriptorSets() error {
	layouts := make([]vk.DescriptorSetLayout, framesInFlight)
	for idx := range layouts {
		layouts[idx] = v.descriptorSetLayout
	}

	dsai := vk.DescriptorSetAllocateInfo{
		SType:              vk.StructureTypeDescriptorSetAllocateInfo,
		DescriptorPool:     v.descriptorPool,
		DescriptorSetCount: framesInFlight,
		PSetLayouts:        layouts,
	}

	sets := make([]vk.DescriptorSet, framesInFlight)
	if err := vk.Error(vk.AllocateDescriptorSets(v.logicalDevice, &dsai, &sets[0])); err != nil {
		return fatal("vk.AllocateDescriptorSets()", errors.New(err.Error()))
	}
	v.descriptorSets = sets

	for idx := 0; idx < framesInFlight; idx++ {
		writes := []vk.WriteDescriptorSet{{
			SType:           vk.StructureTypeWriteDescriptorSet,
			DstSet:          sets[idx],
			DstBinding:      0,
			DstArrayElement: 0,
			DescriptorType:  vk.DescriptorTypeUniformBuffer,
			DescriptorCount: 1,
			PBufferInfo: []vk.DescriptorBufferInfo{{
				Buffer: v.uniformBuffers[idx],
				Offset: 0,
				Range:  vk.DeviceSize(model.UniformSize),
			}},
		}}

		if v.texture != nil {
			writes = append(writes, vk.WriteDescriptorSet{
				SType:           vk.StructureTypeWriteDescriptorSet,
				DstSet:          sets[idx],
				DstBinding:      1,
				DstArrayElement: 0,
				DescriptorType:  vk.DescriptorTypeCombinedImageSampler,
				DescriptorCount: 1,
				PImageInfo: []vk.DescriptorImageInfo{{
					Sampler:     v.texture.Sampler(),
					ImageView:   v.texture.View(),
					ImageLayout: vk.ImageLayoutShaderReadOnlyOptimal,
				}},
			})
		}

		vk.UpdateDescriptorSets(v.logicalDevice, uint32(len(writes)), writes, 0, nil)
	}
	return nil
}

// beginOneTimeCommands allocates and starts a throwaway command buffer
// on the renderer's command pool.
func (v *VulkanRenderer) beginOneTimeCommands() (vk.CommandBuffer, error) {
	cbai := vk.CommandBufferAllocateInfo{
		SType:              vk.StructureTypeCommandBufferAllocateInfo,
		Level:              vk.CommandBufferLevelPrimary,
		CommandPool:        v.commandPool,
		CommandBufferCount: 1,
	}

	commandBuffers := make([]vk.CommandBuffer, 1)
	if err := vk.Error(vk.AllocateCommandBuffers(v.logicalDevice, &cbai, commandBuffers)); err != nil {
		return nil, errors.New("vk.AllocateCommandBuffers(): " + err.Error())
	}

	cbbi := vk.CommandBufferBeginInfo{
		SType: vk.StructureTypeCommandBufferBeginInfo,
		Flags: vk.CommandBufferUsageFlags(vk.CommandBufferUsageOneTimeSubmitBit),
	}
	if err := vk.Error(vk.BeginCommandBuffer(commandBuffers[0], &cbbi)); err != nil {
		vk.FreeCommandBuffers(v.logicalDevice, v.commandPool, 1, commandBuffers)
		return nil, errors.New("vk.BeginCommandBuffer(): " + err.Error())
	}
	return commandBuffers[0], nil
}

// endOneTimeCommands submits the command buffer on the graphics queue,
// waits for it to finish and frees it.
func (v *VulkanRenderer) endOneTimeCommands(commandBuffer vk.CommandBuffer) error {
	defer vk.FreeCommandBuffers(v.logicalDevice, v.commandPool, 1, []vk.CommandBuffer{commandBuffer})

	if err := vk.Error(vk.EndCommandBuffer(commandBuffer)); err != nil {
		return errors.New("vk.EndCommandBuffer(): " + err.Error())
	}

	submit := []vk.SubmitInfo{{
		SType:              vk.StructureTypeSubmitInfo,
		CommandBufferCount: 1,
		PCommandBuffers:    []vk.CommandBuffer{commandBuffer},
	}}
	if err := vk.Error(vk.QueueSubmit(v.graphicsQueue, 1, submit, vk.Fence(vk.NullHandle))); err != nil {
		return errors.New("vk.QueueSubmit(): " + err.Error())
	}
	if err := vk.Error(vk.QueueWaitIdle(v.graphicsQueue)); err != nil {
		return fmt.Errorf("vk.QueueWaitIdle(): %s", err.Error())
	}
	return nil
}
