// Copyright (c) 2026 vkt
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"unsafe"

	xdraw "golang.org/x/image/draw"

	vk "github.com/vulkan-go/vulkan"

	"github.com/vkt/hellovk/asset"
)

// textureFormat matches the sRGB swapchain pipeline.
const textureFormat = vk.FormatR8g8b8a8Srgb

// mipChain downscales the base image level by level until a 1x1 level
// is reached. Every level is rendered onto its own RGBA canvas.
func mipChain(base image.Image) []*image.RGBA {
	bounds := base.Bounds()
	first := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	xdraw.Draw(first, first.Bounds(), base, bounds.Min, xdraw.Src)

	chain := []*image.RGBA{first}
	for {
		prev := chain[len(chain)-1]
		w, h := prev.Bounds().Dx(), prev.Bounds().Dy()
		if w == 1 && h == 1 {
			break
		}
		if w > 1 {
			w /= 2
		}
		if h > 1 {
			h /= 2
		}
		next := image.NewRGBA(image.Rect(0, 0, w, h))
		xdraw.CatmullRom.Scale(next, next.Bounds(), prev, prev.Bounds(), xdraw.Src, nil)
		chain = append(chain, next)
	}
	return chain
}

// NewVulkanTexture decodes the named image asset, builds its full mip
// chain on the CPU and uploads every level through a staging buffer
// into an optimally tiled, shader readable image.
func (v *VulkanRenderer) NewVulkanTexture(src asset.Source, path string) (*VulkanTexture, error) {
	contents, err := src.ReadAll(path)
	if err != nil {
		return nil, fmt.Errorf("core: reading texture %q: %w", path, err)
	}
	decoded, _, err := image.Decode(bytes.NewReader(contents))
	if err != nil {
		return nil, fmt.Errorf("core: decoding texture %q: %w", path, err)
	}

	chain := mipChain(decoded)
	mipLevels := uint32(len(chain))
	width := uint32(chain[0].Bounds().Dx())
	height := uint32(chain[0].Bounds().Dy())

	var totalSize vk.DeviceSize
	for _, level := range chain {
		totalSize += vk.DeviceSize(4 * level.Bounds().Dx() * level.Bounds().Dy())
	}

	staging, stagingMemory, err := v.createBuffer(totalSize,
		vk.BufferUsageFlags(vk.BufferUsageTransferSrcBit),
		vk.MemoryPropertyFlags(vk.MemoryPropertyHostVisibleBit|vk.MemoryPropertyHostCoherentBit))
	if err != nil {
		return nil, err
	}
	defer func() {
		vk.DestroyBuffer(v.logicalDevice, staging, nil)
		vk.FreeMemory(v.logicalDevice, stagingMemory, nil)
	}()

	var mapped unsafe.Pointer
	if err := vk.Error(vk.MapMemory(v.logicalDevice, stagingMemory, 0, totalSize, 0, &mapped)); err != nil {
		return nil, errors.New("vk.MapMemory(): " + err.Error())
	}
	var offset uintptr
	regions := make([]vk.BufferImageCopy, 0, mipLevels)
	for levelIdx, level := range chain {
		pixels, err := GetPixels(level, 4*level.Bounds().Dx())
		if err != nil {
			vk.UnmapMemory(v.logicalDevice, stagingMemory)
			return nil, err
		}
		vk.Memcopy(unsafe.Pointer(uintptr(mapped)+offset), pixels)

		regions = append(regions, vk.BufferImageCopy{
			BufferOffset: vk.DeviceSize(offset),
			ImageSubresource: vk.ImageSubresourceLayers{
				AspectMask: vk.ImageAspectFlags(vk.ImageAspectColorBit),
				MipLevel:   uint32(levelIdx),
				LayerCount: 1,
			},
			ImageExtent: vk.Extent3D{
				Width:  uint32(level.Bounds().Dx()),
				Height: uint32(level.Bounds().Dy()),
				Depth:  1,
			},
		})
		offset += uintptr(len(pixels))
	}
	vk.UnmapMemory(v.logicalDevice, stagingMemory)

	texture := &VulkanTexture{
		device:    v.logicalDevice,
		name:      path,
		mipLevels: mipLevels,
	}

	ici := vk.ImageCreateInfo{
		SType:     vk.StructureTypeImageCreateInfo,
		ImageType: vk.ImageType2d,
		Format:    textureFormat,
		Extent: vk.Extent3D{
			Width:  width,
			Height: height,
			Depth:  1,
		},
		MipLevels:     mipLevels,
		ArrayLayers:   1,
		Samples:       vk.SampleCount1Bit,
		Tiling:        vk.ImageTilingOptimal,
		Usage:         vk.ImageUsageFlags(vk.ImageUsageTransferDstBit | vk.ImageUsageSampledBit),
		SharingMode:   vk.SharingModeExclusive,
		InitialLayout: vk.ImageLayoutUndefined,
	}
	if err := vk.Error(vk.CreateImage(v.logicalDevice, &ici, nil, &texture.image)); err != nil {
		return nil, errors.New("vk.CreateImage(): " + err.Error())
	}

	var requirements vk.MemoryRequirements
	vk.GetImageMemoryRequirements(v.logicalDevice, texture.image, &requirements)
	requirements.Deref()

	memoryType, err := findMemoryType(v.physicalDevice, requirements.MemoryTypeBits,
		vk.MemoryPropertyFlags(vk.MemoryPropertyDeviceLocalBit))
	if err != nil {
		texture.Destroy()
		return nil, err
	}
	mai := vk.MemoryAllocateInfo{
		SType:           vk.StructureTypeMemoryAllocateInfo,
		AllocationSize:  requirements.Size,
		MemoryTypeIndex: memoryType,
	}
	if err := vk.Error(vk.AllocateMemory(v.logicalDevice, &mai, nil, &texture.memory)); err != nil {
		texture.Destroy()
		return nil, errors.New("vk.AllocateMemory(): " + err.Error())
	}
	if err := vk.Error(vk.BindImageMemory(v.logicalDevice, texture.image, texture.memory, 0)); err != nil {
		texture.Destroy()
		return nil, errors.New("vk.BindImageMemory(): " + err.Error())
	}

	if err := v.uploadTexture(texture, staging, regions); err != nil {
		texture.Destroy()
		return nil, err
	}

	ivci := vk.ImageViewCreateInfo{
		SType:    vk.StructureTypeImageViewCreateInfo,
		Image:    texture.image,
		ViewType: vk.ImageViewType2d,
		Format:   textureFormat,
		SubresourceRange: vk.ImageSubresourceRange{
			AspectMask: vk.ImageAspectFlags(vk.ImageAspectColorBit),
			LevelCount: mipLevels,
			LayerCount: 1,
		},
	}
	if err := vk.Error(vk.CreateImageView(v.logicalDevice, &ivci, nil, &texture.view)); err != nil {
		texture.Destroy()
		return nil, errors.New("vk.CreateImageView(): " + err.Error())
	}

	sci := vk.SamplerCreateInfo{
		SType:        vk.StructureTypeSamplerCreateInfo,
		MagFilter:    vk.FilterLinear,
		MinFilter:    vk.FilterLinear,
		MipmapMode:   vk.SamplerMipmapModeLinear,
		AddressModeU: vk.SamplerAddressModeRepeat,
		AddressModeV: vk.SamplerAddressModeRepeat,
		AddressModeW: vk.SamplerAddressModeRepeat,
		MaxLod:       float32(mipLevels),
	}
	if err := vk.Error(vk.CreateSampler(v.logicalDevice, &sci, nil, &texture.sampler)); err != nil {
		texture.Destroy()
		return nil, errors.New("vk.CreateSampler(): " + err.Error())
	}

	return texture, nil
}

// uploadTexture records the layout transitions and the per-level copy
// from the staging buffer, then waits for the transfer to complete.
func (v *VulkanRenderer) uploadTexture(texture *VulkanTexture, staging vk.Buffer, regions []vk.BufferImageCopy) error {
	commandBuffer, err := v.beginOneTimeCommands()
	if err != nil {
		return err
	}

	subresource := vk.ImageSubresourceRange{
		AspectMask: vk.ImageAspectFlags(vk.ImageAspectColorBit),
		LevelCount: texture.mipLevels,
		LayerCount: 1,
	}

	toTransfer := vk.ImageMemoryBarrier{
		SType:               vk.StructureTypeImageMemoryBarrier,
		OldLayout:           vk.ImageLayoutUndefined,
		NewLayout:           vk.ImageLayoutTransferDstOptimal,
		SrcQueueFamilyIndex: vk.QueueFamilyIgnored,
		DstQueueFamilyIndex: vk.QueueFamilyIgnored,
		Image:               texture.image,
		SubresourceRange:    subresource,
		DstAccessMask:       vk.AccessFlags(vk.AccessTransferWriteBit),
	}
	vk.CmdPipelineBarrier(commandBuffer,
		vk.PipelineStageFlags(vk.PipelineStageTopOfPipeBit),
		vk.PipelineStageFlags(vk.PipelineStageTransferBit),
		0, 0, nil, 0, nil, 1, []vk.ImageMemoryBarrier{toTransfer})

	vk.CmdCopyBufferToImage(commandBuffer, staging, texture.image,
		vk.ImageLayoutTransferDstOptimal, uint32(len(regions)), regions)

	toShader := vk.ImageMemoryBarrier{
		SType:               vk.StructureTypeImageMemoryBarrier,
		OldLayout:           vk.ImageLayoutTransferDstOptimal,
		NewLayout:           vk.ImageLayoutShaderReadOnlyOptimal,
		SrcQueueFamilyIndex: vk.QueueFamilyIgnored,
		DstQueueFamilyIndex: vk.QueueFamilyIgnored,
		Image:               texture.image,
		SubresourceRange:    subresource,
		SrcAccessMask:       vk.AccessFlags(vk.AccessTransferWriteBit),
		DstAccessMask:       vk.AccessFlags(vk.AccessShaderReadBit),
	}
	vk.CmdPipelineBarrier(commandBuffer,
		vk.PipelineStageFlags(vk.PipelineStageTransferBit),
		vk.PipelineStageFlags(vk.PipelineStageFragmentShaderBit),
		0, 0, nil, 0, nil, 1, []vk.ImageMemoryBarrier{toShader})

	return v.endOneTimeCommands(commandBuffer)
}

// VulkanTexture is a sampled image with its full mip chain resident.
type VulkanTexture struct {
	device    vk.Device
	name      string
	mipLevels uint32

	image   vk.Image
	memory  vk.DeviceMemory
	view    vk.ImageView
	sampler vk.Sampler
}

// Name returns the logical asset path the texture was loaded from.
func (t *VulkanTexture) Name() string {
	return t.name
}

// MipLevels returns the number of resident mip levels.
func (t *VulkanTexture) MipLevels() uint32 {
	return t.mipLevels
}

// Sampler is an accessor to the internal vk.Sampler.
func (t *VulkanTexture) Sampler() vk.Sampler {
	return t.sampler
}

// View is an accessor to the internal vk.ImageView.
func (t *VulkanTexture) View() vk.ImageView {
	return t.view
}

// Destroy releases the sampler, view, image and its memory.
func (t *VulkanTexture) Destroy() {
	if t.sampler != vk.Sampler(vk.NullHandle) {
		vk.DestroySampler(t.device, t.sampler, nil)
		t.sampler = vk.Sampler(vk.NullHandle)
	}
	if t.view != vk.ImageView(vk.NullHandle) {
		vk.DestroyImageView(t.device, t.view, nil)
		t.view = vk.ImageView(vk.NullHandle)
	}
	if t.image != vk.Image(vk.NullHandle) {
		vk.DestroyImage(t.device, t.image, nil)
		t.image = vk.Image(vk.NullHandle)
	}
	if t.memory != vk.DeviceMemory(vk.NullHandle) {
		vk.FreeMemory(t.device, t.memory, nil)
		t.memory = vk.DeviceMemory(vk.NullHandle)
	}
}
