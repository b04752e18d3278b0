// Copyright (c) 2026 vkt
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core

import (
	"errors"

	vk "github.com/vulkan-go/vulkan"
)

// swapchainPresentMode is fixed to FIFO. It is the one mode Vulkan
// guarantees on every driver and it locks presentation to the display
// refresh.
const swapchainPresentMode = vk.PresentModeFifo

// surfaceSupport captures the surface-related properties of one
// physical device, queried against a concrete surface.
type surfaceSupport struct {
	capabilities vk.SurfaceCapabilities
	formats      []vk.SurfaceFormat
	presentModes []vk.PresentMode
}

func querySurfaceSupport(device vk.PhysicalDevice, surface vk.Surface) (surfaceSupport, error) {
	var support surfaceSupport

	if err := vk.Error(vk.GetPhysicalDeviceSurfaceCapabilities(device, surface, &support.capabilities)); err != nil {
		return support, errors.New("vk.GetPhysicalDeviceSurfaceCapabilities(): " + err.Error())
	}
	support.capabilities.Deref()
	support.capabilities.CurrentExtent.Deref()
	support.capabilities.MinImageExtent.Deref()
	support.capabilities.MaxImageExtent.Deref()

	var formatCount uint32
	if err := vk.Error(vk.GetPhysicalDeviceSurfaceFormats(device, surface, &formatCount, nil)); err != nil {
		return support, errors.New("vk.GetPhysicalDeviceSurfaceFormats(): " + err.Error())
	}
	if formatCount > 0 {
		formats := make([]vk.SurfaceFormat, formatCount)
		if err := vk.Error(vk.GetPhysicalDeviceSurfaceFormats(device, surface, &formatCount, formats)); err != nil {
			return support, errors.New("vk.GetPhysicalDeviceSurfaceFormats(): " + err.Error())
		}
		for _, format := range formats {
			format.Deref()
			support.formats = append(support.formats, format)
		}
	}

	var modeCount uint32
	if err := vk.Error(vk.GetPhysicalDeviceSurfacePresentModes(device, surface, &modeCount, nil)); err != nil {
		return support, errors.New("vk.GetPhysicalDeviceSurfacePresentModes(): " + err.Error())
	}
	if modeCount > 0 {
		modes := make([]vk.PresentMode, modeCount)
		if err := vk.Error(vk.GetPhysicalDeviceSurfacePresentModes(device, surface, &modeCount, modes)); err != nil {
			return support, errors.New("vk.GetPhysicalDeviceSurfacePresentModes(): " + err.Error())
		}
		support.presentModes = modes
	}

	return support, nil
}

// chooseSurfaceFormat prefers 8-bit BGRA with the sRGB non-linear
// color space. The preference is a hint: when absent, the first
// advertised format is used instead.
func chooseSurfaceFormat(formats []vk.SurfaceFormat) vk.SurfaceFormat {
	for _, format := range formats {
		if format.Format == vk.FormatB8g8r8a8Srgb &&
			format.ColorSpace == vk.ColorSpaceSrgbNonlinear {
			return format
		}
	}
	return formats[0]
}

// rotated90or270 reports whether transform contains a quarter or
// three-quarter rotation bit.
func rotated90or270(transform vk.SurfaceTransformFlagBits) bool {
	const mask = vk.SurfaceTransformRotate90Bit |
		vk.SurfaceTransformRotate270Bit |
		vk.SurfaceTransformHorizontalMirrorRotate90Bit |
		vk.SurfaceTransformHorizontalMirrorRotate270Bit
	return transform&mask != 0
}

// displaySizeIdentity computes the rotation-invariant render extent:
// the surface's current extent with width and height swapped whenever
// the current transform includes a 90 or 270 degree rotation. Because
// the value is rotation-invariant it is computed once after the device
// and surface exist and reused for every later swapchain recreation.
func displaySizeIdentity(capabilities vk.SurfaceCapabilities) vk.Extent2D {
	extent := capabilities.CurrentExtent
	if rotated90or270(capabilities.CurrentTransform) {
		extent.Width, extent.Height = extent.Height, extent.Width
	}
	return extent
}

// swapImageCount asks for one image more than the advertised minimum,
// clamped to the maximum when the surface bounds it (zero means
// unbounded).
func swapImageCount(capabilities vk.SurfaceCapabilities) uint32 {
	count := capabilities.MinImageCount + 1
	if capabilities.MaxImageCount > 0 && count > capabilities.MaxImageCount {
		count = capabilities.MaxImageCount
	}
	return count
}

// swapchainSharingMode picks concurrent sharing across the two
// families when graphics and present differ, otherwise exclusive
// access with no explicit family list.
func swapchainSharingMode(indices QueueFamilyIndices) (vk.SharingMode, []uint32) {
	if !indices.Complete() {
		return vk.SharingModeExclusive, nil
	}
	g, p := indices.Graphics.Get(), indices.Present.Get()
	if g != p {
		return vk.SharingModeConcurrent, []uint32{g, p}
	}
	return vk.SharingModeExclusive, nil
}

// createSwapchain builds the swapchain over the current surface and
// retrieves its images. The caller must have computed the
// display-size-identity extent beforehand.
func (v *VulkanRenderer) createSwapchain() error {
	support, err := querySurfaceSupport(v.physicalDevice, v.surface)
	if err != nil {
		return fatal("core.querySurfaceSupport", err)
	}

	format := chooseSurfaceFormat(support.formats)
	sharingMode, familyIndices := swapchainSharingMode(v.queueIndices)

	scci := vk.SwapchainCreateInfo{
		SType:                 vk.StructureTypeSwapchainCreateInfo,
		Surface:               v.surface,
		MinImageCount:         swapImageCount(support.capabilities),
		ImageFormat:           format.Format,
		ImageColorSpace:       format.ColorSpace,
		ImageExtent:           v.displayExtent,
		ImageArrayLayers:      1,
		ImageUsage:            vk.ImageUsageFlags(vk.ImageUsageColorAttachmentBit),
		PreTransform:          support.capabilities.CurrentTransform,
		CompositeAlpha:        vk.CompositeAlphaOpaqueBit,
		PresentMode:           swapchainPresentMode,
		Clipped:               vk.True,
		ImageSharingMode:      sharingMode,
		QueueFamilyIndexCount: uint32(len(familyIndices)),
		PQueueFamilyIndices:   familyIndices,
		OldSwapchain:          vk.NullSwapchain,
	}

	var swapchain vk.Swapchain
	if err := vk.Error(vk.CreateSwapchain(v.logicalDevice, &scci, nil, &swapchain)); err != nil {
		return fatal("vk.CreateSwapchain()", errors.New(err.Error()))
	}
	v.swapchain = swapchain
	v.pretransform = support.capabilities.CurrentTransform

	var imageCount uint32
	if err := vk.Error(vk.GetSwapchainImages(v.logicalDevice, v.swapchain, &imageCount, nil)); err != nil {
		return fatal("vk.GetSwapchainImages(num)", errors.New(err.Error()))
	}
	v.swapchainImages = make([]vk.Image, imageCount)
	if err := vk.Error(vk.GetSwapchainImages(v.logicalDevice, v.swapchain, &imageCount, v.swapchainImages)); err != nil {
		return fatal("vk.GetSwapchainImages(images)", errors.New(err.Error()))
	}

	v.imageFormat = format.Format
	v.imageColorspace = format.ColorSpace
	return nil
}

// destroySwapchain releases the per-image resources and the swapchain
// itself, in that order. The instance, device and surface stay alive.
func (v *VulkanRenderer) destroySwapchain() {
	for _, fb := range v.framebuffers {
		vk.DestroyFramebuffer(v.logicalDevice, fb, nil)
	}
	v.framebuffers = nil

	for _, view := range v.swapchainImageViews {
		vk.DestroyImageView(v.logicalDevice, view, nil)
	}
	v.swapchainImageViews = nil
	v.swapchainImages = nil

	if v.swapchain != vk.NullSwapchain {
		vk.DestroySwapchain(v.logicalDevice, v.swapchain, nil)
		v.swapchain = vk.NullSwapchain
	}
}

// recreateSwapchain waits for the device to idle, tears down the image
// views, framebuffers and swapchain, and rebuilds them against the
// surface's current state. Everything above the swapchain (instance,
// device, surface, pipeline, sync objects) is left untouched.
func (v *VulkanRenderer) recreateSwapchain() error {
	vk.DeviceWaitIdle(v.logicalDevice)

	v.destroySwapchain()

	if err := v.createSwapchain(); err != nil {
		return err
	}
	if err := v.createImageViews(); err != nil {
		return err
	}
	if err := v.createFramebuffers(); err != nil {
		return err
	}
	return nil
}
