// Copyright (c) 2026 vkt
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core

import (
	"errors"
	"math"
	"time"
	"unsafe"

	glm "github.com/go-gl/mathgl/mgl32"
	log "github.com/sirupsen/logrus"
	vk "github.com/vulkan-go/vulkan"

	"github.com/vkt/hellovk/asset"
	"github.com/vkt/hellovk/model"
)

// rendererState tracks how far along the setup path the renderer is.
// States only ever advance during Initialise and fall back to
// stateInstanceReady on Destroy.
type rendererState int

const (
	stateUninitialized rendererState = iota
	stateInstanceReady
	stateSurfaceReady
	stateDeviceReady
	stateSwapchainReady
	stateSyncReady
)

func (s rendererState) String() string {
	switch s {
	case stateUninitialized:
		return "uninitialized"
	case stateInstanceReady:
		return "instance-ready"
	case stateSurfaceReady:
		return "surface-ready"
	case stateDeviceReady:
		return "device-ready"
	case stateSwapchainReady:
		return "swapchain-ready"
	case stateSyncReady:
		return "sync-ready"
	default:
		return "unknown"
	}
}

// NewVulkanRenderer creates a renderer bound to an instance. The
// returned renderer is inert until an asset source is handed over with
// Reset and the setup path is run with Initialise.
func NewVulkanRenderer(instance Instance, cfg RendererConfiguration) (Renderer, error) {
	if instance == nil {
		return nil, errors.New("core.NewVulkanRenderer(): nil instance")
	}
	return &VulkanRenderer{
		configuration: cfg,
		instance:      instance,
		state:         stateInstanceReady,
	}, nil
}

// VulkanRenderer owns everything below the instance: the logical
// device, the swapchain and its derived objects, the pipeline and the
// per-frame synchronisation slots.
type VulkanRenderer struct {
	configuration RendererConfiguration

	instance Instance
	assets   asset.Source

	state       rendererState
	initialized bool

	// orientationChanged defers swapchain recreation to the next frame
	// boundary, after the slot fence wait.
	orientationChanged bool

	surface        vk.Surface
	physicalDevice vk.PhysicalDevice
	queueIndices   QueueFamilyIndices
	logicalDevice  vk.Device
	graphicsQueue  vk.Queue
	presentQueue   vk.Queue

	// displayExtent is the rotation-invariant render extent, computed
	// once per device setup and reused across swapchain recreations.
	displayExtent vk.Extent2D
	pretransform  vk.SurfaceTransformFlagBits

	swapchain           vk.Swapchain
	swapchainImages     []vk.Image
	swapchainImageViews []vk.ImageView
	framebuffers        []vk.Framebuffer
	imageFormat         vk.Format
	imageColorspace     vk.ColorSpace

	renderPass          vk.RenderPass
	descriptorSetLayout vk.DescriptorSetLayout
	descriptorPool      vk.DescriptorPool
	descriptorSets      []vk.DescriptorSet
	pipelineLayout      vk.PipelineLayout
	pipeline            vk.Pipeline
	shaders             []*VulkanShader

	commandPool    vk.CommandPool
	commandBuffers []vk.CommandBuffer

	vertexBuffer vk.Buffer
	vertexMemory vk.DeviceMemory
	vertexCount  uint32

	uniformBuffers [framesInFlight]vk.Buffer
	uniformMemory  [framesInFlight]vk.DeviceMemory
	uniformMapped  [framesInFlight]unsafe.Pointer

	texture *VulkanTexture

	sync         [framesInFlight]frameSync
	currentFrame uint32
	startTime    time.Time
}

func (v *VulkanRenderer) advance(state rendererState) {
	log.WithFields(log.Fields{
		"from": v.state.String(),
		"to":   state.String(),
	}).Debug("renderer state")
	v.state = state
}

// Reset implements interface
func (v *VulkanRenderer) Reset(assets asset.Source) {
	v.assets = assets
}

// Initialise implements interface. It runs the full setup path: device
// selection over the instance's surface, logical device and queues,
// the rotation-invariant render extent, swapchain, pipeline, buffers
// and per-frame synchronisation. Calling it on an initialised renderer
// is a no-op, matching a window that reappears after a pause. Setup
// failures are fatal and leave the renderer unusable.
func (v *VulkanRenderer) Initialise() error {
	if v.initialized {
		return nil
	}
	if v.assets == nil {
		return fatal("core.Initialise", errors.New("no asset source, call Reset first"))
	}

	v.surface = v.instance.Surface()
	if v.surface == vk.NullSurface {
		return fatal("core.Initialise", ErrNoSurface)
	}
	v.advance(stateSurfaceReady)

	physicalDevice, indices, err := selectPhysicalDevice(
		v.instance.AvailableDevices(), v.surface, v.configuration.DeviceExtensions)
	if err != nil {
		return fatal("core.selectPhysicalDevice", err)
	}
	v.physicalDevice = physicalDevice
	v.queueIndices = indices

	device, graphicsQueue, presentQueue, err := createLogicalDevice(
		physicalDevice, indices, v.configuration, v.configuration.DebugMode)
	if err != nil {
		return err
	}
	v.logicalDevice = device
	v.graphicsQueue = graphicsQueue
	v.presentQueue = presentQueue
	v.advance(stateDeviceReady)

	support, err := querySurfaceSupport(physicalDevice, v.surface)
	if err != nil {
		return fatal("core.querySurfaceSupport", err)
	}
	v.displayExtent = displaySizeIdentity(support.capabilities)

	log.WithFields(log.Fields{
		"width":     v.displayExtent.Width,
		"height":    v.displayExtent.Height,
		"transform": support.capabilities.CurrentTransform,
	}).Debug("render extent")

	setup := []func() error{
		v.createSwapchain,
		v.createImageViews,
		v.createRenderPass,
		v.createDescriptorSetLayout,
		v.createPipelineLayout,
		v.loadShaders,
		v.createPipeline,
		v.createFramebuffers,
		v.createCommandPool,
		v.allocateCommandBuffers,
		v.createVertexBuffer,
		v.createUniformBuffers,
		v.loadTexture,
		v.createDescriptorPool,
		v.allocateDescriptorSets,
	}
	for _, step := range setup {
		if err := step(); err != nil {
			return err
		}
	}
	v.advance(stateSwapchainReady)

	sets, err := createSyncObjects(v.logicalDevice)
	if err != nil {
		return err
	}
	v.sync = sets
	v.advance(stateSyncReady)

	v.currentFrame = 0
	v.orientationChanged = false
	v.startTime = time.Now()
	v.initialized = true
	return nil
}

func (v *VulkanRenderer) loadTexture() error {
	if v.configuration.TexturePath == "" {
		return nil
	}
	texture, err := v.NewVulkanTexture(v.assets, v.configuration.TexturePath)
	if err != nil {
		return fatal("core.NewVulkanTexture", err)
	}
	v.texture = texture
	return nil
}

// Draw implements interface. One frame: wait on the slot fence, apply
// a deferred orientation change if one is pending, acquire, record,
// submit with the slot fence, present, then advance the frame slot.
// An out-of-date surface at acquire or present skips the frame and
// recreates the swapchain; a suboptimal present is only flagged and
// handled at the next frame boundary.
func (v *VulkanRenderer) Draw() error {
	if v.state != stateSyncReady {
		return fatal("core.Draw", errors.New("renderer not initialised"))
	}
	slot := &v.sync[v.currentFrame]
	vk.WaitForFences(v.logicalDevice, 1, []vk.Fence{slot.inFlight}, vk.True, math.MaxUint64)

	if v.orientationChanged {
		v.orientationChanged = false
		return v.recreateSwapchain()
	}

	var imageIndex uint32
	res := vk.AcquireNextImage(v.logicalDevice, v.swapchain, math.MaxUint64,
		slot.imageAvailable, vk.Fence(vk.NullHandle), &imageIndex)
	if err := classifyResult("vk.AcquireNextImage()", res); err != nil {
		if IsStale(err) {
			return v.recreateSwapchain()
		}
		return err
	}

	// The fence is only reset once this slot is certain to be
	// resubmitted, otherwise a skipped frame would deadlock the next
	// wait.
	vk.ResetFences(v.logicalDevice, 1, []vk.Fence{slot.inFlight})

	v.updateUniform(v.currentFrame)

	commandBuffer := v.commandBuffers[v.currentFrame]
	vk.ResetCommandBuffer(commandBuffer, 0)
	if err := v.recordCommandBuffer(commandBuffer, imageIndex); err != nil {
		return err
	}

	submit := []vk.SubmitInfo{{
		SType:              vk.StructureTypeSubmitInfo,
		WaitSemaphoreCount: 1,
		PWaitSemaphores:    []vk.Semaphore{slot.imageAvailable},
		PWaitDstStageMask: []vk.PipelineStageFlags{
			vk.PipelineStageFlags(vk.PipelineStageColorAttachmentOutputBit),
		},
		CommandBufferCount:   1,
		PCommandBuffers:      []vk.CommandBuffer{commandBuffer},
		SignalSemaphoreCount: 1,
		PSignalSemaphores:    []vk.Semaphore{slot.renderFinished},
	}}
	if err := vk.Error(vk.QueueSubmit(v.graphicsQueue, 1, submit, slot.inFlight)); err != nil {
		return fatal("vk.QueueSubmit()", errors.New(err.Error()))
	}

	presentInfo := vk.PresentInfo{
		SType:              vk.StructureTypePresentInfo,
		WaitSemaphoreCount: 1,
		PWaitSemaphores:    []vk.Semaphore{slot.renderFinished},
		SwapchainCount:     1,
		PSwapchains:        []vk.Swapchain{v.swapchain},
		PImageIndices:      []uint32{imageIndex},
	}
	presentResult := vk.QueuePresent(v.presentQueue, &presentInfo)
	v.currentFrame = (v.currentFrame + 1) % framesInFlight

	switch presentResult {
	case vk.Suboptimal:
		v.orientationChanged = true
		return nil
	case vk.ErrorOutOfDate:
		return v.recreateSwapchain()
	default:
		return classifyResult("vk.QueuePresent()", presentResult)
	}
}

// updateUniform rewrites the frame slot's mapped uniform block. The
// projection is corrected for Vulkan's inverted clip space Y and then
// rotated to compensate the surface pre-transform.
func (v *VulkanRenderer) updateUniform(frame uint32) {
	elapsed := float32(time.Since(v.startTime).Seconds())
	aspect := float32(v.displayExtent.Width) / float32(v.displayExtent.Height)

	projection := glm.Perspective(glm.DegToRad(45), aspect, 0.1, 10)
	projection[5] *= -1

	uniform := model.Uniform{
		Model:      glm.HomogRotate3DZ(elapsed * glm.DegToRad(30)),
		View:       glm.LookAtV(glm.Vec3{0, 0, 2}, glm.Vec3{0, 0, 0}, glm.Vec3{0, 1, 0}),
		Projection: model.PretransformRotation(v.pretransform).Mul4(projection),
	}
	vk.Memcopy(v.uniformMapped[frame], uniform.Bytes())
}

// NotifyOrientationChange implements interface
func (v *VulkanRenderer) NotifyOrientationChange() {
	v.orientationChanged = true
}

// Destroy implements interface. Everything is released in reverse
// acquisition order after the device idles. Safe to call repeatedly;
// only the first call after a successful Initialise does work.
func (v *VulkanRenderer) Destroy() {
	if !v.initialized {
		return
	}
	v.initialized = false

	vk.DeviceWaitIdle(v.logicalDevice)

	destroySyncObjects(v.logicalDevice, &v.sync)

	if v.texture != nil {
		v.texture.Destroy()
		v.texture = nil
	}

	v.destroyUniformBuffers()

	if v.vertexBuffer != vk.Buffer(vk.NullHandle) {
		vk.DestroyBuffer(v.logicalDevice, v.vertexBuffer, nil)
		v.vertexBuffer = vk.Buffer(vk.NullHandle)
	}
	if v.vertexMemory != vk.DeviceMemory(vk.NullHandle) {
		vk.FreeMemory(v.logicalDevice, v.vertexMemory, nil)
		v.vertexMemory = vk.DeviceMemory(vk.NullHandle)
	}

	if v.descriptorPool != vk.DescriptorPool(vk.NullHandle) {
		// sets are returned together with the pool
		vk.DestroyDescriptorPool(v.logicalDevice, v.descriptorPool, nil)
		v.descriptorPool = vk.DescriptorPool(vk.NullHandle)
		v.descriptorSets = nil
	}

	if v.commandPool != vk.CommandPool(vk.NullHandle) {
		vk.DestroyCommandPool(v.logicalDevice, v.commandPool, nil)
		v.commandPool = vk.CommandPool(vk.NullHandle)
		v.commandBuffers = nil
	}

	if v.pipeline != vk.Pipeline(vk.NullHandle) {
		vk.DestroyPipeline(v.logicalDevice, v.pipeline, nil)
		v.pipeline = vk.Pipeline(vk.NullHandle)
	}
	for _, shader := range v.shaders {
		shader.Destroy()
	}
	v.shaders = nil

	if v.pipelineLayout != vk.PipelineLayout(vk.NullHandle) {
		vk.DestroyPipelineLayout(v.logicalDevice, v.pipelineLayout, nil)
		v.pipelineLayout = vk.PipelineLayout(vk.NullHandle)
	}
	if v.descriptorSetLayout != vk.DescriptorSetLayout(vk.NullHandle) {
		vk.DestroyDescriptorSetLayout(v.logicalDevice, v.descriptorSetLayout, nil)
		v.descriptorSetLayout = vk.DescriptorSetLayout(vk.NullHandle)
	}
	if v.renderPass != vk.RenderPass(vk.NullHandle) {
		vk.DestroyRenderPass(v.logicalDevice, v.renderPass, nil)
		v.renderPass = vk.RenderPass(vk.NullHandle)
	}

	v.destroySwapchain()

	vk.DestroyDevice(v.logicalDevice, nil)
	v.logicalDevice = nil
	v.graphicsQueue = nil
	v.presentQueue = nil
	v.physicalDevice = nil
	v.surface = vk.NullSurface
	v.currentFrame = 0
	v.orientationChanged = false

	// the instance stays alive, it is owned by the caller
	v.advance(stateInstanceReady)
}
