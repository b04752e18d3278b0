// Copyright (c) 2026 vkt
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core

import (
	"errors"
	"fmt"
	"strings"

	vk "github.com/vulkan-go/vulkan"

	"github.com/vkt/hellovk/asset"
)

// shaderTypeFromPath derives the shader type from the logical asset
// path, e.g. "triangle.vert.spv" is a vertex shader.
func shaderTypeFromPath(path string) ShaderType {
	name := strings.TrimSuffix(path, ".spv")
	switch {
	case strings.HasSuffix(name, ".vert"):
		return VertexShaderType
	case strings.HasSuffix(name, ".frag"):
		return FragmentShaderType
	default:
		return UnknownShaderType
	}
}

// NewVulkanShader reads compiled SPIR-V from the asset source and
// wraps it in a shader module.
func NewVulkanShader(src asset.Source, path string, device vk.Device) (*VulkanShader, error) {
	shaderType := shaderTypeFromPath(path)
	if shaderType == UnknownShaderType {
		return nil, fmt.Errorf("core: cannot derive shader type from %q", path)
	}

	contents, err := src.ReadAll(path)
	if err != nil {
		return nil, fmt.Errorf("core: reading shader %q: %w", path, err)
	}

	smci := vk.ShaderModuleCreateInfo{
		SType:    vk.StructureTypeShaderModuleCreateInfo,
		CodeSize: uint(len(contents)),
		PCode:    SliceUint32(contents),
	}

	var module vk.ShaderModule
	if err := vk.Error(vk.CreateShaderModule(device, &smci, nil, &module)); err != nil {
		return nil, errors.New("vk.CreateShaderModule(): " + err.Error())
	}

	return &VulkanShader{
		module:     module,
		shaderType: shaderType,
		name:       path,
		device:     device,
	}, nil
}

// VulkanShader is a shader module together with its pipeline stage.
type VulkanShader struct {
	name       string
	shaderType ShaderType
	device     vk.Device
	module     vk.ShaderModule
}

// Type returns the shader's pipeline stage type.
func (v *VulkanShader) Type() ShaderType {
	return v.shaderType
}

// Module is an accessor to the internal vk.ShaderModule.
func (v *VulkanShader) Module() vk.ShaderModule {
	return v.module
}

// Name returns the logical asset path the shader was loaded from.
func (v *VulkanShader) Name() string {
	return v.name
}

// Destroy releases the shader module.
func (v *VulkanShader) Destroy() {
	vk.DestroyShaderModule(v.device, v.module, nil)
}
