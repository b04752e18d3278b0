// Copyright (c) 2026 vkt
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core

import "testing"

func TestShaderTypeFromPath(t *testing.T) {
	tests := []struct {
		path string
		want ShaderType
	}{
		{path: "triangle.vert.spv", want: VertexShaderType},
		{path: "triangle.frag.spv", want: FragmentShaderType},
		{path: "shaders/deep/dir/shadow.vert.spv", want: VertexShaderType},
		{path: "triangle.vert", want: VertexShaderType},
		{path: "triangle.comp.spv", want: UnknownShaderType},
		{path: "triangle.spv", want: UnknownShaderType},
		{path: "", want: UnknownShaderType},
	}

	for _, tt := range tests {
		if got := shaderTypeFromPath(tt.path); got != tt.want {
			t.Errorf("shaderTypeFromPath(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}
