// Copyright (c) 2026 vkt
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core

import (
	"errors"
	"testing"

	vk "github.com/vulkan-go/vulkan"
)

func TestClassifyResult(t *testing.T) {
	if err := classifyResult("op", vk.Success); err != nil {
		t.Errorf("success classified as error: %v", err)
	}
	if err := classifyResult("op", vk.Suboptimal); err != nil {
		t.Errorf("suboptimal classified as error: %v", err)
	}

	err := classifyResult("op", vk.ErrorOutOfDate)
	if err == nil {
		t.Fatal("out of date classified as success")
	}
	if !IsStale(err) {
		t.Error("out of date not recognised as stale")
	}
	if IsFatal(err) {
		t.Error("out of date wrongly classified fatal")
	}

	err = classifyResult("op", vk.ErrorDeviceLost)
	if err == nil {
		t.Fatal("device lost classified as success")
	}
	if !IsFatal(err) {
		t.Error("device lost not classified fatal")
	}
	if IsStale(err) {
		t.Error("device lost wrongly classified stale")
	}
}

func TestFatalErrorUnwrap(t *testing.T) {
	err := fatal("core.createLogicalDevice", ErrIncompleteQueues)
	if !IsFatal(err) {
		t.Error("wrapped error not recognised as fatal")
	}

	var fe *FatalError
	if !errors.As(err, &fe) {
		t.Fatal("errors.As failed on FatalError")
	}
	if fe.Op != "core.createLogicalDevice" {
		t.Errorf("got op %q", fe.Op)
	}
	if fe.Unwrap() != ErrIncompleteQueues {
		t.Error("unwrap lost the cause")
	}
}
