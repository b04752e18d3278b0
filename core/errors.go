// Copyright (c) 2026 vkt
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core

import (
	"errors"
	"fmt"

	vk "github.com/vulkan-go/vulkan"
)

// package errors
var (
	// ErrNoSuitableDevice is returned when no enumerated physical
	// device satisfies every selection predicate.
	ErrNoSuitableDevice = errors.New("vulkan: no suitable physical device found")

	// ErrSwapchainStale signals that the surface was reported out of
	// date by an acquire or present call. Recoverable: the caller is
	// expected to run the swapchain recreation path.
	ErrSwapchainStale = errors.New("vulkan: swapchain out of date")

	// ErrIncompleteQueues is returned when a device is asked for a
	// logical device before both queue families were discovered.
	ErrIncompleteQueues = errors.New("vulkan: queue family discovery incomplete")

	// ErrNoSurface is returned when a stage requiring a surface runs
	// before a window surface was handed over.
	ErrNoSurface = errors.New("vulkan: no surface set")
)

// FatalError wraps a Vulkan failure from which the rendering context
// cannot recover. The driver is expected to log it and terminate.
type FatalError struct {
	Op  string
	Err error
}

func (e *FatalError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *FatalError) Unwrap() error {
	return e.Err
}

// fatalResult converts a non-success VkResult into a FatalError.
func fatalResult(op string, res vk.Result) error {
	return &FatalError{Op: op, Err: vk.Error(res)}
}

// fatal wraps err as unrecoverable.
func fatal(op string, err error) error {
	return &FatalError{Op: op, Err: err}
}

// classifyResult maps acquire/present results onto the error taxonomy:
// nil for success and suboptimal (the latter is handled as a deferred
// orientation change, not an error), ErrSwapchainStale for out of date,
// FatalError for everything else.
func classifyResult(op string, res vk.Result) error {
	switch res {
	case vk.Success, vk.Suboptimal:
		return nil
	case vk.ErrorOutOfDate:
		return fmt.Errorf("%s: %w", op, ErrSwapchainStale)
	default:
		return fatalResult(op, res)
	}
}

// IsFatal reports whether err is an unrecoverable setup or device
// failure as opposed to a recoverable surface condition.
func IsFatal(err error) bool {
	var fe *FatalError
	return errors.As(err, &fe)
}

// IsStale reports whether err indicates an out-of-date surface that
// can be recovered from by recreating the swapchain.
func IsStale(err error) bool {
	return errors.Is(err, ErrSwapchainStale)
}
