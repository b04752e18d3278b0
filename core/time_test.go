// Copyright (c) 2026 vkt
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core_test

import (
	"testing"

	"github.com/vkt/hellovk/core"
)

func TestNewTime(t *testing.T) {
	timeService := core.NewTime(core.TimeConfiguration{
		FramesPerSecond: 60,
		EventPollDelay:  50,
	})
	if timeService.Fps() != 60 {
		t.Errorf("got fps %d", timeService.Fps())
	}
	if timeService.FpsTicker() == nil || timeService.EventTicker() == nil {
		t.Error("tickers not initialised")
	}
}

func TestNewTimeUnlimited(t *testing.T) {
	timeService := core.NewTime(core.TimeConfiguration{FramesPerSecond: 0})
	if timeService.FpsTicker() == nil {
		t.Error("unlimited fps must still provide a ticker")
	}
	if timeService.EventTicker() == nil {
		t.Error("zero poll delay must fall back to a default")
	}
}
