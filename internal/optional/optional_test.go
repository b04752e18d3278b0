// Copyright (c) 2026 vkt
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package optional

import "testing"

func TestZeroValueIsEmpty(t *testing.T) {
	var o Optional[uint32]
	if o.HasValue() {
		t.Error("zero value reports a value")
	}
}

func TestOfAndGet(t *testing.T) {
	o := Of[uint32](0)
	if !o.HasValue() {
		t.Error("Of(0) reports empty, zero must be a valid value")
	}
	if o.Get() != 0 {
		t.Error("stored value lost")
	}
}

func TestSet(t *testing.T) {
	var o Optional[uint32]
	o.Set(7)
	if !o.HasValue() || o.Get() != 7 {
		t.Error("Set did not store the value")
	}
}

func TestGetOnEmptyPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Get on empty Optional did not panic")
		}
	}()
	var o Optional[uint32]
	o.Get()
}
