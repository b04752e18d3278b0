// Copyright (c) 2026 vkt
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package asset

import (
	"bytes"
	"errors"
	"io"
	"testing"
	"time"
)

func buildTestArchive(t *testing.T, entries map[string][]byte) *bytes.Reader {
	t.Helper()

	builder := NewBuilder(Header{
		CreatedAt: time.Now().Unix(),
		Version:   1,
	})
	for name, data := range entries {
		if err := builder.Add(name, bytes.NewReader(data)); err != nil {
			t.Fatal(err)
		}
	}

	var buf bytes.Buffer
	if _, err := builder.WriteTo(&buf); err != nil {
		t.Fatal(err)
	}
	return bytes.NewReader(buf.Bytes())
}

func TestPakRoundTrip(t *testing.T) {
	entries := map[string][]byte{
		"triangle.vert.spv": bytes.Repeat([]byte{0x03, 0x02, 0x23, 0x07}, 64),
		"triangle.frag.spv": []byte("not actually spirv but compresses"),
	}

	pak, err := OpenPak(buildTestArchive(t, entries))
	if err != nil {
		t.Fatal(err)
	}

	for name, want := range entries {
		got, err := pak.ReadAll(name)
		if err != nil {
			t.Fatalf("ReadAll(%q): %v", name, err)
		}
		if !bytes.Equal(got, want) {
			t.Errorf("ReadAll(%q) returned wrong contents", name)
		}
	}

	if len(pak.Header().Index) != len(entries) {
		t.Errorf("got %d index entries, want %d", len(pak.Header().Index), len(entries))
	}
	if pak.Header().Version != 1 {
		t.Errorf("got version %d", pak.Header().Version)
	}
}

func TestPakOpenStreams(t *testing.T) {
	payload := bytes.Repeat([]byte("streamable"), 100)
	pak, err := OpenPak(buildTestArchive(t, map[string][]byte{"big": payload}))
	if err != nil {
		t.Fatal(err)
	}

	r, err := pak.Open("big")
	if err != nil {
		t.Fatal(err)
	}
	got, err := io.ReadAll(r)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, payload) {
		t.Error("streamed contents differ")
	}
}

func TestPakConcurrentReads(t *testing.T) {
	payload := bytes.Repeat([]byte{0xab}, 4096)
	pak, err := OpenPak(buildTestArchive(t, map[string][]byte{"blob": payload}))
	if err != nil {
		t.Fatal(err)
	}

	done := make(chan error, 8)
	for i := 0; i < 8; i++ {
		go func() {
			got, err := pak.ReadAll("blob")
			if err == nil && !bytes.Equal(got, payload) {
				err = errors.New("contents differ")
			}
			done <- err
		}()
	}
	for i := 0; i < 8; i++ {
		if err := <-done; err != nil {
			t.Error(err)
		}
	}
}

func TestPakMissingEntry(t *testing.T) {
	pak, err := OpenPak(buildTestArchive(t, map[string][]byte{"present": []byte("x")}))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := pak.ReadAll("absent"); !errors.Is(err, ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestPakEmptyEntry(t *testing.T) {
	pak, err := OpenPak(buildTestArchive(t, map[string][]byte{"empty": nil}))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := pak.ReadAll("empty"); !errors.Is(err, ErrEmptyAsset) {
		t.Errorf("got %v, want ErrEmptyAsset", err)
	}
}

func TestOpenPakRejectsGarbage(t *testing.T) {
	garbage := bytes.NewReader([]byte("GARBAGEGARBAGEGARBAGE"))
	if _, err := OpenPak(garbage); !errors.Is(err, ErrPakFormat) {
		t.Errorf("got %v, want ErrPakFormat", err)
	}
}

func TestBuilderResetsAfterWrite(t *testing.T) {
	builder := NewBuilder(Header{Version: 1})
	if err := builder.Add("one", bytes.NewReader([]byte("data"))); err != nil {
		t.Fatal(err)
	}

	var first bytes.Buffer
	if _, err := builder.WriteTo(&first); err != nil {
		t.Fatal(err)
	}

	var second bytes.Buffer
	if _, err := builder.WriteTo(&second); err != nil {
		t.Fatal(err)
	}

	pak, err := OpenPak(bytes.NewReader(second.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	if len(pak.Header().Index) != 0 {
		t.Error("second archive still carries entries")
	}
}
