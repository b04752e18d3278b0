// Copyright (c) 2026 vkt
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core_test

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/gobuffalo/packr"

	"github.com/vkt/hellovk/core"
)

var (
	staticResources packr.Box
	testImage       image.Image
)

func init() {
	staticResources = packr.NewBox("./testdata")
	img, err := png.Decode(bytes.NewReader(staticResources.Bytes("pixel.png")))
	if err != nil {
		panic(err)
	}
	testImage = img
}

func TestGetPixels(t *testing.T) {
	pixels, err := core.GetPixels(testImage, 4)
	if err != nil {
		t.Fatal(err)
	}
	if len(pixels) != 4 {
		t.Fatalf("got %d bytes for a 1x1 image, want 4", len(pixels))
	}
	// the fixture holds a single opaque pixel
	if want := []byte{200, 120, 80, 255}; !bytes.Equal(pixels, want) {
		t.Errorf("got pixel %v, want %v", pixels, want)
	}
}

func TestGetPixelsLargeImage(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(x * 32),
				G: uint8(y * 32),
				B: 0x80,
				A: 0xff,
			})
		}
	}

	pixels, err := core.GetPixels(img, 32)
	if err != nil {
		t.Fatal(err)
	}
	if len(pixels) != 8*8*4 {
		t.Errorf("got %d bytes, want %d", len(pixels), 8*8*4)
	}
	// top-left pixel survives the conversion
	if pixels[0] != 0 || pixels[1] != 0 {
		t.Errorf("unexpected first pixel %v", pixels[:4])
	}
}

func TestSliceUint32(t *testing.T) {
	words := core.SliceUint32([]byte{0x01, 0x00, 0x00, 0x00, 0xff, 0x00, 0x00, 0x00})
	if len(words) != 2 {
		t.Fatalf("got %d words, want 2", len(words))
	}
	if words[0] != 1 || words[1] != 0xff {
		t.Errorf("got %v", words)
	}
}

func BenchmarkGetPixelsNoRowPitch(b *testing.B) {
	for idx := 0; idx < b.N; idx++ {
		core.GetPixels(testImage, 4)
	}
}

func BenchmarkSliceUint32Small(b *testing.B) {
	data := make([]byte, 100)
	for idx := 0; idx < b.N; idx++ {
		core.SliceUint32(data)
	}
}

func BenchmarkSliceUint32Big(b *testing.B) {
	data := make([]byte, 100000)
	for idx := 0; idx < b.N; idx++ {
		core.SliceUint32(data)
	}
}
