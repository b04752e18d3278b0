// Copyright (c) 2026 vkt
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package asset

import (
	"bytes"
	"encoding/binary"
	"encoding/gob"
	"io"
	"sync"

	"github.com/pierrec/lz4"
)

// NewBuilder creates a pak Builder. The Index of the header is filled
// in by the Builder, anything put there is overwritten.
func NewBuilder(header Header) *Builder {
	header.Index = nil
	return &Builder{header: header}
}

type pendingEntry struct {
	name       string
	size       int64
	compressed []byte
}

// Builder assembles a pak archive. Archives are versioned and cannot
// be appended to; whenever Add is called the data is compressed
// immediately, and WriteTo bundles everything with a final index.
type Builder struct {
	header Header

	mutex   sync.Mutex
	entries []pendingEntry
}

// Add compresses and stores the contents of r under name. It blocks
// until lz4 finishes and is safe to call from multiple goroutines.
func (b *Builder) Add(name string, r io.Reader) error {
	var compressed bytes.Buffer
	w := lz4.NewWriter(&compressed)
	size, err := io.Copy(w, r)
	if err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}

	b.mutex.Lock()
	defer b.mutex.Unlock()
	b.entries = append(b.entries, pendingEntry{
		name:       name,
		size:       size,
		compressed: compressed.Bytes(),
	})
	return nil
}

// WriteTo bundles every added entry into a ready-to-use pak archive.
// Entry offsets are relative to the data section, so the index can be
// encoded before the data is laid out.
func (b *Builder) WriteTo(w io.Writer) (int64, error) {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	header := b.header
	var offset int64
	for _, e := range b.entries {
		header.Index = append(header.Index, Entry{
			Name:           e.name,
			Offset:         offset,
			Size:           e.size,
			CompressedSize: int64(len(e.compressed)),
		})
		offset += int64(len(e.compressed))
	}

	var headerBytes bytes.Buffer
	if err := gob.NewEncoder(&headerBytes).Encode(header); err != nil {
		return 0, err
	}

	var written int64

	n, err := w.Write([]byte(pakMagic))
	written += int64(n)
	if err != nil {
		return written, err
	}

	sizeField := make([]byte, pakHeaderSizeField)
	binary.LittleEndian.PutUint64(sizeField, uint64(headerBytes.Len()))
	n, err = w.Write(sizeField)
	written += int64(n)
	if err != nil {
		return written, err
	}

	n, err = w.Write(headerBytes.Bytes())
	written += int64(n)
	if err != nil {
		return written, err
	}

	for _, e := range b.entries {
		n, err := w.Write(e.compressed)
		written += int64(n)
		if err != nil {
			return written, err
		}
	}

	b.entries = b.entries[:0]
	return written, nil
}
