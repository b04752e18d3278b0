// Copyright (c) 2026 vkt
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// The pak format is an lz4 backed archive suited for streaming
// resources. Unlike tar it knows where every file is located before
// anything is read: the archive itself is not compressed, every entry
// is compressed individually so it can be read from its place and
// decompressed on the fly. That trades some space for getting
// resources from disk to a usable state fast. Reads are safe to run
// concurrently.

package asset

import (
	"bytes"
	"encoding/binary"
	"encoding/gob"
	"errors"
	"fmt"
	"io"

	"github.com/pierrec/lz4"
)

// archive errors
var (
	ErrPakFormat = errors.New("asset: corrupted or not a pak archive")
	ErrNotFound  = errors.New("asset: no such entry")
)

// pak layout constants
const (
	pakMagic           = "PAK\x00"
	pakMagicLength     = 4
	pakHeaderSizeField = 8
)

// Entry is the index record of one file in a pak archive. Offset is
// relative to the start of the data section.
type Entry struct {
	Name           string
	Offset         int64
	Size           int64
	CompressedSize int64
}

// Header is the pak archive header.
type Header struct {
	CreatedAt int64
	Version   int64
	Index     []Entry
}

// OpenPak reads the header of a pak archive from r and prepares it
// for concurrent entry reads.
func OpenPak(r io.ReaderAt) (*Pak, error) {
	magic := make([]byte, pakMagicLength)
	if n, err := r.ReadAt(magic, 0); err != nil {
		return nil, err
	} else if n < pakMagicLength || string(magic) != pakMagic {
		return nil, ErrPakFormat
	}

	sizeBytes := make([]byte, pakHeaderSizeField)
	if n, err := r.ReadAt(sizeBytes, pakMagicLength); err != nil {
		return nil, err
	} else if n < pakHeaderSizeField {
		return nil, ErrPakFormat
	}
	headerSize := int64(binary.LittleEndian.Uint64(sizeBytes))
	if headerSize <= 0 {
		return nil, ErrPakFormat
	}

	headerBytes := make([]byte, headerSize)
	if n, err := r.ReadAt(headerBytes, pakMagicLength+pakHeaderSizeField); err != nil {
		return nil, err
	} else if int64(n) < headerSize {
		return nil, ErrPakFormat
	}

	var header Header
	dec := gob.NewDecoder(bytes.NewReader(headerBytes))
	if err := dec.Decode(&header); err != nil {
		return nil, ErrPakFormat
	}

	entries := make(map[string]Entry, len(header.Index))
	for _, e := range header.Index {
		entries[e.Name] = e
	}

	return &Pak{
		reader:    r,
		header:    header,
		entries:   entries,
		dataStart: pakMagicLength + pakHeaderSizeField + headerSize,
	}, nil
}

// Pak provides concurrent reads of a pak archive. It implements
// Source.
type Pak struct {
	reader    io.ReaderAt
	header    Header
	entries   map[string]Entry
	dataStart int64
}

// Header returns the decoded archive header.
func (p *Pak) Header() Header {
	return p.header
}

// Open returns a reader over the decompressed contents of the named
// entry.
func (p *Pak) Open(name string) (io.Reader, error) {
	entry, ok := p.entries[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	section := io.NewSectionReader(p.reader, p.dataStart+entry.Offset, entry.CompressedSize)
	return io.LimitReader(lz4.NewReader(section), entry.Size), nil
}

// ReadAll implements Source: it returns the entire decompressed
// contents of the named entry.
func (p *Pak) ReadAll(name string) ([]byte, error) {
	entry, ok := p.entries[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if entry.Size == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyAsset, name)
	}

	r, err := p.Open(name)
	if err != nil {
		return nil, err
	}
	data := make([]byte, entry.Size)
	if _, err := io.ReadFull(r, data); err != nil {
		return nil, err
	}
	return data, nil
}
