// Package comfile loads flat DOS .COM images.
//
// A .COM image has no header: the file is raw machine code and data, loaded
// by DOS at offset 0x100 in its segment. Every address in this codebase is an
// Address in that space.
package comfile

import (
	"errors"
	"fmt"
	"os"
)

// Origin is the load address of a .COM image within its segment.
const Origin Address = 0x100

// MaxImageSize is the largest payload a .COM image can hold: one 64 KiB
// segment minus the PSP below the origin and the reserved word at the top.
const MaxImageSize = 0x10000 - int(Origin) - 0x100

var ErrTooLarge = errors.New("comfile: image exceeds a single segment")

// Address is a 16-bit real-mode offset. Arithmetic on it wraps modulo 2^16,
// matching segment-relative addressing.
type Address uint16

func (a Address) String() string {
	return fmt.Sprintf("0x%04x", uint16(a))
}

// Image is a loaded .COM payload. Data[0] is the byte at Origin.
type Image struct {
	Data []byte
}

// New wraps an in-memory buffer as an image.
func New(data []byte) *Image {
	return &Image{Data: data}
}

// Read loads a .COM image from disk.
func Read(path string) (*Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("comfile: read: %w", err)
	}
	if len(data) > MaxImageSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrTooLarge, len(data))
	}
	return &Image{Data: data}, nil
}

// Index converts an address to a buffer index. ok is false when the address
// lies below the origin or past the end of the image.
func (m *Image) Index(a Address) (int, bool) {
	i := int(a) - int(Origin)
	if i < 0 || i >= len(m.Data) {
		return 0, false
	}
	return i, true
}

// End returns the first address past the image.
func (m *Image) End() Address {
	return Origin + Address(len(m.Data))
}
