// Package tensor converts decoded image bytes into the host's canonical
// image representation: a batch of one RGB image with float32 samples in
// [0,1], laid out as [1][height][width][3] in row-major order.
package tensor

import (
	"errors"
	"fmt"
)

// ErrInvalidImageFormat matches any InvalidFormatError.
var ErrInvalidImageFormat = errors.New("invalid image format")

// InvalidFormatError reports a pixel buffer whose channel count is not 1, 3 or 4.
type InvalidFormatError struct {
	Channels int
}

func (e *InvalidFormatError) Error() string {
	return fmt.Sprintf("invalid image format: %d channels, want 1, 3 or 4", e.Channels)
}

func (e *InvalidFormatError) Is(target error) bool {
	return target == ErrInvalidImageFormat
}

// Buffer is a decoded pixel buffer in its native channel depth.
// Pix holds Width*Height*Channels interleaved 8-bit samples.
type Buffer struct {
	Width    int
	Height   int
	Channels int
	Pix      []uint8
}

// Image is the canonical image tensor with shape [1, Height, Width, 3].
type Image struct {
	Height int
	Width  int
	Data   []float32
}

// New allocates a black image of the given size.
func New(height, width int) *Image {
	return &Image{Height: height, Width: width, Data: make([]float32, height*width*3)}
}

func (m *Image) Shape() [4]int {
	return [4]int{1, m.Height, m.Width, 3}
}

// At returns channel c of the pixel at row y, column x.
func (m *Image) At(y, x, c int) float32 {
	return m.Data[(y*m.Width+x)*3+c]
}

func (m *Image) Set(y, x, c int, v float32) {
	m.Data[(y*m.Width+x)*3+c] = v
}

// Normalize scales every sample by 1/255 and coerces the buffer to three
// channels: grayscale is replicated across RGB and a fourth (alpha) channel
// is dropped without blending. Any other channel count is rejected.
func Normalize(buf Buffer) (*Image, error) {
	switch buf.Channels {
	case 1, 3, 4:
	default:
		return nil, &InvalidFormatError{Channels: buf.Channels}
	}
	if buf.Width < 0 || buf.Height < 0 {
		return nil, fmt.Errorf("invalid image dimensions %dx%d", buf.Width, buf.Height)
	}

	n := buf.Width * buf.Height
	if len(buf.Pix) != n*buf.Channels {
		return nil, fmt.Errorf("pixel buffer holds %d samples, want %d", len(buf.Pix), n*buf.Channels)
	}

	out := New(buf.Height, buf.Width)
	for i := 0; i < n; i++ {
		src := buf.Pix[i*buf.Channels:]
		dst := out.Data[i*3 : i*3+3]
		if buf.Channels == 1 {
			v := float32(src[0]) / 255
			dst[0], dst[1], dst[2] = v, v, v
			continue
		}
		dst[0] = float32(src[0]) / 255
		dst[1] = float32(src[1]) / 255
		dst[2] = float32(src[2]) / 255
	}
	return out, nil
}

// FromBytes decodes encoded image bytes and normalizes them.
func FromBytes(data []byte) (*Image, error) {
	buf, err := Decode(data)
	if err != nil {
		return nil, err
	}
	return Normalize(buf)
}
