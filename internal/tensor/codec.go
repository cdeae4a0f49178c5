package tensor

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"

	_ "golang.org/x/image/webp"
)

// Decode decodes PNG, JPEG, GIF or WebP bytes into a Buffer. Grayscale
// images keep one channel, opaque colour images get three and images that
// can carry transparency get four.
func Decode(data []byte) (Buffer, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return Buffer{}, fmt.Errorf("decoding image: %w", err)
	}
	return FromImage(img), nil
}

// FromImage copies img into a Buffer in its native channel depth.
func FromImage(img image.Image) Buffer {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	switch src := img.(type) {
	case *image.Gray:
		buf := Buffer{Width: w, Height: h, Channels: 1, Pix: make([]uint8, w*h)}
		for y := 0; y < h; y++ {
			off := src.PixOffset(b.Min.X, b.Min.Y+y)
			copy(buf.Pix[y*w:(y+1)*w], src.Pix[off:off+w])
		}
		return buf
	case *image.Gray16:
		buf := Buffer{Width: w, Height: h, Channels: 1, Pix: make([]uint8, w*h)}
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				buf.Pix[y*w+x] = uint8(src.Gray16At(b.Min.X+x, b.Min.Y+y).Y >> 8)
			}
		}
		return buf
	}

	channels := 4
	if o, ok := img.(interface{ Opaque() bool }); ok && o.Opaque() {
		channels = 3
	}

	buf := Buffer{Width: w, Height: h, Channels: channels, Pix: make([]uint8, w*h*channels)}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.NRGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
			px := buf.Pix[(y*w+x)*channels:]
			px[0], px[1], px[2] = c.R, c.G, c.B
			if channels == 4 {
				px[3] = c.A
			}
		}
	}
	return buf
}

// ToImage converts the tensor back to 8-bit pixels. Samples are clamped to
// [0,1] and scaled by 255 with truncation; alpha is fully opaque.
func (m *Image) ToImage() *image.NRGBA {
	out := image.NewNRGBA(image.Rect(0, 0, m.Width, m.Height))
	for i := 0; i < m.Width*m.Height; i++ {
		out.Pix[i*4+0] = toByte(m.Data[i*3+0])
		out.Pix[i*4+1] = toByte(m.Data[i*3+1])
		out.Pix[i*4+2] = toByte(m.Data[i*3+2])
		out.Pix[i*4+3] = 0xff
	}
	return out
}

func EncodePNG(m *Image) ([]byte, error) {
	if m.Width < 0 || m.Height < 0 {
		return nil, fmt.Errorf("invalid image dimensions %dx%d", m.Width, m.Height)
	}
	if want := m.Width * m.Height * 3; len(m.Data) != want {
		return nil, fmt.Errorf("tensor holds %d samples, want %d", len(m.Data), want)
	}

	var data bytes.Buffer
	if err := png.Encode(&data, m.ToImage()); err != nil {
		return nil, fmt.Errorf("encoding png: %w", err)
	}
	return data.Bytes(), nil
}

func toByte(v float32) uint8 {
	return uint8(min(max(v, 0), 1) * 255)
}
