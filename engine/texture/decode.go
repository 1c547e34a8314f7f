package texture

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"

	"github.com/Carmen-Shannon/oxy-card/common"
	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/bmp"
	"golang.org/x/image/webp"
)

// ErrUnsupportedFormat is returned when no decoder recognizes the data.
var ErrUnsupportedFormat = errors.New("texture: unsupported image format")

type decoder struct {
	name  string
	magic func(b []byte) bool
	fn    func(r io.Reader) (image.Image, error)
}

// TGA has no signature, so it is tried last for anything the other formats reject.
var decoders = []decoder{
	{"png", prefix("\x89PNG\r\n\x1a\n"), png.Decode},
	{"jpeg", prefix("\xff\xd8"), jpeg.Decode},
	{"gif", prefix("GIF8"), gif.Decode},
	{"bmp", prefix("BM"), bmp.Decode},
	{"webp", func(b []byte) bool { return len(b) >= 12 && string(b[:4]) == "RIFF" && string(b[8:12]) == "WEBP" }, webp.Decode},
}

func prefix(magic string) func([]byte) bool {
	return func(b []byte) bool { return bytes.HasPrefix(b, []byte(magic)) }
}

// Decode decodes PNG, JPEG, GIF, BMP, WebP or TGA data into NRGBA pixels.
//
// Parameters:
//   - data: the encoded image
//
// Returns:
//   - *image.NRGBA: the decoded pixels
//   - string: the detected format name
//   - error: ErrUnsupportedFormat or the decoder's error
func Decode(data []byte) (*image.NRGBA, string, error) {
	for _, d := range decoders {
		if !d.magic(data) {
			continue
		}
		img, err := d.fn(bytes.NewReader(data))
		if err != nil {
			return nil, d.name, fmt.Errorf("texture: decode %s: %w", d.name, err)
		}
		return toNRGBA(img), d.name, nil
	}

	img, err := tga.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
	}
	return toNRGBA(img), "tga", nil
}

// DecodeFile reads and decodes an image file.
//
// Parameters:
//   - path: the file path
//
// Returns:
//   - *image.NRGBA: the decoded pixels
//   - error: a wrapped read or decode error
func DecodeFile(path string) (*image.NRGBA, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("texture: read %s: %w", path, err)
	}
	img, _, err := Decode(raw)
	if err != nil {
		return nil, fmt.Errorf("texture: %s: %w", path, err)
	}
	return img, nil
}

// toNRGBA converts any image to NRGBA format anchored at the origin.
func toNRGBA(src image.Image) *image.NRGBA {
	if n, ok := src.(*image.NRGBA); ok && n.Rect.Min == (image.Point{}) {
		return n
	}
	b := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	switch src.(type) {
	case *image.YCbCr, *image.Gray, *image.RGBA:
		draw.Draw(dst, dst.Rect, src, b.Min, draw.Src)
	default:
		for y := 0; y < b.Dy(); y++ {
			for x := 0; x < b.Dx(); x++ {
				c := color.NRGBAModel.Convert(src.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
				i := dst.PixOffset(x, y)
				dst.Pix[i] = c.R
				dst.Pix[i+1] = c.G
				dst.Pix[i+2] = c.B
				dst.Pix[i+3] = c.A
			}
		}
	}
	return dst
}

// AverageColor returns the alpha-weighted mean color of img in [0, 1]. Fully transparent
// images average to white.
//
// Parameters:
//   - img: the pixels
//
// Returns:
//   - common.Color: the mean color
func AverageColor(img *image.NRGBA) common.Color {
	if img == nil {
		return common.White
	}
	var r, g, b, w float64
	for y := 0; y < img.Rect.Dy(); y++ {
		row := img.Pix[y*img.Stride:]
		for x := 0; x < img.Rect.Dx(); x++ {
			p := row[x*4 : x*4+4]
			a := float64(p[3]) / 255
			r += float64(p[0]) * a
			g += float64(p[1]) * a
			b += float64(p[2]) * a
			w += a
		}
	}
	if w == 0 {
		return common.White
	}
	return common.Color{float32(r / w / 255), float32(g / w / 255), float32(b / w / 255)}
}
