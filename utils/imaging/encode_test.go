package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"io"
	"testing"

	dimaging "github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/tiff"
)

func testCanvas() *Canvas {
	c := NewCanvas(32)
	c.Circle(10, 10, 6, color.NRGBA{R: 255, G: 10, B: 125, A: 0xff})
	c.Rect(15, 2, 30, 8, color.NRGBA{R: 15, G: 50, B: 255, A: 0xff})
	c.Circle(22, 22, 8, color.NRGBA{R: 140, G: 255, B: 10, A: 0xff})
	c.Rect(0, 28, 4, 31, color.NRGBA{R: 1, G: 2, B: 3, A: 0xff})
	return c
}

func TestPalette(t *testing.T) {
	t.Parallel()

	p, err := Palette(testCanvas().Image())
	require.NoError(t, err)
	assert.Len(t, p, 5)
	assert.Equal(t, color.NRGBA{}, p[0])

	big := image.NewNRGBA(image.Rect(0, 0, 32, 32))
	for i := range 32 * 32 {
		big.SetNRGBA(i%32, i/32, color.NRGBA{R: uint8(i), G: uint8(i >> 8), A: 0xff})
	}
	_, err = Palette(big)
	assert.ErrorIs(t, err, ErrTooManyColors)
}

func TestToPaletted(t *testing.T) {
	t.Parallel()

	src := testCanvas().Image()
	dst, err := ToPaletted(src)
	require.NoError(t, err)
	assert.Equal(t, src.Pix, dimaging.Clone(dst).Pix)
}

func TestEncode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		encode  func(io.Writer, *image.NRGBA) error
		decode  func(io.Reader) (image.Image, error)
		indexed bool
	}{
		{"png", EncodePNG, png.Decode, true},
		{"gif", EncodeGIF, gif.Decode, true},
		{"tiff", EncodeTIFF, tiff.Decode, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src := testCanvas().Image()
			var buf bytes.Buffer
			require.NoError(t, tt.encode(&buf, src))

			decoded, err := tt.decode(&buf)
			require.NoError(t, err)
			if tt.indexed {
				assert.IsType(t, &image.Paletted{}, decoded)
			}
			assert.Equal(t, src.Pix, dimaging.Clone(decoded).Pix)
		})
	}
}
