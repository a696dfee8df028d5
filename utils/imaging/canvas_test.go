package imaging

import (
	"image/color"
	"testing"

	dimaging "github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
)

var testColor = color.NRGBA{R: 10, G: 20, B: 30, A: 0xff}

func countColored(c *Canvas) int {
	n := 0
	for i := 3; i < len(c.img.Pix); i += 4 {
		if c.img.Pix[i] != 0 {
			n++
		}
	}
	return n
}

func TestNewCanvas(t *testing.T) {
	t.Parallel()

	c := NewCanvas(20)
	assert.Equal(t, 20, c.Size())
	assert.Equal(t, 0, countColored(c))
	assert.Equal(t, color.NRGBA{}, c.Image().NRGBAAt(3, 3))
}

func TestCanvas_Rect(t *testing.T) {
	t.Parallel()

	t.Run("inclusive", func(t *testing.T) {
		t.Parallel()

		c := NewCanvas(20)
		c.Rect(7, 3, 2, 5, testColor)
		assert.Equal(t, 6*3, countColored(c))
		assert.Equal(t, testColor, c.Image().NRGBAAt(2, 3))
		assert.Equal(t, testColor, c.Image().NRGBAAt(7, 5))
		assert.Equal(t, color.NRGBA{}, c.Image().NRGBAAt(8, 5))
		assert.Equal(t, color.NRGBA{}, c.Image().NRGBAAt(2, 6))
	})

	t.Run("clipped", func(t *testing.T) {
		t.Parallel()

		c := NewCanvas(10)
		c.Rect(-5, -5, 2, 12, testColor)
		assert.Equal(t, 3*10, countColored(c))
	})

	t.Run("point", func(t *testing.T) {
		t.Parallel()

		c := NewCanvas(10)
		c.Rect(4, 4, 4, 4, testColor)
		assert.Equal(t, 1, countColored(c))
	})
}

func TestCanvas_Circle(t *testing.T) {
	t.Parallel()

	t.Run("radius 0", func(t *testing.T) {
		t.Parallel()

		c := NewCanvas(10)
		c.Circle(5, 5, 0, testColor)
		assert.Equal(t, 1, countColored(c))
	})

	t.Run("radius 1", func(t *testing.T) {
		t.Parallel()

		c := NewCanvas(10)
		c.Circle(5, 5, 1, testColor)
		// 中心は塗られず、上下左右の4点のみ
		assert.Equal(t, 4, countColored(c))
		assert.Equal(t, color.NRGBA{}, c.Image().NRGBAAt(5, 5))
	})

	for _, r := range []int{2, 3, 5, 10, 15} {
		c := NewCanvas(41)
		c.Circle(20, 20, r, testColor)
		img := c.Image()

		assert.Equal(t, testColor, img.NRGBAAt(20, 20), "center r=%d", r)
		assert.Equal(t, testColor, img.NRGBAAt(20+r, 20), "edge r=%d", r)
		assert.Equal(t, color.NRGBA{}, img.NRGBAAt(20+r+1, 20), "outside r=%d", r)
		assert.Equal(t, color.NRGBA{}, img.NRGBAAt(20+r, 20+r), "corner r=%d", r)

		assert.Equal(t, img.Pix, dimaging.FlipH(img).Pix, "flipH r=%d", r)
		assert.Equal(t, img.Pix, dimaging.FlipV(img).Pix, "flipV r=%d", r)
		assert.Equal(t, img.Pix, dimaging.Transpose(img).Pix, "transpose r=%d", r)
	}

	t.Run("clipped", func(t *testing.T) {
		t.Parallel()

		c := NewCanvas(10)
		assert.NotPanics(t, func() { c.Circle(0, 0, 30, testColor) })
		assert.Equal(t, 100, countColored(c))
	})
}
