package identicon

import (
	"bytes"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/traPtitech/caleidenticon/testutils"
	"github.com/traPtitech/caleidenticon/utils/imaging"
	"github.com/traPtitech/caleidenticon/utils/reservoir"
)

func clearBit(buf []byte, k int) {
	buf[len(buf)-1-k/8] &^= 1 << (k % 8)
}

func setupRasterizer(t *testing.T, buf []byte, modify func(o *Options), logger *zap.Logger) (*rasterizer, *reservoir.Reservoir) {
	t.Helper()
	o := DefaultOptions()
	modify(&o)
	o = o.normalized()
	require.NoError(t, o.validate("test"))

	r := reservoir.New(buf)
	l := planGeometry(o)
	l.drawSlots(r)
	if logger == nil {
		logger = zap.NewNop()
	}
	return newRasterizer(l, derivePalette(o.Colors, [3]int{}), r, logger), r
}

func TestRasterizer_run(t *testing.T) {
	t.Parallel()

	t.Run("scarce", func(t *testing.T) {
		t.Parallel()
		z, r := setupRasterizer(t, make([]byte, 128), func(o *Options) {}, nil)
		img := z.run().Image()

		// 1行は14セル、3行目から11行目までと12行目の先頭の127セルが対象
		assert.Equal(t, 1024-50-127*4, r.Remaining())
		assert.Equal(t, make([]byte, len(img.Pix)), img.Pix)
		assert.Empty(t, z.rectsPerRow)
	})

	t.Run("dense rectangles", func(t *testing.T) {
		t.Parallel()
		z, r := setupRasterizer(t, make([]byte, 128), func(o *Options) { o.Density = 10 }, nil)
		img := z.run().Image()

		assert.Equal(t, 1024-50-127*2, r.Remaining())
		for row := 3; row <= 11; row++ {
			assert.Equal(t, 14, z.rectsPerRow[row], "row %d", row)
		}
		assert.Equal(t, 1, z.rectsPerRow[12])
		assert.Len(t, z.rectsPerRow, 10)

		fill := color.NRGBA{R: 127, G: 5, B: 62, A: 0xff}
		assert.Equal(t, fill, img.NRGBAAt(20, 55))
		assert.Equal(t, fill, img.NRGBAAt(25, 55))
		assert.Equal(t, fill, img.NRGBAAt(30, 55))
		assert.Equal(t, color.NRGBA{}, img.NRGBAAt(19, 55))
		assert.Equal(t, color.NRGBA{}, img.NRGBAAt(25, 58))

		p, err := imaging.Palette(img)
		require.NoError(t, err)
		assert.ElementsMatch(t, color.Palette{color.NRGBA{}, fill}, p)

		testutils.AssertKaleidoscopic(t, img)
	})

	t.Run("forced rectangles", func(t *testing.T) {
		t.Parallel()
		buf := bytes.Repeat([]byte{0xff}, 80)
		// 3行目の最初の2セルだけ矩形を引かせる
		clearBit(buf, 54)
		clearBit(buf, 57)

		core, logs := observer.New(zap.DebugLevel)
		z, _ := setupRasterizer(t, buf, func(o *Options) { o.Density = 10 }, zap.New(core))
		img := z.run().Image()

		assert.Equal(t, map[int]int{3: 3}, z.rectsPerRow)

		cells := logs.FilterMessage("cell").All()
		require.Len(t, cells, 127)
		types := make([]string, 0, 4)
		for _, e := range cells[:4] {
			types = append(types, e.ContextMap()["type"].(string))
		}
		assert.Equal(t, []string{"rect", "rect", "rect", "circle"}, types)
		assert.EqualValues(t, 3, cells[0].ContextMap()["row"])
		assert.EqualValues(t, 0, cells[0].ContextMap()["column"])
		last := cells[len(cells)-1].ContextMap()
		assert.EqualValues(t, 12, last["row"])
		assert.EqualValues(t, 0, last["column"])
		assert.EqualValues(t, 168, last["index"])

		testutils.AssertKaleidoscopic(t, img)
	})
}
