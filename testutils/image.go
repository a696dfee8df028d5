package testutils

import (
	"bytes"
	"image"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	// デコーダ登録
	_ "image/gif"
	_ "image/png"

	_ "golang.org/x/image/tiff"
)

// MustDecodeNRGBA 画像バイト列をデコードしてNRGBA画像として返します
func MustDecodeNRGBA(t *testing.T, b []byte) (*image.NRGBA, string) {
	t.Helper()
	img, format, err := image.Decode(bytes.NewReader(b))
	require.NoError(t, err)
	return imaging.Clone(img), format
}

// AssertKaleidoscopic imgが中心に対して8回対称であることを確認します
//
// 鏡映は画素座標pをW-pに移すので、0列目と0行目は対になる画素を持ちません。
func AssertKaleidoscopic(t *testing.T, img *image.NRGBA) bool {
	t.Helper()
	w := img.Rect.Dx()
	if !assert.Equal(t, w, img.Rect.Dy(), "image must be square") {
		return false
	}

	flippedH := imaging.FlipH(img)
	flippedV := imaging.FlipV(img)
	for y := 1; y < w; y++ {
		for x := 1; x < w; x++ {
			c := img.NRGBAAt(x, y)
			if !assert.Equal(t, c, flippedH.NRGBAAt(x-1, y), "horizontal mirror at (%d, %d)", x, y) {
				return false
			}
			if !assert.Equal(t, c, flippedV.NRGBAAt(x, y-1), "vertical mirror at (%d, %d)", x, y) {
				return false
			}
		}
	}
	return assert.Equal(t, img.Pix, imaging.Transpose(img).Pix, "diagonal mirror")
}
