package imaging

import (
	"image"
	"image/color"
)

// Canvas 不透明色で塗りつぶし図形を描画するラスタキャンバス
//
// 描画色で画素を上書きするだけで合成は行いません。キャンバス外の画素は無視されます。
type Canvas struct {
	img *image.NRGBA
}

// NewCanvas 透明なsize×sizeのキャンバスを生成します
func NewCanvas(size int) *Canvas {
	return &Canvas{img: image.NewNRGBA(image.Rect(0, 0, size, size))}
}

// Image 描画結果
func (c *Canvas) Image() *image.NRGBA {
	return c.img
}

// Size キャンバスの一辺の画素数
func (c *Canvas) Size() int {
	return c.img.Rect.Dx()
}

// Set (x, y) の画素をcにします
func (c *Canvas) Set(x, y int, col color.NRGBA) {
	if !(image.Point{X: x, Y: y}.In(c.img.Rect)) {
		return
	}
	c.img.SetNRGBA(x, y, col)
}

// HLine (x0, y) から (x1, y) までの水平線を両端を含めて描画します
func (c *Canvas) HLine(x0, x1, y int, col color.NRGBA) {
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	for x := x0; x <= x1; x++ {
		c.Set(x, y, col)
	}
}

// Rect (x0, y0) と (x1, y1) を対角とする矩形を両端を含めて塗りつぶします
func (c *Canvas) Rect(x0, y0, x1, y1 int, col color.NRGBA) {
	if y0 > y1 {
		y0, y1 = y1, y0
	}
	for y := y0; y <= y1; y++ {
		c.HLine(x0, x1, y, col)
	}
}

// Circle 中心 (cx, cy)、半径rの円を輪郭ごと塗りつぶします
//
// 中点円アルゴリズムで輪郭を描き、輪郭から求めた各行の半幅で内部を埋めます。
func (c *Canvas) Circle(cx, cy, r int, col color.NRGBA) {
	f := 1 - r
	ddx := 1
	ddy := -2 * r
	x, y := 0, r

	c.Set(cx, cy+r, col)
	c.Set(cx, cy-r, col)
	c.Set(cx+r, cy, col)
	c.Set(cx-r, cy, col)

	// spans[dy] 中心からdy行離れた行で塗る半幅
	spans := map[int]int{0: r - 1}
	narrow := func(dy, w int) {
		if cur, ok := spans[dy]; !ok || w < cur {
			spans[dy] = w
		}
	}

	for x < y {
		if f >= 0 {
			y--
			ddy += 2
			f += ddy
		}
		x++
		ddx += 2
		f += ddx

		narrow(y, x-1)
		narrow(x, y-1)

		c.Set(cx+x, cy+y, col)
		c.Set(cx-x, cy+y, col)
		c.Set(cx+x, cy-y, col)
		c.Set(cx-x, cy-y, col)
		if x != y {
			c.Set(cx+y, cy+x, col)
			c.Set(cx-y, cy+x, col)
			c.Set(cx+y, cy-x, col)
			c.Set(cx-y, cy-x, col)
		}
	}

	for dy, w := range spans {
		if w <= 0 {
			continue
		}
		c.HLine(cx-w, cx+w, cy-dy, col)
		if dy > 0 {
			c.HLine(cx-w, cx+w, cy+dy, col)
		}
	}
}
