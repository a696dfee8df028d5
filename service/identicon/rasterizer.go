package identicon

import (
	"image"
	"image/color"

	"go.uber.org/zap"

	"github.com/traPtitech/caleidenticon/utils/imaging"
	"github.com/traPtitech/caleidenticon/utils/reservoir"
)

// maxForcedRectangles 行内の長方形がこの数に達した次の要素は必ず長方形になる
const maxForcedRectangles = 2

type shape int

const (
	shapeCircle shape = iota
	shapeRect
)

func (s shape) String() string {
	if s == shapeRect {
		return "rect"
	}
	return "circle"
}

// rasterizer グリッドを走査してキャンバスに要素を描画します
type rasterizer struct {
	l       *layout
	palette [paletteSize]color.NRGBA
	r       *reservoir.Reservoir
	canvas  *imaging.Canvas
	logger  *zap.Logger

	rectsPerRow map[int]int
}

func newRasterizer(l *layout, palette [paletteSize]color.NRGBA, r *reservoir.Reservoir, logger *zap.Logger) *rasterizer {
	return &rasterizer{
		l:           l,
		palette:     palette,
		r:           r,
		canvas:      imaging.NewCanvas(l.ImageSize),
		logger:      logger,
		rectsPerRow: make(map[int]int),
	}
}

// run 全セルを走査します
//
// 列はgridSizeを「超えた」ときに折り返すため、1行は0..gridSizeのgridSize+1列になり、
// 最後の行は途中で終わります。
// 既存の画像と同じ出力を得るためにこの走査順を変えてはいけません。
func (z *rasterizer) run() *imaging.Canvas {
	g := z.l.GridSize
	row, column := 0, 0
	for i := range g * g {
		if column > g {
			row++
			column = 0
		}
		if z.l.eligible(row, column) {
			z.cell(i, row, column)
		}
		column++
	}
	return z.canvas
}

func (z *rasterizer) cell(i, row, column int) {
	s := z.l.ElementScarcity
	z.r.Shift(s)
	// scarcityをシフト幅、マスク、比較値の全てに使う
	if z.r.Peek(s, uint64(s)) != uint64(s) {
		return
	}

	cr, m, w := z.l.CircleRadius, z.l.Margin, z.l.ImageSize
	x := (column+1)*cr*2 + m
	y := (row+1)*cr*2 + m

	// 象限内で対角に鏡映し、全象限を中心に対して点対称に配置する
	points := [8]image.Point{
		{x, y}, {y, x},
		{w - x, y}, {w - y, x},
		{x, w - y}, {y, w - x},
		{w - x, w - y}, {w - y, w - x},
	}

	col := z.palette[z.l.ColorShifts[i%slotCount]]
	size := cr * z.l.SizeMultipliers[i%slotCount]

	var sh shape
	ra, rm := z.l.RectangleAmount, uint64(z.l.RectMatcher)
	z.r.Shift(ra)
	if z.r.Peek(ra, rm) != rm || z.rectsPerRow[row] == maxForcedRectangles {
		sh = shapeRect
		z.rects(points, size, col)
		z.rectsPerRow[row]++
	} else {
		sh = shapeCircle
		for _, p := range points {
			z.canvas.Circle(p.X, p.Y, size, col)
		}
	}

	z.logger.Debug("cell",
		zap.Int("index", i),
		zap.Int("row", row),
		zap.Int("column", column),
		zap.Stringer("type", sh),
		zap.Int("size", z.l.SizeMultipliers[i%slotCount]),
		zap.String("color", hexColor(col)),
	)
}

// rects 細長い長方形を8か所に描きます。各象限の2つ目は90°回転させます
func (z *rasterizer) rects(points [8]image.Point, size int, col color.NRGBA) {
	width, length := size, size/4
	// 半数の長方形を回転させる
	if z.r.Peek(1, 1) == 1 {
		width, length = length, width
	}
	z.r.Shift(1)

	for idx, p := range points {
		xs, ys := width, length
		if idx%2 != 0 {
			xs, ys = ys, xs
		}
		z.canvas.Rect(p.X-xs, p.Y-ys, p.X+xs, p.Y+ys, col)
	}
}
