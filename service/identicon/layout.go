package identicon

import (
	"github.com/traPtitech/caleidenticon/utils/reservoir"
)

// slotCount 色と大きさの選択肢の数。セル番号をこの数で割った余りで選びます
const slotCount = 10

// layout グリッドの幾何情報と、セルごとの描画方針
type layout struct {
	GridSize     int
	UnusedRows   int
	CircleRadius int
	Margin       int
	ImageSize    int

	// SprinkleFrom, SprinkleTo 角の装飾に使う行・列の範囲 (両端を含む)
	SprinkleFrom int
	SprinkleTo   int
	HasSprinkle  bool

	ColorShifts     [slotCount]int
	SizeMultipliers [slotCount]int

	RectangleAmount int
	RectMatcher     int
	ElementScarcity int
}

// planGeometry 設定だけから決まるグリッドの幾何情報を計算します
func planGeometry(o Options) *layout {
	l := &layout{}
	l.GridSize = o.Complexity*2 + 1
	l.UnusedRows = min(o.Complexity*o.Spikiness/4, l.GridSize-2)
	l.CircleRadius = o.Scale / 2
	// 要素は標準の3倍の半径まで大きくなる
	l.Margin = l.CircleRadius * 3
	l.ImageSize = (l.GridSize*o.Scale + l.Margin) * 2

	inset := o.Complexity/2 + 1
	usable := max(l.UnusedRows-inset, 0)
	space := min(usable, o.CornerSprinkle)
	if space > 0 {
		l.HasSprinkle = true
		l.SprinkleFrom = inset
		l.SprinkleTo = inset + space
	}

	l.ElementScarcity = 10 - o.Density
	return l
}

// drawSlots 色のずらし量と大きさの倍率を入力ごとに決めます
//
// これで色は全入力で同じ順に並ばず、一部の要素が大きくなります。
func (l *layout) drawSlots(r *reservoir.Reservoir) {
	for i := range l.ColorShifts {
		l.ColorShifts[i] = int(r.Draw(3))
	}
	for i := range l.SizeMultipliers {
		l.SizeMultipliers[i] = max(int(r.Draw(2)), 1)
	}

	// シフトせずに覗くだけ
	l.RectangleAmount = int(r.Peek(1, 1)) + 1
	if l.RectangleAmount == 1 {
		l.RectMatcher = 1
	} else {
		l.RectMatcher = 3
	}
}

func (l *layout) inSprinkle(n int) bool {
	return l.HasSprinkle && l.SprinkleFrom <= n && n <= l.SprinkleTo
}

// eligible (row, column) のセルに要素を置く可能性があるかどうか
func (l *layout) eligible(row, column int) bool {
	return row >= l.UnusedRows || (l.inSprinkle(row) && l.inSprinkle(column))
}
