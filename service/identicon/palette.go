package identicon

import (
	"image/color"

	"github.com/traPtitech/caleidenticon/utils/reservoir"
)

// paletteSize 描画色の数 (基本色4つ × 明暗)
const paletteSize = 8

// deriveTint リザーバーから入力固有の色味を取り出します
func deriveTint(r *reservoir.Reservoir) [3]int {
	var tint [3]int
	for i := range tint {
		tint[i] = int(r.Draw(8))
	}
	return tint
}

// derivePalette 基本色ごとに、色味を軽く混ぜた明色と強く混ぜた暗色を並べます
func derivePalette(bases [][]int, tint [3]int) [paletteSize]color.NRGBA {
	var p [paletteSize]color.NRGBA
	for i, base := range bases {
		p[i*2] = color.NRGBA{
			R: uint8((base[0] + tint[0]) / 2),
			G: uint8((base[1] + tint[1]) / 2),
			B: uint8((base[2] + tint[2]) / 2),
			A: 0xff,
		}
		p[i*2+1] = color.NRGBA{
			R: uint8((base[0]*2 + tint[0]*5) / 9),
			G: uint8((base[1]*2 + tint[1]*5) / 9),
			B: uint8((base[2]*2 + tint[2]*5) / 9),
			A: 0xff,
		}
	}
	return p
}
