package imaging

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"image/png"
	"io"

	"golang.org/x/image/tiff"
)

// ErrTooManyColors インデックスカラーで表現できない色数です
var ErrTooManyColors = errors.New("too many colors for indexed encoding")

// Palette srcに現れる色を出現順に並べたパレットを返します
//
// 256色を超える場合はErrTooManyColorsを返します。
func Palette(src *image.NRGBA) (color.Palette, error) {
	seen := make(map[color.NRGBA]struct{})
	var p color.Palette
	b := src.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := src.NRGBAAt(x, y)
			if _, ok := seen[c]; ok {
				continue
			}
			if len(p) == 256 {
				return nil, ErrTooManyColors
			}
			seen[c] = struct{}{}
			p = append(p, c)
		}
	}
	return p, nil
}

// ToPaletted srcを画素の色を変えずにインデックスカラー画像に変換します
func ToPaletted(src *image.NRGBA) (*image.Paletted, error) {
	p, err := Palette(src)
	if err != nil {
		return nil, err
	}
	dst := image.NewPaletted(src.Bounds(), p)
	// 全ての色がパレットに存在するので最近傍探索は完全一致になる
	draw.Draw(dst, dst.Rect, src, src.Rect.Min, draw.Src)
	return dst, nil
}

// EncodePNG srcをインデックスカラーPNGとしてwに書き出します
func EncodePNG(w io.Writer, src *image.NRGBA) error {
	dst, err := ToPaletted(src)
	if err != nil {
		return err
	}
	enc := &png.Encoder{CompressionLevel: png.BestCompression}
	return enc.Encode(w, dst)
}

// EncodeGIF srcをインデックスカラーGIFとしてwに書き出します
func EncodeGIF(w io.Writer, src *image.NRGBA) error {
	dst, err := ToPaletted(src)
	if err != nil {
		return err
	}
	return gif.Encode(w, dst, &gif.Options{NumColors: len(dst.Palette)})
}

// EncodeTIFF srcをDeflate圧縮のTIFFとしてwに書き出します
func EncodeTIFF(w io.Writer, src *image.NRGBA) error {
	return tiff.Encode(w, src, &tiff.Options{Compression: tiff.Deflate})
}
