package identicon

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/traPtitech/caleidenticon/utils/imaging"
	"github.com/traPtitech/caleidenticon/utils/storage"
)

// Render inputのidenticonを描画します
//
// 同じ入力と設定からは常に画素単位で同一の画像が得られます。
func Render(input string, opts Options) (*image.NRGBA, error) {
	o := opts.normalized()
	if err := o.validate(input); err != nil {
		return nil, err
	}
	return render(input, o)
}

func render(input string, o Options) (*image.NRGBA, error) {
	logger := o.Logger
	logger.Debug("creating blob", zap.String("input", input))

	r, err := expandHash(input, o.Salt, o.Complexity)
	if err != nil {
		return nil, err
	}
	logger.Debug("hash expanded", zap.Int("bits", r.BitLen()))

	tint := deriveTint(r)
	palette := derivePalette(o.Colors, tint)
	logger.Debug("tint derived", zap.Ints("tint", tint[:]))

	l := planGeometry(o)
	l.drawSlots(r)
	logger.Debug("slots drawn",
		zap.Ints("shifts", l.ColorShifts[:]),
		zap.Ints("multipliers", l.SizeMultipliers[:]),
	)
	logger.Debug("grid planned",
		zap.Int("gridSize", l.GridSize),
		zap.Int("unusedRows", l.UnusedRows),
		zap.Bool("sprinkled", l.HasSprinkle),
		zap.Int("sprinkleFrom", l.SprinkleFrom),
		zap.Int("sprinkleTo", l.SprinkleTo),
	)

	canvas := newRasterizer(l, palette, r, logger).run()
	logger.Debug("grid rasterized", zap.Int("remainingBits", r.Remaining()))
	return canvas.Image(), nil
}

// CreateBlob inputのidenticonを描画し、設定された形式でエンコードしたバイト列を返します
func CreateBlob(input string, opts Options) ([]byte, error) {
	o := opts.normalized()
	if err := o.validate(input); err != nil {
		return nil, err
	}
	img, err := render(input, o)
	if err != nil {
		return nil, err
	}
	return Encode(img, o.Format)
}

// Encode imgをformatでエンコードします
func Encode(img *image.NRGBA, format Format) ([]byte, error) {
	var buf bytes.Buffer
	var err error
	switch format {
	case FormatGIF:
		err = imaging.EncodeGIF(&buf, img)
	case FormatTIFF:
		err = imaging.EncodeTIFF(&buf, img)
	case FormatPNG, "":
		err = imaging.EncodePNG(&buf, img)
	default:
		return nil, fmt.Errorf("%w: %s", ErrInvalidFormat, format)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncodingFailure, err)
	}
	return buf.Bytes(), nil
}

// Save inputのidenticonをfsにkeyとして保存します
func Save(fs storage.FileStorage, key, input string, opts Options) error {
	o := opts.normalized()
	blob, err := CreateBlob(input, o)
	if err != nil {
		return err
	}
	return fs.SaveByKey(bytes.NewReader(blob), key, o.Format.ContentType())
}

// CreateAndSave inputのidenticonをpathに書き出します
//
// 生成や書き込みに失敗した場合はエラーを返さずfalseを返します。
func CreateAndSave(input, path string, opts Options) bool {
	o := opts.normalized()
	fs := storage.NewLocalFileStorage(filepath.Dir(path))
	if err := Save(fs, filepath.Base(path), input, o); err != nil {
		o.Logger.Debug("blob creation failed", zap.String("path", path), zap.Error(err))
		return false
	}
	return true
}

func hexColor(c color.NRGBA) string {
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}
