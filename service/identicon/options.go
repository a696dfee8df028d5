package identicon

import (
	"errors"
	"fmt"

	vd "github.com/go-ozzo/ozzo-validation/v4"
	"go.uber.org/zap"

	"github.com/traPtitech/caleidenticon/utils/slowhash"
	"github.com/traPtitech/caleidenticon/utils/validator"
)

var (
	// ErrInvalidInput 入力文字列が空です
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvalidSalt ソルトがbcryptソルトとして不正です
	ErrInvalidSalt = errors.New("invalid salt")
	// ErrInvalidColors 基本色の指定が不正です
	ErrInvalidColors = errors.New("invalid colors")
	// ErrInvalidFormat 出力画像形式が不正です
	ErrInvalidFormat = errors.New("invalid format")
	// ErrEncodingFailure 画像のエンコードに失敗しました
	ErrEncodingFailure = errors.New("encoding failure")
)

// Format 出力画像形式
type Format string

const (
	// FormatPNG インデックスカラーPNG
	FormatPNG Format = "png"
	// FormatGIF インデックスカラーGIF
	FormatGIF Format = "gif"
	// FormatTIFF Deflate圧縮TIFF
	FormatTIFF Format = "tiff"
)

// ContentType 形式のMIMEタイプ
func (f Format) ContentType() string {
	switch f {
	case FormatGIF:
		return "image/gif"
	case FormatTIFF:
		return "image/tiff"
	default:
		return "image/png"
	}
}

// Extension 形式のファイル拡張子
func (f Format) Extension() string {
	switch f {
	case FormatGIF:
		return ".gif"
	case FormatTIFF:
		return ".tiff"
	default:
		return ".png"
	}
}

// DefaultSalt デフォルトのソルト (21文字)
const DefaultSalt = "KGvNwCoZtioSTC07piREn"

// Options identicon生成設定
type Options struct {
	// Complexity 要素数 (2..) 画像サイズに影響します
	Complexity int `mapstructure:"complexity" yaml:"complexity"`
	// Scale 各要素の解像度 (1..) 画像サイズに影響します
	Scale int `mapstructure:"scale" yaml:"scale"`
	// Density 要素の密度 (2..10)
	Density int `mapstructure:"density" yaml:"density"`
	// Spikiness 大きいほど全体の形が尖ります (1..)
	Spikiness int `mapstructure:"spikiness" yaml:"spikiness"`
	// CornerSprinkle 空いた角を装飾するセル数 (0..)
	CornerSprinkle int `mapstructure:"cornerSprinkle" yaml:"cornerSprinkle"`
	// Colors 4つの基本色 (RGB, 各0..255)
	Colors [][]int `mapstructure:"colors" yaml:"colors"`
	// Salt bcryptソルト ("$2a$10$" と "." に挟んで22文字になること)
	Salt string `mapstructure:"salt" yaml:"salt"`
	// Format 出力画像形式 (default: png)
	Format Format `mapstructure:"format" yaml:"format"`
	// Logger 各段階の診断情報をDebugレベルで出力するロガー。nilの場合は出力しません
	Logger *zap.Logger `mapstructure:"-" yaml:"-"`
}

// DefaultOptions デフォルトの設定を返します
func DefaultOptions() Options {
	return Options{
		Complexity:     6,
		Scale:          10,
		Density:        6,
		Spikiness:      2,
		CornerSprinkle: 4,
		Colors: [][]int{
			{255, 10, 125},
			{255, 50, 10},
			{15, 50, 255},
			{140, 255, 10},
		},
		Salt:   DefaultSalt,
		Format: FormatPNG,
	}
}

// normalized 動作可能な範囲に丸めた設定のコピーを返します
func (o Options) normalized() Options {
	o.Complexity = max(o.Complexity, 2)
	o.Scale = max(o.Scale, 1)
	o.Density = min(max(o.Density, 2), 10)
	o.Spikiness = max(o.Spikiness, 1)
	o.CornerSprinkle = max(o.CornerSprinkle, 0)
	if o.Format == "" {
		o.Format = FormatPNG
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	return o
}

// validate 入力と設定を検証します。丸めた後の設定に対して呼び出してください
func (o Options) validate(input string) error {
	if err := vd.Validate(input, validator.InputRuleRequired...); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := vd.Validate(slowhash.FullSalt(o.Salt), validator.BcryptSaltRule...); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSalt, err)
	}
	if err := vd.Validate(o.Colors, validator.ColorsRuleRequired...); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidColors, err)
	}
	if err := vd.Validate(string(o.Format), validator.FormatRule...); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	return nil
}

// IsInvalidOptions errが入力または設定の検証エラーかどうか
func IsInvalidOptions(err error) bool {
	return errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrInvalidSalt) ||
		errors.Is(err, ErrInvalidColors) ||
		errors.Is(err, ErrInvalidFormat)
}
