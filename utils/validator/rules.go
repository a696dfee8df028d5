package validator

import (
	"regexp"

	vd "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/traPtitech/caleidenticon/utils/slowhash"
)

// InputRuleRequired identicon入力文字列バリデーションルール with Required
var InputRuleRequired = []vd.Rule{
	vd.Required.Error("input cannot be empty"),
}

// InputRule 長さ上限付きのidenticon入力文字列バリデーションルール
func InputRule(maxLength int) []vd.Rule {
	rules := append([]vd.Rule{}, InputRuleRequired...)
	return append(rules, vd.RuneLength(1, maxLength))
}

// RequestIDRuleRequired クライアントが指定するリクエストIDのバリデーションルール with Required
var RequestIDRuleRequired = []vd.Rule{
	vd.Required,
	vd.Length(1, 64),
	vd.Match(regexp.MustCompile(`^[0-9A-Za-z._-]+$`)),
}

// BcryptSaltRule bcryptソルト文字列 ("$2a$10$" + 22文字) バリデーションルール
var BcryptSaltRule = []vd.Rule{
	vd.Required,
	vd.Match(slowhash.SaltPattern()).Error("salt must be a string of 21 chars of [./A-Za-z0-9]"),
}

// ColorChannelRule 色チャンネル値バリデーションルール
var ColorChannelRule = []vd.Rule{
	vd.Min(0),
	vd.Max(255),
}

// ColorRule RGB色バリデーションルール
var ColorRule = []vd.Rule{
	vd.Required,
	vd.Length(3, 3).Error("a color must have exactly 3 channels"),
	vd.Each(ColorChannelRule...),
}

// ColorsRuleRequired 基本色セットバリデーションルール with Required
var ColorsRuleRequired = []vd.Rule{
	vd.Required,
	vd.Length(4, 4).Error("exactly 4 colors are required"),
	vd.Each(ColorRule...),
}

// FormatRule 出力画像形式バリデーションルール
var FormatRule = []vd.Rule{
	vd.In("png", "gif", "tiff").Error("format must be one of png, gif, tiff"),
}
