package identicon

import (
	"encoding/hex"

	"github.com/zeebo/blake3"
	"gopkg.in/yaml.v3"
)

// KeyPrefix 画像の内容に影響する設定のダイジェスト
//
// 正規化後の設定から計算するので、同じ画像になる設定は同じ値になります。
// 出力形式は拡張子で区別するため含めません。
func KeyPrefix(opts Options) (string, error) {
	o := opts.normalized()
	o.Format = ""
	b, err := yaml.Marshal(o)
	if err != nil {
		return "", err
	}
	sum := blake3.Sum256(b)
	return hex.EncodeToString(sum[:8]), nil
}

// StorageKey inputのformat形式の画像を保存するキー
//
// 入力はハッシュ化するので、キーをパスとして扱うストレージでも保存先の外を指しません。
func StorageKey(prefix, input string, format Format) string {
	sum := blake3.Sum256([]byte(input))
	return prefix + "-" + hex.EncodeToString(sum[:16]) + format.Extension()
}
