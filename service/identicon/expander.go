package identicon

import (
	"bytes"
	"fmt"

	"github.com/traPtitech/caleidenticon/utils/reservoir"
	"github.com/traPtitech/caleidenticon/utils/slowhash"
)

// expandHash inputのbcryptハッシュからビットリザーバーを生成します
//
// 先頭のアルゴリズム識別子とソルトは全入力で共通なので取り除き、残った
// ハッシュ本体をcomplexity回繰り返してビット量を増やします。
func expandHash(input, salt string, complexity int) (*reservoir.Reservoir, error) {
	h, err := slowhash.Hash([]byte(input), slowhash.FullSalt(salt))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSalt, err)
	}
	payload := h[len(slowhash.SaltPrefix)+slowhash.EncodedSaltLen:]
	return reservoir.New(bytes.Repeat([]byte(payload), complexity)), nil
}
