package slowhash

import (
	"encoding/base64"
	"errors"
	"fmt"
	"regexp"
	"strconv"

	"golang.org/x/crypto/blowfish"
)

const (
	alphabet = "./ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	// SaltPrefix caleidenticonが使うbcryptのアルゴリズム識別子とコスト
	SaltPrefix = "$2a$10$"
	// SaltTerminator 設定されたソルトの後ろに付ける文字
	SaltTerminator = "."
	// EncodedSaltLen エンコード済みソルトの文字数
	EncodedSaltLen = 22
	// EncodedHashLen エンコード済みハッシュ本体の文字数
	EncodedHashLen = 31

	maxCryptedHashSize = 23
)

var (
	// ErrInvalidSalt bcryptのソルトとして不正です
	ErrInvalidSalt = errors.New("invalid bcrypt salt")

	bcEncoding  = base64.NewEncoding(alphabet).WithPadding(base64.NoPadding)
	saltPattern = regexp.MustCompile(`^\$([0-9a-z]{2})\$([0-9]{2})\$([./A-Za-z0-9]{22})$`)
	// "OrpheanBeholderScryDoubt"
	magicCipherData = []byte{
		0x4f, 0x72, 0x70, 0x68,
		0x65, 0x61, 0x6e, 0x42,
		0x65, 0x68, 0x6f, 0x6c,
		0x64, 0x65, 0x72, 0x53,
		0x63, 0x72, 0x79, 0x44,
		0x6f, 0x75, 0x62, 0x74,
	}
)

// SaltPattern bcryptソルト文字列 ("$2a$10$" + 22文字) の正規表現
func SaltPattern() *regexp.Regexp {
	return saltPattern
}

// FullSalt 設定されたソルトからbcryptソルト文字列を組み立てます
func FullSalt(salt string) string {
	return SaltPrefix + salt + SaltTerminator
}

// Hash fullSaltを用いてsecretのbcryptハッシュ文字列 ($2a$10$ + ソルト22文字 + ハッシュ31文字) を計算します
//
// golang.org/x/crypto/bcrypt は呼び出し側からソルトを指定できないため、
// 同じ鍵スケジュールをblowfishで直接組み立てています。
func Hash(secret []byte, fullSalt string) (string, error) {
	m := saltPattern.FindStringSubmatch(fullSalt)
	if m == nil {
		return "", ErrInvalidSalt
	}
	cost, err := strconv.Atoi(m[2])
	if err != nil || cost < 4 || cost > 31 {
		return "", fmt.Errorf("%w: cost %s", ErrInvalidSalt, m[2])
	}
	csalt, err := bcEncoding.DecodeString(m[3])
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidSalt, err)
	}

	c, err := expensiveBlowfishSetup(secret, uint32(cost), csalt)
	if err != nil {
		return "", err
	}

	cipherData := make([]byte, len(magicCipherData))
	copy(cipherData, magicCipherData)
	for i := 0; i < len(cipherData); i += 8 {
		for range 64 {
			c.Encrypt(cipherData[i:i+8], cipherData[i:i+8])
		}
	}

	// ソルトは16バイトから再エンコードし、末尾の余剰ビットを正規化する
	return fmt.Sprintf("$%s$%02d$%s%s", m[1], cost, bcEncoding.EncodeToString(csalt), bcEncoding.EncodeToString(cipherData[:maxCryptedHashSize])), nil
}

func expensiveBlowfishSetup(key []byte, cost uint32, salt []byte) (*blowfish.Cipher, error) {
	// C実装と同様に終端のNULまで鍵として使う
	ckey := append(key[:len(key):len(key)], 0)

	c, err := blowfish.NewSaltedCipher(ckey, salt)
	if err != nil {
		return nil, err
	}

	rounds := uint64(1) << cost
	for range rounds {
		blowfish.ExpandKey(ckey, c)
		blowfish.ExpandKey(salt, c)
	}
	return c, nil
}
