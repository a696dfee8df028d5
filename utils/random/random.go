package random

import (
	"math/rand/v2"
	"unsafe"
)

const (
	rs6Letters       = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ1234567890"
	rs6LetterIdxBits = 6
	rs6LetterIdxMask = 1<<rs6LetterIdxBits - 1
	rs6LetterIdxMax  = 63 / rs6LetterIdxBits

	upperLetters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// AlphaNumeric 指定した文字数のランダム英数字文字列を生成します
// この関数はmath/randが生成する擬似乱数を使用します
func AlphaNumeric(n int) string {
	b := make([]byte, n)
	cache, remain := rand.Int64(), rs6LetterIdxMax
	for i := n - 1; i >= 0; {
		if remain == 0 {
			cache, remain = rand.Int64(), rs6LetterIdxMax
		}
		idx := int(cache & rs6LetterIdxMask)
		if idx < len(rs6Letters) {
			b[i] = rs6Letters[idx]
			i--
		}
		cache >>= rs6LetterIdxBits
		remain--
	}
	return *(*string)(unsafe.Pointer(&b))
}

// Upper 指定した文字数のランダム英大文字列を生成します
func Upper(n int) string {
	return UpperWith(rand.IntN, n)
}

// UpperWith intnを乱数源として英大文字列を生成します
//
// 再現可能なサンプルを作るときはシード付きの乱数源を渡してください。
func UpperWith(intn func(int) int, n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = upperLetters[intn(len(upperLetters))]
	}
	return string(b)
}
