package reservoir

import (
	"math/bits"
)

// Reservoir 多倍長の符号なし整数を破壊的に読み出すビットカーソル
//
// 値はビッグエンディアンのバイト列として保持し、offsetは既に右シフトで
// 捨てられた下位ビット数を表します。並行アクセスは禁止です。
type Reservoir struct {
	buf    []byte
	offset int
}

// New bを最上位バイトから順に畳み込んだ値 (acc = acc<<8 + b) を持つReservoirを生成します
func New(b []byte) *Reservoir {
	return &Reservoir{buf: b}
}

// Len 元の値が持つバイト列のビット数
func (r *Reservoir) Len() int {
	return len(r.buf) * 8
}

// BitLen 現在の値の有効ビット数
func (r *Reservoir) BitLen() int {
	for i, b := range r.buf {
		if b != 0 {
			n := (len(r.buf)-i-1)*8 + bits.Len8(b) - r.offset
			return max(n, 0)
		}
	}
	return 0
}

// Remaining 読み出されていないビット数
func (r *Reservoir) Remaining() int {
	return max(r.Len()-r.offset, 0)
}

// Shift 値をnビット右シフトします
func (r *Reservoir) Shift(n int) {
	r.offset += n
}

// Peek 値を変更せずに (value >> n) & mask を返します
func (r *Reservoir) Peek(n int, mask uint64) uint64 {
	var v uint64
	pos := r.offset + n
	for i := range bits.Len64(mask) {
		v |= uint64(r.bit(pos+i)) << i
	}
	return v & mask
}

// Draw 値をwidthビット右シフトした後、続くwidthビットを返します
//
// シフト直後のwidthビットは読まれません。幅の異なるDrawが続くと
// 読み出す窓が重なります。
func (r *Reservoir) Draw(width int) uint64 {
	r.Shift(width)
	return r.Peek(width, 1<<width-1)
}

func (r *Reservoir) bit(k int) byte {
	if k < 0 || k >= r.Len() {
		return 0
	}
	return (r.buf[len(r.buf)-1-k/8] >> (k % 8)) & 1
}
