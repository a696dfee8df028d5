package logging

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
)

// sliceArrayEncoder 追加された値を記録するだけのPrimitiveArrayEncoder
type sliceArrayEncoder struct {
	elems []any
}

func (s *sliceArrayEncoder) AppendBool(v bool)              { s.elems = append(s.elems, v) }
func (s *sliceArrayEncoder) AppendByteString(v []byte)      { s.elems = append(s.elems, string(v)) }
func (s *sliceArrayEncoder) AppendComplex128(v complex128)  { s.elems = append(s.elems, v) }
func (s *sliceArrayEncoder) AppendComplex64(v complex64)    { s.elems = append(s.elems, v) }
func (s *sliceArrayEncoder) AppendFloat64(v float64)        { s.elems = append(s.elems, v) }
func (s *sliceArrayEncoder) AppendFloat32(v float32)        { s.elems = append(s.elems, v) }
func (s *sliceArrayEncoder) AppendInt(v int)                { s.elems = append(s.elems, v) }
func (s *sliceArrayEncoder) AppendInt64(v int64)            { s.elems = append(s.elems, v) }
func (s *sliceArrayEncoder) AppendInt32(v int32)            { s.elems = append(s.elems, v) }
func (s *sliceArrayEncoder) AppendInt16(v int16)            { s.elems = append(s.elems, v) }
func (s *sliceArrayEncoder) AppendInt8(v int8)              { s.elems = append(s.elems, v) }
func (s *sliceArrayEncoder) AppendString(v string)          { s.elems = append(s.elems, v) }
func (s *sliceArrayEncoder) AppendUint(v uint)              { s.elems = append(s.elems, v) }
func (s *sliceArrayEncoder) AppendUint64(v uint64)          { s.elems = append(s.elems, v) }
func (s *sliceArrayEncoder) AppendUint32(v uint32)          { s.elems = append(s.elems, v) }
func (s *sliceArrayEncoder) AppendUint16(v uint16)          { s.elems = append(s.elems, v) }
func (s *sliceArrayEncoder) AppendUint8(v uint8)            { s.elems = append(s.elems, v) }
func (s *sliceArrayEncoder) AppendUintptr(v uintptr)        { s.elems = append(s.elems, v) }

func TestEncodeLevel(t *testing.T) {
	t.Parallel()

	var tests = []struct {
		lvl  zapcore.Level
		want string
	}{
		{zapcore.DebugLevel, "DEBUG"},
		{zapcore.InfoLevel, "INFO"},
		{zapcore.WarnLevel, "WARNING"},
		{zapcore.ErrorLevel, "ERROR"},
		{zapcore.DPanicLevel, "CRITICAL"},
		{zapcore.PanicLevel, "ALERT"},
		{zapcore.FatalLevel, "EMERGENCY"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			enc := &sliceArrayEncoder{}
			encodeLevel(tt.lvl, enc)

			if assert.Len(t, enc.elems, 1) {
				assert.Equal(t, tt.want, enc.elems[0].(string))
			}
		})
	}
}

func TestRFC3339NanoTimeEncoder(t *testing.T) {
	t.Parallel()

	ts := time.Date(2020, 12, 3, 4, 56, 78, 910111, time.UTC)

	enc := &sliceArrayEncoder{}
	rfc3339NanoTimeEncoder(ts, enc)

	if assert.Len(t, enc.elems, 1) {
		assert.Equal(t, ts.Format(time.RFC3339Nano), enc.elems[0].(string))
	}
}

func TestConfig_zapConfig(t *testing.T) {
	t.Parallel()

	zc := Config{}.zapConfig()
	assert.Equal(t, "json", zc.Encoding)
	assert.Equal(t, zapcore.InfoLevel, zc.Level.Level())
	assert.Equal(t, []string{"stderr"}, zc.OutputPaths)

	zc = Config{Debug: true}.zapConfig()
	assert.Equal(t, zapcore.DebugLevel, zc.Level.Level())

	zc = Config{Dev: true}.zapConfig()
	assert.Equal(t, "console", zc.Encoding)
	assert.Equal(t, zapcore.InfoLevel, zc.Level.Level())
}
