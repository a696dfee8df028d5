package logging

import (
	"runtime"
	"strconv"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	sourceLocationKey = "logging.googleapis.com/sourceLocation"
	contextKey        = "context"
)

// location ログの出力元
type location struct {
	File     string
	Line     string
	Function string
}

func newLocation(pc uintptr, file string, line int, ok bool) *location {
	if !ok {
		return nil
	}
	l := &location{
		File: file,
		Line: strconv.Itoa(line),
	}
	if fn := runtime.FuncForPC(pc); fn != nil {
		l.Function = fn.Name()
	}
	return l
}

// MarshalLogObject implements zapcore.ObjectMarshaller interface.
func (l location) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("file", l.File)
	enc.AddString("line", l.Line)
	enc.AddString("function", l.Function)
	return nil
}

// SourceLocation ログの出力元を表すField
func SourceLocation(pc uintptr, file string, line int, ok bool) zap.Field {
	l := newLocation(pc, file, line, ok)
	if l == nil {
		return zap.Skip()
	}
	return zap.Object(sourceLocationKey, l)
}

// reportContext エラー報告用のcontext。キー名が出力元とは異なります
type reportContext struct {
	ReportLocation *location
}

// MarshalLogObject implements zapcore.ObjectMarshaller interface.
func (c reportContext) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	return enc.AddObject("reportLocation", zapcore.ObjectMarshalerFunc(func(enc zapcore.ObjectEncoder) error {
		enc.AddString("filePath", c.ReportLocation.File)
		enc.AddString("lineNumber", c.ReportLocation.Line)
		enc.AddString("functionName", c.ReportLocation.Function)
		return nil
	}))
}

// ErrorReport エラー報告用のcontext Field
func ErrorReport(pc uintptr, file string, line int, ok bool) zap.Field {
	l := newLocation(pc, file, line, ok)
	if l == nil {
		return zap.Skip()
	}
	return zap.Object(contextKey, &reportContext{ReportLocation: l})
}
