package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type core struct {
	zapcore.Core
	service serviceContext
}

// Wrap cに構造化ログ用のフィールドを付与するCoreを被せます
func Wrap(c zapcore.Core, serviceName, serviceVersion string) zapcore.Core {
	return &core{
		Core:    c,
		service: serviceContext{Name: serviceName, Version: serviceVersion},
	}
}

// With adds structured context to the Core.
func (c *core) With(fields []zap.Field) zapcore.Core {
	return &core{
		Core:    c.Core.With(fields),
		service: c.service,
	}
}

// Check determines whether the supplied Entry should be logged.
func (c *core) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}
	return ce
}

// Write serializes the Entry and any Fields supplied at the log site and
// writes them to their destination.
func (c *core) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	if !hasField(fields, serviceContextKey) {
		fields = append(fields, zap.Object(serviceContextKey, c.service))
	}
	if ent.Caller.Defined {
		if !hasField(fields, sourceLocationKey) {
			fields = append(fields, SourceLocation(ent.Caller.PC, ent.Caller.File, ent.Caller.Line, true))
		}
		if zapcore.ErrorLevel.Enabled(ent.Level) && !hasField(fields, contextKey) {
			fields = append(fields, ErrorReport(ent.Caller.PC, ent.Caller.File, ent.Caller.Line, true))
		}
	}
	return c.Core.Write(ent, fields)
}

func hasField(fields []zapcore.Field, key string) bool {
	for _, f := range fields {
		if f.Key == key {
			return true
		}
	}
	return false
}

const serviceContextKey = "serviceContext"

type serviceContext struct {
	Name    string
	Version string
}

// MarshalLogObject implements zapcore.ObjectMarshaller interface.
func (sc serviceContext) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("service", sc.Name)
	enc.AddString("version", sc.Version)
	return nil
}
