package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// CreateNewLogger ロガーを生成します
//
// 本番形式ではログにサービス情報と出力元の位置を付与し、Errorレベル以上には
// エラー報告用のcontextも付与します。
func CreateNewLogger(cfg Config, serviceName, serviceVersion string) (*zap.Logger, error) {
	var opts []zap.Option
	if !cfg.Dev {
		opts = append(opts, zap.WrapCore(func(c zapcore.Core) zapcore.Core {
			return Wrap(c, serviceName, serviceVersion)
		}))
	}
	return cfg.zapConfig().Build(opts...)
}
