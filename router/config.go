package router

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/traPtitech/caleidenticon/service/identicon"
	"github.com/traPtitech/caleidenticon/utils/storage"
)

// Config APIサーバー設定
type Config struct {
	// 開発モードかどうか
	Development bool
	// Version サーバーバージョン
	Version string
	// Revision サーバーリビジョン
	Revision string
	// AccessLogging アクセスログを記録するかどうか
	AccessLogging bool
	// Gzipped レスポンスをGzip圧縮するかどうか
	Gzipped bool
	// MaxAge 画像レスポンスのCache-Control max-age(秒)
	MaxAge int
	// CacheSize メモリにキャッシュする生成済み画像の数
	CacheSize int
	// CacheTTL 生成済み画像をメモリにキャッシュする時間
	CacheTTL time.Duration
	// MaxInputLength 入力文字列の最大文字数
	MaxInputLength int
	// Identicon 生成設定
	Identicon identicon.Options
	// Storage 生成済み画像の永続化先。nilの場合は永続化しません
	Storage storage.FileStorage
	// Registry メトリクスの登録先。nilの場合はデフォルトのレジストリ
	Registry *prometheus.Registry
	// RootLogger ルートロガー
	RootLogger *zap.Logger
}

func (c *Config) registerer() prometheus.Registerer {
	if c.Registry == nil {
		return prometheus.DefaultRegisterer
	}
	return c.Registry
}

func (c *Config) gatherer() prometheus.Gatherer {
	if c.Registry == nil {
		return prometheus.DefaultGatherer
	}
	return c.Registry
}
