package cmd

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/traPtitech/caleidenticon/router"
	"github.com/traPtitech/caleidenticon/service/identicon"
	"github.com/traPtitech/caleidenticon/utils/storage"
)

// Config 設定
type Config struct {
	// DevMode 開発モードかどうか (default: false)
	DevMode bool `mapstructure:"dev" yaml:"dev"`
	// Debug デバッグログを出力するかどうか (default: false)
	Debug bool `mapstructure:"debug" yaml:"debug"`

	// Port サーバーポート番号 (default: 3000)
	Port int `mapstructure:"port" yaml:"port"`
	// Gzip レスポンスのGZIP圧縮を有効にするかどうか (default: true)
	Gzip bool `mapstructure:"gzip" yaml:"gzip"`
	// ShutdownTimeout シャットダウンのタイムアウト秒数 (default: 10)
	ShutdownTimeout int `mapstructure:"shutdownTimeout" yaml:"shutdownTimeout"`

	// AccessLog HTTPアクセスログ設定
	AccessLog struct {
		// Enabled 有効かどうか (default: true)
		Enabled bool `mapstructure:"enabled" yaml:"enabled"`
	} `mapstructure:"accessLog" yaml:"accessLog"`

	// Identicon 生成設定
	Identicon identicon.Options `mapstructure:"identicon" yaml:"identicon"`

	// MaxInputLength APIで受け付ける入力の最大文字数 (default: 256)
	MaxInputLength int `mapstructure:"maxInputLength" yaml:"maxInputLength"`

	// Cache 生成済み画像のキャッシュ設定
	Cache struct {
		// Size メモリに保持する画像数 (default: 1024)
		Size int `mapstructure:"size" yaml:"size"`
		// TTL メモリに保持する秒数 (default: 3600)
		TTL int `mapstructure:"ttl" yaml:"ttl"`
		// MaxAge Cache-Controlのmax-age秒数 (default: 86400)
		MaxAge int `mapstructure:"maxAge" yaml:"maxAge"`
	} `mapstructure:"cache" yaml:"cache"`

	// Storage 生成済み画像の保存先設定
	Storage struct {
		// Type ストレージタイプ (none, local, memory, s3) (default: none)
		Type string `mapstructure:"type" yaml:"type"`
		// Local ローカルストレージ設定
		Local struct {
			// Dir 保存先ディレクトリ (default: ./storage)
			Dir string `mapstructure:"dir" yaml:"dir"`
		} `mapstructure:"local" yaml:"local"`
		// S3 S3互換ストレージ設定
		S3 struct {
			// Bucket バケット名
			Bucket string `mapstructure:"bucket" yaml:"bucket"`
			// Region リージョン
			Region string `mapstructure:"region" yaml:"region"`
			// Endpoint エンドポイント
			Endpoint string `mapstructure:"endpoint" yaml:"endpoint"`
			// AccessKey アクセスキー
			AccessKey string `mapstructure:"accessKey" yaml:"accessKey"`
			// SecretKey シークレットキー
			SecretKey string `mapstructure:"secretKey" yaml:"secretKey"`
			// ForcePathStyle パス形式を強制するか
			ForcePathStyle bool `mapstructure:"forcePathStyle" yaml:"forcePathStyle"`
		} `mapstructure:"s3" yaml:"s3"`
	} `mapstructure:"storage" yaml:"storage"`

	// Sample sampleコマンド設定
	Sample struct {
		// Iterations 生成する画像数 (default: 20)
		Iterations int `mapstructure:"iterations" yaml:"iterations"`
		// Dir 出力先の親ディレクトリ (default: .)
		Dir string `mapstructure:"dir" yaml:"dir"`
		// Concurrency 並列数 (default: CPU数)
		Concurrency int `mapstructure:"concurrency" yaml:"concurrency"`
	} `mapstructure:"sample" yaml:"sample"`
}

func init() {
	viper.SetDefault("dev", false)
	viper.SetDefault("debug", false)
	viper.SetDefault("port", 3000)
	viper.SetDefault("gzip", true)
	viper.SetDefault("shutdownTimeout", 10)
	viper.SetDefault("accessLog.enabled", true)

	d := identicon.DefaultOptions()
	viper.SetDefault("identicon.complexity", d.Complexity)
	viper.SetDefault("identicon.scale", d.Scale)
	viper.SetDefault("identicon.density", d.Density)
	viper.SetDefault("identicon.spikiness", d.Spikiness)
	viper.SetDefault("identicon.cornerSprinkle", d.CornerSprinkle)
	viper.SetDefault("identicon.colors", d.Colors)
	viper.SetDefault("identicon.salt", d.Salt)
	viper.SetDefault("identicon.format", string(d.Format))

	viper.SetDefault("maxInputLength", 256)
	viper.SetDefault("cache.size", 1024)
	viper.SetDefault("cache.ttl", 3600)
	viper.SetDefault("cache.maxAge", 86400)

	viper.SetDefault("storage.type", "none")
	viper.SetDefault("storage.local.dir", "./storage")
	viper.SetDefault("storage.s3.bucket", "")
	viper.SetDefault("storage.s3.region", "")
	viper.SetDefault("storage.s3.endpoint", "")
	viper.SetDefault("storage.s3.accessKey", "")
	viper.SetDefault("storage.s3.secretKey", "")
	viper.SetDefault("storage.s3.forcePathStyle", false)

	viper.SetDefault("sample.iterations", 20)
	viper.SetDefault("sample.dir", ".")
	viper.SetDefault("sample.concurrency", runtime.NumCPU())
}

// identiconOptions loggerを設定した生成設定を返します
func (c Config) identiconOptions(logger *zap.Logger) identicon.Options {
	o := c.Identicon
	o.Logger = logger
	return o
}

func (c Config) getFileStorage() (storage.FileStorage, error) {
	switch c.Storage.Type {
	case "", "none":
		return nil, nil
	case "memory":
		return storage.NewInMemoryFileStorage(), nil
	case "local":
		if err := os.MkdirAll(c.Storage.Local.Dir, 0o755); err != nil {
			return nil, err
		}
		return storage.NewLocalFileStorage(c.Storage.Local.Dir), nil
	case "s3":
		s3 := c.Storage.S3
		return storage.NewS3FileStorage(s3.Bucket, s3.Region, s3.Endpoint, s3.AccessKey, s3.SecretKey, s3.ForcePathStyle)
	default:
		return nil, fmt.Errorf("unknown storage type: %s", c.Storage.Type)
	}
}

func (c Config) getRouterConfig(fs storage.FileStorage, logger *zap.Logger) *router.Config {
	return &router.Config{
		Development:    c.DevMode,
		Version:        Version,
		Revision:       Revision,
		AccessLogging:  c.AccessLog.Enabled,
		Gzipped:        c.Gzip,
		MaxAge:         c.Cache.MaxAge,
		CacheSize:      c.Cache.Size,
		CacheTTL:       time.Duration(c.Cache.TTL) * time.Second,
		MaxInputLength: c.MaxInputLength,
		Identicon:      c.identiconOptions(logger.Named("identicon")),
		Storage:        fs,
		RootLogger:     logger,
	}
}
