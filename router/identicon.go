package router

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"time"

	vd "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/labstack/echo/v4"
	"github.com/motoki317/sc"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"

	"github.com/traPtitech/caleidenticon/router/consts"
	"github.com/traPtitech/caleidenticon/router/extension"
	"github.com/traPtitech/caleidenticon/router/extension/herror"
	"github.com/traPtitech/caleidenticon/service/identicon"
	"github.com/traPtitech/caleidenticon/utils/storage"
	"github.com/traPtitech/caleidenticon/utils/validator"
)

var generatedCounter = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "caleidenticon",
	Name:      "identicons_generated_total",
}, []string{"format", "source"})

type cacheKey struct {
	input  string
	format identicon.Format
}

type missFlagKey struct{}

type identiconHandler struct {
	opts           identicon.Options
	fs             storage.FileStorage
	keyPrefix      string
	maxAge         int
	maxInputLength int
	logger         *zap.Logger
	cache          *sc.Cache[cacheKey, []byte]
}

func newIdenticonHandler(config *Config, logger *zap.Logger) (*identiconHandler, error) {
	opts := config.Identicon
	opts.Logger = logger
	if opts.Format == "" {
		opts.Format = identicon.FormatPNG
	}

	// 設定が変わったら永続化済みの画像を使わない
	prefix, err := identicon.KeyPrefix(opts)
	if err != nil {
		return nil, err
	}

	h := &identiconHandler{
		opts:           opts,
		fs:             config.Storage,
		keyPrefix:      prefix,
		maxAge:         max(config.MaxAge, 0),
		maxInputLength: max(config.MaxInputLength, 1),
		logger:         logger,
	}
	ttl := config.CacheTTL
	if ttl <= 0 {
		ttl = time.Hour
	}
	h.cache, err = sc.New(h.load, ttl, ttl, sc.WithLRUBackend(max(config.CacheSize, 1)))
	if err != nil {
		return nil, err
	}
	return h, nil
}

func (h *identiconHandler) storageKey(key cacheKey) string {
	return identicon.StorageKey(h.keyPrefix, key.input, key.format)
}

// load キャッシュに無い画像を永続化先から読み込むか、生成して永続化します
func (h *identiconHandler) load(ctx context.Context, key cacheKey) ([]byte, error) {
	if miss, ok := ctx.Value(missFlagKey{}).(*bool); ok {
		*miss = true
	}

	name := h.storageKey(key)
	if h.fs != nil {
		b, err := h.open(name)
		if err == nil {
			generatedCounter.WithLabelValues(string(key.format), "storage").Inc()
			return b, nil
		}
		if !errors.Is(err, storage.ErrFileNotFound) {
			h.logger.Warn("failed to open stored identicon", zap.String("key", name), zap.Error(err))
		}
	}

	opts := h.opts
	opts.Format = key.format
	b, err := identicon.CreateBlob(key.input, opts)
	if err != nil {
		return nil, err
	}
	generatedCounter.WithLabelValues(string(key.format), "generated").Inc()

	if h.fs != nil {
		if err := h.fs.SaveByKey(bytes.NewReader(b), name, key.format.ContentType()); err != nil {
			h.logger.Warn("failed to save identicon", zap.String("key", name), zap.Error(err))
		}
	}
	return b, nil
}

func (h *identiconHandler) open(name string) ([]byte, error) {
	r, err := h.fs.OpenFileByKey(name)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return io.ReadAll(r)
}

// GetIdenticon GET /identicons/:input
func (h *identiconHandler) GetIdenticon(c echo.Context) error {
	input, err := url.PathUnescape(c.Param(consts.ParamInput))
	if err != nil {
		return herror.BadRequest("invalid input")
	}
	if err := vd.Validate(input, validator.InputRule(h.maxInputLength)...); err != nil {
		return herror.BadRequest(err)
	}

	format := identicon.Format(c.QueryParam(consts.QueryFormat))
	if format == "" {
		format = h.opts.Format
	}
	if err := vd.Validate(string(format), validator.FormatRule...); err != nil {
		return herror.BadRequest(err)
	}

	// 生成を共有しただけのリクエストはHITとして扱う
	miss := false
	ctx := context.WithValue(c.Request().Context(), missFlagKey{}, &miss)
	b, err := h.cache.Get(ctx, cacheKey{input: input, format: format})
	if err != nil {
		if identicon.IsInvalidOptions(err) {
			return herror.BadRequest(err)
		}
		return herror.InternalServerError(err)
	}

	if miss {
		c.Response().Header().Set(consts.HeaderCacheFile, consts.CacheMiss)
	} else {
		c.Response().Header().Set(consts.HeaderCacheFile, consts.CacheHit)
	}
	c.Response().Header().Set(consts.HeaderCacheControl, fmt.Sprintf("public, max-age=%d", h.maxAge))
	return extension.ServeWithETag(c, format.ContentType(), b)
}
