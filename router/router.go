package router

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/traPtitech/caleidenticon/router/consts"
	"github.com/traPtitech/caleidenticon/router/extension"
	"github.com/traPtitech/caleidenticon/router/middlewares"
)

// Setup APIサーバーのルーティングを構築します
func Setup(config *Config) (*echo.Echo, error) {
	logger := config.RootLogger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("router")

	h, err := newIdenticonHandler(config, logger.Named("identicon"))
	if err != nil {
		return nil, err
	}

	e := newEcho(logger, config)

	api := e.Group(consts.PathAPI)
	api.GET(consts.PathMetrics, echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: config.gatherer()}))
	api.GET(consts.PathPing, func(c echo.Context) error { return c.String(http.StatusOK, http.StatusText(http.StatusOK)) })
	api.GET(consts.PathVersion, func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"version": config.Version, "revision": config.Revision})
	})
	api.GET(consts.PathIdenticons+"/:"+consts.ParamInput, h.GetIdenticon)

	return e, nil
}

func newEcho(logger *zap.Logger, config *Config) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = extension.ErrorHandler(logger)

	// ミドルウェア設定
	e.Use(middlewares.ServerVersion(config.Version, config.Revision))
	e.Use(middlewares.RequestID())
	if config.AccessLogging {
		e.Use(middlewares.AccessLogging(logger.Named("access_log"), config.Development))
	}
	e.Use(middlewares.Recovery(logger))
	if config.Gzipped {
		e.Use(middlewares.Gzip())
	}
	e.Use(middlewares.RequestCounter())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		ExposeHeaders: []string{consts.HeaderVersion, consts.HeaderRevision, consts.HeaderCacheFile, consts.HeaderETag, echo.HeaderXRequestID},
		MaxAge:        3600,
	}))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "caleidenticon",
		Registerer: config.registerer(),
	}))

	return e
}
