package middlewares

import (
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/traPtitech/caleidenticon/logging"
	"github.com/traPtitech/caleidenticon/router/consts"
	"github.com/traPtitech/caleidenticon/router/extension"
)

// AccessLogging アクセスログミドルウェア
func AccessLogging(logger *zap.Logger, dev bool) echo.MiddlewareFunc {
	if dev {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error {
				start := time.Now()
				if err := next(c); err != nil {
					c.Error(err)
				}
				stop := time.Now()

				req := c.Request()
				res := c.Response()
				logger.Sugar().Infof("%3d | %s | %s %s %d", res.Status, stop.Sub(start), req.Method, req.URL, res.Size)
				return nil
			}
		}
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Path() == "/api/ping" {
				return next(c)
			}

			start := time.Now()
			if err := next(c); err != nil {
				c.Error(err)
			}
			stop := time.Now()

			res := c.Response()
			p := logging.NewHTTPPayload(c.Request(), c.RealIP(), res.Status, res.Size, stop.Sub(start))
			if v := res.Header().Get(consts.HeaderCacheFile); v != "" {
				p.CacheLookup = true
				p.CacheHit = v == consts.CacheHit
			}
			p.CacheValidatedWithOriginServer = extension.IsNotModified(c)
			logger.Info("", zap.String("requestId", res.Header().Get(echo.HeaderXRequestID)), logging.HTTPRequest(p))
			return nil
		}
	}
}
