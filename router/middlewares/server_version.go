package middlewares

import (
	"github.com/labstack/echo/v4"

	"github.com/traPtitech/caleidenticon/router/consts"
)

// ServerVersion バージョンとリビジョンのレスポンスヘッダーを追加するミドルウェア
//
// 空の値のヘッダーは付けません。
func ServerVersion(version, revision string) echo.MiddlewareFunc {
	headers := make(map[string]string, 2)
	if len(version) > 0 {
		headers[consts.HeaderVersion] = version
	}
	if len(revision) > 0 {
		headers[consts.HeaderRevision] = revision
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			h := c.Response().Header()
			for k, v := range headers {
				h.Set(k, v)
			}
			return next(c)
		}
	}
}
