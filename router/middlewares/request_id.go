package middlewares

import (
	"github.com/labstack/echo/v4"

	"github.com/traPtitech/caleidenticon/router/extension"
)

// RequestID リクエストIDを決めてリクエストとレスポンスのヘッダーに設定するミドルウェア
func RequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rid := extension.GetRequestID(c)
			c.Request().Header.Set(echo.HeaderXRequestID, rid)
			c.Response().Header().Set(echo.HeaderXRequestID, rid)
			return next(c)
		}
	}
}
