package extension

import (
	"errors"
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/traPtitech/caleidenticon/router/extension/herror"
)

// ErrorHandler カスタムエラーハンドラ
func ErrorHandler(logger *zap.Logger) echo.HTTPErrorHandler {
	return func(e error, c echo.Context) {
		var (
			code int
			body interface{}
		)

		var (
			httpErr     *echo.HTTPError
			internalErr *herror.InternalError
		)
		switch {
		case e == nil:
			return
		case errors.As(e, &httpErr):
			if herr, ok := httpErr.Internal.(*echo.HTTPError); ok {
				httpErr = herr
			}
			if m, ok := httpErr.Message.(string); ok {
				body = echo.Map{"message": m}
			} else if err, ok := httpErr.Message.(error); ok {
				body = echo.Map{"message": err.Error()}
			}
			code = httpErr.Code
		case errors.As(e, &internalErr):
			logger.Error(internalErr.Err.Error(), append(internalErr.Fields, zap.String("requestId", GetRequestID(c)), zap.Bool("panic", internalErr.Panic))...)
			code = http.StatusInternalServerError
			body = echo.Map{"message": http.StatusText(http.StatusInternalServerError)}
		default:
			logger.Error(e.Error(), zap.String("requestId", GetRequestID(c)))
			code = http.StatusInternalServerError
			body = echo.Map{"message": http.StatusText(http.StatusInternalServerError)}
		}

		if !c.Response().Committed {
			if c.Request().Method == http.MethodHead || body == nil {
				e = c.NoContent(code)
			} else {
				e = json(c, code, body, jsoniter.ConfigFastest)
			}
			if e != nil {
				logger.Warn("failed to send error response", zap.Error(e), zap.String("requestId", GetRequestID(c)))
			}
		}
	}
}
