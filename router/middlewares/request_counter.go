package middlewares

import (
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// unmatchedRoute ルーティングされなかったリクエストのrouteラベル
const unmatchedRoute = "unmatched"

var requestCounter = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "caleidenticon",
	Name:      "http_requests_total",
	Help:      "HTTP requests by status code, method and route pattern",
}, []string{"code", "method", "route"})

// RequestCounter prometheus metrics用リクエストカウンター
//
// 入力文字列ごとに系列が増えないよう、パスではなくルートのパターンで数えます。
func RequestCounter() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)
			if err != nil {
				c.Error(err)
			}
			route := c.Path()
			if len(route) == 0 {
				route = unmatchedRoute
			}
			requestCounter.WithLabelValues(strconv.Itoa(c.Response().Status), c.Request().Method, route).Inc()
			return nil
		}
	}
}
