package extension

import (
	vd "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/labstack/echo/v4"

	"github.com/traPtitech/caleidenticon/router/consts"
	"github.com/traPtitech/caleidenticon/utils/random"
	"github.com/traPtitech/caleidenticon/utils/validator"
)

// GetRequestID リクエストIDを返します
//
// 一度決めたIDはリクエストの間保持するので、レスポンスヘッダーとログのIDは一致します。
// クライアントが指定したIDは英数字と "._-" からなる64文字以下の場合だけ使います。
func GetRequestID(c echo.Context) string {
	if rid, ok := c.Get(consts.KeyRequestID).(string); ok {
		return rid
	}
	rid := c.Request().Header.Get(echo.HeaderXRequestID)
	if vd.Validate(rid, validator.RequestIDRuleRequired...) != nil {
		rid = random.AlphaNumeric(32)
	}
	c.Set(consts.KeyRequestID, rid)
	return rid
}
