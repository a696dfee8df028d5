package extension

import (
	"encoding/hex"
	"net/http"
	"net/textproto"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/zeebo/blake3"

	"github.com/traPtitech/caleidenticon/router/consts"
)

func scanETag(s string) (eTag string, remain string) {
	s = textproto.TrimString(s)
	start := 0
	if strings.HasPrefix(s, weakPrefix) {
		start = 2
	}
	if len(s[start:]) < 2 || s[start] != '"' {
		return "", ""
	}
	for i := start + 1; i < len(s); i++ {
		c := s[i]
		if c == '"' {
			return s[:i+1], s[i+1:]
		}
	}
	return "", ""
}

func eTagStrongMatch(a, b string) bool {
	return a == b && a != "" && a[0] == '"'
}

func eTagWeakMatch(a, b string) bool {
	return strings.TrimPrefix(a, weakPrefix) == strings.TrimPrefix(b, weakPrefix)
}

type condResult int

const (
	weakPrefix = "W/"

	condNone condResult = iota
	condTrue
	condFalse
)

func checkIfMatch(c echo.Context) condResult {
	im := c.Request().Header.Get(consts.HeaderIfMatch)
	if im == "" {
		return condNone
	}
	for {
		im = textproto.TrimString(im)
		if len(im) == 0 {
			break
		}
		if im[0] == ',' {
			im = im[1:]
			continue
		}
		if im[0] == '*' {
			return condTrue
		}
		eTag, remain := scanETag(im)
		if eTag == "" {
			break
		}
		if eTagStrongMatch(eTag, c.Response().Header().Get(consts.HeaderETag)) {
			return condTrue
		}
		im = remain
	}
	return condFalse
}

func checkIfNoneMatch(c echo.Context) condResult {
	inm := c.Request().Header.Get(consts.HeaderIfNoneMatch)
	if inm == "" {
		return condNone
	}
	buf := inm
	for {
		buf = textproto.TrimString(buf)
		if len(buf) == 0 {
			break
		}
		if buf[0] == ',' {
			buf = buf[1:]
			continue
		}
		if buf[0] == '*' {
			return condFalse
		}
		eTag, remain := scanETag(buf)
		if eTag == "" {
			break
		}
		if eTagWeakMatch(eTag, c.Response().Header().Get(consts.HeaderETag)) {
			return condFalse
		}
		buf = remain
	}
	return condTrue
}

func writeNotModified(c echo.Context) error {
	h := c.Response().Header()
	delete(h, echo.HeaderContentType)
	delete(h, echo.HeaderContentLength)
	return c.NoContent(http.StatusNotModified)
}

// CheckPreconditions レスポンスに設定済みのETagに対してHTTPリクエストの事前条件を検査します
func CheckPreconditions(c echo.Context) (done bool, err error) {
	if checkIfMatch(c) == condFalse {
		return true, c.NoContent(http.StatusPreconditionFailed)
	}

	if checkIfNoneMatch(c) == condFalse {
		if m := c.Request().Method; m == http.MethodGet || m == http.MethodHead {
			return true, writeNotModified(c)
		}
		return true, c.NoContent(http.StatusPreconditionFailed)
	}
	return false, nil
}

// ETag bytesの強いETag
func ETag(bytes []byte) string {
	sum := blake3.Sum256(bytes)
	return `"` + hex.EncodeToString(sum[:16]) + `"`
}

// ServeWithETag Etagを付与して返します。304を返せるときは304を返します。
func ServeWithETag(c echo.Context, contentType string, bytes []byte) error {
	c.Response().Header().Set(consts.HeaderETag, ETag(bytes))

	if done, err := CheckPreconditions(c); done {
		return err
	}
	return c.Blob(http.StatusOK, contentType, bytes)
}

// IsNotModified 直前に304を返したかどうか
func IsNotModified(c echo.Context) bool {
	return c.Response().Status == http.StatusNotModified
}
