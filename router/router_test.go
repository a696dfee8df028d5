package router

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gavv/httpexpect/v2"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/traPtitech/caleidenticon/router/consts"
	"github.com/traPtitech/caleidenticon/router/extension"
	"github.com/traPtitech/caleidenticon/service/identicon"
	"github.com/traPtitech/caleidenticon/testutils"
	"github.com/traPtitech/caleidenticon/utils/storage"
)

func testConfig(fs storage.FileStorage) *Config {
	return &Config{
		Version:        "test",
		Revision:       "local",
		AccessLogging:  true,
		MaxAge:         3600,
		CacheSize:      16,
		CacheTTL:       time.Hour,
		MaxInputLength: 32,
		Identicon:      identicon.DefaultOptions(),
		Storage:        fs,
		Registry:       prometheus.NewRegistry(),
		RootLogger:     zap.NewNop(),
	}
}

func setup(t *testing.T, config *Config) *httptest.Server {
	t.Helper()
	e, err := Setup(config)
	require.NoError(t, err)
	server := httptest.NewServer(e)
	t.Cleanup(server.Close)
	return server
}

func exp(t *testing.T, server *httptest.Server) *httpexpect.Expect {
	t.Helper()
	return httpexpect.WithConfig(httpexpect.Config{
		BaseURL:  server.URL,
		Reporter: httpexpect.NewAssertReporter(t),
		Printers: []httpexpect.Printer{
			httpexpect.NewCurlPrinter(t),
		},
		Client: &http.Client{
			Jar:     nil, // クッキーは保持しない
			Timeout: time.Second * 30,
			CheckRedirect: func(_ *http.Request, _ []*http.Request) error {
				return http.ErrUseLastResponse // リダイレクトを自動処理しない
			},
		},
	})
}

func TestSetup(t *testing.T) {
	t.Parallel()

	server := setup(t, testConfig(nil))

	t.Run("ping", func(t *testing.T) {
		t.Parallel()
		e := exp(t, server)
		res := e.GET("/api/ping").
			Expect().
			Status(http.StatusOK)
		res.Body().IsEqual("OK")
		res.Header(consts.HeaderVersion).IsEqual("test")
		res.Header(consts.HeaderRevision).IsEqual("local")
		res.Header("X-Request-Id").NotEmpty()
	})

	t.Run("version", func(t *testing.T) {
		t.Parallel()
		e := exp(t, server)
		obj := e.GET("/api/version").
			Expect().
			Status(http.StatusOK).
			JSON().
			Object()
		obj.Value("version").String().IsEqual("test")
		obj.Value("revision").String().IsEqual("local")
	})

	t.Run("metrics", func(t *testing.T) {
		t.Parallel()
		e := exp(t, server)
		e.GET("/api/ping").Expect().Status(http.StatusOK)
		e.GET("/api/metrics").
			Expect().
			Status(http.StatusOK).
			Body().
			Contains("caleidenticon_requests_total")
	})

	t.Run("not found", func(t *testing.T) {
		t.Parallel()
		e := exp(t, server)
		e.GET("/api/unknown").
			Expect().
			Status(http.StatusNotFound)
	})
}

func TestGetIdenticon(t *testing.T) {
	t.Parallel()

	server := setup(t, testConfig(nil))
	alice := lo.Must(identicon.CreateBlob("alice", identicon.DefaultOptions()))

	t.Run("png", func(t *testing.T) {
		t.Parallel()
		e := exp(t, server)
		res := e.GET("/api/identicons/alice").
			Expect().
			Status(http.StatusOK)
		res.Header(echo.HeaderContentType).IsEqual("image/png")
		res.Header(consts.HeaderETag).IsEqual(extension.ETag(alice))
		res.Header(consts.HeaderCacheControl).IsEqual("public, max-age=3600")

		body := []byte(res.Body().Raw())
		assert.True(t, bytes.Equal(alice, body))
		img, _ := testutils.MustDecodeNRGBA(t, body)
		assert.Equal(t, 290, img.Rect.Dx())
		testutils.AssertKaleidoscopic(t, img)
	})

	t.Run("gif", func(t *testing.T) {
		t.Parallel()
		e := exp(t, server)
		res := e.GET("/api/identicons/alice").
			WithQuery(consts.QueryFormat, "gif").
			Expect().
			Status(http.StatusOK)
		res.Header(echo.HeaderContentType).IsEqual("image/gif")

		_, format := testutils.MustDecodeNRGBA(t, []byte(res.Body().Raw()))
		assert.Equal(t, "gif", format)
	})

	t.Run("tiff", func(t *testing.T) {
		t.Parallel()
		e := exp(t, server)
		e.GET("/api/identicons/bob").
			WithQuery(consts.QueryFormat, "tiff").
			Expect().
			Status(http.StatusOK).
			Header(echo.HeaderContentType).IsEqual("image/tiff")
	})

	t.Run("bad format", func(t *testing.T) {
		t.Parallel()
		e := exp(t, server)
		e.GET("/api/identicons/alice").
			WithQuery(consts.QueryFormat, "jpeg").
			Expect().
			Status(http.StatusBadRequest).
			JSON().
			Object().
			ContainsKey("message")
	})

	t.Run("too long", func(t *testing.T) {
		t.Parallel()
		e := exp(t, server)
		e.GET("/api/identicons/abcdefghijklmnopqrstuvwxyzabcdefghijklmnopqrstuvwxyz").
			Expect().
			Status(http.StatusBadRequest)
	})

	t.Run("not modified", func(t *testing.T) {
		t.Parallel()
		e := exp(t, server)
		e.GET("/api/identicons/alice").
			WithHeader(consts.HeaderIfNoneMatch, extension.ETag(alice)).
			Expect().
			Status(http.StatusNotModified).
			Body().IsEmpty()
	})

	t.Run("cache", func(t *testing.T) {
		t.Parallel()
		e := exp(t, server)
		e.GET("/api/identicons/carol").
			Expect().
			Status(http.StatusOK).
			Header(consts.HeaderCacheFile).IsEqual(consts.CacheMiss)
		e.GET("/api/identicons/carol").
			Expect().
			Status(http.StatusOK).
			Header(consts.HeaderCacheFile).IsEqual(consts.CacheHit)
	})

	t.Run("concurrent requests share one generation", func(t *testing.T) {
		t.Parallel()
		const n = 8
		results := make([]string, n)
		var wg sync.WaitGroup
		for i := range n {
			wg.Add(1)
			go func() {
				defer wg.Done()
				res, err := http.Get(server.URL + "/api/identicons/erin")
				if !assert.NoError(t, err) {
					return
				}
				defer res.Body.Close()
				assert.Equal(t, http.StatusOK, res.StatusCode)
				results[i] = res.Header.Get(consts.HeaderCacheFile)
			}()
		}
		wg.Wait()

		assert.Equal(t, 1, lo.Count(results, consts.CacheMiss))
		assert.Equal(t, n-1, lo.Count(results, consts.CacheHit))
	})
}

func TestGetIdenticon_Storage(t *testing.T) {
	t.Parallel()

	t.Run("persist", func(t *testing.T) {
		t.Parallel()
		fs := storage.NewInMemoryFileStorage()
		server := setup(t, testConfig(fs))
		e := exp(t, server)

		e.GET("/api/identicons/alice").Expect().Status(http.StatusOK)
		e.GET("/api/identicons/alice").WithQuery(consts.QueryFormat, "gif").Expect().Status(http.StatusOK)
		e.GET("/api/identicons/alice").Expect().Status(http.StatusOK)
		assert.Equal(t, 2, fs.Len())
	})

	t.Run("restore", func(t *testing.T) {
		t.Parallel()
		fs := storage.NewInMemoryFileStorage()
		config := testConfig(fs)
		h, err := newIdenticonHandler(config, zap.NewNop())
		require.NoError(t, err)

		// 永続化先にあれば生成せずにそれを返す
		stored := []byte("stored blob")
		key := h.storageKey(cacheKey{input: "dave", format: identicon.FormatPNG})
		require.NoError(t, fs.SaveByKey(bytes.NewReader(stored), key, "image/png"))

		server := setup(t, config)
		e := exp(t, server)
		e.GET("/api/identicons/dave").
			Expect().
			Status(http.StatusOK).
			Body().IsEqual(string(stored))
	})

	t.Run("options change the key", func(t *testing.T) {
		t.Parallel()
		a, err := newIdenticonHandler(testConfig(nil), zap.NewNop())
		require.NoError(t, err)

		config := testConfig(nil)
		config.Identicon.Density = 9
		b, err := newIdenticonHandler(config, zap.NewNop())
		require.NoError(t, err)

		key := cacheKey{input: "alice", format: identicon.FormatPNG}
		assert.NotEqual(t, a.storageKey(key), b.storageKey(key))
		assert.Equal(t, a.storageKey(key), a.storageKey(key))
		assert.NotEqual(t, a.storageKey(key), a.storageKey(cacheKey{input: "alice", format: identicon.FormatGIF}))
	})
}
