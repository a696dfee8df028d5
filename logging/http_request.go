package logging

import (
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// HTTPRequest httpRequest Field
func HTTPRequest(req *HTTPPayload) zap.Field {
	return zap.Object("httpRequest", req)
}

// HTTPPayload アクセスログのhttpRequest Payload
type HTTPPayload struct {
	RequestMethod string
	RequestURL    string
	RequestSize   string
	Status        int
	ResponseSize  string
	UserAgent     string
	RemoteIP      string
	Referer       string
	Latency       string
	// CacheLookup, CacheHit 生成済み画像キャッシュを参照したかどうかと、その結果
	CacheLookup bool
	CacheHit    bool
	// CacheValidatedWithOriginServer If-None-Matchで検証して304を返した
	CacheValidatedWithOriginServer bool
	Protocol                       string
}

// NewHTTPPayload リクエストと応答結果からPayloadを組み立てます
func NewHTTPPayload(req *http.Request, remoteIP string, status int, responseSize int64, latency time.Duration) *HTTPPayload {
	return &HTTPPayload{
		RequestMethod: req.Method,
		RequestURL:    req.URL.String(),
		RequestSize:   req.Header.Get("Content-Length"),
		Status:        status,
		ResponseSize:  strconv.FormatInt(responseSize, 10),
		UserAgent:     req.UserAgent(),
		RemoteIP:      remoteIP,
		Referer:       req.Referer(),
		Latency:       strconv.FormatFloat(latency.Seconds(), 'f', 9, 64) + "s",
		Protocol:      req.Proto,
	}
}

// MarshalLogObject implements zapcore.ObjectMarshaller interface.
func (p HTTPPayload) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("requestMethod", p.RequestMethod)
	enc.AddString("requestUrl", p.RequestURL)
	enc.AddString("requestSize", p.RequestSize)
	enc.AddInt("status", p.Status)
	enc.AddString("responseSize", p.ResponseSize)
	enc.AddString("userAgent", p.UserAgent)
	enc.AddString("remoteIp", p.RemoteIP)
	enc.AddString("referer", p.Referer)
	enc.AddString("latency", p.Latency)
	enc.AddBool("cacheLookup", p.CacheLookup)
	enc.AddBool("cacheHit", p.CacheHit)
	enc.AddBool("cacheValidatedWithOriginServer", p.CacheValidatedWithOriginServer)
	enc.AddString("protocol", p.Protocol)
	return nil
}
