package consts

const (
	HeaderCacheControl = "Cache-Control"
	HeaderETag         = "ETag"
	HeaderIfMatch      = "If-Match"
	HeaderIfNoneMatch  = "If-None-Match"
	HeaderVersion      = "X-CALEIDENTICON-VERSION"
	HeaderRevision     = "X-CALEIDENTICON-REVISION"
	HeaderCacheFile    = "X-CALEIDENTICON-CACHE"
)

// HeaderCacheFileの値
//
// MISSは画像を読み込んだ(生成した)リクエストにだけ付きます。同じ画像の生成を
// 待っていた同時リクエストは生成を共有するのでHITになります。
const (
	CacheHit  = "HIT"
	CacheMiss = "MISS"
)
