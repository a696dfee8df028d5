package consts

// APIのパス
const (
	PathAPI        = "/api"
	PathPing       = "/ping"
	PathVersion    = "/version"
	PathMetrics    = "/metrics"
	PathIdenticons = "/identicons"
)
