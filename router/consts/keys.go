package consts

// echo.Contextに保存する値のキー
const (
	KeyRequestID = "requestID"
)
