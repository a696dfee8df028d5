package consts

const (
	ParamInput  = "input"
	QueryFormat = "format"
)
