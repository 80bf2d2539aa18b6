package response

// 错误码直接采用对应的 HTTP 状态码，Fail 会按码设置响应状态
var (
	ErrInvalidRequest  = newError(400, "请求参数错误")
	ErrTokenInvalid    = newError(401, "登录状态无效")
	ErrInvalidPassword = newError(401, "密码错误")
	ErrUnauthorized    = newError(401, "未登录或登录已过期")
	ErrForbidden       = newError(403, "没有操作权限")
	ErrNotFound        = newError(404, "资源不存在")
	ErrAlreadyExists   = newError(409, "资源已存在")
	ErrDatabase        = newError(500, "服务器内部错误")
)
