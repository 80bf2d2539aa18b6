package response

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"campus-connect/config"
	"campus-connect/internal/global/logger"
	"campus-connect/internal/global/sentry"

	"github.com/gin-gonic/gin"
)

// ResponseBody 统一的响应结构
type ResponseBody struct {
	Code int32  `json:"code"`
	Msg  string `json:"msg"`
	Data any    `json:"data,omitempty"`
}

// Success 返回成功响应，data 可省略
func Success(c *gin.Context, data ...any) {
	body := ResponseBody{
		Code: http.StatusOK,
		Msg:  "success",
	}
	if len(data) > 0 {
		body.Data = data[0]
	}
	c.Set(ResponseContextKey, body)
	c.JSON(http.StatusOK, body)
}

// Fail 返回失败响应，HTTP 状态码取自错误码
func Fail(c *gin.Context, err error) {
	e, ok := err.(*Error)
	if !ok {
		e = ErrDatabase.WithOrigin(err)
	}

	body := ResponseBody{
		Code: e.Code,
		Msg:  e.Message,
	}
	// Origin 仅在 debug 模式返回给前端
	if config.Get() != nil && config.Get().Mode == config.ModeDebug && e.Origin != "" {
		body.Data = gin.H{"origin": e.Origin}
	}

	c.Set(ErrorContextKey, e)
	c.Set(ResponseContextKey, body)

	// 服务器内部错误上报 Sentry（业务错误不上报）
	sentry.CaptureException(c, e)

	c.JSON(int(e.Code), body)
}

// Recovery 捕获 handler 中的 panic，返回 500 并记录堆栈
func Recovery(c *gin.Context) {
	if r := recover(); r != nil {
		logger.New("Recovery").Error("panic recovered",
			"error", fmt.Sprintf("%v", r),
			"path", c.Request.URL.Path,
			"stack", string(debug.Stack()),
		)
		Fail(c, ErrDatabase)
		c.Abort()
	}
}
