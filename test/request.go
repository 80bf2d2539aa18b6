package test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"campus-connect/internal/global/jwt"
	"campus-connect/internal/global/response"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

// Request 一次 handler 调用的输入
type Request struct {
	Method string     // 默认 POST
	Body   any        // JSON 请求体，nil 则无请求体
	Params gin.Params // 路径参数
	Query  string     // 形如 "open=true"
	User   uint       // 非零时以该用户身份调用
	Email  string     // 随 User 注入的邮箱
}

// Do 直接调用 handler 并解析统一响应
func Do(t *testing.T, handlerFunc gin.HandlerFunc, req Request) (resp response.ResponseBody) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	method := req.Method
	if method == "" {
		method = http.MethodPost
	}

	var body io.Reader
	if req.Body != nil {
		requestBytes, err := json.Marshal(req.Body)
		require.NoError(t, err)
		body = bytes.NewReader(requestBytes)
	}

	target := "/test"
	if req.Query != "" {
		target += "?" + req.Query
	}
	c.Request = httptest.NewRequest(method, target, body)
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = req.Params

	if req.User != 0 {
		c.Set("payload", &jwt.Claims{
			Payload: jwt.Payload{UserID: req.User, Email: req.Email},
		})
	}

	handlerFunc(c)
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	return
}

// Param 构造单个路径参数
func Param(key string, value any) gin.Params {
	return gin.Params{{Key: key, Value: toString(value)}}
}

// Params2 构造两个路径参数
func Params2(k1 string, v1 any, k2 string, v2 any) gin.Params {
	return gin.Params{
		{Key: k1, Value: toString(v1)},
		{Key: k2, Value: toString(v2)},
	}
}

func toString(v any) string {
	raw, _ := json.Marshal(v)
	return string(bytes.Trim(raw, `"`))
}
