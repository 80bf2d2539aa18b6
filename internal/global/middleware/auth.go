package middleware

import (
	"strings"

	"campus-connect/internal/global/jwt"
	"campus-connect/internal/global/response"

	"github.com/gin-gonic/gin"
)

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return "", false
	}
	return strings.TrimPrefix(authHeader, "Bearer "), true
}

// Auth 校验 Bearer 令牌，失败统一返回 401
func Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			response.Fail(c, response.ErrTokenInvalid)
			c.Abort()
			return
		}

		payload, valid := jwt.ParseToken(token)
		if !valid {
			response.Fail(c, response.ErrTokenInvalid)
			c.Abort()
			return
		}

		c.Set("payload", payload)
		c.Next()
	}
}

// OptionalAuth 允许匿名访问；令牌有效时记录身份，无效时静默按匿名处理
func OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, ok := bearerToken(c); ok {
			if payload, valid := jwt.ParseToken(token); valid {
				c.Set("payload", payload)
			}
		}
		c.Next()
	}
}
