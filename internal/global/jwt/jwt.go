package jwt

import (
	"time"

	"campus-connect/config"

	"github.com/golang-jwt/jwt"
)

// Payload 令牌中携带的用户身份
type Payload struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
}

type Claims struct {
	Payload
	jwt.StandardClaims
}

// CreateToken 签发 HS256 令牌，有效期由配置决定（默认 7 天）
func CreateToken(payload Payload) string {
	now := time.Now()
	claims := Claims{
		Payload: payload,
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(time.Duration(config.Get().JWT.AccessExpire) * time.Second).Unix(),
			Issuer:    "campus-connect",
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(config.Get().JWT.AccessSecret))
	if err != nil {
		return ""
	}
	return signed
}

// ParseToken 校验令牌，无效或过期时 valid 为 false
func ParseToken(tokenString string) (payload *Claims, valid bool) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(config.Get().JWT.AccessSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, false
	}
	return claims, true
}
