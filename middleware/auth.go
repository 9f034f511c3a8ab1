package middleware

import (
	"net/http"
	"strings"
	"time"

	"Marche/pkg/jwt"
	"Marche/pkg/response"

	"github.com/gin-gonic/gin"
)

// Auth 强制登录。token 快过期时顺手续一个新的放响应头
func Auth(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := parseBearer(c, secret)
		if !ok {
			return
		}
		if time.Until(claims.ExpiresAt.Time) < 5*time.Minute {
			newToken, err := jwt.GenerateToken(secret, claims.UserID, "access", 2*time.Hour)
			if err == nil {
				c.Header("X-New-Access-Token", newToken)
			}
		}
		c.Set("user_id", claims.UserID)
		c.Next()
	}
}

// OptionalAuth 游客友好路由：带合法 token 就注入 user_id，
// 不带或解析失败都放行（购物车/下单允许游客态）
func OptionalAuth(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) == 2 && parts[0] == "Bearer" {
				if claims, err := jwt.ParseToken(secret, "access", parts[1]); err == nil {
					c.Set("user_id", claims.UserID)
				}
			}
		}
		c.Next()
	}
}

func parseBearer(c *gin.Context, secret []byte) (*jwt.Claims, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		response.Abort(c, http.StatusUnauthorized, "缺少 Authorization")
		return nil, false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		response.Abort(c, http.StatusUnauthorized, "Authorization 格式错误")
		return nil, false
	}

	claims, err := jwt.ParseToken(secret, "access", parts[1])
	if err != nil {
		response.Abort(c, http.StatusUnauthorized, err.Error())
		return nil, false
	}
	return claims, true
}
