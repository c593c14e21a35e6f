package middleware

import (
	"SkillNest/internal/pkg/consts"
	"SkillNest/internal/pkg/redis"
	"SkillNest/internal/pkg/response"
	"SkillNest/internal/pkg/security"
	"context"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	ContextUserIDKey   = "user_id"
	ContextUserNameKey = "user_name"
	ContextTokenKey    = "token"
)

// AuthMiddleware 负责验证 JWT 并将用户身份信息注入 Context
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			response.Fail(c, response.Unauthorized, "Token 缺失或格式错误")
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		signature, err := security.ExtractSignature(tokenString)
		if err != nil {
			response.Fail(c, response.Unauthorized, "Token 缺失或格式错误")
			c.Abort()
			return
		}

		// 注销过的 Token 在黑名单里挂到自然过期
		value, err := redis.GetValue(c.Request.Context(), consts.TokenBlacklistKey+signature)
		if err != nil {
			response.Fail(c, response.InternalServerError, "未知错误")
			c.Abort()
			return
		}
		if value != "" {
			response.Fail(c, response.Unauthorized, "Token 无效或已过期")
			c.Abort()
			return
		}

		claims, err := security.ValidateToken(tokenString)
		if err != nil {
			response.Fail(c, response.Unauthorized, "Token 无效或已过期")
			c.Abort()
			return
		}

		c.Set(ContextUserIDKey, claims.UserID)
		c.Set(ContextUserNameKey, claims.UserName)
		c.Set(ContextTokenKey, tokenString)

		newCtx := context.WithValue(c.Request.Context(), ContextUserIDKey, claims.UserID)
		c.Request = c.Request.WithContext(newCtx)

		c.Next()
	}
}

// AuthOptionalMiddleware 可选鉴权：解析成功注入用户ID，失败或缺失则为空串
func AuthOptionalMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.Set(ContextUserIDKey, "")
			c.Next()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := security.ValidateToken(tokenString)
		if err != nil {
			c.Set(ContextUserIDKey, "")
			c.Next()
			return
		}

		c.Set(ContextUserIDKey, claims.UserID)
		c.Set(ContextUserNameKey, claims.UserName)
		c.Next()
	}
}
