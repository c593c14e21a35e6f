package security

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	JWTSecret         string = "SkillNest"
	JWTExpirationTime        = time.Hour * 24
)

// UserClaims 定义了我们 Token 中需要包含的业务信息
type UserClaims struct {
	UserID   string `json:"user_id"`
	UserName string `json:"user_name"`
	jwt.RegisteredClaims
}
