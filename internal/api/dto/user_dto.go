package dto

// RegisterDTO 注册请求
type RegisterDTO struct {
	Name     string `json:"name" binding:"required,max=50"`
	Username string `json:"username" binding:"required,min=3,max=20"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6,max=64"`
}

// CredentialDTO 登录请求
type CredentialDTO struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResultDTO 登录结果
type LoginResultDTO struct {
	Token string         `json:"token"`
	User  *UserSimpleDTO `json:"user"`
}

// UserSimpleDTO 用户概要信息
type UserSimpleDTO struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatarUrl"`
}

// UpdateNameDTO 修改显示名请求
type UpdateNameDTO struct {
	Name string `json:"name" binding:"required,max=50"`
}

// CoinBalanceDTO 金币余额
type CoinBalanceDTO struct {
	UserID string `json:"userId"`
	Coins  int    `json:"coins"`
}
