package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User 用户文档 (users 集合)
// Followers/Following 互为反向引用：b ∈ a.Following 时应有 a ∈ b.Followers，
// 两条边由两次独立的单文档写入维护，不保证跨文档原子性
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Username  string             `bson:"username" json:"username"`
	Email     string             `bson:"email" json:"email"`
	Password  string             `bson:"password" json:"-"`
	AvatarURL string             `bson:"avatar_url,omitempty" json:"avatarUrl"`
	Followers []string           `bson:"followers" json:"followers"` // 关注我的用户ID
	Following []string           `bson:"following" json:"following"` // 我关注的用户ID
	Coins     int                `bson:"coins" json:"coins"`         // 奖励金币余额
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updatedAt"`
}
