package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NotificationType 通知类型
type NotificationType string

const (
	NotificationTypeLike         NotificationType = "LIKE"
	NotificationTypeComment      NotificationType = "COMMENT"
	NotificationTypeCommentReply NotificationType = "COMMENT_REPLY"
	NotificationTypeFollow       NotificationType = "FOLLOW"
	NotificationTypeUnfollow     NotificationType = "UNFOLLOW"
	NotificationTypeSystem       NotificationType = "SYSTEM"
)

// Notification 通知文档 (notifications 集合)
// 不变量：RecipientID != ActorID，自通知在创建入口处被抑制而不是查询时过滤
type Notification struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	RecipientID  string             `bson:"recipient_id" json:"recipientId"`
	ActorID      string             `bson:"actor_id,omitempty" json:"actorId"` // 系统通知无动作发起者
	ActorName    string             `bson:"actor_name,omitempty" json:"actorName"`
	Type         NotificationType   `bson:"type" json:"type"`
	Message      string             `bson:"message" json:"message"`
	ResourceID   string             `bson:"resource_id,omitempty" json:"resourceId"`
	ResourceType string             `bson:"resource_type,omitempty" json:"resourceType"`
	CommentID    string             `bson:"comment_id,omitempty" json:"commentId,omitempty"`
	Read         bool               `bson:"read" json:"read"`
	CreatedAt    time.Time          `bson:"created_at" json:"createdAt"`
}
