package dto

// NotificationDTO 通知响应
type NotificationDTO struct {
	ID           string `json:"id"`
	RecipientID  string `json:"recipientId"`
	ActorID      string `json:"actorId,omitempty"`
	ActorName    string `json:"actorName,omitempty"`
	Type         string `json:"type"`
	Message      string `json:"message"`
	ResourceID   string `json:"resourceId,omitempty"`
	ResourceType string `json:"resourceType,omitempty"`
	CommentID    string `json:"commentId,omitempty"`
	Read         bool   `json:"read"`
	CreatedAt    string `json:"createdAt"`
}

// NotificationUnreadDTO 未读数响应
type NotificationUnreadDTO struct {
	UnreadCount int64 `json:"unreadCount"`
}
