package dto

import "time"

// SkillPostCreateDTO 创建/更新帖子请求
type SkillPostCreateDTO struct {
	Title       string   `json:"title" binding:"required,max=200"`
	Description string   `json:"description" binding:"max=2000"`
	Content     string   `json:"content" binding:"required"`
	YoutubeURL  string   `json:"youtubeUrl"`
	Tags        []string `json:"tags"`
}

// CommentCreateDTO 评论/回复请求，ParentCommentID 非空时为回复
type CommentCreateDTO struct {
	Content         string `json:"content" binding:"required,max=1000"`
	ParentCommentID string `json:"parentCommentId"`
}

// CommentUpdateDTO 修改评论内容
type CommentUpdateDTO struct {
	Content string `json:"content" binding:"required,max=1000"`
}

// BatchDeleteDTO 批量删除帖子请求
type BatchDeleteDTO struct {
	IDs []string `json:"ids" binding:"required,min=1"`
}

// CommentDTO 评论节点响应
type CommentDTO struct {
	ID              string       `json:"id"`
	AuthorID        string       `json:"authorId"`
	AuthorName      string       `json:"authorName"`
	Content         string       `json:"content"`
	ParentCommentID string       `json:"parentCommentId,omitempty"`
	Replies         []CommentDTO `json:"replies"`
	CreatedAt       time.Time    `json:"createdAt"`
	UpdatedAt       time.Time    `json:"updatedAt"`
}

// SkillPostDTO 帖子响应
type SkillPostDTO struct {
	ID          string       `json:"id"`
	OwnerID     string       `json:"ownerId"`
	OwnerName   string       `json:"ownerName"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Content     string       `json:"content"`
	YoutubeURL  string       `json:"youtubeUrl,omitempty"`
	Tags        []string     `json:"tags"`
	Likes       int          `json:"likes"`
	LikedByMe   bool         `json:"likedByMe"`
	Comments    []CommentDTO `json:"comments"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}
