package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SkillPost 技能帖子文档 (skill_posts 集合)
// 评论树整体内嵌在帖子文档中，Comments 为顶层评论（森林的根节点）
type SkillPost struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OwnerID     string             `bson:"owner_id" json:"ownerId"`
	OwnerName   string             `bson:"owner_name" json:"ownerName"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	Content     string             `bson:"content" json:"content"`
	YoutubeURL  string             `bson:"youtube_url,omitempty" json:"youtubeUrl"`
	Tags        []string           `bson:"tags" json:"tags"`
	Likes       int                `bson:"likes" json:"likes"`          // 与 len(LikedBy) 保持一致
	LikedBy     []string           `bson:"liked_by" json:"likedBy"`     // 点赞用户ID集合
	Comments    []Comment          `bson:"comments" json:"comments"`    // 顶层评论
	Version     int64              `bson:"version" json:"-"`            // 乐观锁版本号
	CreatedAt   time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updatedAt"`
}

// Comment 评论节点，回复以子树形式内嵌在 Replies 中，深度不限
type Comment struct {
	ID              string    `bson:"id" json:"id"`
	AuthorID        string    `bson:"author_id" json:"authorId"`
	AuthorName      string    `bson:"author_name" json:"authorName"`
	Content         string    `bson:"content" json:"content"`
	ParentCommentID string    `bson:"parent_comment_id,omitempty" json:"parentCommentId,omitempty"` // 为空表示顶层评论
	Replies         []Comment `bson:"replies" json:"replies"`
	CreatedAt       time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt       time.Time `bson:"updated_at" json:"updatedAt"`
}
