package service

import (
	"SkillNest/internal/api/dto"
	"SkillNest/internal/model"
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/mongo"

	"SkillNest/internal/repository"
)

// PostActionService 帖子上的互动：点赞与评论树
type PostActionService interface {
	// ToggleLike 点赞/取消点赞，返回操作后的帖子
	ToggleLike(ctx context.Context, postID, userID, userName string) (*dto.SkillPostDTO, error)
	// AddComment ParentCommentID 为空时追加顶层评论，否则挂到目标评论的回复下
	AddComment(ctx context.Context, postID, authorID, authorName string, req *dto.CommentCreateDTO) (*dto.SkillPostDTO, error)
	UpdateComment(ctx context.Context, postID, commentID, requesterID string, req *dto.CommentUpdateDTO) (*dto.SkillPostDTO, error)
	// DeleteComment 连同内嵌的整棵回复子树一起移除
	DeleteComment(ctx context.Context, postID, commentID, requesterID string) (*dto.SkillPostDTO, error)
}

type postActionServiceImpl struct {
	postRepo            repository.SkillPostRepo
	notificationService NotificationService
}

func NewPostActionService(postRepo repository.SkillPostRepo, notificationService NotificationService) PostActionService {
	return &postActionServiceImpl{
		postRepo:            postRepo,
		notificationService: notificationService,
	}
}

func (s *postActionServiceImpl) ToggleLike(ctx context.Context, postID, userID, userName string) (*dto.SkillPostDTO, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	liked := false
	for _, id := range post.LikedBy {
		if id == userID {
			liked = true
			break
		}
	}

	if liked {
		if _, err = s.postRepo.RemoveLike(ctx, postID, userID); err != nil {
			return nil, err
		}
	} else {
		matched, err := s.postRepo.AddLike(ctx, postID, userID)
		if err != nil {
			return nil, err
		}
		// 并发下可能已被同一用户点过，只有真正写入才发通知
		if matched {
			s.notifyQuietly(ctx, "like notification failed",
				s.notificationService.CreateLikeNotification(ctx, post.OwnerID, userID, userName, postID, post.Title))
		}
	}

	return s.loadPostDTO(ctx, postID, userID)
}

func (s *postActionServiceImpl) AddComment(ctx context.Context, postID, authorID, authorName string, req *dto.CommentCreateDTO) (*dto.SkillPostDTO, error) {
	now := time.Now()
	comment := model.Comment{
		ID:              uuid.NewString(),
		AuthorID:        authorID,
		AuthorName:      authorName,
		Content:         req.Content,
		ParentCommentID: req.ParentCommentID,
		Replies:         []model.Comment{},
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	var parentAuthorID string
	post, err := savePostVersioned(ctx, s.postRepo, postID, func(post *model.SkillPost) error {
		if req.ParentCommentID == "" {
			post.Comments = append(post.Comments, comment)
			return nil
		}
		parent := findComment(post.Comments, req.ParentCommentID)
		if parent == nil {
			return ErrCommentNotFound
		}
		parentAuthorID = parent.AuthorID
		parent.Replies = append(parent.Replies, comment)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if req.ParentCommentID == "" {
		s.notifyQuietly(ctx, "comment notification failed",
			s.notificationService.CreateCommentNotification(ctx, post.OwnerID, authorID, authorName, postID, comment.ID, comment.Content))
	} else {
		s.notifyQuietly(ctx, "reply notification failed",
			s.notificationService.CreateReplyNotification(ctx, parentAuthorID, authorID, authorName, postID, comment.ID, comment.Content))
		// 帖主与被回复者不是同一人时各收一条
		if post.OwnerID != parentAuthorID {
			s.notifyQuietly(ctx, "comment notification failed",
				s.notificationService.CreateCommentNotification(ctx, post.OwnerID, authorID, authorName, postID, comment.ID, comment.Content))
		}
	}

	return toSkillPostDTO(post, authorID), nil
}

func (s *postActionServiceImpl) UpdateComment(ctx context.Context, postID, commentID, requesterID string, req *dto.CommentUpdateDTO) (*dto.SkillPostDTO, error) {
	post, err := savePostVersioned(ctx, s.postRepo, postID, func(post *model.SkillPost) error {
		comment := findComment(post.Comments, commentID)
		if comment == nil {
			return ErrCommentNotFound
		}
		// 评论作者或帖主可改
		if comment.AuthorID != requesterID && post.OwnerID != requesterID {
			return UnauthorizedError
		}
		comment.Content = req.Content
		comment.UpdatedAt = time.Now()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toSkillPostDTO(post, requesterID), nil
}

func (s *postActionServiceImpl) DeleteComment(ctx context.Context, postID, commentID, requesterID string) (*dto.SkillPostDTO, error) {
	post, err := savePostVersioned(ctx, s.postRepo, postID, func(post *model.SkillPost) error {
		comment := findComment(post.Comments, commentID)
		if comment == nil {
			return ErrCommentNotFound
		}
		// 评论作者或帖主可删
		if comment.AuthorID != requesterID && post.OwnerID != requesterID {
			return UnauthorizedError
		}
		removeComment(&post.Comments, commentID)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toSkillPostDTO(post, requesterID), nil
}

func (s *postActionServiceImpl) loadPostDTO(ctx context.Context, postID, viewerID string) (*dto.SkillPostDTO, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return toSkillPostDTO(post, viewerID), nil
}

// notifyQuietly 通知属于旁路副作用，失败记录日志但不影响主操作
func (s *postActionServiceImpl) notifyQuietly(ctx context.Context, msg string, err error) {
	if err != nil {
		slog.WarnContext(ctx, msg, "err", err)
	}
}

// findComment 先序深度优先查找，返回树内节点的指针以便原地修改
func findComment(comments []model.Comment, commentID string) *model.Comment {
	for i := range comments {
		if comments[i].ID == commentID {
			return &comments[i]
		}
		if found := findComment(comments[i].Replies, commentID); found != nil {
			return found
		}
	}
	return nil
}

// removeComment 从树中摘除目标节点（含其全部回复），返回是否命中
func removeComment(comments *[]model.Comment, commentID string) bool {
	for i := range *comments {
		if (*comments)[i].ID == commentID {
			*comments = append((*comments)[:i], (*comments)[i+1:]...)
			return true
		}
		if removeComment(&(*comments)[i].Replies, commentID) {
			return true
		}
	}
	return false
}
