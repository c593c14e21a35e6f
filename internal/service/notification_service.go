package service

import (
	"SkillNest/internal/api/dto"
	"SkillNest/internal/model"
	"SkillNest/internal/pkg/consts"
	"SkillNest/internal/pkg/redis"
	"SkillNest/internal/pkg/util"
	"context"
	"log/slog"
	"strconv"
	"time"

	json "github.com/goccy/go-json"
	"github.com/jinzhu/copier"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/mongo"

	"SkillNest/internal/repository"
)

type NotificationService interface {
	// Create 创建通知，收件人即发起者时静默跳过
	Create(ctx context.Context, notification *model.Notification) error
	// CreateSystem 创建无发起者的系统通知
	CreateSystem(ctx context.Context, recipientID string, notifyType model.NotificationType, message string) error
	CreateLikeNotification(ctx context.Context, recipientID, actorID, actorName, postID, postTitle string) error
	CreateCommentNotification(ctx context.Context, recipientID, actorID, actorName, postID, commentID, content string) error
	CreateReplyNotification(ctx context.Context, recipientID, actorID, actorName, postID, commentID, content string) error
	GetNotifications(ctx context.Context, recipientID string, pg util.Pageable) (*dto.PageDTO[*dto.NotificationDTO], error)
	GetUnreadNotifications(ctx context.Context, recipientID string) ([]*dto.NotificationDTO, error)
	GetUnreadCount(ctx context.Context, recipientID string) (*dto.NotificationUnreadDTO, error)
	MarkRead(ctx context.Context, recipientID, notificationID string) error
	MarkAllRead(ctx context.Context, recipientID string) error
	Delete(ctx context.Context, recipientID, notificationID string) error
}

type notificationServiceImpl struct {
	notificationRepo repository.NotificationRepo
}

func NewNotificationService(notificationRepo repository.NotificationRepo) NotificationService {
	return &notificationServiceImpl{
		notificationRepo: notificationRepo,
	}
}

func (s *notificationServiceImpl) Create(ctx context.Context, notification *model.Notification) error {
	// 自己触发的动作不提醒自己
	if notification.ActorID != "" && notification.ActorID == notification.RecipientID {
		return nil
	}
	notification.Read = false
	notification.CreatedAt = time.Now()

	if err := s.notificationRepo.Insert(ctx, notification); err != nil {
		return err
	}
	s.afterWrite(ctx, notification)
	return nil
}

func (s *notificationServiceImpl) CreateSystem(ctx context.Context, recipientID string, notifyType model.NotificationType, message string) error {
	return s.Create(ctx, &model.Notification{
		RecipientID: recipientID,
		Type:        notifyType,
		Message:     message,
	})
}

func (s *notificationServiceImpl) CreateLikeNotification(ctx context.Context, recipientID, actorID, actorName, postID, postTitle string) error {
	return s.Create(ctx, &model.Notification{
		RecipientID:  recipientID,
		ActorID:      actorID,
		ActorName:    actorName,
		Type:         model.NotificationTypeLike,
		Message:      actorName + " 点赞了你的帖子: " + postTitle,
		ResourceID:   postID,
		ResourceType: consts.ResourceTypeSkillPost,
	})
}

func (s *notificationServiceImpl) CreateCommentNotification(ctx context.Context, recipientID, actorID, actorName, postID, commentID, content string) error {
	return s.Create(ctx, &model.Notification{
		RecipientID:  recipientID,
		ActorID:      actorID,
		ActorName:    actorName,
		Type:         model.NotificationTypeComment,
		Message:      actorName + " 评论了你的帖子: " + previewOf(content),
		ResourceID:   postID,
		ResourceType: consts.ResourceTypeSkillPost,
		CommentID:    commentID,
	})
}

func (s *notificationServiceImpl) CreateReplyNotification(ctx context.Context, recipientID, actorID, actorName, postID, commentID, content string) error {
	return s.Create(ctx, &model.Notification{
		RecipientID:  recipientID,
		ActorID:      actorID,
		ActorName:    actorName,
		Type:         model.NotificationTypeCommentReply,
		Message:      actorName + " 回复了你的评论: " + previewOf(content),
		ResourceID:   postID,
		ResourceType: consts.ResourceTypeSkillPost,
		CommentID:    commentID,
	})
}

func (s *notificationServiceImpl) GetNotifications(ctx context.Context, recipientID string, pg util.Pageable) (*dto.PageDTO[*dto.NotificationDTO], error) {
	pg = pg.Normalize()
	list, total, err := s.notificationRepo.FindByRecipient(ctx, recipientID, pg)
	if err != nil {
		return nil, err
	}
	return &dto.PageDTO[*dto.NotificationDTO]{
		Items:    toNotificationDTOs(list),
		Total:    total,
		Page:     pg.Page,
		PageSize: pg.PageSize,
	}, nil
}

func (s *notificationServiceImpl) GetUnreadNotifications(ctx context.Context, recipientID string) ([]*dto.NotificationDTO, error) {
	list, err := s.notificationRepo.FindUnreadByRecipient(ctx, recipientID)
	if err != nil {
		return nil, err
	}
	return toNotificationDTOs(list), nil
}

func (s *notificationServiceImpl) GetUnreadCount(ctx context.Context, recipientID string) (*dto.NotificationUnreadDTO, error) {
	cacheKey := consts.NotifyUnreadCountKey + recipientID
	if count, err := redis.GetInt64(ctx, cacheKey); err == nil {
		return &dto.NotificationUnreadDTO{UnreadCount: count}, nil
	}

	count, err := s.notificationRepo.CountUnread(ctx, recipientID)
	if err != nil {
		return nil, err
	}
	if err = redis.SetWithExpiration(ctx, cacheKey, strconv.FormatInt(count, 10), time.Hour); err != nil {
		slog.WarnContext(ctx, "cache unread count failed", "recipient_id", recipientID, "err", err)
	}
	return &dto.NotificationUnreadDTO{UnreadCount: count}, nil
}

func (s *notificationServiceImpl) MarkRead(ctx context.Context, recipientID, notificationID string) error {
	notification, err := s.notificationRepo.GetByID(ctx, notificationID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrNotificationNotFound
		}
		return err
	}
	if notification.RecipientID != recipientID {
		return UnauthorizedError
	}

	if err = s.notificationRepo.MarkRead(ctx, notificationID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrNotificationNotFound
		}
		return err
	}
	s.invalidateUnreadCount(ctx, recipientID)
	return nil
}

func (s *notificationServiceImpl) MarkAllRead(ctx context.Context, recipientID string) error {
	if _, err := s.notificationRepo.MarkAllRead(ctx, recipientID); err != nil {
		return err
	}
	s.invalidateUnreadCount(ctx, recipientID)
	return nil
}

// Delete 删除通知，目标不存在时视为已达成幂等成功
func (s *notificationServiceImpl) Delete(ctx context.Context, recipientID, notificationID string) error {
	notification, err := s.notificationRepo.GetByID(ctx, notificationID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			slog.WarnContext(ctx, "delete missing notification", "notification_id", notificationID)
			return nil
		}
		return err
	}
	if notification.RecipientID != recipientID {
		return UnauthorizedError
	}

	if _, err = s.notificationRepo.Delete(ctx, notificationID); err != nil {
		return err
	}
	s.invalidateUnreadCount(ctx, recipientID)
	return nil
}

// afterWrite 写库成功后的缓存失效与实时推送，失败只记录
func (s *notificationServiceImpl) afterWrite(ctx context.Context, notification *model.Notification) {
	s.invalidateUnreadCount(ctx, notification.RecipientID)

	payload, err := json.Marshal(toNotificationDTO(notification))
	if err != nil {
		slog.WarnContext(ctx, "marshal notification for push failed", "err", err)
		return
	}
	channel := consts.NotifyChannelKey + notification.RecipientID
	if err = redis.Publish(ctx, channel, payload); err != nil {
		slog.WarnContext(ctx, "push notification failed", "channel", channel, "err", err)
	}
}

func (s *notificationServiceImpl) invalidateUnreadCount(ctx context.Context, recipientID string) {
	if err := redis.DeleteKey(ctx, consts.NotifyUnreadCountKey+recipientID); err != nil {
		slog.WarnContext(ctx, "invalidate unread count failed", "recipient_id", recipientID, "err", err)
	}
}

// previewOf 生成通知里的内容摘要，超长截断后补省略号
func previewOf(content string) string {
	runes := []rune(content)
	if len(runes) <= consts.NotifyPreviewThreshold {
		return content
	}
	return string(runes[:consts.NotifyPreviewCut]) + "..."
}

func toNotificationDTO(notification *model.Notification) *dto.NotificationDTO {
	result := &dto.NotificationDTO{}
	_ = copier.Copy(result, notification)
	result.ID = notification.ID.Hex()
	result.Type = string(notification.Type)
	result.CreatedAt = notification.CreatedAt.Format(time.RFC3339)
	return result
}

func toNotificationDTOs(list []*model.Notification) []*dto.NotificationDTO {
	result := make([]*dto.NotificationDTO, 0, len(list))
	for _, notification := range list {
		result = append(result, toNotificationDTO(notification))
	}
	return result
}
