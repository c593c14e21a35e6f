package repository

import (
	"SkillNest/internal/model"
	"SkillNest/internal/pkg/util"
	"context"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type NotificationRepo interface {
	Insert(ctx context.Context, notification *model.Notification) error
	GetByID(ctx context.Context, id string) (*model.Notification, error)
	FindByRecipient(ctx context.Context, recipientID string, pg util.Pageable) ([]*model.Notification, int64, error)
	FindUnreadByRecipient(ctx context.Context, recipientID string) ([]*model.Notification, error)
	CountUnread(ctx context.Context, recipientID string) (int64, error)
	MarkRead(ctx context.Context, id string) error
	MarkAllRead(ctx context.Context, recipientID string) (int64, error)
	// Delete 返回删除条数，删除不存在的ID不算错误
	Delete(ctx context.Context, id string) (int64, error)
}

type notificationRepoImpl struct {
	col *mongo.Collection
}

func NewNotificationRepo(db *mongo.Database) NotificationRepo {
	return &notificationRepoImpl{
		col: db.Collection("notifications"),
	}
}

func (s *notificationRepoImpl) Insert(ctx context.Context, notification *model.Notification) error {
	if notification.ID.IsZero() {
		notification.ID = primitive.NewObjectID()
	}
	_, err := s.col.InsertOne(ctx, notification)
	return errors.Wrap(err, "insert notification")
}

func (s *notificationRepoImpl) GetByID(ctx context.Context, id string) (*model.Notification, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, mongo.ErrNoDocuments
	}

	var notification model.Notification
	if err = s.col.FindOne(ctx, bson.M{"_id": objectID}).Decode(&notification); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, mongo.ErrNoDocuments
		}
		return nil, errors.Wrap(err, "find notification by id")
	}
	return &notification, nil
}

func (s *notificationRepoImpl) FindByRecipient(ctx context.Context, recipientID string, pg util.Pageable) ([]*model.Notification, int64, error) {
	pg = pg.Normalize()
	filter := bson.M{"recipient_id": recipientID}

	total, err := s.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, errors.Wrap(err, "count notifications")
	}

	sortDir := -1
	if pg.SortAsc {
		sortDir = 1
	}
	opts := options.Find().
		SetSort(bson.D{{Key: pg.SortField, Value: sortDir}}).
		SetSkip(pg.Offset()).
		SetLimit(pg.Limit())

	cursor, err := s.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, errors.Wrap(err, "find notifications")
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var list []*model.Notification
	if err = cursor.All(ctx, &list); err != nil {
		return nil, 0, errors.Wrap(err, "decode notifications")
	}
	return list, total, nil
}

func (s *notificationRepoImpl) FindUnreadByRecipient(ctx context.Context, recipientID string) ([]*model.Notification, error) {
	filter := bson.M{"recipient_id": recipientID, "read": false}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := s.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, errors.Wrap(err, "find unread notifications")
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var list []*model.Notification
	if err = cursor.All(ctx, &list); err != nil {
		return nil, errors.Wrap(err, "decode notifications")
	}
	return list, nil
}

func (s *notificationRepoImpl) CountUnread(ctx context.Context, recipientID string) (int64, error) {
	count, err := s.col.CountDocuments(ctx, bson.M{"recipient_id": recipientID, "read": false})
	return count, errors.Wrap(err, "count unread notifications")
}

func (s *notificationRepoImpl) MarkRead(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return mongo.ErrNoDocuments
	}

	result, err := s.col.UpdateOne(ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": bson.M{"read": true}},
	)
	if err != nil {
		return errors.Wrap(err, "mark notification read")
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (s *notificationRepoImpl) MarkAllRead(ctx context.Context, recipientID string) (int64, error) {
	result, err := s.col.UpdateMany(ctx,
		bson.M{"recipient_id": recipientID, "read": false},
		bson.M{"$set": bson.M{"read": true}},
	)
	if err != nil {
		return 0, errors.Wrap(err, "mark all notifications read")
	}
	return result.ModifiedCount, nil
}

func (s *notificationRepoImpl) Delete(ctx context.Context, id string) (int64, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return 0, nil
	}
	result, err := s.col.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return 0, errors.Wrap(err, "delete notification")
	}
	return result.DeletedCount, nil
}
