package repository

import (
	"SkillNest/internal/model"
	"context"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type UserRepo interface {
	Insert(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByIDs(ctx context.Context, ids []string) ([]*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	UpdateName(ctx context.Context, id, name string) error
	// 关注边的四个操作都是单文档原子更新，天然幂等
	AddFollowing(ctx context.Context, userID, targetID string) error
	RemoveFollowing(ctx context.Context, userID, targetID string) error
	AddFollower(ctx context.Context, userID, followerID string) error
	RemoveFollower(ctx context.Context, userID, followerID string) error
	// AddCoins 原子累加金币并返回新余额
	AddCoins(ctx context.Context, userID string, points int) (int, error)
}

type userRepoImpl struct {
	col *mongo.Collection
}

func NewUserRepo(db *mongo.Database) UserRepo {
	return &userRepoImpl{
		col: db.Collection("users"),
	}
}

func (s *userRepoImpl) Insert(ctx context.Context, user *model.User) error {
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	if user.Followers == nil {
		user.Followers = []string{}
	}
	if user.Following == nil {
		user.Following = []string{}
	}
	_, err := s.col.InsertOne(ctx, user)
	return errors.Wrap(err, "insert user")
}

func (s *userRepoImpl) GetByID(ctx context.Context, id string) (*model.User, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, mongo.ErrNoDocuments
	}

	var user model.User
	if err = s.col.FindOne(ctx, bson.M{"_id": objectID}).Decode(&user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, mongo.ErrNoDocuments
		}
		return nil, errors.Wrap(err, "find user by id")
	}
	return &user, nil
}

func (s *userRepoImpl) GetByIDs(ctx context.Context, ids []string) ([]*model.User, error) {
	objectIDs := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		objectID, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			continue
		}
		objectIDs = append(objectIDs, objectID)
	}

	cursor, err := s.col.Find(ctx, bson.M{"_id": bson.M{"$in": objectIDs}})
	if err != nil {
		return nil, errors.Wrap(err, "find users by ids")
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var users []*model.User
	if err = cursor.All(ctx, &users); err != nil {
		return nil, errors.Wrap(err, "decode users")
	}
	return users, nil
}

func (s *userRepoImpl) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := s.col.FindOne(ctx, bson.M{"email": email}).Decode(&user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, mongo.ErrNoDocuments
		}
		return nil, errors.Wrap(err, "find user by email")
	}
	return &user, nil
}

func (s *userRepoImpl) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	count, err := s.col.CountDocuments(ctx, bson.M{"email": email})
	if err != nil {
		return false, errors.Wrap(err, "count users by email")
	}
	return count > 0, nil
}

func (s *userRepoImpl) UpdateName(ctx context.Context, id, name string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return mongo.ErrNoDocuments
	}
	result, err := s.col.UpdateOne(ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": bson.M{"name": name}, "$currentDate": bson.M{"updated_at": true}},
	)
	if err != nil {
		return errors.Wrap(err, "update user name")
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (s *userRepoImpl) AddFollowing(ctx context.Context, userID, targetID string) error {
	return s.updateEdge(ctx, userID, bson.M{"$addToSet": bson.M{"following": targetID}})
}

func (s *userRepoImpl) RemoveFollowing(ctx context.Context, userID, targetID string) error {
	return s.updateEdge(ctx, userID, bson.M{"$pull": bson.M{"following": targetID}})
}

func (s *userRepoImpl) AddFollower(ctx context.Context, userID, followerID string) error {
	return s.updateEdge(ctx, userID, bson.M{"$addToSet": bson.M{"followers": followerID}})
}

func (s *userRepoImpl) RemoveFollower(ctx context.Context, userID, followerID string) error {
	return s.updateEdge(ctx, userID, bson.M{"$pull": bson.M{"followers": followerID}})
}

func (s *userRepoImpl) AddCoins(ctx context.Context, userID string, points int) (int, error) {
	objectID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return 0, mongo.ErrNoDocuments
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var user model.User
	err = s.col.FindOneAndUpdate(ctx,
		bson.M{"_id": objectID},
		bson.M{"$inc": bson.M{"coins": points}},
		opts,
	).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return 0, mongo.ErrNoDocuments
		}
		return 0, errors.Wrap(err, "add user coins")
	}
	return user.Coins, nil
}

func (s *userRepoImpl) updateEdge(ctx context.Context, userID string, update bson.M) error {
	objectID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return mongo.ErrNoDocuments
	}
	result, err := s.col.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		return errors.Wrap(err, "update follow edge")
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
