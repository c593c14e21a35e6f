package repository

import (
	"SkillNest/internal/model"
	"SkillNest/internal/pkg/util"
	"context"
	"regexp"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type SkillPostRepo interface {
	Insert(ctx context.Context, post *model.SkillPost) error
	GetByID(ctx context.Context, id string) (*model.SkillPost, error)
	GetByIDs(ctx context.Context, ids []string) ([]*model.SkillPost, error)
	// ReplaceVersioned 以乐观锁方式整体替换文档，版本冲突时返回 false
	ReplaceVersioned(ctx context.Context, post *model.SkillPost) (bool, error)
	Delete(ctx context.Context, id string) error
	DeleteByIDsAndOwner(ctx context.Context, ids []string, ownerID string) error
	FindAll(ctx context.Context) ([]*model.SkillPost, error)
	FindPage(ctx context.Context, pg util.Pageable) ([]*model.SkillPost, int64, error)
	FindByOwner(ctx context.Context, ownerID string, pg util.Pageable) ([]*model.SkillPost, int64, error)
	FindByTag(ctx context.Context, tag string, pg util.Pageable) ([]*model.SkillPost, int64, error)
	FindByTags(ctx context.Context, tags []string, pg util.Pageable) ([]*model.SkillPost, int64, error)
	SearchKeyword(ctx context.Context, keyword string, pg util.Pageable) ([]*model.SkillPost, int64, error)
	// AddLike/RemoveLike 以单文档原子更新维护 likes == len(liked_by)
	AddLike(ctx context.Context, postID, userID string) (bool, error)
	RemoveLike(ctx context.Context, postID, userID string) (bool, error)
}

type skillPostRepoImpl struct {
	col *mongo.Collection
}

func NewSkillPostRepo(db *mongo.Database) SkillPostRepo {
	return &skillPostRepoImpl{
		col: db.Collection("skill_posts"),
	}
}

func (s *skillPostRepoImpl) Insert(ctx context.Context, post *model.SkillPost) error {
	if post.ID.IsZero() {
		post.ID = primitive.NewObjectID()
	}
	_, err := s.col.InsertOne(ctx, post)
	return errors.Wrap(err, "insert skill post")
}

func (s *skillPostRepoImpl) GetByID(ctx context.Context, id string) (*model.SkillPost, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		// 非法ID等同于不存在
		return nil, mongo.ErrNoDocuments
	}

	var post model.SkillPost
	if err = s.col.FindOne(ctx, bson.M{"_id": objectID}).Decode(&post); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, mongo.ErrNoDocuments
		}
		return nil, errors.Wrap(err, "find skill post by id")
	}
	return &post, nil
}

func (s *skillPostRepoImpl) GetByIDs(ctx context.Context, ids []string) ([]*model.SkillPost, error) {
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
		return nil, errors.Wrap(err, "find skill posts by ids")
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var posts []*model.SkillPost
	if err = cursor.All(ctx, &posts); err != nil {
		return nil, errors.Wrap(err, "decode skill posts")
	}
	return posts, nil
}

func (s *skillPostRepoImpl) ReplaceVersioned(ctx context.Context, post *model.SkillPost) (bool, error) {
	loadedVersion := post.Version
	post.Version = loadedVersion + 1
	post.UpdatedAt = time.Now()

	result, err := s.col.ReplaceOne(ctx,
		bson.M{"_id": post.ID, "version": loadedVersion},
		post,
	)
	if err != nil {
		post.Version = loadedVersion
		return false, errors.Wrap(err, "replace skill post")
	}
	if result.MatchedCount == 0 {
		post.Version = loadedVersion
		return false, nil
	}
	return true, nil
}

func (s *skillPostRepoImpl) Delete(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return mongo.ErrNoDocuments
	}
	result, err := s.col.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return errors.Wrap(err, "delete skill post")
	}
	if result.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (s *skillPostRepoImpl) DeleteByIDsAndOwner(ctx context.Context, ids []string, ownerID string) error {
	objectIDs := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		objectID, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			continue
		}
		objectIDs = append(objectIDs, objectID)
	}

	_, err := s.col.DeleteMany(ctx, bson.M{
		"_id":      bson.M{"$in": objectIDs},
		"owner_id": ownerID,
	})
	return errors.Wrap(err, "batch delete skill posts")
}

func (s *skillPostRepoImpl) FindAll(ctx context.Context) ([]*model.SkillPost, error) {
	cursor, err := s.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, errors.Wrap(err, "find all skill posts")
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var posts []*model.SkillPost
	if err = cursor.All(ctx, &posts); err != nil {
		return nil, errors.Wrap(err, "decode skill posts")
	}
	return posts, nil
}

func (s *skillPostRepoImpl) FindPage(ctx context.Context, pg util.Pageable) ([]*model.SkillPost, int64, error) {
	return s.findPage(ctx, bson.M{}, pg)
}

func (s *skillPostRepoImpl) FindByOwner(ctx context.Context, ownerID string, pg util.Pageable) ([]*model.SkillPost, int64, error) {
	return s.findPage(ctx, bson.M{"owner_id": ownerID}, pg)
}

func (s *skillPostRepoImpl) FindByTag(ctx context.Context, tag string, pg util.Pageable) ([]*model.SkillPost, int64, error) {
	return s.findPage(ctx, bson.M{"tags": tag}, pg)
}

func (s *skillPostRepoImpl) FindByTags(ctx context.Context, tags []string, pg util.Pageable) ([]*model.SkillPost, int64, error) {
	return s.findPage(ctx, bson.M{"tags": bson.M{"$in": tags}}, pg)
}

func (s *skillPostRepoImpl) SearchKeyword(ctx context.Context, keyword string, pg util.Pageable) ([]*model.SkillPost, int64, error) {
	pattern := primitive.Regex{Pattern: regexp.QuoteMeta(keyword), Options: "i"}
	filter := bson.M{"$or": bson.A{
		bson.M{"title": pattern},
		bson.M{"description": pattern},
	}}
	return s.findPage(ctx, filter, pg)
}

func (s *skillPostRepoImpl) AddLike(ctx context.Context, postID, userID string) (bool, error) {
	objectID, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return false, mongo.ErrNoDocuments
	}

	// liked_by 中不含该用户时才加一，并发重复点赞不会破坏计数
	result, err := s.col.UpdateOne(ctx,
		bson.M{"_id": objectID, "liked_by": bson.M{"$ne": userID}},
		bson.M{
			"$addToSet": bson.M{"liked_by": userID},
			"$inc":      bson.M{"likes": 1},
		},
	)
	if err != nil {
		return false, errors.Wrap(err, "add like")
	}
	return result.MatchedCount == 1, nil
}

func (s *skillPostRepoImpl) RemoveLike(ctx context.Context, postID, userID string) (bool, error) {
	objectID, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return false, mongo.ErrNoDocuments
	}

	result, err := s.col.UpdateOne(ctx,
		bson.M{"_id": objectID, "liked_by": userID},
		bson.M{
			"$pull": bson.M{"liked_by": userID},
			"$inc":  bson.M{"likes": -1},
		},
	)
	if err != nil {
		return false, errors.Wrap(err, "remove like")
	}
	return result.MatchedCount == 1, nil
}

func (s *skillPostRepoImpl) findPage(ctx context.Context, filter bson.M, pg util.Pageable) ([]*model.SkillPost, int64, error) {
	pg = pg.Normalize()

	total, err := s.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, errors.Wrap(err, "count skill posts")
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
		return nil, 0, errors.Wrap(err, "find skill posts")
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var posts []*model.SkillPost
	if err = cursor.All(ctx, &posts); err != nil {
		return nil, 0, errors.Wrap(err, "decode skill posts")
	}
	return posts, total, nil
}
