package service

import (
	"SkillNest/internal/model"
	"SkillNest/internal/pkg/util"
	"context"
	"sort"
	"strings"
	"time"

	"github.com/jinzhu/copier"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// 内存版仓储，行为对齐 Mongo 实现：读写都走深拷贝，乐观锁按版本号判定

type fakeSkillPostRepo struct {
	posts map[string]*model.SkillPost
	order []string
}

func newFakeSkillPostRepo() *fakeSkillPostRepo {
	return &fakeSkillPostRepo{posts: map[string]*model.SkillPost{}}
}

func clonePost(post *model.SkillPost) *model.SkillPost {
	cloned := &model.SkillPost{}
	_ = copier.CopyWithOption(cloned, post, copier.Option{DeepCopy: true})
	return cloned
}

func (f *fakeSkillPostRepo) Insert(_ context.Context, post *model.SkillPost) error {
	if post.ID.IsZero() {
		post.ID = primitive.NewObjectID()
	}
	id := post.ID.Hex()
	f.posts[id] = clonePost(post)
	f.order = append(f.order, id)
	return nil
}

func (f *fakeSkillPostRepo) GetByID(_ context.Context, id string) (*model.SkillPost, error) {
	post, ok := f.posts[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return clonePost(post), nil
}

func (f *fakeSkillPostRepo) GetByIDs(_ context.Context, ids []string) ([]*model.SkillPost, error) {
	var result []*model.SkillPost
	for _, id := range ids {
		if post, ok := f.posts[id]; ok {
			result = append(result, clonePost(post))
		}
	}
	return result, nil
}

func (f *fakeSkillPostRepo) ReplaceVersioned(_ context.Context, post *model.SkillPost) (bool, error) {
	stored, ok := f.posts[post.ID.Hex()]
	if !ok || stored.Version != post.Version {
		return false, nil
	}
	post.Version++
	post.UpdatedAt = time.Now()
	f.posts[post.ID.Hex()] = clonePost(post)
	return true, nil
}

func (f *fakeSkillPostRepo) Delete(_ context.Context, id string) error {
	delete(f.posts, id)
	f.removeFromOrder(id)
	return nil
}

func (f *fakeSkillPostRepo) DeleteByIDsAndOwner(_ context.Context, ids []string, ownerID string) error {
	for _, id := range ids {
		if post, ok := f.posts[id]; ok && post.OwnerID == ownerID {
			delete(f.posts, id)
			f.removeFromOrder(id)
		}
	}
	return nil
}

func (f *fakeSkillPostRepo) FindAll(_ context.Context) ([]*model.SkillPost, error) {
	result := make([]*model.SkillPost, 0, len(f.order))
	for _, id := range f.order {
		result = append(result, clonePost(f.posts[id]))
	}
	return result, nil
}

func (f *fakeSkillPostRepo) FindPage(ctx context.Context, pg util.Pageable) ([]*model.SkillPost, int64, error) {
	all, _ := f.FindAll(ctx)
	return f.page(all, pg)
}

func (f *fakeSkillPostRepo) FindByOwner(ctx context.Context, ownerID string, pg util.Pageable) ([]*model.SkillPost, int64, error) {
	all, _ := f.FindAll(ctx)
	var matched []*model.SkillPost
	for _, post := range all {
		if post.OwnerID == ownerID {
			matched = append(matched, post)
		}
	}
	return f.page(matched, pg)
}

func (f *fakeSkillPostRepo) FindByTag(ctx context.Context, tag string, pg util.Pageable) ([]*model.SkillPost, int64, error) {
	return f.FindByTags(ctx, []string{tag}, pg)
}

func (f *fakeSkillPostRepo) FindByTags(ctx context.Context, tags []string, pg util.Pageable) ([]*model.SkillPost, int64, error) {
	all, _ := f.FindAll(ctx)
	var matched []*model.SkillPost
	for _, post := range all {
		for _, tag := range tags {
			found := false
			for _, candidate := range post.Tags {
				if candidate == tag {
					found = true
					break
				}
			}
			if found {
				matched = append(matched, post)
				break
			}
		}
	}
	return f.page(matched, pg)
}

func (f *fakeSkillPostRepo) SearchKeyword(ctx context.Context, keyword string, pg util.Pageable) ([]*model.SkillPost, int64, error) {
	all, _ := f.FindAll(ctx)
	lowered := strings.ToLower(keyword)
	var matched []*model.SkillPost
	for _, post := range all {
		if strings.Contains(strings.ToLower(post.Title), lowered) ||
			strings.Contains(strings.ToLower(post.Description), lowered) {
			matched = append(matched, post)
		}
	}
	return f.page(matched, pg)
}

func (f *fakeSkillPostRepo) AddLike(_ context.Context, postID, userID string) (bool, error) {
	post, ok := f.posts[postID]
	if !ok {
		return false, nil
	}
	for _, id := range post.LikedBy {
		if id == userID {
			return false, nil
		}
	}
	post.LikedBy = append(post.LikedBy, userID)
	post.Likes++
	return true, nil
}

func (f *fakeSkillPostRepo) RemoveLike(_ context.Context, postID, userID string) (bool, error) {
	post, ok := f.posts[postID]
	if !ok {
		return false, nil
	}
	for i, id := range post.LikedBy {
		if id == userID {
			post.LikedBy = append(post.LikedBy[:i], post.LikedBy[i+1:]...)
			post.Likes--
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeSkillPostRepo) page(posts []*model.SkillPost, pg util.Pageable) ([]*model.SkillPost, int64, error) {
	pg = pg.Normalize()
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})
	return util.PageSlice(posts, pg), int64(len(posts)), nil
}

func (f *fakeSkillPostRepo) removeFromOrder(id string) {
	for i, candidate := range f.order {
		if candidate == id {
			f.order = append(f.order[:i], f.order[i+1:]...)
			return
		}
	}
}

type fakeUserRepo struct {
	users map[string]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*model.User{}}
}

func cloneUser(user *model.User) *model.User {
	cloned := &model.User{}
	_ = copier.CopyWithOption(cloned, user, copier.Option{DeepCopy: true})
	return cloned
}

func (f *fakeUserRepo) Insert(_ context.Context, user *model.User) error {
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	if user.Followers == nil {
		user.Followers = []string{}
	}
	if user.Following == nil {
		user.Following = []string{}
	}
	f.users[user.ID.Hex()] = cloneUser(user)
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return cloneUser(user), nil
}

func (f *fakeUserRepo) GetByIDs(_ context.Context, ids []string) ([]*model.User, error) {
	var result []*model.User
	for _, id := range ids {
		if user, ok := f.users[id]; ok {
			result = append(result, cloneUser(user))
		}
	}
	return result, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			return cloneUser(user), nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := f.GetByEmail(ctx, email)
	if err != nil {
		return false, nil
	}
	return true, nil
}

func (f *fakeUserRepo) UpdateName(_ context.Context, id, name string) error {
	user, ok := f.users[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	user.Name = name
	user.UpdatedAt = time.Now()
	return nil
}

func (f *fakeUserRepo) AddFollowing(_ context.Context, userID, targetID string) error {
	return f.addToSet(userID, targetID, true)
}

func (f *fakeUserRepo) RemoveFollowing(_ context.Context, userID, targetID string) error {
	return f.pull(userID, targetID, true)
}

func (f *fakeUserRepo) AddFollower(_ context.Context, userID, followerID string) error {
	return f.addToSet(userID, followerID, false)
}

func (f *fakeUserRepo) RemoveFollower(_ context.Context, userID, followerID string) error {
	return f.pull(userID, followerID, false)
}

func (f *fakeUserRepo) AddCoins(_ context.Context, userID string, points int) (int, error) {
	user, ok := f.users[userID]
	if !ok {
		return 0, mongo.ErrNoDocuments
	}
	user.Coins += points
	return user.Coins, nil
}

func (f *fakeUserRepo) addToSet(userID, memberID string, following bool) error {
	user, ok := f.users[userID]
	if !ok {
		return mongo.ErrNoDocuments
	}
	list := &user.Followers
	if following {
		list = &user.Following
	}
	for _, id := range *list {
		if id == memberID {
			return nil
		}
	}
	*list = append(*list, memberID)
	return nil
}

func (f *fakeUserRepo) pull(userID, memberID string, following bool) error {
	user, ok := f.users[userID]
	if !ok {
		return mongo.ErrNoDocuments
	}
	list := &user.Followers
	if following {
		list = &user.Following
	}
	for i, id := range *list {
		if id == memberID {
			*list = append((*list)[:i], (*list)[i+1:]...)
			return nil
		}
	}
	return nil
}

type fakeNotificationRepo struct {
	notifications []*model.Notification
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{}
}

func (f *fakeNotificationRepo) Insert(_ context.Context, notification *model.Notification) error {
	if notification.ID.IsZero() {
		notification.ID = primitive.NewObjectID()
	}
	stored := *notification
	f.notifications = append(f.notifications, &stored)
	return nil
}

func (f *fakeNotificationRepo) GetByID(_ context.Context, id string) (*model.Notification, error) {
	for _, notification := range f.notifications {
		if notification.ID.Hex() == id {
			copied := *notification
			return &copied, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeNotificationRepo) FindByRecipient(_ context.Context, recipientID string, pg util.Pageable) ([]*model.Notification, int64, error) {
	matched := f.byRecipient(recipientID, false)
	pg = pg.Normalize()
	return util.PageSlice(matched, pg), int64(len(matched)), nil
}

func (f *fakeNotificationRepo) FindUnreadByRecipient(_ context.Context, recipientID string) ([]*model.Notification, error) {
	return f.byRecipient(recipientID, true), nil
}

func (f *fakeNotificationRepo) CountUnread(_ context.Context, recipientID string) (int64, error) {
	return int64(len(f.byRecipient(recipientID, true))), nil
}

func (f *fakeNotificationRepo) MarkRead(_ context.Context, id string) error {
	for _, notification := range f.notifications {
		if notification.ID.Hex() == id {
			notification.Read = true
			return nil
		}
	}
	return mongo.ErrNoDocuments
}

func (f *fakeNotificationRepo) MarkAllRead(_ context.Context, recipientID string) (int64, error) {
	var modified int64
	for _, notification := range f.notifications {
		if notification.RecipientID == recipientID && !notification.Read {
			notification.Read = true
			modified++
		}
	}
	return modified, nil
}

func (f *fakeNotificationRepo) Delete(_ context.Context, id string) (int64, error) {
	for i, notification := range f.notifications {
		if notification.ID.Hex() == id {
			f.notifications = append(f.notifications[:i], f.notifications[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (f *fakeNotificationRepo) byRecipient(recipientID string, unreadOnly bool) []*model.Notification {
	var matched []*model.Notification
	for _, notification := range f.notifications {
		if notification.RecipientID != recipientID {
			continue
		}
		if unreadOnly && notification.Read {
			continue
		}
		copied := *notification
		matched = append(matched, &copied)
	}
	return matched
}
