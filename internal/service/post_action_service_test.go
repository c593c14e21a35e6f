package service

import (
	"SkillNest/internal/api/dto"
	"SkillNest/internal/model"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newActionFixture() (*fakeSkillPostRepo, *fakeNotificationRepo, PostActionService, string) {
	postRepo := newFakeSkillPostRepo()
	notificationRepo := newFakeNotificationRepo()
	notifySvc := NewNotificationService(notificationRepo)
	actionSvc := NewPostActionService(postRepo, notifySvc)

	post := &model.SkillPost{
		OwnerID:   "owner-1",
		OwnerName: "Owner",
		Title:     "吉他入门",
		Content:   "从持琴姿势开始",
		LikedBy:   []string{},
		Comments:  []model.Comment{},
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	_ = postRepo.Insert(context.Background(), post)
	return postRepo, notificationRepo, actionSvc, post.ID.Hex()
}

func TestToggleLike(t *testing.T) {
	ctx := context.Background()

	t.Run("like_then_unlike_restores_state", func(t *testing.T) {
		postRepo, _, actionSvc, postID := newActionFixture()

		liked, err := actionSvc.ToggleLike(ctx, postID, "user-2", "Bob")
		require.NoError(t, err)
		require.Equal(t, 1, liked.Likes)
		require.True(t, liked.LikedByMe)

		stored, _ := postRepo.GetByID(ctx, postID)
		require.Equal(t, len(stored.LikedBy), stored.Likes)

		unliked, err := actionSvc.ToggleLike(ctx, postID, "user-2", "Bob")
		require.NoError(t, err)
		require.Equal(t, 0, unliked.Likes)
		require.False(t, unliked.LikedByMe)

		stored, _ = postRepo.GetByID(ctx, postID)
		require.Empty(t, stored.LikedBy)
		require.Equal(t, int64(0), stored.Version) // likes 走原子更新，不触碰版本号
	})

	t.Run("like_notifies_post_owner", func(t *testing.T) {
		_, notificationRepo, actionSvc, postID := newActionFixture()

		_, err := actionSvc.ToggleLike(ctx, postID, "user-2", "Bob")
		require.NoError(t, err)

		require.Len(t, notificationRepo.notifications, 1)
		notification := notificationRepo.notifications[0]
		require.Equal(t, "owner-1", notification.RecipientID)
		require.Equal(t, model.NotificationTypeLike, notification.Type)
		require.Equal(t, postID, notification.ResourceID)
	})

	t.Run("own_post_like_is_silent", func(t *testing.T) {
		_, notificationRepo, actionSvc, postID := newActionFixture()

		_, err := actionSvc.ToggleLike(ctx, postID, "owner-1", "Owner")
		require.NoError(t, err)
		require.Empty(t, notificationRepo.notifications)
	})

	t.Run("unlike_does_not_notify", func(t *testing.T) {
		_, notificationRepo, actionSvc, postID := newActionFixture()

		_, _ = actionSvc.ToggleLike(ctx, postID, "user-2", "Bob")
		_, _ = actionSvc.ToggleLike(ctx, postID, "user-2", "Bob")
		require.Len(t, notificationRepo.notifications, 1)
	})

	t.Run("missing_post", func(t *testing.T) {
		_, _, actionSvc, _ := newActionFixture()

		_, err := actionSvc.ToggleLike(ctx, "64b000000000000000000000", "user-2", "Bob")
		require.ErrorIs(t, err, ErrPostNotFound)
	})
}

func TestAddComment(t *testing.T) {
	ctx := context.Background()

	t.Run("root_comment_appended", func(t *testing.T) {
		postRepo, notificationRepo, actionSvc, postID := newActionFixture()

		result, err := actionSvc.AddComment(ctx, postID, "user-2", "Bob", &dto.CommentCreateDTO{Content: "学到了"})
		require.NoError(t, err)
		require.Len(t, result.Comments, 1)
		require.Equal(t, "学到了", result.Comments[0].Content)
		require.NotEmpty(t, result.Comments[0].ID)

		stored, _ := postRepo.GetByID(ctx, postID)
		require.Len(t, stored.Comments, 1)

		require.Len(t, notificationRepo.notifications, 1)
		require.Equal(t, model.NotificationTypeComment, notificationRepo.notifications[0].Type)
		require.Equal(t, "owner-1", notificationRepo.notifications[0].RecipientID)
	})

	t.Run("reply_nests_under_parent", func(t *testing.T) {
		postRepo, _, actionSvc, postID := newActionFixture()

		root, err := actionSvc.AddComment(ctx, postID, "user-2", "Bob", &dto.CommentCreateDTO{Content: "学到了"})
		require.NoError(t, err)
		parentID := root.Comments[0].ID

		result, err := actionSvc.AddComment(ctx, postID, "user-3", "Carol", &dto.CommentCreateDTO{
			Content:         "我也是",
			ParentCommentID: parentID,
		})
		require.NoError(t, err)
		require.Len(t, result.Comments, 1)
		require.Len(t, result.Comments[0].Replies, 1)
		require.Equal(t, parentID, result.Comments[0].Replies[0].ParentCommentID)

		stored, _ := postRepo.GetByID(ctx, postID)
		require.Len(t, stored.Comments[0].Replies, 1)
	})

	t.Run("reply_notifies_comment_author_and_post_owner", func(t *testing.T) {
		_, notificationRepo, actionSvc, postID := newActionFixture()

		root, _ := actionSvc.AddComment(ctx, postID, "user-2", "Bob", &dto.CommentCreateDTO{Content: "学到了"})
		parentID := root.Comments[0].ID
		notificationRepo.notifications = nil

		_, err := actionSvc.AddComment(ctx, postID, "user-3", "Carol", &dto.CommentCreateDTO{
			Content:         "我也是",
			ParentCommentID: parentID,
		})
		require.NoError(t, err)

		require.Len(t, notificationRepo.notifications, 2)
		require.Equal(t, model.NotificationTypeCommentReply, notificationRepo.notifications[0].Type)
		require.Equal(t, "user-2", notificationRepo.notifications[0].RecipientID)
		require.Equal(t, model.NotificationTypeComment, notificationRepo.notifications[1].Type)
		require.Equal(t, "owner-1", notificationRepo.notifications[1].RecipientID)
	})

	t.Run("reply_to_owner_comment_sends_single_notification", func(t *testing.T) {
		_, notificationRepo, actionSvc, postID := newActionFixture()

		root, _ := actionSvc.AddComment(ctx, postID, "owner-1", "Owner", &dto.CommentCreateDTO{Content: "欢迎提问"})
		parentID := root.Comments[0].ID
		notificationRepo.notifications = nil

		_, err := actionSvc.AddComment(ctx, postID, "user-3", "Carol", &dto.CommentCreateDTO{
			Content:         "有问题",
			ParentCommentID: parentID,
		})
		require.NoError(t, err)

		// 帖主即被回复者，只收一条回复通知
		require.Len(t, notificationRepo.notifications, 1)
		require.Equal(t, model.NotificationTypeCommentReply, notificationRepo.notifications[0].Type)
		require.Equal(t, "owner-1", notificationRepo.notifications[0].RecipientID)
	})

	t.Run("missing_parent_leaves_tree_unchanged", func(t *testing.T) {
		postRepo, _, actionSvc, postID := newActionFixture()

		_, err := actionSvc.AddComment(ctx, postID, "user-2", "Bob", &dto.CommentCreateDTO{
			Content:         "挂不上去",
			ParentCommentID: "no-such-comment",
		})
		require.ErrorIs(t, err, ErrCommentNotFound)

		stored, _ := postRepo.GetByID(ctx, postID)
		require.Empty(t, stored.Comments)
	})
}

func TestUpdateComment(t *testing.T) {
	ctx := context.Background()

	t.Run("author_updates_nested_comment", func(t *testing.T) {
		_, _, actionSvc, postID := newActionFixture()

		root, _ := actionSvc.AddComment(ctx, postID, "user-2", "Bob", &dto.CommentCreateDTO{Content: "一楼"})
		reply, _ := actionSvc.AddComment(ctx, postID, "user-3", "Carol", &dto.CommentCreateDTO{
			Content:         "二楼",
			ParentCommentID: root.Comments[0].ID,
		})
		replyID := reply.Comments[0].Replies[0].ID

		result, err := actionSvc.UpdateComment(ctx, postID, replyID, "user-3", &dto.CommentUpdateDTO{Content: "二楼（已编辑）"})
		require.NoError(t, err)
		require.Equal(t, "二楼（已编辑）", result.Comments[0].Replies[0].Content)
	})

	t.Run("post_owner_can_moderate_content", func(t *testing.T) {
		_, _, actionSvc, postID := newActionFixture()

		root, _ := actionSvc.AddComment(ctx, postID, "user-2", "Bob", &dto.CommentCreateDTO{Content: "含不当用语"})

		result, err := actionSvc.UpdateComment(ctx, postID, root.Comments[0].ID, "owner-1", &dto.CommentUpdateDTO{Content: "（内容已处理）"})
		require.NoError(t, err)
		require.Equal(t, "（内容已处理）", result.Comments[0].Content)
		require.Equal(t, "user-2", result.Comments[0].AuthorID) // 作者归属不变
	})

	t.Run("stranger_rejected", func(t *testing.T) {
		_, _, actionSvc, postID := newActionFixture()

		root, _ := actionSvc.AddComment(ctx, postID, "user-2", "Bob", &dto.CommentCreateDTO{Content: "一楼"})

		_, err := actionSvc.UpdateComment(ctx, postID, root.Comments[0].ID, "user-3", &dto.CommentUpdateDTO{Content: "篡改"})
		require.ErrorIs(t, err, UnauthorizedError)
	})

	t.Run("missing_comment", func(t *testing.T) {
		_, _, actionSvc, postID := newActionFixture()

		_, err := actionSvc.UpdateComment(ctx, postID, "nope", "user-2", &dto.CommentUpdateDTO{Content: "x"})
		require.ErrorIs(t, err, ErrCommentNotFound)
	})
}

func TestDeleteComment(t *testing.T) {
	ctx := context.Background()

	t.Run("removes_subtree", func(t *testing.T) {
		postRepo, _, actionSvc, postID := newActionFixture()

		root, _ := actionSvc.AddComment(ctx, postID, "user-2", "Bob", &dto.CommentCreateDTO{Content: "一楼"})
		rootID := root.Comments[0].ID
		_, _ = actionSvc.AddComment(ctx, postID, "user-3", "Carol", &dto.CommentCreateDTO{
			Content:         "二楼",
			ParentCommentID: rootID,
		})

		result, err := actionSvc.DeleteComment(ctx, postID, rootID, "user-2")
		require.NoError(t, err)
		require.Empty(t, result.Comments)

		stored, _ := postRepo.GetByID(ctx, postID)
		require.Empty(t, stored.Comments)
	})

	t.Run("post_owner_can_moderate", func(t *testing.T) {
		_, _, actionSvc, postID := newActionFixture()

		root, _ := actionSvc.AddComment(ctx, postID, "user-2", "Bob", &dto.CommentCreateDTO{Content: "广告"})

		result, err := actionSvc.DeleteComment(ctx, postID, root.Comments[0].ID, "owner-1")
		require.NoError(t, err)
		require.Empty(t, result.Comments)
	})

	t.Run("stranger_rejected", func(t *testing.T) {
		_, _, actionSvc, postID := newActionFixture()

		root, _ := actionSvc.AddComment(ctx, postID, "user-2", "Bob", &dto.CommentCreateDTO{Content: "一楼"})

		_, err := actionSvc.DeleteComment(ctx, postID, root.Comments[0].ID, "user-9")
		require.ErrorIs(t, err, UnauthorizedError)
	})
}

func TestCommentTreeHelpers(t *testing.T) {
	tree := []model.Comment{
		{ID: "a", Replies: []model.Comment{
			{ID: "a1", Replies: []model.Comment{{ID: "a1x"}}},
			{ID: "a2"},
		}},
		{ID: "b"},
	}

	t.Run("find_preorder", func(t *testing.T) {
		require.Equal(t, "a1x", findComment(tree, "a1x").ID)
		require.Equal(t, "b", findComment(tree, "b").ID)
		require.Nil(t, findComment(tree, "zz"))
	})

	t.Run("remove_inner_node", func(t *testing.T) {
		local := []model.Comment{
			{ID: "a", Replies: []model.Comment{
				{ID: "a1", Replies: []model.Comment{{ID: "a1x"}}},
				{ID: "a2"},
			}},
		}
		require.True(t, removeComment(&local, "a1"))
		require.Nil(t, findComment(local, "a1"))
		require.Nil(t, findComment(local, "a1x"))
		require.NotNil(t, findComment(local, "a2"))
	})
}
