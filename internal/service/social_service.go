package service

import (
	"SkillNest/internal/api/dto"
	"SkillNest/internal/model"
	"context"
	"log/slog"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/sync/errgroup"

	"SkillNest/internal/repository"
)

// SocialService 关注关系与金币奖励
type SocialService interface {
	Follow(ctx context.Context, actorID, targetID string) error
	Unfollow(ctx context.Context, actorID, targetID string) error
	IsFollowing(ctx context.Context, actorID, targetID string) (*dto.IsFollowingDTO, error)
	// GetFollowersAndFollowing 解析两个方向的完整用户档案，任一ID悬空则整体失败
	GetFollowersAndFollowing(ctx context.Context, userID string) (*dto.FollowListDTO, error)
	// AwardCoins 按动作类型给用户加金币，返回新余额
	AwardCoins(ctx context.Context, userID string, coinType model.CoinType) (*dto.CoinBalanceDTO, error)
	GetCoinBalance(ctx context.Context, userID string) (*dto.CoinBalanceDTO, error)
}

type socialServiceImpl struct {
	userRepo            repository.UserRepo
	notificationService NotificationService
}

func NewSocialService(userRepo repository.UserRepo, notificationService NotificationService) SocialService {
	return &socialServiceImpl{
		userRepo:            userRepo,
		notificationService: notificationService,
	}
}

func (s *socialServiceImpl) Follow(ctx context.Context, actorID, targetID string) error {
	if actorID == targetID {
		return ErrFollowSelf
	}

	actor, err := s.loadUser(ctx, actorID)
	if err != nil {
		return err
	}
	if _, err = s.loadUser(ctx, targetID); err != nil {
		return err
	}
	if containsID(actor.Following, targetID) {
		return ErrAlreadyFollowing
	}

	// 两个方向是两次独立的单文档写，第二笔失败时留痕供对账，不回滚第一笔
	if err = s.userRepo.AddFollowing(ctx, actorID, targetID); err != nil {
		return err
	}
	if err = s.userRepo.AddFollower(ctx, targetID, actorID); err != nil {
		slog.ErrorContext(ctx, "follow edge half applied", "actor_id", actorID, "target_id", targetID, "err", err)
		return err
	}

	// 奖励与通知是旁路副作用，失败不影响关注结果
	if _, err = s.userRepo.AddCoins(ctx, targetID, model.CoinTypeFollow.Points()); err != nil {
		slog.WarnContext(ctx, "follow coin award failed", "target_id", targetID, "err", err)
	}
	if err = s.notificationService.CreateSystem(ctx, targetID, model.NotificationTypeFollow, actor.Name+" 关注了你"); err != nil {
		slog.WarnContext(ctx, "follow notification failed", "target_id", targetID, "err", err)
	}
	return nil
}

func (s *socialServiceImpl) Unfollow(ctx context.Context, actorID, targetID string) error {
	if actorID == targetID {
		return ErrUnfollowSelf
	}

	actor, err := s.loadUser(ctx, actorID)
	if err != nil {
		return err
	}
	if _, err = s.loadUser(ctx, targetID); err != nil {
		return err
	}
	if !containsID(actor.Following, targetID) {
		return ErrNotFollowing
	}

	if err = s.userRepo.RemoveFollowing(ctx, actorID, targetID); err != nil {
		return err
	}
	if err = s.userRepo.RemoveFollower(ctx, targetID, actorID); err != nil {
		slog.ErrorContext(ctx, "unfollow edge half applied", "actor_id", actorID, "target_id", targetID, "err", err)
		return err
	}
	return nil
}

func (s *socialServiceImpl) IsFollowing(ctx context.Context, actorID, targetID string) (*dto.IsFollowingDTO, error) {
	actor, err := s.loadUser(ctx, actorID)
	if err != nil {
		return nil, err
	}
	return &dto.IsFollowingDTO{Following: containsID(actor.Following, targetID)}, nil
}

func (s *socialServiceImpl) GetFollowersAndFollowing(ctx context.Context, userID string) (*dto.FollowListDTO, error) {
	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := &dto.FollowListDTO{}
	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		list, err := s.resolveProfiles(groupCtx, user.Followers)
		result.Followers = list
		return err
	})
	group.Go(func() error {
		list, err := s.resolveProfiles(groupCtx, user.Following)
		result.Followings = list
		return err
	})
	if err = group.Wait(); err != nil {
		return nil, err
	}
	return result, nil
}

func (s *socialServiceImpl) AwardCoins(ctx context.Context, userID string, coinType model.CoinType) (*dto.CoinBalanceDTO, error) {
	if !coinType.Valid() {
		return nil, ErrCoinTypeInvalid
	}
	balance, err := s.userRepo.AddCoins(ctx, userID, coinType.Points())
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &dto.CoinBalanceDTO{UserID: userID, Coins: balance}, nil
}

func (s *socialServiceImpl) GetCoinBalance(ctx context.Context, userID string) (*dto.CoinBalanceDTO, error) {
	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &dto.CoinBalanceDTO{UserID: userID, Coins: user.Coins}, nil
}

// resolveProfiles 按存储顺序解析ID列表，任何一个解析不出即报错
func (s *socialServiceImpl) resolveProfiles(ctx context.Context, ids []string) ([]*dto.UserSimpleDTO, error) {
	if len(ids) == 0 {
		return []*dto.UserSimpleDTO{}, nil
	}

	users, err := s.userRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*model.User, len(users))
	for _, user := range users {
		byID[user.ID.Hex()] = user
	}

	result := make([]*dto.UserSimpleDTO, 0, len(ids))
	for _, id := range ids {
		user, ok := byID[id]
		if !ok {
			return nil, ErrUserNotFound
		}
		result = append(result, toUserSimpleDTO(user))
	}
	return result, nil
}

func (s *socialServiceImpl) loadUser(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func containsID(ids []string, id string) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}
