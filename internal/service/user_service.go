package service

import (
	"SkillNest/internal/api/dto"
	"SkillNest/internal/model"
	"SkillNest/internal/pkg/consts"
	"SkillNest/internal/pkg/redis"
	"SkillNest/internal/pkg/security"
	"context"
	"log/slog"
	"time"

	"github.com/jinzhu/copier"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/mongo"

	"SkillNest/internal/repository"
)

type UserService interface {
	Register(ctx context.Context, req *dto.RegisterDTO) (*dto.UserSimpleDTO, error)
	Login(ctx context.Context, req *dto.CredentialDTO) (*dto.LoginResultDTO, error)
	// Logout 将当前 Token 的签名拉黑直到其自然过期
	Logout(ctx context.Context, token string) error
	GetProfile(ctx context.Context, userID string) (*dto.UserSimpleDTO, error)
	UpdateName(ctx context.Context, userID, name string) (*dto.UserSimpleDTO, error)
}

type userServiceImpl struct {
	userRepo repository.UserRepo
}

func NewUserService(userRepo repository.UserRepo) UserService {
	return &userServiceImpl{
		userRepo: userRepo,
	}
}

func (s *userServiceImpl) Register(ctx context.Context, req *dto.RegisterDTO) (*dto.UserSimpleDTO, error) {
	exists, err := s.userRepo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrUserEmailExist
	}

	hashed, err := security.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &model.User{
		Name:      req.Name,
		Username:  req.Username,
		Email:     req.Email,
		Password:  hashed,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err = s.userRepo.Insert(ctx, user); err != nil {
		return nil, err
	}
	return toUserSimpleDTO(user), nil
}

func (s *userServiceImpl) Login(ctx context.Context, req *dto.CredentialDTO) (*dto.LoginResultDTO, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		// 不区分"账号不存在"和"密码不对"，避免探测注册邮箱
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrPasswordIncorrect
		}
		return nil, err
	}
	if !security.CheckPasswordHash(req.Password, user.Password) {
		return nil, ErrPasswordIncorrect
	}

	token, err := security.GenerateToken(user.ID.Hex(), user.Name)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResultDTO{
		Token: token,
		User:  toUserSimpleDTO(user),
	}, nil
}

func (s *userServiceImpl) Logout(ctx context.Context, token string) error {
	signature, err := security.ExtractSignature(token)
	if err != nil {
		slog.WarnContext(ctx, "logout with malformed token", "err", err)
		return nil
	}
	return redis.SetWithExpiration(ctx, consts.TokenBlacklistKey+signature, "1", security.JWTExpirationTime)
}

func (s *userServiceImpl) GetProfile(ctx context.Context, userID string) (*dto.UserSimpleDTO, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return toUserSimpleDTO(user), nil
}

func (s *userServiceImpl) UpdateName(ctx context.Context, userID, name string) (*dto.UserSimpleDTO, error) {
	if err := s.userRepo.UpdateName(ctx, userID, name); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return s.GetProfile(ctx, userID)
}

func toUserSimpleDTO(user *model.User) *dto.UserSimpleDTO {
	result := &dto.UserSimpleDTO{}
	_ = copier.Copy(result, user)
	result.ID = user.ID.Hex()
	return result
}
