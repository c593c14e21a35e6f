package handler

import (
	"SkillNest/internal/model"
	"SkillNest/internal/pkg/response"
	"SkillNest/internal/service"

	"github.com/gin-gonic/gin"
)

type SocialHandler struct {
	socialSvc service.SocialService
}

func NewSocialHandler(socialSvc service.SocialService) *SocialHandler {
	return &SocialHandler{
		socialSvc: socialSvc,
	}
}

func (s *SocialHandler) Follow(c *gin.Context) {
	if err := s.socialSvc.Follow(c.Request.Context(), currentUserID(c), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *SocialHandler) Unfollow(c *gin.Context) {
	if err := s.socialSvc.Unfollow(c.Request.Context(), currentUserID(c), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *SocialHandler) IsFollowing(c *gin.Context) {
	result, err := s.socialSvc.IsFollowing(c.Request.Context(), currentUserID(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

func (s *SocialHandler) FollowersAndFollowing(c *gin.Context) {
	userID := c.Param("id")
	if userID == "" {
		userID = currentUserID(c)
	}
	result, err := s.socialSvc.GetFollowersAndFollowing(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

func (s *SocialHandler) AwardCoins(c *gin.Context) {
	balance, err := s.socialSvc.AwardCoins(c.Request.Context(), currentUserID(c), model.CoinType(c.Param("type")))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, balance)
}

func (s *SocialHandler) CoinBalance(c *gin.Context) {
	balance, err := s.socialSvc.GetCoinBalance(c.Request.Context(), currentUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, balance)
}
