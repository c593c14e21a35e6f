package handler

import (
	"SkillNest/internal/api/dto"
	"SkillNest/internal/api/middleware"
	"SkillNest/internal/pkg/response"
	"SkillNest/internal/service"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userSvc service.UserService
}

func NewUserHandler(userSvc service.UserService) *UserHandler {
	return &UserHandler{
		userSvc: userSvc,
	}
}

func (s *UserHandler) Register(c *gin.Context) {
	var registerDTO dto.RegisterDTO
	if err := c.ShouldBind(&registerDTO); err != nil {
		response.Error(c, err)
		return
	}
	user, err := s.userSvc.Register(c.Request.Context(), &registerDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, user)
}

func (s *UserHandler) Login(c *gin.Context) {
	var loginDTO dto.CredentialDTO
	if err := c.ShouldBind(&loginDTO); err != nil {
		response.Error(c, err)
		return
	}
	result, err := s.userSvc.Login(c.Request.Context(), &loginDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

func (s *UserHandler) Logout(c *gin.Context) {
	token := c.GetString(middleware.ContextTokenKey)
	if err := s.userSvc.Logout(c.Request.Context(), token); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *UserHandler) GetMe(c *gin.Context) {
	user, err := s.userSvc.GetProfile(c.Request.Context(), currentUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, user)
}

func (s *UserHandler) GetUser(c *gin.Context) {
	user, err := s.userSvc.GetProfile(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, user)
}

func (s *UserHandler) UpdateName(c *gin.Context) {
	var updateDTO dto.UpdateNameDTO
	if err := c.ShouldBind(&updateDTO); err != nil {
		response.Error(c, err)
		return
	}
	user, err := s.userSvc.UpdateName(c.Request.Context(), currentUserID(c), updateDTO.Name)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, user)
}
