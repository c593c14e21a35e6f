package handler

import (
	"SkillNest/internal/api/dto"
	"SkillNest/internal/pkg/response"
	"SkillNest/internal/service"

	"github.com/gin-gonic/gin"
)

type PostActionHandler struct {
	actionSvc service.PostActionService
}

func NewPostActionHandler(actionSvc service.PostActionService) *PostActionHandler {
	return &PostActionHandler{
		actionSvc: actionSvc,
	}
}

func (s *PostActionHandler) ToggleLike(c *gin.Context) {
	post, err := s.actionSvc.ToggleLike(c.Request.Context(), c.Param("id"), currentUserID(c), currentUserName(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, post)
}

func (s *PostActionHandler) AddComment(c *gin.Context) {
	var commentDTO dto.CommentCreateDTO
	if err := c.ShouldBind(&commentDTO); err != nil {
		response.Error(c, err)
		return
	}
	post, err := s.actionSvc.AddComment(c.Request.Context(), c.Param("id"), currentUserID(c), currentUserName(c), &commentDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, post)
}

func (s *PostActionHandler) UpdateComment(c *gin.Context) {
	var updateDTO dto.CommentUpdateDTO
	if err := c.ShouldBind(&updateDTO); err != nil {
		response.Error(c, err)
		return
	}
	post, err := s.actionSvc.UpdateComment(c.Request.Context(), c.Param("id"), c.Param("commentId"), currentUserID(c), &updateDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, post)
}

func (s *PostActionHandler) DeleteComment(c *gin.Context) {
	post, err := s.actionSvc.DeleteComment(c.Request.Context(), c.Param("id"), c.Param("commentId"), currentUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, post)
}
