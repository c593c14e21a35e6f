package handler

import (
	"SkillNest/internal/pkg/response"
	"SkillNest/internal/service"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	notifySvc service.NotificationService
}

func NewNotificationHandler(notifySvc service.NotificationService) *NotificationHandler {
	return &NotificationHandler{
		notifySvc: notifySvc,
	}
}

func (s *NotificationHandler) List(c *gin.Context) {
	page, err := s.notifySvc.GetNotifications(c.Request.Context(), currentUserID(c), pageableFrom(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, page)
}

func (s *NotificationHandler) ListUnread(c *gin.Context) {
	list, err := s.notifySvc.GetUnreadNotifications(c.Request.Context(), currentUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, list)
}

func (s *NotificationHandler) UnreadCount(c *gin.Context) {
	count, err := s.notifySvc.GetUnreadCount(c.Request.Context(), currentUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, count)
}

func (s *NotificationHandler) MarkRead(c *gin.Context) {
	if err := s.notifySvc.MarkRead(c.Request.Context(), currentUserID(c), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *NotificationHandler) MarkAllRead(c *gin.Context) {
	if err := s.notifySvc.MarkAllRead(c.Request.Context(), currentUserID(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *NotificationHandler) Delete(c *gin.Context) {
	if err := s.notifySvc.Delete(c.Request.Context(), currentUserID(c), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
