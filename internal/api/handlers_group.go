package api

import "SkillNest/internal/api/handler"

// HandlersGroup 聚合全部 HTTP 入口，便于路由装配
type HandlersGroup struct {
	UserHandler         *handler.UserHandler
	SkillPostHandler    *handler.SkillPostHandler
	PostActionHandler   *handler.PostActionHandler
	NotificationHandler *handler.NotificationHandler
	SocialHandler       *handler.SocialHandler
	WSHandler           *handler.WsHandler
}
