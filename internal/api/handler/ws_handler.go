package handler

import (
	"SkillNest/internal/pkg/consts"
	"SkillNest/internal/pkg/redis"
	"SkillNest/internal/pkg/response"
	"SkillNest/internal/pkg/security"
	"SkillNest/internal/service"
	"context"
	log "log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// WsHandler 通知实时推送通道
type WsHandler struct{}

func NewWsHandler() *WsHandler {
	return &WsHandler{}
}

func (s *WsHandler) Connect(c *gin.Context) {
	// 鉴权
	token := c.Query("token")
	if token == "" {
		response.Error(c, service.UnauthorizedError)
		return
	}
	claims, err := security.ValidateToken(token)
	if err != nil {
		log.Warn("WS 鉴权失败", "err", err)
		response.Error(c, service.UnauthorizedError)
		return
	}
	userID := claims.UserID

	// 升级 Websocket
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error("WS 协议升级失败", "err", err)
		return
	}
	defer func() {
		_ = conn.Close()
	}()

	// 订阅本人的通知频道
	pubsub := redis.Subscribe(context.Background(), consts.NotifyChannelKey+userID)
	if pubsub == nil {
		log.Error("WS 订阅失败, Redis 未初始化", "userID", userID)
		return
	}
	defer func() {
		_ = pubsub.Close()
	}()

	log.Info("用户 WS 连接已建立", "userID", userID)

	stopChan := make(chan struct{})

	// 读循环：监听客户端主动断开
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				close(stopChan)
				return
			}
		}
	}()

	// 写循环：监听 Redis 并推送至客户端
	redisCh := pubsub.Channel()
	for {
		select {
		case msg := <-redisCh:
			_ = conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := conn.WriteMessage(websocket.TextMessage, []byte(msg.Payload)); err != nil {
				log.Error("WS 推送失败", "userID", userID, "err", err)
				return
			}
		case <-stopChan:
			log.Info("用户 WS 连接已断开", "userID", userID)
			return
		}
	}
}
