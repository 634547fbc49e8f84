package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/wfunc/fruit-slot/internal/config"
	"github.com/wfunc/fruit-slot/internal/middleware"
	ws "github.com/wfunc/fruit-slot/internal/websocket"
	"go.uber.org/zap"
)

// WebSocketHandler WebSocket处理器
type WebSocketHandler struct {
	hub      *ws.Hub
	upgrader websocket.Upgrader
	logger   *zap.Logger
}

// NewWebSocketHandler 创建WebSocket处理器
func NewWebSocketHandler(hub *ws.Hub, wsCfg *config.WebSocketConfig, logger *zap.Logger) *WebSocketHandler {
	readBuffer, writeBuffer := 1024, 1024
	if wsCfg != nil {
		if wsCfg.ReadBufferSize > 0 {
			readBuffer = wsCfg.ReadBufferSize
		}
		if wsCfg.WriteBufferSize > 0 {
			writeBuffer = wsCfg.WriteBufferSize
		}
	}

	return &WebSocketHandler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  readBuffer,
			WriteBufferSize: writeBuffer,
			CheckOrigin: func(r *http.Request) bool {
				// 在生产环境中应该检查Origin
				return true
			},
		},
		logger: logger,
	}
}

// GameWebSocket 游戏WebSocket连接
func (h *WebSocketHandler) GameWebSocket(c *gin.Context) {
	playerID, exists := middleware.GetPlayerID(c)
	if !exists || playerID == "" {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Code: "UNAUTHORIZED", Message: "未登录"})
		return
	}

	// 升级为WebSocket连接
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error("WebSocket升级失败",
			zap.String("player_id", playerID),
			zap.Error(err))
		return
	}

	// 创建并注册客户端
	client := ws.NewClient(h.hub, conn, playerID)
	h.hub.Register(client)

	// 启动读写协程
	go client.WritePump()
	go client.ReadPump()

	h.logger.Info("WebSocket连接建立",
		zap.String("client_id", client.ID),
		zap.String("player_id", playerID))
}
