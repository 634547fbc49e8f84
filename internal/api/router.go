package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/wfunc/fruit-slot/internal/config"
	"github.com/wfunc/fruit-slot/internal/game"
	"github.com/wfunc/fruit-slot/internal/game/slot"
	"github.com/wfunc/fruit-slot/internal/middleware"
	"github.com/wfunc/fruit-slot/internal/utils"
	ws "github.com/wfunc/fruit-slot/internal/websocket"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Router API路由器
type Router struct {
	engine         *gin.Engine
	db             *gorm.DB
	sessionManager *game.SessionManager
	hub            *ws.Hub
	authHandler    *AuthHandler
	slotHandler    *SlotHandler
	wsHandler      *WebSocketHandler
	authMiddleware *middleware.AuthMiddleware
	log            *zap.Logger
}

// NewRouter 创建路由器
func NewRouter(db *gorm.DB, cfg *config.Config, log *zap.Logger) *Router {
	engine := gin.New()

	// 全局中间件
	engine.Use(gin.Recovery())
	engine.Use(gin.Logger())

	// 游戏配置
	slotCfg := slot.DefaultConfig()
	if cfg != nil {
		applyGameConfig(slotCfg, &cfg.Game.Slot)
	}

	// 会话管理器
	sessionManager := game.NewSessionManager(&game.SessionConfig{
		Config: slotCfg,
		DB:     db,
		Logger: log,
	})

	// JWT管理器
	jwtSecret := "fruit-slot-dev-secret"
	expireHours := 24
	if cfg != nil {
		jwtSecret = cfg.Security.JWT.Secret
		if cfg.Security.JWT.ExpireHours > 0 {
			expireHours = cfg.Security.JWT.ExpireHours
		}
	}
	jwtManager := utils.NewJWTManager(
		jwtSecret,
		time.Duration(expireHours)*time.Hour,
		7*24*time.Hour,
	)

	// WebSocket Hub
	hub := ws.NewHub(log)
	go hub.Run()

	// 处理器
	var wsCfg *config.WebSocketConfig
	if cfg != nil {
		wsCfg = &cfg.WebSocket
	}
	authHandler := NewAuthHandler(jwtManager)
	wsHandler := NewWebSocketHandler(hub, wsCfg, log)
	slotHandler := NewSlotHandler(sessionManager, hub, log)

	// 中间件
	authMiddleware := middleware.NewAuthMiddleware(jwtManager)

	router := &Router{
		engine:         engine,
		db:             db,
		sessionManager: sessionManager,
		hub:            hub,
		authHandler:    authHandler,
		slotHandler:    slotHandler,
		wsHandler:      wsHandler,
		authMiddleware: authMiddleware,
		log:            log,
	}

	router.setupRoutes()

	return router
}

// applyGameConfig 用外部配置覆盖默认游戏参数
func applyGameConfig(slotCfg *slot.Config, gameCfg *config.SlotConfig) {
	if gameCfg.MinBet > 0 {
		slotCfg.MinBet = gameCfg.MinBet
	}
	if gameCfg.MaxBet > 0 {
		slotCfg.MaxBet = gameCfg.MaxBet
	}
	if gameCfg.BetIncrement > 0 {
		slotCfg.BetIncrement = gameCfg.BetIncrement
	}
	if gameCfg.DefaultBalance > 0 {
		slotCfg.DefaultBalance = gameCfg.DefaultBalance
	}
}

// setupRoutes 设置路由
func (r *Router) setupRoutes() {
	// 健康检查
	r.engine.GET("/health", r.healthCheck)

	// OpenAPI 文档
	registerSwaggerRoutes(r.engine)

	// API v1路由组
	v1 := r.engine.Group("/api/v1")
	{
		// 认证相关路由（不需要认证）
		auth := v1.Group("/auth")
		{
			auth.POST("/token", r.authHandler.Token)
			auth.POST("/refresh", r.authHandler.RefreshToken)
		}

		// 老虎机游戏路由（需要认证）
		slotGroup := v1.Group("/slot")
		slotGroup.Use(r.authMiddleware.RequireAuth())
		{
			slotGroup.POST("/spin", r.slotHandler.Spin)
			slotGroup.POST("/credits", r.slotHandler.AddCredits)
			slotGroup.GET("/player", r.slotHandler.GetPlayer)
			slotGroup.GET("/history", r.slotHandler.GetHistory)
			slotGroup.GET("/config", r.slotHandler.GetConfig)
		}
	}

	// WebSocket路由
	wsGroup := r.engine.Group("/ws")
	wsGroup.Use(r.authMiddleware.RequireAuth())
	{
		wsGroup.GET("/game", r.wsHandler.GameWebSocket)
	}

	// 404处理
	r.engine.NoRoute(func(c *gin.Context) {
		c.JSON(404, gin.H{
			"code":    "NOT_FOUND",
			"message": "接口不存在",
		})
	})
}

// healthCheck 健康检查
func (r *Router) healthCheck(c *gin.Context) {
	sqlDB, err := r.db.DB()
	if err != nil {
		c.JSON(500, gin.H{
			"status":  "unhealthy",
			"message": "数据库连接失败",
		})
		return
	}

	if err := sqlDB.Ping(); err != nil {
		c.JSON(500, gin.H{
			"status":  "unhealthy",
			"message": "数据库ping失败",
		})
		return
	}

	c.JSON(200, gin.H{
		"status":  "healthy",
		"message": "服务运行正常",
	})
}

// Run 运行服务器
func (r *Router) Run(addr string) error {
	r.log.Info("Starting API server", zap.String("address", addr))
	return r.engine.Run(addr)
}

// GetEngine 获取Gin引擎（用于测试）
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}
