package game

import (
	"context"
	"sync"
	"time"

	"github.com/wfunc/fruit-slot/internal/errors"
	"github.com/wfunc/fruit-slot/internal/game/slot"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SessionManager 游戏会话管理器
// 为每个玩家维护一个引擎实例
type SessionManager struct {
	mu             sync.RWMutex
	sessions       map[string]*gameSession
	cfg            *slot.Config
	db             *gorm.DB
	logger         *zap.Logger
	sessionTimeout time.Duration
	maxSessions    int
}

// gameSession 单个玩家会话
type gameSession struct {
	engine       *Engine
	startTime    time.Time
	lastActivity time.Time
}

// SessionConfig 会话管理器配置
type SessionConfig struct {
	Config         *slot.Config
	DB             *gorm.DB
	Logger         *zap.Logger
	SessionTimeout time.Duration
	MaxSessions    int
}

// NewSessionManager 创建会话管理器
func NewSessionManager(config *SessionConfig) *SessionManager {
	timeout := config.SessionTimeout
	if timeout <= 0 {
		timeout = 30 * time.Minute
	}
	maxSessions := config.MaxSessions
	if maxSessions <= 0 {
		maxSessions = 1000
	}

	log := config.Logger
	if log == nil {
		log = zap.NewNop()
	}

	return &SessionManager{
		sessions:       make(map[string]*gameSession),
		cfg:            config.Config,
		db:             config.DB,
		logger:         log,
		sessionTimeout: timeout,
		maxSessions:    maxSessions,
	}
}

// GetOrCreate 获取或创建玩家的引擎
// 新会话会自动加载玩家存档
func (sm *SessionManager) GetOrCreate(ctx context.Context, playerID string) (*Engine, error) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if session, exists := sm.sessions[playerID]; exists {
		session.lastActivity = time.Now()
		return session.engine, nil
	}

	if len(sm.sessions) >= sm.maxSessions {
		return nil, errors.New(errors.ErrSessionLimit, "会话数量已达上限")
	}

	engine, err := NewEngine(&EngineConfig{
		Config: sm.cfg,
		DB:     sm.db,
		Logger: sm.logger,
	})
	if err != nil {
		return nil, err
	}

	if _, err := engine.LoadPlayer(ctx, playerID); err != nil {
		return nil, err
	}

	sm.sessions[playerID] = &gameSession{
		engine:       engine,
		startTime:    time.Now(),
		lastActivity: time.Now(),
	}

	sm.logger.Info("创建游戏会话",
		zap.String("player_id", playerID),
		zap.Int("active_sessions", len(sm.sessions)))

	return engine, nil
}

// Remove 移除会话
func (sm *SessionManager) Remove(playerID string) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if _, exists := sm.sessions[playerID]; !exists {
		return
	}
	delete(sm.sessions, playerID)

	sm.logger.Info("移除游戏会话",
		zap.String("player_id", playerID))
}

// ActiveSessions 获取活跃会话数
func (sm *SessionManager) ActiveSessions() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.sessions)
}

// CleanupInactiveSessions 清理不活跃的会话
func (sm *SessionManager) CleanupInactiveSessions() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	now := time.Now()
	for playerID, session := range sm.sessions {
		if now.Sub(session.lastActivity) > sm.sessionTimeout {
			delete(sm.sessions, playerID)
			sm.logger.Info("清理超时会话",
				zap.String("player_id", playerID),
				zap.Duration("inactive", now.Sub(session.lastActivity)))
		}
	}
}

// StartCleanupTask 启动清理任务
func (sm *SessionManager) StartCleanupTask(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				sm.logger.Info("停止会话清理任务")
				return
			case <-ticker.C:
				sm.CleanupInactiveSessions()
			}
		}
	}()
}
