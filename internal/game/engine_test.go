package game

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wfunc/fruit-slot/internal/errors"
	"github.com/wfunc/fruit-slot/internal/game/slot"
	"github.com/wfunc/fruit-slot/internal/models"
	"github.com/wfunc/fruit-slot/internal/repository"
	"gorm.io/gorm"
)

// newTestEngine 创建基于内存数据库的测试引擎
func newTestEngine(t *testing.T, seed int64) (*Engine, *gorm.DB) {
	db := repository.SetupTestDB()
	t.Cleanup(func() { repository.CleanupTestDB(db) })

	engine, err := NewEngine(&EngineConfig{
		DB:        db,
		RandomGen: slot.NewSeededRandomGenerator(seed),
	})
	require.NoError(t, err)
	return engine, db
}

func TestEngine_LoadPlayer_NewPlayerGetsDefaultBalance(t *testing.T) {
	engine, _ := newTestEngine(t, 1)
	ctx := context.Background()

	player, err := engine.LoadPlayer(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", player.ID)
	assert.Equal(t, int64(slot.DefaultBalance), player.Balance)
	assert.Zero(t, player.TotalSpins)
}

func TestEngine_LoadPlayer_ExistingPlayer(t *testing.T) {
	engine, db := newTestEngine(t, 1)
	ctx := context.Background()

	// 预先写入存档
	err := db.Create(&models.Player{
		PlayerID:   "bob",
		Balance:    250,
		TotalSpins: 42,
		TotalWins:  7,
		BiggestWin: 90,
	}).Error
	require.NoError(t, err)

	player, err := engine.LoadPlayer(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, int64(250), player.Balance)
	assert.Equal(t, int64(42), player.TotalSpins)
	assert.Equal(t, int64(7), player.TotalWins)
	assert.Equal(t, int64(90), player.BiggestWin)
}

func TestEngine_Spin_RequiresLoadedPlayer(t *testing.T) {
	engine, _ := newTestEngine(t, 1)

	_, err := engine.Spin(context.Background(), 1, 5)
	require.Error(t, err)
	assert.Equal(t, errors.ErrNoPlayerLoaded, errors.GetCode(err))
}

func TestEngine_Spin_Validation(t *testing.T) {
	engine, _ := newTestEngine(t, 1)
	ctx := context.Background()

	before, err := engine.LoadPlayer(ctx, "alice")
	require.NoError(t, err)

	tests := []struct {
		name       string
		betPerLine int64
		numLines   int
		wantCode   errors.ErrorCode
	}{
		{"下注为零", 0, 5, errors.ErrInvalidBet},
		{"下注为负", -1, 5, errors.ErrInvalidBet},
		{"下注超过上限", 101, 5, errors.ErrInvalidBet},
		{"线数为零", 1, 0, errors.ErrInvalidLines},
		{"线数超过上限", 1, 6, errors.ErrInvalidLines},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := engine.Spin(ctx, tt.betPerLine, tt.numLines)
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, errors.GetCode(err))
		})
	}

	// 校验失败不改变玩家状态
	after, ok := engine.Player()
	require.True(t, ok)
	assert.Equal(t, before, after)
}

func TestEngine_Spin_InsufficientBalance(t *testing.T) {
	engine, db := newTestEngine(t, 1)
	ctx := context.Background()

	err := db.Create(&models.Player{PlayerID: "poor", Balance: 3}).Error
	require.NoError(t, err)

	before, err := engine.LoadPlayer(ctx, "poor")
	require.NoError(t, err)

	// 总下注 1*5=5 超过余额3
	_, err = engine.Spin(ctx, 1, 5)
	require.Error(t, err)
	assert.Equal(t, errors.ErrInsufficientBalance, errors.GetCode(err))

	// 余额和统计保持不变 也不产生旋转记录
	after, _ := engine.Player()
	assert.Equal(t, before, after)

	var count int64
	db.Model(&models.SpinRecord{}).Count(&count)
	assert.Zero(t, count)
}

func TestEngine_Spin_BalanceAccounting(t *testing.T) {
	engine, db := newTestEngine(t, 42)
	ctx := context.Background()

	before, err := engine.LoadPlayer(ctx, "alice")
	require.NoError(t, err)

	result, err := engine.Spin(ctx, 2, 5)
	require.NoError(t, err)
	require.NotNil(t, result)

	totalBet := int64(2 * 5)
	assert.Equal(t, totalBet, result.BetAmount)
	assert.NotEmpty(t, result.ID)

	after, _ := engine.Player()
	assert.Equal(t, before.Balance-totalBet+result.TotalPayout, after.Balance)
	assert.Equal(t, before.TotalSpins+1, after.TotalSpins)
	if result.TotalPayout > 0 {
		assert.Equal(t, before.TotalWins+1, after.TotalWins)
	} else {
		assert.Equal(t, before.TotalWins, after.TotalWins)
	}

	// 玩家状态已持久化
	var row models.Player
	require.NoError(t, db.Where("player_id = ?", "alice").First(&row).Error)
	assert.Equal(t, after.Balance, row.Balance)
	assert.Equal(t, after.TotalSpins, row.TotalSpins)

	// 旋转记录已写入
	var record models.SpinRecord
	require.NoError(t, db.Where("result_id = ?", result.ID).First(&record).Error)
	assert.Equal(t, "alice", record.PlayerID)
	assert.Equal(t, totalBet, record.TotalBet)
	assert.Equal(t, result.TotalPayout, record.TotalPayout)
	assert.Len(t, record.Reels, slot.NumReels)
}

func TestEngine_Spin_ManySpinsStayConsistent(t *testing.T) {
	engine, _ := newTestEngine(t, 7)
	ctx := context.Background()

	player, err := engine.LoadPlayer(ctx, "grinder")
	require.NoError(t, err)

	balance := player.Balance
	for i := 0; i < 50; i++ {
		result, err := engine.Spin(ctx, 1, 5)
		require.NoError(t, err)
		balance = balance - result.BetAmount + result.TotalPayout
	}

	after, _ := engine.Player()
	assert.Equal(t, balance, after.Balance)
	assert.Equal(t, int64(50), after.TotalSpins)
}

func TestEngine_AddCredits(t *testing.T) {
	engine, db := newTestEngine(t, 1)
	ctx := context.Background()

	before, err := engine.LoadPlayer(ctx, "alice")
	require.NoError(t, err)

	after, err := engine.AddCredits(ctx, 100)
	require.NoError(t, err)
	assert.Equal(t, before.Balance+100, after.Balance)
	assert.Equal(t, before.TotalSpins, after.TotalSpins)
	assert.Equal(t, before.TotalWins, after.TotalWins)

	var row models.Player
	require.NoError(t, db.Where("player_id = ?", "alice").First(&row).Error)
	assert.Equal(t, after.Balance, row.Balance)
}

func TestEngine_AddCredits_Validation(t *testing.T) {
	engine, _ := newTestEngine(t, 1)
	ctx := context.Background()

	// 未加载玩家
	_, err := engine.AddCredits(ctx, 100)
	require.Error(t, err)
	assert.Equal(t, errors.ErrNoPlayerLoaded, errors.GetCode(err))

	before, err := engine.LoadPlayer(ctx, "alice")
	require.NoError(t, err)

	// 非正数金额
	_, err = engine.AddCredits(ctx, 0)
	require.Error(t, err)
	_, err = engine.AddCredits(ctx, -5)
	require.Error(t, err)

	after, _ := engine.Player()
	assert.Equal(t, before, after)
}

func TestEngine_Spin_SaveFailureKeepsState(t *testing.T) {
	engine, db := newTestEngine(t, 1)
	ctx := context.Background()

	before, err := engine.LoadPlayer(ctx, "alice")
	require.NoError(t, err)

	// 关闭数据库后保存必然失败
	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	_, err = engine.Spin(ctx, 1, 5)
	require.Error(t, err)

	after, _ := engine.Player()
	assert.Equal(t, before, after)
}

func TestEngine_History(t *testing.T) {
	engine, _ := newTestEngine(t, 9)
	ctx := context.Background()

	// 未加载玩家
	_, err := engine.History(ctx, &repository.Pagination{Page: 1, PageSize: 10})
	require.Error(t, err)

	_, err = engine.LoadPlayer(ctx, "alice")
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err := engine.Spin(ctx, 1, 5)
		require.NoError(t, err)
	}

	p := &repository.Pagination{Page: 1, PageSize: 10}
	records, err := engine.History(ctx, p)
	require.NoError(t, err)
	assert.Len(t, records, 3)
	assert.Equal(t, int64(3), p.Total)
}

func TestPlayer_Settle(t *testing.T) {
	p := NewPlayer("alice", 100)

	won := p.Settle(10, 50)
	assert.Equal(t, int64(140), won.Balance)
	assert.Equal(t, int64(1), won.TotalSpins)
	assert.Equal(t, int64(1), won.TotalWins)
	assert.Equal(t, int64(50), won.BiggestWin)

	lost := won.Settle(10, 0)
	assert.Equal(t, int64(130), lost.Balance)
	assert.Equal(t, int64(2), lost.TotalSpins)
	assert.Equal(t, int64(1), lost.TotalWins)
	assert.Equal(t, int64(50), lost.BiggestWin)

	// 原值不受影响
	assert.Equal(t, int64(100), p.Balance)
	assert.Zero(t, p.TotalSpins)
}

func TestSessionManager(t *testing.T) {
	db := repository.SetupTestDB()
	t.Cleanup(func() { repository.CleanupTestDB(db) })

	sm := NewSessionManager(&SessionConfig{
		DB:             db,
		SessionTimeout: time.Nanosecond,
		MaxSessions:    2,
	})
	ctx := context.Background()

	e1, err := sm.GetOrCreate(ctx, "alice")
	require.NoError(t, err)
	e2, err := sm.GetOrCreate(ctx, "alice")
	require.NoError(t, err)
	assert.Same(t, e1, e2)
	assert.Equal(t, 1, sm.ActiveSessions())

	_, err = sm.GetOrCreate(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, 2, sm.ActiveSessions())

	// 超过会话上限
	_, err = sm.GetOrCreate(ctx, "carol")
	require.Error(t, err)

	// 超时清理
	time.Sleep(time.Millisecond)
	sm.CleanupInactiveSessions()
	assert.Zero(t, sm.ActiveSessions())

	// 清理后可重新创建 玩家存档仍在
	e3, err := sm.GetOrCreate(ctx, "alice")
	require.NoError(t, err)
	player, ok := e3.Player()
	require.True(t, ok)
	assert.Equal(t, "alice", player.ID)

	sm.Remove("alice")
	assert.Zero(t, sm.ActiveSessions())
}
