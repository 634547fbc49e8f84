package game

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/wfunc/fruit-slot/internal/errors"
	"github.com/wfunc/fruit-slot/internal/game/slot"
	"github.com/wfunc/fruit-slot/internal/models"
	"github.com/wfunc/fruit-slot/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Engine 单个玩家的游戏引擎
// 持有当前加载的玩家状态 对外操作串行执行
type Engine struct {
	mu        sync.Mutex
	cfg       *slot.Config
	generator *slot.GridGenerator
	evaluator *slot.PayoutEvaluator
	logger    *zap.Logger

	playerRepo repository.PlayerRepository
	spinRepo   repository.SpinRecordRepository

	player *Player        // 当前玩家 未加载时为nil
	row    *models.Player // 持久化行 保留数据库主键
}

// EngineConfig 引擎配置
type EngineConfig struct {
	Config    *slot.Config
	DB        *gorm.DB
	RandomGen slot.RandomGenerator
	Logger    *zap.Logger
}

// NewEngine 创建游戏引擎
func NewEngine(config *EngineConfig) (*Engine, error) {
	cfg := config.Config
	if cfg == nil {
		cfg = slot.DefaultConfig()
	}

	generator, err := slot.NewGridGenerator(cfg, config.RandomGen)
	if err != nil {
		return nil, err
	}
	evaluator, err := slot.NewPayoutEvaluator(cfg)
	if err != nil {
		return nil, err
	}

	log := config.Logger
	if log == nil {
		log = zap.NewNop()
	}

	return &Engine{
		cfg:        cfg,
		generator:  generator,
		evaluator:  evaluator,
		logger:     log,
		playerRepo: repository.NewPlayerRepository(config.DB),
		spinRepo:   repository.NewSpinRecordRepository(config.DB),
	}, nil
}

// LoadPlayer 加载玩家 不存在或数据损坏时以默认余额新建
func (e *Engine) LoadPlayer(ctx context.Context, playerID string) (Player, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	row, err := e.playerRepo.Load(ctx, playerID, e.cfg.DefaultBalance)
	if err != nil {
		return Player{}, err
	}

	player := Player{
		ID:         row.PlayerID,
		Balance:    row.Balance,
		TotalSpins: row.TotalSpins,
		TotalWins:  row.TotalWins,
		BiggestWin: row.BiggestWin,
	}

	e.row = row
	e.player = &player

	e.logger.Info("加载玩家",
		zap.String("player_id", playerID),
		zap.Int64("balance", player.Balance),
		zap.Bool("new_player", row.ID == 0))

	return player, nil
}

// Player 获取当前玩家快照
func (e *Engine) Player() (Player, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.player == nil {
		return Player{}, false
	}
	return *e.player, true
}

// Config 获取游戏配置
func (e *Engine) Config() *slot.Config {
	return e.cfg
}

// Spin 执行一次旋转
// 校验顺序：玩家已加载 -> 下注合法 -> 线数合法 -> 余额充足
// 校验失败不改变任何状态
func (e *Engine) Spin(ctx context.Context, betPerLine int64, numLines int) (*slot.SpinResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.player == nil {
		return nil, errors.New(errors.ErrNoPlayerLoaded, "未加载玩家")
	}
	if betPerLine < e.cfg.MinBet || betPerLine > e.cfg.MaxBet ||
		(betPerLine-e.cfg.MinBet)%e.cfg.BetIncrement != 0 {
		return nil, errors.Newf(errors.ErrInvalidBet, "单线下注必须在%d到%d之间", e.cfg.MinBet, e.cfg.MaxBet)
	}
	if numLines < 1 || numLines > e.cfg.MaxLines() {
		return nil, errors.Newf(errors.ErrInvalidLines, "激活线数必须在1到%d之间", e.cfg.MaxLines())
	}

	totalBet := betPerLine * int64(numLines)
	if !e.player.CanAfford(totalBet) {
		return nil, errors.Newf(errors.ErrInsufficientBalance, "余额不足 需要%d 当前%d", totalBet, e.player.Balance)
	}

	grid := e.generator.Generate()
	winLines, totalPayout := e.evaluator.Calculate(grid, betPerLine, numLines)

	result := &slot.SpinResult{
		ID:          uuid.New().String(),
		Grid:        grid,
		WinLines:    winLines,
		TotalPayout: totalPayout,
		BetAmount:   totalBet,
		Timestamp:   time.Now(),
	}

	next := e.player.Settle(totalBet, totalPayout)
	if err := e.persist(ctx, next); err != nil {
		// 保存失败 玩家状态保持不变
		return nil, err
	}

	e.recordSpin(ctx, result, betPerLine, numLines)
	e.logSpin(result, totalBet)

	return result, nil
}

// AddCredits 增加余额
func (e *Engine) AddCredits(ctx context.Context, amount int64) (Player, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.player == nil {
		return Player{}, errors.New(errors.ErrNoPlayerLoaded, "未加载玩家")
	}
	if amount <= 0 {
		return Player{}, errors.New(errors.ErrInvalidParam, "充值金额必须为正数")
	}

	next := e.player.AddCredits(amount)
	if err := e.persist(ctx, next); err != nil {
		return Player{}, err
	}

	e.logger.Info("玩家充值",
		zap.String("player_id", next.ID),
		zap.Int64("amount", amount),
		zap.Int64("balance", next.Balance))

	return next, nil
}

// History 分页查询旋转历史
func (e *Engine) History(ctx context.Context, p *repository.Pagination) ([]*models.SpinRecord, error) {
	e.mu.Lock()
	if e.player == nil {
		e.mu.Unlock()
		return nil, errors.New(errors.ErrNoPlayerLoaded, "未加载玩家")
	}
	playerID := e.player.ID
	e.mu.Unlock()

	return e.spinRepo.FindByPlayer(ctx, playerID, p)
}

// persist 持久化玩家状态 成功后才替换内存中的玩家
func (e *Engine) persist(ctx context.Context, next Player) error {
	row := *e.row
	row.Balance = next.Balance
	row.TotalSpins = next.TotalSpins
	row.TotalWins = next.TotalWins
	row.BiggestWin = next.BiggestWin

	if err := e.playerRepo.Save(ctx, &row); err != nil {
		return err
	}

	e.row = &row
	e.player = &next
	return nil
}

// recordSpin 写入旋转记录 失败仅记录日志不影响结果
func (e *Engine) recordSpin(ctx context.Context, result *slot.SpinResult, betPerLine int64, numLines int) {
	record := &models.SpinRecord{
		ResultID:    result.ID,
		PlayerID:    e.player.ID,
		BetPerLine:  betPerLine,
		NumLines:    numLines,
		TotalBet:    result.BetAmount,
		TotalPayout: result.TotalPayout,
		Reels:       gridToSymbolGrid(result.Grid),
		PlayedAt:    result.Timestamp,
	}
	for _, line := range result.WinLines {
		record.WinLines = append(record.WinLines, models.SpinWinLine{
			PaylineID: line.PaylineID,
			Symbol:    string(line.Symbol),
			Count:     line.Count,
			Payout:    line.Payout,
		})
	}

	if err := e.spinRepo.Create(ctx, record); err != nil {
		e.logger.Error("写入旋转记录失败",
			zap.String("result_id", result.ID),
			zap.Error(err))
	}
}

// logSpin 输出旋转日志
func (e *Engine) logSpin(result *slot.SpinResult, totalBet int64) {
	multiplier := float64(0)
	if totalBet > 0 {
		multiplier = float64(result.TotalPayout) / float64(totalBet)
	}

	fields := []zap.Field{
		zap.String("player_id", e.player.ID),
		zap.String("result_id", result.ID),
		zap.Int64("total_bet", totalBet),
		zap.Int64("total_payout", result.TotalPayout),
		zap.Float64("multiplier", multiplier),
		zap.Int64("balance", e.player.Balance),
	}
	if result.IsWin() {
		fields = append(fields, zap.Int("win_lines", len(result.WinLines)))
		e.logger.Info("旋转中奖", fields...)
	} else {
		e.logger.Info("旋转未中奖", fields...)
	}
}

// gridToSymbolGrid 转换为存储格式 按卷轴列存储
func gridToSymbolGrid(grid slot.Grid) models.SymbolGrid {
	out := make(models.SymbolGrid, slot.NumReels)
	for reel := 0; reel < slot.NumReels; reel++ {
		column := make([]string, slot.NumRows)
		for row := 0; row < slot.NumRows; row++ {
			column[row] = string(grid[reel][row])
		}
		out[reel] = column
	}
	return out
}
