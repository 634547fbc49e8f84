package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/wfunc/fruit-slot/internal/errors"
	"github.com/wfunc/fruit-slot/internal/game"
	"github.com/wfunc/fruit-slot/internal/game/slot"
	"github.com/wfunc/fruit-slot/internal/middleware"
	"github.com/wfunc/fruit-slot/internal/repository"
	ws "github.com/wfunc/fruit-slot/internal/websocket"
	"go.uber.org/zap"
)

// SlotHandler 老虎机游戏处理器
type SlotHandler struct {
	sessionManager *game.SessionManager
	hub            *ws.Hub
	logger         *zap.Logger
}

// NewSlotHandler 创建老虎机处理器
func NewSlotHandler(sessionManager *game.SessionManager, hub *ws.Hub, logger *zap.Logger) *SlotHandler {
	return &SlotHandler{
		sessionManager: sessionManager,
		hub:            hub,
		logger:         logger,
	}
}

// SpinRequest 转动请求
type SpinRequest struct {
	BetPerLine int64 `json:"bet_per_line" binding:"required"`
	NumLines   int   `json:"num_lines" binding:"required"`
}

// WinLineResponse 中奖线
type WinLineResponse struct {
	PaylineID int    `json:"payline_id"`
	Symbol    string `json:"symbol"`
	Count     int    `json:"count"`
	Payout    int64  `json:"payout"`
}

// SpinResponse 转动响应
type SpinResponse struct {
	ResultID    string            `json:"result_id"`
	Grid        [][]string        `json:"grid"` // 按行排列 3行x5列
	WinLines    []WinLineResponse `json:"win_lines"`
	TotalBet    int64             `json:"total_bet"`
	TotalPayout int64             `json:"total_payout"`
	Balance     int64             `json:"balance"`
}

// CreditsRequest 充值请求
type CreditsRequest struct {
	Amount int64 `json:"amount" binding:"required"`
}

// PlayerResponse 玩家信息响应
type PlayerResponse struct {
	PlayerID   string `json:"player_id"`
	Balance    int64  `json:"balance"`
	TotalSpins int64  `json:"total_spins"`
	TotalWins  int64  `json:"total_wins"`
	BiggestWin int64  `json:"biggest_win"`
}

// HistoryResponse 历史记录响应
type HistoryResponse struct {
	Records  interface{} `json:"records"`
	Total    int64       `json:"total"`
	Page     int         `json:"page"`
	PageSize int         `json:"page_size"`
}

// ConfigResponse 游戏配置响应
type ConfigResponse struct {
	Reels        int                  `json:"reels"`
	Rows         int                  `json:"rows"`
	MinBet       int64                `json:"min_bet"`
	MaxBet       int64                `json:"max_bet"`
	BetIncrement int64                `json:"bet_increment"`
	MaxLines     int                  `json:"max_lines"`
	Symbols      []string             `json:"symbols"`
	Paytable     map[string]map[int]int64 `json:"paytable"`
}

// Spin 执行一次转动
// @Summary 执行一次转动
// @Description 扣除下注并返回转动结果与最新余额
// @Tags Slot
// @Security Bearer
// @Accept json
// @Produce json
// @Param request body SpinRequest true "转动请求"
// @Success 200 {object} SpinResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /api/v1/slot/spin [post]
func (h *SlotHandler) Spin(c *gin.Context) {
	playerID, exists := middleware.GetPlayerID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Code: "UNAUTHORIZED", Message: "未登录"})
		return
	}

	var req SpinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    "INVALID_REQUEST",
			Message: "请求参数错误",
			Details: err.Error(),
		})
		return
	}

	engine, err := h.sessionManager.GetOrCreate(c.Request.Context(), playerID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	result, err := engine.Spin(c.Request.Context(), req.BetPerLine, req.NumLines)
	if err != nil {
		h.respondError(c, err)
		return
	}

	player, _ := engine.Player()
	resp := buildSpinResponse(result, player.Balance)

	// 推送结果和余额变化
	h.hub.NotifyPlayer(playerID, ws.MessageTypeSpinResult, resp)
	h.hub.NotifyPlayer(playerID, ws.MessageTypeBalanceUpdate, gin.H{"balance": player.Balance})

	c.JSON(http.StatusOK, resp)
}

// AddCredits 充值
// @Summary 充值
// @Description 为当前玩家增加余额
// @Tags Slot
// @Security Bearer
// @Accept json
// @Produce json
// @Param request body CreditsRequest true "充值请求"
// @Success 200 {object} PlayerResponse
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/slot/credits [post]
func (h *SlotHandler) AddCredits(c *gin.Context) {
	playerID, exists := middleware.GetPlayerID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Code: "UNAUTHORIZED", Message: "未登录"})
		return
	}

	var req CreditsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    "INVALID_REQUEST",
			Message: "请求参数错误",
			Details: err.Error(),
		})
		return
	}

	engine, err := h.sessionManager.GetOrCreate(c.Request.Context(), playerID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	player, err := engine.AddCredits(c.Request.Context(), req.Amount)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.hub.NotifyPlayer(playerID, ws.MessageTypeCreditsAdded, gin.H{
		"amount":  req.Amount,
		"balance": player.Balance,
	})

	c.JSON(http.StatusOK, buildPlayerResponse(player))
}

// GetPlayer 获取玩家信息
// @Summary 获取玩家信息
// @Description 返回当前玩家的余额与统计
// @Tags Slot
// @Security Bearer
// @Produce json
// @Success 200 {object} PlayerResponse
// @Failure 401 {object} ErrorResponse
// @Router /api/v1/slot/player [get]
func (h *SlotHandler) GetPlayer(c *gin.Context) {
	playerID, exists := middleware.GetPlayerID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Code: "UNAUTHORIZED", Message: "未登录"})
		return
	}

	engine, err := h.sessionManager.GetOrCreate(c.Request.Context(), playerID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	player, ok := engine.Player()
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{Code: "NO_PLAYER", Message: "未加载玩家"})
		return
	}

	c.JSON(http.StatusOK, buildPlayerResponse(player))
}

// GetHistory 获取旋转历史
// @Summary 获取旋转历史
// @Description 分页返回当前玩家的旋转记录
// @Tags Slot
// @Security Bearer
// @Produce json
// @Param page query int false "页码"
// @Param page_size query int false "每页数量"
// @Success 200 {object} HistoryResponse
// @Failure 401 {object} ErrorResponse
// @Router /api/v1/slot/history [get]
func (h *SlotHandler) GetHistory(c *gin.Context) {
	playerID, exists := middleware.GetPlayerID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Code: "UNAUTHORIZED", Message: "未登录"})
		return
	}

	var p repository.Pagination
	if err := c.ShouldBindQuery(&p); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    "INVALID_REQUEST",
			Message: "分页参数错误",
			Details: err.Error(),
		})
		return
	}

	engine, err := h.sessionManager.GetOrCreate(c.Request.Context(), playerID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	records, err := engine.History(c.Request.Context(), &p)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, HistoryResponse{
		Records:  records,
		Total:    p.Total,
		Page:     p.Page,
		PageSize: p.PageSize,
	})
}

// GetConfig 获取游戏配置
// @Summary 获取游戏配置
// @Description 返回下注范围与赔率表
// @Tags Slot
// @Security Bearer
// @Produce json
// @Success 200 {object} ConfigResponse
// @Router /api/v1/slot/config [get]
func (h *SlotHandler) GetConfig(c *gin.Context) {
	playerID, exists := middleware.GetPlayerID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Code: "UNAUTHORIZED", Message: "未登录"})
		return
	}

	engine, err := h.sessionManager.GetOrCreate(c.Request.Context(), playerID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	cfg := engine.Config()

	symbols := make([]string, 0, len(slot.AllSymbols()))
	for _, s := range slot.AllSymbols() {
		symbols = append(symbols, string(s))
	}

	paytable := make(map[string]map[int]int64, len(cfg.Paytable))
	for symbol, counts := range cfg.Paytable {
		entry := make(map[int]int64, len(counts))
		for count, multiplier := range counts {
			entry[count] = multiplier
		}
		paytable[string(symbol)] = entry
	}

	c.JSON(http.StatusOK, ConfigResponse{
		Reels:        slot.NumReels,
		Rows:         slot.NumRows,
		MinBet:       cfg.MinBet,
		MaxBet:       cfg.MaxBet,
		BetIncrement: cfg.BetIncrement,
		MaxLines:     cfg.MaxLines(),
		Symbols:      symbols,
		Paytable:     paytable,
	})
}

// respondError 将错误转换为HTTP响应
func (h *SlotHandler) respondError(c *gin.Context, err error) {
	if appErr, ok := err.(*errors.AppError); ok {
		c.JSON(appErr.HTTPStatus(), ErrorResponse{
			Code:    appErr.Code.String(),
			Message: appErr.Message,
		})
		return
	}

	h.logger.Error("接口处理失败", zap.Error(err))
	c.JSON(http.StatusInternalServerError, ErrorResponse{
		Code:    "INTERNAL_ERROR",
		Message: "服务内部错误",
	})
}

// buildSpinResponse 构造转动响应
func buildSpinResponse(result *slot.SpinResult, balance int64) SpinResponse {
	rows := result.Grid.Rows()
	grid := make([][]string, len(rows))
	for i, row := range rows {
		line := make([]string, len(row))
		for j, symbol := range row {
			line[j] = string(symbol)
		}
		grid[i] = line
	}

	winLines := make([]WinLineResponse, 0, len(result.WinLines))
	for _, line := range result.WinLines {
		winLines = append(winLines, WinLineResponse{
			PaylineID: line.PaylineID,
			Symbol:    string(line.Symbol),
			Count:     line.Count,
			Payout:    line.Payout,
		})
	}

	return SpinResponse{
		ResultID:    result.ID,
		Grid:        grid,
		WinLines:    winLines,
		TotalBet:    result.BetAmount,
		TotalPayout: result.TotalPayout,
		Balance:     balance,
	}
}

// buildPlayerResponse 构造玩家响应
func buildPlayerResponse(player game.Player) PlayerResponse {
	return PlayerResponse{
		PlayerID:   player.ID,
		Balance:    player.Balance,
		TotalSpins: player.TotalSpins,
		TotalWins:  player.TotalWins,
		BiggestWin: player.BiggestWin,
	}
}
