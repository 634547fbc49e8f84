package slot

import (
	"time"
)

// 网格尺寸（5卷轴 × 3行）
const (
	NumReels = 5 // 卷轴数
	NumRows  = 3 // 行数
)

// Grid 卷轴网格，按列存储：grid[reel][row]
// 每次旋转生成一次，之后不再修改
type Grid [NumReels][NumRows]Symbol

// Rows 转换为按行排列的二维切片（供展示和持久化使用）
func (g Grid) Rows() [][]Symbol {
	rows := make([][]Symbol, NumRows)
	for row := 0; row < NumRows; row++ {
		rows[row] = make([]Symbol, NumReels)
		for reel := 0; reel < NumReels; reel++ {
			rows[row][reel] = g[reel][row]
		}
	}
	return rows
}

// Payline 支付线：每个卷轴取一个行索引
type Payline struct {
	ID   int           `json:"id"`   // 线ID（从1开始）
	Name string        `json:"name"` // 线名称
	Rows [NumReels]int `json:"rows"` // 每个卷轴的行索引 (0=上 1=中 2=下)
}

// SymbolsFrom 提取网格中该支付线上的符号
func (p Payline) SymbolsFrom(grid Grid) [NumReels]Symbol {
	var symbols [NumReels]Symbol
	for reel := 0; reel < NumReels; reel++ {
		symbols[reel] = grid[reel][p.Rows[reel]]
	}
	return symbols
}

// WinLine 中奖线结果
type WinLine struct {
	PaylineID int    `json:"payline_id"` // 支付线ID
	Symbol    Symbol `json:"symbol"`     // 中奖符号（锚定符号）
	Count     int    `json:"count"`      // 连续个数 (3-5)
	Payout    int64  `json:"payout"`     // 赔付金额
}

// SpinResult 单次旋转的完整结果
type SpinResult struct {
	ID          string    `json:"id"`           // 结果ID
	Grid        Grid      `json:"grid"`         // 卷轴网格
	WinLines    []WinLine `json:"win_lines"`    // 中奖线（按支付线ID升序）
	TotalPayout int64     `json:"total_payout"` // 总赔付
	BetAmount   int64     `json:"bet_amount"`   // 总下注
	Timestamp   time.Time `json:"timestamp"`    // 时间戳
}

// IsWin 是否中奖
func (r *SpinResult) IsWin() bool {
	return r.TotalPayout > 0
}

// NetResult 净收益（赔付减去下注）
func (r *SpinResult) NetResult() int64 {
	return r.TotalPayout - r.BetAmount
}

// RandomGenerator 随机数生成器接口
type RandomGenerator interface {
	// Next 生成下一个随机数 (0-1)
	Next() float64

	// NextInt 生成 [min, max) 范围内的随机整数
	NextInt(min, max int) int

	// Seed 设置种子
	Seed(seed int64)
}
