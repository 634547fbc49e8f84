package models

import (
	"time"
)

// Player 玩家存档表
type Player struct {
	BaseModel
	PlayerID   string `gorm:"uniqueIndex;size:64;not null" json:"player_id"` // 外部玩家标识
	Balance    int64  `gorm:"default:0" json:"balance"`                      // 余额（游戏币）
	TotalSpins int64  `gorm:"default:0" json:"total_spins"`                  // 总旋转次数
	TotalWins  int64  `gorm:"default:0" json:"total_wins"`                   // 中奖次数
	BiggestWin int64  `gorm:"default:0" json:"biggest_win"`                  // 单次最大赔付
}

// TableName 指定Player表名
func (Player) TableName() string {
	return "players"
}

// SpinRecord 旋转记录表
type SpinRecord struct {
	BaseModel
	ResultID    string        `gorm:"uniqueIndex;size:64;not null" json:"result_id"` // 结果ID
	PlayerID    string        `gorm:"index;size:64;not null" json:"player_id"`       // 玩家标识
	BetPerLine  int64         `json:"bet_per_line"`                                  // 单线下注
	NumLines    int           `json:"num_lines"`                                     // 激活线数
	TotalBet    int64         `json:"total_bet"`                                     // 总下注
	TotalPayout int64         `json:"total_payout"`                                  // 总赔付
	Reels       SymbolGrid    `gorm:"type:json" json:"reels"`                        // 卷轴网格
	PlayedAt    time.Time     `json:"played_at"`                                     // 旋转时间
	WinLines    []SpinWinLine `gorm:"foreignKey:SpinID" json:"win_lines,omitempty"`  // 中奖线
}

// TableName 指定SpinRecord表名
func (SpinRecord) TableName() string {
	return "spin_records"
}

// IsWin 是否中奖
func (r *SpinRecord) IsWin() bool {
	return r.TotalPayout > 0
}

// SpinWinLine 中奖线记录表
type SpinWinLine struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	SpinID    uint   `gorm:"index;not null" json:"spin_id"`   // 所属旋转记录
	PaylineID int    `json:"payline_id"`                      // 支付线ID
	Symbol    string `gorm:"size:20" json:"symbol"`           // 中奖符号
	Count     int    `json:"count"`                           // 连续个数
	Payout    int64  `json:"payout"`                          // 赔付金额
}

// TableName 指定SpinWinLine表名
func (SpinWinLine) TableName() string {
	return "spin_win_lines"
}
