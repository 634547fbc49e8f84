package game

// Player 游戏内玩家状态
// 值语义：所有变更方法返回新的副本，调用方以替换方式更新
type Player struct {
	ID         string `json:"id"`          // 玩家标识
	Balance    int64  `json:"balance"`     // 余额（游戏币）
	TotalSpins int64  `json:"total_spins"` // 总旋转次数
	TotalWins  int64  `json:"total_wins"`  // 中奖次数
	BiggestWin int64  `json:"biggest_win"` // 单次最大赔付
}

// NewPlayer 创建玩家
func NewPlayer(id string, balance int64) Player {
	return Player{
		ID:      id,
		Balance: balance,
	}
}

// CanAfford 余额是否足够
func (p Player) CanAfford(amount int64) bool {
	return p.Balance >= amount
}

// Settle 结算一次旋转 扣除总下注并加入赔付
func (p Player) Settle(totalBet, totalPayout int64) Player {
	p.Balance = p.Balance - totalBet + totalPayout
	p.TotalSpins++
	if totalPayout > 0 {
		p.TotalWins++
	}
	if totalPayout > p.BiggestWin {
		p.BiggestWin = totalPayout
	}
	return p
}

// AddCredits 增加余额
func (p Player) AddCredits(amount int64) Player {
	p.Balance += amount
	return p
}

// WinRate 中奖率
func (p Player) WinRate() float64 {
	if p.TotalSpins == 0 {
		return 0
	}
	return float64(p.TotalWins) / float64(p.TotalSpins)
}
