package slot

import "errors"

var (
	ErrInvalidConfig   = errors.New("无效的配置")
	ErrInvalidWeights  = errors.New("无效的符号权重")
	ErrInvalidPaytable = errors.New("无效的赔率表")
	ErrInvalidPaylines = errors.New("无效的支付线配置")
)

// 游戏默认参数
const (
	DefaultBalance = 1000 // 新玩家初始余额
	MinBet         = 1    // 单线最小下注
	MaxBet         = 100  // 单线最大下注
	BetIncrement   = 1    // 下注步进
)

// Config 水果机配置（只读，引擎启动时构建一次）
type Config struct {
	SymbolWeights map[Symbol]int           `json:"symbol_weights"` // 符号抽样权重
	Paytable      map[Symbol]map[int]int64 `json:"paytable"`       // 符号 -> 连续数 -> 赔率倍数
	Paylines      []Payline                `json:"paylines"`       // 支付线（按ID升序）
	MinBet        int64                    `json:"min_bet"`        // 单线最小下注
	MaxBet        int64                    `json:"max_bet"`        // 单线最大下注
	BetIncrement  int64                    `json:"bet_increment"`  // 下注步进
	DefaultBalance int64                   `json:"default_balance"` // 新玩家初始余额
}

// DefaultConfig 获取默认配置（经典5轴水果机）
func DefaultConfig() *Config {
	return &Config{
		// 符号权重（越大越常见）
		SymbolWeights: map[Symbol]int{
			SymbolCherry: 25,
			SymbolLemon:  22,
			SymbolOrange: 20,
			SymbolPlum:   15,
			SymbolBell:   8,
			SymbolBar:    5,
			SymbolSeven:  3,
			SymbolWild:   2,
		},

		// 赔率表：符号 -> {连续数 -> 倍数}，缺项视为0（不中奖）
		Paytable: map[Symbol]map[int]int64{
			SymbolCherry: {3: 5, 4: 10, 5: 25},
			SymbolLemon:  {3: 5, 4: 15, 5: 30},
			SymbolOrange: {3: 10, 4: 20, 5: 40},
			SymbolPlum:   {3: 10, 4: 25, 5: 50},
			SymbolBell:   {3: 20, 4: 50, 5: 100},
			SymbolBar:    {3: 30, 4: 75, 5: 200},
			SymbolSeven:  {3: 50, 4: 150, 5: 500},
			SymbolWild:   {3: 100, 4: 500, 5: 2000},
		},

		// 支付线：每个卷轴的行索引 (0=上 1=中 2=下)
		Paylines: []Payline{
			{ID: 1, Name: "Middle", Rows: [NumReels]int{1, 1, 1, 1, 1}}, // 中线
			{ID: 2, Name: "Top", Rows: [NumReels]int{0, 0, 0, 0, 0}},    // 上线
			{ID: 3, Name: "Bottom", Rows: [NumReels]int{2, 2, 2, 2, 2}}, // 下线
			{ID: 4, Name: "V-Shape", Rows: [NumReels]int{0, 1, 2, 1, 0}}, // V型
			{ID: 5, Name: "Inv-V", Rows: [NumReels]int{2, 1, 0, 1, 2}},   // 倒V型
		},

		MinBet:         MinBet,
		MaxBet:         MaxBet,
		BetIncrement:   BetIncrement,
		DefaultBalance: DefaultBalance,
	}
}

// MaxLines 支付线总数
func (c *Config) MaxLines() int {
	return len(c.Paylines)
}

// Multiplier 查询赔率倍数，缺项返回0
func (c *Config) Multiplier(symbol Symbol, count int) int64 {
	counts, ok := c.Paytable[symbol]
	if !ok {
		return 0
	}
	return counts[count]
}

// Validate 校验配置
func Validate(cfg *Config) error {
	if cfg == nil {
		return ErrInvalidConfig
	}

	// 权重：每个符号都要有正权重
	if len(cfg.SymbolWeights) == 0 {
		return ErrInvalidWeights
	}
	for _, sym := range allSymbols {
		if cfg.SymbolWeights[sym] <= 0 {
			return ErrInvalidWeights
		}
	}

	// 赔率表：符号必须已知，连续数限定在3-5
	for sym, counts := range cfg.Paytable {
		if !sym.Valid() {
			return ErrInvalidPaytable
		}
		for count, multiplier := range counts {
			if count < 3 || count > NumReels || multiplier < 0 {
				return ErrInvalidPaytable
			}
		}
	}

	// 支付线：ID从1连续递增，行索引在范围内
	if len(cfg.Paylines) == 0 {
		return ErrInvalidPaylines
	}
	for i, line := range cfg.Paylines {
		if line.ID != i+1 {
			return ErrInvalidPaylines
		}
		for _, row := range line.Rows {
			if row < 0 || row >= NumRows {
				return ErrInvalidPaylines
			}
		}
	}

	if cfg.MinBet <= 0 || cfg.MaxBet < cfg.MinBet || cfg.BetIncrement <= 0 {
		return ErrInvalidConfig
	}
	if cfg.DefaultBalance < 0 {
		return ErrInvalidConfig
	}

	return nil
}
