package slot

// PayoutEvaluator 支付线赔付计算器
// 从左到右匹配连续符号，Wild可替代任意符号
type PayoutEvaluator struct {
	cfg *Config
}

// NewPayoutEvaluator 创建赔付计算器
func NewPayoutEvaluator(cfg *Config) (*PayoutEvaluator, error) {
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return &PayoutEvaluator{cfg: cfg}, nil
}

// Calculate 计算所有激活支付线的中奖结果和总赔付
// 只评估前 numLines 条支付线（按ID升序 1..numLines）
func (e *PayoutEvaluator) Calculate(grid Grid, betPerLine int64, numLines int) ([]WinLine, int64) {
	if numLines < 1 {
		numLines = 1
	}
	if numLines > len(e.cfg.Paylines) {
		numLines = len(e.cfg.Paylines)
	}

	var (
		wins        []WinLine
		totalPayout int64
	)

	for _, payline := range e.cfg.Paylines[:numLines] {
		symbols := payline.SymbolsFrom(grid)
		if win := e.evaluateLine(payline.ID, symbols, betPerLine); win != nil {
			wins = append(wins, *win)
			totalPayout += win.Payout
		}
	}

	return wins, totalPayout
}

// evaluateLine 评估单条支付线
func (e *PayoutEvaluator) evaluateLine(paylineID int, symbols [NumReels]Symbol, betPerLine int64) *WinLine {
	// 锚定符号：从左扫描取第一个非Wild符号，全Wild时锚定为Wild本身
	anchor := SymbolWild
	for _, sym := range symbols {
		if !sym.IsWild() {
			anchor = sym
			break
		}
	}

	// 从卷轴0开始统计连续匹配数，遇到既非锚定符号也非Wild的符号即停
	count := 0
	for _, sym := range symbols {
		if sym == anchor || sym.IsWild() {
			count++
		} else {
			break
		}
	}

	// 至少3连才可能中奖
	if count < 3 {
		return nil
	}

	multiplier := e.cfg.Multiplier(anchor, count)
	if multiplier == 0 {
		return nil
	}

	return &WinLine{
		PaylineID: paylineID,
		Symbol:    anchor,
		Count:     count,
		Payout:    betPerLine * multiplier,
	}
}
