package slot

// GridGenerator 卷轴网格生成器
// 每个格子按符号权重独立抽样，不模拟物理卷轴条的循环顺序
type GridGenerator struct {
	symbols     []Symbol
	weights     []int
	totalWeight int
	randomGen   RandomGenerator
}

// NewGridGenerator 创建网格生成器
func NewGridGenerator(cfg *Config, randomGen RandomGenerator) (*GridGenerator, error) {
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	if randomGen == nil {
		randomGen = NewCryptoRandomGenerator()
	}

	g := &GridGenerator{
		symbols:   AllSymbols(),
		randomGen: randomGen,
	}
	g.weights = make([]int, len(g.symbols))
	for i, sym := range g.symbols {
		g.weights[i] = cfg.SymbolWeights[sym]
		g.totalWeight += g.weights[i]
	}

	return g, nil
}

// Generate 生成 5x3 网格
func (g *GridGenerator) Generate() Grid {
	var grid Grid
	for reel := 0; reel < NumReels; reel++ {
		for row := 0; row < NumRows; row++ {
			grid[reel][row] = g.selectSymbolByWeight()
		}
	}
	return grid
}

// selectSymbolByWeight 根据权重选择符号
func (g *GridGenerator) selectSymbolByWeight() Symbol {
	randomValue := g.randomGen.NextInt(0, g.totalWeight)

	currentWeight := 0
	for i, weight := range g.weights {
		currentWeight += weight
		if randomValue < currentWeight {
			return g.symbols[i]
		}
	}

	// 权重耗尽时兜底返回最后一个符号
	return g.symbols[len(g.symbols)-1]
}
