package slot

import (
	"testing"
)

// sequenceRandom 按预设序列返回的随机数生成器（测试用）
type sequenceRandom struct {
	values []int
	index  int
}

func (r *sequenceRandom) Next() float64 { return 0 }

func (r *sequenceRandom) NextInt(min, max int) int {
	if r.index >= len(r.values) {
		return min
	}
	v := r.values[r.index]
	r.index++
	return v
}

func (r *sequenceRandom) Seed(seed int64) {}

func TestNewGridGenerator(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *Config
		wantErr bool
	}{
		{
			name:    "默认配置",
			cfg:     DefaultConfig(),
			wantErr: false,
		},
		{
			name: "缺失符号权重",
			cfg: func() *Config {
				cfg := DefaultConfig()
				delete(cfg.SymbolWeights, SymbolSeven)
				return cfg
			}(),
			wantErr: true,
		},
		{
			name: "非正权重",
			cfg: func() *Config {
				cfg := DefaultConfig()
				cfg.SymbolWeights[SymbolCherry] = 0
				return cfg
			}(),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen, err := NewGridGenerator(tt.cfg, nil)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewGridGenerator() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && gen == nil {
				t.Error("NewGridGenerator() returned nil generator")
			}
		})
	}
}

func TestGridGenerator_Generate(t *testing.T) {
	gen, err := NewGridGenerator(DefaultConfig(), NewSeededRandomGenerator(42))
	if err != nil {
		t.Fatalf("NewGridGenerator() error = %v", err)
	}

	grid := gen.Generate()

	// 所有格子都是已知符号
	for reel := 0; reel < NumReels; reel++ {
		for row := 0; row < NumRows; row++ {
			if !grid[reel][row].Valid() {
				t.Errorf("grid[%d][%d] = %q 不是已知符号", reel, row, grid[reel][row])
			}
		}
	}
}

func TestGridGenerator_Deterministic(t *testing.T) {
	gen1, _ := NewGridGenerator(DefaultConfig(), NewSeededRandomGenerator(7))
	gen2, _ := NewGridGenerator(DefaultConfig(), NewSeededRandomGenerator(7))

	// 相同种子生成相同序列
	for i := 0; i < 10; i++ {
		if gen1.Generate() != gen2.Generate() {
			t.Fatalf("第%d次生成结果不一致", i+1)
		}
	}
}

func TestGridGenerator_WeightBoundaries(t *testing.T) {
	cfg := DefaultConfig()
	totalWeight := 0
	for _, w := range cfg.SymbolWeights {
		totalWeight += w
	}

	// 随机值0落在第一个符号，最大值落在最后一个符号
	seq := &sequenceRandom{values: []int{0, totalWeight - 1}}
	gen, err := NewGridGenerator(cfg, seq)
	if err != nil {
		t.Fatalf("NewGridGenerator() error = %v", err)
	}

	if sym := gen.selectSymbolByWeight(); sym != SymbolCherry {
		t.Errorf("随机值0选中 %s, want %s", sym, SymbolCherry)
	}
	if sym := gen.selectSymbolByWeight(); sym != SymbolWild {
		t.Errorf("随机值%d选中 %s, want %s", totalWeight-1, sym, SymbolWild)
	}
}

func TestGridGenerator_WeightDistribution(t *testing.T) {
	cfg := DefaultConfig()
	gen, err := NewGridGenerator(cfg, NewSeededRandomGenerator(1))
	if err != nil {
		t.Fatalf("NewGridGenerator() error = %v", err)
	}

	counts := make(map[Symbol]int)
	for i := 0; i < 2000; i++ {
		grid := gen.Generate()
		for reel := 0; reel < NumReels; reel++ {
			for row := 0; row < NumRows; row++ {
				counts[grid[reel][row]]++
			}
		}
	}

	// 高权重符号应明显多于低权重符号
	if counts[SymbolCherry] <= counts[SymbolSeven] {
		t.Errorf("樱桃出现%d次不应少于7的%d次", counts[SymbolCherry], counts[SymbolSeven])
	}
	if counts[SymbolLemon] <= counts[SymbolWild] {
		t.Errorf("柠檬出现%d次不应少于Wild的%d次", counts[SymbolLemon], counts[SymbolWild])
	}
}
