package slot

import (
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(cfg *Config)
		wantErr error
	}{
		{
			name:    "默认配置有效",
			modify:  func(cfg *Config) {},
			wantErr: nil,
		},
		{
			name: "支付线行索引越界",
			modify: func(cfg *Config) {
				cfg.Paylines[0].Rows[2] = NumRows
			},
			wantErr: ErrInvalidPaylines,
		},
		{
			name: "支付线ID不连续",
			modify: func(cfg *Config) {
				cfg.Paylines[1].ID = 7
			},
			wantErr: ErrInvalidPaylines,
		},
		{
			name: "赔率表连续数越界",
			modify: func(cfg *Config) {
				cfg.Paytable[SymbolCherry][6] = 100
			},
			wantErr: ErrInvalidPaytable,
		},
		{
			name: "赔率表包含未知符号",
			modify: func(cfg *Config) {
				cfg.Paytable[Symbol("DIAMOND")] = map[int]int64{3: 10}
			},
			wantErr: ErrInvalidPaytable,
		},
		{
			name: "最小下注大于最大下注",
			modify: func(cfg *Config) {
				cfg.MinBet = cfg.MaxBet + 1
			},
			wantErr: ErrInvalidConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			if err := Validate(cfg); err != tt.wantErr {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_Multiplier(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		symbol Symbol
		count  int
		want   int64
	}{
		{SymbolCherry, 3, 5},
		{SymbolCherry, 5, 25},
		{SymbolSeven, 5, 500},
		{SymbolWild, 5, 2000},
		{SymbolCherry, 2, 0},  // 缺项视为0
		{Symbol("DIAMOND"), 3, 0}, // 未知符号视为0
	}

	for _, tt := range tests {
		if got := cfg.Multiplier(tt.symbol, tt.count); got != tt.want {
			t.Errorf("Multiplier(%s, %d) = %d, want %d", tt.symbol, tt.count, got, tt.want)
		}
	}
}

func TestSymbol(t *testing.T) {
	if !SymbolWild.IsWild() {
		t.Error("SymbolWild.IsWild() = false, want true")
	}
	if SymbolCherry.IsWild() {
		t.Error("SymbolCherry.IsWild() = true, want false")
	}
	if !SymbolBell.Valid() {
		t.Error("SymbolBell.Valid() = false, want true")
	}
	if Symbol("DIAMOND").Valid() {
		t.Error(`Symbol("DIAMOND").Valid() = true, want false`)
	}
	if len(AllSymbols()) != 8 {
		t.Errorf("AllSymbols() 返回%d个符号, want 8", len(AllSymbols()))
	}
}

func TestGrid_Rows(t *testing.T) {
	var grid Grid
	for reel := 0; reel < NumReels; reel++ {
		for row := 0; row < NumRows; row++ {
			grid[reel][row] = allSymbols[(reel+row)%len(allSymbols)]
		}
	}

	rows := grid.Rows()
	if len(rows) != NumRows {
		t.Fatalf("Rows() 返回%d行, want %d", len(rows), NumRows)
	}
	for row := 0; row < NumRows; row++ {
		for reel := 0; reel < NumReels; reel++ {
			if rows[row][reel] != grid[reel][row] {
				t.Errorf("rows[%d][%d] = %s, want %s", row, reel, rows[row][reel], grid[reel][row])
			}
		}
	}
}
