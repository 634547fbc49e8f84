package slot

// Symbol 游戏符号
type Symbol string

const (
	SymbolCherry Symbol = "CHERRY" // 樱桃
	SymbolLemon  Symbol = "LEMON"  // 柠檬
	SymbolOrange Symbol = "ORANGE" // 橙子
	SymbolPlum   Symbol = "PLUM"   // 李子
	SymbolBell   Symbol = "BELL"   // 铃铛
	SymbolBar    Symbol = "BAR"    // BAR
	SymbolSeven  Symbol = "SEVEN"  // 7
	SymbolWild   Symbol = "WILD"   // 百搭
)

// allSymbols 全部符号（顺序固定，权重抽样按此顺序遍历）
var allSymbols = []Symbol{
	SymbolCherry,
	SymbolLemon,
	SymbolOrange,
	SymbolPlum,
	SymbolBell,
	SymbolBar,
	SymbolSeven,
	SymbolWild,
}

// symbolDisplay 符号显示字符
var symbolDisplay = map[Symbol]string{
	SymbolCherry: "🍒",
	SymbolLemon:  "🍋",
	SymbolOrange: "🍊",
	SymbolPlum:   "🍇",
	SymbolBell:   "🔔",
	SymbolBar:    "BAR",
	SymbolSeven:  "7",
	SymbolWild:   "⭐",
}

// AllSymbols 返回全部符号的副本
func AllSymbols() []Symbol {
	symbols := make([]Symbol, len(allSymbols))
	copy(symbols, allSymbols)
	return symbols
}

// IsWild 是否为百搭符号
func (s Symbol) IsWild() bool {
	return s == SymbolWild
}

// Valid 是否为已知符号
func (s Symbol) Valid() bool {
	for _, sym := range allSymbols {
		if s == sym {
			return true
		}
	}
	return false
}

// Display 获取符号的显示字符
func (s Symbol) Display() string {
	if d, ok := symbolDisplay[s]; ok {
		return d
	}
	return string(s)
}
