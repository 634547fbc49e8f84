package slot

import (
	"crypto/rand"
	"math/big"
	mathrand "math/rand"
	"sync"
)

// CryptoRandomGenerator 加密安全的随机数生成器
type CryptoRandomGenerator struct{}

// NewCryptoRandomGenerator 创建加密随机数生成器
func NewCryptoRandomGenerator() *CryptoRandomGenerator {
	return &CryptoRandomGenerator{}
}

// Next 生成下一个随机数 (0-1)
func (g *CryptoRandomGenerator) Next() float64 {
	max := big.NewInt(1000000)
	n, _ := rand.Int(rand.Reader, max)
	return float64(n.Int64()) / 1000000.0
}

// NextInt 生成 [min, max) 范围内的随机整数
func (g *CryptoRandomGenerator) NextInt(min, max int) int {
	if min >= max {
		return min
	}
	diff := big.NewInt(int64(max - min))
	n, _ := rand.Int(rand.Reader, diff)
	return min + int(n.Int64())
}

// Seed 设置种子（加密随机数不需要种子）
func (g *CryptoRandomGenerator) Seed(seed int64) {}

// SeededRandomGenerator 可设置种子的随机数生成器（用于测试复现）
type SeededRandomGenerator struct {
	mu  sync.Mutex
	rng *mathrand.Rand
}

// NewSeededRandomGenerator 创建种子随机数生成器
func NewSeededRandomGenerator(seed int64) *SeededRandomGenerator {
	return &SeededRandomGenerator{
		rng: mathrand.New(mathrand.NewSource(seed)),
	}
}

// Next 生成下一个随机数 (0-1)
func (g *SeededRandomGenerator) Next() float64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.rng.Float64()
}

// NextInt 生成 [min, max) 范围内的随机整数
func (g *SeededRandomGenerator) NextInt(min, max int) int {
	if min >= max {
		return min
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return min + g.rng.Intn(max-min)
}

// Seed 重置种子
func (g *SeededRandomGenerator) Seed(seed int64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.rng = mathrand.New(mathrand.NewSource(seed))
}
