package rand

import (
	"math/big"
	"math/rand"
)

var one = big.NewInt(1)

// BigIntBetween 特定範囲から r を使ってランダム値を取得
// r を差し替えればテストで値を固定できる
func BigIntBetween(r *rand.Rand, min, max *big.Int, isMinInclusive bool, isMaxInclusive bool) *big.Int {
	if min.Cmp(max) > 0 {
		panic("min must be <= max")
	}

	width := new(big.Int).Sub(max, min)

	// 両端は含む
	if isMinInclusive && isMaxInclusive {
		n := new(big.Int).Rand(r, width.Add(width, one))
		return n.Add(n, min)
	}

	// 最小は含む
	if isMinInclusive {
		if width.Cmp(one) < 0 {
			panic("need min < max for [min, max)")
		}
		n := new(big.Int).Rand(r, width)
		return n.Add(n, min)
	}

	// 最大は含む
	if isMaxInclusive {
		if width.Cmp(one) < 0 {
			panic("need min < max for (min, max]")
		}
		n := new(big.Int).Rand(r, width)
		n.Add(n, min)
		return n.Add(n, one)
	}

	// 両端は含まない
	if width.Cmp(big.NewInt(2)) < 0 {
		panic("need max-min >= 2 for (min, max)")
	}
	n := new(big.Int).Rand(r, width.Sub(width, one))
	n.Add(n, min)
	return n.Add(n, one)
}
