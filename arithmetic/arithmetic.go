package arithmetic

import "math/big"

var one = big.NewInt(1)

// NaivePow 冪乗を素朴に求める(base を exp-1 回掛けるので O(exp))
// 比較・検証用。exp が負の場合は panic
func NaivePow(base, exp *big.Int) *big.Int {
	if exp.Sign() < 0 {
		panic("exp must be >= 0")
	}
	if exp.Sign() == 0 {
		return big.NewInt(1)
	}

	result := new(big.Int).Set(base)
	for i := big.NewInt(1); i.Cmp(exp) < 0; i.Add(i, one) {
		result.Mul(result, base)
	}
	return result
}

// FastPow 冪乗(繰り返し二乗法) 剰余を取らないので結果はいくらでも大きくなる
// 掛け算の回数は O(log exp)
func FastPow(base, exp *big.Int) *big.Int {
	if exp.Sign() < 0 {
		panic("exp must be >= 0")
	}
	if exp.Sign() == 0 {
		return big.NewInt(1)
	}
	if exp.Cmp(one) == 0 {
		return new(big.Int).Set(base)
	}

	squared := new(big.Int).Mul(base, base)
	// 奇数でも右へ1bitずらせば (exp-1)/2 になる
	half := new(big.Int).Rsh(exp, 1)
	if exp.Bit(0) == 0 {
		return FastPow(squared, half)
	}
	return new(big.Int).Mul(base, FastPow(squared, half))
}

// ModPow 冪乗のMod(繰り返し二乗法)
// exp は呼び出し側で縮約済みであること。mod は 1 より大きいこと
func ModPow(base, exp, mod *big.Int) *big.Int {
	if exp.Sign() < 0 {
		panic("exp must be >= 0")
	}
	if exp.Sign() == 0 {
		return big.NewInt(1)
	}
	if exp.Cmp(one) == 0 {
		return new(big.Int).Mod(base, mod)
	}

	squared := new(big.Int).Mul(base, base)
	squared.Mod(squared, mod)
	half := new(big.Int).Rsh(exp, 1)
	if exp.Bit(0) == 0 {
		return ModPow(squared, half, mod)
	}

	result := new(big.Int).Mul(base, ModPow(squared, half, mod))
	return result.Mod(result, mod)
}
