// Package dlog は整数(剰余なし)の離散対数 base^x = n を求める
// base^x は x に対して単調増加であることを利用しているので、群の要素には使えない
package dlog

import (
	"math/big"

	"github.com/cockroachdb/errors"
	"github.com/nicolas3355/discrete-log-toy/arithmetic"
)

// ErrNotFound n が base のちょうど冪乗になっていない
var ErrNotFound = errors.New("exact exponent not found")

// ErrDegenerateBase base が 1 以下だと冪乗が単調増加にならない
var ErrDegenerateBase = errors.New("base must be greater than 1")

var (
	one = big.NewInt(1)
	two = big.NewInt(2)
)

// NaiveLog base を掛け続けて n に一致した回数を返す O(x)
// 途中で n を超えたら ErrNotFound
func NaiveLog(n, base *big.Int) (*big.Int, error) {
	if base.Cmp(one) <= 0 {
		return nil, errors.Wrapf(ErrDegenerateBase, "base %s", base)
	}

	result := new(big.Int).Set(base)
	index := big.NewInt(1)
	for result.Cmp(n) != 0 {
		if result.Cmp(n) > 0 {
			return nil, errors.Wrapf(ErrNotFound, "%s is not a power of %s", n, base)
		}
		result.Mul(result, base)
		index.Add(index, one)
	}
	return index, nil
}

// BinarySearchLog 二乗を繰り返して指数の範囲 [exp, 2*exp] を決め、その範囲を二分探索する
func BinarySearchLog(n, base *big.Int) (*big.Int, error) {
	if base.Cmp(one) <= 0 {
		return nil, errors.Wrapf(ErrDegenerateBase, "base %s", base)
	}

	low, exact := exponentRange(n, base)
	if exact {
		return low, nil
	}

	l := low
	r := new(big.Int).Mul(low, two)
	for l.Cmp(r) <= 0 {
		mid := new(big.Int).Add(l, r)
		mid.Rsh(mid, 1)

		switch arithmetic.FastPow(base, mid).Cmp(n) {
		case -1:
			l = mid.Add(mid, one)
		case 1:
			r = mid.Sub(mid, one)
		default:
			return mid, nil
		}
	}
	return nil, errors.Wrapf(ErrNotFound, "%s is not a power of %s", n, base)
}

// exponentRange total*total <= n の間 total を二乗、exp を2倍する
// 指数は [exp, 2*exp] にあり、total == n なら exp がちょうどの指数
func exponentRange(n, base *big.Int) (*big.Int, bool) {
	total := new(big.Int).Set(base)
	exp := big.NewInt(1)
	squared := new(big.Int)
	for squared.Mul(total, total).Cmp(n) <= 0 {
		total.Set(squared)
		exp.Lsh(exp, 1)
	}
	return exp, total.Cmp(n) == 0
}
