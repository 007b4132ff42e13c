package generator

import (
	"math/big"

	"github.com/cockroachdb/errors"
	"github.com/nicolas3355/discrete-log-toy/group"
	"github.com/sirupsen/logrus"
)

// ErrNotFound 1 から modulus-1 まで探しても生成元が見つからない
var ErrNotFound = errors.New("generator not found")

// ErrNotGenerator 生成元でない要素から群を列挙しようとした
var ErrNotGenerator = errors.New("element is not a generator")

var logger = logrus.WithFields(logrus.Fields{
	"component": "generator",
})

var one = big.NewInt(1)

// IsGenerator g^0 .. g^(order-1) を全て計算し、重複なく群全体を覆うか確認する
// O(order * log(order)) なので小さい素数向け
func IsGenerator(g group.Element) (bool, error) {
	if g.IsZero() {
		return false, errors.Wrap(group.ErrOutOfRange, "uninitialized element")
	}

	order := g.Order()
	elems := make(map[string]struct{})
	for i := big.NewInt(0); i.Cmp(order) < 0; i.Add(i, one) {
		e, err := g.Pow(i)
		if err != nil {
			return false, errors.Errorf("power %s of %s: %w", i, g, err)
		}
		elems[e.Key()] = struct{}{}
	}

	return big.NewInt(int64(len(elems))).Cmp(order) == 0, nil
}

// Find 1, 2, ... modulus-1 の順に調べて最初に見つかった生成元を返す
func Find(modulus *big.Int) (group.Element, error) {
	for v := big.NewInt(1); v.Cmp(modulus) < 0; v.Add(v, one) {
		candidate, err := group.New(v, modulus)
		if err != nil {
			return group.Element{}, err
		}

		ok, err := IsGenerator(candidate)
		if err != nil {
			return group.Element{}, err
		}
		if ok {
			logger.WithFields(logrus.Fields{
				"modulus":   modulus.String(),
				"generator": candidate.String(),
			}).Debug("generator found")
			return candidate, nil
		}
	}

	return group.Element{}, errors.Wrapf(ErrNotFound, "modulus %s", modulus)
}

// Enumerate 生成元 g から [g^0, g^1, ..., g^(order-1)] を返す
func Enumerate(g group.Element) ([]group.Element, error) {
	ok, err := IsGenerator(g)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.Wrapf(ErrNotGenerator, "%s", g)
	}

	order := g.Order()
	elems := make([]group.Element, 0, order.Int64())
	for i := big.NewInt(0); i.Cmp(order) < 0; i.Add(i, one) {
		e, err := g.Pow(i)
		if err != nil {
			return nil, errors.Errorf("power %s of %s: %w", i, g, err)
		}
		elems = append(elems, e)
	}

	if big.NewInt(int64(len(elems))).Cmp(order) != 0 {
		return nil, errors.AssertionFailedf("enumerated %d elements, want %s", len(elems), order)
	}
	return elems, nil
}

// EnumerateByMul g を掛け続けて列挙する 結果は Enumerate と同じ順序になる
func EnumerateByMul(g group.Element) ([]group.Element, error) {
	ok, err := IsGenerator(g)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.Wrapf(ErrNotGenerator, "%s", g)
	}

	identity, err := group.New(one, g.Modulus())
	if err != nil {
		return nil, err
	}

	order := g.Order().Int64()
	elems := make([]group.Element, 0, order)
	elem := identity
	for i := int64(0); i < order; i++ {
		elems = append(elems, elem)
		if elem, err = elem.Mul(g); err != nil {
			return nil, err
		}
	}
	return elems, nil
}
