// Package dhe は (Z/pZ)* 上の Diffie-Hellman 鍵交換を模擬する
//
// 安全素数 p = 2q+1 と生成元 g は公開情報。教材用なので群は小さく、
// 生成元の列挙で離散対数を解けば共有鍵を復元できる(BreakSharedSecret)
package dhe

import (
	"math/big"
	"math/rand"

	"github.com/cockroachdb/errors"
	"github.com/nicolas3355/discrete-log-toy/crypter"
	"github.com/nicolas3355/discrete-log-toy/generator"
	"github.com/nicolas3355/discrete-log-toy/group"
	dlrand "github.com/nicolas3355/discrete-log-toy/rand"
)

var (
	// ErrInvalidParams q が正でない、または当事者間でパラメータが異なる
	ErrInvalidParams = errors.New("invalid exchange parameters")
	// ErrInvalidState 状態遷移の順序が正しくない
	ErrInvalidState = errors.New("invalid party state")
	// ErrSharedSecretMismatch 双方の共有鍵が一致しない
	ErrSharedSecretMismatch = errors.New("shared secrets differ")
	// ErrNotFound 公開鍵が生成元の列挙に含まれない
	ErrNotFound = errors.New("public key not found in enumeration")
)

var (
	one = big.NewInt(1)
	two = big.NewInt(2)
)

// Params 公開パラメータ
type Params struct {
	P *big.Int
	Q *big.Int
	G group.Element
}

// NewParams 素数 q から安全素数 p = 2q+1 を作り、生成元を探す
// q, p の素数性は検証しない
func NewParams(q *big.Int) (*Params, error) {
	if q.Sign() <= 0 {
		return nil, errors.Wrapf(ErrInvalidParams, "q must be positive: %s", q)
	}

	p := new(big.Int).Mul(q, two)
	p.Add(p, one)

	g, err := generator.Find(p)
	if err != nil {
		return nil, errors.Errorf("find generator of %s: %w", p, err)
	}

	return &Params{
		P: p,
		Q: new(big.Int).Set(q),
		G: g,
	}, nil
}

// Equal P, Q, G が全て一致するか
func (p *Params) Equal(other *Params) bool {
	if p == nil || other == nil {
		return p == other
	}
	return p.P.Cmp(other.P) == 0 && p.Q.Cmp(other.Q) == 0 && p.G.Equal(other.G)
}

// GenerateKeyPair 秘密鍵を {0..q} から一様に選んで2倍する(平方剰余の部分群を狙う)
// 公開鍵は g^secret
func GenerateKeyPair(params *Params, r *rand.Rand) (*big.Int, group.Element, error) {
	secret := dlrand.BigIntBetween(r, big.NewInt(0), params.Q, true, true)
	secret.Lsh(secret, 1)

	public, err := params.G.Pow(secret)
	if err != nil {
		return nil, group.Element{}, errors.Errorf("compute public key: %w", err)
	}
	return secret, public, nil
}

// DeriveSharedSecret 相手の公開鍵を自分の秘密鍵で冪乗する (g^b)^a = g^ab
func DeriveSharedSecret(secret *big.Int, counterpart group.Element) (group.Element, error) {
	shared, err := counterpart.Pow(secret)
	if err != nil {
		return group.Element{}, errors.Errorf("derive shared secret: %w", err)
	}
	return shared, nil
}

// RecoverExponent 列挙 [g^0, g^1, ...] を線形に探して target の指数を返す O(order)
func RecoverExponent(target group.Element, enumeration []group.Element) (*big.Int, error) {
	for i, e := range enumeration {
		if e.Equal(target) {
			return big.NewInt(int64(i)), nil
		}
	}
	return nil, errors.Wrapf(ErrNotFound, "%s", target)
}

// BreakSharedSecret target の秘密鍵を列挙から復元し、other の公開鍵と組み合わせて共有鍵を再現する
func BreakSharedSecret(target, other group.Element, enumeration []group.Element) (group.Element, error) {
	exp, err := RecoverExponent(target, enumeration)
	if err != nil {
		return group.Element{}, err
	}
	return DeriveSharedSecret(exp, other)
}

// SessionCrypter 共有鍵から AES の暗号器を作る
// 共有鍵が同じなら誰が作っても同じ鍵になるので、Break で復元した共有鍵でも復号できる
func SessionCrypter(shared group.Element) (crypter.Crypter, error) {
	if shared.IsZero() {
		return nil, errors.Wrap(ErrInvalidState, "no shared secret")
	}
	return crypter.NewAesFromSecret(shared.Value().Bytes())
}
