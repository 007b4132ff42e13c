package group

import (
	"encoding/json"
	"fmt"
	"math/big"

	"github.com/cockroachdb/errors"
	"github.com/nicolas3355/discrete-log-toy/arithmetic"
)

// ErrOutOfRange 値が 1 から modulus-1 の範囲外
var ErrOutOfRange = errors.New("value not in group range")

// ErrDomainMismatch modulus の異なる要素同士の演算
var ErrDomainMismatch = errors.New("elements belong to different groups")

var one = big.NewInt(1)

// Element は (Z/pZ)* の要素。不変で、演算は常に新しい要素を返す
// modulus は素数である前提(検証はしない)
type Element struct {
	value   *big.Int
	modulus *big.Int
}

// New コンストラクタ 0 < value < modulus でなければ ErrOutOfRange
func New(value, modulus *big.Int) (Element, error) {
	if value.Sign() <= 0 || value.Cmp(modulus) >= 0 {
		return Element{}, errors.Wrapf(ErrOutOfRange, "num %s not in group range 1 to %s", value, new(big.Int).Sub(modulus, one))
	}
	return Element{
		value:   new(big.Int).Set(value),
		modulus: new(big.Int).Set(modulus),
	}, nil
}

// NewInt64 int64 版のコンストラクタ
func NewInt64(value, modulus int64) (Element, error) {
	return New(big.NewInt(value), big.NewInt(modulus))
}

// Value 値のコピーを返す
func (e Element) Value() *big.Int {
	if e.value == nil {
		return nil
	}
	return new(big.Int).Set(e.value)
}

// Modulus 法のコピーを返す
func (e Element) Modulus() *big.Int {
	if e.modulus == nil {
		return nil
	}
	return new(big.Int).Set(e.modulus)
}

// Order 群の位数 (modulus-1)
func (e Element) Order() *big.Int {
	return new(big.Int).Sub(e.modulus, one)
}

// IsZero New を経由していないゼロ値かどうか
func (e Element) IsZero() bool {
	return e.value == nil || e.modulus == nil
}

// Mul 積 (a*b) mod p
func (e Element) Mul(other Element) (Element, error) {
	if e.IsZero() || other.IsZero() || e.modulus.Cmp(other.modulus) != 0 {
		return Element{}, errors.Wrapf(ErrDomainMismatch, "cannot multiply %s and %s", e, other)
	}
	num := new(big.Int).Mul(e.value, other.value)
	return New(num.Mod(num, e.modulus), e.modulus)
}

// Pow 冪乗 指数はフェルマーの小定理により modulus-1 で縮約してから計算する
// 負の指数も縮約で非負になる
func (e Element) Pow(exponent *big.Int) (Element, error) {
	if e.IsZero() {
		return Element{}, errors.Wrap(ErrOutOfRange, "power of uninitialized element")
	}
	n := new(big.Int).Mod(exponent, e.Order())
	num := arithmetic.ModPow(e.value, n, e.modulus)
	return New(num, e.modulus)
}

// PowInt64 int64 版の Pow
func (e Element) PowInt64(exponent int64) (Element, error) {
	return e.Pow(big.NewInt(exponent))
}

// Equal value と modulus が一致すれば等しい
func (e Element) Equal(other Element) bool {
	if e.IsZero() || other.IsZero() {
		return false
	}
	return e.value.Cmp(other.value) == 0 && e.modulus.Cmp(other.modulus) == 0
}

// Key map のキー用 (value, modulus) から一意に決まる
func (e Element) Key() string {
	if e.IsZero() {
		return ""
	}
	return e.modulus.Text(16) + ":" + e.value.Text(16)
}

func (e Element) String() string {
	if e.IsZero() {
		return "GroupElement(nil)"
	}
	return fmt.Sprintf("GroupElement_%s(%s)", e.modulus, e.value)
}

type elementJSON struct {
	Value   string `json:"value"`
	Modulus string `json:"modulus"`
}

// MarshalJSON 10進数の文字列で出力
func (e Element) MarshalJSON() ([]byte, error) {
	if e.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(elementJSON{Value: e.value.String(), Modulus: e.modulus.String()})
}

// UnmarshalJSON New と同じ範囲チェックを行う
func (e *Element) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}
	var in elementJSON
	if err := json.Unmarshal(b, &in); err != nil {
		return errors.Errorf("failed to json unmarshal element: %w", err)
	}
	value, ok := new(big.Int).SetString(in.Value, 10)
	if !ok {
		return errors.Errorf("invalid element value %q", in.Value)
	}
	modulus, ok := new(big.Int).SetString(in.Modulus, 10)
	if !ok {
		return errors.Errorf("invalid element modulus %q", in.Modulus)
	}

	elem, err := New(value, modulus)
	if err != nil {
		return err
	}
	*e = elem
	return nil
}
