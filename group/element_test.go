package group

import (
	"encoding/json"
	"math/big"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		value   int64
		modulus int64
		wantErr error
	}{
		{name: "正常系: 上限", value: 4, modulus: 5},
		{name: "正常系: 下限", value: 1, modulus: 5},
		{name: "異常系: 0", value: 0, modulus: 5, wantErr: ErrOutOfRange},
		{name: "異常系: modulusと同値", value: 5, modulus: 5, wantErr: ErrOutOfRange},
		{name: "異常系: 負数", value: -1, modulus: 5, wantErr: ErrOutOfRange},
		{name: "異常系: modulusより大きい", value: 9, modulus: 5, wantErr: ErrOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := NewInt64(tt.value, tt.modulus)
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr))
				assert.True(t, e.IsZero())
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.value, e.Value().Int64())
			assert.Equal(t, tt.modulus, e.Modulus().Int64())
		})
	}
}

func TestNew_CopiesInput(t *testing.T) {
	v, p := big.NewInt(3), big.NewInt(7)
	e, err := New(v, p)
	require.NoError(t, err)

	v.SetInt64(6)
	e.Value().SetInt64(5)

	assert.Equal(t, int64(3), e.Value().Int64())
}

func TestElement_Mul(t *testing.T) {
	p := int64(23)
	for a := int64(1); a < p; a++ {
		for b := int64(1); b < p; b++ {
			x, _ := NewInt64(a, p)
			y, _ := NewInt64(b, p)

			got, err := x.Mul(y)
			require.NoError(t, err)
			assert.Equal(t, (a*b)%p, got.Value().Int64())
		}
	}
}

func TestElement_Mul_DomainMismatch(t *testing.T) {
	x, _ := NewInt64(2, 5)
	y, _ := NewInt64(2, 7)

	_, err := x.Mul(y)
	assert.True(t, errors.Is(err, ErrDomainMismatch))

	_, err = x.Mul(Element{})
	assert.True(t, errors.Is(err, ErrDomainMismatch))
}

func TestElement_Pow(t *testing.T) {
	g, _ := NewInt64(3, 7)

	tests := []struct {
		name     string
		exponent int64
		want     int64
	}{
		{name: "正常系: 0乗", exponent: 0, want: 1},
		{name: "正常系: 1乗", exponent: 1, want: 3},
		{name: "正常系: 偶数乗", exponent: 2, want: 2},
		{name: "正常系: 奇数乗", exponent: 5, want: 5},
		{name: "正常系: 位数で縮約", exponent: 6, want: 1},
		{name: "正常系: 位数より大きい", exponent: 13, want: 3},
		{name: "正常系: 負の指数", exponent: -1, want: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := g.PowInt64(tt.exponent)

			assert.NoError(t, err)
			assert.Equal(t, tt.want, got.Value().Int64())
			assert.Equal(t, int64(7), got.Modulus().Int64())
		})
	}
}

func TestElement_Pow_Fermat(t *testing.T) {
	for _, p := range []int64{5, 7, 11, 23, 101} {
		for v := int64(1); v < p; v++ {
			e, _ := NewInt64(v, p)
			got, err := e.PowInt64(p - 1)

			require.NoError(t, err)
			assert.Equal(t, int64(1), got.Value().Int64())
		}
	}
}

func TestElement_Pow_MatchesExp(t *testing.T) {
	p := big.NewInt(1000003)
	e, _ := New(big.NewInt(12345), p)
	exp := new(big.Int).Lsh(big.NewInt(1), 100)

	got, err := e.Pow(exp)
	require.NoError(t, err)

	want := new(big.Int).Exp(big.NewInt(12345), exp, p)
	assert.Equal(t, 0, want.Cmp(got.Value()))
}

func TestElement_Pow_Uninitialized(t *testing.T) {
	_, err := Element{}.PowInt64(2)

	assert.True(t, errors.Is(err, ErrOutOfRange))
}

func TestElement_Pow_CompositeModulus(t *testing.T) {
	// 素数でない modulus は検証しないので 0 になった時点でエラー
	e, _ := NewInt64(2, 4)
	_, err := e.PowInt64(2)

	assert.True(t, errors.Is(err, ErrOutOfRange))
}

func TestElement_EqualAndKey(t *testing.T) {
	a, _ := NewInt64(3, 7)
	b, _ := NewInt64(3, 7)
	c, _ := NewInt64(3, 11)
	d, _ := NewInt64(4, 7)

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(d))
	assert.False(t, a.Equal(Element{}))

	set := map[string]Element{}
	for _, e := range []Element{a, b, c, d} {
		set[e.Key()] = e
	}
	assert.Len(t, set, 3)
}

func TestElement_String(t *testing.T) {
	e, _ := NewInt64(3, 7)

	assert.Equal(t, "GroupElement_7(3)", e.String())
	assert.Equal(t, "GroupElement(nil)", Element{}.String())
}

func TestElement_JSON(t *testing.T) {
	e, _ := NewInt64(5, 23)

	b, err := json.Marshal(e)
	require.NoError(t, err)
	assert.JSONEq(t, `{"value":"5","modulus":"23"}`, string(b))

	var got Element
	require.NoError(t, json.Unmarshal(b, &got))
	assert.True(t, e.Equal(got))
}

func TestElement_UnmarshalJSON_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "異常系: 範囲外", input: `{"value":"23","modulus":"23"}`},
		{name: "異常系: 数値でない", input: `{"value":"x","modulus":"23"}`},
		{name: "異常系: JSONでない", input: `[`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got Element
			assert.Error(t, json.Unmarshal([]byte(tt.input), &got))
		})
	}
}
