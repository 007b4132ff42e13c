package rand

import (
	crand "crypto/rand"
	"encoding/binary"
	"math/rand"

	"github.com/cockroachdb/errors"
)

// New シードを固定した乱数源 テスト・再現用
func New(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// NewSeeded crypto/rand から取ったシードで乱数源を作る
func NewSeeded() (*rand.Rand, error) {
	seed, err := CryptoSeed()
	if err != nil {
		return nil, err
	}
	return New(seed), nil
}

// CryptoSeed crypto/randを使用してシードを生成
func CryptoSeed() (int64, error) {
	b := make([]byte, 8)
	if _, err := crand.Read(b); err != nil {
		return 0, errors.Errorf("failed to generate random seed: %w", err)
	}
	return int64(binary.BigEndian.Uint64(b)), nil
}
