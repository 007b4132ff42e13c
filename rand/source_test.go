package rand

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew_Deterministic(t *testing.T) {
	a := New(42)
	b := New(42)

	for i := 0; i < 10; i++ {
		assert.Equal(t, a.Int63(), b.Int63())
	}
}

func TestNewSeeded(t *testing.T) {
	r, err := NewSeeded()

	assert.NoError(t, err)
	assert.NotNil(t, r)
}
