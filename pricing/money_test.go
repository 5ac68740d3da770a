package pricing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLineTotal(t *testing.T) {
	tests := []struct {
		name     string
		quantity int
		price    int64
		want     int64
		ok       bool
	}{
		{"regular", 3, 9500, 28500, true},
		{"free item", math.MaxInt, 0, 0, true},
		{"largest fitting", 1, math.MaxInt64, math.MaxInt64, true},
		{"overflow", 2, math.MaxInt64/2 + 1, 0, false},
		{"negative price", 1, -1, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := LineTotal(tt.quantity, tt.price)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAddAmount(t *testing.T) {
	sum, ok := AddAmount(math.MaxInt64-1, 1)
	assert.True(t, ok)
	assert.Equal(t, int64(math.MaxInt64), sum)

	_, ok = AddAmount(math.MaxInt64, 1)
	assert.False(t, ok)
}
