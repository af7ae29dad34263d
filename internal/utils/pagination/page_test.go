package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeDefaults(t *testing.T) {
	p := Normalize(0, 0)
	assert.Equal(t, 1, p.Number)
	assert.Equal(t, DefaultLimit, p.Limit)
	assert.Equal(t, 0, p.Offset)
}

func TestNormalizeClampsLimit(t *testing.T) {
	p := Normalize(1, 500)
	assert.Equal(t, MaxLimit, p.Limit)

	p = Normalize(1, -3)
	assert.Equal(t, DefaultLimit, p.Limit)
}

func TestNormalizeOffset(t *testing.T) {
	p := Normalize(3, 20)
	assert.Equal(t, 40, p.Offset)
}

func TestNormalizeNegativePage(t *testing.T) {
	p := Normalize(-5, 10)
	assert.Equal(t, 1, p.Number)
	assert.Equal(t, 0, p.Offset)
}

func TestHasMore(t *testing.T) {
	assert.True(t, HasMore(10, 10))
	assert.False(t, HasMore(7, 10))
	assert.False(t, HasMore(0, 10))
}
