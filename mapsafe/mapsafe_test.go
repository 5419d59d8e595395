package mapsafe

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGet_TypedValues(t *testing.T) {
	m := map[string]any{
		"region":     "us-east-1",
		"path_style": true,
		"workers":    4,
	}

	assert.Equal(t, "us-east-1", Get(m, "region", ""))
	assert.True(t, Get(m, "path_style", false))
	assert.Equal(t, 4, Get(m, "workers", 1))
}

func TestGet_Defaults(t *testing.T) {
	m := map[string]any{"region": 42}

	// Missing key
	assert.Equal(t, "fallback", Get(m, "endpoint", "fallback"))

	// Wrong type
	assert.Equal(t, "fallback", Get(m, "region", "fallback"))

	// Nil map
	assert.False(t, Get(nil, "path_style", false))
}

func TestGet_NumericConversion(t *testing.T) {
	// JSON decoding produces float64 for numbers.
	m := map[string]any{"workers": float64(8)}

	assert.Equal(t, 8, Get(m, "workers", 1))
	assert.Equal(t, float64(8), Get(m, "workers", float64(1)))
}
