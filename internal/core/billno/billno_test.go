package billno

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew_Format(t *testing.T) {
	for i := 0; i < 100; i++ {
		no := New()
		assert.Len(t, no, Length)
		for _, r := range no {
			assert.True(t, strings.ContainsRune(Alphabet, r), "unexpected character %q in %s", r, no)
		}
	}
}

func TestNew_NotConstant(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		seen[New()] = true
	}
	// 50 draws from a 36^8 space must not all collide
	assert.Greater(t, len(seen), 1)
}
