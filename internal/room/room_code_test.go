package room

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateCode_Alphabet(t *testing.T) {
	for range 100 {
		code := GenerateCode(func(string) bool { return false })
		assert.Len(t, code, codeLength)
		for _, c := range code {
			assert.True(t, strings.ContainsRune(string(letters), c), "unexpected rune %q", c)
		}
		assert.NotContains(t, code, "0")
		assert.NotContains(t, code, "O")
	}
}

func TestGenerateCode_AvoidsTaken(t *testing.T) {
	taken := map[string]bool{}
	for range 500 {
		code := GenerateCode(func(c string) bool { return taken[c] })
		assert.False(t, taken[code])
		taken[code] = true
	}
}

func TestGenerateCode_GrowsWhenSaturated(t *testing.T) {
	code := GenerateCode(func(c string) bool { return len(c) == codeLength })
	assert.Len(t, code, codeLength+1)
}

func TestNormalizeCode(t *testing.T) {
	assert.Equal(t, "ABC234", NormalizeCode("  abc234\n"))
}
