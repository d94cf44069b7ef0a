package textutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFold(t *testing.T) {
	assert.Equal(t, "first blood", Fold("First BLOOD"))
	assert.Equal(t, "", Fold(""))
}

func TestContainsFold(t *testing.T) {
	assert.True(t, ContainsFold("Axe_Responses", "axe"))
	assert.True(t, ContainsFold("Axe_Responses", ""))
	assert.False(t, ContainsFold("Axe_Responses", "tide"))
}

func TestTrimSuffixFold(t *testing.T) {
	assert.Equal(t, "Axe", TrimSuffixFold("Axe_Responses", "_responses"))
	assert.Equal(t, "Axe", TrimSuffixFold("Axe_responses", "_responses"))
	assert.Equal(t, "Axe", TrimSuffixFold("Axe", "_responses"))
	assert.Equal(t, "Axe_responses_x", TrimSuffixFold("Axe_responses_x", "_responses"))
	assert.Equal(t, "Axe", TrimSuffixFold("Axe", ""))
}

func TestWordBoundaryHelpers(t *testing.T) {
	s := "héllo, wörld_1"
	assert.False(t, WordBefore(s, 0))
	assert.True(t, WordAt(s, 0))
	assert.True(t, WordBefore(s, len("héllo")))
	assert.False(t, WordAt(s, len("héllo")))
	assert.True(t, WordBefore(s, len(s)))
	assert.False(t, WordAt(s, len(s)))
	assert.True(t, IsWordRune('_'))
	assert.False(t, IsWordRune('!'))
}
