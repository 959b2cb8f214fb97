package ghost

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cand(pattern string, count, first int) candidate {
	return candidate{pattern: []byte(pattern), count: count, first: first}
}

func TestSavings(t *testing.T) {
	// count*(length-1) minus the fixed entry overhead.
	assert.Equal(t, 2, savings(cand("ab", 4, 0)))
	assert.Equal(t, 8, savings(cand("abc", 5, 0)))
	assert.Equal(t, -2, savings(cand("a", 100, 0)), "single-byte patterns never pay off")
}

func TestSelectCandidateLargestSavings(t *testing.T) {
	perLength := [][]candidate{
		{cand("a", 9, 0)},
		{cand("ab", 6, 0)},  // savings 4
		{cand("xyz", 4, 1)}, // savings 6
	}
	best, s, found := selectCandidate(perLength)
	require.True(t, found)
	assert.Equal(t, 6, s)
	assert.Equal(t, []byte("xyz"), best.pattern)
}

func TestSelectCandidateTieBreakLongerPattern(t *testing.T) {
	// Equal savings: count 4 at length 2 vs count 2 at length 3.
	perLength := [][]candidate{
		nil,
		{cand("zz", 4, 0)}, // savings 2
		{cand("abc", 2, 5)}, // savings 2
	}
	best, s, found := selectCandidate(perLength)
	require.True(t, found)
	assert.Equal(t, 2, s)
	assert.Equal(t, []byte("abc"), best.pattern)
}

func TestSelectCandidateTieBreakLexicographic(t *testing.T) {
	perLength := [][]candidate{
		nil,
		{cand("ba", 4, 0), cand("ab", 4, 2)},
	}
	best, _, found := selectCandidate(perLength)
	require.True(t, found)
	assert.Equal(t, []byte("ab"), best.pattern)
}

func TestBetterFirstOffsetLastResort(t *testing.T) {
	a := cand("ab", 4, 1)
	b := cand("ab", 4, 5)
	assert.True(t, better(a, 2, b, 2))
	assert.False(t, better(b, 2, a, 2))
}

func TestSelectCandidateReportsNonPositiveSavings(t *testing.T) {
	// Candidates exist but none shrink the container; the caller needs the
	// distinction between this and an empty candidate set.
	perLength := [][]candidate{{cand("a", 50, 0)}}
	_, s, found := selectCandidate(perLength)
	require.True(t, found)
	assert.LessOrEqual(t, s, 0)

	_, _, found = selectCandidate([][]candidate{nil, nil})
	assert.False(t, found)
}

func TestLayerWireSize(t *testing.T) {
	// maxLength uvarint + token + patternLen uvarint + pattern bytes.
	assert.Equal(t, 5, layerWireSize(2, 2))
	assert.Equal(t, 133, layerWireSize(200, 128))
}

func TestUvarintLen(t *testing.T) {
	assert.Equal(t, 1, uvarintLen(0))
	assert.Equal(t, 1, uvarintLen(127))
	assert.Equal(t, 2, uvarintLen(128))
	assert.Equal(t, 3, uvarintLen(1<<14))
}
