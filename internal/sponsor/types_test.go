package sponsor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_StartsWithFullCredit(t *testing.T) {
	sp := New("Ada", 10)

	require.NotEmpty(t, sp.ID)
	assert.Equal(t, "Ada", sp.Name)
	assert.Equal(t, 10, sp.Level)
	assert.Equal(t, 10, sp.Current)
}

func TestNew_UniqueIDs(t *testing.T) {
	a := New("Ada", 5)
	b := New("Ada", 5)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestNew_NormalizesName(t *testing.T) {
	// "e" + combining acute (U+0301) normalizes to the precomposed
	// form U+00E9.
	sp := New("Ame\u0301lie", 5)
	assert.Equal(t, "Am\u00e9lie", sp.Name)
}
