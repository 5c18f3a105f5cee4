package behavior

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetOperations(t *testing.T) {
	s := Of(Input, Escape)

	assert.True(t, s.Has(Input))
	assert.True(t, s.Has(Escape))
	assert.False(t, s.Has(Walking))
	assert.Equal(t, 2, s.Len())

	s = s.With(Walking).Without(Input)
	assert.Equal(t, []Flag{Walking, Escape}, s.Flags())
	assert.Equal(t, "escape|walking", s.String())
}

func TestAllContainsEveryFlag(t *testing.T) {
	for f := range flagNames {
		assert.True(t, All.Has(f), f.String())
	}
	assert.Equal(t, len(flagNames), All.Len())
	assert.Equal(t, "all", All.String())
	assert.Equal(t, "none", None.String())
}

func TestParseSet(t *testing.T) {
	s, err := ParseSet([]string{"input", " Escape "})
	require.NoError(t, err)
	assert.Equal(t, Of(Input, Escape), s)

	all, err := ParseSet([]string{"all"})
	require.NoError(t, err)
	assert.Equal(t, All, all)

	_, err = ParseSet([]string{"jetpack"})
	assert.Error(t, err)
}
