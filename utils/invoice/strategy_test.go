package invoice

import (
	"regexp"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFirstSuccess(t *testing.T) {
	never := Strategy[int]{Name: "never", Run: func(string) (int, bool) { return 0, false }}
	one := Strategy[int]{Name: "one", Run: func(string) (int, bool) { return 1, true }}
	two := Strategy[int]{Name: "two", Run: func(string) (int, bool) { return 2, true }}

	v, name, ok := firstSuccess("x", []Strategy[int]{never, one, two})
	assert.True(t, ok)
	assert.Equal(t, 1, v)
	assert.Equal(t, "one", name)

	_, _, ok = firstSuccess("x", []Strategy[int]{never})
	assert.False(t, ok)
}

func TestLastMatchSkipsUnparseable(t *testing.T) {
	re := regexp.MustCompile(`n=(\w+)`)
	parse := func(s string) (int, bool) {
		n, err := strconv.Atoi(s)
		return n, err == nil
	}

	v, ok := lastMatch(re, "n=1 n=2 n=three", parse)
	assert.True(t, ok)
	assert.Equal(t, 2, v)

	_, ok = lastMatch(re, "n=a n=b", parse)
	assert.False(t, ok)
}

func TestGuardRecovers(t *testing.T) {
	got := guard("fallback", func() string { panic("boom") })
	assert.Equal(t, "fallback", got)

	assert.Equal(t, "value", guard("fallback", func() string { return "value" }))
}
