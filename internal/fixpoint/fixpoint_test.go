package fixpoint

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunStabilizesOnFirstStep(t *testing.T) {
	got := Run(5, func(n int) int { return n }, func(a, b int) bool { return a == b })
	assert.Equal(t, 5, got)
}

func TestRunConvergesMonotonically(t *testing.T) {
	got := Run(0, func(n int) int {
		if n >= 10 {
			return n
		}
		return n + 1
	}, func(a, b int) bool { return a == b })
	assert.Equal(t, 10, got)
}

func TestRunOverSets(t *testing.T) {
	universe := []int{1, 2, 3, 4}
	step := func(cur map[int]bool) map[int]bool {
		next := make(map[int]bool, len(cur))
		for k, v := range cur {
			next[k] = v
		}
		for _, v := range universe {
			if v%2 == 0 {
				next[v] = true
			}
		}
		return next
	}
	eq := func(a, b map[int]bool) bool {
		if len(a) != len(b) {
			return false
		}
		for k, v := range a {
			if b[k] != v {
				return false
			}
		}
		return true
	}
	got := Run(map[int]bool{}, step, eq)
	assert.True(t, got[2])
	assert.True(t, got[4])
	assert.False(t, got[1])
}
