package export

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dalzilio/symlogic"
	"github.com/dalzilio/symlogic/internal/parser"
)

func TestModelsListsEverySatisfyingAssignment(t *testing.T) {
	set, err := symlogic.New(2)
	assert.NoError(t, err)
	n := set.And(set.Ithvar(0), set.Ithvar(1))

	var buf strings.Builder
	assert.NoError(t, Models(set, &buf, n, []string{"a", "b"}))
	out := buf.String()
	assert.Contains(t, out, "a & b")
	assert.Contains(t, out, "1 satisfying assignment(s)")
}

func TestTruthTableHasOneColumnPerName(t *testing.T) {
	set, err := symlogic.New(2)
	assert.NoError(t, err)
	n := set.Ithvar(0)

	var buf strings.Builder
	assert.NoError(t, TruthTable(set, &buf, n, []string{"a", "b"}))
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	assert.Equal(t, "a\tb", lines[0])
	assert.Equal(t, "1\t-", lines[1])
}

func TestDotIncludesTerminalAndInternalNodes(t *testing.T) {
	set, err := symlogic.New(1)
	assert.NoError(t, err)
	n := set.Ithvar(0)

	var buf strings.Builder
	assert.NoError(t, Dot(set, &buf, n))
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "digraph G {"))
	assert.Contains(t, out, `label="1"`)
	assert.Contains(t, out, "2 -> 1 [style=filled];")
}

func TestAutHeaderCountsMatchNodeSet(t *testing.T) {
	set, err := symlogic.New(1)
	assert.NoError(t, err)
	n := set.Ithvar(0)

	var buf strings.Builder
	assert.NoError(t, Aut(set, &buf, n))
	lines := strings.Split(buf.String(), "\n")
	assert.True(t, strings.HasPrefix(lines[0], "des(0,"))
	assert.Equal(t, "des(0,5,3)", lines[0])
}

func TestParseTreeDotWalksEveryChild(t *testing.T) {
	tree, err := parser.Parse("a & b")
	assert.NoError(t, err)

	var buf strings.Builder
	assert.NoError(t, ParseTreeDot(&buf, tree))
	out := buf.String()
	assert.Contains(t, out, `label="and"`)
	assert.Contains(t, out, `label="a"`)
	assert.Contains(t, out, `label="b"`)
}
