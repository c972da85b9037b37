package template

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/reportgridgo/internal/clause"
)

type fakeFunctions struct{}

func (fakeFunctions) HasFunction(name string) bool {
	return name == "table" || name == "expression"
}

func parse(t *testing.T, src string) []clause.Clause {
	t.Helper()
	clauses, err := Parse(src, fakeFunctions{})
	require.NoError(t, err)
	return clauses
}

func TestParsePlainText(t *testing.T) {
	clauses := parse(t, "just text\n")
	require.Len(t, clauses, 1)
	assert.Equal(t, clause.Text{Content: "just text\n"}, clauses[0])
}

func TestParseFunctionClause(t *testing.T) {
	clauses := parse(t, "a {{ change, cat_purrs }} b")
	require.Len(t, clauses, 3)

	assert.Equal(t, clause.Text{Content: "a "}, clauses[0])
	fn, ok := clauses[1].(clause.Function)
	require.True(t, ok)
	require.Len(t, fn.Groups, 2)
	assert.Equal(t, clause.RawGroup{Values: []string{"change"}}, fn.Groups[0])
	assert.Equal(t, clause.RawGroup{Values: []string{"cat_purrs"}}, fn.Groups[1])
	assert.Equal(t, clause.Text{Content: " b"}, clauses[2])
}

func TestParseLabelledGroup(t *testing.T) {
	clauses := parse(t, "{{ date: 2022-02-04, frequency: Weekly }}")
	fn, ok := clauses[0].(clause.Function)
	require.True(t, ok)
	require.Len(t, fn.Groups, 2)
	assert.Equal(t, clause.RawGroup{Label: "date", Values: []string{"2022-02-04"}}, fn.Groups[0])
	assert.Equal(t, clause.RawGroup{Label: "frequency", Values: []string{"Weekly"}}, fn.Groups[1])
}

func TestParseCollections(t *testing.T) {
	clauses := parse(t, "{{ [change, avg_freq], frequency: [Weekly, Monthly] }}")
	fn, ok := clauses[0].(clause.Function)
	require.True(t, ok)
	require.Len(t, fn.Groups, 2)
	assert.Equal(t, clause.RawGroup{Values: []string{"change", "avg_freq"}, Collection: true}, fn.Groups[0])
	assert.Equal(t, clause.RawGroup{Label: "frequency", Values: []string{"Weekly", "Monthly"}, Collection: true}, fn.Groups[1])
}

func TestParseNamedFunction(t *testing.T) {
	clauses := parse(t, "{{ table, rows: [change], cols: [Weekly], cat_purrs }}")
	named, ok := clauses[0].(clause.NamedFunction)
	require.True(t, ok)
	assert.Equal(t, "table", named.Name)
	require.Len(t, named.Groups, 3)
	assert.Equal(t, "rows", named.Groups[0].Label)
	assert.Equal(t, "cols", named.Groups[1].Label)
	assert.Equal(t, clause.RawGroup{Values: []string{"cat_purrs"}}, named.Groups[2])
}

func TestBareNonFunctionTokenStaysFunctionClause(t *testing.T) {
	clauses := parse(t, "{{ change }}")
	_, ok := clauses[0].(clause.Function)
	assert.True(t, ok)
}

func TestParseBlock(t *testing.T) {
	clauses := parse(t, "{{# cat_purrs, frequency: [Weekly, Monthly] }}inner {{ change }}{{/}} after")
	require.Len(t, clauses, 2)

	block, ok := clauses[0].(clause.Block)
	require.True(t, ok)
	require.Len(t, block.Groups, 2)
	assert.Equal(t, clause.RawGroup{Values: []string{"cat_purrs"}}, block.Groups[0])
	require.Len(t, block.Children, 2)
	assert.Equal(t, clause.Text{Content: "inner "}, block.Children[0])
	_, ok = block.Children[1].(clause.Function)
	assert.True(t, ok)

	assert.Equal(t, clause.Text{Content: " after"}, clauses[1])
}

func TestParseNestedBlocks(t *testing.T) {
	clauses := parse(t, "{{# cat_purrs }}{{# frequency: [Weekly] }}x{{/}}{{/}}")
	require.Len(t, clauses, 1)

	outer, ok := clauses[0].(clause.Block)
	require.True(t, ok)
	require.Len(t, outer.Children, 1)
	inner, ok := outer.Children[0].(clause.Block)
	require.True(t, ok)
	require.Len(t, inner.Children, 1)
	assert.Equal(t, clause.Text{Content: "x"}, inner.Children[0])
}

func TestParseErrors(t *testing.T) {
	testCases := []struct {
		name     string
		src      string
		expected string
	}{
		{name: "unterminated clause", src: "{{ change", expected: "unterminated clause"},
		{name: "unterminated block", src: "{{# cat_purrs }}inner", expected: "unterminated block"},
		{name: "stray close marker", src: "text {{/}}", expected: "without an open block"},
		{name: "empty group", src: "{{ change,, cat_purrs }}", expected: "empty argument group"},
		{name: "unterminated collection", src: "{{ [change }}", expected: "unterminated collection"},
		{name: "empty collection member", src: "{{ [change, ] }}", expected: "empty collection member"},
		{name: "malformed label", src: "{{ date: }}", expected: "malformed labelled group"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(tc.src, fakeFunctions{})
			require.Error(t, err)
			assert.ErrorContains(t, err, tc.expected)
		})
	}
}

func TestParseErrorCarriesPosition(t *testing.T) {
	_, err := Parse("line one\nline two {{ change", fakeFunctions{})
	require.Error(t, err)
	assert.ErrorContains(t, err, "2:")
}

func TestParseMultilineBlockKeepsText(t *testing.T) {
	src := "{{# cat_purrs }}\nline\n{{/}}\n"
	clauses := parse(t, src)
	require.Len(t, clauses, 2)
	block := clauses[0].(clause.Block)
	require.Len(t, block.Children, 1)
	assert.Equal(t, clause.Text{Content: "\nline\n"}, block.Children[0])
	assert.Equal(t, clause.Text{Content: "\n"}, clauses[1])
}
