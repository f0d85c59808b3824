package mmcsv

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTokenizer returns a Reader with no file behind it, enough to tokenize
// caller-owned rows with ReadColumn.
func newTokenizer() *Reader {
	return &Reader{comma: ',', quote: '"', escape: '\\', quoteSep: []byte{'"'}}
}

func TestReadColumnScenarios(t *testing.T) {
	tests := []struct {
		name string
		row  string
		want []string
	}{
		{name: "plain", row: "a,b,c", want: []string{"a", "b", "c"}},
		{name: "quotedDelimiter", row: `"a,b",c`, want: []string{"a,b", "c"}},
		{name: "doubledQuote", row: `"a""b"`, want: []string{`a"b`}},
		{name: "emptyMiddleField", row: "a,,c", want: []string{"a", "", "c"}},
		{name: "emptyRow", row: "", want: nil},
		{name: "trailingDelimiter", row: "a,", want: []string{"a", ""}},
		{name: "onlyDelimiter", row: ",", want: []string{"", ""}},
		{name: "quotedEmpty", row: `"",x`, want: []string{"", "x"}},
		{name: "doubledQuoteUnquoted", row: `a""b,c`, want: []string{`a"b`, "c"}},
		{name: "escapedDelimiter", row: `a\,b,c`, want: []string{"a,b", "c"}},
		{name: "escapedQuoteInQuoted", row: `"a\"b",c`, want: []string{`a"b`, "c"}},
		{name: "trailingEscapeIsLiteral", row: `a,b\`, want: []string{"a", `b\`}},
		{name: "textAfterClosingQuote", row: `"ab"cd,e`, want: []string{"ab", "e"}},
		{name: "closingQuoteAtEnd", row: `x,"y"`, want: []string{"x", "y"}},
		{name: "unterminatedQuote", row: `"abc,def`, want: []string{"abc,def"}},
		{name: "quoteInsideUnquoted", row: `a"b,c`, want: []string{`a"b`, "c"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := newTokenizer()
			row := []byte(tc.row)
			assert.Equal(t, tc.want, readFields(r, row))
		})
	}
}

func TestReadColumnExhaustedIsIdempotent(t *testing.T) {
	r := newTokenizer()
	row := []byte(`"a""b",c\,d`)

	require.Equal(t, []string{`a"b`, "c,d"}, readFields(r, row))
	snapshot := string(row)

	for range 3 {
		field, ok := r.ReadColumn(row)
		assert.False(t, ok)
		assert.Nil(t, field)
	}
	assert.Equal(t, snapshot, string(row), "exhausted row must not be mutated")
}

func TestReadColumnIdentity(t *testing.T) {
	r := newTokenizer()
	fields := []string{"alpha", "beta gamma", "123.45", "x-y_z", "ünïcödé"}
	row := []byte("alpha,beta gamma,123.45,x-y_z,ünïcödé")

	assert.Equal(t, fields, readFields(r, row))
}

func TestReadColumnDecodesInPlace(t *testing.T) {
	r := newTokenizer()
	row := []byte(`"a""b",c`)

	field, ok := r.ReadColumn(row)
	require.True(t, ok)
	assert.Equal(t, `a"b`, string(field))
	assert.Same(t, &row[1], &field[0], "field must alias the row")
	assert.Equal(t, len(field), cap(field))
}

func TestReadColumnCustomDialect(t *testing.T) {
	r := &Reader{comma: '\t', quote: '\'', escape: '^', quoteSep: []byte{'\''}}
	row := []byte("'it''s'\tx^\ty\t\"raw\"")

	assert.Equal(t, []string{"it's", "x\ty", `"raw"`}, readFields(r, row))
}

func TestReadColumnCursorResetsPerRow(t *testing.T) {
	r := openString(t, "a,b,c\nd,e\n")

	first, err := r.ReadRow()
	require.NoError(t, err)
	field, ok := r.ReadColumn(first)
	require.True(t, ok)
	require.Equal(t, "a", string(field))

	// The half-consumed cursor of the first row must not leak into the second.
	second, err := r.ReadRow()
	require.NoError(t, err)
	assert.Equal(t, []string{"d", "e"}, readFields(r, second))
}

func TestReadColumnRejectsPreviousRow(t *testing.T) {
	r := openString(t, "a,b\nc,d\n")

	first, err := r.ReadRow()
	require.NoError(t, err)
	second, err := r.ReadRow()
	require.NoError(t, err)

	field, ok := r.ReadColumn(first)
	assert.False(t, ok)
	assert.Nil(t, field)

	// The rejection ends the current row too.
	field, ok = r.ReadColumn(second)
	assert.False(t, ok)
	assert.Nil(t, field)

	third, err := r.ReadRow()
	require.ErrorIs(t, err, io.EOF)
	assert.Nil(t, third)
}

func TestReadColumnRejectsSwitchBack(t *testing.T) {
	r := openString(t, "\"a\"\"b\",c\nnext,row\n")

	row, err := r.ReadRow()
	require.NoError(t, err)
	field, ok := r.ReadColumn(row)
	require.True(t, ok)
	require.Equal(t, `a"b`, string(field))

	assert.Empty(t, readFields(r, []byte("x,y")))
	// The row is half decoded; tokenizing it again would misparse it.
	assert.Empty(t, readFields(r, row))

	next, err := r.ReadRow()
	require.NoError(t, err)
	assert.Equal(t, []string{"next", "row"}, readFields(r, next))
}

func TestReadColumnAdoptsFirstBuffer(t *testing.T) {
	r := newTokenizer()
	row := []byte("x,y")
	assert.Equal(t, []string{"x", "y"}, readFields(r, row))
	assert.Empty(t, readFields(r, []byte("p,q")))
}
