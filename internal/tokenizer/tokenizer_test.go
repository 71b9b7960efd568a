package tokenizer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for Segment Tokenizer:
// - Tokenize splits on the terminator and elements on the delimiter
// - Chunks that are blank after trimming are dropped
// - Newlines between segments are tolerated
// - Segments with an empty identifier are dropped
// - Element values are taken verbatim, including empty elements
// - Non-default delimiters work
// - Rejoining fields and segments reproduces the content modulo whitespace

func TestTokenize_BasicSegments(t *testing.T) {
	content := "ISA*00*AUTH~ST*835*0001~SE*5*0001~"

	segments := Tokenize(content, '~', '*')

	require.Len(t, segments, 3)
	assert.Equal(t, "ISA", segments[0].ID)
	assert.Equal(t, []string{"ISA", "00", "AUTH"}, segments[0].Fields)
	assert.Equal(t, "ST", segments[1].ID)
	assert.Equal(t, []string{"ST", "835", "0001"}, segments[1].Fields)
	assert.Equal(t, "SE", segments[2].ID)
}

func TestTokenize_NewlinesBetweenSegments(t *testing.T) {
	content := "ST*835*0001~\nCAS*CO*45*100~\r\nSE*3*0001~\n"

	segments := Tokenize(content, '~', '*')

	require.Len(t, segments, 3)
	assert.Equal(t, []string{"CAS", "CO", "45", "100"}, segments[1].Fields)
}

func TestTokenize_DropsBlankChunks(t *testing.T) {
	content := "~~  ~ST*835~~"

	segments := Tokenize(content, '~', '*')

	require.Len(t, segments, 1)
	assert.Equal(t, "ST", segments[0].ID)
}

func TestTokenize_DropsEmptyIdentifier(t *testing.T) {
	// The chunk "*835" splits into ["", "835"]; an empty identifier means
	// the segment is dropped entirely.
	content := "*835~  *0001~ST*837~"

	segments := Tokenize(content, '~', '*')

	require.Len(t, segments, 1)
	assert.Equal(t, "ST", segments[0].ID)
}

func TestTokenize_EmptyElementsPreserved(t *testing.T) {
	content := "ISA*00*          *00*~"

	segments := Tokenize(content, '~', '*')

	require.Len(t, segments, 1)
	// Interior whitespace-only elements are verbatim; only the chunk and the
	// identifier are trimmed.
	assert.Equal(t, []string{"ISA", "00", "          ", "00", ""}, segments[0].Fields)
}

func TestTokenize_CustomDelimiters(t *testing.T) {
	content := "ST|835|0001\nCAS|CO|45|100\n"

	segments := Tokenize(content, '\n', '|')

	require.Len(t, segments, 2)
	assert.Equal(t, []string{"CAS", "CO", "45", "100"}, segments[1].Fields)
}

func TestTokenize_EmptyContent(t *testing.T) {
	assert.Empty(t, Tokenize("", '~', '*'))
	assert.Empty(t, Tokenize("   \n\t  ", '~', '*'))
}

func TestTokenize_NearRoundTrip(t *testing.T) {
	// Rejoining fields with the delimiter and segments with the terminator
	// must reproduce the original content, modulo the whitespace trimming
	// around each segment.
	content := "ST*835*0001~\nCAS*CO*45*100*150*50~\nLQ*HE*N123~"

	segments := Tokenize(content, '~', '*')

	joined := make([]string, 0, len(segments))
	for _, seg := range segments {
		joined = append(joined, strings.Join(seg.Fields, "*"))
	}
	rebuilt := strings.Join(joined, "~") + "~"

	normalized := strings.ReplaceAll(content, "~\n", "~")
	assert.Equal(t, normalized, rebuilt)
}
