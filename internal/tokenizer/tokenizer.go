// =============================================================================
// EDI Remit Analyzer - Segment Tokenizer
// =============================================================================
//
// This module splits raw EDI file content into segments. An EDI file is a
// flat character stream where segments are terminated by a single character
// (conventionally '~') and the elements within a segment are separated by a
// delimiter (conventionally '*'):
//
//   ISA*00*          *00*          *ZZ*SENDER*ZZ*RECEIVER*...~
//   ST*835*0001~
//   CAS*CO*45*100~
//
// The tokenizer performs no grammar validation: it does not check element
// counts, character sets, or envelope structure. Any character sequence
// between delimiters is taken verbatim as an element value.
//
// KNOWN LIMITATION:
//   Escaped delimiters inside an element are not supported. An element value
//   that contains the delimiter character is irrecoverably misparsed. This is
//   an accepted limitation of the tool, not a defect to work around.
//
// =============================================================================

package tokenizer

import "strings"

// DefaultSegmentTerminator is the conventional X12 segment terminator.
const DefaultSegmentTerminator = '~'

// DefaultElementDelimiter is the conventional X12 element delimiter.
const DefaultElementDelimiter = '*'

// RawSegment is one tokenized segment: an ordered list of element values.
// Fields[0] is always the segment identifier (e.g. "CAS", "NM1"). Immutable
// after creation.
type RawSegment struct {
	// ID is the trimmed segment identifier, never empty.
	ID string

	// Fields holds every element of the segment in source order, including
	// the identifier itself at index 0. Semantic element indices are 1-based
	// relative to the identifier.
	Fields []string
}

// Tokenize splits raw file content into segments.
//
// Segments are split on the terminator rune and elements on the delimiter
// rune. Chunks that are empty after trimming surrounding whitespace are
// dropped (files commonly separate segments with newlines in addition to the
// terminator), as are segments whose identifier is empty after trimming.
func Tokenize(content string, terminator, delimiter rune) []RawSegment {
	chunks := strings.Split(content, string(terminator))

	segments := make([]RawSegment, 0, len(chunks))
	for _, chunk := range chunks {
		chunk = strings.TrimSpace(chunk)
		if chunk == "" {
			continue
		}

		fields := strings.Split(chunk, string(delimiter))
		id := strings.TrimSpace(fields[0])
		if id == "" {
			continue
		}
		fields[0] = id

		segments = append(segments, RawSegment{ID: id, Fields: fields})
	}

	return segments
}
