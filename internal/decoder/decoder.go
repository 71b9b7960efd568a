// =============================================================================
// EDI Remit Analyzer - Segment Decoder
// =============================================================================
//
// This module turns tokenized segments into semantic records by applying the
// schema registry's field-naming rules, and groups the records of one file
// into a SegmentStore keyed by segment identifier.
//
// DECODING CONTRACT:
//   - A semantic field whose element index lies beyond the segment's length
//     decodes to null, never an out-of-range failure. Short segments are
//     normal in real-world files.
//   - Identifiers without a schema rule decode via the generic positional
//     fallback ("field_0", "field_1", ...), preserving every element. The
//     decoder cannot fail on an unrecognized segment type: correctness for
//     unknown types is lossless preservation, not interpretation.
//   - Each DecodedSegment keeps the original ordered element list alongside
//     the semantic map, so downstream consumers never need to reconstruct
//     positions from key names.
//
// DecodeAll is a pure per-file call returning a fresh SegmentStore; no
// decoder state survives across files, which makes concurrent per-file
// processing safe by construction.
//
// =============================================================================

package decoder

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/medredux/edi-remit-analyzer/internal/schema"
	"github.com/medredux/edi-remit-analyzer/internal/tokenizer"
)

// =============================================================================
// DECODED SEGMENT
// =============================================================================

// DecodedSegment is one semantic record produced from a RawSegment.
type DecodedSegment struct {
	// ID is the originating segment identifier.
	ID string

	// Values maps semantic field names to decoded values. A value is a
	// string, a []string (composite parts and rest captures), or nil when
	// the source element was absent.
	Values map[string]any

	// Fields is the original ordered element list, including the identifier
	// at index 0. Retained so extraction rules can address elements by
	// position without inverting the naming scheme.
	Fields []string
}

// MarshalJSON serializes only the semantic value map; the positional element
// list is an internal detail of the pipeline.
func (d DecodedSegment) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Values)
}

// Decode applies the registry's rule for raw.ID, or the generic positional
// fallback when no rule exists.
func Decode(raw tokenizer.RawSegment, reg *schema.Registry) DecodedSegment {
	rule, ok := reg.Lookup(raw.ID)
	if !ok {
		return decodeGeneric(raw)
	}

	values := make(map[string]any, len(rule.Fields)+3)

	for _, spec := range rule.Fields {
		values[spec.Name] = elementAt(raw.Fields, spec.Index)
	}

	if s := rule.Split; s != nil {
		composite := elementAt(raw.Fields, s.Index)
		values[s.RawName] = composite

		parts := []string{}
		if str, ok := composite.(string); ok && str != "" {
			parts = strings.Split(str, s.Delimiter)
		}
		values[s.PartsName] = parts
	}

	if rule.RestName != "" {
		rest := []string{}
		if len(raw.Fields) > 1 {
			rest = raw.Fields[1:]
		}
		values[rule.RestName] = rest
	}

	return DecodedSegment{ID: raw.ID, Values: values, Fields: raw.Fields}
}

// decodeGeneric emits one key per element position, identifier included.
func decodeGeneric(raw tokenizer.RawSegment) DecodedSegment {
	values := make(map[string]any, len(raw.Fields))
	for i, field := range raw.Fields {
		values[fmt.Sprintf("field_%d", i)] = field
	}
	return DecodedSegment{ID: raw.ID, Values: values, Fields: raw.Fields}
}

// elementAt returns the element at a 1-based index, or nil when the segment
// is too short.
func elementAt(fields []string, index int) any {
	if index < 0 || index >= len(fields) {
		return nil
	}
	return fields[index]
}

// =============================================================================
// SEGMENT STORE
// =============================================================================

// SegmentStore groups the decoded segments of a single file by identifier.
// Segments sharing an identifier keep their relative order from the source
// file.
type SegmentStore struct {
	segments map[string][]DecodedSegment
}

// NewSegmentStore returns an empty store.
func NewSegmentStore() *SegmentStore {
	return &SegmentStore{segments: make(map[string][]DecodedSegment)}
}

// Add appends a decoded segment under its identifier.
func (s *SegmentStore) Add(seg DecodedSegment) {
	s.segments[seg.ID] = append(s.segments[seg.ID], seg)
}

// Get returns the segments recorded for an identifier, in source order.
// A missing identifier yields nil, which ranges as empty.
func (s *SegmentStore) Get(id string) []DecodedSegment {
	return s.segments[id]
}

// Len returns the total number of decoded segments in the store.
func (s *SegmentStore) Len() int {
	n := 0
	for _, segs := range s.segments {
		n += len(segs)
	}
	return n
}

// MarshalJSON serializes the store as a map from segment identifier to the
// list of decoded records.
func (s *SegmentStore) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.segments)
}

// DecodeAll tokenizes nothing and validates nothing: it decodes an already
// tokenized segment list into a fresh store. Pure per-file value; callers
// processing files concurrently share only the registry, which is read-only
// after setup.
func DecodeAll(segments []tokenizer.RawSegment, reg *schema.Registry) *SegmentStore {
	store := NewSegmentStore()
	for _, raw := range segments {
		store.Add(Decode(raw, reg))
	}
	return store
}
