// =============================================================================
// EDI Remit Analyzer - Segment Schema Registry
// =============================================================================
//
// This module defines the field-naming rules for the segment types the
// analyzer understands. Each rule maps positional elements of a segment to
// semantic field names, e.g. for NM1:
//
//   NM1*85*2*HOSPITAL*...  ->  entity_identifier_code: "85"
//                              entity_type_qualifier:  "2"
//                              name_last_or_organization: "HOSPITAL"
//
// The registry is a lookup table from segment identifier to a declarative
// Rule descriptor rather than a conditional chain: adding or replacing a
// segment mapping is a data change, not a code change. Identifiers without a
// rule fall back to generic positional naming ("field_0", "field_1", ...),
// which preserves every element losslessly even when the segment type is
// unknown.
//
// Element indices are 1-based relative to the identifier; index 0 is the
// identifier itself.
//
// =============================================================================

package schema

import "sort"

// =============================================================================
// RULE DESCRIPTORS
// =============================================================================

// FieldSpec names a single positional element of a segment.
type FieldSpec struct {
	// Name is the semantic field name emitted by the decoder.
	Name string `yaml:"name"`

	// Index is the 1-based element position the value is read from.
	Index int `yaml:"index"`
}

// SplitSpec decomposes one composite element into sub-parts on a secondary
// delimiter. The decoder exposes both the raw composite string and the
// parsed parts list, under separate names.
type SplitSpec struct {
	// Index is the 1-based element position of the composite value.
	Index int `yaml:"index"`

	// Delimiter is the sub-element separator, e.g. ":" for SV1 composites.
	Delimiter string `yaml:"delimiter"`

	// RawName is the field name for the unsplit composite string.
	RawName string `yaml:"raw_name"`

	// PartsName is the field name for the split parts list.
	PartsName string `yaml:"parts_name"`
}

// Rule is the field-naming descriptor for one segment identifier.
//
// The three rule shapes in use:
//   - positional naming only (most segments): Fields set
//   - positional naming plus a composite split (SV1): Fields + Split set
//   - raw capture of everything after the identifier (HI): RestName set
type Rule struct {
	// Fields maps element positions to semantic names, in emission order.
	Fields []FieldSpec `yaml:"fields"`

	// Split optionally decomposes one composite element.
	Split *SplitSpec `yaml:"composite,omitempty"`

	// RestName, when set, captures every element after the identifier as a
	// raw list under this name. Used for segments whose internal structure
	// varies by context (diagnosis/procedure composites).
	RestName string `yaml:"rest_name,omitempty"`
}

// =============================================================================
// REGISTRY
// =============================================================================

// Registry resolves segment identifiers to their field-naming rules.
type Registry struct {
	rules map[string]Rule
}

// NewRegistry returns a registry preloaded with the built-in segment rules.
func NewRegistry() *Registry {
	r := &Registry{rules: make(map[string]Rule, len(builtinRules))}
	for id, rule := range builtinRules {
		r.rules[id] = rule
	}
	return r
}

// Lookup returns the rule for a segment identifier. The second return value
// is false when the identifier has no rule and the decoder should use the
// generic positional fallback.
func (r *Registry) Lookup(id string) (Rule, bool) {
	rule, ok := r.rules[id]
	return rule, ok
}

// Register installs or replaces the rule for a segment identifier.
func (r *Registry) Register(id string, rule Rule) {
	r.rules[id] = rule
}

// KnownIDs returns the registered segment identifiers in sorted order.
func (r *Registry) KnownIDs() []string {
	ids := make([]string, 0, len(r.rules))
	for id := range r.rules {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// =============================================================================
// BUILT-IN SEGMENT RULES
// =============================================================================
// Field names and positions follow the X12 healthcare segment layouts the
// analyzer targets (835/837 envelope, entity, claim, and service-line
// segments). ISA deliberately skips index 5: only the sender/receiver IDs at
// 6 and 7 are of interest beyond the authorization/security elements.

var builtinRules = map[string]Rule{
	"ISA": {Fields: []FieldSpec{
		{Name: "authorization_information_qualifier", Index: 1},
		{Name: "authorization_information", Index: 2},
		{Name: "security_information_qualifier", Index: 3},
		{Name: "security_information", Index: 4},
		{Name: "interchange_sender_id", Index: 6},
		{Name: "interchange_receiver_id", Index: 7},
	}},
	"GS": {Fields: []FieldSpec{
		{Name: "functional_group_code", Index: 1},
		{Name: "application_sender_code", Index: 2},
		{Name: "application_receiver_code", Index: 3},
	}},
	"ST": {Fields: []FieldSpec{
		{Name: "transaction_set_identifier_code", Index: 1},
		{Name: "transaction_set_control_number", Index: 2},
	}},
	"BHT": {Fields: []FieldSpec{
		{Name: "hierarchical_structure_code", Index: 1},
		{Name: "transaction_set_purpose_code", Index: 2},
		{Name: "reference_identification", Index: 3},
		{Name: "date", Index: 4},
		{Name: "time", Index: 5},
		{Name: "transaction_type_code", Index: 6},
	}},
	"NM1": {Fields: []FieldSpec{
		{Name: "entity_identifier_code", Index: 1},
		{Name: "entity_type_qualifier", Index: 2},
		{Name: "name_last_or_organization", Index: 3},
		{Name: "name_first", Index: 4},
		{Name: "name_middle", Index: 5},
	}},
	"PER": {Fields: []FieldSpec{
		{Name: "contact_function_code", Index: 1},
		{Name: "name", Index: 2},
		{Name: "comm_qual_1", Index: 3},
		{Name: "comm_number_1", Index: 4},
		{Name: "comm_qual_2", Index: 5},
		{Name: "comm_number_2", Index: 6},
	}},
	"HL": {Fields: []FieldSpec{
		{Name: "hierarchical_id_number", Index: 1},
		{Name: "hierarchical_parent_id_number", Index: 2},
		{Name: "hierarchical_level_code", Index: 3},
		{Name: "hierarchical_child_code", Index: 4},
	}},
	"N3": {Fields: []FieldSpec{
		{Name: "address_line_1", Index: 1},
		{Name: "address_line_2", Index: 2},
	}},
	"N4": {Fields: []FieldSpec{
		{Name: "city", Index: 1},
		{Name: "state", Index: 2},
		{Name: "postal_code", Index: 3},
	}},
	"REF": {Fields: []FieldSpec{
		{Name: "reference_id_qualifier", Index: 1},
		{Name: "reference_id", Index: 2},
	}},
	"SBR": {Fields: []FieldSpec{
		{Name: "payer_relationship_code", Index: 1},
		{Name: "benefit_status_code", Index: 2},
		{Name: "insurance_type_code", Index: 3},
		{Name: "coordination_of_benefits", Index: 4},
		{Name: "group_number", Index: 5},
	}},
	"DMG": {Fields: []FieldSpec{
		{Name: "date_time_qualifier", Index: 1},
		{Name: "birth_date", Index: 2},
		{Name: "gender", Index: 3},
	}},
	"CLM": {Fields: []FieldSpec{
		{Name: "patient_control_number", Index: 1},
		{Name: "monetary_amount", Index: 2},
		{Name: "filling_indicator", Index: 3},
		{Name: "place_of_service", Index: 4},
		{Name: "facility_type_code", Index: 5},
	}},
	// HI carries composite diagnosis/procedure codes whose internal
	// structure varies by context; capture everything raw.
	"HI": {RestName: "hi_all"},
	"PRV": {Fields: []FieldSpec{
		{Name: "provider_code", Index: 1},
		{Name: "provider_qualifier", Index: 2},
		{Name: "provider_value", Index: 3},
	}},
	"LX": {Fields: []FieldSpec{
		{Name: "assigned_number", Index: 1},
	}},
	// SV1 element 1 is a colon-separated composite procedure identifier.
	"SV1": {
		Fields: []FieldSpec{
			{Name: "charge_amount", Index: 2},
			{Name: "unit_measure", Index: 3},
			{Name: "service_unit_count", Index: 4},
		},
		Split: &SplitSpec{
			Index:     1,
			Delimiter: ":",
			RawName:   "composite_med_proc_id",
			PartsName: "composite_med_proc_id_parts",
		},
	},
	"DTP": {Fields: []FieldSpec{
		{Name: "date_time_qualifier", Index: 1},
		{Name: "date_time_period_format_qualifier", Index: 2},
		{Name: "date_time_period", Index: 3},
	}},
	"SE": {Fields: []FieldSpec{
		{Name: "number_of_included_segments", Index: 1},
		{Name: "transaction_set_control_number", Index: 2},
	}},
}
