// =============================================================================
// EDI Remit Analyzer - CARC/RARC Code Extractor
// =============================================================================
//
// This module mines a decoded segment store for candidate adjustment and
// remark codes:
//
//   CARC (Claim Adjustment Reason Codes) come from CAS segments, which carry
//   a group code followed by (reason, amount) pairs:
//
//     CAS*CO*45*100*150*50  ->  {group CO, code 45, amount 100}
//                               {group CO, code 150, amount 50}
//
//   RARC (Remittance Advice Remark Codes) come from LQ segments
//   (LQ*qualifier*code) and, heuristically, from secondary segment types
//   that sometimes carry remark codes (REF, NTE, K3, PLB).
//
// The heuristic scan is deliberately permissive: it flags any element that
// is three digits or that is at least two characters with a letter in it.
// It trades precision for recall, since these segment types are not
// guaranteed to carry remark codes at all. Every entry retains the full
// element list it was derived from so a downstream consumer can re-filter.
// The extractor surfaces syntactic candidates only; it does not check codes
// against an official CARC/RARC list.
//
// =============================================================================

package extractor

import (
	"regexp"
	"unicode"

	"github.com/medredux/edi-remit-analyzer/internal/decoder"
)

// =============================================================================
// FINDINGS TYPES
// =============================================================================

// Kind distinguishes adjustment findings from remark findings.
type Kind string

const (
	// KindAdjustment marks a claim adjustment reason code candidate.
	KindAdjustment Kind = "CARC"

	// KindRemark marks a remittance advice remark code candidate.
	KindRemark Kind = "RARC"
)

// CodeEntry is one candidate code finding. Never mutated after creation.
type CodeEntry struct {
	// Kind is derived from the list the entry lives in; it is carried for
	// flattened (CSV/XLSX) output and not repeated in the JSON payload.
	Kind Kind `json:"-"`

	// Segment is the originating segment identifier.
	Segment string `json:"segment"`

	// Group is the CAS group code shared by every code in the segment
	// occurrence. Adjustments only.
	Group string `json:"group,omitempty"`

	// Qualifier is the LQ code-list qualifier. Exact-rule remarks only.
	Qualifier string `json:"qualifier,omitempty"`

	// Code is the candidate code string, always non-empty.
	Code string `json:"code"`

	// Amount is the monetary amount paired with an adjustment code. Nil for
	// remarks and for a trailing adjustment code with no amount element.
	Amount *string `json:"amount,omitempty"`

	// Raw is the full element list of the originating segment.
	Raw []string `json:"raw"`
}

// Findings holds the extraction result for one file.
type Findings struct {
	CARC []CodeEntry `json:"carc"`
	RARC []CodeEntry `json:"rarc"`
}

// Options tunes the extraction rules.
type Options struct {
	// StrictRemarks narrows the heuristic remark scan to elements shaped
	// like official remark codes (one or two letters followed by one to
	// three digits, or three-digit numeric). Off by default: the permissive
	// scan is the reference behavior.
	StrictRemarks bool
}

// heuristicSegmentIDs are the secondary segment types scanned for
// remark-code candidates, in scan order.
var heuristicSegmentIDs = [...]string{"REF", "NTE", "K3", "PLB"}

// strictRemarkPattern matches the shape of official RARC identifiers,
// e.g. "M15", "N123", "MA01".
var strictRemarkPattern = regexp.MustCompile(`^[A-Za-z]{1,2}[0-9]{1,3}$`)

// =============================================================================
// EXTRACTION
// =============================================================================

// Extract applies the per-segment-type extraction rules to a store. A target
// segment type missing from the store contributes nothing; extraction never
// fails. Findings are emitted in segment-occurrence order, then in
// intra-segment element order.
func Extract(store *decoder.SegmentStore, opts Options) Findings {
	findings := Findings{
		CARC: []CodeEntry{},
		RARC: []CodeEntry{},
	}

	// Adjustment rule: CAS group at element 1, (code, amount) pairs from
	// element 2 stepping by 2. An unmatched trailing code keeps a nil
	// amount rather than failing.
	for _, seg := range store.Get("CAS") {
		fields := seg.Fields
		if len(fields) == 0 {
			continue
		}

		var group string
		if len(fields) > 1 {
			group = fields[1]
		}

		for i := 2; i < len(fields); i += 2 {
			code := fields[i]
			if code == "" {
				continue
			}

			var amount *string
			if i+1 < len(fields) {
				amt := fields[i+1]
				amount = &amt
			}

			findings.CARC = append(findings.CARC, CodeEntry{
				Kind:    KindAdjustment,
				Segment: "CAS",
				Group:   group,
				Code:    code,
				Amount:  amount,
				Raw:     fields,
			})
		}
	}

	// Exact remark rule: LQ*qualifier*code.
	for _, seg := range store.Get("LQ") {
		fields := seg.Fields
		if len(fields) < 3 {
			continue
		}

		findings.RARC = append(findings.RARC, CodeEntry{
			Kind:      KindRemark,
			Segment:   "LQ",
			Qualifier: fields[1],
			Code:      fields[2],
			Raw:       fields,
		})
	}

	// Heuristic remark rule: scan every element after the identifier in the
	// secondary segment types for code-shaped values.
	for _, id := range heuristicSegmentIDs {
		for _, seg := range store.Get(id) {
			fields := seg.Fields
			for _, f := range fields[1:] {
				if f == "" {
					continue
				}
				if !isRemarkCandidate(f, opts.StrictRemarks) {
					continue
				}

				findings.RARC = append(findings.RARC, CodeEntry{
					Kind:    KindRemark,
					Segment: id,
					Code:    f,
					Raw:     fields,
				})
			}
		}
	}

	return findings
}

// isRemarkCandidate classifies an element value as a remark-code candidate.
//
// Permissive rule: exactly three characters all digits, or at least two
// characters with a letter anywhere in the value. Strict rule: three-digit
// numeric, or one/two letters followed by up to three digits.
func isRemarkCandidate(value string, strict bool) bool {
	runes := []rune(value)

	if len(runes) == 3 && allDigits(runes) {
		return true
	}

	if strict {
		return strictRemarkPattern.MatchString(value)
	}

	if len(runes) < 2 {
		return false
	}
	for _, r := range runes {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

func allDigits(runes []rune) bool {
	for _, r := range runes {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
