// =============================================================================
// EDI Remit Analyzer - Schema Override Loading
// =============================================================================
//
// Built-in segment rules can be extended or replaced without a code change by
// dropping YAML files into the schemas directory. Each file defines rules for
// one or more segment identifiers:
//
//   segments:
//     PLB:
//       fields:
//         - name: provider_identifier
//           index: 1
//         - name: fiscal_period_date
//           index: 2
//     SV1:
//       fields:
//         - name: charge_amount
//           index: 2
//       composite:
//         index: 1
//         delimiter: ":"
//         raw_name: composite_med_proc_id
//         parts_name: composite_med_proc_id_parts
//
// Every loaded rule is validated before it reaches the registry; a malformed
// override file fails the whole load so a typo cannot silently change how
// files decode.
//
// =============================================================================

package schema

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// overrideFile is the on-disk shape of a schema override document.
type overrideFile struct {
	Segments map[string]Rule `yaml:"segments"`
}

// RuleError describes why an override rule was rejected.
type RuleError struct {
	// File is the override file the rule came from.
	File string

	// SegmentID is the segment identifier the rule targets.
	SegmentID string

	// Message is a human-readable description of the problem.
	Message string
}

// Error implements the error interface.
func (e *RuleError) Error() string {
	return fmt.Sprintf("%s: segment %q: %s", e.File, e.SegmentID, e.Message)
}

// LoadOverrides reads every *.yaml / *.yml file in dir and merges the rules
// it defines into the registry, replacing built-in rules on identifier
// collision. A missing directory is not an error: overrides are optional.
func (r *Registry) LoadOverrides(dir string) error {
	if dir == "" {
		return nil
	}
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return fmt.Errorf("failed to list schema files: %w", err)
	}
	ymlFiles, err := filepath.Glob(filepath.Join(dir, "*.yml"))
	if err != nil {
		return fmt.Errorf("failed to list schema files: %w", err)
	}
	files = append(files, ymlFiles...)

	for _, file := range files {
		if err := r.loadOverrideFile(file); err != nil {
			return err
		}
	}

	return nil
}

// loadOverrideFile parses, validates, and registers one override document.
func (r *Registry) loadOverrideFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read schema file %s: %w", path, err)
	}

	var doc overrideFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("failed to parse schema file %s: %w", path, err)
	}

	for id, rule := range doc.Segments {
		id = strings.TrimSpace(id)
		if id == "" {
			return &RuleError{File: path, SegmentID: id, Message: "empty segment identifier"}
		}
		if err := validateRule(path, id, rule); err != nil {
			return err
		}
		r.Register(id, rule)
	}

	return nil
}

// validateRule checks that an override rule is internally consistent: every
// field has a name and a 1-based index, names are unique within the rule,
// and a composite split names both of its output fields.
func validateRule(file, id string, rule Rule) error {
	if len(rule.Fields) == 0 && rule.Split == nil && rule.RestName == "" {
		return &RuleError{File: file, SegmentID: id, Message: "rule defines no fields, composite, or rest capture"}
	}

	seen := make(map[string]bool, len(rule.Fields))
	for _, f := range rule.Fields {
		if strings.TrimSpace(f.Name) == "" {
			return &RuleError{File: file, SegmentID: id, Message: "field with empty name"}
		}
		if f.Index < 1 {
			return &RuleError{File: file, SegmentID: id,
				Message: fmt.Sprintf("field %q has index %d; element indices are 1-based", f.Name, f.Index)}
		}
		if seen[f.Name] {
			return &RuleError{File: file, SegmentID: id,
				Message: fmt.Sprintf("duplicate field name %q", f.Name)}
		}
		seen[f.Name] = true
	}

	if s := rule.Split; s != nil {
		if s.Index < 1 {
			return &RuleError{File: file, SegmentID: id,
				Message: fmt.Sprintf("composite has index %d; element indices are 1-based", s.Index)}
		}
		if s.Delimiter == "" {
			return &RuleError{File: file, SegmentID: id, Message: "composite with empty delimiter"}
		}
		if strings.TrimSpace(s.RawName) == "" || strings.TrimSpace(s.PartsName) == "" {
			return &RuleError{File: file, SegmentID: id, Message: "composite must name both raw_name and parts_name"}
		}
		if seen[s.RawName] || seen[s.PartsName] {
			return &RuleError{File: file, SegmentID: id, Message: "composite output name collides with a field name"}
		}
	}

	return nil
}
