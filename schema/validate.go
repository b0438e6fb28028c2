package schema

import (
	"fmt"
	"sort"
	"strings"

	"go.uber.org/multierr"

	"github.com/beamtime/qserverd/util"
)

// Violation is a single schema violation: the path of the offending
// key and a human readable reason.
type Violation struct {
	Path   string
	Reason string
}

func (v *Violation) Error() string {
	if v.Path == "" {
		return v.Reason
	}
	return fmt.Sprintf("%s: %s", v.Path, v.Reason)
}

// Violations unpacks an error returned by Validate into the individual
// schema violations it carries.
func Violations(err error) []*Violation {
	var result []*Violation
	for _, e := range multierr.Errors(err) {
		if v, ok := e.(*Violation); ok {
			result = append(result, v)
		}
	}
	return result
}

// Validate checks a generically decoded configuration document against
// the schema. All violations found in the document are collected and
// returned as a single error; a nil return means the document is
// valid. The empty document is valid, no section is required.
func Validate(doc map[string]interface{}) error {
	var err error
	for _, name := range sortedKeys(doc) {
		section, ok := LookupSection(name)
		if !ok {
			multierr.AppendInto(&err, &Violation{Path: name, Reason: "unknown section"})
			continue
		}
		multierr.AppendInto(&err, validateSection(section, doc[name]))
	}
	return err
}

func validateSection(s *Section, value interface{}) error {
	if value == nil {
		// an empty section ("network:" with no keys) is valid
		return nil
	}
	fields, ok := value.(map[string]interface{})
	if !ok {
		return &Violation{Path: s.Name, Reason: fmt.Sprintf("expected a mapping, got %T", value)}
	}

	var err error
	for _, name := range sortedKeys(fields) {
		path := s.Name + "." + name
		field, ok := s.Lookup(name)
		if !ok {
			multierr.AppendInto(&err, &Violation{Path: path, Reason: "unknown key"})
			continue
		}
		multierr.AppendInto(&err, validateField(path, field, fields[name]))
	}
	multierr.AppendInto(&err, validateCombination(s, fields))
	return err
}

func validateField(path string, f Field, value interface{}) error {
	switch f.Kind {
	case Bool:
		if _, ok := value.(bool); !ok {
			return &Violation{Path: path, Reason: fmt.Sprintf("expected a boolean, got %T", value)}
		}
	case Int:
		if !isInteger(value) {
			return &Violation{Path: path, Reason: fmt.Sprintf("expected an integer, got %T", value)}
		}
	default:
		s, ok := value.(string)
		if !ok {
			return &Violation{Path: path, Reason: fmt.Sprintf("expected a string, got %T", value)}
		}
		if f.Pattern != nil && !f.Pattern.MatchString(s) {
			return &Violation{Path: path, Reason: fmt.Sprintf("value %q does not match pattern %s", s, f.Pattern)}
		}
	}
	return nil
}

// validateCombination rejects any combination of the constrained
// fields that is absent from the enumerated legal list.
func validateCombination(s *Section, fields map[string]interface{}) error {
	if len(s.Constrained) == 0 {
		return nil
	}

	present := make([]string, 0, len(s.Constrained))
	for _, name := range s.Constrained {
		if _, ok := fields[name]; ok {
			present = append(present, name)
		}
	}

	for _, combination := range s.Combinations {
		if util.ElementsMatchString(present, combination) {
			return nil
		}
	}
	sort.Strings(present)
	return &Violation{
		Path:   s.Name,
		Reason: fmt.Sprintf("illegal combination of keys {%s}", strings.Join(present, ", ")),
	}
}

func isInteger(value interface{}) bool {
	switch value.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return true
	}
	return false
}

func sortedKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
