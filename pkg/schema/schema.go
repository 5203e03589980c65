// Package schema declares the wire shape of every storefront entity and
// validates untyped payloads against those shapes. The same shape definitions
// back both directions of the API: the server validates inbound request bodies
// with them and the client parses response bodies through them, so the two
// sides cannot drift apart.
package schema

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"
)

// Kind is the primitive type a field must decode to.
type Kind int

const (
	String Kind = iota
	Int
	Bool
	StringList
	ObjectList
)

// Field is one entry of a shape's declarative field-spec table.
type Field struct {
	Name     string
	Kind     Kind
	Required bool
	Default  interface{} // applied when the field is absent
	Enum     []string    // allowed literals (String) or element literals (StringList)
	Format   string      // extra format constraint, currently "email"
	Min      *int64      // lower bound for Int fields
	MinItems int         // minimum length for list fields
	Elem     *Shape      // element shape for ObjectList fields
}

// Shape is the declared wire shape of one entity.
type Shape struct {
	Entity string
	Fields []Field
}

// FieldError describes a single violated field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries every violated field of a payload, not just the
// first one found.
type ValidationError struct {
	Entity string
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Field+" "+f.Message)
	}
	return fmt.Sprintf("invalid %s: %s", e.Entity, strings.Join(msgs, "; "))
}

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Apply validates payload against the shape and returns a cleaned copy:
// declared fields only, defaults filled in for absent fields that declare one.
// On failure it returns a ValidationError enumerating all violations. The
// input map is never mutated.
func (s *Shape) Apply(payload map[string]interface{}) (map[string]interface{}, error) {
	cleaned := make(map[string]interface{}, len(s.Fields))
	var violations []FieldError

	for _, field := range s.Fields {
		value, present := payload[field.Name]
		if !present || value == nil {
			if field.Required {
				violations = append(violations, FieldError{field.Name, "is required"})
				continue
			}
			if field.Default != nil {
				cleaned[field.Name] = field.Default
			}
			continue
		}

		coerced, errs := field.check(value)
		if len(errs) > 0 {
			violations = append(violations, errs...)
			continue
		}
		cleaned[field.Name] = coerced
	}

	if len(violations) > 0 {
		sort.SliceStable(violations, func(i, j int) bool { return violations[i].Field < violations[j].Field })
		return nil, &ValidationError{Entity: s.Entity, Fields: violations}
	}
	return cleaned, nil
}

// ApplyPartial validates a partial payload: present fields are checked exactly
// as Apply checks them, but absent fields raise no required violations and
// receive no defaults. Update endpoints use it so a body only has to carry the
// fields it changes.
func (s *Shape) ApplyPartial(payload map[string]interface{}) (map[string]interface{}, error) {
	cleaned := make(map[string]interface{}, len(payload))
	var violations []FieldError

	for _, field := range s.Fields {
		value, present := payload[field.Name]
		if !present || value == nil {
			continue
		}
		coerced, errs := field.check(value)
		if len(errs) > 0 {
			violations = append(violations, errs...)
			continue
		}
		cleaned[field.Name] = coerced
	}

	if len(violations) > 0 {
		sort.SliceStable(violations, func(i, j int) bool { return violations[i].Field < violations[j].Field })
		return nil, &ValidationError{Entity: s.Entity, Fields: violations}
	}
	return cleaned, nil
}

// Decode validates payload against the shape and unmarshals the cleaned
// result into dst, which must be a pointer to one of the wire structs.
func (s *Shape) Decode(payload map[string]interface{}, dst interface{}) error {
	cleaned, err := s.Apply(payload)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(cleaned)
	if err != nil {
		return fmt.Errorf("encode cleaned %s: %w", s.Entity, err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("decode %s: %w", s.Entity, err)
	}
	return nil
}

func (f Field) check(value interface{}) (interface{}, []FieldError) {
	switch f.Kind {
	case String:
		str, ok := value.(string)
		if !ok {
			return nil, []FieldError{{f.Name, "must be a string"}}
		}
		if f.Required && str == "" {
			return nil, []FieldError{{f.Name, "must not be empty"}}
		}
		if len(f.Enum) > 0 && !containsString(f.Enum, str) {
			return nil, []FieldError{{f.Name, "must be one of " + strings.Join(f.Enum, ", ")}}
		}
		if f.Format == "email" && !emailPattern.MatchString(str) {
			return nil, []FieldError{{f.Name, "must be a valid email address"}}
		}
		return str, nil

	case Int:
		n, ok := asInt64(value)
		if !ok {
			return nil, []FieldError{{f.Name, "must be an integer"}}
		}
		if f.Min != nil && n < *f.Min {
			return nil, []FieldError{{f.Name, fmt.Sprintf("must be at least %d", *f.Min)}}
		}
		return n, nil

	case Bool:
		b, ok := value.(bool)
		if !ok {
			return nil, []FieldError{{f.Name, "must be a boolean"}}
		}
		return b, nil

	case StringList:
		items, ok := value.([]interface{})
		if !ok {
			if typed, isTyped := value.([]string); isTyped {
				items = make([]interface{}, len(typed))
				for i, s := range typed {
					items[i] = s
				}
			} else {
				return nil, []FieldError{{f.Name, "must be a list of strings"}}
			}
		}
		if len(items) < f.MinItems {
			return nil, []FieldError{{f.Name, "must not be empty"}}
		}
		var errs []FieldError
		list := make([]string, 0, len(items))
		for i, item := range items {
			str, isStr := item.(string)
			if !isStr {
				errs = append(errs, FieldError{fmt.Sprintf("%s[%d]", f.Name, i), "must be a string"})
				continue
			}
			if len(f.Enum) > 0 && !containsString(f.Enum, str) {
				errs = append(errs, FieldError{fmt.Sprintf("%s[%d]", f.Name, i), "must be one of " + strings.Join(f.Enum, ", ")})
				continue
			}
			list = append(list, str)
		}
		if len(errs) > 0 {
			return nil, errs
		}
		return list, nil

	case ObjectList:
		items, ok := value.([]interface{})
		if !ok {
			return nil, []FieldError{{f.Name, "must be a list"}}
		}
		if len(items) < f.MinItems {
			return nil, []FieldError{{f.Name, "must not be empty"}}
		}
		var errs []FieldError
		list := make([]interface{}, 0, len(items))
		for i, item := range items {
			obj, isObj := item.(map[string]interface{})
			if !isObj {
				errs = append(errs, FieldError{fmt.Sprintf("%s[%d]", f.Name, i), "must be an object"})
				continue
			}
			cleaned, err := f.Elem.Apply(obj)
			if err != nil {
				var ve *ValidationError
				if ok := asValidationError(err, &ve); ok {
					for _, fe := range ve.Fields {
						errs = append(errs, FieldError{fmt.Sprintf("%s[%d].%s", f.Name, i, fe.Field), fe.Message})
					}
					continue
				}
				errs = append(errs, FieldError{fmt.Sprintf("%s[%d]", f.Name, i), err.Error()})
				continue
			}
			list = append(list, cleaned)
		}
		if len(errs) > 0 {
			return nil, errs
		}
		return list, nil
	}

	return nil, []FieldError{{f.Name, "has an unknown kind"}}
}

// asInt64 accepts the numeric encodings a JSON decode can produce and rejects
// fractional values.
func asInt64(value interface{}) (int64, bool) {
	switch n := value.(type) {
	case float64:
		if n != math.Trunc(n) {
			return 0, false
		}
		return int64(n), true
	case int:
		return int64(n), true
	case int64:
		return n, true
	case json.Number:
		i, err := n.Int64()
		return i, err == nil
	}
	return 0, false
}

func asValidationError(err error, target **ValidationError) bool {
	ve, ok := err.(*ValidationError)
	if ok {
		*target = ve
	}
	return ok
}

func containsString(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}

func intPtr(n int64) *int64 { return &n }
