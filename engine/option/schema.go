package option

import (
	"encoding/json"
	"regexp"
	"strings"
)

// Option ids are dotted namespaced identifiers, e.g.
// "example_tools.task_options.min_length".
var reOptionID = regexp.MustCompile(`^[A-Za-z0-9_]+(\.[A-Za-z0-9_]+)*$`)

// ValidateOptionID reports whether an option id adheres to the grammar.
func ValidateOptionID(id string) error {
	if !reOptionID.MatchString(id) {
		return NewErrorf(ErrCodeInvalidSchema, id, "option id must match %s", reOptionID.String())
	}
	return nil
}

// Schema declares one task option: its globally namespaced id, primitive
// type, default, display metadata, and (optionally) the closed set of
// allowed values.
type Schema struct {
	ID          string
	Name        string
	Description string
	Type        ValueType
	Default     Value
	Choices     []Value
}

// NewSchema builds and validates a schema entry. The default must satisfy
// the declared type and, when choices are given, be a member of them.
func NewSchema(id, name, description string, typ ValueType, def any, choices ...any) (*Schema, error) {
	if err := ValidateOptionID(id); err != nil {
		return nil, err
	}
	defValue, err := FromAny(typ, def)
	if err != nil {
		return nil, NewErrorf(ErrCodeInvalidSchema, id, "invalid default: %s", err)
	}
	s := &Schema{ID: id, Name: name, Description: description, Type: typ, Default: defValue}
	for _, c := range choices {
		cv, err := FromAny(typ, c)
		if err != nil {
			return nil, NewErrorf(ErrCodeInvalidSchema, id, "invalid choice %v: %s", c, err)
		}
		s.Choices = append(s.Choices, cv)
	}
	if len(s.Choices) > 0 && !s.isChoice(defValue) {
		return nil, NewErrorf(ErrCodeInvalidSchema, id, "default %v is not in allowed choices %v", def, s.Choices)
	}
	return s, nil
}

func MustNewSchema(id, name, description string, typ ValueType, def any, choices ...any) *Schema {
	s, err := NewSchema(id, name, description, typ, def, choices...)
	if err != nil {
		panic(err)
	}
	return s
}

func (s *Schema) HasChoices() bool {
	return len(s.Choices) > 0
}

func (s *Schema) isChoice(v Value) bool {
	for _, c := range s.Choices {
		if c.Equal(v) {
			return true
		}
	}
	return false
}

// ValidateValue checks a candidate value against the schema: strict type
// match first, then choice membership.
func (s *Schema) ValidateValue(raw any) (Value, error) {
	v, err := FromAny(s.Type, raw)
	if err != nil {
		return Value{}, NewTypeMismatchError(s.ID, s.Type, raw)
	}
	if s.HasChoices() && !s.isChoice(v) {
		return Value{}, NewChoiceViolationError(s.ID, raw, s.Choices)
	}
	return v, nil
}

// wire form mirrors the schema_options entries of a tool contract document.
// Choice-typed options carry a "choice_" prefixed optionTypeId.
type schemaDoc struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	Default      any    `json:"default"`
	OptionTypeID string `json:"optionTypeId"`
	Choices      []any  `json:"choices,omitempty"`
}

func (s *Schema) MarshalJSON() ([]byte, error) {
	doc := schemaDoc{
		ID:           s.ID,
		Name:         s.Name,
		Description:  s.Description,
		Default:      s.Default.Any(),
		OptionTypeID: string(s.Type),
	}
	if s.HasChoices() {
		doc.OptionTypeID = "choice_" + string(s.Type)
		for _, c := range s.Choices {
			doc.Choices = append(doc.Choices, c.Any())
		}
	}
	return json.Marshal(doc)
}

// UnmarshalJSON re-validates the entry on load: a schema with a bad default
// or malformed id never enters the process.
func (s *Schema) UnmarshalJSON(data []byte) error {
	var doc schemaDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	typeID := strings.TrimPrefix(doc.OptionTypeID, "choice_")
	typ, err := ValueTypeFromString(typeID)
	if err != nil {
		return NewErrorf(ErrCodeInvalidSchema, doc.ID, "%s", err)
	}
	parsed, err := NewSchema(doc.ID, doc.Name, doc.Description, typ, doc.Default, doc.Choices...)
	if err != nil {
		return err
	}
	*s = *parsed
	return nil
}
