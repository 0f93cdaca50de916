package option

import "sort"

// SchemaSet is the ordered collection of option schemas declared by one
// contract. IDs are unique within a set.
type SchemaSet []*Schema

// NewSchemaSet builds a set, rejecting duplicate ids.
func NewSchemaSet(schemas ...*Schema) (SchemaSet, error) {
	set := make(SchemaSet, 0, len(schemas))
	seen := make(map[string]struct{}, len(schemas))
	for _, s := range schemas {
		if _, ok := seen[s.ID]; ok {
			return nil, NewError(ErrCodeDuplicateOption, s.ID, "declared more than once")
		}
		seen[s.ID] = struct{}{}
		set = append(set, s)
	}
	return set, nil
}

func (set SchemaSet) ByID(id string) (*Schema, bool) {
	for _, s := range set {
		if s.ID == id {
			return s, true
		}
	}
	return nil, false
}

// IDs returns the declared option ids in sorted order.
func (set SchemaSet) IDs() []string {
	ids := make([]string, 0, len(set))
	for _, s := range set {
		ids = append(ids, s.ID)
	}
	sort.Strings(ids)
	return ids
}

// Validate resolves candidate options against the set: every declared option
// ends up in the result (defaults fill the gaps), every candidate key must be
// declared, and every supplied value must satisfy its schema. Pure function;
// map iteration order does not affect the outcome.
func (set SchemaSet) Validate(candidates map[string]any) (map[string]Value, error) {
	for id := range candidates {
		if _, ok := set.ByID(id); !ok {
			return nil, NewUnknownOptionError(id)
		}
	}
	resolved := make(map[string]Value, len(set))
	for _, s := range set {
		raw, supplied := candidates[s.ID]
		if !supplied {
			resolved[s.ID] = s.Default
			continue
		}
		v, err := s.ValidateValue(raw)
		if err != nil {
			return nil, err
		}
		resolved[s.ID] = v
	}
	return resolved, nil
}
