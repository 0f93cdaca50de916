package cli

import (
	"fmt"
	"strconv"

	"github.com/toolpact/toolpact/engine/option"
)

// parseOptionString converts a flag-supplied string to the option's declared
// type. Strings pass through untouched.
func parseOptionString(t option.ValueType, s string) (any, error) {
	switch t {
	case option.TypeInt:
		n, err := strconv.Atoi(s)
		if err != nil {
			return nil, fmt.Errorf("expected an integer, got %q", s)
		}
		return n, nil
	case option.TypeFloat:
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("expected a number, got %q", s)
		}
		return f, nil
	case option.TypeBool:
		b, err := strconv.ParseBool(s)
		if err != nil {
			return nil, fmt.Errorf("expected a boolean, got %q", s)
		}
		return b, nil
	case option.TypeString:
		return s, nil
	default:
		return nil, fmt.Errorf("unknown option type %q", t)
	}
}
