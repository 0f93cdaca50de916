package core

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_AsInt(t *testing.T) {
	t.Run("Should accept integral numbers in any decoded form", func(t *testing.T) {
		for _, v := range []any{25, int64(25), float64(25), json.Number("25")} {
			i, ok := AsInt(v)
			assert.True(t, ok)
			assert.Equal(t, 25, i)
		}
	})

	t.Run("Should reject fractional numbers, bools, and strings", func(t *testing.T) {
		for _, v := range []any{25.5, true, "25", nil} {
			_, ok := AsInt(v)
			assert.False(t, ok, "%v (%T)", v, v)
		}
	})
}

func Test_AsFloat(t *testing.T) {
	t.Run("Should widen decoded numbers to float64", func(t *testing.T) {
		for _, v := range []any{3, int64(3), float64(3), float32(3), json.Number("3")} {
			f, ok := AsFloat(v)
			assert.True(t, ok)
			assert.InEpsilon(t, 3.0, f, 1e-9)
		}
	})

	t.Run("Should reject bools and strings", func(t *testing.T) {
		for _, v := range []any{true, "3", nil} {
			_, ok := AsFloat(v)
			assert.False(t, ok, "%v (%T)", v, v)
		}
	})
}
