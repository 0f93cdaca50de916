package option

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSet(t *testing.T) SchemaSet {
	t.Helper()
	set, err := NewSchemaSet(
		MustNewSchema("t.task_options.min_length", "Min Length", "", TypeInt, 25),
		MustNewSchema("t.task_options.label", "Label", "", TypeString, "run"),
		MustNewSchema("t.task_options.strict", "Strict", "", TypeBool, false),
	)
	require.NoError(t, err)
	return set
}

func Test_NewSchemaSet(t *testing.T) {
	t.Run("Should reject duplicate option ids", func(t *testing.T) {
		a := MustNewSchema("t.task_options.n", "N", "", TypeInt, 1)
		b := MustNewSchema("t.task_options.n", "N again", "", TypeInt, 2)
		_, err := NewSchemaSet(a, b)
		require.Error(t, err)
		var oe *OptionError
		require.True(t, errors.As(err, &oe))
		assert.Equal(t, ErrCodeDuplicateOption, oe.Code)
	})
}

func Test_SchemaSetValidate(t *testing.T) {
	t.Run("Should fill unsupplied options with their defaults", func(t *testing.T) {
		set := testSet(t)
		resolved, err := set.Validate(nil)
		require.NoError(t, err)
		require.Len(t, resolved, 3)
		assert.Equal(t, 25, resolved["t.task_options.min_length"].Int())
		assert.Equal(t, "run", resolved["t.task_options.label"].Str())
		assert.False(t, resolved["t.task_options.strict"].Bool())
	})

	t.Run("Should override defaults with supplied values", func(t *testing.T) {
		set := testSet(t)
		resolved, err := set.Validate(map[string]any{
			"t.task_options.min_length": float64(50),
			"t.task_options.strict":     true,
		})
		require.NoError(t, err)
		assert.Equal(t, 50, resolved["t.task_options.min_length"].Int())
		assert.True(t, resolved["t.task_options.strict"].Bool())
		assert.Equal(t, "run", resolved["t.task_options.label"].Str())
	})

	t.Run("Should reject unknown option keys by name", func(t *testing.T) {
		set := testSet(t)
		_, err := set.Validate(map[string]any{"t.task_options.nope": 1})
		require.Error(t, err)
		var oe *OptionError
		require.True(t, errors.As(err, &oe))
		assert.Equal(t, ErrCodeUnknownOption, oe.Code)
		assert.Equal(t, "t.task_options.nope", oe.Option)
	})

	t.Run("Should name the offending option on a type violation", func(t *testing.T) {
		set := testSet(t)
		_, err := set.Validate(map[string]any{"t.task_options.min_length": "50"})
		require.Error(t, err)
		var oe *OptionError
		require.True(t, errors.As(err, &oe))
		assert.Equal(t, ErrCodeTypeMismatch, oe.Code)
		assert.Equal(t, "t.task_options.min_length", oe.Option)
	})

	t.Run("Should not mutate the candidate map", func(t *testing.T) {
		set := testSet(t)
		candidates := map[string]any{"t.task_options.strict": true}
		_, err := set.Validate(candidates)
		require.NoError(t, err)
		assert.Len(t, candidates, 1)
	})
}
