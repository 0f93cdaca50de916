package option

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_FromAny(t *testing.T) {
	t.Run("Should accept an integral float64 as an integer", func(t *testing.T) {
		v, err := FromAny(TypeInt, float64(25))
		require.NoError(t, err)
		assert.Equal(t, TypeInt, v.Type())
		assert.Equal(t, 25, v.Int())
	})

	t.Run("Should reject a fractional number as an integer", func(t *testing.T) {
		_, err := FromAny(TypeInt, 25.5)
		require.Error(t, err)
	})

	t.Run("Should reject a numeric string as an integer", func(t *testing.T) {
		_, err := FromAny(TypeInt, "25")
		require.Error(t, err)
	})

	t.Run("Should reject a boolean as a number", func(t *testing.T) {
		_, err := FromAny(TypeInt, true)
		require.Error(t, err)
		_, err = FromAny(TypeFloat, false)
		require.Error(t, err)
	})

	t.Run("Should widen an integer to a float", func(t *testing.T) {
		v, err := FromAny(TypeFloat, 3)
		require.NoError(t, err)
		assert.Equal(t, TypeFloat, v.Type())
		assert.InEpsilon(t, 3.0, v.Float(), 1e-9)
	})

	t.Run("Should reject a string as a boolean", func(t *testing.T) {
		_, err := FromAny(TypeBool, "true")
		require.Error(t, err)
	})

	t.Run("Should pass strings through untouched", func(t *testing.T) {
		v, err := FromAny(TypeString, "hello")
		require.NoError(t, err)
		assert.Equal(t, "hello", v.Str())
	})
}

func Test_Infer(t *testing.T) {
	t.Run("Should classify decoded JSON literals by shape", func(t *testing.T) {
		v, err := Infer(true)
		require.NoError(t, err)
		assert.Equal(t, TypeBool, v.Type())

		v, err = Infer("x")
		require.NoError(t, err)
		assert.Equal(t, TypeString, v.Type())

		v, err = Infer(float64(7))
		require.NoError(t, err)
		assert.Equal(t, TypeInt, v.Type())
		assert.Equal(t, 7, v.Int())

		v, err = Infer(7.25)
		require.NoError(t, err)
		assert.Equal(t, TypeFloat, v.Type())
	})

	t.Run("Should reject values that are not JSON primitives", func(t *testing.T) {
		_, err := Infer([]any{1, 2})
		require.Error(t, err)
	})
}

func Test_ValueJSON(t *testing.T) {
	t.Run("Should marshal as the bare native value", func(t *testing.T) {
		data, err := json.Marshal(Int(42))
		require.NoError(t, err)
		assert.JSONEq(t, "42", string(data))

		data, err = json.Marshal(String("abc"))
		require.NoError(t, err)
		assert.JSONEq(t, `"abc"`, string(data))
	})
}

func Test_ValueTypeFromString(t *testing.T) {
	t.Run("Should accept number as a legacy alias for float", func(t *testing.T) {
		typ, err := ValueTypeFromString("number")
		require.NoError(t, err)
		assert.Equal(t, TypeFloat, typ)
	})

	t.Run("Should reject unknown type ids", func(t *testing.T) {
		_, err := ValueTypeFromString("decimal")
		require.Error(t, err)
	})
}
