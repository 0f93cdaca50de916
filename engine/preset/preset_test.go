package preset

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Load(t *testing.T) {
	t.Run("Should load an object-form options block", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		raw := `{
            "presetId": "site-defaults",
            "options": {
                "example_tools.task_options.min_length": 50,
                "example_tools.task_options.label": "nightly"
            }
        }`
		require.NoError(t, afero.WriteFile(fs, "/preset.json", []byte(raw), 0o644))

		p, err := Load(fs, "/preset.json")
		require.NoError(t, err)
		assert.Equal(t, "site-defaults", p.ID)
		assert.Len(t, p.Options, 2)
		assert.Equal(t, "nightly", p.Options["example_tools.task_options.label"])
	})

	t.Run("Should load a list-form options block", func(t *testing.T) {
		raw := `{
            "presetId": "site-defaults",
            "options": [
                {"id": "example_tools.task_options.min_length", "value": 50}
            ]
        }`
		p, err := Parse([]byte(raw), "/preset.json")
		require.NoError(t, err)
		assert.Equal(t, float64(50), p.Options["example_tools.task_options.min_length"])
	})

	t.Run("Should reject a list entry without an id", func(t *testing.T) {
		raw := `{"presetId": "x", "options": [{"value": 1}]}`
		_, err := Parse([]byte(raw), "/preset.json")
		require.Error(t, err)
	})

	t.Run("Should reject duplicate ids in list form", func(t *testing.T) {
		raw := `{"presetId": "x", "options": [
            {"id": "a.task_options.n", "value": 1},
            {"id": "a.task_options.n", "value": 2}
        ]}`
		_, err := Parse([]byte(raw), "/preset.json")
		require.Error(t, err)
	})

	t.Run("Should reject a document without an options block", func(t *testing.T) {
		_, err := Parse([]byte(`{"presetId": "x"}`), "/preset.json")
		require.Error(t, err)
	})
}

func Test_Apply(t *testing.T) {
	t.Run("Should layer preset values under caller options", func(t *testing.T) {
		p := &Preset{
			ID: "site-defaults",
			Options: map[string]any{
				"a.task_options.min_length": 50,
				"a.task_options.label":      "nightly",
			},
		}
		merged, err := p.Apply(map[string]any{"a.task_options.min_length": 100})
		require.NoError(t, err)
		assert.Equal(t, 100, merged["a.task_options.min_length"])
		assert.Equal(t, "nightly", merged["a.task_options.label"])
	})

	t.Run("Should not mutate the caller map", func(t *testing.T) {
		p := &Preset{ID: "x", Options: map[string]any{"a.task_options.k": 1}}
		caller := map[string]any{}
		_, err := p.Apply(caller)
		require.NoError(t, err)
		assert.Empty(t, caller)
	})
}
