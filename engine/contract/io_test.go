package contract

import (
	"errors"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toolpact/toolpact/engine/option"
)

func Test_ProbeKind(t *testing.T) {
	t.Run("Should classify documents by their top-level keys", func(t *testing.T) {
		assert.Equal(t, KindToolContract, ProbeKind([]byte(`{"tool_contract_id": "x", "tool_contract": {}}`)))
		assert.Equal(t, KindResolvedToolContract, ProbeKind([]byte(`{"tool_contract": {"input_files": []}}`)))
		assert.Equal(t, KindChunkList, ProbeKind([]byte(`{"chunks": []}`)))
		assert.Equal(t, KindUnknown, ProbeKind([]byte(`{"foo": 1}`)))
		assert.Equal(t, KindUnknown, ProbeKind([]byte(`{nope`)))
	})
}

func Test_ToolContractIO(t *testing.T) {
	t.Run("Should round-trip a plain contract", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		tc := devContract()
		require.NoError(t, WriteToolContract(fs, tc, "/tc.json"))

		got, err := LoadToolContract(fs, "/tc.json")
		require.NoError(t, err)
		assert.Equal(t, tc.ID, got.ID)
		assert.Equal(t, tc.Version, got.Version)
		assert.Equal(t, tc.TaskType, got.TaskType)
		assert.Equal(t, tc.Driver.Exe, got.Driver.Exe)
		require.Len(t, got.InputTypes, 1)
		assert.Equal(t, tc.InputTypes[0].FileTypeID, got.InputTypes[0].FileTypeID)
		require.Len(t, got.Options, 1)
		assert.Equal(t, tc.Options[0].ID, got.Options[0].ID)
		assert.True(t, tc.Options[0].Default.Equal(got.Options[0].Default))
	})

	t.Run("Should round-trip scatter fields", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		tc := scatterContract()
		require.NoError(t, WriteToolContract(fs, tc, "/scatter.json"))

		got, err := LoadToolContract(fs, "/scatter.json")
		require.NoError(t, err)
		assert.True(t, got.IsScatter())
		assert.Equal(t, []string{"$chunk.fasta_id"}, got.ChunkKeys)
		assert.True(t, got.MaxNchunks.IsSymbol())
	})

	t.Run("Should classify a written contract as a tool contract", func(t *testing.T) {
		data, err := MarshalToolContract(devContract())
		require.NoError(t, err)
		assert.Equal(t, KindToolContract, ProbeKind(data))
	})

	t.Run("Should reject a document missing required sections", func(t *testing.T) {
		_, err := ParseToolContract([]byte(`{"tool_contract_id": "x"}`), "/broken.json")
		require.Error(t, err)
		var de *DocumentError
		require.True(t, errors.As(err, &de))
		assert.Equal(t, ErrCodeMalformedDocument, de.Code)
		assert.Equal(t, "/broken.json", de.Path)
	})

	t.Run("Should reject mismatched contract ids between envelope and body", func(t *testing.T) {
		raw := `{
            "tool_contract_id": "a.tasks.x",
            "version": "0.1.0",
            "driver": {"exe": "x"},
            "tool_contract": {
                "tool_contract_id": "a.tasks.y",
                "task_type": "local",
                "input_types": [], "output_types": [], "schema_options": [],
                "nproc": 1, "resource_types": []
            }
        }`
		_, err := ParseToolContract([]byte(raw), "/mismatch.json")
		require.Error(t, err)
		var de *DocumentError
		require.True(t, errors.As(err, &de))
	})
}

func Test_ResolvedToolContractIO(t *testing.T) {
	t.Run("Should round-trip a resolved contract with typed options", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		rtc := &ResolvedToolContract{
			ID:          "example_tools.tasks.filter_fasta",
			TaskType:    TaskTypeLocal,
			InputFiles:  []string{"/data/in.fasta"},
			OutputFiles: []string{"/out/filtered.fasta"},
			Options: map[string]option.Value{
				"example_tools.task_options.min_length": option.Int(25),
				"example_tools.task_options.label":      option.String("run"),
			},
			Nproc: 4,
			Resources: []ResourceEntry{
				{Symbol: ResourceTmpDir, Path: "/tmp/run-tmpdir"},
			},
			Driver: Driver{Exe: "filter-fasta --resolved-tool-contract"},
		}
		require.NoError(t, WriteResolvedToolContract(fs, rtc, "/rtc.json"))

		got, err := LoadResolvedToolContract(fs, "/rtc.json")
		require.NoError(t, err)
		assert.Equal(t, rtc.ID, got.ID)
		assert.Equal(t, rtc.InputFiles, got.InputFiles)
		assert.Equal(t, rtc.OutputFiles, got.OutputFiles)
		assert.Equal(t, 4, got.Nproc)
		require.Len(t, got.Resources, 1)
		assert.Equal(t, ResourceTmpDir, got.Resources[0].Symbol)

		minLen := got.Options["example_tools.task_options.min_length"]
		assert.Equal(t, option.TypeInt, minLen.Type())
		assert.Equal(t, 25, minLen.Int())
	})

	t.Run("Should classify a written document as resolved", func(t *testing.T) {
		data, err := MarshalResolvedToolContract(&ResolvedToolContract{
			ID:       "a.tasks.x",
			TaskType: TaskTypeLocal,
			Driver:   Driver{Exe: "x"},
		})
		require.NoError(t, err)
		assert.Equal(t, KindResolvedToolContract, ProbeKind(data))
	})

	t.Run("Should reject a document missing the options block", func(t *testing.T) {
		raw := `{
            "driver": {"exe": "x"},
            "tool_contract": {
                "tool_contract_id": "a.tasks.x",
                "task_type": "local",
                "input_files": [], "output_files": [],
                "nproc": 1, "resources": []
            }
        }`
		_, err := ParseResolvedToolContract([]byte(raw), "/norts.json")
		require.Error(t, err)
		var de *DocumentError
		require.True(t, errors.As(err, &de))
	})
}
