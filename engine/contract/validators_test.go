package contract

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toolpact/toolpact/engine/filetype"
	"github.com/toolpact/toolpact/engine/option"
)

func devContract() *ToolContract {
	return &ToolContract{
		ID:          "example_tools.tasks.filter_fasta",
		Name:        "Filter FASTA",
		Description: "Drops sequences shorter than the configured minimum.",
		Version:     "0.1.0",
		TaskType:    TaskTypeLocal,
		InputTypes: []InputFileType{
			{FileTypeID: filetype.FASTA.ID, ID: "fasta_in", Title: "Input sequences"},
		},
		OutputTypes: []OutputFileType{
			{FileTypeID: filetype.FASTA.ID, ID: "fasta_out", Title: "Filtered sequences", DefaultName: "filtered.fasta"},
		},
		Options: option.SchemaSet{
			option.MustNewSchema("example_tools.task_options.min_length", "Min Length", "", option.TypeInt, 25),
		},
		Nproc:  LiteralInt(1),
		Driver: Driver{Exe: "filter-fasta --resolved-tool-contract"},
	}
}

func scatterContract() *ToolContract {
	tc := devContract()
	tc.ID = "example_tools.tasks.scatter_fasta"
	tc.Name = "Scatter FASTA"
	tc.OutputTypes = []OutputFileType{
		{FileTypeID: filetype.CHUNK.ID, ID: "cjson_out", DefaultName: "fasta.chunks.json"},
	}
	tc.ChunkKeys = []string{"$chunk.fasta_id"}
	tc.MaxNchunks = SymbolValue(SymbolMaxNchunks)
	return tc
}

func gatherContract() *ToolContract {
	tc := devContract()
	tc.ID = "example_tools.tasks.gather_fasta"
	tc.Name = "Gather FASTA"
	tc.InputTypes = []InputFileType{
		{FileTypeID: filetype.CHUNK.ID, ID: "cjson_in"},
	}
	tc.OutputTypes = []OutputFileType{
		{FileTypeID: filetype.FASTA.ID, ID: "fasta_out", DefaultName: "gathered.fasta"},
	}
	tc.ChunkKey = "$chunk.fasta_id"
	return tc
}

func Test_ContractValidate(t *testing.T) {
	reg := filetype.DefaultRegistry()

	t.Run("Should accept a well-formed contract", func(t *testing.T) {
		require.NoError(t, devContract().Validate(reg))
	})

	t.Run("Should reject a task id outside the grammar", func(t *testing.T) {
		tc := devContract()
		tc.ID = "example_tools.filter_fasta"
		err := tc.Validate(reg)
		require.Error(t, err)
		var ce *ContractError
		require.True(t, errors.As(err, &ce))
		assert.Equal(t, ErrCodeInvalidTaskID, ce.Code)
	})

	t.Run("Should reject a version that is not semver", func(t *testing.T) {
		tc := devContract()
		tc.Version = "latest"
		err := tc.Validate(reg)
		require.Error(t, err)
		var ce *ContractError
		require.True(t, errors.As(err, &ce))
		assert.Equal(t, ErrCodeInvalidVersion, ce.Code)
	})

	t.Run("Should reject a literal nproc below one", func(t *testing.T) {
		tc := devContract()
		tc.Nproc = LiteralInt(0)
		err := tc.Validate(reg)
		require.Error(t, err)
		var ce *ContractError
		require.True(t, errors.As(err, &ce))
		assert.Equal(t, ErrCodeInvalidNproc, ce.Code)
	})

	t.Run("Should accept the max nproc symbol", func(t *testing.T) {
		tc := devContract()
		tc.Nproc = SymbolValue(SymbolMaxNproc)
		require.NoError(t, tc.Validate(reg))
	})

	t.Run("Should reject an unknown file type in a slot", func(t *testing.T) {
		tc := devContract()
		tc.InputTypes[0].FileTypeID = "toolpact.files.nope"
		err := tc.Validate(reg)
		require.Error(t, err)
		var ce *ContractError
		require.True(t, errors.As(err, &ce))
		assert.Equal(t, ErrCodeInvalidContract, ce.Code)
	})

	t.Run("Should allow repeated tmp file resources but not tmp dirs", func(t *testing.T) {
		tc := devContract()
		tc.Resources = []ResourceType{ResourceTmpFile, ResourceTmpFile, ResourceTmpDir}
		require.NoError(t, tc.Validate(reg))

		tc.Resources = append(tc.Resources, ResourceTmpDir)
		err := tc.Validate(reg)
		require.Error(t, err)
		var ce *ContractError
		require.True(t, errors.As(err, &ce))
		assert.Equal(t, ErrCodeInvalidResource, ce.Code)
	})

	t.Run("Should reject an unknown resource symbol", func(t *testing.T) {
		tc := devContract()
		tc.Resources = []ResourceType{"$scratch"}
		err := tc.Validate(reg)
		require.Error(t, err)
		var ce *ContractError
		require.True(t, errors.As(err, &ce))
		assert.Equal(t, ErrCodeInvalidResource, ce.Code)
	})
}

func Test_ChunkingValidate(t *testing.T) {
	reg := filetype.DefaultRegistry()

	t.Run("Should accept a well-formed scatter contract", func(t *testing.T) {
		require.NoError(t, scatterContract().Validate(reg))
	})

	t.Run("Should reject scatter chunk keys without the prefix", func(t *testing.T) {
		tc := scatterContract()
		tc.ChunkKeys = []string{"fasta_id"}
		err := tc.Validate(reg)
		require.Error(t, err)
		var ce *ContractError
		require.True(t, errors.As(err, &ce))
		assert.Equal(t, ErrCodeInvalidChunkKey, ce.Code)
	})

	t.Run("Should reject a contract that is both scatter and gather", func(t *testing.T) {
		tc := scatterContract()
		tc.ChunkKey = "$chunk.fasta_id"
		require.Error(t, tc.Validate(reg))
	})

	t.Run("Should accept a well-formed gather contract", func(t *testing.T) {
		require.NoError(t, gatherContract().Validate(reg))
	})

	t.Run("Should require the single gather input to be a chunk list", func(t *testing.T) {
		tc := gatherContract()
		tc.InputTypes[0].FileTypeID = filetype.FASTA.ID
		err := tc.Validate(reg)
		require.Error(t, err)
		var ce *ContractError
		require.True(t, errors.As(err, &ce))
		assert.Equal(t, ErrCodeInvalidGatherSlot, ce.Code)
	})

	t.Run("Should reject a gather contract with multiple outputs", func(t *testing.T) {
		tc := gatherContract()
		tc.OutputTypes = append(tc.OutputTypes, OutputFileType{
			FileTypeID: filetype.REPORT.ID, ID: "report_out", DefaultName: "report.json",
		})
		err := tc.Validate(reg)
		require.Error(t, err)
		var ce *ContractError
		require.True(t, errors.As(err, &ce))
		assert.Equal(t, ErrCodeMultipleOutputs, ce.Code)
	})
}
