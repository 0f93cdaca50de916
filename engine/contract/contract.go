package contract

import (
	"regexp"

	"github.com/toolpact/toolpact/engine/option"
)

// Task ids follow "<toolset>.tasks.<name>".
var reTaskID = regexp.MustCompile(`^[A-Za-z0-9_]+\.tasks\.[A-Za-z0-9_]+$`)

// Driver is the external executable the orchestrator invokes with a resolved
// contract's path as its single argument.
type Driver struct {
	Exe string            `json:"exe" validate:"required"`
	Env map[string]string `json:"env"`
}

// InputFileType declares one ordered input slot by file type id.
type InputFileType struct {
	FileTypeID  string `json:"file_type_id" validate:"required"`
	ID          string `json:"id"           validate:"required"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// OutputFileType declares one ordered output slot. DefaultName is the
// author-supplied file name synthesized under the run's output directory.
type OutputFileType struct {
	FileTypeID  string `json:"file_type_id" validate:"required"`
	ID          string `json:"id"           validate:"required"`
	Title       string `json:"title"`
	Description string `json:"description"`
	DefaultName string `json:"default_name"`
}

// ToolContract is the declarative, author-time description of a task. It is
// authored once per executable and invariant across runs; the resolver
// combines it with run-time values to produce a ResolvedToolContract.
//
// Scatter and gather specializations are carried as optional fields on the
// one base record: ChunkKeys+MaxNchunks populated means scatter, ChunkKey
// populated means gather. Resolution dispatches on which are set.
type ToolContract struct {
	ID          string           `json:"tool_contract_id" validate:"required"`
	Name        string           `json:"name"             validate:"required"`
	Description string           `json:"description"`
	Version     string           `json:"version"          validate:"required"`
	TaskType    TaskType         `json:"task_type"`
	InputTypes  []InputFileType  `json:"input_types"`
	OutputTypes []OutputFileType `json:"output_types"`
	Options     option.SchemaSet `json:"schema_options"`
	Nproc       IntOrSymbol      `json:"nproc"`
	Resources   []ResourceType   `json:"resource_types"`
	Driver      Driver           `json:"driver"`

	// scatter-only
	ChunkKeys  []string    `json:"chunk_keys,omitempty"`
	MaxNchunks IntOrSymbol `json:"max_nchunks,omitempty"`

	// gather-only
	ChunkKey string `json:"chunk_key,omitempty"`
}

func (tc *ToolContract) IsScatter() bool {
	return len(tc.ChunkKeys) > 0
}

func (tc *ToolContract) IsGather() bool {
	return tc.ChunkKey != ""
}

// IsDistributed reports whether the orchestrator may ship the task to a
// remote worker.
func (tc *ToolContract) IsDistributed() bool {
	return tc.TaskType == TaskTypeDistributed
}
