package contract

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/afero"
	"github.com/tidwall/gjson"

	"github.com/toolpact/toolpact/engine/option"
	"github.com/toolpact/toolpact/pkg/atomicfile"
	"github.com/toolpact/toolpact/pkg/logger"
)

// -----------------------------------------------------------------------------
// Document Kind Probe
// -----------------------------------------------------------------------------

// DocumentKind classifies a JSON document by its distinguishing top-level
// keys without committing to a full parse.
type DocumentKind string

const (
	KindToolContract         DocumentKind = "tool_contract"
	KindResolvedToolContract DocumentKind = "resolved_tool_contract"
	KindChunkList            DocumentKind = "chunk_list"
	KindUnknown              DocumentKind = "unknown"
)

// ProbeKind inspects raw document bytes and reports which kind of document
// they carry. A declared contract has a top-level tool_contract_id; a
// resolved one nests it under tool_contract; a chunk list carries chunks.
func ProbeKind(data []byte) DocumentKind {
	if !gjson.ValidBytes(data) {
		return KindUnknown
	}
	switch {
	case gjson.GetBytes(data, "tool_contract_id").Exists():
		return KindToolContract
	case gjson.GetBytes(data, "tool_contract.input_files").Exists():
		return KindResolvedToolContract
	case gjson.GetBytes(data, "chunks").Exists():
		return KindChunkList
	default:
		return KindUnknown
	}
}

// -----------------------------------------------------------------------------
// Wire Documents
// -----------------------------------------------------------------------------

// toolContractDoc is the on-disk envelope: identity and driver at the top
// level, the task body nested under tool_contract.
type toolContractDoc struct {
	ToolContractID string  `json:"tool_contract_id"`
	Version        string  `json:"version"`
	Driver         Driver  `json:"driver"`
	Task           taskDoc `json:"tool_contract"`
}

type taskDoc struct {
	ToolContractID string           `json:"tool_contract_id"`
	Name           string           `json:"name"`
	Description    string           `json:"description"`
	TaskType       TaskType         `json:"task_type"`
	InputTypes     []InputFileType  `json:"input_types"`
	OutputTypes    []OutputFileType `json:"output_types"`
	SchemaOptions  option.SchemaSet `json:"schema_options"`
	Nproc          IntOrSymbol      `json:"nproc"`
	ResourceTypes  []ResourceType   `json:"resource_types"`

	ChunkKeys  []string     `json:"chunk_keys,omitempty"`
	MaxNchunks *IntOrSymbol `json:"max_nchunks,omitempty"`
	ChunkKey   string       `json:"chunk_key,omitempty"`
}

type resolvedDoc struct {
	Driver Driver          `json:"driver"`
	Task   resolvedTaskDoc `json:"tool_contract"`
}

type resolvedTaskDoc struct {
	ToolContractID string          `json:"tool_contract_id"`
	TaskType       TaskType        `json:"task_type"`
	InputFiles     []string        `json:"input_files"`
	OutputFiles    []string        `json:"output_files"`
	Options        map[string]any  `json:"options"`
	Nproc          int             `json:"nproc"`
	Resources      []ResourceEntry `json:"resources"`

	MaxNchunks int      `json:"max_nchunks,omitempty"`
	ChunkKeys  []string `json:"chunk_keys,omitempty"`
	ChunkKey   string   `json:"chunk_key,omitempty"`
}

func toDoc(tc *ToolContract) *toolContractDoc {
	doc := &toolContractDoc{
		ToolContractID: tc.ID,
		Version:        tc.Version,
		Driver:         tc.Driver,
		Task: taskDoc{
			ToolContractID: tc.ID,
			Name:           tc.Name,
			Description:    tc.Description,
			TaskType:       tc.TaskType,
			InputTypes:     tc.InputTypes,
			OutputTypes:    tc.OutputTypes,
			SchemaOptions:  tc.Options,
			Nproc:          tc.Nproc,
			ResourceTypes:  tc.Resources,
			ChunkKeys:      tc.ChunkKeys,
			ChunkKey:       tc.ChunkKey,
		},
	}
	if tc.IsScatter() {
		m := tc.MaxNchunks
		doc.Task.MaxNchunks = &m
	}
	return doc
}

func fromDoc(doc *toolContractDoc, path string) (*ToolContract, error) {
	id := doc.ToolContractID
	if doc.Task.ToolContractID != "" && doc.Task.ToolContractID != id {
		return nil, NewDocumentError(path, nil,
			"tool_contract_id mismatch: %q at top level, %q in body",
			id, doc.Task.ToolContractID)
	}
	tc := &ToolContract{
		ID:          id,
		Name:        doc.Task.Name,
		Description: doc.Task.Description,
		Version:     doc.Version,
		TaskType:    doc.Task.TaskType,
		InputTypes:  doc.Task.InputTypes,
		OutputTypes: doc.Task.OutputTypes,
		Options:     doc.Task.SchemaOptions,
		Nproc:       doc.Task.Nproc,
		Resources:   doc.Task.ResourceTypes,
		Driver:      doc.Driver,
		ChunkKeys:   doc.Task.ChunkKeys,
		ChunkKey:    doc.Task.ChunkKey,
	}
	if doc.Task.MaxNchunks != nil {
		tc.MaxNchunks = *doc.Task.MaxNchunks
	}
	return tc, nil
}

// -----------------------------------------------------------------------------
// Tool Contract IO
// -----------------------------------------------------------------------------

// LoadToolContract reads and shape-checks a declared tool contract document.
// Semantic validation is the caller's job via ToolContract.Validate.
func LoadToolContract(fs afero.Fs, path string) (*ToolContract, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, NewDocumentError(path, err, "failed to read document: %s", err)
	}
	return ParseToolContract(data, path)
}

// ParseToolContract decodes declared-contract bytes. The path is used only
// for error reporting.
func ParseToolContract(data []byte, path string) (*ToolContract, error) {
	if err := compileSchemas(); err != nil {
		return nil, err
	}
	if err := validateDocumentShape(compiledTC, data, path); err != nil {
		return nil, err
	}
	var doc toolContractDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, NewDocumentError(path, err, "failed to decode tool contract: %s", err)
	}
	return fromDoc(&doc, path)
}

// WriteToolContract serializes a declared contract and writes it atomically.
func WriteToolContract(fs afero.Fs, tc *ToolContract, path string) error {
	data, err := MarshalToolContract(tc)
	if err != nil {
		return err
	}
	if err := atomicfile.WriteFile(fs, path, data, 0o644); err != nil {
		return NewDocumentError(path, err, "failed to write tool contract: %s", err)
	}
	logger.Debug("wrote tool contract", "id", tc.ID, "path", path)
	return nil
}

// MarshalToolContract renders the on-disk envelope form of a contract.
func MarshalToolContract(tc *ToolContract) ([]byte, error) {
	data, err := json.MarshalIndent(toDoc(tc), "", "    ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode tool contract %q: %w", tc.ID, err)
	}
	return append(data, '\n'), nil
}

// -----------------------------------------------------------------------------
// Resolved Tool Contract IO
// -----------------------------------------------------------------------------

// LoadResolvedToolContract reads a resolved contract document. Option values
// are reconstructed by inference since the document carries no schemas.
func LoadResolvedToolContract(fs afero.Fs, path string) (*ResolvedToolContract, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, NewDocumentError(path, err, "failed to read document: %s", err)
	}
	return ParseResolvedToolContract(data, path)
}

func ParseResolvedToolContract(data []byte, path string) (*ResolvedToolContract, error) {
	if err := compileSchemas(); err != nil {
		return nil, err
	}
	if err := validateDocumentShape(compiledRTC, data, path); err != nil {
		return nil, err
	}
	var doc resolvedDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, NewDocumentError(path, err, "failed to decode resolved tool contract: %s", err)
	}
	opts := make(map[string]option.Value, len(doc.Task.Options))
	for k, raw := range doc.Task.Options {
		v, err := option.Infer(raw)
		if err != nil {
			return nil, NewDocumentError(path, err, "option %q: %s", k, err)
		}
		opts[k] = v
	}
	return &ResolvedToolContract{
		ID:          doc.Task.ToolContractID,
		TaskType:    doc.Task.TaskType,
		InputFiles:  doc.Task.InputFiles,
		OutputFiles: doc.Task.OutputFiles,
		Options:     opts,
		Nproc:       doc.Task.Nproc,
		Resources:   doc.Task.Resources,
		Driver:      doc.Driver,
		MaxNchunks:  doc.Task.MaxNchunks,
		ChunkKeys:   doc.Task.ChunkKeys,
		ChunkKey:    doc.Task.ChunkKey,
	}, nil
}

// WriteResolvedToolContract serializes a resolved contract atomically.
func WriteResolvedToolContract(fs afero.Fs, rtc *ResolvedToolContract, path string) error {
	data, err := MarshalResolvedToolContract(rtc)
	if err != nil {
		return err
	}
	if err := atomicfile.WriteFile(fs, path, data, 0o644); err != nil {
		return NewDocumentError(path, err, "failed to write resolved tool contract: %s", err)
	}
	logger.Debug("wrote resolved tool contract", "id", rtc.ID, "path", path)
	return nil
}

func MarshalResolvedToolContract(rtc *ResolvedToolContract) ([]byte, error) {
	opts := make(map[string]any, len(rtc.Options))
	for k, v := range rtc.Options {
		opts[k] = v.Any()
	}
	rtc = cloneWithSlices(rtc)
	doc := resolvedDoc{
		Driver: rtc.Driver,
		Task: resolvedTaskDoc{
			ToolContractID: rtc.ID,
			TaskType:       rtc.TaskType,
			InputFiles:     rtc.InputFiles,
			OutputFiles:    rtc.OutputFiles,
			Options:        opts,
			Nproc:          rtc.Nproc,
			Resources:      rtc.Resources,
			MaxNchunks:     rtc.MaxNchunks,
			ChunkKeys:      rtc.ChunkKeys,
			ChunkKey:       rtc.ChunkKey,
		},
	}
	data, err := json.MarshalIndent(doc, "", "    ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode resolved tool contract %q: %w", rtc.ID, err)
	}
	return append(data, '\n'), nil
}

// The required array fields must serialize as [] rather than null.
func cloneWithSlices(rtc *ResolvedToolContract) *ResolvedToolContract {
	out := *rtc
	if out.InputFiles == nil {
		out.InputFiles = []string{}
	}
	if out.OutputFiles == nil {
		out.OutputFiles = []string{}
	}
	if out.Resources == nil {
		out.Resources = []ResourceEntry{}
	}
	return &out
}
