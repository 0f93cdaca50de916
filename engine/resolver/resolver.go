// Package resolver turns declared tool contracts into executable resolved
// contracts. Resolution is pure: it binds paths, counts and option values,
// and never touches the filesystem beyond reading a chunk list for gather.
package resolver

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/toolpact/toolpact/engine/chunk"
	"github.com/toolpact/toolpact/engine/contract"
	"github.com/toolpact/toolpact/engine/core"
	"github.com/toolpact/toolpact/engine/filetype"
	"github.com/toolpact/toolpact/engine/option"
	"github.com/toolpact/toolpact/pkg/logger"
)

// Options carries the run-time environment a contract is resolved against.
// LogDir falls back to OutputDir when empty; everything else is required.
type Options struct {
	InputFiles []string
	OutputDir  string
	TmpDir     string
	LogDir     string
	MaxNproc   int
	MaxNchunks int

	// TaskOptions are raw candidate values keyed by option id. Unknown keys
	// and type violations are rejected against the contract's schemas.
	TaskOptions map[string]any

	// OutputFiles overrides output path synthesis when non-nil. Its length
	// must match the contract's output slots.
	OutputFiles []string

	// FileTypes resolves default output names. Nil means the built-in set.
	FileTypes *filetype.Registry
}

func (o *Options) normalize() error {
	if o.OutputDir == "" {
		return newError(ErrCodeBadEnvironment, StageResource, "", "output dir is required")
	}
	if o.TmpDir == "" {
		return newError(ErrCodeBadEnvironment, StageResource, "", "tmp dir is required")
	}
	if o.MaxNproc < 1 {
		return newError(ErrCodeBadEnvironment, StageNproc, "", "max nproc must be >= 1, got %d", o.MaxNproc)
	}
	if o.MaxNchunks < 1 {
		return newError(ErrCodeBadEnvironment, StageChunk, "", "max nchunks must be >= 1, got %d", o.MaxNchunks)
	}
	if o.LogDir == "" {
		o.LogDir = o.OutputDir
	}
	if o.FileTypes == nil {
		o.FileTypes = filetype.DefaultRegistry()
	}
	return nil
}

// Resolve binds a declared contract to one invocation's inputs, environment
// bounds and option values. The result is complete and executable; no
// directories or files are created.
func Resolve(tc *contract.ToolContract, opts Options) (*contract.ResolvedToolContract, error) {
	if err := opts.normalize(); err != nil {
		return nil, err
	}

	if len(opts.InputFiles) != len(tc.InputTypes) {
		return nil, newError(ErrCodeArity, StageArity, tc.ID,
			"contract declares %d input slots, got %d files",
			len(tc.InputTypes), len(opts.InputFiles))
	}

	outputs, err := resolveOutputs(tc, opts)
	if err != nil {
		return nil, err
	}

	values, err := tc.Options.Validate(opts.TaskOptions)
	if err != nil {
		return nil, optionError(tc.ID, err)
	}

	nproc, err := resolveNproc(tc, opts.MaxNproc)
	if err != nil {
		return nil, err
	}

	rtc := &contract.ResolvedToolContract{
		ID:          tc.ID,
		TaskType:    tc.TaskType,
		InputFiles:  append([]string(nil), opts.InputFiles...),
		OutputFiles: outputs,
		Options:     values,
		Nproc:       nproc,
		Resources:   resolveResources(tc, opts),
		Driver:      tc.Driver,
	}
	logger.Debug("resolved tool contract", "id", tc.ID, "nproc", nproc, "inputs", len(rtc.InputFiles))
	return rtc, nil
}

// ResolveScatter resolves a scatter contract. The requested chunk count must
// not exceed the effective ceiling; zero means "use the ceiling".
func ResolveScatter(tc *contract.ToolContract, opts Options, requestedNChunks int) (*contract.ResolvedToolContract, error) {
	if !tc.IsScatter() {
		return nil, newError(ErrCodeNotScatter, StageChunk, tc.ID, "contract declares no chunk keys")
	}
	rtc, err := Resolve(tc, opts)
	if err != nil {
		return nil, err
	}

	ceiling := opts.MaxNchunks
	if !tc.MaxNchunks.IsSymbol() && tc.MaxNchunks.Int() < ceiling {
		ceiling = tc.MaxNchunks.Int()
	}
	if requestedNChunks < 0 {
		return nil, newError(ErrCodeChunkCountExceeded, StageChunk, tc.ID,
			"requested chunk count must be >= 0, got %d", requestedNChunks)
	}
	if requestedNChunks > ceiling {
		return nil, newError(ErrCodeChunkCountExceeded, StageChunk, tc.ID,
			"requested %d chunks, ceiling is %d", requestedNChunks, ceiling)
	}
	if requestedNChunks == 0 {
		requestedNChunks = ceiling
	}

	rtc.MaxNchunks = requestedNChunks
	rtc.ChunkKeys = append([]string(nil), tc.ChunkKeys...)
	return rtc, nil
}

// ResolveGather resolves a gather contract against a written chunk list. The
// list is loaded to verify every chunk carries the contract's chunk key; the
// merge itself happens later, in the task.
func ResolveGather(fs afero.Fs, tc *contract.ToolContract, chunkListPath string, opts Options) (*contract.ResolvedToolContract, error) {
	if !tc.IsGather() {
		return nil, newError(ErrCodeNotGather, StageChunk, tc.ID, "contract declares no gather chunk key")
	}
	if len(tc.OutputTypes) != 1 {
		return nil, newError(ErrCodeMultipleOutputs, StageOutput, tc.ID,
			"gather contracts produce exactly one output, got %d slots", len(tc.OutputTypes))
	}

	chunks, err := chunk.LoadChunks(fs, chunkListPath)
	if err != nil {
		return nil, chunkError(tc.ID, err)
	}
	// every chunk must carry the declared key; the merged paths themselves
	// are consumed by the gather task at execution time
	if _, err := chunk.MergeForGather(chunks, tc.ChunkKey); err != nil {
		return nil, chunkError(tc.ID, err)
	}

	opts.InputFiles = []string{chunkListPath}
	rtc, err := Resolve(tc, opts)
	if err != nil {
		return nil, err
	}
	rtc.ChunkKey = tc.ChunkKey
	return rtc, nil
}

// -----------------------------------------------------------------------------
// Stages
// -----------------------------------------------------------------------------

func resolveOutputs(tc *contract.ToolContract, opts Options) ([]string, error) {
	if opts.OutputFiles != nil {
		if len(opts.OutputFiles) != len(tc.OutputTypes) {
			return nil, newError(ErrCodeArity, StageArity, tc.ID,
				"contract declares %d output slots, got %d override paths",
				len(tc.OutputTypes), len(opts.OutputFiles))
		}
		return append([]string(nil), opts.OutputFiles...), nil
	}
	outputs := make([]string, 0, len(tc.OutputTypes))
	for i, slot := range tc.OutputTypes {
		name := slot.DefaultName
		if name == "" {
			ft, err := opts.FileTypes.Get(slot.FileTypeID)
			if err != nil {
				return nil, newError(ErrCodeBadEnvironment, StageOutput, tc.ID,
					"output slot %d: %s", i, err)
			}
			name = ft.DefaultName()
		}
		outputs = append(outputs, filepath.Join(opts.OutputDir, name))
	}
	return outputs, nil
}

func resolveNproc(tc *contract.ToolContract, maxNproc int) (int, error) {
	if tc.Nproc.IsSymbol() {
		return maxNproc, nil
	}
	n := tc.Nproc.Int()
	if n > maxNproc {
		return 0, newError(ErrCodeResourceBound, StageNproc, tc.ID,
			"contract requires %d processors, environment grants %d", n, maxNproc)
	}
	return n, nil
}

// resolveResources synthesizes one concrete path per requested symbol. Paths
// are unique per invocation; nothing is created on disk.
func resolveResources(tc *contract.ToolContract, opts Options) []contract.ResourceEntry {
	if len(tc.Resources) == 0 {
		return nil
	}
	run := core.MustNewID().String()
	entries := make([]contract.ResourceEntry, 0, len(tc.Resources))
	nTmpFiles := 0
	for _, r := range tc.Resources {
		var path string
		switch r {
		case contract.ResourceTmpDir:
			path = filepath.Join(opts.TmpDir, fmt.Sprintf("toolpact-%s-tmpdir", run))
		case contract.ResourceTmpFile:
			path = filepath.Join(opts.TmpDir, fmt.Sprintf("toolpact-%s-%02d.tmp", run, nTmpFiles))
			nTmpFiles++
		case contract.ResourceLogFile:
			path = filepath.Join(opts.LogDir, fmt.Sprintf("toolpact-%s.log", run))
		}
		entries = append(entries, contract.ResourceEntry{Symbol: r, Path: path})
	}
	return entries
}

// -----------------------------------------------------------------------------
// Error mapping
// -----------------------------------------------------------------------------

func optionError(contractID string, err error) *ResolveError {
	var oe *option.OptionError
	if errors.As(err, &oe) {
		return wrapError(oe.Code, StageOption, contractID, err)
	}
	return wrapError(ErrCodeArity, StageOption, contractID, err)
}

func chunkError(contractID string, err error) *ResolveError {
	var ce *chunk.ChunkError
	if errors.As(err, &ce) {
		return wrapError(ce.Code, StageChunk, contractID, err)
	}
	return wrapError(chunk.ErrCodeMalformedDocument, StageChunk, contractID, err)
}
