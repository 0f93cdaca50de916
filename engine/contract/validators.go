package contract

import (
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/go-playground/validator/v10"

	"github.com/toolpact/toolpact/engine/chunk"
	"github.com/toolpact/toolpact/engine/filetype"
	"github.com/toolpact/toolpact/engine/option"
)

// -----------------------------------------------------------------------------
// Validator interface
// -----------------------------------------------------------------------------

type Validator interface {
	Validate() error
}

// CompositeValidator allows combining multiple validators
type CompositeValidator struct {
	validators []Validator
}

func NewCompositeValidator(validators ...Validator) *CompositeValidator {
	return &CompositeValidator{validators: validators}
}

func (v *CompositeValidator) Validate() error {
	for _, validator := range v.validators {
		if err := validator.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// -----------------------------------------------------------------------------
// StructValidator
// -----------------------------------------------------------------------------

type StructValidator struct {
	validate *validator.Validate
	value    any
}

func NewStructValidator(value any) *StructValidator {
	return &StructValidator{validate: validator.New(), value: value}
}

func (v *StructValidator) Validate() error {
	return v.validate.Struct(v.value)
}

// -----------------------------------------------------------------------------
// Contract validation
// -----------------------------------------------------------------------------

// Validate checks the contract's structural invariants. The registry is used
// to verify every declared slot references a known file type.
func (tc *ToolContract) Validate(reg *filetype.Registry) error {
	v := NewCompositeValidator(
		NewStructValidator(tc),
		&identityValidator{tc: tc},
		&slotValidator{tc: tc, reg: reg},
		&resourceValidator{tc: tc},
		&chunkingValidator{tc: tc},
	)
	return v.Validate()
}

type identityValidator struct {
	tc *ToolContract
}

func (v *identityValidator) Validate() error {
	tc := v.tc
	if !reTaskID.MatchString(tc.ID) {
		return NewErrorf(ErrCodeInvalidTaskID, tc.ID, "task id must match %s", reTaskID.String())
	}
	if _, err := semver.NewVersion(tc.Version); err != nil {
		return NewErrorf(ErrCodeInvalidVersion, tc.ID, "version %q is not a semantic version: %s", tc.Version, err)
	}
	if !tc.TaskType.IsValid() {
		return NewErrorf(ErrCodeInvalidContract, tc.ID, "task type %q must be %q or %q",
			tc.TaskType, TaskTypeLocal, TaskTypeDistributed)
	}
	if !tc.Nproc.IsSymbol() && tc.Nproc.Int() < 1 {
		return NewErrorf(ErrCodeInvalidNproc, tc.ID, "literal nproc must be >= 1, got %d", tc.Nproc.Int())
	}
	if tc.Nproc.IsSymbol() && tc.Nproc.Symbol() != SymbolMaxNproc {
		return NewErrorf(ErrCodeInvalidNproc, tc.ID, "nproc symbol must be %s, got %s", SymbolMaxNproc, tc.Nproc.Symbol())
	}
	if _, err := option.NewSchemaSet(tc.Options...); err != nil {
		return NewErrorf(ErrCodeInvalidContract, tc.ID, "%s", err)
	}
	return nil
}

type slotValidator struct {
	tc  *ToolContract
	reg *filetype.Registry
}

func (v *slotValidator) Validate() error {
	tc := v.tc
	for i, in := range tc.InputTypes {
		if v.reg != nil && !v.reg.IsValidID(in.FileTypeID) {
			return NewErrorf(ErrCodeInvalidContract, tc.ID, "input slot %d references unknown file type %q", i, in.FileTypeID)
		}
	}
	for i, out := range tc.OutputTypes {
		if v.reg != nil && !v.reg.IsValidID(out.FileTypeID) {
			return NewErrorf(ErrCodeInvalidContract, tc.ID, "output slot %d references unknown file type %q", i, out.FileTypeID)
		}
	}
	return nil
}

type resourceValidator struct {
	tc *ToolContract
}

func (v *resourceValidator) Validate() error {
	tc := v.tc
	seen := make(map[ResourceType]int, len(tc.Resources))
	for _, r := range tc.Resources {
		if !r.IsValid() {
			return NewErrorf(ErrCodeInvalidResource, tc.ID, "unknown resource symbol %q", r)
		}
		seen[r]++
	}
	// tmp files may be requested more than once; a dir and a log file may not
	if seen[ResourceTmpDir] > 1 {
		return NewErrorf(ErrCodeInvalidResource, tc.ID, "%s requested %d times", ResourceTmpDir, seen[ResourceTmpDir])
	}
	if seen[ResourceLogFile] > 1 {
		return NewErrorf(ErrCodeInvalidResource, tc.ID, "%s requested %d times", ResourceLogFile, seen[ResourceLogFile])
	}
	return nil
}

type chunkingValidator struct {
	tc *ToolContract
}

func (v *chunkingValidator) Validate() error {
	tc := v.tc
	if tc.IsScatter() && tc.IsGather() {
		return NewError(ErrCodeInvalidContract, tc.ID, "contract cannot be both scatter and gather")
	}
	if tc.IsScatter() {
		return v.validateScatter()
	}
	if tc.IsGather() {
		return v.validateGather()
	}
	return nil
}

func (v *chunkingValidator) validateScatter() error {
	tc := v.tc
	for _, key := range tc.ChunkKeys {
		if !strings.HasPrefix(key, chunk.KeyPrefix) {
			return NewErrorf(ErrCodeInvalidChunkKey, tc.ID, "chunk key %q must begin with %q", key, chunk.KeyPrefix)
		}
	}
	if tc.MaxNchunks.IsSymbol() {
		if tc.MaxNchunks.Symbol() != SymbolMaxNchunks {
			return NewErrorf(ErrCodeInvalidContract, tc.ID, "max_nchunks symbol must be %s, got %s",
				SymbolMaxNchunks, tc.MaxNchunks.Symbol())
		}
		return nil
	}
	if tc.MaxNchunks.Int() < 1 {
		return NewErrorf(ErrCodeInvalidContract, tc.ID, "literal max_nchunks must be >= 1, got %d", tc.MaxNchunks.Int())
	}
	return nil
}

func (v *chunkingValidator) validateGather() error {
	tc := v.tc
	if !strings.HasPrefix(tc.ChunkKey, chunk.KeyPrefix) {
		return NewErrorf(ErrCodeInvalidChunkKey, tc.ID, "chunk key %q must begin with %q", tc.ChunkKey, chunk.KeyPrefix)
	}
	if len(tc.InputTypes) != 1 || tc.InputTypes[0].FileTypeID != filetype.CHUNK.ID {
		return NewErrorf(ErrCodeInvalidGatherSlot, tc.ID,
			"gather contracts take exactly one input of type %q", filetype.CHUNK.ID)
	}
	if len(tc.OutputTypes) != 1 {
		return NewErrorf(ErrCodeMultipleOutputs, tc.ID,
			"gather contracts produce exactly one output, got %d slots", len(tc.OutputTypes))
	}
	return nil
}
