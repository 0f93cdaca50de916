package resolver

import "fmt"

// Stage names the phase of resolution that rejected the request.
type Stage string

const (
	StageArity    Stage = "arity"
	StageOption   Stage = "option"
	StageNproc    Stage = "nproc"
	StageResource Stage = "resource"
	StageChunk    Stage = "chunk"
	StageOutput   Stage = "output"
)

// Error codes
const (
	ErrCodeArity              = "ARITY"
	ErrCodeResourceBound      = "RESOURCE_BOUND"
	ErrCodeChunkCountExceeded = "CHUNK_COUNT_EXCEEDED"
	ErrCodeMultipleOutputs    = "MULTIPLE_OUTPUTS"
	ErrCodeNotScatter         = "NOT_SCATTER"
	ErrCodeNotGather          = "NOT_GATHER"
	ErrCodeBadEnvironment     = "BAD_ENVIRONMENT"
)

// ResolveError reports why a contract could not be resolved, naming the
// contract and the resolution stage. Option failures wrap the option
// package's own errors so callers can still inspect the offending key.
type ResolveError struct {
	Code       string
	Stage      Stage
	ContractID string
	Message    string
	Err        error
}

func (e *ResolveError) Error() string {
	return fmt.Sprintf("%s: contract %q (%s): %s", e.Code, e.ContractID, e.Stage, e.Message)
}

func (e *ResolveError) Unwrap() error {
	return e.Err
}

func newError(code string, stage Stage, contractID, format string, args ...any) *ResolveError {
	return &ResolveError{
		Code:       code,
		Stage:      stage,
		ContractID: contractID,
		Message:    fmt.Sprintf(format, args...),
	}
}

func wrapError(code string, stage Stage, contractID string, err error) *ResolveError {
	return &ResolveError{
		Code:       code,
		Stage:      stage,
		ContractID: contractID,
		Message:    err.Error(),
		Err:        err,
	}
}
