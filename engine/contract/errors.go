package contract

import "fmt"

// Error codes
const (
	ErrCodeInvalidContract   = "INVALID_CONTRACT"
	ErrCodeInvalidTaskID     = "INVALID_TASK_ID"
	ErrCodeInvalidVersion    = "INVALID_VERSION"
	ErrCodeInvalidNproc      = "INVALID_NPROC"
	ErrCodeInvalidResource   = "INVALID_RESOURCE"
	ErrCodeInvalidChunkKey   = "INVALID_CHUNK_KEY"
	ErrCodeMultipleOutputs   = "MULTIPLE_OUTPUTS"
	ErrCodeInvalidGatherSlot = "INVALID_GATHER_SLOT"
	ErrCodeMalformedDocument = "MALFORMED_DOCUMENT"
	ErrCodeDuplicateContract = "DUPLICATE_CONTRACT"
	ErrCodeContractNotFound  = "CONTRACT_NOT_FOUND"
)

// ContractError reports a structural violation in a contract, naming the
// contract and the offending field or slot.
type ContractError struct {
	Code       string
	ContractID string
	Message    string
}

func (e *ContractError) Error() string {
	if e.ContractID == "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s: contract %q: %s", e.Code, e.ContractID, e.Message)
}

func NewError(code, contractID, message string) *ContractError {
	return &ContractError{Code: code, ContractID: contractID, Message: message}
}

func NewErrorf(code, contractID, format string, args ...any) *ContractError {
	return &ContractError{Code: code, ContractID: contractID, Message: fmt.Sprintf(format, args...)}
}

// DocumentError reports a load or parse failure for a JSON document,
// distinguished from semantic contract validation failures.
type DocumentError struct {
	Code    string
	Path    string
	Message string
	Err     error
}

func (e *DocumentError) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Code, e.Path, e.Message)
}

func (e *DocumentError) Unwrap() error {
	return e.Err
}

func NewDocumentError(path string, err error, format string, args ...any) *DocumentError {
	return &DocumentError{
		Code:    ErrCodeMalformedDocument,
		Path:    path,
		Message: fmt.Sprintf(format, args...),
		Err:     err,
	}
}
