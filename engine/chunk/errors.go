package chunk

import "fmt"

// Error codes
const (
	ErrCodeMalformedKey      = "MALFORMED_CHUNK_KEY"
	ErrCodeKeySkew           = "CHUNK_KEY_SKEW"
	ErrCodeDuplicateChunkID  = "DUPLICATE_CHUNK_ID"
	ErrCodeMissingChunkKey   = "MISSING_CHUNK_KEY"
	ErrCodeMalformedDocument = "MALFORMED_CHUNK_DOCUMENT"
)

// ChunkError names the offending chunk id or key alongside a stable code.
type ChunkError struct {
	Code    string
	Key     string
	Message string
}

func (e *ChunkError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %q: %s", e.Code, e.Key, e.Message)
}

func NewError(code, key, message string) *ChunkError {
	return &ChunkError{Code: code, Key: key, Message: message}
}

func NewErrorf(code, key, format string, args ...any) *ChunkError {
	return &ChunkError{Code: code, Key: key, Message: fmt.Sprintf(format, args...)}
}
