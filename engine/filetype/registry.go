package filetype

import (
	"sort"
	"sync"

	"github.com/toolpact/toolpact/engine/core"
)

// Error codes
const (
	ErrCodeDuplicateFileType = "DUPLICATE_FILE_TYPE"
	ErrCodeUnknownFileType   = "UNKNOWN_FILE_TYPE"
)

// Registry maps file type ids to their descriptors. It is populated once at
// process start and treated as read-only afterwards; Get never mutates.
type Registry struct {
	mu    sync.RWMutex
	types map[string]FileType
}

func NewRegistry() *Registry {
	return &Registry{types: make(map[string]FileType)}
}

// Register adds a file type. Re-registering an id with a different
// descriptor is an error; registering the identical descriptor is a no-op.
func (r *Registry) Register(ft FileType) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.types[ft.ID]; ok {
		if existing == ft {
			return nil
		}
		return core.NewError(nil, ErrCodeDuplicateFileType, map[string]any{
			"file_type_id": ft.ID,
			"existing":     existing.DefaultName(),
			"conflicting":  ft.DefaultName(),
		})
	}
	r.types[ft.ID] = ft
	return nil
}

func (r *Registry) Get(id string) (FileType, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ft, ok := r.types[id]
	if !ok {
		return FileType{}, core.NewError(nil, ErrCodeUnknownFileType, map[string]any{
			"file_type_id": id,
		})
	}
	return ft, nil
}

func (r *Registry) IsValidID(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.types[id]
	return ok
}

// IDs returns all registered ids in sorted order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.types))
	for id := range r.types {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.types)
}
