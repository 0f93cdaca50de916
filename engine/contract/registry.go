package contract

import (
	"sort"
	"sync"
)

// Registry indexes validated tool contracts by id. Registration is
// append-only; re-registering an id is an error so that two tasks can never
// silently shadow each other within one process.
type Registry struct {
	mu        sync.RWMutex
	contracts map[string]*ToolContract
}

func NewRegistry() *Registry {
	return &Registry{contracts: make(map[string]*ToolContract)}
}

func (r *Registry) Register(tc *ToolContract) error {
	if tc == nil {
		return NewError(ErrCodeInvalidContract, "", "cannot register a nil contract")
	}
	if tc.ID == "" {
		return NewError(ErrCodeInvalidContract, "", "cannot register a contract without an id")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.contracts[tc.ID]; ok {
		return NewErrorf(ErrCodeDuplicateContract, tc.ID, "contract already registered")
	}
	r.contracts[tc.ID] = tc
	return nil
}

func (r *Registry) Get(id string) (*ToolContract, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tc, ok := r.contracts[id]
	if !ok {
		return nil, NewErrorf(ErrCodeContractNotFound, id, "contract not registered")
	}
	return tc, nil
}

func (r *Registry) Has(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.contracts[id]
	return ok
}

// IDs returns the registered contract ids in sorted order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.contracts))
	for id := range r.contracts {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.contracts)
}
