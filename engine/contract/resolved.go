package contract

import (
	"encoding/json"
	"fmt"

	"github.com/toolpact/toolpact/engine/option"
)

// ResourceEntry pairs a requested resource symbol with the concrete path it
// resolved to. The wire form is a 2-element [symbol, path] array.
type ResourceEntry struct {
	Symbol ResourceType
	Path   string
}

func (r ResourceEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]string{string(r.Symbol), r.Path})
}

func (r *ResourceEntry) UnmarshalJSON(data []byte) error {
	var pair [2]string
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("resource entry must be a [symbol, path] pair: %w", err)
	}
	sym := ResourceType(pair[0])
	if !sym.IsValid() {
		return fmt.Errorf("unknown resource symbol %q", pair[0])
	}
	r.Symbol = sym
	r.Path = pair[1]
	return nil
}

// ResolvedToolContract is the concrete, executable form of a ToolContract
// for exactly one invocation: literal paths, a literal processor count, and
// fully validated option values. It is produced only by the resolver and
// never mutated afterwards.
type ResolvedToolContract struct {
	ID          string
	TaskType    TaskType
	InputFiles  []string
	OutputFiles []string
	Options     map[string]option.Value
	Nproc       int
	Resources   []ResourceEntry
	Driver      Driver

	// scatter-only: the realized ceiling and the keys the task must emit
	MaxNchunks int
	ChunkKeys  []string

	// gather-only: the single key selected for merging
	ChunkKey string
}

func (rtc *ResolvedToolContract) IsScatter() bool {
	return len(rtc.ChunkKeys) > 0
}

func (rtc *ResolvedToolContract) IsGather() bool {
	return rtc.ChunkKey != ""
}
