package contract

import (
	"encoding/json"
	"fmt"
)

// -----------------------------------------------------------------------------
// Task Type
// -----------------------------------------------------------------------------

// TaskType tags whether a task may be shipped to a remote worker or must run
// on the submitting host.
type TaskType string

const (
	TaskTypeLocal       TaskType = "local"
	TaskTypeDistributed TaskType = "distributed"
)

func (t TaskType) String() string {
	return string(t)
}

func (t TaskType) IsValid() bool {
	return t == TaskTypeLocal || t == TaskTypeDistributed
}

// -----------------------------------------------------------------------------
// Symbols
// -----------------------------------------------------------------------------

// Symbol is a placeholder understood during resolution, e.g. the maximum
// processor count granted by the environment.
type Symbol string

const (
	SymbolMaxNproc   Symbol = "$max_nproc"
	SymbolMaxNchunks Symbol = "$max_nchunks"
)

// ResourceType is a symbolic resource request resolved to a concrete path.
type ResourceType string

const (
	ResourceTmpDir  ResourceType = "$tmpdir"
	ResourceTmpFile ResourceType = "$tmpfile"
	ResourceLogFile ResourceType = "$logfile"
)

func (r ResourceType) IsValid() bool {
	switch r {
	case ResourceTmpDir, ResourceTmpFile, ResourceLogFile:
		return true
	default:
		return false
	}
}

// -----------------------------------------------------------------------------
// IntOrSymbol
// -----------------------------------------------------------------------------

// IntOrSymbol holds either a literal count or a symbol resolved against an
// environment bound at resolution time. Used for nproc and max_nchunks.
type IntOrSymbol struct {
	sym Symbol
	val int
}

func LiteralInt(v int) IntOrSymbol {
	return IntOrSymbol{val: v}
}

func SymbolValue(s Symbol) IntOrSymbol {
	return IntOrSymbol{sym: s}
}

func (x IntOrSymbol) IsSymbol() bool {
	return x.sym != ""
}

func (x IntOrSymbol) Symbol() Symbol {
	return x.sym
}

func (x IntOrSymbol) Int() int {
	return x.val
}

func (x IntOrSymbol) String() string {
	if x.IsSymbol() {
		return string(x.sym)
	}
	return fmt.Sprintf("%d", x.val)
}

func (x IntOrSymbol) MarshalJSON() ([]byte, error) {
	if x.IsSymbol() {
		return json.Marshal(string(x.sym))
	}
	return json.Marshal(x.val)
}

func (x *IntOrSymbol) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		*x = LiteralInt(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		switch Symbol(s) {
		case SymbolMaxNproc, SymbolMaxNchunks:
			*x = SymbolValue(Symbol(s))
			return nil
		}
		return fmt.Errorf("unknown symbol %q", s)
	}
	return fmt.Errorf("expected int or symbol, got %s", string(data))
}
