package contract

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/kaptinlin/jsonschema"
)

// JSON-Schema shapes for the two document kinds. Shape violations are
// reported as MalformedDocument before any unmarshaling happens, so semantic
// validation never sees a half-shaped document.

const toolContractSchema = `{
    "type": "object",
    "required": ["tool_contract_id", "version", "driver", "tool_contract"],
    "properties": {
        "tool_contract_id": {"type": "string"},
        "version": {"type": "string"},
        "driver": {
            "type": "object",
            "required": ["exe"],
            "properties": {
                "exe": {"type": "string"},
                "env": {"type": "object"}
            }
        },
        "tool_contract": {
            "type": "object",
            "required": ["tool_contract_id", "task_type", "input_types", "output_types", "schema_options", "nproc", "resource_types"],
            "properties": {
                "task_type": {"type": "string"},
                "input_types": {"type": "array"},
                "output_types": {"type": "array"},
                "schema_options": {"type": "array"},
                "nproc": {"type": ["integer", "string"]},
                "resource_types": {"type": "array", "items": {"type": "string"}},
                "chunk_keys": {"type": "array", "items": {"type": "string"}},
                "max_nchunks": {"type": ["integer", "string"]},
                "chunk_key": {"type": "string"}
            }
        }
    }
}`

const resolvedToolContractSchema = `{
    "type": "object",
    "required": ["driver", "tool_contract"],
    "properties": {
        "driver": {
            "type": "object",
            "required": ["exe"]
        },
        "tool_contract": {
            "type": "object",
            "required": ["tool_contract_id", "task_type", "input_files", "output_files", "options", "nproc", "resources"],
            "properties": {
                "tool_contract_id": {"type": "string"},
                "task_type": {"type": "string"},
                "input_files": {"type": "array", "items": {"type": "string"}},
                "output_files": {"type": "array", "items": {"type": "string"}},
                "options": {"type": "object"},
                "nproc": {"type": "integer"},
                "resources": {"type": "array"}
            }
        }
    }
}`

var (
	compileOnce       sync.Once
	compiledTC        *jsonschema.Schema
	compiledRTC       *jsonschema.Schema
	compileSchemasErr error
)

func compileSchemas() error {
	compileOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		tc, err := compiler.Compile([]byte(toolContractSchema))
		if err != nil {
			compileSchemasErr = fmt.Errorf("failed to compile tool contract schema: %w", err)
			return
		}
		rtc, err := compiler.Compile([]byte(resolvedToolContractSchema))
		if err != nil {
			compileSchemasErr = fmt.Errorf("failed to compile resolved tool contract schema: %w", err)
			return
		}
		compiledTC = tc
		compiledRTC = rtc
	})
	return compileSchemasErr
}

func validateDocumentShape(schema *jsonschema.Schema, data []byte, path string) error {
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return NewDocumentError(path, err, "not a JSON object: %s", err)
	}
	result := schema.Validate(doc)
	if !result.Valid {
		return NewDocumentError(path, nil, "document shape invalid: %v", result.Errors)
	}
	return nil
}
