// Package preset layers site- or pipeline-level option defaults over a
// contract's own defaults. Presets carry raw values; validation against the
// contract's schemas happens at resolution.
package preset

import (
	"encoding/json"
	"fmt"

	"dario.cat/mergo"
	"github.com/spf13/afero"
	"github.com/tidwall/gjson"
)

// Preset is a named bundle of option overrides for one or more tasks.
type Preset struct {
	ID      string         `json:"presetId"`
	Name    string         `json:"name,omitempty"`
	Options map[string]any `json:"options"`
}

// entry is the alternate wire form: a list of {id, value} pairs.
type entry struct {
	ID    string `json:"id"`
	Value any    `json:"value"`
}

// Load reads a preset document. The options block may be either a plain
// object keyed by option id or a list of {id, value} entries; both forms
// appear in the wild.
func Load(fs afero.Fs, path string) (*Preset, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read preset %s: %w", path, err)
	}
	return Parse(data, path)
}

func Parse(data []byte, path string) (*Preset, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("preset %s is not valid JSON", path)
	}
	p := &Preset{
		ID:   gjson.GetBytes(data, "presetId").String(),
		Name: gjson.GetBytes(data, "name").String(),
	}
	raw := gjson.GetBytes(data, "options")
	if !raw.Exists() {
		return nil, fmt.Errorf("preset %s has no options block", path)
	}
	switch {
	case raw.IsObject():
		if err := json.Unmarshal([]byte(raw.Raw), &p.Options); err != nil {
			return nil, fmt.Errorf("preset %s: %w", path, err)
		}
	case raw.IsArray():
		var entries []entry
		if err := json.Unmarshal([]byte(raw.Raw), &entries); err != nil {
			return nil, fmt.Errorf("preset %s: %w", path, err)
		}
		p.Options = make(map[string]any, len(entries))
		for _, e := range entries {
			if e.ID == "" {
				return nil, fmt.Errorf("preset %s: entry missing id", path)
			}
			if _, ok := p.Options[e.ID]; ok {
				return nil, fmt.Errorf("preset %s: duplicate option id %q", path, e.ID)
			}
			p.Options[e.ID] = e.Value
		}
	default:
		return nil, fmt.Errorf("preset %s: options must be an object or a list", path)
	}
	return p, nil
}

// Apply overlays the preset under the caller's explicit options. Caller
// values win on conflict.
func (p *Preset) Apply(taskOptions map[string]any) (map[string]any, error) {
	merged := make(map[string]any, len(p.Options)+len(taskOptions))
	for k, v := range taskOptions {
		merged[k] = v
	}
	if err := mergo.Merge(&merged, p.Options); err != nil {
		return nil, fmt.Errorf("failed to apply preset %q: %w", p.ID, err)
	}
	return merged, nil
}
