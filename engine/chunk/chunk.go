package chunk

import (
	"regexp"
	"sort"
	"strings"
)

// KeyPrefix marks the values a scatter task promises to emit per shard.
// Keys without the prefix are inert pass-through metadata.
const KeyPrefix = "$chunk."

var reChunkKey = regexp.MustCompile(`^\$chunk\.[A-Za-z0-9_]+$`)

// IsChunkKey reports whether a key names a per-shard routed value.
func IsChunkKey(key string) bool {
	return strings.HasPrefix(key, KeyPrefix)
}

// ValidateKey checks a chunk key against the grammar.
func ValidateKey(key string) error {
	if !reChunkKey.MatchString(key) {
		return NewErrorf(ErrCodeMalformedKey, key, "chunk key must match %s", reChunkKey.String())
	}
	return nil
}

// PipelineChunk is one shard's record: an id plus a namespaced key-value
// mapping of per-shard resolved values and pass-through metadata.
type PipelineChunk struct {
	ID    string
	datum map[string]any
}

// New builds a chunk. The chunk id must not itself look like a chunk key.
func New(chunkID string, values map[string]any) (*PipelineChunk, error) {
	if IsChunkKey(chunkID) {
		return nil, NewErrorf(ErrCodeMalformedKey, chunkID, "chunk id must not begin with %q", KeyPrefix)
	}
	c := &PipelineChunk{ID: chunkID, datum: make(map[string]any, len(values))}
	for k, v := range values {
		c.datum[k] = v
	}
	return c, nil
}

func MustNew(chunkID string, values map[string]any) *PipelineChunk {
	c, err := New(chunkID, values)
	if err != nil {
		panic(err)
	}
	return c
}

// SetChunkKey adds or overwrites a routed per-shard value. The key may be
// given with or without the "$chunk." prefix.
func (c *PipelineChunk) SetChunkKey(key string, value any) {
	if !IsChunkKey(key) {
		key = KeyPrefix + key
	}
	c.datum[key] = value
}

// SetMetadataKey adds or overwrites an inert metadata value.
func (c *PipelineChunk) SetMetadataKey(key string, value any) error {
	if IsChunkKey(key) {
		return NewErrorf(ErrCodeMalformedKey, key, "metadata key must not begin with %q", KeyPrefix)
	}
	c.datum[key] = value
	return nil
}

// Get returns the raw value for a key.
func (c *PipelineChunk) Get(key string) (any, bool) {
	v, ok := c.datum[key]
	return v, ok
}

// ChunkKeys returns the routed key names in sorted order.
func (c *PipelineChunk) ChunkKeys() []string {
	keys := make([]string, 0, len(c.datum))
	for k := range c.datum {
		if IsChunkKey(k) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

// Metadata returns a copy of the non-routed key-value pairs.
func (c *PipelineChunk) Metadata() map[string]any {
	md := make(map[string]any)
	for k, v := range c.datum {
		if !IsChunkKey(k) {
			md[k] = v
		}
	}
	return md
}

// Datum returns a copy of the full key-value mapping.
func (c *PipelineChunk) Datum() map[string]any {
	d := make(map[string]any, len(c.datum))
	for k, v := range c.datum {
		d[k] = v
	}
	return d
}
