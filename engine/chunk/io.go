package chunk

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/afero"

	"github.com/toolpact/toolpact/pkg/atomicfile"
	"github.com/toolpact/toolpact/pkg/logger"
)

// DocumentVersion is the chunk-list document format version.
const DocumentVersion = "0.1.0"

type chunkDoc struct {
	ChunkID string         `json:"chunk_id"`
	Chunk   map[string]any `json:"chunk"`
}

type chunkListDoc struct {
	Version string     `json:"_version"`
	Nchunks int        `json:"nchunks"`
	Comment string     `json:"_comment,omitempty"`
	Chunks  []chunkDoc `json:"chunks"`
}

// WriteChunks persists a chunk list as a JSON document. The write is atomic
// from the reader's perspective and preserves chunk order.
func WriteChunks(fs afero.Fs, chunks []*PipelineChunk, path, comment string) error {
	doc := chunkListDoc{
		Version: DocumentVersion,
		Nchunks: len(chunks),
		Comment: comment,
		Chunks:  make([]chunkDoc, 0, len(chunks)),
	}
	for _, c := range chunks {
		doc.Chunks = append(doc.Chunks, chunkDoc{ChunkID: c.ID, Chunk: c.Datum()})
	}
	data, err := json.MarshalIndent(doc, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to encode chunk list: %w", err)
	}
	if err := atomicfile.WriteFile(fs, path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write chunk list %s: %w", path, err)
	}
	logger.Debug("wrote chunk list", "path", path, "nchunks", len(chunks))
	return nil
}

// LoadChunks reads a chunk list document. Chunks come back in document
// order: gather merge semantics depend on scatter emission order being
// preserved end to end, so no re-sorting happens here. Loading fails when
// the "$chunk."-prefixed key set differs across entries or a chunk id
// repeats.
func LoadChunks(fs afero.Fs, path string) ([]*PipelineChunk, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, NewErrorf(ErrCodeMalformedDocument, path, "failed to read chunk list: %s", err)
	}
	var doc chunkListDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, NewErrorf(ErrCodeMalformedDocument, path, "failed to decode chunk list: %s", err)
	}
	chunks := make([]*PipelineChunk, 0, len(doc.Chunks))
	seen := make(map[string]struct{}, len(doc.Chunks))
	for _, cd := range doc.Chunks {
		if _, dup := seen[cd.ChunkID]; dup {
			return nil, NewErrorf(ErrCodeDuplicateChunkID, cd.ChunkID, "chunk id repeated in %s", path)
		}
		seen[cd.ChunkID] = struct{}{}
		c, err := New(cd.ChunkID, cd.Chunk)
		if err != nil {
			return nil, err
		}
		chunks = append(chunks, c)
	}
	if err := validateKeySets(chunks, path); err != nil {
		return nil, err
	}
	return chunks, nil
}

// validateKeySets enforces the skew invariant: every chunk in a list carries
// the identical set of routed keys.
func validateKeySets(chunks []*PipelineChunk, path string) error {
	if len(chunks) < 2 {
		return nil
	}
	want := chunks[0].ChunkKeys()
	wantSet := make(map[string]struct{}, len(want))
	for _, k := range want {
		wantSet[k] = struct{}{}
	}
	for _, c := range chunks[1:] {
		got := c.ChunkKeys()
		if len(got) != len(want) {
			return skewError(c.ID, want, got, path)
		}
		for _, k := range got {
			if _, ok := wantSet[k]; !ok {
				return skewError(c.ID, want, got, path)
			}
		}
	}
	return nil
}

func skewError(chunkID string, want, got []string, path string) error {
	return NewErrorf(ErrCodeKeySkew, chunkID,
		"chunk key set %v differs from siblings' %v in %s", got, want, path)
}

// MergeForGather extracts one routed key's value from every chunk, in chunk
// list order. Order is significant: it defines the concatenation order for
// downstream merge tools, so this never re-sorts.
func MergeForGather(chunks []*PipelineChunk, chunkKey string) ([]string, error) {
	if err := ValidateKey(chunkKey); err != nil {
		return nil, err
	}
	paths := make([]string, 0, len(chunks))
	for _, c := range chunks {
		v, ok := c.Get(chunkKey)
		if !ok {
			return nil, NewErrorf(ErrCodeMissingChunkKey, chunkKey, "chunk %q does not carry the key", c.ID)
		}
		s, ok := v.(string)
		if !ok {
			return nil, NewErrorf(ErrCodeMissingChunkKey, chunkKey, "chunk %q carries a non-path value %v", c.ID, v)
		}
		paths = append(paths, s)
	}
	return paths, nil
}
