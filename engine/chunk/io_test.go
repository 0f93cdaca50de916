package chunk

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_WriteAndLoadChunks(t *testing.T) {
	t.Run("Should round-trip a chunk list preserving order", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		chunks := []*PipelineChunk{
			MustNew("chunk-2", map[string]any{"$chunk.fasta_id": "c2.fasta", "nrecords": float64(10)}),
			MustNew("chunk-0", map[string]any{"$chunk.fasta_id": "c0.fasta", "nrecords": float64(20)}),
			MustNew("chunk-1", map[string]any{"$chunk.fasta_id": "c1.fasta", "nrecords": float64(5)}),
		}
		require.NoError(t, WriteChunks(fs, chunks, "/out/chunks.json", "scatter of movie.fasta"))

		got, err := LoadChunks(fs, "/out/chunks.json")
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, "chunk-2", got[0].ID)
		assert.Equal(t, "chunk-0", got[1].ID)
		assert.Equal(t, "chunk-1", got[2].ID)

		values, err := MergeForGather(got, "$chunk.fasta_id")
		require.NoError(t, err)
		assert.Equal(t, []string{"c2.fasta", "c0.fasta", "c1.fasta"}, values)
	})

	t.Run("Should stamp the document version and chunk count", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		chunks := []*PipelineChunk{MustNew("chunk-0", map[string]any{"$chunk.k": "v"})}
		require.NoError(t, WriteChunks(fs, chunks, "/chunks.json", ""))

		data, err := afero.ReadFile(fs, "/chunks.json")
		require.NoError(t, err)
		var doc map[string]any
		require.NoError(t, json.Unmarshal(data, &doc))
		assert.Equal(t, DocumentVersion, doc["_version"])
		assert.Equal(t, float64(1), doc["nchunks"])
		assert.NotContains(t, doc, "_comment")
	})

	t.Run("Should reject a list with skewed chunk key sets", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		raw := `{
            "_version": "0.1.0",
            "nchunks": 2,
            "chunks": [
                {"chunk_id": "chunk-0", "chunk": {"$chunk.fasta_id": "a.fasta"}},
                {"chunk_id": "chunk-1", "chunk": {"$chunk.report_id": "b.json"}}
            ]
        }`
		require.NoError(t, afero.WriteFile(fs, "/skew.json", []byte(raw), 0o644))

		_, err := LoadChunks(fs, "/skew.json")
		require.Error(t, err)
		var ce *ChunkError
		require.True(t, errors.As(err, &ce))
		assert.Equal(t, ErrCodeKeySkew, ce.Code)
		assert.Equal(t, "chunk-1", ce.Key)
	})

	t.Run("Should allow metadata keys to differ across chunks", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		raw := `{
            "_version": "0.1.0",
            "nchunks": 2,
            "chunks": [
                {"chunk_id": "chunk-0", "chunk": {"$chunk.fasta_id": "a.fasta", "host": "node1"}},
                {"chunk_id": "chunk-1", "chunk": {"$chunk.fasta_id": "b.fasta"}}
            ]
        }`
		require.NoError(t, afero.WriteFile(fs, "/meta.json", []byte(raw), 0o644))

		chunks, err := LoadChunks(fs, "/meta.json")
		require.NoError(t, err)
		assert.Len(t, chunks, 2)
	})

	t.Run("Should reject duplicate chunk ids", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		raw := `{
            "_version": "0.1.0",
            "nchunks": 2,
            "chunks": [
                {"chunk_id": "chunk-0", "chunk": {"$chunk.k": "a"}},
                {"chunk_id": "chunk-0", "chunk": {"$chunk.k": "b"}}
            ]
        }`
		require.NoError(t, afero.WriteFile(fs, "/dup.json", []byte(raw), 0o644))

		_, err := LoadChunks(fs, "/dup.json")
		require.Error(t, err)
		var ce *ChunkError
		require.True(t, errors.As(err, &ce))
		assert.Equal(t, ErrCodeDuplicateChunkID, ce.Code)
	})

	t.Run("Should report malformed JSON as a document error", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fs, "/bad.json", []byte("{nope"), 0o644))

		_, err := LoadChunks(fs, "/bad.json")
		require.Error(t, err)
		var ce *ChunkError
		require.True(t, errors.As(err, &ce))
		assert.Equal(t, ErrCodeMalformedDocument, ce.Code)
	})
}
