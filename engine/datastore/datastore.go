// Package datastore records the files a task run produced, so downstream
// consumers can locate outputs by a stable source id instead of guessing
// paths.
package datastore

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/afero"

	"github.com/toolpact/toolpact/pkg/atomicfile"
)

const DocumentVersion = "0.1.0"

// File is one produced artifact. SourceID ties it back to the output slot
// that produced it; UUID identifies the artifact itself across moves.
type File struct {
	UUID        string    `json:"uniqueId"`
	SourceID    string    `json:"sourceId"`
	FileTypeID  string    `json:"fileTypeId"`
	Path        string    `json:"path"`
	FileSize    int64     `json:"fileSize"`
	CreatedAt   time.Time `json:"createdAt"`
	ModifiedAt  time.Time `json:"modifiedAt"`
	Name        string    `json:"name,omitempty"`
	Description string    `json:"description,omitempty"`
}

// NewFile stamps a fresh artifact record with a random identity and the
// current time.
func NewFile(sourceID, fileTypeID, path string, size int64) File {
	now := time.Now().UTC()
	return File{
		UUID:       uuid.NewString(),
		SourceID:   sourceID,
		FileTypeID: fileTypeID,
		Path:       path,
		FileSize:   size,
		CreatedAt:  now,
		ModifiedAt: now,
	}
}

// DataStore is an append-only collection of produced files keyed by source
// id.
type DataStore struct {
	files map[string]File
}

func New() *DataStore {
	return &DataStore{files: make(map[string]File)}
}

func (ds *DataStore) Add(f File) error {
	if f.SourceID == "" {
		return fmt.Errorf("datastore file requires a source id")
	}
	if _, ok := ds.files[f.SourceID]; ok {
		return fmt.Errorf("datastore already holds source id %q", f.SourceID)
	}
	ds.files[f.SourceID] = f
	return nil
}

func (ds *DataStore) Get(sourceID string) (File, bool) {
	f, ok := ds.files[sourceID]
	return f, ok
}

func (ds *DataStore) Len() int {
	return len(ds.files)
}

// Files returns the records sorted by source id.
func (ds *DataStore) Files() []File {
	out := make([]File, 0, len(ds.files))
	for _, f := range ds.files {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SourceID < out[j].SourceID })
	return out
}

type doc struct {
	Version   string    `json:"version"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Files     []File    `json:"files"`
}

// Write serializes the datastore atomically.
func (ds *DataStore) Write(fs afero.Fs, path string) error {
	now := time.Now().UTC()
	d := doc{
		Version:   DocumentVersion,
		CreatedAt: now,
		UpdatedAt: now,
		Files:     ds.Files(),
	}
	data, err := json.MarshalIndent(d, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to encode datastore: %w", err)
	}
	return atomicfile.WriteFile(fs, path, append(data, '\n'), 0o644)
}

// Load reads a datastore document back.
func Load(fs afero.Fs, path string) (*DataStore, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read datastore %s: %w", path, err)
	}
	var d doc
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("failed to decode datastore %s: %w", path, err)
	}
	ds := New()
	for _, f := range d.Files {
		if err := ds.Add(f); err != nil {
			return nil, fmt.Errorf("datastore %s: %w", path, err)
		}
	}
	return ds, nil
}
