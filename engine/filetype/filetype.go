package filetype

import "fmt"

// MimeType identifies the base content type of a file type.
type MimeType string

const (
	MimeJSON   MimeType = "application/json"
	MimeTxt    MimeType = "text/plain"
	MimeCSV    MimeType = "text/csv"
	MimeXML    MimeType = "application/xml"
	MimeBinary MimeType = "application/octet-stream"
	MimeGzip   MimeType = "application/x-gzip"
)

// FileType is an immutable descriptor for a registered file type. It is
// referenced by ID everywhere else, never copied into contracts.
type FileType struct {
	ID       string   `json:"file_type_id"`
	BaseName string   `json:"base_name"`
	Ext      string   `json:"ext"`
	MimeType MimeType `json:"mime_type"`
}

// DefaultName returns the fallback file name used when an output slot does
// not declare one.
func (ft FileType) DefaultName() string {
	return ft.BaseName + "." + ft.Ext
}

func (ft FileType) String() string {
	return fmt.Sprintf("<FileType id=%s name=%s >", ft.ID, ft.DefaultName())
}

// Namespace is the prefix for all file type identifiers owned by this
// project, e.g. "toolpact.files.fasta".
const Namespace = "toolpact.files"

// ToFileNS builds a namespaced file type id.
func ToFileNS(name string) string {
	return Namespace + "." + name
}
