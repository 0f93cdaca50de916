package filetype

// Well-known file types. CHUNK is special: gather contracts are structurally
// constrained to exactly one input slot of this type.
var (
	TXT       = FileType{ID: ToFileNS("txt"), BaseName: "file", Ext: "txt", MimeType: MimeTxt}
	LOG       = FileType{ID: ToFileNS("log"), BaseName: "file", Ext: "log", MimeType: MimeTxt}
	JSON      = FileType{ID: ToFileNS("json"), BaseName: "file", Ext: "json", MimeType: MimeJSON}
	CSV       = FileType{ID: ToFileNS("csv"), BaseName: "file", Ext: "csv", MimeType: MimeCSV}
	XML       = FileType{ID: ToFileNS("xml"), BaseName: "file", Ext: "xml", MimeType: MimeXML}
	GZIP      = FileType{ID: ToFileNS("gzip"), BaseName: "file", Ext: "gz", MimeType: MimeGzip}
	REPORT    = FileType{ID: ToFileNS("json_report"), BaseName: "report", Ext: "json", MimeType: MimeJSON}
	DATASTORE = FileType{ID: ToFileNS("datastore"), BaseName: "file", Ext: "datastore.json", MimeType: MimeJSON}

	CHUNK  = FileType{ID: ToFileNS("chunk"), BaseName: "chunk", Ext: "json", MimeType: MimeJSON}
	SCHUNK = FileType{ID: ToFileNS("scatter_chunk"), BaseName: "scatter_chunk", Ext: "json", MimeType: MimeJSON}
	GCHUNK = FileType{ID: ToFileNS("gather_chunk"), BaseName: "gather_chunk", Ext: "json", MimeType: MimeJSON}

	FASTA = FileType{ID: ToFileNS("fasta"), BaseName: "file", Ext: "fasta", MimeType: MimeTxt}
	FASTQ = FileType{ID: ToFileNS("fastq"), BaseName: "file", Ext: "fastq", MimeType: MimeTxt}
	BAM   = FileType{ID: ToFileNS("bam"), BaseName: "alignments", Ext: "bam", MimeType: MimeBinary}
	SAM   = FileType{ID: ToFileNS("sam"), BaseName: "alignments", Ext: "sam", MimeType: MimeBinary}
	VCF   = FileType{ID: ToFileNS("vcf"), BaseName: "file", Ext: "vcf", MimeType: MimeTxt}
	GFF   = FileType{ID: ToFileNS("gff"), BaseName: "file", Ext: "gff", MimeType: MimeTxt}
	BED   = FileType{ID: ToFileNS("bed"), BaseName: "file", Ext: "bed", MimeType: MimeTxt}
)

var defaults = []FileType{
	TXT, LOG, JSON, CSV, XML, GZIP, REPORT, DATASTORE,
	CHUNK, SCHUNK, GCHUNK,
	FASTA, FASTQ, BAM, SAM, VCF, GFF, BED,
}

// DefaultRegistry returns a registry pre-populated with the well-known types.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	for _, ft := range defaults {
		// defaults are distinct by construction
		if err := r.Register(ft); err != nil {
			panic(err)
		}
	}
	return r
}
