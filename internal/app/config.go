package app

// ColumnSpec declares one output column: where its value comes from in the
// record tree and how it is typed and post-processed.
type ColumnSpec struct {
	Name string `yaml:"name"`
	// Path is a slash-separated descendant path within the designated
	// element. Two pseudo-paths exist: "@file" yields the source file name,
	// "@text" yields the record's whole text content.
	Path string `yaml:"path"`
	// Type is "str" (default) or "int" (nullable integer).
	Type string `yaml:"type"`
	// Transform optionally names a post-processing helper: "patnum", "ipc",
	// "org" or "convey".
	Transform string `yaml:"transform"`
}

// Config holds runtime configuration for one extraction run.
type Config struct {
	Inputs  []string
	Output  string
	Tag     string
	Columns []ColumnSpec

	ChunkSize int
	DryRun    bool
	Verbose   bool
}
