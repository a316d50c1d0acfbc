package mcp

// SearchInput defines the input schema for the search tool.
type SearchInput struct {
	Query string   `json:"query" jsonschema:"the search query to execute"`
	Limit int      `json:"limit,omitempty" jsonschema:"maximum number of results, default 5"`
	Files []string `json:"files,omitempty" jsonschema:"restrict search to these relative file paths"`
}

// SearchOutput defines the output schema for the search tool.
type SearchOutput struct {
	Results []SearchResultOutput `json:"results" jsonschema:"ranked search results"`
}

// SearchResultOutput is a single ranked section.
type SearchResultOutput struct {
	File      string   `json:"file" jsonschema:"file path relative to the index root"`
	Header    string   `json:"header" jsonschema:"section heading, or the file path for unstructured files"`
	Hierarchy string   `json:"hierarchy,omitempty" jsonschema:"ancestor headings joined with ' > '"`
	Score     float64  `json:"score" jsonschema:"TF-IDF relevance score"`
	Matched   []string `json:"matched" jsonschema:"query terms found in this section, in query order"`
	LineStart int      `json:"line_start" jsonschema:"first line of the section, 0-based"`
	LineEnd   int      `json:"line_end" jsonschema:"line after the last line of the section"`
	Preview   string   `json:"preview,omitempty" jsonschema:"bounded excerpt of the section body"`
}

// PeekInput defines the input schema for the peek tool.
type PeekInput struct {
	File  string `json:"file" jsonschema:"file path, relative to the project root"`
	Lines int    `json:"lines,omitempty" jsonschema:"number of leading lines to return, default 50"`
}

// PeekOutput defines the output schema for the peek tool.
type PeekOutput struct {
	File      string   `json:"file"`
	Lines     []string `json:"lines" jsonschema:"the leading lines of the file"`
	Remaining int      `json:"remaining" jsonschema:"count of lines not shown"`
}

// TopicsInput defines the input schema for the topics tool (no parameters).
type TopicsInput struct{}

// TopicsOutput lists distinct section headers grouped by file.
type TopicsOutput struct {
	Files []TopicFile `json:"files"`
}

// TopicFile is one indexed file and its section headers.
type TopicFile struct {
	File    string   `json:"file"`
	Headers []string `json:"headers"`
}

// IndexStatusInput defines the input schema for index_status (no parameters).
type IndexStatusInput struct{}

// IndexStatusOutput reports snapshot presence and index statistics.
type IndexStatusOutput struct {
	Present      bool   `json:"present"`
	Root         string `json:"root,omitempty"`
	Created      string `json:"created,omitempty"`
	FileCount    int    `json:"file_count"`
	SectionCount int    `json:"section_count"`
	IDFTerms     int    `json:"idf_terms"`
	TotalTokens  int    `json:"total_tokens"`
	TotalChars   int    `json:"total_chars"`
}
