package types

// SearchResult is a single hit returned by a search page.
// Results are ephemeral: they are produced per page and dropped once processed.
type SearchResult struct {
	Mode    Mode
	Owner   string     // login of the repository or gist owner (empty for anonymous gists)
	Label   string     // repository full name, or "Gist: <id>"
	Name    string     // file name (code mode)
	HTMLURL string     // web URL of the file (code mode)
	Files   []GistFile // gist manifest in API order (gist mode)
}

// GistFile is one entry of a gist's file manifest.
type GistFile struct {
	Filename string `json:"filename"`
	RawURL   string `json:"raw_url"`
}

// Candidate is a search hit that survived the filename filter and has a
// direct download URL.
type Candidate struct {
	Owner  string
	Label  string
	File   string
	RawURL string
}
