package models

// SourceKind identifies where a document's text came from.
type SourceKind string

const (
	SourcePasted   SourceKind = "pasted"
	SourceFetched  SourceKind = "fetched"
	SourceUploaded SourceKind = "uploaded"
)

// Document is the plain-text input to the analysis pipeline plus origin
// metadata. Documents are request-scoped and never persisted as-is.
type Document struct {
	Text   string     `json:"text"`
	Source SourceKind `json:"source"`
	Origin string     `json:"origin,omitempty"` // URL or filename, empty for pasted text

	// Page enrichment, populated for fetched documents only.
	PageTitle string `json:"page_title,omitempty"`
	Excerpt   string `json:"excerpt,omitempty"`
	SiteName  string `json:"site_name,omitempty"`
}
