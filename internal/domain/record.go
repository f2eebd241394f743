package domain

// Record is one logo entry in the catalog index.
// Records are immutable once loaded; absent optional fields stay empty.
type Record struct {
	ID         string   `json:"id"`
	Category   string   `json:"category,omitempty"`
	Categories []string `json:"categories,omitempty"`
	Keywords   []string `json:"keywords,omitempty"`
	Labels     []string `json:"labels,omitempty"`
	Asset      string   `json:"svg,omitempty"` // stored filename, e.g. "966294985.svg"
}
