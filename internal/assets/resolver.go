// Package assets resolves stored asset filenames into absolute URLs.
package assets

import (
	"fmt"
	"net/url"
	"strings"
)

// DefaultPathTemplate matches where the published site hosts logo files.
const DefaultPathTemplate = "/logos/%s"

// Resolver is a pure string-template helper: no I/O, no existence checks.
type Resolver struct {
	baseURL      string
	pathTemplate string
}

// New creates a resolver. baseURL may be empty, in which case the caller
// supplies a per-request origin. pathTemplate must contain one %s verb;
// empty falls back to DefaultPathTemplate.
func New(baseURL, pathTemplate string) Resolver {
	if pathTemplate == "" {
		pathTemplate = DefaultPathTemplate
	}
	return Resolver{
		baseURL:      strings.TrimRight(baseURL, "/"),
		pathTemplate: pathTemplate,
	}
}

// Resolve turns a stored filename into an absolute URL against the
// configured base, falling back to origin. An empty name resolves to "".
func (r Resolver) Resolve(origin, name string) string {
	if name == "" {
		return ""
	}
	base := r.baseURL
	if base == "" {
		base = strings.TrimRight(origin, "/")
	}
	return base + fmt.Sprintf(r.pathTemplate, url.PathEscape(name))
}
