package domain

// JSXElement is an opening or self-closing JSX tag found in component source.
type JSXElement struct {
	Tag        string         `json:"tag"`
	Attributes []JSXAttribute `json:"attributes"`
	// InsertAt is the byte offset just past the tag name, where new
	// attributes can be spliced in.
	InsertAt int `json:"insert_at"`
	Line     int `json:"line"`
}

// JSXAttribute is one attribute on a JSX element. Literal is true when Value
// holds the attribute's static string value; expression values are kept raw.
type JSXAttribute struct {
	Name    string `json:"name"`
	Value   string `json:"value"`
	Literal bool   `json:"literal"`
	Spread  bool   `json:"spread,omitempty"`
}

// Attr returns the named attribute.
func (e JSXElement) Attr(name string) (JSXAttribute, bool) {
	for _, a := range e.Attributes {
		if !a.Spread && a.Name == name {
			return a, true
		}
	}
	return JSXAttribute{}, false
}

// HasAttr reports whether the element declares the named attribute.
func (e JSXElement) HasAttr(name string) bool {
	_, ok := e.Attr(name)
	return ok
}

// StyleDeclaration is one property/value pair pulled from component source
// or from computed styles.
type StyleDeclaration struct {
	Property string `json:"property"`
	Value    string `json:"value"`
	Source   string `json:"source"`
}

// Style declaration sources.
const (
	StyleSourceInline   = "inline-style"
	StyleSourceTailwind = "tailwind"
	StyleSourceComputed = "computed"
)

// JSXParser lists JSX elements in component source.
type JSXParser interface {
	Elements(code string) ([]JSXElement, error)
}

// StyleExtractor pulls static style declarations out of component source.
// Implementations are lossy: CSS-in-JS, stylesheets and utility classes
// without arbitrary values are not visible to them.
type StyleExtractor interface {
	ExtractStyles(code string) ([]StyleDeclaration, error)
}
