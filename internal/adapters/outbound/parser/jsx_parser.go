package parser

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/typescript/tsx"

	"github.com/openkraft/uikraft/internal/domain"
)

// JSXParser implements domain.JSXParser and domain.StyleExtractor using the
// tree-sitter TSX grammar. Plain JSX parses with the same grammar.
type JSXParser struct{}

func New() *JSXParser {
	return &JSXParser{}
}

func (p *JSXParser) parse(code string) (*sitter.Node, []byte, error) {
	src := []byte(code)
	ts := sitter.NewParser()
	ts.SetLanguage(tsx.GetLanguage())
	tree, err := ts.ParseCtx(context.Background(), nil, src)
	if err != nil {
		return nil, nil, fmt.Errorf("parsing component source: %w", err)
	}
	return tree.RootNode(), src, nil
}

// Elements returns every opening and self-closing JSX element in source order.
// Fragments (<>...</>) have no tag and are omitted.
func (p *JSXParser) Elements(code string) ([]domain.JSXElement, error) {
	root, src, err := p.parse(code)
	if err != nil {
		return nil, err
	}

	var elements []domain.JSXElement
	walk(root, func(n *sitter.Node) {
		if !isTag(n) {
			return
		}
		if el, ok := element(n, src); ok {
			elements = append(elements, el)
		}
	})
	return elements, nil
}

// ExtractStyles reads inline style={{...}} objects and bracketed Tailwind
// utilities (bg-[..], text-[..], border-[..]) from className attributes.
// Property names are returned as written; callers normalise them.
func (p *JSXParser) ExtractStyles(code string) ([]domain.StyleDeclaration, error) {
	root, src, err := p.parse(code)
	if err != nil {
		return nil, err
	}

	var decls []domain.StyleDeclaration
	walk(root, func(n *sitter.Node) {
		if n.Type() != "jsx_attribute" {
			return
		}
		name, value := attributeParts(n, src)
		switch name {
		case "style":
			decls = append(decls, inlineStyles(value, src)...)
		case "className", "class":
			if classes, ok := staticString(value, src); ok {
				decls = append(decls, tailwindStyles(classes)...)
			}
		}
	})
	return decls, nil
}

func walk(n *sitter.Node, fn func(*sitter.Node)) {
	if n == nil {
		return
	}
	fn(n)
	for i := 0; i < int(n.ChildCount()); i++ {
		walk(n.Child(i), fn)
	}
}

func isTag(n *sitter.Node) bool {
	t := n.Type()
	return t == "jsx_opening_element" || t == "jsx_self_closing_element"
}

func element(n *sitter.Node, src []byte) (domain.JSXElement, bool) {
	name := n.ChildByFieldName("name")
	if name == nil {
		return domain.JSXElement{}, false
	}

	el := domain.JSXElement{
		Tag:      name.Content(src),
		InsertAt: int(name.EndByte()),
		Line:     int(name.StartPoint().Row) + 1,
	}

	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		switch child.Type() {
		case "jsx_attribute":
			el.Attributes = append(el.Attributes, attribute(child, src))
		case "jsx_expression":
			// {...props}
			el.Attributes = append(el.Attributes, domain.JSXAttribute{
				Value:  child.Content(src),
				Spread: true,
			})
		}
	}
	return el, true
}

func attribute(n *sitter.Node, src []byte) domain.JSXAttribute {
	name, value := attributeParts(n, src)
	attr := domain.JSXAttribute{Name: name}
	if value == nil {
		// boolean shorthand: <input disabled />
		attr.Literal = true
		return attr
	}
	if s, ok := staticString(value, src); ok {
		attr.Value = s
		attr.Literal = true
		return attr
	}
	attr.Value = value.Content(src)
	return attr
}

func attributeParts(n *sitter.Node, src []byte) (string, *sitter.Node) {
	if n.NamedChildCount() == 0 {
		return "", nil
	}
	name := n.NamedChild(0).Content(src)
	if n.NamedChildCount() < 2 {
		return name, nil
	}
	return name, n.NamedChild(1)
}

// staticString resolves "x", {"x"}, {'x'} and {`x`} (without substitutions).
func staticString(n *sitter.Node, src []byte) (string, bool) {
	if n == nil {
		return "", false
	}
	switch n.Type() {
	case "string":
		return unquote(n.Content(src)), true
	case "template_string":
		for i := 0; i < int(n.NamedChildCount()); i++ {
			if n.NamedChild(i).Type() == "template_substitution" {
				return "", false
			}
		}
		return unquote(n.Content(src)), true
	case "jsx_expression":
		if n.NamedChildCount() != 1 {
			return "", false
		}
		return staticString(n.NamedChild(0), src)
	}
	return "", false
}

func unquote(s string) string {
	if len(s) >= 2 {
		return s[1 : len(s)-1]
	}
	return s
}

func inlineStyles(value *sitter.Node, src []byte) []domain.StyleDeclaration {
	if value == nil || value.Type() != "jsx_expression" || value.NamedChildCount() != 1 {
		return nil
	}
	obj := value.NamedChild(0)
	if obj.Type() != "object" {
		return nil
	}

	var decls []domain.StyleDeclaration
	for i := 0; i < int(obj.NamedChildCount()); i++ {
		pair := obj.NamedChild(i)
		if pair.Type() != "pair" {
			continue
		}
		key := pair.ChildByFieldName("key")
		val := pair.ChildByFieldName("value")
		if key == nil || val == nil {
			continue
		}

		prop := key.Content(src)
		if key.Type() == "string" {
			prop = unquote(prop)
		}

		var v string
		switch val.Type() {
		case "number":
			v = val.Content(src)
		default:
			s, ok := staticString(val, src)
			if !ok {
				continue // dynamic values cannot be checked statically
			}
			v = s
		}
		decls = append(decls, domain.StyleDeclaration{
			Property: prop,
			Value:    v,
			Source:   domain.StyleSourceInline,
		})
	}
	return decls
}

var arbitraryClass = regexp.MustCompile(`^(bg|text|border)-\[(.+)\]$`)

func tailwindStyles(classes string) []domain.StyleDeclaration {
	var decls []domain.StyleDeclaration
	for _, class := range strings.Fields(classes) {
		// hover:bg-[#fff] -> bg-[#fff]
		if i := strings.LastIndexByte(class, ':'); i >= 0 && !strings.Contains(class[:i], "[") {
			class = class[i+1:]
		}
		m := arbitraryClass.FindStringSubmatch(class)
		if m == nil {
			continue
		}
		value := strings.ReplaceAll(m[2], "_", " ")
		prop, ok := tailwindProperty(m[1], value)
		if !ok {
			continue
		}
		decls = append(decls, domain.StyleDeclaration{
			Property: prop,
			Value:    value,
			Source:   domain.StyleSourceTailwind,
		})
	}
	return decls
}

var lengthValue = regexp.MustCompile(`^-?[0-9.]+(px|rem|em|%)$`)

func tailwindProperty(utility, value string) (string, bool) {
	isLength := lengthValue.MatchString(value)
	switch utility {
	case "bg":
		return "background-color", !isLength
	case "text":
		if isLength {
			return "font-size", true
		}
		return "color", true
	case "border":
		if isLength {
			return "", false // border width is not a token category
		}
		return "border-color", true
	}
	return "", false
}
