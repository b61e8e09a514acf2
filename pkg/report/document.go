// Package report parses, aggregates, and augments HTML coverage reports.
//
// A report is expected to contain a single <nav> element, a per-file
// coverage table whose data rows carry a path, a percentage, and a
// "covered / total" fraction, and optionally summary widgets (elements
// with class "summary" exposing "label" and "value" descendants).
package report

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/net/html"
)

var (
	// ErrNoNav indicates the report has no <nav> element to anchor the
	// command-log insertion.
	ErrNoNav = errors.New("report has no navigation element")

	// ErrNoTable indicates the report has no per-file coverage table.
	ErrNoTable = errors.New("report has no coverage table")
)

// Document wraps a parsed coverage report.
type Document struct {
	root *html.Node
}

// Load parses an HTML coverage report from r.
func Load(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse report: %w", err)
	}
	return &Document{root: root}, nil
}

// LoadFile reads and parses the report at path.
func LoadFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open report: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Root returns the document root node.
func (d *Document) Root() *html.Node {
	return d.root
}

// Nav returns the document's first <nav> element.
func (d *Document) Nav() (*html.Node, error) {
	if n := findElement(d.root, "nav"); n != nil {
		return n, nil
	}
	return nil, ErrNoNav
}

// CoverageTable returns the document's first <table> element.
func (d *Document) CoverageTable() (*html.Node, error) {
	if n := findElement(d.root, "table"); n != nil {
		return n, nil
	}
	return nil, ErrNoTable
}

// Save serializes the document in indented form to path, overwriting
// any existing file.
func (d *Document) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer f.Close()

	if err := Render(f, d.root); err != nil {
		return fmt.Errorf("render output: %w", err)
	}
	return nil
}

// findElement returns the first element with the given tag in document
// order, or nil.
func findElement(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, tag); found != nil {
			return found
		}
	}
	return nil
}

// nodeText collects the concatenated text content beneath n.
func nodeText(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.TextNode {
			sb.WriteString(node.Data)
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

// getAttr returns the value of the named attribute, or "".
func getAttr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// hasClass reports whether n carries the given class token.
func hasClass(n *html.Node, class string) bool {
	for _, token := range strings.Fields(getAttr(n, "class")) {
		if token == class {
			return true
		}
	}
	return false
}

// findByClass returns the first descendant of n (including n itself)
// carrying the given class token, or nil.
func findByClass(n *html.Node, class string) *html.Node {
	if n.Type == html.ElementNode && hasClass(n, class) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findByClass(c, class); found != nil {
			return found
		}
	}
	return nil
}
