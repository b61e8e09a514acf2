package report

import (
	"bufio"
	"fmt"
	"html"
	"io"
	"strings"

	xhtml "golang.org/x/net/html"
)

// Render serializes a node tree as indented HTML. Output is fully
// deterministic for a given tree: identical inputs serialize to
// identical bytes. Content of <pre> and <textarea> is written escaped
// but otherwise untouched, and <script>/<style> bodies are written raw,
// so re-indentation never alters what those elements display.
func Render(w io.Writer, n *xhtml.Node) error {
	bw := bufio.NewWriter(w)
	renderBlock(bw, n, 0)
	return bw.Flush()
}

const indentUnit = "  "

func indent(w *bufio.Writer, depth int) {
	for i := 0; i < depth; i++ {
		w.WriteString(indentUnit)
	}
}

var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"param": true, "source": true, "track": true, "wbr": true,
}

var rawTextElements = map[string]bool{
	"script": true, "style": true,
}

var verbatimElements = map[string]bool{
	"pre": true, "textarea": true,
}

func renderBlock(w *bufio.Writer, n *xhtml.Node, depth int) {
	switch n.Type {
	case xhtml.DocumentNode:
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			renderBlock(w, c, depth)
		}
	case xhtml.DoctypeNode:
		fmt.Fprintf(w, "<!DOCTYPE %s>\n", n.Data)
	case xhtml.CommentNode:
		indent(w, depth)
		fmt.Fprintf(w, "<!--%s-->\n", n.Data)
	case xhtml.TextNode:
		if s := collapseSpace(n.Data); s != "" && s != " " {
			indent(w, depth)
			w.WriteString(html.EscapeString(strings.TrimSpace(s)))
			w.WriteString("\n")
		}
	case xhtml.ElementNode:
		renderElement(w, n, depth)
	}
}

func renderElement(w *bufio.Writer, n *xhtml.Node, depth int) {
	indent(w, depth)
	openTag(w, n)

	switch {
	case voidElements[n.Data]:
		w.WriteString("\n")
	case rawTextElements[n.Data]:
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == xhtml.TextNode {
				w.WriteString(c.Data)
			}
		}
		closeTag(w, n)
		w.WriteString("\n")
	case verbatimElements[n.Data]:
		renderInlineChildren(w, n, false)
		closeTag(w, n)
		w.WriteString("\n")
	case hasBlockContent(n):
		w.WriteString("\n")
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			renderBlock(w, c, depth+1)
		}
		indent(w, depth)
		closeTag(w, n)
		w.WriteString("\n")
	default:
		renderInlineChildren(w, n, true)
		closeTag(w, n)
		w.WriteString("\n")
	}
}

// renderInlineChildren writes the children of n on the current line.
// With collapse set, runs of whitespace in text shrink to one space;
// verbatim content keeps every byte.
func renderInlineChildren(w *bufio.Writer, n *xhtml.Node, collapse bool) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		renderInline(w, c, collapse)
	}
}

func renderInline(w *bufio.Writer, n *xhtml.Node, collapse bool) {
	switch n.Type {
	case xhtml.TextNode:
		s := n.Data
		if collapse {
			s = collapseSpace(s)
		}
		w.WriteString(html.EscapeString(s))
	case xhtml.CommentNode:
		fmt.Fprintf(w, "<!--%s-->", n.Data)
	case xhtml.ElementNode:
		openTag(w, n)
		if voidElements[n.Data] {
			return
		}
		if rawTextElements[n.Data] {
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				if c.Type == xhtml.TextNode {
					w.WriteString(c.Data)
				}
			}
		} else {
			renderInlineChildren(w, n, collapse && !verbatimElements[n.Data])
		}
		closeTag(w, n)
	}
}

// hasBlockContent reports whether n holds only element or comment
// children (plus ignorable whitespace), which lets its children be laid
// out one per line.
func hasBlockContent(n *xhtml.Node) bool {
	hasChild := false
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case xhtml.ElementNode, xhtml.CommentNode:
			hasChild = true
		case xhtml.TextNode:
			if strings.TrimSpace(c.Data) != "" {
				return false
			}
		}
	}
	return hasChild
}

func openTag(w *bufio.Writer, n *xhtml.Node) {
	w.WriteString("<")
	w.WriteString(n.Data)
	for _, a := range n.Attr {
		fmt.Fprintf(w, ` %s="%s"`, a.Key, html.EscapeString(a.Val))
	}
	w.WriteString(">")
}

func closeTag(w *bufio.Writer, n *xhtml.Node) {
	w.WriteString("</")
	w.WriteString(n.Data)
	w.WriteString(">")
}

// collapseSpace shrinks every run of whitespace to a single space.
func collapseSpace(s string) string {
	var sb strings.Builder
	inSpace := false
	for _, r := range s {
		switch r {
		case ' ', '\t', '\n', '\r', '\f':
			if !inSpace {
				sb.WriteByte(' ')
				inSpace = true
			}
		default:
			sb.WriteRune(r)
			inSpace = false
		}
	}
	return sb.String()
}
