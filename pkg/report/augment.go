package report

import (
	"golang.org/x/net/html"
)

// Augment mutates the document per the post-processing contract: a
// preformatted command-log block is inserted immediately after the nav
// element, and a per-group summary table immediately after the per-file
// coverage table. Returns ErrNoNav or ErrNoTable when the required
// anchors are missing; the document is left untouched in that case.
func (d *Document) Augment(commands string, groups []Aggregate) error {
	nav, err := d.Nav()
	if err != nil {
		return err
	}
	table, err := d.CoverageTable()
	if err != nil {
		return err
	}

	insertAfter(nav, commandBlock(commands))
	insertAfter(table, groupTable(groups))
	return nil
}

// commandBlock builds the <pre> holding the verbatim command log.
func commandBlock(commands string) *html.Node {
	pre := elem("pre", attr("class", "command-log"))
	pre.AppendChild(text(commands))
	return pre
}

// groupTable builds the per-group summary table, one row per group in
// first-seen order.
func groupTable(groups []Aggregate) *html.Node {
	table := elem("table", attr("class", "group-summary"))

	thead := elem("thead")
	header := elem("tr")
	for _, title := range []string{"Crate", "Coverage", "Lines"} {
		th := elem("th")
		th.AppendChild(text(title))
		header.AppendChild(th)
	}
	thead.AppendChild(header)
	table.AppendChild(thead)

	tbody := elem("tbody")
	for _, g := range groups {
		class := string(g.Severity())

		tr := elem("tr")
		name := elem("th")
		name.AppendChild(text(g.Name))
		tr.AppendChild(name)

		pct := elem("td", attr("class", class))
		pct.AppendChild(text(g.PercentDisplay()))
		tr.AppendChild(pct)

		lines := elem("td", attr("class", class))
		lines.AppendChild(text(g.FractionDisplay()))
		tr.AppendChild(lines)

		tbody.AppendChild(tr)
	}
	table.AppendChild(tbody)

	return table
}

// insertAfter places n as the next sibling of ref.
func insertAfter(ref, n *html.Node) {
	ref.Parent.InsertBefore(n, ref.NextSibling)
}

func elem(tag string, attrs ...html.Attribute) *html.Node {
	return &html.Node{Type: html.ElementNode, Data: tag, Attr: attrs}
}

func attr(key, val string) html.Attribute {
	return html.Attribute{Key: key, Val: val}
}

func text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}
