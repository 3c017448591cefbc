// Package normalize converts raw feed entries into cacheable items.
//
// The HTML body is walked once: anchors and images are replaced with
// positional placeholders ("[link 1: read more]", "[image 2: logo]") and
// collected into the item's link table; everything else is stripped down
// to whitespace-collapsed plain text.
package normalize

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"

	"github.com/tesso57/rsstash/internal/domain/news"
)

// Item normalizes one raw entry. It fails only when the entry has no link,
// since a linkless item cannot be deduplicated or cached.
func Item(e news.Entry) (news.Item, error) {
	link := strings.TrimSpace(e.Link)
	if link == "" {
		return news.Item{}, news.ErrMissingLink
	}

	display := strings.TrimSpace(e.Published)
	published, _ := news.ParseTime(display)

	table := news.NewLinkTable()
	body, err := flatten(e.Content, table)
	if err != nil {
		return news.Item{}, fmt.Errorf("normalizing body: %w", err)
	}

	return news.Item{
		FeedTitle:        strings.TrimSpace(e.FeedTitle),
		Source:           strings.TrimSpace(e.Source),
		Title:            collapse(e.Title),
		Link:             link,
		Published:        published,
		PublishedDisplay: display,
		Body:             body,
		Links:            table,
	}, nil
}

// flatten renders the markup tree to plain text, registering referenced
// resources in the table as it goes.
func flatten(body string, table *news.LinkTable) (string, error) {
	doc, err := html.Parse(strings.NewReader(body))
	if err != nil {
		return "", err
	}

	var b strings.Builder
	walk(doc, table, &b)
	return collapse(b.String()), nil
}

func walk(n *html.Node, table *news.LinkTable, b *strings.Builder) {
	switch n.Type {
	case html.TextNode:
		b.WriteString(n.Data)
		return
	case html.ElementNode:
		switch n.Data {
		case "script", "style", "head":
			return
		case "a":
			if href := attr(n, "href"); href != "" {
				writeAnchor(n, href, table, b)
				return
			}
		case "img":
			if src := attr(n, "src"); src != "" {
				pos := table.Register(news.ImageRef, src, attr(n, "alt"))
				writePlaceholder(b, fmt.Sprintf("image %d", pos), attr(n, "alt"))
				return
			}
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, table, b)
	}
}

// writeAnchor handles both bare anchors and the anchor-wrapping-an-image
// construct. The anchor opens first in document order, so its position is
// assigned before the wrapped image's.
func writeAnchor(n *html.Node, href string, table *news.LinkTable, b *strings.Builder) {
	text := collapse(innerText(n))
	linkPos := table.Register(news.LinkRef, href, text)

	if img := soleImage(n); img != nil {
		imgPos := table.Register(news.ImageRef, attr(img, "src"), attr(img, "alt"))
		writePlaceholder(b, fmt.Sprintf("image %d, link %d", imgPos, linkPos), attr(img, "alt"))
		return
	}
	writePlaceholder(b, fmt.Sprintf("link %d", linkPos), text)

	// Images mixed with anchor text still get registered and placed,
	// just not merged into the link's placeholder.
	for _, img := range nestedImages(n) {
		pos := table.Register(news.ImageRef, attr(img, "src"), attr(img, "alt"))
		writePlaceholder(b, fmt.Sprintf("image %d", pos), attr(img, "alt"))
	}
}

// soleImage returns the image an anchor wraps when the anchor contains
// exactly one <img src> and no visible text, descending through wrapper
// elements such as <span> or <figure>.
func soleImage(a *html.Node) *html.Node {
	var only *html.Node
	for c := a.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.TextNode:
			if strings.TrimSpace(c.Data) != "" {
				return nil
			}
		case html.ElementNode:
			if only != nil {
				return nil
			}
			only = c
		}
	}
	if only == nil {
		return nil
	}
	if only.Data == "img" {
		if attr(only, "src") == "" {
			return nil
		}
		return only
	}
	return soleImage(only)
}

func nestedImages(n *html.Node) []*html.Node {
	var imgs []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.Data == "img" && attr(c, "src") != "" {
			imgs = append(imgs, c)
			continue
		}
		imgs = append(imgs, nestedImages(c)...)
	}
	return imgs
}

func writePlaceholder(b *strings.Builder, ref, label string) {
	if label != "" {
		fmt.Fprintf(b, " [%s: %s] ", ref, label)
		return
	}
	fmt.Fprintf(b, " [%s] ", ref)
}

func innerText(n *html.Node) string {
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
			continue
		}
		b.WriteString(innerText(c))
	}
	return b.String()
}

func attr(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Key == name {
			return strings.TrimSpace(a.Val)
		}
	}
	return ""
}

// collapse folds runs of whitespace into single spaces.
func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
