package cache

import (
	"fmt"
	"sort"
	"strings"

	"github.com/tesso57/rsstash/internal/domain/news"
)

// fileDoc is one day's file: feed slots keyed by stringified index.
type fileDoc map[string]feedSlotDoc

type feedSlotDoc struct {
	Title  string             `json:"title"`
	Source string             `json:"source"`
	Items  map[string]itemDoc `json:"items"`
}

type itemDoc struct {
	Title       string         `json:"title"`
	URL         string         `json:"url"`
	Description string         `json:"description"`
	Date        string         `json:"date"`
	Links       map[string]int `json:"links"`
}

// displayText is the serialized key for one link-table entry,
// e.g. "https://example.com/i.png (image)".
func displayText(e news.LinkEntry) string {
	return fmt.Sprintf("%s (%s)", e.URL, e.Kind)
}

func encodeItem(item news.Item) itemDoc {
	doc := itemDoc{
		Title:       item.Title,
		URL:         item.Link,
		Description: item.Body,
		Date:        item.PublishedDisplay,
	}
	if item.Links.Len() > 0 {
		doc.Links = make(map[string]int, item.Links.Len())
		for pos, entry := range item.Links.Entries() {
			doc.Links[displayText(entry)] = pos + 1
		}
	}
	return doc
}

func decodeItem(doc itemDoc, slot feedSlotDoc) news.Item {
	published, _ := news.ParseTime(doc.Date)

	table := news.NewLinkTable()
	for _, text := range orderedLinkTexts(doc.Links) {
		kind, url := splitDisplayText(text)
		table.Register(kind, url, "")
	}

	return news.Item{
		FeedTitle:        slot.Title,
		Source:           slot.Source,
		Title:            doc.Title,
		Link:             doc.URL,
		Published:        published,
		PublishedDisplay: doc.Date,
		Body:             doc.Description,
		Links:            table,
	}
}

// orderedLinkTexts inverts the serialized links map into position order.
// Gaps between positions are tolerated; only the order matters on read.
func orderedLinkTexts(links map[string]int) []string {
	byPos := make(map[int]string, len(links))
	for text, pos := range links {
		byPos[pos] = text
	}
	positions := make([]int, 0, len(byPos))
	for pos := range byPos {
		positions = append(positions, pos)
	}
	sort.Ints(positions)

	out := make([]string, 0, len(positions))
	for _, pos := range positions {
		out = append(out, byPos[pos])
	}
	return out
}

// splitDisplayText is the inverse of displayText. Unmarked keys default
// to the link kind.
func splitDisplayText(text string) (news.LinkKind, string) {
	if url, ok := strings.CutSuffix(text, " (image)"); ok {
		return news.ImageRef, url
	}
	if url, ok := strings.CutSuffix(text, " (link)"); ok {
		return news.LinkRef, url
	}
	return news.LinkRef, text
}
