// Package news defines the core models for normalized feed items.
package news

import (
	"errors"
	"time"
)

// ErrMissingLink is returned when a raw entry carries no usable link.
// An item without a link has no identity and cannot be cached.
var ErrMissingLink = errors.New("entry has no link")

// ErrNotFound is returned when a cache query matches nothing.
var ErrNotFound = errors.New("no cached news")

// LinkKind classifies a resource referenced from an item body.
type LinkKind string

// The two resource kinds a body can reference.
const (
	LinkRef  LinkKind = "link"
	ImageRef LinkKind = "image"
)

// Entry is one raw feed entry as extracted by the fetch layer.
// Published and Content are kept verbatim; normalization happens later.
type Entry struct {
	FeedTitle string
	Source    string
	Title     string
	Link      string
	Published string
	Content   string
}

// Item is a normalized, cacheable feed item.
// Body is plain text with positional placeholders resolving into Links.
type Item struct {
	FeedTitle        string
	Source           string
	Title            string
	Link             string
	Published        time.Time
	PublishedDisplay string
	Body             string
	Links            *LinkTable
}

// Undated reports whether the item's publish time could not be resolved.
func (i Item) Undated() bool {
	return i.Published.IsZero()
}

// FeedGroup is one source feed's slice of a cache query result.
type FeedGroup struct {
	Title  string
	Source string
	Items  []Item
}
