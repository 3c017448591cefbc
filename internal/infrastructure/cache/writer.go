package cache

import (
	"strconv"

	"github.com/tesso57/rsstash/internal/domain/news"
)

// Writer upserts normalized items into the store.
type Writer struct {
	store *Store
}

// NewWriter returns a writer over the given store.
func NewWriter(store *Store) *Writer {
	return &Writer{store: store}
}

// Put caches an item under its publish-day bucket. It reports true when
// the item was inserted and false when an item with the same source and
// link was already cached for that day. The duplicate case does not
// rewrite the file, so repeated delivery of an unchanged feed is a no-op.
func (w *Writer) Put(item news.Item) (bool, error) {
	bucket := news.BucketOf(item.Published)
	doc, err := w.store.load(bucket)
	if err != nil {
		return false, err
	}

	slotKey := ""
	for _, idx := range sortedIndices(doc) {
		key := strconv.Itoa(idx)
		if doc[key].Source == item.Source {
			slotKey = key
			break
		}
	}
	if slotKey == "" {
		slotKey = strconv.Itoa(nextIndex(doc))
		doc[slotKey] = feedSlotDoc{
			Title:  item.FeedTitle,
			Source: item.Source,
			Items:  map[string]itemDoc{},
		}
	}

	slot := doc[slotKey]
	for _, idx := range sortedIndices(slot.Items) {
		if slot.Items[strconv.Itoa(idx)].URL == item.Link {
			return false, nil
		}
	}

	if slot.Items == nil {
		slot.Items = map[string]itemDoc{}
	}
	slot.Items[strconv.Itoa(nextIndex(slot.Items))] = encodeItem(item)
	doc[slotKey] = slot

	if err := w.store.save(bucket, doc); err != nil {
		return false, err
	}
	return true, nil
}
