package cache

import (
	"strconv"

	"github.com/tesso57/rsstash/internal/domain/news"
)

// Reader answers bounded queries against the store.
type Reader struct {
	store *Store
}

// NewReader returns a reader over the given store.
func NewReader(store *Store) *Reader {
	return &Reader{store: store}
}

// Get returns the items cached under bucket, grouped per source feed in
// slot order. An empty source matches every feed; a negative limit
// means unbounded. When nothing matches — the day has no file, the file
// was corrupt, or the source filter excluded everything — Get returns
// news.ErrNotFound.
func (r *Reader) Get(bucket, source string, limit int) ([]news.FeedGroup, error) {
	doc, err := r.store.load(bucket)
	if err != nil {
		return nil, err
	}

	var groups []news.FeedGroup
	emitted := 0
	for _, slotIdx := range sortedIndices(doc) {
		slot := doc[strconv.Itoa(slotIdx)]
		if source != "" && slot.Source != source {
			continue
		}

		group := news.FeedGroup{Title: slot.Title, Source: slot.Source}
		for _, itemIdx := range sortedIndices(slot.Items) {
			if limit >= 0 && emitted >= limit {
				break
			}
			group.Items = append(group.Items, decodeItem(slot.Items[strconv.Itoa(itemIdx)], slot))
			emitted++
		}
		if len(group.Items) > 0 {
			groups = append(groups, group)
		}
		if limit >= 0 && emitted >= limit {
			break
		}
	}

	if emitted == 0 {
		return nil, news.ErrNotFound
	}
	return groups, nil
}
