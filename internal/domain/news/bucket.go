package news

import "time"

// UndatedBucket is the partition key for items without a resolvable
// publish time.
const UndatedBucket = "undated"

const bucketLayout = "20060102"

// BucketOf returns the calendar-day partition key for a publish time.
func BucketOf(t time.Time) string {
	if t.IsZero() {
		return UndatedBucket
	}
	return t.Format(bucketLayout)
}

// ValidBucket reports whether s names a partition the cache can hold.
func ValidBucket(s string) bool {
	if s == UndatedBucket {
		return true
	}
	_, err := time.Parse(bucketLayout, s)
	return err == nil
}
