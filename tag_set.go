package legalspeeds

import (
	"github.com/paulmach/osm"
)

// TagSet Attributes of a single road segment, one value per tag key.
// A TagSet is an immutable per-query snapshot: the matcher never writes
// to it and callers must not mutate it while a query is in flight.
type TagSet map[string]string

// FromOSMTags Builds a TagSet from OSM way tags
func FromOSMTags(tags osm.Tags) TagSet {
	tagSet := make(TagSet, len(tags))
	for _, tag := range tags {
		tagSet[tag.Key] = tag.Value
	}
	return tagSet
}

// Get Returns value for given tag key and whether the tag is present at all
func (tags TagSet) Get(key string) (string, bool) {
	value, ok := tags[key]
	return value, ok
}

// Has Checks if tag key is present
func (tags TagSet) Has(key string) bool {
	_, ok := tags[key]
	return ok
}

// Find Returns value for given tag key (empty string when absent)
func (tags TagSet) Find(key string) string {
	return tags[key]
}
