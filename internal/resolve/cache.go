package resolve

import "sync"

type fingerprint struct {
	title     string
	author    string
	publisher string
	year      string
}

// Cache memoizes resolution outcomes per record fingerprint for the lifetime
// of one batch run, including the "not found" outcome (stored as ""). It is
// never persisted. Keys are built from normalized records; Lookup and Store
// normalize on their own as well.
type Cache struct {
	mu      sync.Mutex
	entries map[fingerprint]string
}

// NewCache returns an empty per-run cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[fingerprint]string)}
}

// Lookup returns the cached outcome for the record and whether one exists.
// A hit with "" means a previous cascade already concluded "not found".
func (c *Cache) Lookup(rec PartialRecord) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	isbn, ok := c.entries[keyFor(rec)]
	return isbn, ok
}

// Store records the outcome for the record's fingerprint.
func (c *Cache) Store(rec PartialRecord, isbn string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[keyFor(rec)] = isbn
}

// Len reports how many distinct fingerprints have been resolved.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func keyFor(rec PartialRecord) fingerprint {
	rec = rec.Normalized()
	return fingerprint{
		title:     rec.Title,
		author:    rec.Author,
		publisher: rec.Publisher,
		year:      rec.Year,
	}
}
