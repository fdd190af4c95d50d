package feedback

import "sync"

// Cache is the in-memory mirror of the user's records and the only data
// source the UI reads from. Order is whatever the server returned; the
// client never reorders. No two entries ever share an id.
type Cache struct {
	mu      sync.Mutex
	records []Record
}

func NewCache() *Cache {
	return &Cache{}
}

// ReplaceAll swaps the whole collection atomically, used after a fetch.
// Should the server ever send duplicate ids, the first occurrence wins.
func (c *Cache) ReplaceAll(records []Record) {
	c.mu.Lock()
	defer c.mu.Unlock()

	seen := make(map[string]bool, len(records))
	c.records = c.records[:0]
	for _, rec := range records {
		if seen[rec.ID] {
			continue
		}
		seen[rec.ID] = true
		c.records = append(c.records, rec)
	}
}

// Upsert replaces the record with the same id in place, or appends.
func (c *Cache) Upsert(rec Record) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.records {
		if c.records[i].ID == rec.ID {
			c.records[i] = rec
			return
		}
	}
	c.records = append(c.records, rec)
}

// Remove deletes by id; removing an absent id is a no-op.
func (c *Cache) Remove(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.records {
		if c.records[i].ID == id {
			c.records = append(c.records[:i], c.records[i+1:]...)
			return
		}
	}
}

func (c *Cache) Get(id string) (Record, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.records {
		if c.records[i].ID == id {
			return c.records[i], true
		}
	}
	return Record{}, false
}

// List returns a copy of the current collection in server order.
func (c *Cache) List() []Record {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Record, len(c.records))
	copy(out, c.records)
	return out
}

func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.records)
}
