package catalog

import (
	"strconv"
	"strings"
	"time"
)

// Catalog is an immutable snapshot of the loaded document.
type Catalog struct {
	items    []Item
	source   string
	loadedAt time.Time
}

// Stats summarizes a catalog for the list page header.
type Stats struct {
	Items      int
	Categories int
	Downloads  int
}

// New builds a snapshot from items. The slice is copied so later changes by the caller
// do not leak into the snapshot.
func New(items []Item, source string) *Catalog {
	cp := make([]Item, len(items))
	for i, it := range items {
		cp[i] = cloneItem(it)
	}
	return &Catalog{items: cp, source: source, loadedAt: time.Now().UTC()}
}

// Items returns the items in document order. The returned slice is a copy.
func (c *Catalog) Items() []Item {
	if c == nil {
		return []Item{}
	}
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

// Len returns the number of items.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.items)
}

// Source returns where the snapshot was loaded from.
func (c *Catalog) Source() string {
	if c == nil {
		return ""
	}
	return c.source
}

// LoadedAt returns when the snapshot was built.
func (c *Catalog) LoadedAt() time.Time {
	if c == nil {
		return time.Time{}
	}
	return c.loadedAt
}

// Find returns the item with the given id.
func (c *Catalog) Find(id int) (Item, error) {
	if c != nil {
		for _, it := range c.items {
			if it.ID == id {
				return cloneItem(it), nil
			}
		}
	}
	return Item{}, &NotFoundError{Raw: strconv.Itoa(id), Reason: ReasonUnknownID}
}

// Lookup resolves a raw query-string id. Missing, non-numeric, and non-positive ids
// report ReasonInvalidID; unmatched ids report ReasonUnknownID.
func (c *Catalog) Lookup(raw string) (Item, error) {
	id, err := ParseID(raw)
	if err != nil {
		return Item{}, err
	}
	it, err := c.Find(id)
	if err != nil {
		return Item{}, &NotFoundError{Raw: raw, Reason: ReasonUnknownID}
	}
	return it, nil
}

// ParseID validates a raw id.
func ParseID(raw string) (int, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 0, &NotFoundError{Raw: raw, Reason: ReasonInvalidID}
	}
	id, err := strconv.Atoi(trimmed)
	if err != nil || id <= 0 {
		return 0, &NotFoundError{Raw: raw, Reason: ReasonInvalidID}
	}
	return id, nil
}

// Stats counts items, distinct category tags, and download links.
func (c *Catalog) Stats() Stats {
	if c == nil {
		return Stats{}
	}
	seen := map[string]struct{}{}
	st := Stats{Items: len(c.items)}
	for _, it := range c.items {
		for _, tag := range it.Categories {
			seen[tag] = struct{}{}
		}
		st.Downloads += len(it.DownloadLinks)
	}
	st.Categories = len(seen)
	return st
}
