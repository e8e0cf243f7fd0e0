package fixturecheck

import (
	"context"
	"fmt"
)

// TestBody exercises the feature under test against one fixture file. A nil
// return is a pass, a returned error is a failure whose message becomes the
// diagnostic. Wrap the error with Abort, or panic, to report an error
// instead of a failure.
type TestBody func(ctx context.Context, path string) error

// Entry pairs a fixture identifier with the body that tests it.
type Entry struct {
	ID   string
	Body TestBody
}

// NewEntry declares a single catalog entry.
func NewEntry(id string, body TestBody) Entry {
	return Entry{ID: id, Body: body}
}

// EntriesFor declares one entry per identifier, all sharing body.
//
// Example:
//
//	cat := fixturecheck.MustCatalog(fixturecheck.EntriesFor(doTest,
//	    "emptyImportDirective",
//	    "manyImports",
//	)...)
func EntriesFor(body TestBody, ids ...string) []Entry {
	entries := make([]Entry, len(ids))
	for i, id := range ids {
		entries[i] = Entry{ID: id, Body: body}
	}
	return entries
}

// Catalog is the immutable, ordered set of declared entries.
type Catalog struct {
	entries []Entry
	byID    map[string]int
}

// NewCatalog builds a catalog preserving declaration order. Empty or
// duplicate identifiers and nil bodies are rejected.
func NewCatalog(entries ...Entry) (*Catalog, error) {
	c := &Catalog{
		entries: make([]Entry, 0, len(entries)),
		byID:    make(map[string]int, len(entries)),
	}
	for _, e := range entries {
		if e.ID == "" {
			return nil, &CatalogError{Reason: "empty identifier"}
		}
		if e.Body == nil {
			return nil, &CatalogError{ID: e.ID, Reason: "nil test body"}
		}
		if _, dup := c.byID[e.ID]; dup {
			return nil, &CatalogError{ID: e.ID, Reason: "declared more than once"}
		}
		c.byID[e.ID] = len(c.entries)
		c.entries = append(c.entries, e)
	}
	return c, nil
}

// MustCatalog is like NewCatalog but panics on an invalid declaration. It
// is meant for package-level suite declarations.
func MustCatalog(entries ...Entry) *Catalog {
	c, err := NewCatalog(entries...)
	if err != nil {
		panic(fmt.Sprintf("fixturecheck: %v", err))
	}
	return c
}

// DeclaredCatalog builds a catalog from bare identifiers, binding every one
// of them to body.
func DeclaredCatalog(body TestBody, ids ...string) (*Catalog, error) {
	return NewCatalog(EntriesFor(body, ids...)...)
}

// Entries returns a copy of the entries in declaration order.
func (c *Catalog) Entries() []Entry {
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// IDs returns the declared identifiers in declaration order.
func (c *Catalog) IDs() []string {
	ids := make([]string, len(c.entries))
	for i, e := range c.entries {
		ids[i] = e.ID
	}
	return ids
}

// Lookup returns the body declared for id.
func (c *Catalog) Lookup(id string) (TestBody, bool) {
	i, ok := c.byID[id]
	if !ok {
		return nil, false
	}
	return c.entries[i].Body, true
}

// Len returns the number of entries.
func (c *Catalog) Len() int { return len(c.entries) }
