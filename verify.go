package fixturecheck

import "sort"

// Verify checks that the fixtures under the index root and the catalog are
// in one-to-one correspondence. Index failures are returned unchanged; a
// disagreement is returned as a *CompletenessError naming every offender.
func Verify(ix *Index, cat *Catalog) error {
	discovered, err := ix.List()
	if err != nil {
		return err
	}
	return Compare(discovered, cat.IDs())
}

// Compare diffs discovered fixture identifiers against declared ones.
func Compare(discovered, declared []string) error {
	found := toSet(discovered)
	want := toSet(declared)

	orphans := difference(found, want)
	missing := difference(want, found)
	if len(orphans) == 0 && len(missing) == 0 {
		return nil
	}
	return &CompletenessError{Orphans: orphans, Missing: missing}
}

func toSet(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

// difference returns the sorted members of a that are not in b.
func difference(a, b map[string]struct{}) []string {
	var out []string
	for id := range a {
		if _, ok := b[id]; !ok {
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out
}
