package cache

import "testing"

func TestPutUpdatesExistingEntryWithoutGrowing(t *testing.T) {
	c := NewLRUCache[string, string](2)

	c.Put("alpha", "one")
	c.Put("beta", "two")
	c.Put("alpha", "three")

	if c.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", c.Len())
	}
	if v, ok := c.Get("alpha"); !ok || v != "three" {
		t.Fatalf("expected updated value, got %q (hit=%v)", v, ok)
	}
}

func TestEvictsLeastRecentlyUsed(t *testing.T) {
	c := NewLRUCache[string, int](2)

	c.Put("a", 1)
	c.Put("b", 2)
	if _, ok := c.Get("a"); !ok {
		t.Fatalf("expected a to be cached")
	}
	c.Put("c", 3)

	if _, ok := c.Get("b"); ok {
		t.Fatalf("expected b to be evicted")
	}
	if _, ok := c.Get("a"); !ok {
		t.Fatalf("expected a to survive eviction")
	}
	if _, ok := c.Get("c"); !ok {
		t.Fatalf("expected c to be cached")
	}
}

func TestRemoveFunc(t *testing.T) {
	c := NewLRUCache[string, int](4)
	c.Put("notes/a.md", 1)
	c.Put("notes/b.md", 2)
	c.Put("other/c.md", 3)

	removed := c.RemoveFunc(func(k string) bool { return k[:6] == "notes/" })

	if removed != 2 || c.Len() != 1 {
		t.Fatalf("expected 2 removed and 1 left, got %d removed and %d left", removed, c.Len())
	}
}

func TestPurgeAndMinimumSize(t *testing.T) {
	c := NewLRUCache[int, int](0)
	c.Put(1, 1)
	c.Put(2, 2)

	if c.Len() != 1 {
		t.Fatalf("expected size clamp to one entry, got %d", c.Len())
	}

	c.Purge()
	if c.Len() != 0 {
		t.Fatalf("expected empty cache after purge, got %d", c.Len())
	}
}
