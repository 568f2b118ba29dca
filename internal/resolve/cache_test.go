package resolve

import (
	"context"
	"testing"

	"github.com/lehigh-university-libraries/bookid/internal/naver"
)

func TestCacheStoreAndLookup(t *testing.T) {
	cache := NewCache()

	rec := PartialRecord{Title: "T", Author: "A", Publisher: "P", Year: "2020"}
	if _, ok := cache.Lookup(rec); ok {
		t.Fatal("unexpected hit on empty cache")
	}

	cache.Store(rec, "9781111111111")

	isbn, ok := cache.Lookup(rec)
	if !ok || isbn != "9781111111111" {
		t.Errorf("Lookup = (%q, %v), want stored value", isbn, ok)
	}

	// Whitespace variants share the fingerprint.
	isbn, ok = cache.Lookup(PartialRecord{Title: " T ", Author: "A", Publisher: "P ", Year: " 2020"})
	if !ok || isbn != "9781111111111" {
		t.Errorf("normalized Lookup = (%q, %v), want hit", isbn, ok)
	}
}

func TestCacheRemembersNotFound(t *testing.T) {
	cache := NewCache()
	rec := PartialRecord{Title: "Unknown"}

	cache.Store(rec, "")

	isbn, ok := cache.Lookup(rec)
	if !ok {
		t.Fatal("expected hit for cached not-found outcome")
	}
	if isbn != "" {
		t.Errorf("isbn = %q, want empty", isbn)
	}
}

func TestResolveUsesCacheOnce(t *testing.T) {
	searcher := &fakeSearcher{results: map[string][]naver.Book{
		"T A": {{Title: "T", Author: "A", ISBN: "9781111111111"}},
	}}
	resolver := NewResolver(searcher, NewCache())

	rec := PartialRecord{Title: "T", Author: "A"}
	for i := 0; i < 3; i++ {
		isbn, err := resolver.Resolve(context.Background(), rec)
		if err != nil {
			t.Fatalf("Resolve #%d returned error: %v", i+1, err)
		}
		if isbn != "9781111111111" {
			t.Errorf("Resolve #%d = %q, want cached identifier", i+1, isbn)
		}
	}

	if len(searcher.queries) != 1 {
		t.Errorf("searcher saw %d queries, want exactly one cascade execution", len(searcher.queries))
	}
}

func TestResolveCachesNotFound(t *testing.T) {
	searcher := &fakeSearcher{results: map[string][]naver.Book{}}
	resolver := NewResolver(searcher, NewCache())

	rec := PartialRecord{Title: "Unknown"}
	for i := 0; i < 2; i++ {
		isbn, err := resolver.Resolve(context.Background(), rec)
		if err != nil {
			t.Fatalf("Resolve returned error: %v", err)
		}
		if isbn != "" {
			t.Errorf("isbn = %q, want empty", isbn)
		}
	}

	// Four cascade steps on the first call, zero on the second.
	if len(searcher.queries) != 4 {
		t.Errorf("searcher saw %d queries, want 4", len(searcher.queries))
	}
}
