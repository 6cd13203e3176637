package scratch

import "testing"

func TestSetupHashIsDeterministicAndOrderSensitive(t *testing.T) {
	a := Options{Name: "proj", Ingredients: []Ingredient{{Name: "libfoo"}, {Name: "libbar"}}, Imports: []string{"gcc"}}
	b := Options{Name: "proj", Ingredients: []Ingredient{{Name: "libfoo"}, {Name: "libbar"}}, Imports: []string{"gcc"}}
	c := Options{Name: "proj", Ingredients: []Ingredient{{Name: "libbar"}, {Name: "libfoo"}}, Imports: []string{"gcc"}}

	if setupHash(a) != setupHash(b) {
		t.Fatal("identical options produced different hashes")
	}
	if setupHash(a) == setupHash(c) {
		t.Fatal("reordering ingredients did not change the hash")
	}
}

func TestSetupHashDiffersByName(t *testing.T) {
	a := Options{Name: "proj-a"}
	b := Options{Name: "proj-b"}

	if setupHash(a) == setupHash(b) {
		t.Fatal("different recipe names produced the same hash")
	}
}

func TestReadHashMissingFileReturnsZero(t *testing.T) {
	root := t.TempDir()
	if got := readHash(root, "nope"); got != 0 {
		t.Fatalf("readHash() = %d, want 0 for missing file", got)
	}
}

func TestWriteThenReadHashRoundTrips(t *testing.T) {
	root := t.TempDir()
	if err := writeHash(root, "proj", 12345); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := readHash(root, "proj"); got != 12345 {
		t.Fatalf("readHash() = %d, want 12345", got)
	}
}

func TestShouldSkipSetupReflectsStoredHash(t *testing.T) {
	root := t.TempDir()
	opts := Options{Name: "proj", Ingredients: []Ingredient{{Name: "libfoo"}}}

	if shouldSkipSetup(root, opts) {
		t.Fatal("expected setup not to be skipped before a hash is written")
	}

	if err := writeHash(root, opts.Name, setupHash(opts)); err != nil {
		t.Fatal(err)
	}
	if !shouldSkipSetup(root, opts) {
		t.Fatal("expected setup to be skipped once the hash matches")
	}

	opts.Ingredients = append(opts.Ingredients, Ingredient{Name: "libbar"})
	if shouldSkipSetup(root, opts) {
		t.Fatal("expected setup not to be skipped once ingredients changed")
	}
}
