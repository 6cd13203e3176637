package fridge

import (
	"archive/tar"
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zstd"

	"github.com/cruciblehq/chef/internal/manifest"
)

// fakeRegistry counts calls so tests can assert idempotency without a
// real network round trip.
type fakeRegistry struct {
	resolveCalls int
	fetchCalls   int
	archiveBytes []byte
	packType     manifest.PackageType
}

func (r *fakeRegistry) Resolve(ctx context.Context, id manifest.Identity, platform, architecture, channel string, version *manifest.Version) (ResolvedPack, error) {
	r.resolveCalls++
	v := manifest.Version{Major: 1, Minor: 0, Patch: 0}
	if version != nil {
		v = *version
	}
	return ResolvedPack{
		Identity:     id,
		Platform:     platform,
		Architecture: architecture,
		Channel:      channel,
		Version:      v,
		Type:         r.packType,
	}, nil
}

func (r *fakeRegistry) Fetch(ctx context.Context, pack ResolvedPack, destPath string) error {
	r.fetchCalls++
	return os.WriteFile(destPath, r.archiveBytes, 0644)
}

func makeTestArchive(t *testing.T) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw, err := zstd.NewWriter(&buf)
	if err != nil {
		t.Fatal(err)
	}
	tw := tar.NewWriter(zw)

	content := []byte("#!/bin/sh\necho hi\n")
	if err := tw.WriteHeader(&tar.Header{Name: "bin/tool", Typeflag: tar.TypeReg, Mode: 0755, Size: int64(len(content))}); err != nil {
		t.Fatal(err)
	}
	if _, err := tw.Write(content); err != nil {
		t.Fatal(err)
	}

	if err := tw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestInitializeRequiresPlatformAndArch(t *testing.T) {
	if _, err := Initialize(Options{Root: t.TempDir()}); err == nil {
		t.Fatal("expected error for missing platform/arch")
	}
	if _, err := Initialize(Options{Platform: "linux", Root: t.TempDir()}); err == nil {
		t.Fatal("expected error for missing architecture")
	}
}

func TestInitializeCreatesLayout(t *testing.T) {
	root := t.TempDir()
	if _, err := Initialize(Options{Platform: "linux", Architecture: "amd64", Root: root}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, d := range []string{"storage", "prep", "utensils"} {
		if info, err := os.Stat(filepath.Join(root, ".fridge", d)); err != nil || !info.IsDir() {
			t.Fatalf("expected directory .fridge/%s", d)
		}
	}
}

func TestStoreIngredientIsIdempotent(t *testing.T) {
	root := t.TempDir()
	f, err := Initialize(Options{Platform: "linux", Architecture: "amd64", Root: root})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	reg := &fakeRegistry{archiveBytes: makeTestArchive(t), packType: manifest.PackageTypeIngredient}
	ref := IngredientRef{Identity: manifest.Identity{Publisher: "acme", Package: "libfoo"}, Channel: "stable"}

	if _, err := f.StoreIngredient(context.Background(), reg, ref); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := f.StoreIngredient(context.Background(), reg, ref); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if reg.fetchCalls != 1 {
		t.Fatalf("fetchCalls = %d, want 1", reg.fetchCalls)
	}
}

func TestUseIngredientUnpacksOnceThenSkips(t *testing.T) {
	root := t.TempDir()
	f, err := Initialize(Options{Platform: "linux", Architecture: "amd64", Root: root})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	reg := &fakeRegistry{archiveBytes: makeTestArchive(t), packType: manifest.PackageTypeIngredient}
	ref := IngredientRef{Identity: manifest.Identity{Publisher: "acme", Package: "libfoo"}, Channel: "stable"}

	pack, err := f.UseIngredient(context.Background(), reg, ref, "libfoo")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !pack.Unpacked {
		t.Fatal("pack.Unpacked = false after first UseIngredient")
	}

	unpacked := filepath.Join(root, ".fridge", "prep", "libfoo", "bin", "tool")
	if _, err := os.Stat(unpacked); err != nil {
		t.Fatalf("expected unpacked file at %s: %v", unpacked, err)
	}

	// Remove the unpacked tree; a second UseIngredient must not recreate it
	// because the inventory already claims Unpacked.
	if err := os.RemoveAll(filepath.Join(root, ".fridge", "prep", "libfoo")); err != nil {
		t.Fatal(err)
	}

	if _, err := f.UseIngredient(context.Background(), reg, ref, "libfoo"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reg.fetchCalls != 1 {
		t.Fatalf("fetchCalls = %d, want 1 (second use must not refetch)", reg.fetchCalls)
	}
	if _, err := os.Stat(unpacked); !os.IsNotExist(err) {
		t.Fatal("expected second UseIngredient to skip unpack, leaving tree removed")
	}
}

func TestUseIngredientRoutesToolchainToUtensils(t *testing.T) {
	root := t.TempDir()
	f, err := Initialize(Options{Platform: "linux", Architecture: "amd64", Root: root})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	reg := &fakeRegistry{archiveBytes: makeTestArchive(t), packType: manifest.PackageTypeToolchain}
	ref := IngredientRef{Identity: manifest.Identity{Publisher: "gnu", Package: "gcc"}, Channel: "stable"}

	if _, err := f.UseIngredient(context.Background(), reg, ref, "gcc"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	loc, err := f.GetUtensilLocation("gnu/gcc")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := os.Stat(filepath.Join(loc, "bin", "tool")); err != nil {
		t.Fatalf("expected toolchain unpacked at %s: %v", loc, err)
	}
}

func TestGetUtensilLocationDoesNotCreateDirectory(t *testing.T) {
	root := t.TempDir()
	f, err := Initialize(Options{Platform: "linux", Architecture: "amd64", Root: root})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	loc, err := f.GetUtensilLocation("gnu/gcc")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := os.Stat(loc); !os.IsNotExist(err) {
		t.Fatal("GetUtensilLocation must not create the directory")
	}
}

func TestGetUtensilLocationRejectsMalformedName(t *testing.T) {
	root := t.TempDir()
	f, err := Initialize(Options{Platform: "linux", Architecture: "amd64", Root: root})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := f.GetUtensilLocation("gcc"); err == nil {
		t.Fatal("expected error for malformed name")
	}
}

func TestPurgeClearsPrepAndInventory(t *testing.T) {
	root := t.TempDir()
	f, err := Initialize(Options{Platform: "linux", Architecture: "amd64", Root: root})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	reg := &fakeRegistry{archiveBytes: makeTestArchive(t), packType: manifest.PackageTypeIngredient}
	ref := IngredientRef{Identity: manifest.Identity{Publisher: "acme", Package: "libfoo"}, Channel: "stable"}
	if _, err := f.UseIngredient(context.Background(), reg, ref, "libfoo"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := f.Purge(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(f.inventory.packs) != 0 {
		t.Fatal("expected inventory to be cleared after purge")
	}
	if _, err := os.Stat(filepath.Join(root, ".fridge", "prep")); err != nil {
		t.Fatal("expected prep directory to still exist (recreated) after purge")
	}
}

func TestCleanupPersistsInventory(t *testing.T) {
	root := t.TempDir()
	f, err := Initialize(Options{Platform: "linux", Architecture: "amd64", Root: root})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	reg := &fakeRegistry{archiveBytes: makeTestArchive(t), packType: manifest.PackageTypeIngredient}
	ref := IngredientRef{Identity: manifest.Identity{Publisher: "acme", Package: "libfoo"}, Channel: "stable"}
	if _, err := f.UseIngredient(context.Background(), reg, ref, "libfoo"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := f.Cleanup(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	reloaded, err := Initialize(Options{Platform: "linux", Architecture: "amd64", Root: root})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(reloaded.inventory.packs) != 1 {
		t.Fatalf("len(packs) = %d, want 1 after reload", len(reloaded.inventory.packs))
	}
	if !reloaded.inventory.packs[0].Unpacked {
		t.Fatal("expected reloaded pack to still be marked unpacked")
	}
}
