package fridge

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cruciblehq/chef/internal/archive"
	"github.com/cruciblehq/chef/internal/fsutil"
	"github.com/cruciblehq/chef/internal/manifest"
)

// Options configures [Initialize].
type Options struct {
	Platform     string
	Architecture string
	// Root overrides the working directory .fridge is rooted under.
	// Empty means the process's current directory.
	Root string
}

// Fridge is the content-addressed ingredient store and cache rooted at
// .fridge under a working directory. One Fridge is initialized per
// process invocation; paths are recomputed against Root at every
// [Initialize] call.
type Fridge struct {
	platform     string
	architecture string
	root         string

	storagePath  string
	prepPath     string
	utensilsPath string

	inventory *inventory
}

// Initialize creates .fridge/{storage,prep,utensils} under Root (or
// the current directory) and loads the inventory index. Fails if
// Platform or Architecture is empty.
func Initialize(opts Options) (*Fridge, error) {
	if opts.Platform == "" || opts.Architecture == "" {
		return nil, fmt.Errorf("%w: platform and architecture are required", ErrValidation)
	}

	root := opts.Root
	if root == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrValidation, err)
		}
		root = cwd
	}

	base := filepath.Join(root, ".fridge")
	storage := filepath.Join(base, "storage")
	prep := filepath.Join(base, "prep")
	utensils := filepath.Join(base, "utensils")

	for _, dir := range []string{storage, prep, utensils} {
		if err := fsutil.MkdirAll(dir); err != nil {
			return nil, err
		}
	}

	inv, err := loadInventory(storage)
	if err != nil {
		return nil, err
	}

	return &Fridge{
		platform:     opts.Platform,
		architecture: opts.Architecture,
		root:         root,
		storagePath:  storage,
		prepPath:     prep,
		utensilsPath: utensils,
		inventory:    inv,
	}, nil
}

// StoreIngredient resolves ref against the registry and ensures its
// raw archive is present in storage, downloading it only if missing.
// Idempotent: a second call for the same tuple performs no network
// fetch.
func (f *Fridge) StoreIngredient(ctx context.Context, reg Registry, ref IngredientRef) (InventoryPack, error) {
	resolved, err := reg.Resolve(ctx, ref.Identity, f.platform, f.architecture, ref.Channel, ref.Version)
	if err != nil {
		return InventoryPack{}, fmt.Errorf("%w: %v", ErrNotFound, err)
	}

	dest := filepath.Join(f.storagePath, storageFilename(resolved))
	if _, err := os.Stat(dest); err != nil {
		if !os.IsNotExist(err) {
			return InventoryPack{}, fmt.Errorf("%w: %v", ErrArchive, err)
		}
		if err := reg.Fetch(ctx, resolved, dest); err != nil {
			return InventoryPack{}, fmt.Errorf("%w: %v", ErrArchive, err)
		}
	}

	if idx := f.inventory.find(resolved.Identity, resolved.Platform, resolved.Architecture, resolved.Channel, &resolved.Version); idx >= 0 {
		return f.inventory.packs[idx], nil
	}

	pack := InventoryPack{
		Identity:     resolved.Identity,
		Platform:     resolved.Platform,
		Architecture: resolved.Architecture,
		Channel:      resolved.Channel,
		Version:      resolved.Version,
		Type:         resolved.Type,
		Path:         dest,
		Consumer:     resolved.Consumer,
	}
	f.inventory.add(pack)
	return pack, nil
}

// UseIngredient stores ref, then unpacks it if it has not already been
// unpacked. label is used for progress-bar display only. A second call
// with an identical ref performs no network fetch and no unpack.
func (f *Fridge) UseIngredient(ctx context.Context, reg Registry, ref IngredientRef, label string) (InventoryPack, error) {
	pack, err := f.StoreIngredient(ctx, reg, ref)
	if err != nil {
		return InventoryPack{}, err
	}

	idx := f.inventory.find(pack.Identity, pack.Platform, pack.Architecture, pack.Channel, &pack.Version)
	if idx < 0 {
		return InventoryPack{}, fmt.Errorf("%w: pack missing from inventory after store", ErrNotFound)
	}
	if f.inventory.packs[idx].Unpacked {
		return f.inventory.packs[idx], nil
	}

	destRoot := f.prepPath
	if pack.Type == manifest.PackageTypeToolchain {
		destRoot = f.utensilsPath
	}
	dest := filepath.Join(destRoot, pack.Identity.Package)

	a, err := archive.Open(pack.Path)
	if err != nil {
		return InventoryPack{}, fmt.Errorf("%w: %v", ErrArchive, err)
	}
	defer a.Close()

	if err := f.unpack(ctx, a, dest, label); err != nil {
		return InventoryPack{}, fmt.Errorf("%w: %v", ErrArchive, err)
	}

	f.inventory.packs[idx].Unpacked = true
	return f.inventory.packs[idx], nil
}

// GetUtensilLocation returns the path a toolchain package would live
// at under utensils, without creating it. Ensuring the path exists is
// the caller's responsibility.
func (f *Fridge) GetUtensilLocation(name string) (string, error) {
	id, err := manifest.ParseIdentity(name)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedName, err)
	}
	return filepath.Join(f.utensilsPath, id.Package), nil
}

// Purge removes the prep directory and clears the in-memory pack list.
func (f *Fridge) Purge() error {
	if err := fsutil.RemoveAll(f.prepPath); err != nil {
		return err
	}
	if err := fsutil.MkdirAll(f.prepPath); err != nil {
		return err
	}
	f.inventory.packs = nil
	return nil
}

// Cleanup saves the inventory index.
func (f *Fridge) Cleanup() error {
	return f.inventory.save()
}
