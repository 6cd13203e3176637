package fridge

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cruciblehq/chef/internal/fsutil"
	"github.com/cruciblehq/chef/internal/manifest"
)

// inventory is the on-disk index of cached archives and their unpack
// state. Invariant: every pack's Path points at an existing file under
// storage; packs whose file has disappeared are evicted at load.
type inventory struct {
	path  string
	packs []InventoryPack
}

type inventoryDoc struct {
	Packs []InventoryPack `json:"packs"`
}

// loadInventory reads the inventory index under storagePath, evicting
// any pack whose archive file no longer exists on disk.
func loadInventory(storagePath string) (*inventory, error) {
	path := filepath.Join(storagePath, "inventory.json")

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return &inventory{path: path}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	var doc inventoryDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	packs := doc.Packs[:0]
	for _, p := range doc.Packs {
		if _, err := os.Stat(p.Path); err == nil {
			packs = append(packs, p)
		}
	}

	return &inventory{path: path, packs: packs}, nil
}

// save persists the inventory index to disk.
func (inv *inventory) save() error {
	data, err := json.MarshalIndent(inventoryDoc{Packs: inv.packs}, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}

	if err := fsutil.MkdirAll(filepath.Dir(inv.path)); err != nil {
		return err
	}
	if err := os.WriteFile(inv.path, data, fsutil.DefaultFileMode); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return nil
}

func (inv *inventory) add(pack InventoryPack) {
	inv.packs = append(inv.packs, pack)
}

// find returns the index of the matching pack. If version is non-nil,
// only an exact match is returned; otherwise the pack with the
// greatest version on the given channel is returned ("any revision",
// see SPEC_FULL.md's Open Question resolution). Returns -1 if no pack
// matches.
func (inv *inventory) find(id manifest.Identity, platform, architecture, channel string, version *manifest.Version) int {
	best := -1
	for i, p := range inv.packs {
		if p.Identity != id || p.Platform != platform || p.Architecture != architecture || p.Channel != channel {
			continue
		}
		if version != nil {
			if p.Version.Compare(*version) == 0 {
				return i
			}
			continue
		}
		if best == -1 || p.Version.Compare(inv.packs[best].Version) > 0 {
			best = i
		}
	}
	return best
}
