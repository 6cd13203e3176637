package manifest

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// PackManifest is the parsed contents of a project's package.toml: the
// descriptive metadata published alongside a built output tree,
// grounded on chef_package/chef_platform from the original
// chefclient library.
type PackManifest struct {
	Publisher       string `toml:"publisher"`
	Package         string `toml:"package"`
	Summary         string `toml:"summary"`
	Description     string `toml:"description"`
	Homepage        string `toml:"homepage"`
	License         string `toml:"license"`
	EULA            string `toml:"eula"`
	Maintainer      string `toml:"maintainer"`
	MaintainerEmail string `toml:"maintainer_email"`
	Type            string `toml:"type"`

	Consumer *PackConsumer `toml:"consumer"`
}

// PackConsumer is package.toml's optional [consumer] table, describing
// the include/lib directories a dependent recipe should add when this
// package is used as an ingredient.
type PackConsumer struct {
	IncludeDirs []string `toml:"include_dirs"`
	LibDirs     []string `toml:"lib_dirs"`
}

// LoadPack reads and parses a package.toml from disk.
func LoadPack(path string) (*PackManifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPack, err)
	}
	return ParsePack(data)
}

// ParsePack parses package.toml bytes and validates required fields.
func ParsePack(data []byte) (*PackManifest, error) {
	var p PackManifest
	if _, err := toml.Decode(string(data), &p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPack, err)
	}
	if p.Publisher == "" || p.Package == "" {
		return nil, fmt.Errorf("%w: publisher and package are required", ErrInvalidPack)
	}
	return &p, nil
}

// Identity returns the pack's publisher/package identity.
func (p *PackManifest) Identity() Identity {
	return Identity{Publisher: p.Publisher, Package: p.Package}
}

// PackageType parses the manifest's type string, defaulting to
// [PackageTypeIngredient] when empty.
func (p *PackManifest) PackageType() PackageType {
	switch p.Type {
	case "toolchain":
		return PackageTypeToolchain
	case "application":
		return PackageTypeApplication
	case "ingredient", "":
		return PackageTypeIngredient
	default:
		return PackageTypeUnknown
	}
}

// ToPackage builds the [Package] record [registry.Client.Publish]
// expects, for the given resolved platform/architecture.
func (p *PackManifest) ToPackage(platform, architecture string) Package {
	return Package{
		Identity:        p.Identity(),
		Summary:         p.Summary,
		Description:     p.Description,
		Homepage:        p.Homepage,
		License:         p.License,
		EULA:            p.EULA,
		Maintainer:      p.Maintainer,
		MaintainerEmail: p.MaintainerEmail,
		Type:            p.PackageType(),
		Platform:        platform,
		Architecture:    architecture,
	}
}

// ConsumerOptions converts the manifest's [consumer] table, returning
// nil when absent so no pkg-config stub metadata is published.
func (p *PackManifest) ConsumerOptions() *ConsumerOptions {
	if p.Consumer == nil {
		return nil
	}
	return &ConsumerOptions{
		IncludeDirs: p.Consumer.IncludeDirs,
		LibDirs:     p.Consumer.LibDirs,
	}
}
