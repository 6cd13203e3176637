package manifest

// PackageType classifies a package for staging purposes. Toolchain
// packages route to the utensils area; everything else routes to prep.
type PackageType int

const (
	PackageTypeUnknown PackageType = iota
	PackageTypeToolchain
	PackageTypeIngredient
	PackageTypeApplication
)

func (t PackageType) String() string {
	switch t {
	case PackageTypeToolchain:
		return "toolchain"
	case PackageTypeIngredient:
		return "ingredient"
	case PackageTypeApplication:
		return "application"
	default:
		return "unknown"
	}
}

// ConsumerOptions describes a package's declared consumer surface: the
// include and library directories a dependent should add when
// consuming it. A nil *ConsumerOptions means the package has no
// declared consumer surface and no pkg-config stub is generated for it.
type ConsumerOptions struct {
	IncludeDirs []string
	LibDirs     []string
}

// Package is the manifest of a loaded archive: identity, descriptive
// metadata, and its type.
type Package struct {
	Identity

	Summary         string
	Description     string
	Homepage        string
	License         string
	EULA            string
	Maintainer      string
	MaintainerEmail string
	Type            PackageType
	Platform        string
	Architecture    string
}

// Channel names a release stream and its current version.
type Channel struct {
	Name           string
	CurrentVersion Version
}
