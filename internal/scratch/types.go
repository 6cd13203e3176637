package scratch

import (
	"os"

	"github.com/cruciblehq/chef/internal/manifest"
)

// Ingredient is a resolved ingredient ready to be staged into a
// scratch tree: its raw archive location plus the metadata needed to
// decide where it lands and whether a pkg-config stub is generated.
type Ingredient struct {
	Name         string
	ArchivePath  string
	Platform     string
	Architecture string
	Version      manifest.Version
	Publisher    string
	Consumer     *manifest.ConsumerOptions
}

// Options configures [Setup].
type Options struct {
	// Name identifies the scratch tree; it is also the recipe name and
	// the directory under Root/.oven.
	Name string

	// Root is the directory .oven is rooted under. Empty means the
	// current working directory.
	Root string

	ProjectPath string
	InstallPath string

	HostPlatform     string
	HostArchitecture string

	Ingredients []Ingredient
	Imports     []string
	Confined    bool
}

// Scratch is a recipe's working tree: the host-side paths a build
// writes to, and the fixed in-chroot aliases steps see once confined.
type Scratch struct {
	Name string

	HostChroot                string
	HostTargetIngredientsPath string
	HostBuildPath             string
	HostInstallPath           string
	HostCheckpointPath        string
	HostProjectPath           string

	TargetIngredientsPath string
	ProjectRoot           string
	BuildRoot             string
	InstallRoot           string

	Confined bool

	originalRoot *os.File
}
