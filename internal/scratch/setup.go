package scratch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cruciblehq/chef/internal/archive"
	"github.com/cruciblehq/chef/internal/fsutil"
)

// Setup builds (or reuses) the scratch tree described by opts. If the
// ingredient and import list hash matches the tree's last setup, the
// tree is left untouched and only its path layout is returned -
// ingredient staging is the expensive part setup is meant to skip.
func Setup(ctx context.Context, opts Options) (*Scratch, error) {
	if opts.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}

	root := opts.Root
	if root == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrValidation, err)
		}
		root = cwd
	}

	if shouldSkipSetup(root, opts) {
		return construct(root, opts), nil
	}

	base := filepath.Join(root, ".oven", opts.Name)
	targetIngredients := filepath.Join(base, "target", "ingredients")
	buildPath := filepath.Join(base, "chef", "build")
	installLink := filepath.Join(base, "chef", "install")
	projectLink := filepath.Join(base, "chef", "project")

	for _, dir := range []string{targetIngredients, buildPath} {
		if err := fsutil.MkdirAll(dir); err != nil {
			return nil, err
		}
	}

	if opts.InstallPath != "" {
		if err := fsutil.EnsureSymlink(opts.InstallPath, installLink); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrValidation, err)
		}
	}
	if opts.ProjectPath != "" {
		if err := fsutil.EnsureSymlink(opts.ProjectPath, projectLink); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrValidation, err)
		}
	}

	s := construct(root, opts)

	for _, ing := range opts.Ingredients {
		if err := stageIngredient(ctx, s, ing, opts); err != nil {
			return nil, err
		}
	}

	if err := writeHash(root, opts.Name, setupHash(opts)); err != nil {
		return nil, err
	}

	return s, nil
}

func construct(root string, opts Options) *Scratch {
	base := filepath.Join(root, ".oven", opts.Name)
	return &Scratch{
		Name:                      opts.Name,
		HostChroot:                base,
		HostTargetIngredientsPath: filepath.Join(base, "target", "ingredients"),
		HostBuildPath:             filepath.Join(base, "chef", "build"),
		HostInstallPath:           filepath.Join(base, "chef", "install"),
		HostCheckpointPath:        filepath.Join(base, "chef", ".checkpoint"),
		HostProjectPath:           opts.ProjectPath,
		TargetIngredientsPath:     "/target/ingredients",
		ProjectRoot:               "/chef/project",
		BuildRoot:                 "/chef/build",
		InstallRoot:               "/chef/install",
		Confined:                  opts.Confined,
	}
}

// stageIngredient unpacks ing's archive into the scratch tree and
// writes its pkg-config stub. Ingredients matching the host platform
// and architecture unpack directly into the chroot root; cross
// ingredients unpack under target/ingredients instead, so a recipe's
// own toolchain never shadows the ingredients it links against.
func stageIngredient(ctx context.Context, s *Scratch, ing Ingredient, opts Options) error {
	hostDest := s.HostChroot
	inChrootPrefix := ""
	if ing.Platform != opts.HostPlatform || ing.Architecture != opts.HostArchitecture {
		hostDest = s.HostTargetIngredientsPath
		inChrootPrefix = s.TargetIngredientsPath
	}

	a, err := archive.Open(ing.ArchivePath)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	defer a.Close()

	if err := a.Unpack(ctx, hostDest, nil); err != nil {
		return fmt.Errorf("%w: failed to stage %s: %v", ErrValidation, ing.Name, err)
	}

	if err := writePkgConfigStub(hostDest, inChrootPrefix, ing); err != nil {
		return fmt.Errorf("%w: failed to write pkg-config stub for %s: %v", ErrValidation, ing.Name, err)
	}
	return nil
}
