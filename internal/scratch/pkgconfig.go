package scratch

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cruciblehq/chef/internal/fsutil"
)

// writePkgConfigStub writes a .pc file for ing under hostRoot, with the
// given in-chroot prefix. Ingredients with no declared consumer surface
// get no stub, matching the original's behavior of skipping packages
// that never specify include/lib directories.
func writePkgConfigStub(hostRoot, prefix string, ing Ingredient) error {
	if ing.Consumer == nil {
		return nil
	}

	dir := filepath.Join(hostRoot, "usr", "share", "pkgconfig")
	if err := fsutil.MkdirAll(dir); err != nil {
		return err
	}

	path := filepath.Join(dir, ing.Name+".pc")
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	cflags := joinPrefixed(ing.Consumer.IncludeDirs, "-I{prefix}", " ")
	libs := joinPrefixed(ing.Consumer.LibDirs, "-L{prefix}", " ")

	fmt.Fprintf(f, "# generated by chef, please do not manually modify this\n")
	fmt.Fprintf(f, "prefix=%s\n", prefix)
	fmt.Fprintf(f, "Name: %s\n", ing.Name)
	fmt.Fprintf(f, "Description: %s by %s\n", ing.Name, ing.Publisher)
	fmt.Fprintf(f, "Version: %s\n", ing.Version.String())
	fmt.Fprintf(f, "Cflags: %s\n", cflags)
	fmt.Fprintf(f, "Libs: %s\n", libs)
	return nil
}

func joinPrefixed(items []string, prefix, sep string) string {
	parts := make([]string, len(items))
	for i, item := range items {
		parts[i] = prefix + item
	}
	return strings.Join(parts, sep)
}
