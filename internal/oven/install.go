package oven

import (
	"fmt"
	"path/filepath"

	"github.com/cruciblehq/chef/internal/fsutil"
)

// IncludeFilters copies every file under the recipe's project
// directory whose path does not match any of filters into the shared
// install root (.oven/output). This is how source-tree files a build
// backend never installs - license text, generated docs, non-built
// assets - end up in the packaged output; whatever a backend already
// wrote via the chef/install alias is untouched. An empty filter list
// copies everything.
func (c *Context) IncludeFilters(filters []string) error {
	c.mu.Lock()
	recipe := c.recipe
	installRoot := c.installRoot
	cwd := c.variables.cwd
	c.mu.Unlock()

	if recipe == nil {
		return fmt.Errorf("%w", ErrNoRecipeActive)
	}

	return fsutil.CopyFiltered(filepath.Join(cwd, recipe.relativePath), installRoot, filters)
}
