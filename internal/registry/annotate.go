package registry

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/cruciblehq/chef/internal/manifest"
)

// Annotation keys carrying pack metadata that an OCI manifest/descriptor
// has no first-class field for. Mirrors the consumer/version detail
// InventoryPack already tracks locally.
const (
	annotationPackageType = "io.chef.package.type"
	annotationVersion     = "io.chef.package.version"
	annotationRevision    = "io.chef.package.revision"
	annotationCreated     = "org.opencontainers.image.created"
	annotationIncludeDirs = "io.chef.package.consumer.include_dirs"
	annotationLibDirs     = "io.chef.package.consumer.lib_dirs"
)

// tagFor builds the moving or pinned tag for a (platform, architecture,
// channel, version) selector. A nil version produces the channel's
// moving tag; a non-nil version produces an immutable per-version tag.
func tagFor(platform, architecture, channel string, version *manifest.Version) string {
	selector := channel
	if version != nil {
		selector = version.String()
	}
	return sanitizeTag(fmt.Sprintf("%s-%s-%s", platform, architecture, selector))
}

// sanitizeTag replaces characters an OCI tag cannot contain (tags are
// [A-Za-z0-9_.-] only) with '-', so platform, architecture, channel
// and version text always yield a valid tag.
func sanitizeTag(tag string) string {
	var b strings.Builder
	for _, r := range tag {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '.', r == '-':
			b.WriteRune(r)
		default:
			b.WriteRune('-')
		}
	}
	return b.String()
}

// annotationsFor builds the manifest annotation set describing pack.
func annotationsFor(pack manifest.Package, version manifest.Version) map[string]string {
	out := map[string]string{
		annotationPackageType: pack.Type.String(),
		annotationVersion:     version.String(),
		annotationRevision:    strconv.Itoa(version.Revision),
	}
	if !version.Created.IsZero() {
		out[annotationCreated] = version.Created.UTC().Format(time.RFC3339)
	}
	return out
}

// consumerAnnotationsFor builds the annotation pair describing a
// package's declared consumer surface. Returns nil when opts is nil,
// matching the "no stub generated" convention the rest of the codebase
// uses for an absent ConsumerOptions.
func consumerAnnotationsFor(opts *manifest.ConsumerOptions) map[string]string {
	if opts == nil {
		return nil
	}
	return map[string]string{
		annotationIncludeDirs: strings.Join(opts.IncludeDirs, ","),
		annotationLibDirs:     strings.Join(opts.LibDirs, ","),
	}
}

// parseConsumerAnnotations is the inverse of consumerAnnotationsFor. It
// returns nil if neither key is present.
func parseConsumerAnnotations(annotations map[string]string) *manifest.ConsumerOptions {
	inc, incOK := annotations[annotationIncludeDirs]
	lib, libOK := annotations[annotationLibDirs]
	if !incOK && !libOK {
		return nil
	}
	return &manifest.ConsumerOptions{
		IncludeDirs: splitNonEmpty(inc),
		LibDirs:     splitNonEmpty(lib),
	}
}

func splitNonEmpty(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}

func parsePackageType(s string) manifest.PackageType {
	switch s {
	case manifest.PackageTypeToolchain.String():
		return manifest.PackageTypeToolchain
	case manifest.PackageTypeIngredient.String():
		return manifest.PackageTypeIngredient
	case manifest.PackageTypeApplication.String():
		return manifest.PackageTypeApplication
	default:
		return manifest.PackageTypeUnknown
	}
}
