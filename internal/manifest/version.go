package manifest

import (
	"fmt"
	"time"

	"github.com/Masterminds/semver/v3"
)

// Version identifies a specific build of a package.
//
// Revision is a server-side monotonic counter within a channel; it is
// never supplied in a recipe manifest, only populated once a pack has
// been resolved against the registry (see internal/fridge).
type Version struct {
	Major, Minor, Patch int
	Revision            int
	Tag                 string
	Size                int64
	Created             time.Time
}

// Parses a "major.minor.patch[-tag]" version string.
func ParseVersion(s string) (Version, error) {
	sv, err := semver.NewVersion(s)
	if err != nil {
		return Version{}, fmt.Errorf("%w: %q: %v", ErrInvalidVersion, s, err)
	}
	return Version{
		Major: int(sv.Major()),
		Minor: int(sv.Minor()),
		Patch: int(sv.Patch()),
		Tag:   sv.Prerelease(),
	}, nil
}

func (v Version) String() string {
	s := fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
	if v.Tag != "" {
		s += "-" + v.Tag
	}
	return s
}

// Compare orders versions by major, minor, patch, and prerelease tag
// per semver precedence, with Revision as a final tiebreaker specific
// to this domain (two packs with an identical semver tuple can still
// differ by the registry's monotonic revision counter).
//
// Returns -1 if v < other, 0 if equal, 1 if v > other.
func (v Version) Compare(other Version) int {
	a := semver.New(uint64(v.Major), uint64(v.Minor), uint64(v.Patch), v.Tag, "")
	b := semver.New(uint64(other.Major), uint64(other.Minor), uint64(other.Patch), other.Tag, "")

	if c := a.Compare(b); c != 0 {
		return c
	}

	switch {
	case v.Revision < other.Revision:
		return -1
	case v.Revision > other.Revision:
		return 1
	default:
		return 0
	}
}
