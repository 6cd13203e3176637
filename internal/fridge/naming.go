package fridge

import (
	"fmt"
	"strings"

	digest "github.com/opencontainers/go-digest"
)

// storageFilename derives the on-disk archive filename for a resolved
// pack. When the registry supplied a content digest, storage is keyed
// by digest (true content-addressing); otherwise it falls back to the
// tuple itself.
func storageFilename(pack ResolvedPack) string {
	if pack.Digest != "" {
		d := digest.Digest(pack.Digest)
		return strings.ReplaceAll(d.String(), ":", "-") + ".tar.zst"
	}
	return fmt.Sprintf("%s-%s-%s-%s-%s-%s.tar.zst",
		pack.Identity.Publisher, pack.Identity.Package,
		pack.Platform, pack.Architecture, pack.Channel, pack.Version.String())
}
