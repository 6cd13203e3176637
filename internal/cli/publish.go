package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"

	"github.com/cruciblehq/chef/internal/archive"
	"github.com/cruciblehq/chef/internal/manifest"
	"github.com/cruciblehq/chef/internal/registry"
)

// PublishCmd represents the 'chef publish' command: archives a built
// output tree and pushes it to a registry as the in-scope half of the
// original order tool's publish responsibility.
type PublishCmd struct {
	Output  string `arg:"" optional:"" default:".oven/output" help:"Path to the built output tree to publish."`
	Package string `help:"Path to the package manifest." default:"package.toml"`
	Version string `required:"" help:"Version to publish, e.g. 1.2.3 or 1.2.3-beta.1."`
	Channel string `default:"stable" help:"Release channel to publish under."`

	Platform     string `help:"Platform the output tree was built for. Defaults to the host platform." default:""`
	Architecture string `help:"Architecture the output tree was built for. Defaults to the host architecture." default:""`

	Registry    string `help:"Registry host to publish to." default:"registry.chef.dev"`
	PlainHTTP   bool   `help:"Use plain HTTP against the registry instead of HTTPS."`
	InsecureTLS bool   `help:"Skip TLS certificate verification against the registry."`
}

// Run archives c.Output and pushes it under the package's identity.
func (c *PublishCmd) Run(ctx context.Context) error {
	pack, err := manifest.LoadPack(c.Package)
	if err != nil {
		return err
	}

	version, err := manifest.ParseVersion(c.Version)
	if err != nil {
		return err
	}

	platform := c.Platform
	if platform == "" {
		platform = runtime.GOOS
	}
	architecture := c.Architecture
	if architecture == "" {
		architecture = runtime.GOARCH
	}

	archivePath, err := stagePublishArchive(ctx, c.Output, pack.Identity(), version)
	if err != nil {
		return err
	}
	defer os.Remove(archivePath)

	reg := registry.NewClient(registry.ClientOptions{
		Host:        c.Registry,
		PlainHTTP:   c.PlainHTTP,
		InsecureTLS: c.InsecureTLS,
	})

	result, err := reg.Publish(ctx, registry.PublishOptions{
		ArchivePath:  archivePath,
		Platform:     platform,
		Architecture: architecture,
		Channel:      c.Channel,
		Package:      pack.ToPackage(platform, architecture),
		Version:      version,
		Consumer:     pack.ConsumerOptions(),
	})
	if err != nil {
		return err
	}

	slog.Info("published", "repository", result.Repository, "digest", result.Digest, "tags", result.Tags)
	fmt.Printf("published %s@%s to %s (%s)\n", pack.Identity(), version, result.Repository, result.Digest)
	return nil
}

func stagePublishArchive(ctx context.Context, outputDir string, identity manifest.Identity, version manifest.Version) (string, error) {
	name := fmt.Sprintf("%s-%s-%s.tar.zst", identity.Publisher, identity.Package, version.String())
	dest := filepath.Join(os.TempDir(), name)
	if err := archive.Create(ctx, outputDir, dest); err != nil {
		return "", err
	}
	return dest, nil
}
