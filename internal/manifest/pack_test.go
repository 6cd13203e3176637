package manifest

import "testing"

const samplePack = `
publisher = "acme"
package = "libfoo"
summary = "a demo library"
type = "ingredient"

[consumer]
include_dirs = ["include"]
lib_dirs = ["lib"]
`

func TestParsePack(t *testing.T) {
	p, err := ParsePack([]byte(samplePack))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := p.Identity().String(); got != "acme/libfoo" {
		t.Fatalf("Identity() = %q, want acme/libfoo", got)
	}
	if p.PackageType() != PackageTypeIngredient {
		t.Fatalf("PackageType() = %v, want PackageTypeIngredient", p.PackageType())
	}

	c := p.ConsumerOptions()
	if c == nil || len(c.IncludeDirs) != 1 || c.IncludeDirs[0] != "include" {
		t.Fatalf("ConsumerOptions() = %+v, want IncludeDirs=[include]", c)
	}
}

func TestParsePackRequiresIdentity(t *testing.T) {
	_, err := ParsePack([]byte(`summary = "no identity"`))
	if err == nil {
		t.Fatal("expected error for missing publisher/package")
	}
}

func TestParsePackDefaultsTypeToIngredient(t *testing.T) {
	p, err := ParsePack([]byte(`publisher = "acme"
package = "libfoo"`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.PackageType() != PackageTypeIngredient {
		t.Fatalf("PackageType() = %v, want PackageTypeIngredient", p.PackageType())
	}
	if p.ConsumerOptions() != nil {
		t.Fatal("ConsumerOptions() should be nil when [consumer] is absent")
	}
}

func TestToPackageCarriesPlatformAndArchitecture(t *testing.T) {
	p, err := ParsePack([]byte(samplePack))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	pkg := p.ToPackage("linux", "amd64")
	if pkg.Platform != "linux" || pkg.Architecture != "amd64" {
		t.Fatalf("ToPackage Platform/Architecture = %q/%q, want linux/amd64", pkg.Platform, pkg.Architecture)
	}
	if pkg.Summary != p.Summary {
		t.Fatalf("ToPackage Summary = %q, want %q", pkg.Summary, p.Summary)
	}
}
