package registry

import "testing"

func TestStripProtocol(t *testing.T) {
	cases := map[string]string{
		"https://ghcr.io":  "ghcr.io",
		"http://localhost": "localhost",
		"ghcr.io":          "ghcr.io",
		"localhost:5000":   "localhost:5000",
	}
	for input, want := range cases {
		if got := stripProtocol(input); got != want {
			t.Fatalf("stripProtocol(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestValidateReferenceRejectsMalformedRepository(t *testing.T) {
	if err := validateReference("ghcr.io", "Not_A_Valid_Repo!!", "latest"); err == nil {
		t.Fatal("expected an error for an invalid repository path")
	}
}

func TestValidateReferenceAcceptsWellFormedReference(t *testing.T) {
	if err := validateReference("ghcr.io", "acme/libfoo", "linux-amd64-stable"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
