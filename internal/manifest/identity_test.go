package manifest

import "testing"

func TestParseIdentity(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		publisher string
		pkg       string
		wantErr   bool
	}{
		{name: "valid", input: "acme/libfoo", publisher: "acme", pkg: "libfoo"},
		{name: "no slash", input: "libfoo", wantErr: true},
		{name: "too many segments", input: "acme/libfoo/extra", wantErr: true},
		{name: "empty publisher", input: "/libfoo", wantErr: true},
		{name: "empty package", input: "acme/", wantErr: true},
		{name: "empty string", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseIdentity(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Publisher != tt.publisher || got.Package != tt.pkg {
				t.Fatalf("ParseIdentity(%q) = %+v, want {%s %s}", tt.input, got, tt.publisher, tt.pkg)
			}
		})
	}
}

func TestIdentityString(t *testing.T) {
	id := Identity{Publisher: "acme", Package: "libfoo"}
	if got := id.String(); got != "acme/libfoo" {
		t.Fatalf("String() = %q, want acme/libfoo", got)
	}
}
