package oven

import (
	"path/filepath"
	"testing"
)

func TestCheckpointContainsMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".checkpoint")
	if checkpointContains(path, "configure") {
		t.Fatal("expected false for a missing checkpoint file")
	}
}

func TestCheckpointCreateThenContains(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".checkpoint")

	if err := checkpointCreate(path, "configure"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !checkpointContains(path, "configure") {
		t.Fatal("expected configure to be present after create")
	}
	if checkpointContains(path, "build") {
		t.Fatal("expected build to be absent")
	}
}

func TestCheckpointCreateIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".checkpoint")

	if err := checkpointCreate(path, "configure"); err != nil {
		t.Fatal(err)
	}
	if err := checkpointCreate(path, "configure"); err != nil {
		t.Fatal(err)
	}

	count := 0
	for _, name := range []string{"configure"} {
		if checkpointContains(path, name) {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("expected configure present exactly once in semantics, got count=%d", count)
	}
}

func TestRemoveCheckpointMissingFileIsNoop(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".checkpoint")
	if err := removeCheckpoint(path, "configure"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRemoveCheckpointClearsOnlyNamedStep(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".checkpoint")

	if err := checkpointCreate(path, "configure"); err != nil {
		t.Fatal(err)
	}
	if err := checkpointCreate(path, "build"); err != nil {
		t.Fatal(err)
	}
	if err := removeCheckpoint(path, "configure"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if checkpointContains(path, "configure") {
		t.Fatal("expected configure to be removed")
	}
	if !checkpointContains(path, "build") {
		t.Fatal("expected build to remain")
	}
}
