package oven

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/cruciblehq/chef/internal/fsutil"
)

// checkpointContains reports whether name has completed at least once
// since the recipe started. A missing checkpoint file means no steps
// have completed.
func checkpointContains(path, name string) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	for _, line := range strings.Split(string(data), "\n") {
		if line == name {
			return true
		}
	}
	return false
}

// checkpointCreate appends name to the checkpoint file, creating it
// if necessary. A name already present is not duplicated.
func checkpointCreate(path, name string) error {
	if checkpointContains(path, name) {
		return nil
	}
	if err := fsutil.MkdirAll(filepath.Dir(path)); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, fsutil.DefaultFileMode)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = f.WriteString(name + "\n")
	return err
}

// removeCheckpoint rewrites the checkpoint file without name. A
// missing checkpoint file is not an error.
func removeCheckpoint(path, name string) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}

	lines := strings.Split(string(data), "\n")
	kept := lines[:0]
	for _, line := range lines {
		if line != "" && line != name {
			kept = append(kept, line)
		}
	}

	out := ""
	if len(kept) > 0 {
		out = strings.Join(kept, "\n") + "\n"
	}
	return os.WriteFile(path, []byte(out), fsutil.DefaultFileMode)
}
