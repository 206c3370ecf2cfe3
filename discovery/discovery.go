// Package discovery locates circuit-description files for a suite run.
package discovery

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DiscoveryError reports that the circuit directory could not be scanned or
// that it contained no matching files. Either way the suite must not start:
// an empty report is indistinguishable from a misconfigured one.
type DiscoveryError struct {
	Dir string
	Ext string
	Err error
}

func (e *DiscoveryError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("discovering circuits in %s: %v", e.Dir, e.Err)
	}
	return fmt.Sprintf("no circuit files matching *%s found in %s", e.Ext, e.Dir)
}

func (e *DiscoveryError) Unwrap() error {
	return e.Err
}

// IsDiscoveryError checks if an error is a DiscoveryError.
func IsDiscoveryError(err error) bool {
	var discoveryErr *DiscoveryError
	return errors.As(err, &discoveryErr)
}

// DiscoverCircuits returns the paths of every regular file in dir whose name
// carries the given extension (compared case-insensitively). The order is
// whatever the filesystem yields and carries no meaning; the reporter sorts
// results later. An unreadable directory or zero matches is a DiscoveryError.
func DiscoverCircuits(dir, ext string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &DiscoveryError{Dir: dir, Ext: ext, Err: err}
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(entry.Name()), ext) {
			paths = append(paths, filepath.Join(dir, entry.Name()))
		}
	}
	if len(paths) == 0 {
		return nil, &DiscoveryError{Dir: dir, Ext: ext}
	}
	return paths, nil
}
