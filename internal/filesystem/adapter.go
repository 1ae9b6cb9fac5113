package filesystem

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileStats holds basic statistics about a path.
type FileStats struct {
	Size  int64
	IsDir bool
	Mode  os.FileMode
}

// FileSystemAdapter defines an interface for interacting with the file system.
// This allows the listing service to be tested against failures the real
// file system rarely produces.
type FileSystemAdapter interface {
	GetFileStats(path string) (*FileStats, error)
	ListDir(path string) ([]DirEntryInfo, error)
}

// DirEntryInfo holds information about a directory entry.
type DirEntryInfo struct {
	Name     string
	IsDir    bool
	IsHidden bool // Helper based on name
}

// IsHiddenName reports whether a directory entry name is hidden, i.e. starts
// with a dot.
func IsHiddenName(name string) bool {
	return strings.HasPrefix(name, ".")
}

// ResolvePath joins relative onto root, cleans the result lexically and
// reports whether it is still inside root.
//
// An absolute relative path replaces root entirely, the way a POSIX path join
// does, so "/etc" is rejected rather than silently re-rooted.
//
// The containment check is a plain string prefix test on the cleaned path and
// never touches the file system. Two consequences are known and kept:
// symlinks inside root that point elsewhere are followed, and a sibling whose
// name extends root's (root "/srv/site", path "../site2") passes the check.
func ResolvePath(root, relative string) (string, bool) {
	var joined string
	if filepath.IsAbs(relative) {
		joined = filepath.Clean(relative)
	} else {
		joined = filepath.Join(root, relative)
	}
	if !strings.HasPrefix(joined, root) {
		return joined, false
	}
	return joined, true
}

// DefaultFileSystemAdapter is the standard implementation of FileSystemAdapter using the os package.
type DefaultFileSystemAdapter struct{}

// NewDefaultFileSystemAdapter creates a new DefaultFileSystemAdapter.
func NewDefaultFileSystemAdapter() *DefaultFileSystemAdapter {
	return &DefaultFileSystemAdapter{}
}

// Ensure DefaultFileSystemAdapter implements FileSystemAdapter
var _ FileSystemAdapter = (*DefaultFileSystemAdapter)(nil)

// GetFileStats retrieves statistics for a given path, following symlinks.
func (fs *DefaultFileSystemAdapter) GetFileStats(path string) (*FileStats, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("path not found for stats: %s: %w", path, err)
		}
		if os.IsPermission(err) {
			return nil, fmt.Errorf("permission denied getting stats for: %s: %w", path, err)
		}
		return nil, fmt.Errorf("failed to get stats for %s: %w", path, err)
	}

	return &FileStats{
		Size:  info.Size(),
		IsDir: info.IsDir(),
		Mode:  info.Mode().Perm(),
	}, nil
}

// ListDir lists the contents of a directory in the order the file system
// returns them. The order is not sorted and differs between platforms.
func (fs *DefaultFileSystemAdapter) ListDir(path string) ([]DirEntryInfo, error) {
	dir, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("directory not found: %s: %w", path, err)
		}
		if os.IsPermission(err) {
			return nil, fmt.Errorf("permission denied reading directory: %s: %w", path, err)
		}
		return nil, fmt.Errorf("failed to open directory %s: %w", path, err)
	}
	defer dir.Close()

	// ReadDir on an *os.File, unlike os.ReadDir, does not sort.
	entries, err := dir.ReadDir(-1)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", path, err)
	}

	dirEntries := make([]DirEntryInfo, 0, len(entries))
	for _, entry := range entries {
		dirEntries = append(dirEntries, DirEntryInfo{
			Name:     entry.Name(),
			IsDir:    entry.IsDir(),
			IsHidden: IsHiddenName(entry.Name()),
		})
	}
	return dirEntries, nil
}
