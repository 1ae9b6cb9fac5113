package service

import (
	"fmt"
	"log"

	"portfolio-server/internal/config"
	"portfolio-server/internal/errors"
	"portfolio-server/internal/filesystem"
	"portfolio-server/internal/models"

	"github.com/samber/lo"
)

// ListingService defines the interface for the directory listing API.
type ListingService interface {
	ListDir(req models.ListDirRequest) (*models.ListingResult, *errors.ListingError)
}

// DefaultListingService implements ListingService over a FileSystemAdapter.
// It holds no mutable state and is safe for concurrent use.
type DefaultListingService struct {
	fsAdapter filesystem.FileSystemAdapter
	rootDir   string
}

// NewDefaultListingService creates a new DefaultListingService rooted at
// cfg.RootDirectory. The configuration is expected to be validated already.
func NewDefaultListingService(fs filesystem.FileSystemAdapter, cfg *config.Config) (*DefaultListingService, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration is required")
	}
	if fs == nil {
		return nil, fmt.Errorf("filesystem adapter is required")
	}
	if cfg.RootDirectory == "" {
		return nil, fmt.Errorf("root directory is required")
	}

	return &DefaultListingService{
		fsAdapter: fs,
		rootDir:   cfg.RootDirectory,
	}, nil
}

// RootDirectory returns the directory listings are resolved against.
func (s *DefaultListingService) RootDirectory() string {
	return s.rootDir
}

// ListDir lists the non-hidden entries of req.Path, files and directories
// alike. A path escaping the root is rejected before the file system is
// touched; a missing path or a regular file yields a not-found error.
func (s *DefaultListingService) ListDir(req models.ListDirRequest) (*models.ListingResult, *errors.ListingError) {
	fullPath, ok := filesystem.ResolvePath(s.rootDir, req.Path)
	if !ok {
		return nil, errors.NewForbiddenError(req.Path)
	}

	// Any stat failure counts as "not a directory", including permission errors.
	stats, err := s.fsAdapter.GetFileStats(fullPath)
	if err != nil || !stats.IsDir {
		return nil, errors.NewDirectoryNotFoundError(req.Path)
	}

	entries, err := s.fsAdapter.ListDir(fullPath)
	if err != nil {
		log.Printf("Error listing directory %s: %v", fullPath, err)
		return nil, errors.NewInternalError(req.Path, err)
	}

	visible := lo.Filter(entries, func(entry filesystem.DirEntryInfo, _ int) bool {
		return !entry.IsHidden
	})
	files := lo.Map(visible, func(entry filesystem.DirEntryInfo, _ int) string {
		return entry.Name
	})

	return &models.ListingResult{Files: files}, nil
}
