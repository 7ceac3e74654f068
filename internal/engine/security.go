package engine

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// PathValidator confines file operations to the configured document
// directory. The directory is taken as given and is not required to exist;
// validation relaxes until it does.
type PathValidator struct {
	documentDirectory string
}

// NewPathValidator creates a validator rooted at the document directory.
func NewPathValidator(documentDirectory string) (*PathValidator, error) {
	if documentDirectory == "" {
		return nil, fmt.Errorf("document directory cannot be empty")
	}
	return &PathValidator{documentDirectory: documentDirectory}, nil
}

// ValidatePath checks that a path resolves inside the document directory.
func (v *PathValidator) ValidatePath(path string) error {
	if path == "" {
		return fmt.Errorf("path cannot be empty")
	}
	if _, err := os.Stat(v.documentDirectory); os.IsNotExist(err) {
		return nil
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve path: %w", err)
	}

	within, err := v.isWithinDirectory(absPath)
	if err != nil {
		return fmt.Errorf("path validation failed: %w", err)
	}
	if !within {
		return fmt.Errorf("path is outside document directory: %s", path)
	}
	return nil
}

func (v *PathValidator) isWithinDirectory(path string) (bool, error) {
	absDir, err := filepath.Abs(v.documentDirectory)
	if err != nil {
		return false, fmt.Errorf("failed to resolve document directory: %w", err)
	}

	cleanPath := filepath.Clean(path)
	cleanDir := filepath.Clean(absDir)

	// Symlinked paths must resolve inside the directory too.
	realPath := cleanPath
	if info, err := os.Lstat(cleanPath); err == nil && info.Mode()&os.ModeSymlink != 0 {
		if resolved, err := filepath.EvalSymlinks(cleanPath); err == nil {
			realPath = resolved
		}
	}
	realDir := cleanDir
	if resolved, err := filepath.EvalSymlinks(cleanDir); err == nil {
		realDir = resolved
	}

	within := func(p, dir string) bool {
		if p == dir {
			return true
		}
		if !strings.HasSuffix(dir, string(filepath.Separator)) {
			dir += string(filepath.Separator)
		}
		return strings.HasPrefix(p, dir)
	}

	pathOK := within(cleanPath, cleanDir) || within(cleanPath, realDir)
	realOK := within(realPath, cleanDir) || within(realPath, realDir)
	return pathOK && realOK, nil
}

// ValidateDirectory checks that a directory path is inside the document
// directory and, when it exists, actually is a directory.
func (v *PathValidator) ValidateDirectory(dirPath string) error {
	if err := v.ValidatePath(dirPath); err != nil {
		return err
	}
	info, err := os.Stat(dirPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("cannot access directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("path is not a directory: %s", dirPath)
	}
	return nil
}

// NormalizePath resolves a possibly relative path against the document
// directory and validates the result.
func (v *PathValidator) NormalizePath(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("path cannot be empty")
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(v.documentDirectory, path)
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve path: %w", err)
	}
	if err := v.ValidatePath(absPath); err != nil {
		return "", err
	}
	return absPath, nil
}

// DocumentDirectory returns the configured root.
func (v *PathValidator) DocumentDirectory() string {
	return v.documentDirectory
}
