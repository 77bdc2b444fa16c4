package errors

import (
	"path/filepath"
	"strings"
	"unicode"
)

// maxNameLength bounds node names so they stay usable as diagram labels.
const maxNameLength = 256

// ValidateNodeName checks a node name after trimming surrounding whitespace.
//
// The rules are:
//   - No empty names
//   - No control characters (newlines would break labels and the TUI prompt)
//   - Maximum length of 256 characters
func ValidateNodeName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return New(ErrCodeValidation, "node name cannot be empty")
	}

	if len(name) > maxNameLength {
		return New(ErrCodeValidation, "node name too long (max %d characters)", maxNameLength)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeValidation, "node name contains invalid control characters")
		}
	}

	return nil
}

// ValidatePath validates a graph file path supplied on the command line.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
//   - Must not name a directory-like target ("." or a trailing separator)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if strings.HasSuffix(path, "/") || strings.HasSuffix(path, string(filepath.Separator)) {
		return New(ErrCodeInvalidPath, "path must name a file, not a directory")
	}
	if base := filepath.Base(path); base == "." || base == ".." {
		return New(ErrCodeInvalidPath, "path must name a file, not a directory")
	}

	return nil
}
