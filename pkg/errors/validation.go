package errors

import (
	"strings"
	"unicode"
)

// ValidateSourceRef validates a layer source reference for safety and
// correctness. Source references are resolved relative to the recipe's
// source directory, so anything that could escape it is rejected.
//
// The validation rules are intentionally conservative:
//   - No empty references
//   - No control characters or null bytes
//   - No absolute paths (must be relative to the source directory)
//   - No path traversal sequences (..)
//   - No backslashes (Windows-style paths)
//   - Maximum length of 500 characters
func ValidateSourceRef(ref string) error {
	if ref == "" {
		return New(ErrCodeInvalidPath, "source reference cannot be empty")
	}

	const maxRefLength = 500
	if len(ref) > maxRefLength {
		return New(ErrCodeInvalidPath, "source reference too long (max %d characters)", maxRefLength)
	}

	for _, r := range ref {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "source reference contains invalid control characters")
		}
	}

	if strings.HasPrefix(ref, "/") {
		return New(ErrCodeInvalidPath, "source reference must be relative, got absolute path: %q", ref)
	}

	dangerousPatterns := []string{
		"..",   // Parent directory
		"\x00", // Null byte
		"\\",   // Backslash (Windows path)
	}
	for _, pattern := range dangerousPatterns {
		if strings.Contains(ref, pattern) {
			return New(ErrCodeInvalidPath, "source reference contains invalid sequence: %q", pattern)
		}
	}

	return nil
}

// ValidateOutputFilename validates an output filename.
// It ensures the filename is a simple basename without path components,
// since the output directory is chosen separately by the caller.
func ValidateOutputFilename(filename string) error {
	if filename == "" {
		return New(ErrCodeInvalidRecipe, "output filename cannot be empty")
	}

	if strings.ContainsAny(filename, "/\\") {
		return New(ErrCodeInvalidRecipe, "output filename cannot contain path separators")
	}

	if strings.HasPrefix(filename, ".") {
		return New(ErrCodeInvalidRecipe, "output filename cannot be a hidden file")
	}

	return nil
}

// ValidateColorName validates a color-name key used in recipes and color
// mappings. Names are plain identifiers; whitespace and control characters
// indicate a mangled recipe or mapping file.
func ValidateColorName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidRecipe, "color name cannot be empty")
	}

	const maxNameLength = 128
	if len(name) > maxNameLength {
		return New(ErrCodeInvalidRecipe, "color name too long (max %d characters)", maxNameLength)
	}

	for _, r := range name {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidRecipe, "color name %q contains whitespace or control characters", name)
		}
	}

	return nil
}
