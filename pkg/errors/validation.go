package errors

import (
	"path"
	"strings"
	"unicode"
)

// ValidatePackageName rejects names that cannot be a workspace package.
// It is applied to user input (flags, query parameters), not to manifests.
//
//   - No empty names
//   - No control characters
//   - Maximum length of 214 characters (the npm limit)
func ValidatePackageName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidPackage, "package name cannot be empty")
	}

	if len(name) > 214 {
		return New(ErrCodeInvalidPackage, "package name too long (max 214 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPackage, "package name contains invalid control characters")
		}
	}

	return nil
}

// ValidateGlob checks a workspace member pattern read from a manifest.
// Patterns must be relative and must not climb out of the workspace root.
func ValidateGlob(pattern string) error {
	p := strings.TrimPrefix(pattern, "!")
	if strings.TrimSpace(p) == "" {
		return New(ErrCodeInvalidManifest, "empty workspace pattern")
	}
	if strings.ContainsRune(p, 0) {
		return New(ErrCodeInvalidManifest, "workspace pattern contains a null byte")
	}
	if path.IsAbs(p) || strings.HasPrefix(p, `\`) || (len(p) > 1 && p[1] == ':') {
		return New(ErrCodeInvalidManifest, "workspace pattern must be relative: %q", pattern)
	}
	for _, part := range strings.Split(strings.ReplaceAll(p, `\`, "/"), "/") {
		if part == ".." {
			return New(ErrCodeInvalidManifest, "workspace pattern escapes the root: %q", pattern)
		}
	}
	return nil
}
