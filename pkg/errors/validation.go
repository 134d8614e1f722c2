package errors

import (
	"path/filepath"
	"strings"
	"unicode"
)

// maxIdentifierLength bounds commit ids and branch names accepted from model files.
const maxIdentifierLength = 256

// ValidateCommitID validates a commit identifier read from a model file.
//
// Commit ids end up as SVG element ids, DOT node names and cache key input, so
// the rules are conservative:
//   - No empty ids
//   - No control characters or whitespace
//   - Maximum length of 256 characters
func ValidateCommitID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidModel, "commit id cannot be empty")
	}
	if len(id) > maxIdentifierLength {
		return New(ErrCodeInvalidModel, "commit id too long (max %d characters)", maxIdentifierLength)
	}
	for _, r := range id {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidModel, "commit id %q contains whitespace or control characters", id)
		}
	}
	return nil
}

// ValidateBranchName validates a branch name. Branch names follow the same
// rules as git ref components: no control characters, no "..", and no
// leading or trailing slash.
func ValidateBranchName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidModel, "branch name cannot be empty")
	}
	if len(name) > maxIdentifierLength {
		return New(ErrCodeInvalidModel, "branch name too long (max %d characters)", maxIdentifierLength)
	}
	for _, r := range name {
		if unicode.IsControl(r) || r == ' ' {
			return New(ErrCodeInvalidModel, "branch name %q contains invalid characters", name)
		}
	}
	if strings.Contains(name, "..") {
		return New(ErrCodeInvalidModel, "branch name %q cannot contain ..", name)
	}
	if strings.HasPrefix(name, "/") || strings.HasSuffix(name, "/") {
		return New(ErrCodeInvalidModel, "branch name %q cannot start or end with /", name)
	}
	return nil
}

// ValidateModelFilename checks that a model file has a supported extension.
func ValidateModelFilename(path string) error {
	if path == "" {
		return New(ErrCodeInvalidInput, "model path cannot be empty")
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml", ".json":
		return nil
	default:
		return New(ErrCodeInvalidFormat, "unsupported model file %q (must be .toml or .json)", filepath.Base(path))
	}
}
