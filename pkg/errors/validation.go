package errors

import (
	"strings"
	"unicode"
)

// ValidateFigureID validates a figure identifier taken from user input
// (command-line argument or URL path segment).
//
// Identifiers are short ASCII tokens such as "3a" or "figure_8_rep": letters,
// digits, '_' and '-' only, at most 64 characters.
func ValidateFigureID(id string) error {
	if id == "" {
		return New(ErrCodeFigureNotFound, "figure id cannot be empty")
	}
	if len(id) > 64 {
		return New(ErrCodeFigureNotFound, "figure id too long (max 64 characters)")
	}
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
		default:
			return New(ErrCodeFigureNotFound, "figure id contains invalid character %q", r)
		}
	}
	return nil
}

// ValidatePath validates a data or output path from configuration.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}
	if len(path) > 4096 {
		return New(ErrCodeInvalidPath, "path too long (max 4096 characters)")
	}
	for _, r := range path {
		if r == 0 || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid control characters")
		}
	}
	return nil
}

// ValidateRelative checks that path stays below the directory it is
// resolved against: it must not be absolute or contain ".." segments.
func ValidateRelative(path string) error {
	if err := ValidatePath(path); err != nil {
		return err
	}
	if strings.HasPrefix(path, "/") || strings.HasPrefix(path, "\\") {
		return New(ErrCodeInvalidPath, "path must be relative")
	}
	for _, seg := range strings.FieldsFunc(path, func(r rune) bool { return r == '/' || r == '\\' }) {
		if seg == ".." {
			return New(ErrCodeInvalidPath, "path must not contain '..'")
		}
	}
	return nil
}
