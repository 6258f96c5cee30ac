package oaserrors

import (
	"errors"
	"fmt"
	"testing"
)

func TestSelectorErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
		message  string
	}{
		{
			name:     "unknown limb",
			err:      &UnknownLimbError{Limb: "pets"},
			sentinel: ErrUnknownLimb,
			message:  `no operation, path or tag matches limb "pets"`,
		},
		{
			name:     "unknown path",
			err:      &UnknownPathError{Path: "/nope"},
			sentinel: ErrUnknownPath,
			message:  `unknown path "/nope"`,
		},
		{
			name:     "no operation for tag",
			err:      &NoOperationForTagError{Tag: "store"},
			sentinel: ErrNoOperationForTag,
			message:  `no operation for tag "store"`,
		},
		{
			name:     "invalid anchor",
			err:      &InvalidAnchorError{Anchor: "a#b", Message: "must not contain '#'"},
			sentinel: ErrInvalidAnchor,
			message:  `invalid anchor "a#b": must not contain '#'`,
		},
		{
			name:     "unsupported format",
			err:      &UnsupportedFormatError{Format: "xml"},
			sentinel: ErrUnsupportedFormat,
			message:  `unsupported format "xml" (expected json or yaml)`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.message {
				t.Errorf("Error() = %q, want %q", got, tt.message)
			}
			if !errors.Is(tt.err, tt.sentinel) {
				t.Errorf("errors.Is(%T, sentinel) = false", tt.err)
			}
			wrapped := fmt.Errorf("subset: %w", tt.err)
			if !errors.Is(wrapped, tt.sentinel) {
				t.Error("sentinel should match through wrapping")
			}
			if errors.Is(tt.err, ErrReference) {
				t.Error("selector errors must not match ErrReference")
			}
		})
	}
}

func TestParseError(t *testing.T) {
	t.Run("Error message with all fields", func(t *testing.T) {
		cause := errors.New("underlying error")
		err := &ParseError{
			Path:    "/path/to/file.yaml",
			Line:    42,
			Column:  10,
			Message: "invalid syntax",
			Cause:   cause,
		}

		msg := err.Error()
		if msg != "parse error in /path/to/file.yaml at line 42, column 10: invalid syntax: underlying error" {
			t.Errorf("unexpected error message: %s", msg)
		}
	})

	t.Run("Error message with minimal fields", func(t *testing.T) {
		err := &ParseError{}
		if err.Error() != "parse error" {
			t.Errorf("unexpected error message: %s", err.Error())
		}
	})

	t.Run("Unwrap returns cause", func(t *testing.T) {
		cause := errors.New("underlying")
		err := &ParseError{Cause: cause}
		//nolint:errorlint // testing pointer identity
		if unwrapped := err.Unwrap(); unwrapped != cause {
			t.Error("Unwrap should return cause")
		}
	})

	t.Run("Is matches ErrParse only", func(t *testing.T) {
		err := &ParseError{}
		if !errors.Is(err, ErrParse) {
			t.Error("ParseError should match ErrParse")
		}
		if errors.Is(err, ErrReference) {
			t.Error("ParseError should not match ErrReference")
		}
	})
}

func TestReferenceError(t *testing.T) {
	t.Run("dangling pointer", func(t *testing.T) {
		err := &ReferenceError{Ref: "parent.json#/definitions/Missing", File: "parent.json", Message: "missing key: Missing"}
		want := "reference error: parent.json#/definitions/Missing: missing key: Missing"
		if err.Error() != want {
			t.Errorf("Error() = %q, want %q", err.Error(), want)
		}
		if !errors.Is(err, ErrReference) {
			t.Error("should match ErrReference")
		}
		if errors.Is(err, ErrCircularReference) {
			t.Error("should not match ErrCircularReference")
		}
	})

	t.Run("circular", func(t *testing.T) {
		err := &ReferenceError{Ref: "#/definitions/Node", IsCircular: true}
		if err.Error() != "circular reference: #/definitions/Node" {
			t.Errorf("unexpected message: %s", err.Error())
		}
		if !errors.Is(err, ErrCircularReference) || !errors.Is(err, ErrReference) {
			t.Error("circular error should match both sentinels")
		}
	})

	t.Run("path traversal", func(t *testing.T) {
		err := &ReferenceError{Ref: "../../etc/passwd#/x", IsPathTraversal: true}
		if !errors.Is(err, ErrPathTraversal) {
			t.Error("should match ErrPathTraversal")
		}
	})

	t.Run("cause chain", func(t *testing.T) {
		cause := errors.New("connection refused")
		err := &ReferenceError{Ref: "https://example.com/api.yaml#/definitions/Pet", Cause: cause}
		if !errors.Is(err, cause) {
			t.Error("cause should be reachable through Unwrap")
		}
	})
}

func TestResourceLimitError(t *testing.T) {
	err := &ResourceLimitError{ResourceType: "ref_depth", Limit: 100, Actual: 101, Message: "structure too deeply nested"}
	want := "resource limit exceeded: ref_depth (limit: 100, actual: 101): structure too deeply nested"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
	if !errors.Is(err, ErrResourceLimit) {
		t.Error("should match ErrResourceLimit")
	}
}

func TestConfigError(t *testing.T) {
	cause := errors.New("bad value")
	err := &ConfigError{Option: "notag-name", Value: "", Message: "must not be empty", Cause: cause}
	if !errors.Is(err, ErrConfig) {
		t.Error("should match ErrConfig")
	}
	if !errors.Is(err, cause) {
		t.Error("should unwrap to cause")
	}
	var target *ConfigError
	if !errors.As(fmt.Errorf("wrap: %w", err), &target) || target.Option != "notag-name" {
		t.Error("errors.As should extract ConfigError")
	}
}
