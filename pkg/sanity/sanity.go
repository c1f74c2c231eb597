// SPDX-License-Identifier: Apache-2.0

// Package sanity validates user supplied names and paths before they are
// placed on a command line or handed to the kernel.
package sanity

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/joomcode/errorx"
)

var (
	// shellMetachars contains dangerous shell metacharacters that should be rejected
	shellMetachars = regexp.MustCompile(`[;&|$\x60<>(){}[\]*?~'"\\\s]`)

	// validPathChars allows alphanumeric, forward slash, dash, underscore and dot
	validPathChars = regexp.MustCompile(`^[a-zA-Z0-9/_.\-]+$`)

	// kernel module names as accepted by modprobe; dashes and underscores are interchangeable
	moduleNameChars = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

	// device node names directly under /dev, e.g. cas1-1 or cas_ctrl
	deviceNameChars = regexp.MustCompile(`^[A-Za-z0-9_][A-Za-z0-9_.-]*$`)
)

// ModuleName checks that name is a plain kernel module name.
func ModuleName(name string) error {
	if !moduleNameChars.MatchString(name) {
		return errorx.IllegalArgument.New("invalid kernel module name %q", name).
			WithProperty(errorx.PropertyPayload(), name)
	}
	return nil
}

// DeviceName checks that name can be joined to /dev without escaping it or
// being taken as an option by the probing command.
func DeviceName(name string) error {
	if !deviceNameChars.MatchString(name) {
		return errorx.IllegalArgument.New("invalid device name %q", name).
			WithProperty(errorx.PropertyPayload(), name)
	}
	return nil
}

// SanitizePath validates and sanitizes the given path according to strict security rules.
//
// Specifically, it:
//  1. Requires the input path to be absolute.
//  2. Rejects path traversal attempts (any ".." segment).
//  3. Rejects paths containing shell metacharacters, quotes or whitespace.
//  4. Normalizes the path with filepath.Clean.
//
// Returns the sanitized (cleaned) path, or an error if the input is invalid or unsafe.
func SanitizePath(path string) (string, error) {
	if path == "" {
		return "", errorx.IllegalArgument.New("path cannot be empty")
	}

	if !filepath.IsAbs(path) {
		return "", errorx.IllegalArgument.New("path must be absolute: %s", path)
	}

	// check segments before cleaning, Clean would silently resolve them
	for _, segment := range strings.Split(path, "/") {
		if segment == ".." {
			return "", errorx.IllegalArgument.New("path cannot contain '..' segments: %s", path)
		}
	}

	if shellMetachars.MatchString(path) {
		return "", errorx.IllegalArgument.New("path contains shell metacharacters: %s", path)
	}

	if !validPathChars.MatchString(path) {
		return "", errorx.IllegalArgument.New("path contains invalid characters: %s", path)
	}

	return filepath.Clean(path), nil
}
