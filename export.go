/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package unitype

import (
	"io"
	"os"

	"golang.org/x/exp/slices"
)

// ParseOptions configures how a font is loaded. The zero value is the default.
type ParseOptions struct {
	// VerifyChecksums verifies each table checksum and the whole-file checksum adjustment on
	// load. A mismatch fails with ErrInvalidChecksum.
	VerifyChecksums bool
}

// Parse parses the sfnt font in `data` and returns a new Font. The Font keeps its own copy of
// `data`.
func Parse(data []byte) (*Font, error) {
	return ParseWithOptions(data, ParseOptions{})
}

// ParseWithOptions parses the sfnt font in `data` according to `opts`.
func ParseWithOptions(data []byte, opts ParseOptions) (*Font, error) {
	return parseFont(slices.Clone(data), opts)
}

// ParseReader reads all of `r` and parses it as an sfnt font.
func ParseReader(r io.Reader) (*Font, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return parseFont(data, ParseOptions{})
}

// ParseFile parses the truetype font from file given by path.
func ParseFile(filePath string) (*Font, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return ParseReader(f)
}

// ValidateFile validates the truetype font given by `filePath`. Returns nil if the font has no
// validation errors. Warnings do not fail validation.
func ValidateFile(filePath string) error {
	fnt, err := ParseFile(filePath)
	if err != nil {
		return err
	}
	return fnt.Validate().Err()
}
