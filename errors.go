/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package unitype

import (
	"errors"
	"fmt"
)

// Errors returned when loading, decoding or writing fonts. Returned errors wrap one of these
// and can be tested with errors.Is.
var (
	// ErrInvalidFormat indicates an unrecognized or internally inconsistent sfnt header.
	ErrInvalidFormat = errors.New("invalid sfnt format")

	// ErrTableNotFound indicates a table that is not present in the table directory.
	ErrTableNotFound = errors.New("table not found")

	// ErrInvalidTableData indicates malformed table structure: bad counts, missing sentinels,
	// offsets outside the data, inconsistent array lengths.
	ErrInvalidTableData = errors.New("invalid table data")

	// ErrUnexpectedEndOfData indicates a read beyond the end of the data.
	ErrUnexpectedEndOfData = errors.New("unexpected end of data")

	// ErrInvalidChecksum indicates a checksum verification mismatch.
	ErrInvalidChecksum = errors.New("invalid checksum")

	// ErrUnsupportedFormat indicates recognized but unimplemented data, e.g. CFF outlines,
	// point matching composite glyphs or unsupported cmap subtable formats.
	ErrUnsupportedFormat = errors.New("unsupported format")
)

// TableError wraps an error that occurred while processing the table identified by Tag.
type TableError struct {
	Tag Tag
	Err error
}

func (e *TableError) Error() string {
	return fmt.Sprintf("table %q: %v", e.Tag.String(), e.Err)
}

// Unwrap returns the underlying error.
func (e *TableError) Unwrap() error {
	return e.Err
}

// tableNotFound returns an ErrTableNotFound error with `tag` context.
func tableNotFound(tag Tag) error {
	return &TableError{Tag: tag, Err: ErrTableNotFound}
}

// invalidData returns an ErrInvalidTableData error with a formatted description.
func invalidData(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidTableData, fmt.Sprintf(format, args...))
}

// unsupported returns an ErrUnsupportedFormat error with a formatted description.
func unsupported(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrUnsupportedFormat, fmt.Sprintf(format, args...))
}
