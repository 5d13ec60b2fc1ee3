/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package unitype

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
)

// requiredTables are the tables every font must have.
var requiredTables = []Tag{TagCmap, TagHead, TagHhea, TagHmtx, TagMaxp, TagName, TagOS2, TagPost}

// requiredTrueTypeTables are additionally required for fonts with TrueType outlines.
var requiredTrueTypeTables = []Tag{TagGlyf, TagLoca}

// maxUnitsPerEm is the largest unitsPerEm considered usual.
const maxUnitsPerEm = 16384

// ValidationReport lists the problems found in a font. Errors make the font invalid,
// Warnings flag unusual but loadable data.
type ValidationReport struct {
	Errors   []error
	Warnings []error
}

// IsValid returns true if the report has no errors.
func (r *ValidationReport) IsValid() bool {
	return len(r.Errors) == 0
}

// Err returns the report errors joined into one error, nil if there are none.
func (r *ValidationReport) Err() error {
	if len(r.Errors) == 0 {
		return nil
	}
	return errors.Join(r.Errors...)
}

func (r *ValidationReport) addError(err error) {
	logrus.Debugf("Validation error: %v", err)
	r.Errors = append(r.Errors, err)
}

func (r *ValidationReport) addWarning(err error) {
	logrus.Debugf("Validation warning: %v", err)
	r.Warnings = append(r.Warnings, err)
}

// Validate checks the font for missing required tables, checksum mismatches and inconsistent
// table data. Validation does not stop at the first problem.
func (f *Font) Validate() *ValidationReport {
	report := &ValidationReport{}

	logrus.Debugf("Validating font tables")
	for _, tag := range requiredTables {
		if !f.HasTable(tag) {
			report.addError(tableNotFound(tag))
		}
	}
	if f.ot.sfntVersion != sfntVersionCFF {
		for _, tag := range requiredTrueTypeTables {
			if !f.HasTable(tag) {
				report.addError(tableNotFound(tag))
			}
		}
	}

	for _, tr := range f.trec.list {
		b, err := f.trec.tableBytes(f.data, tr.tableTag)
		if err != nil {
			report.addError(err)
			continue
		}
		sum := checksum(b)
		if tr.tableTag == TagHead {
			sum = headChecksum(b)
		}
		if sum != tr.checksum {
			report.addError(&TableError{
				Tag: tr.tableTag,
				Err: fmt.Errorf("%w: computed 0x%08X, recorded 0x%08X", ErrInvalidChecksum, sum, tr.checksum),
			})
		}
	}

	if f.HasTable(TagHead) {
		want, got, err := f.checksumAdjustment()
		switch {
		case err != nil:
			report.addError(err)
		case want != got:
			report.addError(&TableError{
				Tag: TagHead,
				Err: fmt.Errorf("%w: adjustment 0x%08X, expected 0x%08X", ErrInvalidChecksum, got, want),
			})
		}
		f.validateHead(report)
	}

	if f.HasTable(TagLoca) && f.HasTable(TagHead) && f.HasTable(TagMaxp) {
		// Decoding loca checks that the offsets are monotonic.
		loca, err := f.Loca()
		if err != nil {
			report.addError(err)
		} else if glyf, err := f.trec.tableBytes(f.data, TagGlyf); err == nil {
			last := loca.Offsets[len(loca.Offsets)-1]
			if int(last) > len(glyf) {
				report.addError(&TableError{Tag: TagLoca, Err: invalidData("last offset %d beyond glyf (%d bytes)", last, len(glyf))})
			}
		}
	}

	f.validatePost(report)
	return report
}

func (f *Font) validateHead(report *ValidationReport) {
	head, err := f.Head()
	if err != nil {
		// Includes a magic number mismatch.
		report.addError(err)
		return
	}
	if head.UnitsPerEm == 0 || head.UnitsPerEm > maxUnitsPerEm {
		report.addWarning(&TableError{Tag: TagHead, Err: invalidData("unusual unitsPerEm %d", head.UnitsPerEm)})
	}
	if head.IndexToLocFormat != locaFormatShort && head.IndexToLocFormat != locaFormatLong {
		report.addError(&TableError{Tag: TagHead, Err: invalidData("indexToLocFormat %d", head.IndexToLocFormat)})
	}
}

// validatePost warns when the post glyph names do not cover the maxp glyph count.
func (f *Font) validatePost(report *ValidationReport) {
	if !f.HasTable(TagPost) || !f.HasTable(TagMaxp) {
		return
	}
	post, err := f.Post()
	if err != nil {
		report.addError(err)
		return
	}
	maxp, err := f.Maxp()
	if err != nil {
		report.addError(err)
		return
	}
	if post.Version == postVersion20 || post.Version == postVersion25 {
		if len(post.GlyphNames) != int(maxp.NumGlyphs) {
			report.addWarning(&TableError{
				Tag: TagPost,
				Err: invalidData("%d glyph names for %d glyphs", len(post.GlyphNames), maxp.NumGlyphs),
			})
		}
	}
}
