/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package unitype

import "errors"

var (
	errTypeCheck     = errors.New("type check error")
	errRangeCheck    = errors.New("range check error")
	errRequiredField = errors.New("required field missing")
)

const (
	// scaler types (sfnt versions).
	sfntVersionTrueType uint32 = 0x00010000
	sfntVersionApple    uint32 = 0x74727565 // 'true'
	sfntVersionCFF      uint32 = 0x4F54544F // 'OTTO'

	// headMagicNumber is the fixed value of head.magicNumber.
	headMagicNumber uint32 = 0x5F0F3CF5

	// checksumAdjustmentBase is the value the whole file word-sum must equal after adjustment.
	checksumAdjustmentBase uint32 = 0xB1B0AFBA

	// checksumAdjustmentOffset is the offset of checkSumAdjustment within the head table.
	checksumAdjustmentOffset = 8

	offsetTableSize = 12
	tableRecordSize = 16
)
