/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package unitype

import "encoding/binary"

// checksum returns the sum (mod 2^32) of `data` interpreted as big-endian uint32 words.
// An incomplete trailing word is zero padded.
func checksum(data []byte) uint32 {
	var sum uint32

	n := len(data) &^ 3
	for i := 0; i < n; i += 4 {
		sum += binary.BigEndian.Uint32(data[i : i+4])
	}

	if n < len(data) {
		var tail [4]byte
		copy(tail[:], data[n:])
		sum += binary.BigEndian.Uint32(tail[:])
	}

	return sum
}

// headChecksum returns the checksum of head table data with the checkSumAdjustment field
// treated as zero.
func headChecksum(head []byte) uint32 {
	sum := checksum(head)
	if len(head) >= checksumAdjustmentOffset+4 {
		sum -= binary.BigEndian.Uint32(head[checksumAdjustmentOffset : checksumAdjustmentOffset+4])
	}
	return sum
}

// Checksum returns the sfnt checksum of `data`: the wrapping sum of its big-endian 32-bit words,
// with an incomplete trailing word zero padded.
func Checksum(data []byte) uint32 {
	return checksum(data)
}
