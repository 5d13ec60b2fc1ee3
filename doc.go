/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

// Package unitype supports loading, inspecting and writing TrueType/OpenType (sfnt) font files.
// Tables are decoded on demand from the immutable font data and the font can be serialized back
// with recomputed offsets, table checksums and the head checksum adjustment.
//
// Composite glyphs are decoded as references to other glyphs. Flattening them is done by the
// Resolver, which bounds recursion depth and detects reference cycles. Plain table decoding
// never follows component references.
package unitype
