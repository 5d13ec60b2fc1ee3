/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package unitype

import (
	"sync"

	"github.com/sirupsen/logrus"
)

// TableCache decodes the tables of a Font once and serves later requests from memory.
// It is safe for concurrent use. Cached tables are shared between callers and must be treated
// as read-only.
type TableCache struct {
	font *Font

	mu     sync.RWMutex
	tables map[Tag]Table
}

// NewTableCache returns an empty cache over `font`.
func NewTableCache(font *Font) *TableCache {
	return &TableCache{
		font:   font,
		tables: map[Tag]Table{},
	}
}

// Font returns the cached font.
func (c *TableCache) Font() *Font {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.font
}

// Get returns the decoded table `tag`, decoding it on first access. Decoding errors are not
// cached.
func (c *TableCache) Get(tag Tag) (Table, error) {
	c.mu.RLock()
	t, ok := c.tables[tag]
	font := c.font
	c.mu.RUnlock()
	if ok {
		return t, nil
	}

	t, err := font.Table(tag)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.font != font {
		// Reset while decoding: do not store a table of the old font.
		return t, nil
	}
	if cached, ok := c.tables[tag]; ok {
		return cached, nil
	}
	logrus.Tracef("Caching %s", tag)
	c.tables[tag] = t
	return t, nil
}

// Invalidate drops the cached table `tag`.
func (c *TableCache) Invalidate(tag Tag) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.tables, tag)
}

// Clear drops all cached tables.
func (c *TableCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tables = map[Tag]Table{}
}

// Reset replaces the cached font with `font` and drops all cached tables.
func (c *TableCache) Reset(font *Font) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.font = font
	c.tables = map[Tag]Table{}
}

// Len returns the number of cached tables.
func (c *TableCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.tables)
}

// Head returns the cached font header table.
func (c *TableCache) Head() (*HeadTable, error) {
	t, err := c.Get(TagHead)
	if err != nil {
		return nil, err
	}
	return t.(*HeadTable), nil
}

// Cmap returns the cached character to glyph mapping table.
func (c *TableCache) Cmap() (*CmapTable, error) {
	t, err := c.Get(TagCmap)
	if err != nil {
		return nil, err
	}
	return t.(*CmapTable), nil
}

// Glyf returns the cached glyph data table.
func (c *TableCache) Glyf() (*GlyfTable, error) {
	t, err := c.Get(TagGlyf)
	if err != nil {
		return nil, err
	}
	return t.(*GlyfTable), nil
}

// GlyphIndex returns the glyph index of `r` from the cached cmap.
func (c *TableCache) GlyphIndex(r rune) (GlyphIndex, error) {
	cmap, err := c.Cmap()
	if err != nil {
		return 0, err
	}
	return cmap.GlyphIndex(r)
}
