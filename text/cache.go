package text

import (
	"github.com/gogpu/glyphfill"
	"github.com/gogpu/glyphfill/internal/cache"
)

// DefaultCacheCapacity is the number of outlines a CachedFont keeps when
// no capacity is given.
const DefaultCacheCapacity = 512

// CachedFont wraps a Font and keeps the most recently used outlines.
// It is safe for concurrent use if the wrapped Font is.
//
// Cached outlines are shared between callers and must not be modified.
type CachedFont struct {
	Font

	outlines *cache.Cache[GlyphID, []glyphfill.PathCommand]
}

// NewCachedFont wraps f with an LRU outline cache. If capacity <= 0,
// DefaultCacheCapacity is used.
func NewCachedFont(f Font, capacity int) *CachedFont {
	if capacity <= 0 {
		capacity = DefaultCacheCapacity
	}
	return &CachedFont{
		Font:     f,
		outlines: cache.New[GlyphID, []glyphfill.PathCommand](capacity),
	}
}

// Outline returns the cached outline of gid, loading it on a miss.
// Errors are not cached. When two callers load the same glyph concurrently
// both receive the outline stored first.
func (c *CachedFont) Outline(gid GlyphID) ([]glyphfill.PathCommand, error) {
	if cmds, ok := c.outlines.Get(gid); ok {
		return cmds, nil
	}
	cmds, err := c.Font.Outline(gid)
	if err != nil {
		return nil, err
	}
	return c.outlines.Add(gid, cmds), nil
}

// Len returns the number of cached outlines.
func (c *CachedFont) Len() int {
	return c.outlines.Len()
}

// Stats returns the hit and miss counts.
func (c *CachedFont) Stats() (hits, misses uint64) {
	s := c.outlines.Stats()
	return s.Hits, s.Misses
}

// Clear removes all cached outlines.
func (c *CachedFont) Clear() {
	c.outlines.Clear()
}
