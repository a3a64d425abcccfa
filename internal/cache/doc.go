// Package cache provides a generic fixed-capacity LRU cache.
//
//	c := cache.New[text.GlyphID, []glyphfill.PathCommand](512)
//	cmds := c.Add(gid, loaded)
//	cmds, ok := c.Get(gid)
//
// A Cache is safe for concurrent use and must not be copied after creation.
package cache
