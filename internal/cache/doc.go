// Package cache provides the bounded LRU cache used to memoise extracted
// tile images.
//
//	c := cache.New[uint32, *pixmap.Pixmap](256)
//	img, err := c.GetOrCreate(id, func() (*pixmap.Pixmap, error) {
//	    return extract(id)
//	})
//
// Cache is safe for concurrent use and must not be copied after creation.
// Hit and miss counters are atomic so Stats never blocks writers for long.
// GetOrCreate builds different keys concurrently and deduplicates builds of
// the same key.
package cache
