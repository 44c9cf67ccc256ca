// Package cache provides a generic LRU cache with a soft size limit.
//
// The HTTP service keeps encoded WAV files here, keyed by a digest of the
// rendered pixels, so that repeated sonify requests for the same frame skip
// the synthesis.
//
//	c := cache.New[[32]byte, []byte](64)
//	wav, err := c.GetOrCreate(key, func() ([]byte, error) {
//		return wavio.EncodeBytes(bentpixel.Sonify(pm))
//	})
//
// When the cache grows past its limit, the least recently used quarter is
// evicted in one pass.
//
// # Thread Safety
//
// Cache is safe for concurrent use and must not be copied after creation.
package cache
