package loom

import (
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"
)

// block is a fixed-size, aligned span of bytes read from a ConstrainedFile.
// len(bytes) <= blockSize; it is only shorter than that when it is the tail
// of the file.
type block struct {
	start Natural
	bytes []byte
}

// BlockCache is a bounded cache of Blocks indexed by their rounded start
// position. Eviction is least-recently-used, delegated to
// github.com/hashicorp/golang-lru/v2 rather than hand-rolled, unlike the
// original C++ implementation's cache, which never implemented eviction at
// all ("TODO: remove badly scoring blocks").
type BlockCache struct {
	blockSize int64
	lru       *lru.Cache[Natural, *block]

	hits   uint64
	misses uint64
}

// NewBlockCache creates a cache of blockSize-byte blocks holding at most
// maxBlocks of them at once.
func NewBlockCache(blockSize int64, maxBlocks int) (*BlockCache, error) {
	if blockSize <= 0 {
		blockSize = DefaultBlockSize
	}
	if maxBlocks <= 0 {
		maxBlocks = DefaultMaxBlockCount
	}
	c, err := lru.New[Natural, *block](maxBlocks)
	if err != nil {
		return nil, err
	}
	return &BlockCache{blockSize: blockSize, lru: c}, nil
}

// RoundDown rounds an absolute (or pre-window-translation natural) position
// down to the nearest block boundary.
func (bc *BlockCache) RoundDown(pos Natural) Natural {
	if pos < 0 {
		return pos
	}
	return pos - pos%bc.blockSize
}

// Lookup returns the cached block starting at rounded, if present.
func (bc *BlockCache) Lookup(rounded Natural) (*block, bool) {
	b, ok := bc.lru.Get(rounded)
	if ok {
		atomic.AddUint64(&bc.hits, 1)
	}
	return b, ok
}

// LoadIfMissing looks up the block at rounded, and if absent asks source
// for up to blockSize bytes there. If source returns zero bytes (rounded is
// at or past the end of the file or window), no block is created and the
// result is absent; this is not an error.
func (bc *BlockCache) LoadIfMissing(rounded Natural, source *ConstrainedFile) (*block, bool, error) {
	if b, ok := bc.Lookup(rounded); ok {
		return b, true, nil
	}
	atomic.AddUint64(&bc.misses, 1)

	data, err := source.ReadBytes(rounded, int(bc.blockSize))
	if err != nil {
		return nil, false, err
	}
	if len(data) == 0 {
		return nil, false, nil
	}

	b := &block{start: rounded, bytes: data}
	bc.lru.Add(rounded, b)
	return b, true, nil
}

// Invalidate drops every cached block. Called whenever the underlying file
// content at existing positions can no longer be trusted, e.g. after a
// save rewrites the backing file.
func (bc *BlockCache) Invalidate() {
	bc.lru.Purge()
}

// Len returns the number of blocks currently cached.
func (bc *BlockCache) Len() int { return bc.lru.Len() }

// CacheStats reports hit/miss counters, mirroring the Stats exposed by
// luhtfiimanal-go-cache-archive's RingBufferCache.
type CacheStats struct {
	Hits     uint64
	Misses   uint64
	HitRatio float64
}

// Stats returns a snapshot of the cache's hit/miss counters.
func (bc *BlockCache) Stats() CacheStats {
	hits := atomic.LoadUint64(&bc.hits)
	misses := atomic.LoadUint64(&bc.misses)
	total := hits + misses
	ratio := 0.0
	if total > 0 {
		ratio = float64(hits) / float64(total) * 100.0
	}
	return CacheStats{Hits: hits, Misses: misses, HitRatio: ratio}
}
