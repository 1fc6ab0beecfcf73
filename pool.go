package membuf

import "sync"

// Pool is the allocation source behind a PooledBuffer. Implementations must
// be safe for concurrent use by multiple buffers across goroutines.
//
// Get returns a slice with len(buf) == size; extra capacity is permitted.
// The contents are not zeroed - callers must treat the slice as dirty.
// Put accepts any slice, including ones not obtained from Get; slices that
// do not fit the pool's sizing are silently dropped.
type Pool interface {
	Get(size int) []byte
	Put(buf []byte)
}

// DefaultPool is the process-wide pool used by New and NewFromBytes.
var DefaultPool Pool = NewBucketPool()

// Size classes for BucketPool. Requests above the largest class fall
// through to plain allocation and are never pooled, so one oversized
// buffer cannot permanently raise the pool's memory footprint.
const (
	minBucketSize = 64
	maxBucketSize = 1 << 20 // 1MB
	bucketCount   = 15      // 64 << 14 == 1MB
)

// BucketPool is a Pool that places byte slices into exponentially sized
// buckets (64B, 128B, ... 1MB), each backed by a sync.Pool. Bucketing keeps
// a returned slice reusable only for requests it can actually satisfy.
type BucketPool struct {
	buckets [bucketCount]sync.Pool
}

// NewBucketPool creates a bucketed pool with empty buckets.
func NewBucketPool() *BucketPool {
	p := &BucketPool{}
	for i := range p.buckets {
		size := minBucketSize << i
		p.buckets[i].New = func() any {
			buf := make([]byte, 0, size)
			return &buf
		}
	}
	return p
}

// Get returns a slice of length size with capacity of at least size.
// Requests larger than the biggest bucket are allocated directly.
// Non-positive sizes return nil.
func (p *BucketPool) Get(size int) []byte {
	if size <= 0 {
		return nil
	}
	if size > maxBucketSize {
		return make([]byte, size)
	}

	idx := getBucket(size)
	buf := *p.buckets[idx].Get().(*[]byte)
	return buf[:size]
}

// Put returns a slice to the bucket its capacity fits. Slices smaller than
// the smallest class or larger than the biggest class are dropped.
func (p *BucketPool) Put(buf []byte) {
	if cap(buf) < minBucketSize || cap(buf) > maxBucketSize {
		return
	}

	idx := putBucket(cap(buf))
	full := buf[:0]
	p.buckets[idx].Put(&full)
}

// getBucket returns the index of the smallest class that can hold size.
// size must be in (0, maxBucketSize].
func getBucket(size int) int {
	idx := 0
	for c := minBucketSize; c < size; c <<= 1 {
		idx++
	}
	return idx
}

// putBucket returns the index of the largest class not exceeding c, so a
// slice stored there always satisfies a Get for that class.
// c must be in [minBucketSize, maxBucketSize].
func putBucket(c int) int {
	idx := 0
	for s := minBucketSize; s<<1 <= c && idx < bucketCount-1; s <<= 1 {
		idx++
	}
	return idx
}

var _ Pool = (*BucketPool)(nil)
