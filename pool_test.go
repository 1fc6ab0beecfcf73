package membuf

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBucketPoolGet(t *testing.T) {
	tests := []struct {
		name        string
		size        int
		checkMinCap int
	}{
		{
			name:        "below smallest class",
			size:        10,
			checkMinCap: 10,
		},
		{
			name:        "exact class size",
			size:        4096,
			checkMinCap: 4096,
		},
		{
			name:        "between classes",
			size:        5000,
			checkMinCap: 5000,
		},
		{
			name:        "largest class",
			size:        maxBucketSize,
			checkMinCap: maxBucketSize,
		},
		{
			name:        "larger than largest class",
			size:        maxBucketSize + 1,
			checkMinCap: maxBucketSize + 1,
		},
	}

	pool := NewBucketPool()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := pool.Get(tt.size)
			require.NotNil(t, buf)
			require.Equal(t, tt.size, len(buf), "buffer length should match requested size")
			require.GreaterOrEqual(t, cap(buf), tt.checkMinCap, "buffer capacity should be at least requested size")

			pool.Put(buf)
		})
	}
}

func TestBucketPoolGetNonPositive(t *testing.T) {
	pool := NewBucketPool()
	require.Nil(t, pool.Get(0))
	require.Nil(t, pool.Get(-5))
}

func TestBucketPoolReuse(t *testing.T) {
	pool := NewBucketPool()

	buf1 := pool.Get(2048)
	require.Equal(t, 2048, len(buf1))

	// Mark the buffer before returning it.
	buf1[0] = 0xAB
	buf1[2047] = 0xCD

	pool.Put(buf1)

	// A follow-up request of the same class is satisfiable from the pool.
	buf2 := pool.Get(2048)
	require.Equal(t, 2048, len(buf2))
	require.GreaterOrEqual(t, cap(buf2), 2048)

	pool.Put(buf2)
}

func TestBucketPoolPutForeignSlice(t *testing.T) {
	pool := NewBucketPool()

	// Slices not obtained from Get are adopted into their size class.
	pool.Put(make([]byte, 512))

	// Undersized and oversized slices are silently dropped.
	pool.Put(make([]byte, 8))
	pool.Put(make([]byte, maxBucketSize*2))
	pool.Put(nil)

	buf := pool.Get(512)
	require.Equal(t, 512, len(buf))
	pool.Put(buf)
}

func TestBucketIndexing(t *testing.T) {
	tests := []struct {
		size    int
		wantGet int
	}{
		{size: 1, wantGet: 0},
		{size: 64, wantGet: 0},
		{size: 65, wantGet: 1},
		{size: 128, wantGet: 1},
		{size: 4096, wantGet: 6},
		{size: maxBucketSize, wantGet: bucketCount - 1},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("size_%d", tt.size), func(t *testing.T) {
			idx := getBucket(tt.size)
			require.Equal(t, tt.wantGet, idx)
			require.GreaterOrEqual(t, minBucketSize<<idx, tt.size, "class must hold the requested size")
		})
	}

	// putBucket picks the largest class a capacity can satisfy.
	require.Equal(t, 0, putBucket(64))
	require.Equal(t, 0, putBucket(127))
	require.Equal(t, 1, putBucket(128))
	require.Equal(t, bucketCount-1, putBucket(maxBucketSize))
}

func TestBucketPoolConcurrency(t *testing.T) {
	const goroutines = 10
	const iterations = 100

	pool := NewBucketPool()
	done := make(chan bool, goroutines)

	for g := 0; g < goroutines; g++ {
		go func() {
			for i := 0; i < iterations; i++ {
				size := 1024 + (i % 4096)
				buf := pool.Get(size)
				if len(buf) != size {
					t.Errorf("got length %d, want %d", len(buf), size)
				}

				// Do some work with the buffer.
				for j := 0; j < len(buf); j++ {
					buf[j] = byte(j)
				}

				pool.Put(buf)
			}
			done <- true
		}()
	}

	for g := 0; g < goroutines; g++ {
		<-done
	}
}

func BenchmarkBucketPoolGet(b *testing.B) {
	sizes := []int{512, 1024, 4096, 8192}
	pool := NewBucketPool()

	for _, size := range sizes {
		b.Run(fmt.Sprintf("size_%d", size), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				buf := pool.Get(size)
				pool.Put(buf)
			}
		})
	}
}

func BenchmarkBucketPoolGetNoPool(b *testing.B) {
	sizes := []int{512, 1024, 4096, 8192}

	for _, size := range sizes {
		b.Run(fmt.Sprintf("size_%d", size), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				_ = make([]byte, size)
			}
		})
	}
}
