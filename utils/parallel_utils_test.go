package utils

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPartitionMap(t *testing.T) {
	{ // Buckets tile [0, MaxIndex) in order and differ in size by at most one
		for _, c := range [][2]int{{1, 7}, {3, 7}, {4, 16}, {5, 103}, {8, 8}, {32, 287}} {
			var (
				pd, K    = c[0], c[1]
				pm       = NewPartitionMap(pd, K)
				next     int
				lo, hi   = K, 0
			)
			for bn := 0; bn < pm.ParallelDegree; bn++ {
				kMin, kMax := pm.GetBucketRange(bn)
				assert.Equal(t, next, kMin)
				next = kMax
				if n := kMax - kMin; n < lo {
					lo = n
				}
				if n := kMax - kMin; n > hi {
					hi = n
				}
			}
			assert.Equal(t, K, next)
			assert.LessOrEqual(t, hi-lo, 1)
		}
		pm := NewPartitionMap(3, 7)
		assert.Equal(t, [][2]int{{0, 3}, {3, 5}, {5, 7}}, pm.Partitions)
	}
	{ // Every element is visited exactly once across the buckets
		var (
			K      = 103
			pm     = NewPartitionMapFor(4, K)
			visits = make([]int, K)
			seen   = make([]bool, pm.ParallelDegree)
			mu     sync.Mutex
		)
		pm.ForEachBucket(func(bn, kMin, kMax int) {
			for k := kMin; k < kMax; k++ {
				visits[k]++
			}
			mu.Lock()
			seen[bn] = true
			mu.Unlock()
		})
		for k := range visits {
			assert.Equal(t, 1, visits[k])
		}
		for bn := range seen {
			assert.True(t, seen[bn])
		}
	}
	{ // Bucket counts are clamped to the work available
		assert.Equal(t, 2, NewPartitionMapFor(8, 2).ParallelDegree)
		assert.Equal(t, 1, NewPartitionMapFor(3, 0).ParallelDegree)
		assert.GreaterOrEqual(t, NewPartitionMapFor(0, 1000).ParallelDegree, 1)
	}
}
