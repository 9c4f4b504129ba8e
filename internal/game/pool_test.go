package game

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProjectilePool_AcquireInitializes(t *testing.T) {
	pool := NewProjectilePool(4)

	p := pool.Acquire("owner", 10, 20, 0)

	assert.NotEmpty(t, p.ID)
	assert.Equal(t, "owner", p.OwnerID)
	assert.Equal(t, 10.0, p.X)
	assert.Equal(t, 20.0, p.Y)
	assert.InDelta(t, ProjectileSpeed, p.VX, 1e-9)
	assert.InDelta(t, 0, p.VY, 1e-9)
	assert.Equal(t, 0.0, p.Traveled)
	assert.Equal(t, ProjectileMaxDistance, p.MaxDistance)
}

func TestProjectilePool_ReusesReleased(t *testing.T) {
	pool := NewProjectilePool(4)

	first := pool.Acquire("a", 0, 0, 0)
	first.Advance()
	pool.Release(first)

	second := pool.Acquire("b", 5, 5, 0)
	assert.Same(t, first, second)
	assert.Equal(t, "b", second.OwnerID)
	assert.Equal(t, 0.0, second.Traveled, "reused record is fully reset")
	assert.NotEqual(t, "1", second.ID, "reused record gets a fresh id")

	stats := pool.Stats()
	assert.Equal(t, int64(1), stats.Allocated)
	assert.Equal(t, int64(1), stats.Reused)
}

func TestProjectilePool_DropsBeyondCapacity(t *testing.T) {
	pool := NewProjectilePool(2)
	var held []*Projectile
	for range 5 {
		held = append(held, pool.Acquire("a", 0, 0, 0))
	}
	for _, p := range held {
		pool.Release(p)
	}

	assert.Equal(t, 2, pool.Stats().Free)
	pool.Release(nil)
	assert.Equal(t, 2, pool.Stats().Free)
}

func TestProjectilePool_ConcurrentUse(t *testing.T) {
	pool := NewProjectilePool(PoolCapacity)
	var wg sync.WaitGroup
	var mu sync.Mutex
	seen := make(map[string]bool)

	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 200 {
				p := pool.Acquire("a", 0, 0, 0)
				mu.Lock()
				assert.False(t, seen[p.ID], "duplicate id %s", p.ID)
				seen[p.ID] = true
				mu.Unlock()
				pool.Release(p)
			}
		}()
	}
	wg.Wait()

	assert.Len(t, seen, 1600)
	assert.LessOrEqual(t, pool.Stats().Free, PoolCapacity)
}
