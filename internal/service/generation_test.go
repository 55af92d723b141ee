package service

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerationDiscardsSupersededWork(t *testing.T) {
	var g Generation

	tag := g.Current()
	assert.False(t, g.Stale(tag))

	next := g.Bump()
	assert.True(t, g.Stale(tag))
	assert.False(t, g.Stale(next))
	assert.Equal(t, next, g.Current())
}

func TestGenerationConcurrentBumps(t *testing.T) {
	var g Generation
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			g.Bump()
		}()
	}
	wg.Wait()
	assert.Equal(t, uint64(50), g.Current())
}
