// Package search_test verifies that one Engine serves concurrent callers.
package search_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/hexnum/search"
	"github.com/katalvlaran/hexnum/walk"
)

// TestConcurrentGenerate shares one engine, memo and cache across goroutines.
func TestConcurrentGenerate(t *testing.T) {
	e := search.NewEngine(search.WithSeed(17))
	const workers = 16
	targets := []float64{3, 97, 1024, -5555, 31_337, 999_999, -123_456, 42}

	type result struct {
		target float64
		path   walk.Path
		err    error
	}
	results := make(chan result, workers*len(targets))

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func(offset int) {
			defer wg.Done()
			for i := range targets {
				target := targets[(i+offset)%len(targets)]
				p, err := e.Generate(context.Background(), target)
				results <- result{target, p, err}
			}
		}(w)
	}
	wg.Wait()
	close(results)

	for r := range results {
		require.NoError(t, r.err, "target %v", r.target)
		requirePattern(t, r.path, r.target)
	}
	require.Equal(t, len(targets), e.Stats().CachedPatterns)
}

// TestConcurrentReset races Reset against Generate.
func TestConcurrentReset(t *testing.T) {
	e := search.NewEngine()
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 1; i <= 50; i++ {
			_, err := e.Generate(context.Background(), float64(i*37))
			require.NoError(t, err)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 50; i++ {
			e.Reset()
			_ = e.Stats()
		}
	}()
	wg.Wait()
}
