package search

import (
	"errors"
	"sort"
	"sync"

	"github.com/katalvlaran/hexnum/hexgrid"
	"github.com/katalvlaran/hexnum/walk"
)

// MemoLookback is how many preceding angles are checked together with a
// candidate doubling.
const MemoLookback = 5

// BadMemo remembers short angle windows that always collide.
//
// A window is the angle run that draws every stroke from the one after the
// retraced stroke up to the colliding one (walk.CollisionError.Window).
// Because the walk is rotation-invariant, such a window collides wherever it
// appears, so skipping a branch that would complete one never loses a
// solution. Only windows ending in a doubling and no longer than
// MemoLookback+1 are kept; those are the ones consulted.
//
// BadMemo is safe for concurrent use.
type BadMemo struct {
	mu      sync.RWMutex
	windows map[string]struct{}
}

// NewBadMemo returns an empty memo.
func NewBadMemo() *BadMemo {
	return &BadMemo{windows: make(map[string]struct{})}
}

// Record stores window if it is one the memo consults. It reports whether
// the window was newly stored.
// Complexity: O(1) amortized.
func (m *BadMemo) Record(window string) bool {
	n := len(window)
	if n == 0 || n > MemoLookback+1 || window[n-1] != byte(hexgrid.LeftBack) {
		return false
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.windows[window]; ok {
		return false
	}
	m.windows[window] = struct{}{}
	return true
}

// Blocks reports whether appending next to signature would complete a
// recorded window within the last MemoLookback angles.
// Complexity: O(MemoLookback).
func (m *BadMemo) Blocks(signature string, next hexgrid.Angle) bool {
	start := len(signature) - MemoLookback
	if start < 0 {
		start = 0
	}
	tail := signature[start:] + string(rune(next))

	m.mu.RLock()
	defer m.mu.RUnlock()
	if len(m.windows) == 0 {
		return false
	}
	for i := 0; i < len(tail); i++ {
		if _, ok := m.windows[tail[i:]]; ok {
			return true
		}
	}
	return false
}

// Len returns the number of recorded windows.
func (m *BadMemo) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.windows)
}

// Windows returns the recorded windows in sorted order.
func (m *BadMemo) Windows() []string {
	m.mu.RLock()
	out := make([]string, 0, len(m.windows))
	for w := range m.windows {
		out = append(out, w)
	}
	m.mu.RUnlock()
	sort.Strings(out)
	return out
}

// Clear forgets every recorded window.
func (m *BadMemo) Clear() {
	m.mu.Lock()
	clear(m.windows)
	m.mu.Unlock()
}

// recordErr stores the window of a collision error, if err carries one.
func (m *BadMemo) recordErr(err error) {
	if m == nil {
		return
	}
	if ce, ok := asCollision(err); ok {
		m.Record(ce.Window)
	}
}

// asCollision unwraps a *walk.CollisionError from err.
func asCollision(err error) (*walk.CollisionError, bool) {
	var ce *walk.CollisionError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}
