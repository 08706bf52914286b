package patterncache

// Writes reports how many times the file was rewritten.
func (s *TextStore) Writes() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.writes
}

const FlushEvery = flushEvery
