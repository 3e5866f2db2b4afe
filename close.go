package kdgo

// Close releases the tree held by this Store.
//
// Subsequent operations return ErrClosed. Close is idempotent.
func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	s.tree = nil
	s.logger.Debug("store closed")
	return nil
}
