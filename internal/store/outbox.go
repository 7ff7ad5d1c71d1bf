package store

func (s *Snapshot) OutboxIndex(id string) int {
	for i, e := range s.Outbox {
		if e.ID == id {
			return i
		}
	}
	return -1
}

// RemoveOutbox drops a delivered event. It reports whether the event existed.
func (s *Snapshot) RemoveOutbox(id string) bool {
	i := s.OutboxIndex(id)
	if i < 0 {
		return false
	}
	s.Outbox = append(s.Outbox[:i], s.Outbox[i+1:]...)
	return true
}
