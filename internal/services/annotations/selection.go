package annotations

// Selection state for bulk operations. The selected list holds annotation
// IDs; editing needs exactly one, deleting at least one.

// SelectAnnotation adds an ID to the selection if not already present.
func (s *ServiceImpl) SelectAnnotation(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isSelectedLocked(id) {
		s.selected = append(s.selected, id)
	}
}

// DeselectAnnotation removes an ID from the selection.
func (s *ServiceImpl) DeselectAnnotation(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.selected[:0]
	for _, selected := range s.selected {
		if selected != id {
			kept = append(kept, selected)
		}
	}
	s.selected = kept
}

// ToggleSelection flips one ID's selection state.
func (s *ServiceImpl) ToggleSelection(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isSelectedLocked(id) {
		kept := s.selected[:0]
		for _, selected := range s.selected {
			if selected != id {
				kept = append(kept, selected)
			}
		}
		s.selected = kept
		return
	}
	s.selected = append(s.selected, id)
}

// SelectAll selects every loaded annotation.
func (s *ServiceImpl) SelectAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.selected = s.selected[:0]
	for i := range s.annotations {
		s.selected = append(s.selected, s.annotations[i].ID)
	}
}

// ClearSelection empties the selection.
func (s *ServiceImpl) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.selected = nil
}

// SelectedAnnotations returns a copy of the selected ID list.
func (s *ServiceImpl) SelectedAnnotations() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]string(nil), s.selected...)
}

// CanEdit is true iff exactly one annotation is selected.
func (s *ServiceImpl) CanEdit() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.selected) == 1
}

// CanDelete is true iff at least one annotation is selected.
func (s *ServiceImpl) CanDelete() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.selected) > 0
}

func (s *ServiceImpl) isSelectedLocked(id string) bool {
	for _, selected := range s.selected {
		if selected == id {
			return true
		}
	}
	return false
}
