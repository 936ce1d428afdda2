package scene

import "github.com/chazu/closet/pkg/closet"

// Selection highlights at most one separator of a closet at a time.
// Selecting a separator recolors all of its parts; deselecting restores the
// part color.
type Selection struct {
	cl       *closet.Closet
	current  closet.SeparatorID
	normal   closet.Color
	selected closet.Color
}

// NewSelection returns an empty selection over cl using the given part and
// highlight colors.
func NewSelection(cl *closet.Closet, normal, selected closet.Color) *Selection {
	return &Selection{cl: cl, current: closet.NoSeparator, normal: normal, selected: selected}
}

// Current returns the selected separator, or NoSeparator.
func (s *Selection) Current() closet.SeparatorID {
	return s.current
}

// Select highlights separator id, restoring the previous selection.
func (s *Selection) Select(id closet.SeparatorID) error {
	if err := s.cl.RecolorSeparator(id, s.selected); err != nil {
		return err
	}
	if s.current != closet.NoSeparator && s.current != id {
		if err := s.cl.RecolorSeparator(s.current, s.normal); err != nil {
			return err
		}
	}
	s.current = id
	return nil
}

// Next moves the highlight to the following separator, wrapping after the
// last one. With nothing selected it selects the first separator.
func (s *Selection) Next() error {
	n := s.cl.NumSeparators()
	if n == 0 {
		return nil
	}
	next := s.current + 1
	if int(next) >= n {
		next = 0
	}
	return s.Select(next)
}

// Clear removes the highlight.
func (s *Selection) Clear() error {
	if s.current == closet.NoSeparator {
		return nil
	}
	if err := s.cl.RecolorSeparator(s.current, s.normal); err != nil {
		return err
	}
	s.current = closet.NoSeparator
	return nil
}
