package cart

import "sort"

// Selection tracks which cart lines the shopper has marked for checkout.
// It is a plain ID set owned by a single checkout flow; callers mutate it
// from one goroutine only.
type Selection struct {
	ids map[string]struct{}
}

func NewSelection(itemIDs ...string) *Selection {
	s := &Selection{ids: make(map[string]struct{}, len(itemIDs))}
	for _, id := range itemIDs {
		s.ids[id] = struct{}{}
	}
	return s
}

// DefaultSelection selects every item in the cart. Select-all is the
// default policy on first cart load so nothing silently drops out of
// checkout.
func DefaultSelection(items []*CartItem) *Selection {
	s := &Selection{ids: make(map[string]struct{}, len(items))}
	for _, it := range items {
		s.ids[it.ID] = struct{}{}
	}
	return s
}

// Toggle adds or removes one item. Toggling an already-selected item on
// (or an absent one off) is a no-op.
func (s *Selection) Toggle(itemID string, selected bool) {
	if selected {
		s.ids[itemID] = struct{}{}
		return
	}
	delete(s.ids, itemID)
}

// SelectAll replaces the set with the given item IDs.
func (s *Selection) SelectAll(itemIDs []string) {
	s.ids = make(map[string]struct{}, len(itemIDs))
	for _, id := range itemIDs {
		s.ids[id] = struct{}{}
	}
}

// Clear empties the selection.
func (s *Selection) Clear() {
	s.ids = make(map[string]struct{})
}

func (s *Selection) IsSelected(itemID string) bool {
	_, ok := s.ids[itemID]
	return ok
}

func (s *Selection) Len() int {
	return len(s.ids)
}

// IDs returns the selected IDs in a stable order.
func (s *Selection) IDs() []string {
	ids := make([]string, 0, len(s.ids))
	for id := range s.ids {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// SelectedItems filters the cart's items down to the selected ones,
// preserving cart order. Selected IDs that no longer exist in the cart are
// silently dropped; callers detect staleness by comparing the result
// length against Len.
func (s *Selection) SelectedItems(items []*CartItem) []*CartItem {
	selected := make([]*CartItem, 0, len(s.ids))
	for _, it := range items {
		if s.IsSelected(it.ID) {
			selected = append(selected, it)
		}
	}
	return selected
}

// IsStale reports whether any selected ID no longer resolves to a cart item.
func (s *Selection) IsStale(items []*CartItem) bool {
	return len(s.SelectedItems(items)) != s.Len()
}
