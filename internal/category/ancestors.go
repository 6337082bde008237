package category

// maxAncestorDepth bounds the parent walk. Malformed or cyclic parent
// data truncates silently instead of looping forever.
const maxAncestorDepth = 10

// AncestorsOf walks parent references upward from the given category and
// returns the ancestor IDs nearest-first. The starting category itself is
// not included. The walk stops at a root, at a parent ID that does not
// resolve in the map, or at the depth cap, whichever comes first.
func AncestorsOf(categoryID string, categories map[string]*Category) []string {
	ancestors := []string{}

	current, ok := categories[categoryID]
	if !ok {
		return ancestors
	}

	for i := 0; i < maxAncestorDepth; i++ {
		if current.ParentID == nil {
			break
		}
		parent, ok := categories[*current.ParentID]
		if !ok {
			break
		}
		ancestors = append(ancestors, parent.ID)
		current = parent
	}

	return ancestors
}
