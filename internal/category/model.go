package category

type Category struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	ParentID *string `json:"parentID"`
	Active   bool    `json:"active"`
}

// BuildMap indexes a flat category list by ID for ancestor lookups.
func BuildMap(categories []*Category) map[string]*Category {
	m := make(map[string]*Category, len(categories))
	for _, c := range categories {
		m[c.ID] = c
	}
	return m
}
