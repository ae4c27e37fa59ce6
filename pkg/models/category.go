package models

// Category groups assets by name. Assets reference categories by name, not by
// id, so renaming a category does not cascade to its assets.
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func (c Category) IsValid() bool {
	return c.ID != 0 && c.Name != ""
}
