package models

type NavGroup struct {
	ID       string `json:"id" db:"id"`
	Name     string `json:"name" db:"name"`
	Slug     string `json:"slug" db:"slug"`
	Position int    `json:"position" db:"position"`
}

type Category struct {
	ID          string  `json:"id" db:"id"`
	GroupID     *string `json:"group_id,omitempty" db:"group_id"`
	Name        string  `json:"name" db:"name"`
	Slug        string  `json:"slug" db:"slug"`
	Description string  `json:"description" db:"description"`
	ImageURL    string  `json:"image_url" db:"image_url"`
	Position    int     `json:"position" db:"position"`
}

type Subcategory struct {
	ID         string `json:"id" db:"id"`
	CategoryID string `json:"category_id" db:"category_id"`
	Name       string `json:"name" db:"name"`
	Slug       string `json:"slug" db:"slug"`
	Position   int    `json:"position" db:"position"`
}

// CategoryNode is a category with its subcategories, as rendered in navigation.
type CategoryNode struct {
	Category
	Subcategories []Subcategory `json:"subcategories"`
}

type GroupNode struct {
	NavGroup
	Categories []CategoryNode `json:"categories"`
}

// Taxonomy is the full navigation tree. Categories without a group are listed under Ungrouped.
type Taxonomy struct {
	Groups    []GroupNode    `json:"groups"`
	Ungrouped []CategoryNode `json:"ungrouped"`
}
