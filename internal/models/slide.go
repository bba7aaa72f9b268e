package models

// Slide is one entry of the storefront homepage carousel.
type Slide struct {
	ID       string `json:"id" db:"id"`
	Title    string `json:"title" db:"title"`
	Subtitle string `json:"subtitle" db:"subtitle"`
	ImageURL string `json:"image_url" db:"image_url"`
	LinkURL  string `json:"link_url" db:"link_url"`
	Position int    `json:"position" db:"position"`
	Active   bool   `json:"active" db:"active"`
}
