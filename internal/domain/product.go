package domain

// Product is a catalog record. Prices are in minor currency units.
type Product struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Slug        string  `json:"slug"`
	Price       int64   `json:"price"`
	ImageURL    string  `json:"image_url,omitempty"`
	Brand       string  `json:"brand"`
	Category    string  `json:"category"`
	Rating      float64 `json:"rating"`
	Details     string  `json:"details,omitempty"`
	Description string  `json:"description,omitempty"`
}
