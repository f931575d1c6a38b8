// Package domain defines core business types for the storefront.
package domain

// ProductImage is a single catalog image reference.
type ProductImage struct {
	ID  string `json:"id"`
	URL string `json:"url"`
	Alt string `json:"alt"`
}

// Product represents a catalog product
type Product struct {
	ID            int            `json:"id"`
	Name          string         `json:"name"`
	Slug          string         `json:"slug"`
	Description   string         `json:"description"`
	Price         float64        `json:"price"`
	OriginalPrice *float64       `json:"originalPrice,omitempty"`
	Images        []ProductImage `json:"images"`
	Category      string         `json:"category"`
	Rating        float64        `json:"rating"`
	ReviewCount   int            `json:"reviewCount"`
	InStock       bool           `json:"inStock"`
	Featured      bool           `json:"featured,omitempty"`
	Tags          []string       `json:"tags,omitempty"`
	Colors        []string       `json:"colors,omitempty"`
}
