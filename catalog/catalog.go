// Package catalog holds the static product catalog and its lookup
// helpers. The catalog is read-only; the cart snapshots the fields it
// needs instead of referencing catalog entries.
package catalog

import (
	"strconv"

	"storefront/domain"
)

// Categories are the browseable product categories, "All" first.
var Categories = []string{
	"All",
	"Electronics",
	"Fashion",
	"Home & Garden",
	"Beauty",
	"Sports",
	"Toys",
	"Books",
	"Other",
}

func price(v float64) *float64 { return &v }

var products = []domain.Product{
	{
		ID:            1,
		Name:          "Wireless Noise-Canceling Headphones",
		Slug:          "wireless-noise-canceling-headphones",
		Description:   "Experience crystal-clear sound with industry-leading noise cancellation technology. Perfect for music lovers and professionals alike.",
		Price:         249.99,
		OriginalPrice: price(299.99),
		Images: []domain.ProductImage{
			{ID: "1-1", URL: "/images/products/irene-kredenets-KStSiM1UvPw-unsplash.jpg", Alt: "Wireless Noise-Canceling Headphones front view"},
			{ID: "1-2", URL: "/images/products/varun-gaba-dcgB3CgidlU-unsplash.jpg", Alt: "Wireless Noise-Canceling Headphones side view"},
		},
		Category:    "Electronics",
		Rating:      4.8,
		ReviewCount: 1245,
		InStock:     true,
		Featured:    true,
		Tags:        []string{"wireless", "bluetooth", "noise-canceling", "audio"},
		Colors:      []string{"black", "silver", "blue"},
	},
	{
		ID:            2,
		Name:          "4K Ultra HD Smart TV",
		Slug:          "4k-ultra-hd-smart-tv",
		Description:   "Stunning 4K resolution with smart features and voice control. Bring the theater experience home.",
		Price:         1299.99,
		OriginalPrice: price(1499.99),
		Images: []domain.ProductImage{
			{ID: "tv-1", URL: "/images/products/paul-gaudriault-a-QH9MAAVNI-unsplash.jpg", Alt: "Large 4K TV mounted on a wall"},
		},
		Category:    "Electronics",
		Rating:      4.8,
		ReviewCount: 278,
		InStock:     true,
		Featured:    true,
		Tags:        []string{"tv", "4k", "smart-tv"},
	},
	{
		ID:            3,
		Name:          "Premium Leather Wallet",
		Slug:          "premium-leather-wallet",
		Description:   "Handcrafted genuine leather wallet with multiple card slots and RFID protection.",
		Price:         49.99,
		OriginalPrice: price(69.99),
		Images: []domain.ProductImage{
			{ID: "wallet-1", URL: "/images/products/mitzie-organics-dnstpPqCBbw-unsplash.jpg", Alt: "Premium Leather Wallet front view"},
			{ID: "wallet-2", URL: "/images/products/varun-gaba-dcgB3CgidlU-unsplash.jpg", Alt: "Premium Leather Wallet open view"},
		},
		Category:    "Fashion",
		Rating:      4.6,
		ReviewCount: 324,
		InStock:     true,
		Tags:        []string{"accessories", "leather", "wallet", "rfid"},
		Colors:      []string{"brown", "black"},
	},
	{
		ID:            4,
		Name:          "Gaming Laptop Pro",
		Slug:          "gaming-laptop-pro",
		Description:   "High-performance gaming laptop with the latest graphics and fast refresh rate display.",
		Price:         1599.99,
		OriginalPrice: price(1799.99),
		Images: []domain.ProductImage{
			{ID: "laptop-1", URL: "/images/products/daniel-korpai-wW7XbWYoqK8-unsplash.jpg", Alt: "Gaming laptop with RGB keyboard"},
		},
		Category:    "Electronics",
		Rating:      4.8,
		ReviewCount: 312,
		InStock:     true,
		Featured:    true,
		Tags:        []string{"gaming", "laptop", "performance"},
	},
	{
		ID:            5,
		Name:          "Wireless Earbuds Pro",
		Slug:          "wireless-earbuds-pro",
		Description:   "Premium sound quality with active noise cancellation and comfortable fit for all-day wear.",
		Price:         179.99,
		OriginalPrice: price(199.99),
		Images: []domain.ProductImage{
			{ID: "earbuds-1", URL: "/images/products/kiran-ck-LSNJ-pltdu8-unsplash.jpg", Alt: "White wireless earbuds in a case"},
		},
		Category:    "Electronics",
		Rating:      4.5,
		ReviewCount: 287,
		InStock:     true,
		Tags:        []string{"wireless", "earbuds", "audio"},
	},
	{
		ID:            6,
		Name:          "Premium Smartphone Pro",
		Slug:          "premium-smartphone-pro",
		Description:   "The latest flagship smartphone with a stunning display and powerful performance.",
		Price:         899.99,
		OriginalPrice: price(999.99),
		Images: []domain.ProductImage{
			{ID: "phone-1", URL: "/images/products/mohammad-metri-E-0ON3VGrBc-unsplash.jpg", Alt: "Black smartphone on a table"},
		},
		Category:    "Electronics",
		Rating:      4.8,
		ReviewCount: 356,
		InStock:     true,
		Featured:    true,
		Tags:        []string{"smartphone", "flagship", "camera"},
	},
	{
		ID:          7,
		Name:        "Yoga Mat",
		Slug:        "yoga-mat",
		Description: "Eco-friendly, non-slip yoga mat with carrying strap. Perfect for all types of yoga and exercises.",
		Price:       39.99,
		Images: []domain.ProductImage{
			{ID: "camera-1", URL: "/images/products/ruslan-bardash-4kTbAMRAHtQ-unsplash.jpg", Alt: "DSLR Camera with lens"},
			{ID: "camera-2", URL: "/images/products/oscar-ivan-esquivel-arteaga-ZtxED1cpB1E-unsplash.jpg", Alt: "DSLR Camera side view"},
		},
		Category:    "Sports",
		Rating:      4.7,
		ReviewCount: 789,
		InStock:     true,
		Tags:        []string{"yoga", "fitness", "exercise", "mat"},
		Colors:      []string{"purple", "blue", "green", "pink"},
	},
	{
		ID:            8,
		Name:          "Bluetooth Speaker",
		Slug:          "bluetooth-speaker",
		Description:   "Portable Bluetooth speaker with 20-hour battery life and waterproof design. Perfect for outdoor adventures.",
		Price:         79.99,
		OriginalPrice: price(99.99),
		Images: []domain.ProductImage{
			{ID: "laptop-1", URL: "/images/products/daniel-korpai-wW7XbWYoqK8-unsplash.jpg", Alt: "Thin and Light Laptop"},
		},
		Category:    "Electronics",
		Rating:      4.5,
		ReviewCount: 256,
		InStock:     true,
		Featured:    true,
		Tags:        []string{"speaker", "bluetooth", "portable", "audio"},
		Colors:      []string{"black", "blue", "red"},
	},
	{
		ID:            9,
		Name:          "Fitness Tracker",
		Slug:          "fitness-tracker",
		Description:   "Track your workouts, heart rate, and sleep patterns with this advanced fitness tracker.",
		Price:         99.99,
		OriginalPrice: price(129.99),
		Images: []domain.ProductImage{
			{ID: "tracker-1", URL: "/images/products/paul-gaudriault-a-QH9MAAVNI-unsplash.jpg", Alt: "Fitness tracker on a wrist"},
			{ID: "watch-1", URL: "/images/products/mohammad-metri-E-0ON3VGrBc-unsplash.jpg", Alt: "Smart Watch on wrist"},
			{ID: "tracker-3", URL: "/images/products/galina-n-miziNqvJx5M-unsplash.jpg", Alt: "Smart Watch display"},
		},
		Category:    "Wearables",
		Rating:      4.4,
		ReviewCount: 312,
		InStock:     true,
		Tags:        []string{"smartwatch", "wearable", "fitness", "tech"},
		Colors:      []string{"black", "silver", "gold"},
	},
}

// Products returns the full catalog in display order.
func Products() []domain.Product {
	out := make([]domain.Product, len(products))
	copy(out, products)
	return out
}

// GetProductBySlug returns the product with the given slug.
func GetProductBySlug(slug string) (domain.Product, error) {
	for _, p := range products {
		if p.Slug == slug {
			return p, nil
		}
	}
	return domain.Product{}, domain.NewProductNotFoundError(slug)
}

// GetProductByID returns the product with the given id.
func GetProductByID(id int) (domain.Product, error) {
	for _, p := range products {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.Product{}, domain.NewProductNotFoundError(strconv.Itoa(id))
}

// GetFeaturedProducts returns up to count featured products.
func GetFeaturedProducts(count int) []domain.Product {
	out := make([]domain.Product, 0, count)
	for _, p := range products {
		if !p.Featured {
			continue
		}
		out = append(out, p)
		if len(out) == count {
			break
		}
	}
	return out
}

// GetRelatedProducts returns up to count products sharing a category or
// tag with the given product, never including the product itself.
func GetRelatedProducts(currentProductID, count int) []domain.Product {
	current, err := GetProductByID(currentProductID)
	if err != nil {
		return nil
	}

	tags := make(map[string]bool, len(current.Tags))
	for _, tag := range current.Tags {
		tags[tag] = true
	}

	out := make([]domain.Product, 0, count)
	for _, p := range products {
		if p.ID == currentProductID {
			continue
		}
		related := p.Category == current.Category
		if !related {
			for _, tag := range p.Tags {
				if tags[tag] {
					related = true
					break
				}
			}
		}
		if related {
			out = append(out, p)
			if len(out) == count {
				break
			}
		}
	}
	return out
}
