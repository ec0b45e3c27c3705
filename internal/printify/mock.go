package printify

import (
	"time"

	"storefront_service/internal/models"
)

// MockShopTitle names the synthetic shop shown while live data is
// unavailable.
const MockShopTitle = "Sample Storefront (Mock)"

// MockShop produces the synthetic shop matching the mock catalog. The id is
// whatever shop the caller asked for, so the envelope stays consistent.
func MockShop(shopID string) models.Shop {
	created := time.Date(2024, time.January, 15, 12, 0, 0, 0, time.UTC)
	return models.Shop{
		ID:           shopID,
		Title:        MockShopTitle,
		SalesChannel: models.SalesChannelCustomIntegration,
		Currency:     "USD",
		Country:      "US",
		CreatedAt:    created,
		UpdatedAt:    created,
	}
}

// MockProducts returns the fixed five-item sample catalog. Output is static
// per call so repeated fallbacks are stable for debugging. Every entry
// carries the reserved synthetic tag.
func MockProducts() []models.Product {
	return []models.Product{
		{
			ID:          "mock-classic-tee",
			Title:       "Democracy Classic Tee",
			Description: "Soft unisex cotton tee with the Democracy First print. Sample item shown while the live catalog is unavailable.",
			Tags:        []string{models.MockDataTag, "apparel", "tees"},
			Images: []models.ProductImage{
				{Src: "/images/mock/classic-tee.png", IsDefault: true, Alt: "Democracy Classic Tee"},
			},
			Variants: []models.ProductVariant{
				{ID: 1001, Title: "S / Navy", Price: 24.99, IsEnabled: true},
				{ID: 1002, Title: "M / Navy", Price: 24.99, IsEnabled: true},
				{ID: 1003, Title: "L / Navy", Price: 26.99, IsEnabled: true},
			},
		},
		{
			ID:          "mock-vote-mug",
			Title:       "Vote Every Time Mug",
			Description: "11oz ceramic mug, dishwasher safe. Sample item shown while the live catalog is unavailable.",
			Tags:        []string{models.MockDataTag, "drinkware", "mugs"},
			Images: []models.ProductImage{
				{Src: "/images/mock/vote-mug.png", IsDefault: true, Alt: "Vote Every Time Mug"},
			},
			Variants: []models.ProductVariant{
				{ID: 2001, Title: "11oz", Price: 14.99, IsEnabled: true},
				{ID: 2002, Title: "15oz", Price: 17.99, IsEnabled: true},
			},
		},
		{
			ID:          "mock-sticker-pack",
			Title:       "Resist Sticker Pack",
			Description: "Weatherproof vinyl sticker set, pack of five. Sample item shown while the live catalog is unavailable.",
			Tags:        []string{models.MockDataTag, "stickers"},
			Images: []models.ProductImage{
				{Src: "/images/mock/sticker-pack.png", IsDefault: true, Alt: "Resist Sticker Pack"},
			},
			Variants: []models.ProductVariant{
				{ID: 3001, Title: "Pack of 5", Price: 9.99, IsEnabled: true},
			},
		},
		{
			ID:          "mock-dad-hat",
			Title:       "No Way Dad Hat",
			Description: "Adjustable embroidered dad hat. Sample item shown while the live catalog is unavailable.",
			Tags:        []string{models.MockDataTag, "apparel", "hats"},
			Images: []models.ProductImage{
				{Src: "/images/mock/dad-hat.png", IsDefault: true, Alt: "No Way Dad Hat"},
			},
			Variants: []models.ProductVariant{
				{ID: 4001, Title: "One Size / Black", Price: 22.99, IsEnabled: true},
				{ID: 4002, Title: "One Size / Khaki", Price: 22.99, IsEnabled: false},
			},
		},
		{
			ID:          "mock-tote-bag",
			Title:       "Facts Matter Tote Bag",
			Description: "Heavy canvas tote with reinforced handles. Sample item shown while the live catalog is unavailable.",
			Tags:        []string{models.MockDataTag, "bags"},
			Images: []models.ProductImage{
				{Src: "/images/mock/tote-bag.png", IsDefault: true, Alt: "Facts Matter Tote Bag"},
			},
			Variants: []models.ProductVariant{
				{ID: 5001, Title: "Natural", Price: 19.99, IsEnabled: true},
			},
		},
	}
}
