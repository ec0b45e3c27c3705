package printify

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"storefront_service/internal/models"
)

// ErrNoData reports a top-level vendor payload without a data array.
// Malformed individual records are dropped, not fatal.
var ErrNoData = errors.New("payload lacks a data array")

// PlaceholderImageSrc substitutes for products the vendor ships without
// any image, keeping the ≥1 image invariant.
const PlaceholderImageSrc = "/images/placeholder-product.png"

// minorUnitsThreshold drives the price-unit heuristic: values above it are
// treated as cents and divided by 100. A genuinely expensive whole-dollar
// item gets misclassified; the vendor payload does not say which unit it
// used, so magnitude is all there is to go on.
const minorUnitsThreshold = 100

type vendorProductsPage struct {
	CurrentPage int                `json:"current_page"`
	Data        *[]json.RawMessage `json:"data"`
	Total       int                `json:"total"`
}

type vendorProduct struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Tags        []string        `json:"tags"`
	Images      []vendorImage   `json:"images"`
	Variants    []vendorVariant `json:"variants"`
}

type vendorImage struct {
	Src       string `json:"src"`
	IsDefault bool   `json:"is_default"`
}

type vendorVariant struct {
	ID        int64   `json:"id"`
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
	IsEnabled bool    `json:"is_enabled"`
}

type vendorShop struct {
	ID           json.Number `json:"id"`
	Title        string      `json:"title"`
	SalesChannel string      `json:"sales_channel"`
	Currency     string      `json:"currency"`
	Country      string      `json:"country"`
	CreatedAt    string      `json:"created_at"`
	UpdatedAt    string      `json:"updated_at"`
}

// NormalizeProducts reshapes a vendor product-list payload into the site's
// product model. Records missing id or title are dropped with a warning;
// the batch continues. Only a payload without a data array fails outright.
func NormalizeProducts(log *slog.Logger, payload []byte) ([]models.Product, error) {
	const op = "printify.NormalizeProducts"

	var page vendorProductsPage
	if err := json.Unmarshal(payload, &page); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if page.Data == nil {
		return nil, fmt.Errorf("%s: %w", op, ErrNoData)
	}

	products := make([]models.Product, 0, len(*page.Data))

	for i, raw := range *page.Data {
		var vp vendorProduct
		if err := json.Unmarshal(raw, &vp); err != nil {
			log.Warn("dropping malformed product record",
				slog.Int("index", i),
				slog.String("error", err.Error()),
			)
			continue
		}

		if vp.ID == "" || vp.Title == "" {
			log.Warn("dropping product without required fields",
				slog.Int("index", i),
				slog.String("id", vp.ID),
			)
			continue
		}

		products = append(products, normalizeProduct(vp))
	}

	return products, nil
}

func normalizeProduct(vp vendorProduct) models.Product {
	tags := make([]string, 0, len(vp.Tags))
	for _, t := range vp.Tags {
		// The synthetic tag is reserved; vendor data must not carry it.
		if t == models.MockDataTag {
			continue
		}
		tags = append(tags, t)
	}

	images := make([]models.ProductImage, 0, len(vp.Images))
	for _, img := range vp.Images {
		if img.Src == "" {
			continue
		}
		images = append(images, models.ProductImage{
			Src:       img.Src,
			IsDefault: img.IsDefault,
			Alt:       vp.Title,
		})
	}
	if len(images) == 0 {
		images = append(images, models.ProductImage{
			Src:       PlaceholderImageSrc,
			IsDefault: true,
			Alt:       vp.Title,
		})
	}

	variants := make([]models.ProductVariant, 0, len(vp.Variants))
	for _, v := range vp.Variants {
		variants = append(variants, models.ProductVariant{
			ID:        v.ID,
			Title:     v.Title,
			Price:     NormalizePrice(v.Price),
			IsEnabled: v.IsEnabled,
		})
	}

	return models.Product{
		ID:          vp.ID,
		Title:       vp.Title,
		Description: vp.Description,
		Tags:        tags,
		Images:      images,
		Variants:    variants,
	}
}

// NormalizePrice converts vendor minor units (cents) to decimal currency.
// Values above the threshold are assumed to be minor units.
func NormalizePrice(price float64) float64 {
	if price > minorUnitsThreshold {
		return math.Round(price) / 100
	}
	return price
}

// NormalizeShop reshapes a single vendor shop payload.
func NormalizeShop(payload []byte) (models.Shop, error) {
	const op = "printify.NormalizeShop"

	var vs vendorShop
	if err := json.Unmarshal(payload, &vs); err != nil {
		return models.Shop{}, fmt.Errorf("%s: %w", op, err)
	}

	return normalizeShop(vs), nil
}

// NormalizeShops reshapes the shop-list payload of /v1/shops.json.
func NormalizeShops(payload []byte) ([]models.Shop, error) {
	const op = "printify.NormalizeShops"

	var raw []vendorShop
	if err := json.Unmarshal(payload, &raw); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	shops := make([]models.Shop, 0, len(raw))
	for _, vs := range raw {
		shops = append(shops, normalizeShop(vs))
	}

	return shops, nil
}

func normalizeShop(vs vendorShop) models.Shop {
	return models.Shop{
		ID:           vs.ID.String(),
		Title:        vs.Title,
		SalesChannel: normalizeSalesChannel(vs.SalesChannel),
		Currency:     vs.Currency,
		Country:      vs.Country,
		CreatedAt:    parseShopTime(vs.CreatedAt),
		UpdatedAt:    parseShopTime(vs.UpdatedAt),
	}
}

func normalizeSalesChannel(raw string) models.SalesChannel {
	switch models.SalesChannel(raw) {
	case models.SalesChannelStorefront,
		models.SalesChannelCustomIntegration,
		models.SalesChannelAPI,
		models.SalesChannelManual:
		return models.SalesChannel(raw)
	}
	return models.SalesChannelCustomIntegration
}

var shopTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05-07:00",
	"2006-01-02 15:04:05",
}

func parseShopTime(raw string) time.Time {
	for _, layout := range shopTimeLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	return time.Time{}
}
