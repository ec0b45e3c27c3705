package models

import "time"

// MockDataTag is the reserved tag marking synthetic catalog entries.
// It never appears on products normalized from live vendor data.
const MockDataTag = "mock-data"

type Product struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Tags        []string         `json:"tags"`
	Images      []ProductImage   `json:"images"`
	Variants    []ProductVariant `json:"variants"`
}

type ProductImage struct {
	Src       string `json:"src"`
	IsDefault bool   `json:"is_default"`
	Alt       string `json:"alt,omitempty"`
}

type ProductVariant struct {
	ID        int64   `json:"id"`
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
	IsEnabled bool    `json:"is_enabled"`
}

// IsMock reports whether the product carries the reserved synthetic tag.
func (p Product) IsMock() bool {
	for _, t := range p.Tags {
		if t == MockDataTag {
			return true
		}
	}
	return false
}

type SalesChannel string

const (
	SalesChannelStorefront        SalesChannel = "storefront"
	SalesChannelCustomIntegration SalesChannel = "custom_integration"
	SalesChannelAPI               SalesChannel = "api"
	SalesChannelManual            SalesChannel = "manual"
)

type Shop struct {
	ID           string       `json:"id"`
	Title        string       `json:"title"`
	SalesChannel SalesChannel `json:"sales_channel"`
	Currency     string       `json:"currency,omitempty"`
	Country      string       `json:"country,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// FetchEnvelope is the uniform contract internal routes return to pages.
// Vendor-side failures never surface as HTTP errors: the envelope always
// carries data, with provenance flags telling mock from real.
type FetchEnvelope struct {
	Data            []Product `json:"data"`
	IsMockData      bool      `json:"isMockData"`
	RealDataSource  bool      `json:"realDataSource"`
	ShopID          string    `json:"shopId"`
	ShopTitle       string    `json:"shopTitle"`
	Error           string    `json:"error,omitempty"`
	FallbackReason  string    `json:"fallbackReason,omitempty"`
	APICallDuration int64     `json:"apiCallDuration"`
	Timestamp       string    `json:"timestamp"`
}

type Article struct {
	Source      string    `json:"source"`
	Author      string    `json:"author,omitempty"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	URL         string    `json:"url"`
	ImageURL    string    `json:"image_url,omitempty"`
	PublishedAt time.Time `json:"published_at"`
}

type StockQuote struct {
	Symbol        string    `json:"symbol"`
	Name          string    `json:"name"`
	Price         float64   `json:"price"`
	ChangePercent float64   `json:"change_percent"`
	UpdatedAt     time.Time `json:"updated_at"`
}
