package stocks

import (
	"math"
	"math/rand"
	"time"

	"storefront_service/internal/models"
)

// MaxJitterPercent bounds the simulated per-refresh price movement.
const MaxJitterPercent = 2.0

type baseQuote struct {
	symbol string
	name   string
	price  float64
}

// Fixed tickers the site's ticker strip rotates through. Prices are the
// jitter baseline, not live data.
var baseQuotes = []baseQuote{
	{symbol: "DJT", name: "Trump Media & Technology", price: 16.42},
	{symbol: "SPY", name: "SPDR S&P 500 ETF", price: 584.12},
	{symbol: "VOTE", name: "TCW Transform 500 ETF", price: 64.80},
	{symbol: "NYT", name: "The New York Times Co", price: 55.37},
	{symbol: "PARA", name: "Paramount Global", price: 11.24},
}

// Quotes returns the synthetic ticker list. Unlike the mock catalog this
// intentionally randomizes: each call jitters every price within
// ±MaxJitterPercent to simulate a live feed.
func Quotes() []models.StockQuote {
	now := time.Now().UTC()

	quotes := make([]models.StockQuote, 0, len(baseQuotes))
	for _, b := range baseQuotes {
		pct := (rand.Float64()*2 - 1) * MaxJitterPercent

		quotes = append(quotes, models.StockQuote{
			Symbol:        b.symbol,
			Name:          b.name,
			Price:         round2(b.price * (1 + pct/100)),
			ChangePercent: round2(pct),
			UpdatedAt:     now,
		})
	}

	return quotes
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
