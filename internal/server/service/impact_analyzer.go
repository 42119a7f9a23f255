package service

import (
	"fmt"
	"math/rand/v2"

	"stock-impact-scanner/internal/entity"
)

// ImpactAnalyzer scores the hypothesized effect of a news item on a stock.
// It stands in for a future analysis engine: known (symbol, title) pairs come
// from a fixed table, everything else gets a uniform random score. Callers
// must not assume repeatability for table misses.
type ImpactAnalyzer interface {
	Annotate(news *entity.NewsItem, stock *entity.Stock) (score float64, explanation string)
}

// NewImpactAnalyzer creates the table-backed analyzer.
func NewImpactAnalyzer() ImpactAnalyzer {
	return &impactAnalyzer{table: knownImpacts}
}

type impactEntry struct {
	StockSymbol string
	NewsTitle   string
	ImpactScore float64
	Explanation string
}

type impactAnalyzer struct {
	table []impactEntry
}

// Annotate returns a score in [-1, 1] and an explanation. First exact table
// match wins; otherwise the score is drawn uniformly and the explanation's
// tone follows its sign.
func (a *impactAnalyzer) Annotate(news *entity.NewsItem, stock *entity.Stock) (float64, string) {
	for _, e := range a.table {
		if e.StockSymbol == stock.Symbol && e.NewsTitle == news.Title {
			return e.ImpactScore, e.Explanation
		}
	}

	score := rand.Float64()*2 - 1
	tone := "negatively"
	if score > 0 {
		tone = "positively"
	}
	explanation := fmt.Sprintf("This news might %s impact %s due to potential market sentiment shifts.", tone, stock.Name)
	return score, explanation
}

var knownImpacts = []impactEntry{
	{
		StockSymbol: "AAPL",
		NewsTitle:   "Federal Reserve announces unexpected 50 basis point rate hike",
		ImpactScore: -0.7,
		Explanation: "The larger-than-expected rate hike is likely to negatively impact Apple due to potentially reduced consumer spending on high-end electronics and increased borrowing costs for the company.",
	},
	{
		StockSymbol: "JPM",
		NewsTitle:   "Federal Reserve announces unexpected 50 basis point rate hike",
		ImpactScore: 0.4,
		Explanation: "JPMorgan Chase may see a positive impact from the rate hike as higher interest rates typically expand banking margins on loans, potentially increasing profitability.",
	},
	{
		StockSymbol: "AAPL",
		NewsTitle:   "Apple unveils new AI features for iPhone 16",
		ImpactScore: 0.9,
		Explanation: "The announcement of groundbreaking AI features for the iPhone 16 is highly positive for Apple as it demonstrates continued innovation leadership and creates a compelling reason for consumers to upgrade their devices.",
	},
	{
		StockSymbol: "TSLA",
		NewsTitle:   "Tesla faces battery supply chain disruptions from Southeast Asia",
		ImpactScore: -0.8,
		Explanation: "The supply chain disruptions could significantly hamper Tesla's production capacity and delivery targets, potentially leading to reduced revenue and increased costs in the short to medium term.",
	},
}
