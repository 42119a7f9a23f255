package dto

import "encoding/json"

// HeadlinesResponse carries an upstream NewsAPI payload verbatim.
type HeadlinesResponse = json.RawMessage

// StockQuote is a mock quote for a single symbol.
type StockQuote struct {
	Symbol string  `json:"symbol"`
	Price  float64 `json:"price"`
	Change float64 `json:"change"`
}
