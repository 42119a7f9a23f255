package service

import (
	"testing"

	"stock-impact-scanner/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnnotateKnownPairIsDeterministic(t *testing.T) {
	analyzer := NewImpactAnalyzer()
	news := &entity.NewsItem{Title: "Apple unveils new AI features for iPhone 16"}
	stock := &entity.Stock{Symbol: "AAPL", Name: "Apple Inc."}

	score, explanation := analyzer.Annotate(news, stock)
	require.Equal(t, 0.9, score)
	require.NotEmpty(t, explanation)

	for i := 0; i < 10; i++ {
		s, e := analyzer.Annotate(news, stock)
		assert.Equal(t, score, s)
		assert.Equal(t, explanation, e)
	}
}

func TestAnnotateUnknownPairStaysInRange(t *testing.T) {
	analyzer := NewImpactAnalyzer()
	news := &entity.NewsItem{Title: "Entirely unheard-of headline"}
	stock := &entity.Stock{Symbol: "WMT", Name: "Walmart Inc."}

	// The fallback is intentionally random; assert the contract, not values.
	for i := 0; i < 50; i++ {
		score, explanation := analyzer.Annotate(news, stock)
		assert.GreaterOrEqual(t, score, -1.0)
		assert.LessOrEqual(t, score, 1.0)
		assert.Contains(t, explanation, "Walmart Inc.")
		if score > 0 {
			assert.Contains(t, explanation, "positively")
		} else {
			assert.Contains(t, explanation, "negatively")
		}
	}
}

func TestKnownImpactsTableIsWellFormed(t *testing.T) {
	for _, e := range knownImpacts {
		assert.NotEmpty(t, e.StockSymbol)
		assert.NotEmpty(t, e.NewsTitle)
		assert.GreaterOrEqual(t, e.ImpactScore, -1.0)
		assert.LessOrEqual(t, e.ImpactScore, 1.0)
		assert.NotEmpty(t, e.Explanation)
	}
}
