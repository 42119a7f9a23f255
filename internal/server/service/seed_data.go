package service

import (
	"time"

	"stock-impact-scanner/internal/entity"
)

// Seed fixtures mirroring the demo dataset. Inserted only when the matching
// collection is empty.

var seedStocks = []entity.Stock{
	{Symbol: "AAPL", Name: "Apple Inc.", Exchange: "NASDAQ"},
	{Symbol: "GOOGL", Name: "Alphabet Inc.", Exchange: "NASDAQ"},
	{Symbol: "AMZN", Name: "Amazon.com Inc.", Exchange: "NASDAQ"},
	{Symbol: "TSLA", Name: "Tesla Inc.", Exchange: "NASDAQ"},
	{Symbol: "META", Name: "Meta Platforms Inc.", Exchange: "NASDAQ"},
	{Symbol: "MSFT", Name: "Microsoft Corporation", Exchange: "NASDAQ"},
	{Symbol: "JPM", Name: "JPMorgan Chase & Co.", Exchange: "NYSE"},
	{Symbol: "V", Name: "Visa Inc.", Exchange: "NYSE"},
	{Symbol: "JNJ", Name: "Johnson & Johnson", Exchange: "NYSE"},
	{Symbol: "WMT", Name: "Walmart Inc.", Exchange: "NYSE"},
}

var seedNewsSources = []entity.NewsSource{
	{Name: "Financial Times", URL: "https://ft.com", ReliabilityScore: 0.9},
	{Name: "Bloomberg", URL: "https://bloomberg.com", ReliabilityScore: 0.92},
	{Name: "CNBC", URL: "https://cnbc.com", ReliabilityScore: 0.85},
	{Name: "Reuters", URL: "https://reuters.com", ReliabilityScore: 0.93},
	{Name: "Wall Street Journal", URL: "https://wsj.com", ReliabilityScore: 0.91},
}

func seedNews(now time.Time) []entity.NewsItem {
	return []entity.NewsItem{
		{
			Title:            "Federal Reserve announces unexpected 50 basis point rate hike",
			Content:          "The Federal Reserve has announced a larger-than-expected interest rate increase of 50 basis points, citing persistent inflation concerns.",
			URL:              "https://example.com/fed-rate-hike",
			Source:           "Bloomberg",
			PublishedAt:      now.Add(-3 * time.Hour),
			Category:         "Economy",
			AffectedStocks:   []string{"JPM", "WMT", "AAPL"},
			ConfidenceScore:  0.87,
			ValidatedSources: []string{"Bloomberg", "CNBC", "Reuters"},
		},
		{
			Title:            "Apple unveils new AI features for iPhone 16",
			Content:          "Apple has announced groundbreaking AI capabilities for its upcoming iPhone 16, potentially shifting the competitive landscape in mobile technology.",
			URL:              "https://example.com/apple-ai",
			Source:           "CNBC",
			PublishedAt:      now.Add(-6 * time.Hour),
			Category:         "Technology",
			AffectedStocks:   []string{"AAPL", "GOOGL", "MSFT"},
			ConfidenceScore:  0.95,
			ValidatedSources: []string{"CNBC", "Reuters", "Wall Street Journal", "Financial Times"},
		},
		{
			Title:            "Tesla faces battery supply chain disruptions from Southeast Asia",
			Content:          "Tesla is experiencing significant supply chain challenges for battery components due to political instability in key Southeast Asian manufacturing countries.",
			URL:              "https://example.com/tesla-supply-chain",
			Source:           "Reuters",
			PublishedAt:      now.Add(-12 * time.Hour),
			Category:         "Manufacturing",
			AffectedStocks:   []string{"TSLA", "GM", "F"},
			ConfidenceScore:  0.78,
			ValidatedSources: []string{"Reuters", "Bloomberg"},
		},
		{
			Title:            "US and China announce new round of trade talks amid rising tensions",
			Content:          "Officials from the United States and China have scheduled a high-level meeting to address trade disputes as tensions escalate over technology export restrictions.",
			URL:              "https://example.com/us-china-trade",
			Source:           "Financial Times",
			PublishedAt:      now.Add(-24 * time.Hour),
			Category:         "Geopolitics",
			AffectedStocks:   []string{"AAPL", "TSLA", "WMT", "AMZN"},
			ConfidenceScore:  0.91,
			ValidatedSources: []string{"Financial Times", "Wall Street Journal", "Bloomberg", "Reuters"},
		},
		{
			Title:            "Amazon's AWS experiences major outage affecting banking services",
			Content:          "Amazon Web Services is currently experiencing a significant outage across its US-East region, impacting numerous financial services and banking applications.",
			URL:              "https://example.com/aws-outage",
			Source:           "Wall Street Journal",
			PublishedAt:      now.Add(-8 * time.Hour),
			Category:         "Technology",
			AffectedStocks:   []string{"AMZN", "JPM", "V", "MSFT"},
			ConfidenceScore:  0.89,
			ValidatedSources: []string{"Wall Street Journal", "CNBC"},
		},
	}
}

type seedUser struct {
	Email          string
	Username       string
	Password       string
	FavoriteStocks []string
}

var seedUsers = []seedUser{
	{Email: "john@example.com", Username: "john_doe", Password: "password123", FavoriteStocks: []string{"AAPL", "MSFT"}},
	{Email: "jane@example.com", Username: "jane_smith", Password: "password456", FavoriteStocks: []string{"TSLA", "AMZN"}},
}

type seedPost struct {
	Username string
	Title    string
	Content  string
	Stocks   []string
	Upvotes  int
}

var seedPosts = []seedPost{
	{
		Username: "john_doe",
		Title:    "How to trade the Fed rate hike?",
		Content:  "I think banking stocks will benefit from the recent Fed decision. What do you all think?",
		Stocks:   []string{"JPM", "V"},
		Upvotes:  15,
	},
	{
		Username: "jane_smith",
		Title:    "Tesla supply chain issues - buy the dip?",
		Content:  "With the recent news about Tesla's supply chain problems, the stock might dip. Is this a buying opportunity or a warning sign?",
		Stocks:   []string{"TSLA"},
		Upvotes:  8,
	},
}

type seedComment struct {
	Username string
	Content  string
	Upvotes  int
}

// seedComments[i] is attached to seedPosts[i].
var seedComments = []seedComment{
	{Username: "jane_smith", Content: "I agree, banking stocks usually benefit from rate hikes. I'm also looking at insurance companies.", Upvotes: 5},
	{Username: "john_doe", Content: "I'm cautious about Tesla. The supply chain issues could persist longer than expected.", Upvotes: 3},
}
