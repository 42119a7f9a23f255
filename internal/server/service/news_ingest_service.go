package service

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"stock-impact-scanner/internal/entity"
	"stock-impact-scanner/internal/server/repository"
	"stock-impact-scanner/pkg/logger"

	"github.com/mauidude/go-readability"
	"github.com/mmcdole/gofeed"
	"github.com/patrickmn/go-cache"
	"github.com/robfig/cron/v3"
	"gorm.io/datatypes"
)

// NewsIngestService periodically pulls configured RSS feeds into the news
// collection. Each inserted item is annotated against the stocks mentioned in
// its title and every pass is recorded as an ingest run.
type NewsIngestService interface {
	Start(ctx context.Context) error
	Stop()
	RunOnce(ctx context.Context) error
}

// IngestConfig carries the ingest settings.
type IngestConfig struct {
	Schedule string
	Feeds    []string
	MaxItems int
}

// NewNewsIngestService creates a new ingest service.
func NewNewsIngestService(
	cfg IngestConfig,
	stockRepo repository.StockRepository,
	newsRepo repository.NewsRepository,
	impactRepo repository.StockImpactRepository,
	runRepo repository.IngestRunRepository,
	analyzer ImpactAnalyzer,
	log *logger.Logger,
) NewsIngestService {
	if cfg.Schedule == "" {
		cfg.Schedule = "@every 30m"
	}
	if cfg.MaxItems <= 0 {
		cfg.MaxItems = 20
	}
	return &newsIngestService{
		cfg:        cfg,
		stockRepo:  stockRepo,
		newsRepo:   newsRepo,
		impactRepo: impactRepo,
		runRepo:    runRepo,
		analyzer:   analyzer,
		logger:     log,
		parser:     gofeed.NewParser(),
		httpClient: &http.Client{Timeout: 15 * time.Second},
		seenLinks:  cache.New(6*time.Hour, 1*time.Hour),
	}
}

type newsIngestService struct {
	cfg        IngestConfig
	stockRepo  repository.StockRepository
	newsRepo   repository.NewsRepository
	impactRepo repository.StockImpactRepository
	runRepo    repository.IngestRunRepository
	analyzer   ImpactAnalyzer
	logger     *logger.Logger
	parser     *gofeed.Parser
	httpClient *http.Client
	seenLinks  *cache.Cache
	cron       *cron.Cron
}

type ingestStats struct {
	FeedsProcessed int      `json:"feeds_processed"`
	ItemsInserted  int      `json:"items_inserted"`
	ItemsSkipped   int      `json:"items_skipped"`
	Errors         []string `json:"errors,omitempty"`
}

// Start schedules recurring ingest passes until the context is canceled.
func (s *newsIngestService) Start(ctx context.Context) error {
	s.cron = cron.New()
	_, err := s.cron.AddFunc(s.cfg.Schedule, func() {
		if err := s.RunOnce(ctx); err != nil {
			s.logger.Error("Ingest pass failed", logger.ErrorField(err))
		}
	})
	if err != nil {
		return err
	}
	s.cron.Start()
	s.logger.Info("News ingest scheduled", logger.Field("schedule", s.cfg.Schedule))

	go func() {
		<-ctx.Done()
		s.Stop()
	}()
	return nil
}

// Stop halts the cron scheduler.
func (s *newsIngestService) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

// RunOnce performs a single ingest pass over every configured feed.
func (s *newsIngestService) RunOnce(ctx context.Context) error {
	run := &entity.IngestRun{
		Status:    entity.IngestRunStatusRunning,
		StartedAt: time.Now().UTC(),
	}
	if err := s.runRepo.Create(ctx, run); err != nil {
		return err
	}

	stats := ingestStats{}
	stocks, err := s.stockRepo.FindAll(ctx, "", 1000)
	if err != nil {
		s.finish(ctx, run.ID, entity.IngestRunStatusFailed, stats)
		return err
	}

	for _, feedURL := range s.cfg.Feeds {
		feed, err := s.parser.ParseURLWithContext(feedURL, ctx)
		if err != nil {
			s.logger.Error("Failed to parse feed", logger.ErrorField(err), logger.Field("feed", feedURL))
			stats.Errors = append(stats.Errors, err.Error())
			continue
		}
		stats.FeedsProcessed++

		items := feed.Items
		if len(items) > s.cfg.MaxItems {
			items = items[:s.cfg.MaxItems]
		}
		for _, item := range items {
			inserted, err := s.ingestItem(ctx, item, feed.Title, stocks)
			if err != nil {
				stats.Errors = append(stats.Errors, err.Error())
				continue
			}
			if inserted {
				stats.ItemsInserted++
			} else {
				stats.ItemsSkipped++
			}
		}
	}

	status := entity.IngestRunStatusCompleted
	if stats.FeedsProcessed == 0 && len(s.cfg.Feeds) > 0 {
		status = entity.IngestRunStatusFailed
	}
	s.finish(ctx, run.ID, status, stats)

	s.logger.Info("Ingest pass finished",
		logger.IntField("feeds", stats.FeedsProcessed),
		logger.IntField("inserted", stats.ItemsInserted),
		logger.IntField("skipped", stats.ItemsSkipped))
	return nil
}

func (s *newsIngestService) ingestItem(ctx context.Context, item *gofeed.Item, feedTitle string, stocks []entity.Stock) (bool, error) {
	hash := hashIdentifier(item.Link)
	if _, seen := s.seenLinks.Get(hash); seen {
		return false, nil
	}

	publishedAt := time.Now().UTC()
	if item.PublishedParsed != nil {
		publishedAt = *item.PublishedParsed
	}

	affected := matchAffectedStocks(item.Title, stocks)

	news := &entity.NewsItem{
		Title:            item.Title,
		Content:          s.extractContent(ctx, item),
		URL:              item.Link,
		Source:           feedTitle,
		PublishedAt:      publishedAt,
		Category:         "Markets",
		AffectedStocks:   affected,
		ConfidenceScore:  0.5,
		ValidatedSources: []string{feedTitle},
		HashIdentifier:   hash,
	}

	inserted, err := s.newsRepo.CreateIgnoreConflict(ctx, news)
	if err != nil {
		return false, err
	}
	s.seenLinks.Set(hash, struct{}{}, cache.DefaultExpiration)
	if !inserted {
		return false, nil
	}

	for _, symbol := range affected {
		stock, err := s.stockRepo.FindByIDOrSymbol(ctx, symbol)
		if err != nil {
			continue
		}
		score, explanation := s.analyzer.Annotate(news, stock)
		impact := &entity.StockImpact{
			NewsID:      news.ID,
			StockID:     stock.ID,
			ImpactScore: score,
			Explanation: explanation,
		}
		if err := s.impactRepo.Create(ctx, impact); err != nil {
			return true, err
		}
	}
	return true, nil
}

// extractContent fetches the article and runs it through readability; on any
// failure the feed's own description is used.
func (s *newsIngestService) extractContent(ctx context.Context, item *gofeed.Item) string {
	if item.Link == "" {
		return item.Description
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, item.Link, nil)
	if err != nil {
		return item.Description
	}
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return item.Description
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return item.Description
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 2<<20))
	if err != nil {
		return item.Description
	}
	doc, err := readability.NewDocument(string(body))
	if err != nil {
		return item.Description
	}
	content := strings.TrimSpace(doc.Content())
	if content == "" {
		return item.Description
	}
	return content
}

// matchAffectedStocks reports the symbols of stocks whose ticker or display
// name appears in the title.
func matchAffectedStocks(title string, stocks []entity.Stock) []string {
	lower := strings.ToLower(title)
	affected := []string{}
	for _, stock := range stocks {
		name := strings.ToLower(strings.TrimSuffix(stock.Name, " Inc."))
		if containsWord(title, stock.Symbol) || (name != "" && strings.Contains(lower, name)) {
			affected = append(affected, stock.Symbol)
		}
	}
	return affected
}

// containsWord matches the symbol as a standalone token, so "V" does not fire
// on every title containing the letter.
func containsWord(title, symbol string) bool {
	for _, tok := range strings.FieldsFunc(title, func(r rune) bool {
		return !(r >= 'A' && r <= 'Z') && !(r >= 'a' && r <= 'z') && !(r >= '0' && r <= '9')
	}) {
		if tok == symbol {
			return true
		}
	}
	return false
}

func (s *newsIngestService) finish(ctx context.Context, runID, status string, stats ingestStats) {
	payload, err := json.Marshal(stats)
	if err != nil {
		s.logger.Error("Failed to marshal ingest stats", logger.ErrorField(err))
		payload = []byte("{}")
	}
	if err := s.runRepo.Finish(ctx, runID, status, datatypes.JSON(payload)); err != nil {
		s.logger.Error("Failed to record ingest run", logger.ErrorField(err), logger.Field("run_id", runID))
	}
}
