package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/newsdigest/pkg/domain"
	"github.com/umputun/newsdigest/pkg/queue"
)

// Enqueuer adds jobs to a queue
type Enqueuer interface {
	Enqueue(ctx context.Context, jobName string, payload any, opts ...queue.EnqueueOption) (string, error)
}

// FeedProcessor polls feeds into article stubs and turns stubs into extracted,
// enriched articles. It is responsible for:
//   - deduplicating feed items by provider scoped external id
//   - enqueueing one extraction job per new article
//   - running the provider extractor and persisting its fields
//   - calling the enrichment service when the article has all required fields
type FeedProcessor struct {
	feeds     FeedStore
	articles  ArticleStore
	parser    Parser
	extractor Extractor
	enricher  Enricher
	queue     Enqueuer
	now       func() time.Time
}

// FeedProcessorParams holds dependencies of FeedProcessor
type FeedProcessorParams struct {
	Feeds     FeedStore
	Articles  ArticleStore
	Parser    Parser
	Extractor Extractor
	Enricher  Enricher
	Queue     Enqueuer // article-scraping queue
}

// PollResult reports how many feed items were seen and how many became new articles
type PollResult struct {
	Processed int
	New       int
}

// NewFeedProcessor creates a new feed processor
func NewFeedProcessor(p FeedProcessorParams) *FeedProcessor {
	return &FeedProcessor{
		feeds:     p.Feeds,
		articles:  p.Articles,
		parser:    p.Parser,
		extractor: p.Extractor,
		enricher:  p.Enricher,
		queue:     p.Queue,
		now:       time.Now,
	}
}

// PollFeed fetches the feed, creates a PENDING stub for every unseen item and enqueues
// its extraction. A failed item never fails the poll, a failed fetch does and is
// recorded as the feed's last error.
func (fp *FeedProcessor) PollFeed(ctx context.Context, job domain.FeedPollJob) (PollResult, error) {
	lgr.Printf("[DEBUG] polling feed %d: %s", job.FeedID, job.URL)

	parsed, err := fp.parser.Parse(ctx, job.URL)
	if err != nil {
		if uerr := fp.feeds.UpdateFeedError(ctx, job.FeedID, err.Error()); uerr != nil {
			lgr.Printf("[WARN] failed to record error of feed %d: %v", job.FeedID, uerr)
		}
		return PollResult{}, fmt.Errorf("poll feed %d: %w", job.FeedID, err)
	}

	res := PollResult{}
	for _, item := range parsed.Items {
		res.Processed++
		outcome := fp.ingestItem(ctx, job, item)
		feedItemsTotal.WithLabelValues(outcome).Inc()
		if outcome == itemNew {
			res.New++
		}
	}

	if err := fp.feeds.UpdateFeedPolled(ctx, job.FeedID, fp.now()); err != nil {
		lgr.Printf("[WARN] failed to update poll time of feed %d: %v", job.FeedID, err)
	}

	if res.New > 0 {
		lgr.Printf("[INFO] feed %d (%s): %d items, %d new", job.FeedID, job.Provider, res.Processed, res.New)
	}
	return res, nil
}

// ingestItem stores a stub for an unseen item and enqueues its extraction, returns the item outcome
func (fp *FeedProcessor) ingestItem(ctx context.Context, job domain.FeedPollJob, item domain.ParsedItem) string {
	externalID := domain.ExternalID(job.Provider, item.GUID, item.Link)
	if externalID == "" {
		lgr.Printf("[DEBUG] feed %d item %q has neither guid nor link, skipped", job.FeedID, item.Title)
		return itemSkipped
	}

	exists, err := fp.articles.Exists(ctx, externalID)
	if err != nil {
		lgr.Printf("[WARN] failed to check article %s: %v", externalID, err)
		return itemFailed
	}
	if exists {
		return itemDuplicate
	}

	link := item.Link
	if link == "" {
		link = item.GUID
	}
	article := &domain.Article{
		URL:            link,
		Source:         job.Provider,
		ExternalID:     externalID,
		ScrapingStatus: domain.ScrapingPending,
		Title:          item.Title,
	}
	if err := fp.articles.CreateArticle(ctx, article); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return itemDuplicate // ingested concurrently by another poll
		}
		lgr.Printf("[WARN] failed to create article %s: %v", externalID, err)
		return itemFailed
	}

	if err := fp.enqueueExtraction(ctx, article); err != nil {
		lgr.Printf("[WARN] %v", err)
		return itemFailed
	}
	return itemNew
}

// IngestArticle extracts the article page by its provider, stores the fields and
// enriches the article when title, subtitle and content are all present.
func (fp *FeedProcessor) IngestArticle(ctx context.Context, articleID int64) error {
	article, err := fp.articles.GetArticle(ctx, articleID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return queue.Permanent(err)
		}
		return err
	}

	extracted, err := fp.extractor.Extract(ctx, article.Source, article.URL)
	if err != nil {
		if errors.Is(err, domain.ErrUnsupportedProvider) {
			return queue.Permanent(err)
		}
		if errors.Is(err, domain.ErrPageGone) {
			return queue.Permanent(fmt.Errorf("extract article %d: %w", articleID, err))
		}
		return fmt.Errorf("extract article %d: %w", articleID, err)
	}

	if err := fp.articles.UpdateExtracted(ctx, articleID, extracted); err != nil {
		return fmt.Errorf("store extracted article %d: %w", articleID, err)
	}
	if err := fp.articles.UpdateStatus(ctx, articleID, domain.ScrapingCompleted, ""); err != nil {
		return fmt.Errorf("complete article %d: %w", articleID, err)
	}

	if !extracted.Enrichable() {
		lgr.Printf("[INFO] article %d (%s) lacks title, subtitle or content, enrichment skipped", articleID, article.URL)
		return nil
	}

	enrichment, err := fp.enricher.IngestArticle(ctx, extracted.Title, extracted.Subtitle, extracted.Content)
	if err != nil {
		return fmt.Errorf("enrich article %d: %w", articleID, err)
	}
	if err := fp.articles.UpdateEnrichment(ctx, articleID, enrichment); err != nil {
		return fmt.Errorf("store enrichment of article %d: %w", articleID, err)
	}

	lgr.Printf("[DEBUG] article %d ingested: %s", articleID, extracted.Title)
	return nil
}

// AddArticle ingests a single url outside of feed polling. Known articles are left
// as they are unless force is set, then they are reset to PENDING and extracted again.
// Returns the article and whether an extraction job was enqueued.
func (fp *FeedProcessor) AddArticle(ctx context.Context, provider, url string, force bool) (*domain.Article, bool, error) {
	if !fp.extractor.Supports(provider) {
		return nil, false, fmt.Errorf("add article %s: %w: %q", url, domain.ErrUnsupportedProvider, provider)
	}
	externalID := domain.ExternalID(provider, "", url)
	if externalID == "" {
		return nil, false, fmt.Errorf("add article: empty url")
	}

	article, err := fp.articles.GetArticleByExternalID(ctx, externalID)
	switch {
	case err == nil:
		if !force {
			return article, false, nil
		}
		if err := fp.articles.UpdateStatus(ctx, article.ID, domain.ScrapingPending, ""); err != nil {
			return nil, false, fmt.Errorf("reset article %d: %w", article.ID, err)
		}
		article.ScrapingStatus = domain.ScrapingPending
		article.ScrapingError = ""
	case errors.Is(err, domain.ErrNotFound):
		article = &domain.Article{URL: url, Source: provider, ExternalID: externalID, ScrapingStatus: domain.ScrapingPending}
		if err := fp.articles.CreateArticle(ctx, article); err != nil {
			return nil, false, fmt.Errorf("add article %s: %w", url, err)
		}
	default:
		return nil, false, err
	}

	if err := fp.enqueueExtraction(ctx, article); err != nil {
		return article, false, err
	}
	lgr.Printf("[INFO] article %d queued for extraction, provider %s, force %v", article.ID, provider, force)
	return article, true, nil
}

// enqueueExtraction queues the article for extraction, the stub is marked FAILED if that is not possible
func (fp *FeedProcessor) enqueueExtraction(ctx context.Context, article *domain.Article) error {
	_, err := fp.queue.Enqueue(ctx, domain.JobExtractArticle, domain.ArticleExtractionJob{ArticleID: article.ID, URL: article.URL})
	if err == nil {
		return nil
	}
	article.ScrapingStatus, article.ScrapingError = domain.ScrapingFailed, err.Error()
	if uerr := fp.articles.UpdateStatus(ctx, article.ID, domain.ScrapingFailed, err.Error()); uerr != nil {
		lgr.Printf("[WARN] failed to mark article %d failed: %v", article.ID, uerr)
	}
	return fmt.Errorf("enqueue extraction of article %d: %w", article.ID, err)
}

// onArticleFailed records the final error once extraction attempts are exhausted
func (fp *FeedProcessor) onArticleFailed(ctx context.Context, job *queue.Job, jobErr error) {
	var payload domain.ArticleExtractionJob
	if err := job.Decode(&payload); err != nil {
		lgr.Printf("[WARN] %v", err)
		return
	}
	if err := fp.articles.UpdateStatus(ctx, payload.ArticleID, domain.ScrapingFailed, jobErr.Error()); err != nil {
		lgr.Printf("[WARN] failed to mark article %d failed: %v", payload.ArticleID, err)
	}
}
