package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/umputun/newsdigest/pkg/domain"
)

// ArticleRepository handles article-related database operations
type ArticleRepository struct {
	db *sqlx.DB
}

// articleSQL represents an article for SQL operations
type articleSQL struct {
	ID             int64                   `db:"id"`
	URL            string                  `db:"url"`
	Source         string                  `db:"source"`
	ExternalID     string                  `db:"external_id"`
	ScrapingStatus string                  `db:"scraping_status"`
	Title          string                  `db:"title"`
	Subtitle       string                  `db:"subtitle"`
	Content        string                  `db:"content"`
	Author         string                  `db:"author"`
	Image          jsonSQL[*domain.Image]  `db:"image"`
	Categories     jsonSQL[[]string]       `db:"categories"`
	Enrichment     jsonSQL[map[string]any] `db:"enrichment"`
	Embeddings     jsonSQL[[]float64]      `db:"embeddings"`
	CreatedAt      time.Time               `db:"created_at"`
	UpdatedAt      time.Time               `db:"updated_at"`
	LastScrapedAt  *time.Time              `db:"last_scraped_at"`
	ScrapingError  string                  `db:"scraping_error"`
}

// NewArticleRepository creates a new article repository
func NewArticleRepository(database *sqlx.DB) *ArticleRepository {
	return &ArticleRepository{db: database}
}

// CreateArticle inserts a new article stub. A second insert with the same
// external id fails with domain.ErrDuplicate.
func (r *ArticleRepository) CreateArticle(ctx context.Context, article *domain.Article) error {
	if article.ExternalID == "" {
		return fmt.Errorf("create article %s: empty external id", article.URL)
	}
	if article.ScrapingStatus == "" {
		article.ScrapingStatus = domain.ScrapingPending
	}

	rec := &articleSQL{
		URL:            article.URL,
		Source:         article.Source,
		ExternalID:     article.ExternalID,
		ScrapingStatus: string(article.ScrapingStatus),
		Title:          article.Title,
		Subtitle:       article.Subtitle,
		Content:        article.Content,
		Author:         article.Author,
		Image:          jsonSQL[*domain.Image]{V: article.Image},
		Categories:     jsonSQL[[]string]{V: nonNilStrings(article.Categories)},
		Enrichment:     jsonSQL[map[string]any]{V: article.Enrichment},
		Embeddings:     jsonSQL[[]float64]{V: article.Embeddings},
	}

	query := `
		INSERT INTO articles (
			url, source, external_id, scraping_status, title, subtitle,
			content, author, image, categories, enrichment, embeddings
		) VALUES (
			:url, :source, :external_id, :scraping_status, :title, :subtitle,
			:content, :author, :image, :categories, :enrichment, :embeddings
		)
	`

	var id int64
	err := withLockRetry(ctx, func() error {
		result, err := r.db.NamedExecContext(ctx, query, rec)
		if err != nil {
			if isUniqueError(err) {
				return fmt.Errorf("create article %s: %w", article.ExternalID, domain.ErrDuplicate)
			}
			return fmt.Errorf("create article: %w", err)
		}
		id, err = result.LastInsertId()
		if err != nil {
			return fmt.Errorf("get insert id: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	article.ID = id
	return nil
}

// Exists checks whether an article with the external id was already ingested
func (r *ArticleRepository) Exists(ctx context.Context, externalID string) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, "SELECT EXISTS(SELECT 1 FROM articles WHERE external_id = ?)", externalID)
	if err != nil {
		return false, fmt.Errorf("check article exists: %w", err)
	}
	return exists, nil
}

// GetArticle retrieves an article by ID
func (r *ArticleRepository) GetArticle(ctx context.Context, id int64) (*domain.Article, error) {
	return r.getOne(ctx, "SELECT * FROM articles WHERE id = ?", id)
}

// GetArticleByExternalID retrieves an article by its dedup key
func (r *ArticleRepository) GetArticleByExternalID(ctx context.Context, externalID string) (*domain.Article, error) {
	return r.getOne(ctx, "SELECT * FROM articles WHERE external_id = ?", externalID)
}

func (r *ArticleRepository) getOne(ctx context.Context, query string, arg any) (*domain.Article, error) {
	var rec articleSQL
	err := r.db.GetContext(ctx, &rec, query, arg)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get article %v: %w", arg, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get article: %w", err)
	}
	return r.toDomainArticle(&rec), nil
}

// UpdateExtracted stores fields produced by a provider extractor
func (r *ArticleRepository) UpdateExtracted(ctx context.Context, id int64, ex *domain.Extracted) error {
	query := `
		UPDATE articles
		SET title = ?, subtitle = ?, content = ?, author = ?, image = ?, categories = ?,
		    last_scraped_at = ?, updated_at = ?
		WHERE id = ?
	`
	now := time.Now().UTC()
	return r.exec(ctx, query, ex.Title, ex.Subtitle, ex.Content, ex.Author,
		jsonSQL[*domain.Image]{V: ex.Image}, jsonSQL[[]string]{V: nonNilStrings(ex.Categories)}, now, now, id)
}

// UpdateEnrichment stores the enrichment attributes and the embeddings vector
func (r *ArticleRepository) UpdateEnrichment(ctx context.Context, id int64, en *domain.Enrichment) error {
	query := `UPDATE articles SET enrichment = ?, embeddings = ?, updated_at = ? WHERE id = ?`
	return r.exec(ctx, query, jsonSQL[map[string]any]{V: en.Attributes}, jsonSQL[[]float64]{V: en.Embeddings},
		time.Now().UTC(), id)
}

// UpdateStatus sets the scraping status and error of an article
func (r *ArticleRepository) UpdateStatus(ctx context.Context, id int64, status domain.ScrapingStatus, errMsg string) error {
	query := `UPDATE articles SET scraping_status = ?, scraping_error = ?, updated_at = ? WHERE id = ?`
	return r.exec(ctx, query, string(status), errMsg, time.Now().UTC(), id)
}

// DeleteArticle removes an article, operator action only
func (r *ArticleRepository) DeleteArticle(ctx context.Context, id int64) error {
	return r.exec(ctx, "DELETE FROM articles WHERE id = ?", id)
}

func (r *ArticleRepository) exec(ctx context.Context, query string, args ...any) error {
	return withLockRetry(ctx, func() error {
		res, err := r.db.ExecContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("update article: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("rows affected: %w", err)
		}
		if n == 0 {
			return fmt.Errorf("update article: %w", domain.ErrNotFound)
		}
		return nil
	})
}

// toDomainArticle converts articleSQL to domain.Article
func (r *ArticleRepository) toDomainArticle(rec *articleSQL) *domain.Article {
	return &domain.Article{
		ID:             rec.ID,
		URL:            rec.URL,
		Source:         rec.Source,
		ExternalID:     rec.ExternalID,
		ScrapingStatus: domain.ScrapingStatus(rec.ScrapingStatus),
		Title:          rec.Title,
		Subtitle:       rec.Subtitle,
		Content:        rec.Content,
		Author:         rec.Author,
		Image:          rec.Image.V,
		Categories:     rec.Categories.V,
		Enrichment:     rec.Enrichment.V,
		Embeddings:     rec.Embeddings.V,
		CreatedAt:      rec.CreatedAt,
		UpdatedAt:      rec.UpdatedAt,
		LastScrapedAt:  rec.LastScrapedAt,
		ScrapingError:  rec.ScrapingError,
	}
}

func nonNilStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
