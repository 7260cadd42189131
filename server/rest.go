package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/newsdigest/pkg/domain"
	"github.com/umputun/newsdigest/pkg/queue"
)

// feedResponse is the API view of a feed
type feedResponse struct {
	ID             int64      `json:"id"`
	URL            string     `json:"url"`
	Provider       string     `json:"provider"`
	Name           string     `json:"name"`
	Language       string     `json:"language,omitempty"`
	CadenceMinutes int        `json:"cadenceMinutes"`
	Active         bool       `json:"active"`
	LastPolledAt   *time.Time `json:"lastPolledAt,omitempty"`
	LastError      string     `json:"lastError,omitempty"`
}

func toFeedResponse(f *domain.Feed) feedResponse {
	return feedResponse{ID: f.ID, URL: f.URL, Provider: f.Provider, Name: f.Name, Language: f.Language,
		CadenceMinutes: f.CadenceMinutes, Active: f.Active, LastPolledAt: f.LastPolledAt, LastError: f.LastError}
}

// articleResponse is the API view of an article, embeddings are omitted
type articleResponse struct {
	ID             int64                 `json:"id"`
	URL            string                `json:"url"`
	Source         string                `json:"source"`
	ExternalID     string                `json:"externalId"`
	ScrapingStatus domain.ScrapingStatus `json:"scrapingStatus"`
	ScrapingError  string                `json:"scrapingError,omitempty"`
	Title          string                `json:"title,omitempty"`
	Subtitle       string                `json:"subtitle,omitempty"`
	Content        string                `json:"content,omitempty"`
	Author         string                `json:"author,omitempty"`
	Image          *domain.Image         `json:"image,omitempty"`
	Categories     []string              `json:"categories,omitempty"`
	Enrichment     map[string]any        `json:"enrichment,omitempty"`
	Enriched       bool                  `json:"enriched"`
	LastScrapedAt  *time.Time            `json:"lastScrapedAt,omitempty"`
}

func toArticleResponse(a *domain.Article) articleResponse {
	return articleResponse{ID: a.ID, URL: a.URL, Source: a.Source, ExternalID: a.ExternalID,
		ScrapingStatus: a.ScrapingStatus, ScrapingError: a.ScrapingError, Title: a.Title, Subtitle: a.Subtitle,
		Content: a.Content, Author: a.Author, Image: a.Image, Categories: a.Categories, Enrichment: a.Enrichment,
		Enriched: len(a.Embeddings) > 0, LastScrapedAt: a.LastScrapedAt}
}

// statusHandler returns server status with database and queue health
func (s *Server) statusHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	status := map[string]any{
		"status":  "ok",
		"version": s.version,
		"time":    time.Now().UTC(),
	}

	code := http.StatusOK
	if err := s.store.Ping(ctx); err != nil {
		lgr.Printf("[WARN] database ping failed: %v", err)
		status["status"], status["database"] = "degraded", err.Error()
		code = http.StatusServiceUnavailable
	}
	if err := s.jobs.Ping(ctx); err != nil {
		lgr.Printf("[WARN] queue ping failed: %v", err)
		status["status"], status["queue"] = "degraded", err.Error()
		code = http.StatusServiceUnavailable
	}
	if code == http.StatusOK {
		stats, err := s.jobs.Stats(ctx)
		if err != nil {
			lgr.Printf("[WARN] failed to get queue stats: %v", err)
		} else {
			status["queues"] = stats
		}
	}
	renderJSON(w, r, code, status)
}

// listFeedsHandler returns all feeds, active=true limits the list to active ones
func (s *Server) listFeedsHandler(w http.ResponseWriter, r *http.Request) {
	feeds, err := s.store.GetFeeds(r.Context(), r.URL.Query().Get("active") == "true")
	if err != nil {
		renderDomainError(w, r, fmt.Errorf("get feeds: %w", err))
		return
	}
	res := make([]feedResponse, 0, len(feeds))
	for _, f := range feeds {
		res = append(res, toFeedResponse(f))
	}
	renderJSON(w, r, http.StatusOK, res)
}

// createFeedHandler creates a feed and schedules its polling
func (s *Server) createFeedHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		URL            string `json:"url"`
		Provider       string `json:"provider"`
		CadenceMinutes int    `json:"cadenceMinutes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderError(w, r, fmt.Errorf("invalid request: %w", err), http.StatusBadRequest)
		return
	}
	req.URL, req.Provider = strings.TrimSpace(req.URL), strings.ToLower(strings.TrimSpace(req.Provider))
	if req.URL == "" || req.Provider == "" {
		renderError(w, r, errors.New("url and provider are required"), http.StatusBadRequest)
		return
	}
	if req.CadenceMinutes < 0 {
		renderError(w, r, errors.New("cadence can't be negative"), http.StatusBadRequest)
		return
	}

	feed, err := s.scheduler.CreateFeed(r.Context(), req.URL, req.Provider, req.CadenceMinutes)
	if err != nil {
		renderDomainError(w, r, err)
		return
	}
	renderJSON(w, r, http.StatusCreated, toFeedResponse(feed))
}

// feedActiveHandler activates or deactivates a feed
func (s *Server) feedActiveHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req struct {
		Active *bool `json:"active"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Active == nil {
		renderError(w, r, errors.New("active flag is required"), http.StatusBadRequest)
		return
	}

	feed, err := s.scheduler.SetFeedActive(r.Context(), id, *req.Active)
	if err != nil {
		renderDomainError(w, r, err)
		return
	}
	renderJSON(w, r, http.StatusOK, toFeedResponse(feed))
}

// feedCadenceHandler changes poll cadence, zero cadence stops polling
func (s *Server) feedCadenceHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req struct {
		CadenceMinutes *int `json:"cadenceMinutes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.CadenceMinutes == nil || *req.CadenceMinutes < 0 {
		renderError(w, r, errors.New("non-negative cadenceMinutes is required"), http.StatusBadRequest)
		return
	}

	feed, err := s.scheduler.SetFeedCadence(r.Context(), id, *req.CadenceMinutes)
	if err != nil {
		renderDomainError(w, r, err)
		return
	}
	renderJSON(w, r, http.StatusOK, toFeedResponse(feed))
}

// pollFeedHandler enqueues a one-off poll of the feed
func (s *Server) pollFeedHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	jobID, err := s.scheduler.PollNow(r.Context(), id)
	if err != nil {
		renderDomainError(w, r, err)
		return
	}
	renderJSON(w, r, http.StatusAccepted, map[string]string{"jobId": jobID})
}

// deleteFeedHandler removes the poll job and the feed, ingested articles are kept
func (s *Server) deleteFeedHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := s.scheduler.Unschedule(r.Context(), id); err != nil {
		renderDomainError(w, r, err)
		return
	}
	if err := s.store.DeleteFeed(r.Context(), id); err != nil {
		renderDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// addArticleHandler ingests a single article url, force re-scrapes a known one
func (s *Server) addArticleHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		URL      string `json:"url"`
		Provider string `json:"provider"`
		Force    bool   `json:"force"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderError(w, r, fmt.Errorf("invalid request: %w", err), http.StatusBadRequest)
		return
	}
	req.URL, req.Provider = strings.TrimSpace(req.URL), strings.ToLower(strings.TrimSpace(req.Provider))
	if req.URL == "" || req.Provider == "" {
		renderError(w, r, errors.New("url and provider are required"), http.StatusBadRequest)
		return
	}

	article, queued, err := s.scheduler.AddArticle(r.Context(), req.Provider, req.URL, req.Force)
	if err != nil {
		renderDomainError(w, r, err)
		return
	}
	code := http.StatusOK
	if queued {
		code = http.StatusAccepted
	}
	renderJSON(w, r, code, map[string]any{"article": toArticleResponse(article), "queued": queued})
}

// getArticleHandler returns a stored article
func (s *Server) getArticleHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	article, err := s.store.GetArticle(r.Context(), id)
	if err != nil {
		renderDomainError(w, r, err)
		return
	}
	renderJSON(w, r, http.StatusOK, toArticleResponse(article))
}

// deleteArticleHandler removes an article
func (s *Server) deleteArticleHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := s.store.DeleteArticle(r.Context(), id); err != nil {
		renderDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// failedJobsHandler lists exhausted jobs of a queue kept for inspection
func (s *Server) failedJobsHandler(w http.ResponseWriter, r *http.Request) {
	jobs, err := s.jobs.Failed(r.Context(), r.PathValue("name"))
	if err != nil {
		renderError(w, r, err, http.StatusNotFound)
		return
	}
	if jobs == nil {
		jobs = []*queue.Job{}
	}
	renderJSON(w, r, http.StatusOK, jobs)
}

// pathID parses {id} path value, renders bad request on failure
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		renderError(w, r, errors.New("invalid id"), http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

// renderDomainError maps domain errors to status codes
func renderDomainError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		renderError(w, r, err, http.StatusNotFound)
	case errors.Is(err, domain.ErrUnsupportedProvider):
		renderError(w, r, err, http.StatusBadRequest)
	case errors.Is(err, domain.ErrDuplicate):
		renderError(w, r, err, http.StatusConflict)
	default:
		lgr.Printf("[ERROR] %s %s: %v", r.Method, r.URL.Path, err)
		renderError(w, r, err, http.StatusInternalServerError)
	}
}

// renderJSON sends JSON response
func renderJSON(w http.ResponseWriter, _ *http.Request, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			lgr.Printf("[ERROR] can't encode response to JSON: %v", err)
		}
	}
}

// renderError sends error response as JSON
func renderError(w http.ResponseWriter, r *http.Request, err error, code int) {
	errMsg := "unknown error"
	if err != nil {
		errMsg = err.Error()
	}
	renderJSON(w, r, code, map[string]string{"error": errMsg})
}
