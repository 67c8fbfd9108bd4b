// Package pubmed provides a client for the NCBI E-utilities API.
//
// The client paginates the esearch endpoint and batches efetch requests,
// throttling all traffic with a shared rate limiter to respect the NCBI
// usage policy (max 3 requests/second without an API key).
package pubmed

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/medlit-labs/litqa-cli/internal/core/domain"
	"github.com/medlit-labs/litqa-cli/internal/core/ports/driven"
	"github.com/medlit-labs/litqa-cli/internal/logger"
)

// Ensure Client implements the interface.
var _ driven.LiteratureClient = (*Client)(nil)

// Default configuration values.
const (
	// DefaultBaseURL is the NCBI E-utilities endpoint.
	DefaultBaseURL = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils"

	// DefaultTimeout is the per-request timeout.
	DefaultTimeout = 30 * time.Second

	// DefaultRequestsPerSecond is the NCBI limit without an API key.
	DefaultRequestsPerSecond = 3

	// PageSize is the esearch page size (retmax).
	PageSize = 100

	// FetchBatchSize is the number of IDs per efetch request.
	FetchBatchSize = 100
)

// Config holds configuration for the PubMed client.
type Config struct {
	// BaseURL is the E-utilities base URL (default: NCBI production).
	BaseURL string

	// Timeout is the per-request timeout (default: 30s).
	Timeout time.Duration

	// RequestsPerSecond throttles outgoing requests (default: 3).
	RequestsPerSecond float64
}

// Client searches and fetches PubMed abstracts.
type Client struct {
	client  *http.Client
	baseURL string
	limiter *rate.Limiter
}

// New creates a PubMed client.
func New(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = DefaultRequestsPerSecond
	}

	return &Client{
		client:  &http.Client{Timeout: cfg.Timeout},
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1),
	}
}

// Search returns up to maxResults PMIDs matching the topic, paging the
// esearch endpoint until a page comes back empty or enough IDs are
// collected. The result is truncated to exactly maxResults.
func (c *Client) Search(ctx context.Context, topic string, maxResults int) ([]string, error) {
	if maxResults <= 0 {
		return nil, nil
	}

	var pmids []string
	start := 0
	for len(pmids) < maxResults {
		params := url.Values{
			"db":       {"pubmed"},
			"term":     {topic},
			"retmax":   {strconv.Itoa(PageSize)},
			"retmode":  {"xml"},
			"retstart": {strconv.Itoa(start)},
		}

		body, err := c.get(ctx, "/esearch.fcgi", params)
		if err != nil {
			return nil, fmt.Errorf("search %q: %w", topic, err)
		}

		var result esearchResult
		if err := xml.Unmarshal(body, &result); err != nil {
			return nil, fmt.Errorf("search %q: decode response: %w: %w", topic, domain.ErrUpstream, err)
		}

		if len(result.IDs) == 0 {
			break
		}
		pmids = append(pmids, result.IDs...)
		start += PageSize

		logger.Debug("esearch page done: %d ids so far for %q", len(pmids), topic)
	}

	if len(pmids) > maxResults {
		pmids = pmids[:maxResults]
	}
	return pmids, nil
}

// Fetch retrieves articles for the given PMIDs in efetch batches.
// Records missing a PMID are skipped; every other missing field gets its
// documented placeholder.
func (c *Client) Fetch(ctx context.Context, ids []string) ([]domain.Article, error) {
	var articles []domain.Article

	for i := 0; i < len(ids); i += FetchBatchSize {
		end := i + FetchBatchSize
		if end > len(ids) {
			end = len(ids)
		}

		params := url.Values{
			"db":      {"pubmed"},
			"id":      {strings.Join(ids[i:end], ",")},
			"retmode": {"xml"},
		}

		body, err := c.get(ctx, "/efetch.fcgi", params)
		if err != nil {
			return nil, fmt.Errorf("fetch batch %d-%d: %w", i, end, err)
		}

		var result efetchResult
		if err := xml.Unmarshal(body, &result); err != nil {
			return nil, fmt.Errorf("fetch batch %d-%d: decode response: %w: %w", i, end, domain.ErrUpstream, err)
		}

		for _, rec := range result.Articles {
			if strings.TrimSpace(rec.PMID) == "" {
				logger.Warn("skipping record without PMID")
				continue
			}
			articles = append(articles, rec.toArticle())
		}
	}

	return articles, nil
}

// get performs a throttled GET and returns the response body.
func (c *Client) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrUpstream, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %w", domain.ErrUpstream, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", domain.ErrUpstream, resp.StatusCode)
	}

	return body, nil
}
