package service

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/pkg/errors"
	"github.com/tidwall/gjson"

	"github.com/katakuxiko/guidance/internal/config"
	"github.com/katakuxiko/guidance/internal/model"
	"github.com/katakuxiko/guidance/internal/util"
)

const summaryLimit = 500

// WikipediaClient looks up a single page by exact title through the
// MediaWiki action API.
type WikipediaClient struct {
	endpoint  string
	userAgent string
	http      *http.Client
}

func NewWikipediaClient(cfg *config.Config) *WikipediaClient {
	timeout := cfg.WikiTimeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &WikipediaClient{
		endpoint:  cfg.WikipediaEndpoint(),
		userAgent: cfg.WikiUserAgent,
		http: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

// Summary returns the first 500 characters of the page intro, or the
// no-results sentinel when no page has exactly this title.
func (w *WikipediaClient) Summary(ctx context.Context, title string) model.ProviderResult {
	extract, found, err := w.lookup(ctx, title)
	if err != nil {
		return model.Failed(model.ProviderWikipedia, model.NewProviderError(model.ProviderWikipedia, "lookup", err))
	}
	if !found {
		return model.Ok(model.ProviderWikipedia, model.NoWikipediaResults)
	}
	return model.Ok(model.ProviderWikipedia, util.TruncateRunes(extract, summaryLimit))
}

func (w *WikipediaClient) lookup(ctx context.Context, title string) (string, bool, error) {
	q := url.Values{}
	q.Set("action", "query")
	q.Set("prop", "extracts")
	q.Set("exintro", "1")
	q.Set("explaintext", "1")
	q.Set("format", "json")
	q.Set("formatversion", "2")
	q.Set("titles", title)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, w.endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return "", false, errors.Wrap(err, "build request")
	}
	req.Header.Set("User-Agent", w.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := w.http.Do(req)
	if err != nil {
		return "", false, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", false, errors.Wrap(err, "read response")
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", false, errors.Errorf("wikipedia http %d", resp.StatusCode)
	}
	if !gjson.ValidBytes(body) {
		return "", false, errors.New("wikipedia returned invalid JSON")
	}

	doc := gjson.ParseBytes(body)
	if apiErr := doc.Get("error.info"); apiErr.Exists() {
		return "", false, errors.Errorf("wikipedia api: %s", apiErr.String())
	}
	page := doc.Get("query.pages.0")
	if !page.Exists() || page.Get("missing").Bool() || page.Get("invalid").Bool() {
		return "", false, nil
	}
	return page.Get("extract").String(), true, nil
}
