package app

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"ReviewScanner/internal/config"
	"ReviewScanner/internal/domain"
	"ReviewScanner/internal/infrastructure/fetcher"
	"ReviewScanner/internal/logging"
)

const listingHTML = `<html><head><title>Amazon.in:Customer reviews: Example</title></head><body>
<div data-hook="review">
  <span class="a-profile-name">Asha</span>
  <i data-hook="review-star-rating"><span>5.0 out of 5 stars</span></i>
  <a data-hook="review-title"><span>Great</span></a>
  <span data-hook="review-date">Reviewed in India on 14 March 2024</span>
  <span data-hook="review-body"><span>Loved it</span></span>
</div>
</body></html>`

type rewriteTransport struct{ host string }

func (rt rewriteTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())
	clone.URL.Scheme = "http"
	clone.URL.Host = rt.host
	return http.DefaultTransport.RoundTrip(clone)
}

func newTestApp(t *testing.T) *Application {
	t.Helper()

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/Example-Product/product-reviews/B000123456/") {
			http.NotFound(w, r)
			return
		}
		_, _ = io.WriteString(w, listingHTML)
	}))
	t.Cleanup(upstream.Close)

	cfg, err := config.Parse(nil)
	require.NoError(t, err)

	host := strings.TrimPrefix(upstream.URL, "http://")
	application, err := New(cfg, logging.Discard(), func(o *fetcher.Options) {
		o.Transport = rewriteTransport{host: host}
	})
	require.NoError(t, err)
	return application
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg, err := config.Parse(nil)
	require.NoError(t, err)
	cfg.Selectors = map[string][]string{"review": {"div[["}}

	_, err = New(cfg, logging.Discard())
	require.Error(t, err)
}

func TestScrapeEndToEnd(t *testing.T) {
	application := newTestApp(t)

	result, err := application.Scrape(context.Background(), "https://www.amazon.in/Example-Product/dp/B000123456")
	require.NoError(t, err)

	require.Equal(t, domain.ReviewTable{{Review: "Great Loved it"}}, result.Table)
	require.Equal(t, "14/03/2024", result.Records[0].ReviewDate)
	require.Equal(t, "5.0", result.Records[0].StarRating)
	require.Empty(t, result.Diagnostics)
}

func TestHandlerServesReviewsAndMetrics(t *testing.T) {
	application := newTestApp(t)
	ts := httptest.NewServer(application.Handler())
	t.Cleanup(ts.Close)

	q := url.Values{"url": {"https://www.amazon.in/Example-Product/dp/B000123456"}}
	res, err := http.Get(ts.URL + "/v1/reviews?" + q.Encode())
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)

	var body struct {
		Count   int                `json:"count"`
		Reviews domain.ReviewTable `json:"reviews"`
	}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
	require.Equal(t, 1, body.Count)
	require.Equal(t, "Great Loved it", body.Reviews[0].Review)

	metrics, err := http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	defer metrics.Body.Close()
	raw, err := io.ReadAll(metrics.Body)
	require.NoError(t, err)
	require.Contains(t, string(raw), "reviewscanner_http_requests_total")
}
