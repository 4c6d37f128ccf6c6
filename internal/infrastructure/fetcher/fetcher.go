package fetcher

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/time/rate"

	"ReviewScanner/internal/config"
	"ReviewScanner/internal/domain"
	"ReviewScanner/internal/logging"
	"ReviewScanner/internal/observability"
	"ReviewScanner/internal/ports"
)

var tracer = otel.Tracer("reviewscanner/fetcher")

const (
	defaultTimeout = 10 * time.Second
	acceptHTML     = "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8"
)

// Options configures a Fetcher. Zero values fall back to sensible defaults.
type Options struct {
	Timeout             time.Duration
	AcceptLanguage      string
	Referer             string
	Identity            IdentityFunc
	RequestsPerSecond   float64
	BlockedTitleMarkers []string
	// Transport replaces the default transport; the anti-bot round tripper wraps it.
	Transport http.RoundTripper
	Logger    *slog.Logger
}

// OptionsFromConfig maps the fetcher config section onto Options.
func OptionsFromConfig(cfg config.FetcherConfig, logger *slog.Logger) Options {
	return Options{
		Timeout:             cfg.Timeout,
		AcceptLanguage:      cfg.AcceptLanguage,
		Referer:             cfg.Referer,
		Identity:            IdentitiesFromConfig(cfg),
		RequestsPerSecond:   cfg.RequestsPerSecond,
		BlockedTitleMarkers: cfg.BlockedTitleMarkers,
		Logger:              logger,
	}
}

// Fetcher performs one GET per call with a browser-like identity. It never retries.
type Fetcher struct {
	client         *resty.Client
	limiter        *rate.Limiter
	identity       IdentityFunc
	acceptLanguage string
	referer        string
	blockedMarkers []string
	logger         *slog.Logger
}

var _ ports.PageFetcher = (*Fetcher)(nil)

// New builds a fetcher around a resty client with the Cloudflare bypass transport.
func New(opts Options) *Fetcher {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	identity := opts.Identity
	if identity == nil {
		identity = StaticIdentity("")
	}

	client := resty.New()
	if opts.Transport != nil {
		client.SetTransport(opts.Transport)
	}
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport, cloudflarebp.Options{
		AddMissingHeaders: true,
		Headers:           map[string]string{"Accept": acceptHTML},
	})
	// each fetch stands alone, so no cookies are carried between calls
	client.SetCookieJar(nil)
	client.SetTimeout(timeout)
	client.SetRetryCount(0)
	client.SetLogger(restyLogger{logger: logger})

	limit := rate.Inf
	if opts.RequestsPerSecond > 0 {
		limit = rate.Limit(opts.RequestsPerSecond)
	}

	return &Fetcher{
		client:         client,
		limiter:        rate.NewLimiter(limit, 1),
		identity:       identity,
		acceptLanguage: opts.AcceptLanguage,
		referer:        opts.Referer,
		blockedMarkers: opts.BlockedTitleMarkers,
		logger:         logger,
	}
}

// Fetch downloads and parses reviewsURL. Transport failures, timeouts, cancellation and
// non-2xx statuses all come back as *domain.FetchError.
func (f *Fetcher) Fetch(ctx context.Context, reviewsURL string) (ports.Page, error) {
	ctx, span := tracer.Start(ctx, "fetcher:Fetch")
	defer span.End()
	span.SetAttributes(attribute.String("url", reviewsURL))

	start := time.Now()
	page, outcome, err := f.fetch(ctx, reviewsURL)
	observability.ObserveFetch(outcome, time.Since(start))

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch reviews page")
		f.logger.WarnContext(ctx, "no document obtained", "url", reviewsURL, "error", err)
		return ports.Page{}, err
	}

	span.SetAttributes(attribute.Int("status", page.StatusCode))
	if page.Title == "" {
		f.logger.WarnContext(ctx, "could not fetch page title, possibly blocked or wrong page", "url", reviewsURL)
	} else {
		f.logger.InfoContext(ctx, "fetched page", "title", page.Title, "status", page.StatusCode)
	}
	for _, d := range page.Diagnostics {
		span.AddEvent(string(d))
	}

	return page, nil
}

func (f *Fetcher) fetch(ctx context.Context, reviewsURL string) (ports.Page, string, error) {
	parsed, err := url.Parse(reviewsURL)
	if err != nil || parsed.Host == "" {
		if err == nil {
			err = errors.New("missing host")
		}
		return ports.Page{}, "transport", &domain.FetchError{URL: reviewsURL, Err: fmt.Errorf("parse url: %w", err)}
	}

	if err := f.limiter.Wait(ctx); err != nil {
		return ports.Page{}, "canceled", &domain.FetchError{URL: reviewsURL, Err: err}
	}

	headers := map[string]string{
		"authority":       parsed.Host,
		"accept":          acceptHTML,
		"accept-language": f.acceptLanguage,
		"referer":         f.referer,
	}
	if ua := f.identity().UserAgent; ua != "" {
		headers["user-agent"] = ua
	}
	for k, v := range headers {
		if v == "" {
			delete(headers, k)
		}
	}

	res, err := f.client.R().
		SetContext(ctx).
		SetHeaders(headers).
		Get(reviewsURL)
	if err != nil {
		outcome := "transport"
		if ctx.Err() != nil {
			outcome = "canceled"
		}
		return ports.Page{}, outcome, &domain.FetchError{URL: reviewsURL, Err: err}
	}

	if !res.IsSuccess() {
		return ports.Page{}, "status", &domain.FetchError{
			URL:        reviewsURL,
			StatusCode: res.StatusCode(),
			Err:        fmt.Errorf("unexpected status %s", res.Status()),
		}
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(res.Body()))
	if err != nil {
		return ports.Page{}, "transport", &domain.FetchError{
			URL:        reviewsURL,
			StatusCode: res.StatusCode(),
			Err:        fmt.Errorf("parse document: %w", err),
		}
	}

	page := ports.Page{
		Document:   doc,
		Title:      strings.TrimSpace(doc.Find("title").First().Text()),
		StatusCode: res.StatusCode(),
	}
	page.Diagnostics = f.diagnose(page.Title)

	return page, "ok", nil
}

func (f *Fetcher) diagnose(title string) []domain.Diagnostic {
	if title == "" {
		return []domain.Diagnostic{domain.DiagnosticMissingTitle}
	}
	for _, marker := range f.blockedMarkers {
		if marker != "" && strings.Contains(strings.ToLower(title), strings.ToLower(marker)) {
			return []domain.Diagnostic{domain.DiagnosticBlocked}
		}
	}
	return nil
}

type restyLogger struct {
	logger *slog.Logger
}

func (l restyLogger) Errorf(format string, v ...interface{}) {
	l.logger.Error(strings.TrimSpace(fmt.Sprintf(format, v...)), "source", "resty")
}

func (l restyLogger) Warnf(format string, v ...interface{}) {
	l.logger.Warn(strings.TrimSpace(fmt.Sprintf(format, v...)), "source", "resty")
}

func (l restyLogger) Debugf(format string, v ...interface{}) {
	l.logger.Debug(strings.TrimSpace(fmt.Sprintf(format, v...)), "source", "resty")
}
