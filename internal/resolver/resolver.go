package resolver

import (
	"fmt"
	"regexp"
	"strings"

	"ReviewScanner/internal/config"
	"ReviewScanner/internal/domain"
	"ReviewScanner/internal/ports"
)

// Resolver recognizes product page URLs of one site and derives the reviews listing URL.
type Resolver struct {
	pattern *regexp.Regexp
	suffix  string
}

var _ ports.URLResolver = (*Resolver)(nil)

// New compiles the product URL pattern for the configured site and top-level domains.
func New(cfg config.ResolverConfig) (*Resolver, error) {
	if cfg.Site == "" || len(cfg.TLDs) == 0 {
		return nil, fmt.Errorf("resolver needs a site and at least one tld")
	}

	tlds := make([]string, 0, len(cfg.TLDs))
	for _, tld := range cfg.TLDs {
		tlds = append(tlds, regexp.QuoteMeta(strings.TrimPrefix(tld, ".")))
	}

	expr := fmt.Sprintf(`^(https://www\.%s\.(?:%s)/[^/?#]+)/dp/([^/?#]+)`,
		regexp.QuoteMeta(cfg.Site), strings.Join(tlds, "|"))
	pattern, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("compile product pattern: %w", err)
	}

	return &Resolver{pattern: pattern, suffix: strings.TrimPrefix(cfg.ReviewsSuffix, "/")}, nil
}

// Resolve validates raw and returns the product with its reviews URL.
// Input that does not match fails with domain.ErrInvalidURL.
func (r *Resolver) Resolve(raw string) (domain.Target, error) {
	raw = strings.TrimSpace(raw)

	groups := r.pattern.FindStringSubmatch(raw)
	if groups == nil {
		return domain.Target{}, fmt.Errorf("%w: %q", domain.ErrInvalidURL, raw)
	}

	product := domain.ProductURL{Raw: raw, Base: groups[1], ProductID: groups[2]}
	reviewsURL := fmt.Sprintf("%s/product-reviews/%s/%s", product.Base, product.ProductID, r.suffix)

	return domain.Target{Product: product, ReviewsURL: reviewsURL}, nil
}
