package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"dario.cat/mergo"
	"gopkg.in/yaml.v3"
)

const (
	configPathEnv   = "REVIEW_SCANNER_CONFIG"
	logLevelEnv     = "REVIEW_SCANNER_LOG_LEVEL"
	httpAddrEnv     = "REVIEW_SCANNER_HTTP_ADDR"
	fetchTimeoutEnv = "REVIEW_SCANNER_FETCH_TIMEOUT"
	rateLimitEnv    = "REVIEW_SCANNER_RATE_LIMIT"
)

// Rotation strategies understood by the fetcher.
const (
	RotationRoundRobin = "round_robin"
	RotationRandom     = "random"
)

// Config holds high-level settings required across the application.
type Config struct {
	Logging   LoggingConfig       `yaml:"logging"`
	Resolver  ResolverConfig      `yaml:"resolver"`
	Fetcher   FetcherConfig       `yaml:"fetcher"`
	Selectors map[string][]string `yaml:"selectors"`
	Server    ServerConfig        `yaml:"server"`
	Watch     WatchConfig         `yaml:"watch"`
}

// LoggingConfig selects the slog level and handler.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// ResolverConfig describes the recognized product URL shape.
type ResolverConfig struct {
	Site          string   `yaml:"site"`
	TLDs          []string `yaml:"tlds"`
	ReviewsSuffix string   `yaml:"reviewsSuffix"`
}

// FetcherConfig controls the outbound request made for each scrape.
type FetcherConfig struct {
	Timeout             time.Duration `yaml:"timeout"`
	AcceptLanguage      string        `yaml:"acceptLanguage"`
	Referer             string        `yaml:"referer"`
	UserAgents          []string      `yaml:"userAgents"`
	Rotation            string        `yaml:"rotation"`
	RequestsPerSecond   float64       `yaml:"requestsPerSecond"`
	BlockedTitleMarkers []string      `yaml:"blockedTitleMarkers"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr           string        `yaml:"addr"`
	RequestTimeout time.Duration `yaml:"requestTimeout"`
}

// WatchConfig configures periodic re-scraping.
type WatchConfig struct {
	Interval time.Duration `yaml:"interval"`
}

// Load reads YAML configuration from REVIEW_SCANNER_CONFIG (if present) and applies environment
// overrides. Unreadable files fall back to defaults.
func Load() Config {
	if path := os.Getenv(configPathEnv); path != "" {
		cfg, err := LoadFrom(path)
		if err == nil {
			return cfg
		}
		log.Printf("config: %v (falling back to defaults)", err)
	}

	cfg := defaultConfig()
	cfg.applyEnvOverrides()
	return cfg
}

// LoadFrom reads the YAML file at path, merges it over the defaults and applies environment overrides.
func LoadFrom(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("cannot read %s: %w", path, err)
	}

	cfg, err := Parse(raw)
	if err != nil {
		return Config{}, fmt.Errorf("cannot parse %s: %w", path, err)
	}
	cfg.applyEnvOverrides()

	return cfg, nil
}

// Parse decodes YAML and merges it over the defaults.
func Parse(raw []byte) (Config, error) {
	var fileCfg Config
	if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
		return Config{}, err
	}

	cfg := defaultConfig()
	if err := mergo.Merge(&cfg, fileCfg, mergo.WithOverride); err != nil {
		return Config{}, fmt.Errorf("merge config: %w", err)
	}

	return cfg, nil
}

// Validate reports settings the pipeline cannot run with.
func (c Config) Validate() error {
	if len(c.Selectors["review"]) == 0 {
		return fmt.Errorf("selectors.review must list at least one selector")
	}
	if c.Fetcher.Timeout <= 0 {
		return fmt.Errorf("fetcher.timeout must be positive")
	}
	if len(c.Fetcher.UserAgents) == 0 {
		return fmt.Errorf("fetcher.userAgents must not be empty")
	}
	switch c.Fetcher.Rotation {
	case RotationRoundRobin, RotationRandom:
	default:
		return fmt.Errorf("unknown fetcher.rotation %q", c.Fetcher.Rotation)
	}
	if c.Resolver.Site == "" || len(c.Resolver.TLDs) == 0 {
		return fmt.Errorf("resolver.site and resolver.tlds are required")
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(logLevelEnv); v != "" {
		c.Logging.Level = v
	}

	if v := os.Getenv(httpAddrEnv); v != "" {
		c.Server.Addr = v
	}

	if v := os.Getenv(fetchTimeoutEnv); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			log.Printf("config: invalid %s %q: %v", fetchTimeoutEnv, v, err)
		} else {
			c.Fetcher.Timeout = d
		}
	}

	if v := os.Getenv(rateLimitEnv); v != "" {
		rps, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			log.Printf("config: invalid %s %q: %v", rateLimitEnv, v, err)
		} else {
			c.Fetcher.RequestsPerSecond = rps
		}
	}
}

func defaultConfig() Config {
	return Config{
		Logging: LoggingConfig{Level: "info", Format: "text"},
		Resolver: ResolverConfig{
			Site:          "amazon",
			TLDs:          []string{"in", "com"},
			ReviewsSuffix: "ref=cm_cr_dp_d_show_all_btm?ie=UTF8&reviewerType=all_reviews",
		},
		Fetcher: FetcherConfig{
			Timeout:        10 * time.Second,
			AcceptLanguage: "en-US,en;q=0.9",
			Referer:        "https://www.google.com/",
			UserAgents: []string{
				"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:109.0) Gecko/20100101 Firefox/117.0",
				"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/122.0.0.0 Safari/537.36",
				"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/16.3 Safari/605.1.15",
				"Mozilla/5.0 (X11; Ubuntu; Linux x86_64; rv:89.0) Gecko/20100101 Firefox/89.0",
			},
			Rotation:            RotationRandom,
			BlockedTitleMarkers: []string{"Robot Check", "Sorry! Something went wrong"},
		},
		Selectors: DefaultSelectors(),
		Server:    ServerConfig{Addr: ":8080", RequestTimeout: 30 * time.Second},
		Watch:     WatchConfig{Interval: time.Hour},
	}
}

// DefaultSelectors returns the review markup markers of the current site layout.
// Candidates are tried in order; the first one that matches wins.
func DefaultSelectors() map[string][]string {
	return map[string][]string{
		"review":       {`div[data-hook="review"]`},
		"reviewerName": {".a-profile-name"},
		"starRating":   {`[data-hook="review-star-rating"]`, `[data-hook="cmps-review-star-rating"]`},
		"title":        {`[data-hook="review-title"]`},
		"reviewDate":   {`[data-hook="review-date"]`},
		"body":         {`[data-hook="review-body"]`},
	}
}
