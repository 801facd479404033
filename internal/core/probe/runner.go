// Package probe runs the deep site checks that sit underneath the audit
// pillars: performance, security headers, on-page structure, sitemap,
// internal linking, keyword frequency, and domain registration. Every
// probe is additive and failure-isolated.
package probe

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	// DefaultInternalLimit bounds the internal-link crawl.
	DefaultInternalLimit = 75
	// DefaultKeywordTop bounds the keyword report.
	DefaultKeywordTop = 20
	// DefaultLinkLimit bounds the outbound link status checks.
	DefaultLinkLimit = 120

	probeUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
	probeTimeout   = 20 * time.Second
	toolTimeout    = 180 * time.Second
)

// CommandRunner executes an external tool and returns its stdout, stderr,
// and exit error. Swappable for tests.
type CommandRunner func(ctx context.Context, name string, args ...string) (stdout, stderr []byte, err error)

// DomainLookup resolves registration data for a registrable domain.
// Satisfied by the RDAP adapter and swappable for tests.
type DomainLookup interface {
	LookupDomain(ctx context.Context, domain string) (DomainRegistration, error)
}

// Runner executes all probes for one target URL.
type Runner struct {
	Client        *http.Client
	PSIBaseURL    string
	PSIKey        string
	Exec          CommandRunner
	Registry      DomainLookup
	InternalLimit int
	KeywordTop    int
	Logger        *zap.Logger

	now func() time.Time
}

// New builds a Runner with production defaults. psiKey may be empty, in
// which case performance probing falls back to a local lighthouse binary.
func New(psiKey string, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		Client: &http.Client{
			Timeout:   probeTimeout,
			Transport: insecureTransport(),
		},
		PSIBaseURL:    psiEndpoint,
		PSIKey:        psiKey,
		Exec:          execCommand,
		Registry:      NewRDAPLookup(),
		InternalLimit: DefaultInternalLimit,
		KeywordTop:    DefaultKeywordTop,
		Logger:        logger,
		now:           time.Now,
	}
}

// Run executes every probe against the target URL in one pass.
func (r *Runner) Run(ctx context.Context, target string) *Results {
	page := r.fetchPage(ctx, target)
	html := page.HTML

	results := &Results{
		Lighthouse: Lighthouse{
			Mobile:  r.performance(ctx, target, "mobile"),
			Desktop: r.performance(ctx, target, "desktop"),
		},
		Security: r.securityScan(ctx, target),
		Extractor: Extraction{
			Headers: r.extractHeaders(html),
			Images:  r.extractImages(html, target),
			Links:   r.extractLinks(ctx, html, target, DefaultLinkLimit),
		},
		Sitemap:            r.extractSitemap(ctx, target),
		InternalLinks:      r.crawlInternalLinks(ctx, target, r.internalLimit()),
		Keywords:           r.extractKeywords(html, 3, r.keywordTop()),
		Summary:            summarizeText(html, 3),
		Page:               page,
		DomainRegistration: r.domainRegistration(ctx, target),
	}
	return results
}

func (r *Runner) internalLimit() int {
	if r.InternalLimit > 0 {
		return r.InternalLimit
	}
	return DefaultInternalLimit
}

func (r *Runner) keywordTop() int {
	if r.KeywordTop > 0 {
		return r.KeywordTop
	}
	return DefaultKeywordTop
}

func (r *Runner) timestamp() string {
	clock := r.now
	if clock == nil {
		clock = time.Now
	}
	return clock().Format(time.RFC3339)
}

func (r *Runner) fetchPage(ctx context.Context, target string) Page {
	page := Page{URL: target}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		page.Error = "Failed to fetch page: " + err.Error()
		return page
	}
	req.Header.Set("User-Agent", probeUserAgent)

	resp, err := r.Client.Do(req)
	if err != nil {
		page.Error = "Failed to fetch page: " + err.Error()
		return page
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		page.Error = "Failed to fetch page: " + err.Error()
		return page
	}

	page.StatusCode = resp.StatusCode
	page.HTML = string(body)
	return page
}

// statusCode probes a single URL with HEAD, falling back to GET; an
// unreachable URL is bucketed as 500.
func (r *Runner) statusCode(ctx context.Context, target string) int {
	for _, method := range []string{http.MethodHead, http.MethodGet} {
		req, err := http.NewRequestWithContext(ctx, method, target, nil)
		if err != nil {
			continue
		}
		req.Header.Set("User-Agent", probeUserAgent)

		resp, err := r.Client.Do(req)
		if err != nil {
			continue
		}
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
		return resp.StatusCode
	}
	return http.StatusInternalServerError
}

// resolveURL joins href against base, dropping fragments, mailto:, and
// tel: pseudo-links.
func resolveURL(base, href string) string {
	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(href, "#") ||
		strings.HasPrefix(href, "mailto:") || strings.HasPrefix(href, "tel:") {
		return ""
	}

	baseURL, err := url.Parse(base)
	if err != nil || baseURL.Scheme == "" || baseURL.Host == "" {
		return ""
	}
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}

	resolved := baseURL.ResolveReference(ref)
	resolved.Fragment = ""
	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return ""
	}
	return resolved.String()
}

func urlPath(raw string) string {
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Path == "" {
		return "/"
	}
	return parsed.Path
}
