// Package fetch issues timed HTTP probes against the audited website.
// Transport failures are always converted to degraded results, never
// returned as errors; an unreachable site still yields a complete report.
package fetch

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/vizlens/vizlens/internal/core"
)

const (
	// DesktopUserAgent is sent on the primary fetch.
	DesktopUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
	// MobileUserAgent is used for the secondary timing measurement.
	MobileUserAgent = "Mozilla/5.0 (Linux; Android 10; SM-G973F) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Mobile Safari/537.36"

	// PreviewLimit caps the retained HTML prefix. The full body is never
	// kept beyond this budget.
	PreviewLimit = 8000

	defaultTimeout = 30 * time.Second
	probeTimeout   = 8 * time.Second
)

// Fetcher performs the website fetch and resource-existence probes.
type Fetcher struct {
	Client  *http.Client
	Timeout time.Duration
	Logger  *zap.Logger
}

// New returns a Fetcher with an insecure-TLS client. Certificate
// verification is disabled deliberately: the system audits arbitrary
// third-party sites whose certs may be self-signed or misconfigured, and
// availability wins over strict validation here.
func New(logger *zap.Logger) *Fetcher {
	transport := &http.Transport{
		TLSClientConfig: &tls.Config{InsecureSkipVerify: true}, // #nosec G402
	}
	return &Fetcher{
		Client:  &http.Client{Transport: transport, Timeout: defaultTimeout},
		Timeout: defaultTimeout,
		Logger:  logger,
	}
}

// Fetch retrieves the target URL under the desktop user agent, measures a
// second mobile-UA round trip, and probes robots.txt and sitemap.xml.
func (f *Fetcher) Fetch(ctx context.Context, url string) core.FetchResult {
	result := core.FetchResult{HasSSL: strings.HasPrefix(url, "https://")}

	start := time.Now()
	body, statusCode, err := f.get(ctx, url, DesktopUserAgent)
	if err != nil {
		result.Error = fmt.Sprintf("Failed to fetch website: %s", err)
		f.log().Warn("website fetch failed", zap.String("url", url), zap.Error(err))
		return result
	}
	desktopMillis := roundMillis(time.Since(start))
	result.DesktopMillis = &desktopMillis

	result.StatusCode = statusCode
	result.HTMLLength = len(body)
	if len(body) > PreviewLimit {
		body = body[:PreviewLimit]
	}
	result.HTMLPreview = body
	result.MobileMillis = f.measure(ctx, url, MobileUserAgent)

	base := strings.TrimRight(url, "/")
	result.HasRobots = f.Exists(ctx, base+"/robots.txt")
	result.HasSitemap = f.Exists(ctx, base+"/sitemap.xml")

	return result
}

// Exists reports whether a resource responds with a 2xx/3xx status,
// trying HEAD first and falling back to GET. All transport errors are
// swallowed as "not present".
func (f *Fetcher) Exists(ctx context.Context, url string) bool {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	if code, err := f.do(ctx, http.MethodHead, url, DesktopUserAgent); err == nil && code >= 200 && code < 400 {
		return true
	}
	code, err := f.do(ctx, http.MethodGet, url, DesktopUserAgent)
	return err == nil && code >= 200 && code < 400
}

// measure times a single GET under the given user agent, returning nil on
// any failure.
func (f *Fetcher) measure(ctx context.Context, url, userAgent string) *float64 {
	start := time.Now()
	if _, _, err := f.get(ctx, url, userAgent); err != nil {
		return nil
	}
	millis := roundMillis(time.Since(start))
	return &millis
}

func (f *Fetcher) get(ctx context.Context, url, userAgent string) (string, int, error) {
	if f.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.Timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", 0, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client().Do(req)
	if err != nil {
		return "", 0, err
	}
	defer resp.Body.Close() // nolint:errcheck // best-effort cleanup

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", resp.StatusCode, err
	}
	return string(body), resp.StatusCode, nil
}

func (f *Fetcher) do(ctx context.Context, method, url, userAgent string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client().Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close() // nolint:errcheck // best-effort cleanup
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.StatusCode, nil
}

func (f *Fetcher) client() *http.Client {
	if f.Client != nil {
		return f.Client
	}
	return http.DefaultClient
}

func (f *Fetcher) log() *zap.Logger {
	if f.Logger != nil {
		return f.Logger
	}
	return zap.NewNop()
}

func roundMillis(d time.Duration) float64 {
	return float64(d.Microseconds()/100) / 10
}
