// Package extract pulls audit signals out of fetched HTML. It runs two
// deliberate passes: a regex pre-pass for simple tag-presence checks and a
// goquery DOM pass where exact anchor text matters. Callers consume a
// single Signals value and never care which pass produced a field.
package extract

import (
	"context"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/vizlens/vizlens/internal/core"
)

var (
	titleRe       = regexp.MustCompile(`(?i)<title[^>]*>([^<]*)</title>`)
	descriptionRe = regexp.MustCompile(`(?i)<meta[^>]+name=["']description["'][^>]+content=["']([^"']*)["']`)
	h1Re          = regexp.MustCompile(`(?i)<h1[^>]*>`)
	h2Re          = regexp.MustCompile(`(?i)<h2[^>]*>`)
	viewportRe    = regexp.MustCompile(`(?i)<meta[^>]+name=["']viewport["'][^>]*>`)
	privacyRe     = regexp.MustCompile(`(?i)privacy\s*(policy|notice|statement)`)
	termsFullRe   = regexp.MustCompile(`(?i)terms\s*(of\s*service|conditions|use)`)
	termsAnyRe    = regexp.MustCompile(`(?i)terms`)
	phoneRe       = regexp.MustCompile(`\+?\d{1,3}[-.\s]?\(?\d{1,4}\)?[-.\s]?\d{1,4}[-.\s]?\d{1,9}`)
	emailRe       = regexp.MustCompile(`(?i)[A-Z0-9._%+-]+@[A-Z0-9.-]+\.[A-Z]{2,}`)
	socialRe      = regexp.MustCompile(`(?i)https?://(www\.)?(facebook|instagram|linkedin|youtube|tiktok|x|twitter)\.com/[^"'<>\s]+`)
	tagRe         = regexp.MustCompile(`(?s)<[^>]*>`)
	spaceRe       = regexp.MustCompile(`\s+`)
)

// privacyPaths and termsPaths are the conventional locations probed when
// the markup itself carries no trust-page mention.
var privacyPaths = []string{
	"/privacy",
	"/privacy-policy",
	"/privacy.html",
	"/privacy-policy.html",
}

var termsPaths = []string{
	"/terms",
	"/terms-of-service",
	"/terms-of-use",
	"/terms-and-conditions",
	"/terms-conditions",
	"/legal/terms",
	"/legal",
	"/terms.html",
	"/terms-of-service.html",
	"/terms-of-use.html",
	"/terms-and-conditions.html",
	"/terms-conditions.html",
}

// Prober checks whether a URL responds. The fetcher satisfies this.
type Prober interface {
	Exists(ctx context.Context, url string) bool
}

// Signals is every field the extractor can produce. Empty HTML yields the
// zero value with TrustEvaluated false.
type Signals struct {
	MetaTitle        *string
	MetaDescription  *string
	HasH1            bool
	HasH2            bool
	HeadingStructure string // good / fair / poor
	HasViewport      bool
	PrivacyFound     bool
	TermsFound       bool
	ContactVisible   bool
	TrustEvaluated   bool
	SocialLinks      map[core.Platform]string
	Text             string
}

// Extractor runs the two extraction passes. Prober is optional; without
// it the trust-page fallback probes are skipped.
type Extractor struct {
	Prober Prober
	Logger *zap.Logger
}

// Extract tolerates empty HTML: all fields stay null/false and no error
// is ever returned.
func (e *Extractor) Extract(ctx context.Context, html, baseURL string) Signals {
	signals := Signals{HeadingStructure: "poor", SocialLinks: map[core.Platform]string{}}
	if strings.TrimSpace(html) == "" {
		return signals
	}

	if m := titleRe.FindStringSubmatch(html); m != nil {
		title := strings.TrimSpace(m[1])
		if title != "" {
			signals.MetaTitle = &title
		}
	}
	if m := descriptionRe.FindStringSubmatch(html); m != nil {
		description := strings.TrimSpace(m[1])
		if description != "" {
			signals.MetaDescription = &description
		}
	}

	signals.HasH1 = h1Re.MatchString(html)
	signals.HasH2 = h2Re.MatchString(html)
	switch {
	case signals.HasH1 && signals.HasH2:
		signals.HeadingStructure = "good"
	case signals.HasH1:
		signals.HeadingStructure = "fair"
	}

	signals.HasViewport = viewportRe.MatchString(html)
	signals.Text = StripText(html)
	signals.SocialLinks = SocialLinks(html)

	signals.TrustEvaluated = true
	signals.PrivacyFound = privacyRe.MatchString(html)
	signals.TermsFound = termsFullRe.MatchString(html) || termsAnyRe.MatchString(html)
	signals.ContactVisible = phoneRe.MatchString(html) || emailRe.MatchString(html)

	base := strings.TrimRight(baseURL, "/")
	if !signals.PrivacyFound {
		signals.PrivacyFound = e.probeAny(ctx, base, privacyPaths)
	}
	if !signals.TermsFound {
		signals.TermsFound = e.probeAny(ctx, base, termsPaths)
		if !signals.TermsFound {
			signals.TermsFound = e.followTermsLink(ctx, html, baseURL)
		}
	}

	return signals
}

// SocialLinks records the first occurrence of each platform domain in the
// markup. x.com and twitter.com both map to the twitter slot.
func SocialLinks(html string) map[core.Platform]string {
	found := make(map[core.Platform]string)
	for _, raw := range socialRe.FindAllString(html, -1) {
		lower := strings.ToLower(raw)
		var platform core.Platform
		switch {
		case strings.Contains(lower, "facebook.com"):
			platform = core.PlatformFacebook
		case strings.Contains(lower, "instagram.com"):
			platform = core.PlatformInstagram
		case strings.Contains(lower, "linkedin.com"):
			platform = core.PlatformLinkedIn
		case strings.Contains(lower, "youtube.com"):
			platform = core.PlatformYouTube
		case strings.Contains(lower, "tiktok.com"):
			platform = core.PlatformTikTok
		case strings.Contains(lower, "x.com"), strings.Contains(lower, "twitter.com"):
			platform = core.PlatformTwitter
		default:
			continue
		}
		if _, ok := found[platform]; !ok {
			found[platform] = raw
		}
	}
	return found
}

// StripText returns the visible text of the document. The DOM pass is
// preferred; malformed markup falls back to tag stripping.
func StripText(html string) string {
	if doc, err := goquery.NewDocumentFromReader(strings.NewReader(html)); err == nil {
		doc.Find("script, style, noscript").Remove()
		return strings.TrimSpace(spaceRe.ReplaceAllString(doc.Text(), " "))
	}
	return strings.TrimSpace(spaceRe.ReplaceAllString(tagRe.ReplaceAllString(html, " "), " "))
}

func (e *Extractor) probeAny(ctx context.Context, base string, paths []string) bool {
	if e == nil || e.Prober == nil || base == "" {
		return false
	}
	for _, path := range paths {
		if e.Prober.Exists(ctx, base+path) {
			return true
		}
	}
	return false
}

// followTermsLink walks the anchors for a terms-looking link and probes
// the resolved target. Many sites only expose legal pages from a footer.
func (e *Extractor) followTermsLink(ctx context.Context, html, baseURL string) bool {
	if e == nil || e.Prober == nil {
		return false
	}

	href := LinkByKeyword(html, []string{"terms", "terms-of-service", "terms-and-conditions"})
	if href == "" {
		return false
	}
	resolved := ResolveURL(baseURL, href)
	if resolved == "" {
		return false
	}
	return e.Prober.Exists(ctx, resolved)
}

// LinkByKeyword returns the first anchor whose text or href contains one
// of the keywords, or "".
func LinkByKeyword(html string, keywords []string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}

	var match string
	doc.Find("a[href]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		href, ok := s.Attr("href")
		if !ok || href == "" {
			return true
		}
		text := strings.ToLower(strings.TrimSpace(s.Text()))
		hrefLower := strings.ToLower(href)
		for _, kw := range keywords {
			kw = strings.ToLower(kw)
			if strings.Contains(text, kw) || strings.Contains(hrefLower, kw) {
				match = href
				return false
			}
		}
		return true
	})
	return match
}

// ResolveURL resolves an href against a base URL, returning "" for
// fragments, mailto/tel links, and unparseable input.
func ResolveURL(baseURL, href string) string {
	if href == "" || strings.HasPrefix(href, "#") ||
		strings.HasPrefix(href, "mailto:") || strings.HasPrefix(href, "tel:") {
		return ""
	}

	base, err := url.Parse(baseURL)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return ""
	}
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}

	resolved := base.ResolveReference(ref)
	resolved.Fragment = ""
	return resolved.String()
}
