package resolve

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/vizlens/vizlens/internal/core"
)

// blockedPathFragments reject content-detail URLs (posts, reels, videos)
// that are never profile pages.
var blockedPathFragments = []string{"p/", "reel/", "tv/", "watch", "shorts", "video"}

// SocialResolver resolves each platform in order: an on-site link is
// authoritative and skips search entirely; otherwise the top token-
// verified search hit is accepted with LOW confidence; otherwise the
// platform is marked not found. Search failures of any kind degrade to
// not-found and never fail the audit.
type SocialResolver struct {
	Search *SerperClient
	Logger *zap.Logger
}

// Resolve returns one Outcome per platform.
func (r *SocialResolver) Resolve(ctx context.Context, input *core.AuditInput, websiteLinks map[core.Platform]string, tokens []string) map[core.Platform]Outcome {
	results := make(map[core.Platform]Outcome, len(core.Platforms))

	for _, platform := range core.Platforms {
		if link := websiteLinks[platform]; link != "" {
			results[platform] = resolved(core.PlatformMatch{
				URL:        link,
				Source:     core.ProvenanceWebsite,
				Confidence: core.ConfidenceHigh,
			})
			continue
		}
		results[platform] = r.viaSearch(ctx, input, platform, tokens)
	}

	return results
}

func (r *SocialResolver) viaSearch(ctx context.Context, input *core.AuditInput, platform core.Platform, tokens []string) Outcome {
	if !r.Search.Configured() {
		return unavailable("search api key not configured")
	}

	name := strings.TrimSpace(input.BusinessName)
	if name == "" {
		return unavailable("business name missing")
	}

	domain := core.PlatformDomains[platform]
	query := searchQuery(name, platform, domain)

	resp, err := r.Search.Search(ctx, query, searchCountry(input))
	if err != nil {
		r.log().Info("social search failed",
			zap.String("platform", string(platform)),
			zap.Error(err))
		return unavailable(fmt.Sprintf("search failed: %s", err))
	}
	if len(resp.Organic) == 0 {
		return notFound("no organic results")
	}

	for _, hit := range resp.Organic {
		link := strings.TrimSpace(hit.Link)
		if link == "" {
			continue
		}

		matchDomain := domain
		if platform == core.PlatformTwitter {
			// x.com and twitter.com are interchangeable.
			switch {
			case strings.Contains(link, "twitter.com"):
				matchDomain = "twitter.com"
			case strings.Contains(link, "x.com"):
				matchDomain = "x.com"
			default:
				continue
			}
		} else if !strings.Contains(link, domain) {
			continue
		}

		username := ExtractUsername(link, matchDomain)
		if username == "" {
			continue
		}
		if !containsAnyToken(strings.ToLower(username), tokens) {
			continue
		}

		return resolved(core.PlatformMatch{
			URL:        link,
			Source:     core.ProvenanceSearch,
			Confidence: core.ConfidenceLow,
		})
	}

	return notFound("no result matched an identity token")
}

// searchQuery builds the platform-specific query string.
func searchQuery(name string, platform core.Platform, domain string) string {
	switch platform {
	case core.PlatformYouTube:
		return name + " YouTube channel"
	case core.PlatformTwitter:
		return name + " X"
	case core.PlatformTikTok:
		return name + " TikTok"
	default:
		return fmt.Sprintf("%s site:%s", name, domain)
	}
}

// searchCountry picks the country bias for search: first country given,
// else "us".
func searchCountry(input *core.AuditInput) string {
	for _, country := range input.Country {
		if country = strings.TrimSpace(country); country != "" {
			return country
		}
	}
	return "us"
}

// ExtractUsername pulls the profile handle out of a platform URL, or ""
// when the path is not a profile page.
func ExtractUsername(raw, domain string) string {
	parsed, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	path := strings.Trim(parsed.Path, "/")
	if path == "" {
		return ""
	}

	for _, fragment := range blockedPathFragments {
		if strings.Contains(path, fragment) {
			return ""
		}
	}

	switch domain {
	case "youtube.com":
		switch {
		case strings.HasPrefix(path, "@"):
			return path[1:]
		case strings.HasPrefix(path, "c/"):
			return path[2:]
		case strings.HasPrefix(path, "channel/"):
			return path[len("channel/"):]
		}
		return ""
	case "instagram.com":
		if strings.Contains(path, "/") {
			return ""
		}
		return path
	case "tiktok.com":
		if strings.HasPrefix(path, "@") {
			return path[1:]
		}
		return ""
	case "linkedin.com":
		if strings.HasPrefix(path, "company/") {
			return path[len("company/"):]
		}
		return ""
	}

	return strings.SplitN(path, "/", 2)[0]
}

func containsAnyToken(haystack string, tokens []string) bool {
	for _, token := range tokens {
		if token != "" && strings.Contains(haystack, token) {
			return true
		}
	}
	return false
}

func (r *SocialResolver) log() *zap.Logger {
	if r != nil && r.Logger != nil {
		return r.Logger
	}
	return zap.NewNop()
}
