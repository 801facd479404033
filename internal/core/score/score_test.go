package score

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vizlens/vizlens/internal/core"
)

func TestTechnicalScore(t *testing.T) {
	full := core.FetchResult{StatusCode: 200, HasSSL: true, HasRobots: true, HasSitemap: true}
	require.Equal(t, 100, Technical(full))

	require.Equal(t, 60, Technical(core.FetchResult{StatusCode: 200, HasSSL: true}))
	require.Equal(t, 0, Technical(core.FetchResult{StatusCode: 500}))
	require.Equal(t, 40, Technical(core.FetchResult{StatusCode: 200}))
}

func TestKeywordUsageTiers(t *testing.T) {
	text := "We sell plumbing supplies and boiler repair services in Leeds."

	require.Equal(t, "unknown", KeywordUsage(text, nil))
	require.Equal(t, "poor", KeywordUsage(text, []string{"bakery"}))
	require.Equal(t, "fair", KeywordUsage(text, []string{"plumbing", "bakery"}))
	require.Equal(t, "good", KeywordUsage(text, []string{"Plumbing", "BOILER", "leeds"}))
}

func TestKeywordUsageSkipsBlanks(t *testing.T) {
	require.Equal(t, "poor", KeywordUsage("anything", []string{"", "  "}))
}

func TestContentScore(t *testing.T) {
	require.Equal(t, 100, Content(true, true, "good", "good"))
	require.Equal(t, 85, Content(true, true, "good", "fair"))
	require.Equal(t, 60, Content(true, true, "fair", "poor"))
	require.Equal(t, 50, Content(true, true, "poor", "unknown"))
	require.Equal(t, 0, Content(false, false, "poor", "poor"))
}

func TestTrustNilWhenNoCredits(t *testing.T) {
	require.Nil(t, Trust(false, false, false, false))

	partial := Trust(true, false, true, false)
	require.NotNil(t, partial)
	require.Equal(t, 50, *partial)

	full := Trust(true, true, true, true)
	require.Equal(t, 100, *full)
}

func TestSocialScoreNormalization(t *testing.T) {
	none := map[core.Platform]core.PlatformMatch{
		core.PlatformFacebook: core.NoMatch(),
	}
	require.Nil(t, Social(none))

	oneLinked := map[core.Platform]core.PlatformMatch{
		core.PlatformFacebook: {URL: "https://facebook.com/acme", Source: core.ProvenanceWebsite, Confidence: core.ConfidenceHigh},
	}
	got := Social(oneLinked)
	require.NotNil(t, got)
	require.Equal(t, 17, *got) // 15 of 90

	allLinked := map[core.Platform]core.PlatformMatch{}
	for _, p := range core.Platforms {
		allLinked[p] = core.PlatformMatch{URL: "https://example.com/" + string(p), Source: core.ProvenanceWebsite, Confidence: core.ConfidenceHigh}
	}
	require.Equal(t, 100, *Social(allLinked))

	oneSearched := map[core.Platform]core.PlatformMatch{
		core.PlatformTikTok: {URL: "https://tiktok.com/@acme", Source: core.ProvenanceSearch, Confidence: core.ConfidenceLow},
	}
	require.Equal(t, 16, *Social(oneSearched)) // 14 of 90
}

func TestTotalPlatformsIgnoresSentinels(t *testing.T) {
	platforms := map[core.Platform]core.PlatformMatch{
		core.PlatformFacebook:  {URL: "https://facebook.com/acme", Source: core.ProvenanceWebsite, Confidence: core.ConfidenceHigh},
		core.PlatformInstagram: core.NoMatch(),
	}
	require.Equal(t, 1, TotalPlatforms(platforms))
}

func TestIntegrationQuality(t *testing.T) {
	website := func(url string) core.PlatformMatch {
		return core.PlatformMatch{URL: url, Source: core.ProvenanceWebsite, Confidence: core.ConfidenceHigh}
	}
	search := func(url string) core.PlatformMatch {
		return core.PlatformMatch{URL: url, Source: core.ProvenanceSearch, Confidence: core.ConfidenceLow}
	}

	require.Equal(t, "poor", IntegrationQuality(map[core.Platform]core.PlatformMatch{
		core.PlatformFacebook: core.NoMatch(),
	}))
	require.Equal(t, "excellent", IntegrationQuality(map[core.Platform]core.PlatformMatch{
		core.PlatformFacebook:  website("https://facebook.com/acme"),
		core.PlatformInstagram: website("https://instagram.com/acme"),
	}))
	require.Equal(t, "good", IntegrationQuality(map[core.Platform]core.PlatformMatch{
		core.PlatformFacebook:  website("https://facebook.com/acme"),
		core.PlatformInstagram: search("https://instagram.com/acme"),
	}))
	require.Equal(t, "fair", IntegrationQuality(map[core.Platform]core.PlatformMatch{
		core.PlatformFacebook:  website("https://facebook.com/acme"),
		core.PlatformInstagram: search("https://instagram.com/acme"),
		core.PlatformLinkedIn:  search("https://linkedin.com/company/acme"),
		core.PlatformYouTube:   search("https://youtube.com/@acme"),
	}))
	require.Equal(t, "poor", IntegrationQuality(map[core.Platform]core.PlatformMatch{
		core.PlatformFacebook:  search("https://facebook.com/acme"),
		core.PlatformInstagram: search("https://instagram.com/acme"),
		core.PlatformLinkedIn:  search("https://linkedin.com/company/acme"),
		core.PlatformYouTube:   search("https://youtube.com/@acme"),
		core.PlatformTwitter:   search("https://x.com/acme"),
	}))
}

func TestSocialRecommendations(t *testing.T) {
	platforms := map[core.Platform]core.PlatformMatch{}
	for _, p := range core.Platforms {
		platforms[p] = core.PlatformMatch{URL: "https://example.com/" + string(p), Source: core.ProvenanceWebsite, Confidence: core.ConfidenceHigh}
	}
	require.Equal(t, []string{"Maintain consistent posting on active social channels."}, SocialRecommendations(platforms))

	platforms[core.PlatformTikTok] = core.NoMatch()
	platforms[core.PlatformTwitter] = core.PlatformMatch{URL: "https://x.com/acme", Source: core.ProvenanceSearch, Confidence: core.ConfidenceLow}
	recs := SocialRecommendations(platforms)
	require.Len(t, recs, 2)
	require.Contains(t, recs[0], "twitter profile from your website")
	require.Contains(t, recs[1], "tiktok profile")
}

func TestLocalScore(t *testing.T) {
	require.Equal(t, 0, Local(core.ListingNotFound()))

	rating := 4.5
	reviews := 120
	listing := core.BusinessListing{Found: "YES", Rating: &rating, Reviews: &reviews}
	require.Equal(t, 94, Local(listing)) // 54 + 40

	fewReviews := 5
	listing.Reviews = &fewReviews
	require.Equal(t, 69, Local(listing)) // 54 + 15

	// Missing rating and review count fall back to defaults.
	require.Equal(t, 58, Local(core.BusinessListing{Found: "YES"})) // 48 + 10

	perfect := 5.0
	many := 500
	require.Equal(t, 100, Local(core.BusinessListing{Found: "YES", Rating: &perfect, Reviews: &many}))
}

func TestOverallScoreAndGrade(t *testing.T) {
	technical, content := 80, 70
	require.Equal(t, 38, Overall(&technical, &content, nil, nil))
	require.Equal(t, 0, Overall(nil, nil, nil, nil))

	hundred := 100
	require.Equal(t, 100, Overall(&hundred, &hundred, &hundred, &hundred))

	require.Equal(t, "A", Grade(92))
	require.Equal(t, "B", Grade(80))
	require.Equal(t, "C", Grade(74))
	require.Equal(t, "D", Grade(61))
	require.Equal(t, "E", Grade(50))
	require.Equal(t, "F", Grade(49))
	require.NotEmpty(t, GradeDescription("F"))
}

func TestFindings(t *testing.T) {
	issues, strengths := TechnicalFindings(core.FetchResult{StatusCode: 404, HasSSL: true})
	require.Equal(t, []string{"Website returned status 404", "robots.txt missing", "sitemap.xml missing"}, issues)
	require.Equal(t, []string{"Valid SSL detected"}, strengths)

	contentIssues, contentStrengths := ContentFindings(true, false)
	require.Equal(t, []string{"Missing meta description"}, contentIssues)
	require.Equal(t, []string{"Meta title found"}, contentStrengths)

	findings := KeyFindings(issues, strengths, contentIssues, contentStrengths)
	require.Equal(t, []string{"Valid SSL detected", "Meta title found"}, findings.Strengths)
	require.Len(t, findings.Weaknesses, 4)
	require.Empty(t, findings.Threats)
}

func TestTrustIssues(t *testing.T) {
	require.Equal(t,
		[]string{"Trust signals not fully evaluated in manual fetch-only mode"},
		TrustIssues(false, false, false, false, false))
	require.Empty(t, TrustIssues(true, true, true, true, true))
	require.Equal(t,
		[]string{"Privacy policy not detected in HTML", "Terms & conditions not detected in HTML"},
		TrustIssues(true, true, false, false, true))
}
