package engine

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/vizlens/vizlens/internal/ailink"
	"github.com/vizlens/vizlens/internal/ailink/driver"
	"github.com/vizlens/vizlens/internal/config"
	"github.com/vizlens/vizlens/internal/core"
	"github.com/vizlens/vizlens/internal/core/extract"
	"github.com/vizlens/vizlens/internal/core/fetch"
	"github.com/vizlens/vizlens/internal/core/probe"
	"github.com/vizlens/vizlens/internal/core/resolve"
)

func probeReport(lcp, speedIndex *float64) probe.PerformanceReport {
	return probe.PerformanceReport{Metrics: &probe.PerformanceMetrics{
		LargestContentfulPaintMs: lcp,
		SpeedIndexMs:             speedIndex,
	}}
}

func scoredReport(performance *float64) probe.PerformanceReport {
	if performance == nil {
		return probe.PerformanceReport{}
	}
	return probe.PerformanceReport{Scores: &probe.PerformanceScores{Performance: performance}}
}

const samplePage = `<!doctype html><html><head>
<title>Acme Widgets | Precision Parts</title>
<meta name="description" content="Precision widgets made in Leeds.">
<meta name="viewport" content="width=device-width, initial-scale=1">
</head><body>
<h1>Acme Widgets</h1>
<h2>What we make</h2>
<p>Contact us at hello@acmewidgets.co.uk for quotes.</p>
<a href="https://facebook.com/acmewidgets">Facebook</a>
</body></html>`

func sampleInput(url string) core.AuditInput {
	return core.AuditInput{
		WebsiteURL:     url,
		BusinessName:   "Acme Widgets",
		Industry:       "Manufacturing",
		Country:        core.StringList{"United Kingdom"},
		City:           core.StringList{"Leeds"},
		TargetAudience: "Procurement managers",
		Keywords:       []string{"widgets"},
	}
}

func newTestEngine(t *testing.T) *Engine {
	t.Helper()

	logger := zap.NewNop()
	fetcher := fetch.New(logger)

	base := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	tick := 0
	return &Engine{
		Fetcher:     fetcher,
		Extractor:   &extract.Extractor{Prober: fetcher, Logger: logger},
		Socials:     &resolve.SocialResolver{Search: &resolve.SerperClient{}, Logger: logger},
		Listings:    &resolve.ListingResolver{Places: &resolve.PlacesClient{}, Logger: logger},
		Synthesizer: ailink.New(nil, "", logger),
		Logger:      logger,
		Clock: func() time.Time {
			tick++
			return base.Add(time.Duration(tick) * 250 * time.Millisecond)
		},
	}
}

func TestRunProducesCompleteReportWithoutAPIKeys(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/":
			_, _ = w.Write([]byte(samplePage))
		case "/robots.txt":
			_, _ = w.Write([]byte("User-agent: *\n"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	engine := newTestEngine(t)
	response := engine.Run(context.Background(), sampleInput(server.URL))

	// No completion driver configured, so the envelope reports fallback mode.
	require.False(t, response.Success)
	require.Equal(t, "Audit completed with fallback data (OpenAI API key not configured)", response.Message)
	require.NotNil(t, response.AuditResults)
	report := response.AuditResults

	// Website pillars.
	tech := report.WebsiteAudit.TechnicalSEO
	require.False(t, tech.SSLValid)
	require.True(t, tech.RobotsTxtPresent)
	require.False(t, tech.SitemapXMLPresent)
	require.Contains(t, tech.Strengths, "robots.txt present")
	require.Contains(t, tech.Issues, "sitemap.xml missing")

	content := report.WebsiteAudit.ContentQuality
	require.True(t, content.HasMetaTitle)
	require.True(t, content.HasMetaDescription)
	require.Equal(t, "fair", content.KeywordUsage)
	require.NotNil(t, report.WebsiteAudit.SecurityTrust.Score)

	// Facebook comes off the page; everything else degrades to not-found.
	facebook := report.SocialMediaPresence.Platforms[core.PlatformFacebook]
	require.Equal(t, "https://facebook.com/acmewidgets", facebook.URL)
	require.Equal(t, core.ProvenanceWebsite, facebook.Source)
	for _, platform := range core.Platforms {
		if platform == core.PlatformFacebook {
			continue
		}
		require.Equal(t, core.URLNotFound, report.SocialMediaPresence.Platforms[platform].URL)
	}
	require.Equal(t, 1, report.SocialMediaPresence.TotalPlatforms)
	require.NotNil(t, report.SocialMediaPresence.SocialScore)

	// No Places key: canonical not-found listing scored zero.
	require.Equal(t, "NO", report.GoogleBusinessProfile.Found)
	require.NotNil(t, report.GoogleBusinessProfile.Score)
	require.Zero(t, *report.GoogleBusinessProfile.Score)
	require.Zero(t, report.VisibilityScores.GoogleBusinessProfile)

	// No completion driver: fallback recommendations and note.
	require.NotNil(t, report.AIRecommendations)
	require.False(t, report.AIRecommendations.Success)
	require.Contains(t, report.AIRecommendations.Content, "AI verification temporarily unavailable.")

	require.Equal(t, auditMethod, response.Metadata.AuditMethod)
	require.Contains(t, response.Metadata.Note, "AI recommendations fallback: AI verification unavailable. Using fallback verdicts.")
	require.Regexp(t, `^\d+\.\d\d seconds$`, response.Metadata.ExecutionTime)
	require.NotEmpty(t, response.Timestamp)
	require.NotNil(t, response.Input)
}

type okDriver struct{}

func (okDriver) Complete(ctx context.Context, req *driver.Request) (*driver.Response, error) {
	return &driver.Response{
		Content: "- Facebook: VERIFIED via website",
		Usage:   &driver.Usage{TotalTokens: 321},
	}, nil
}

func (okDriver) Name() string { return "stub" }

func TestRunReportsSuccessWithDriver(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(samplePage))
	}))
	defer server.Close()

	engine := newTestEngine(t)
	engine.Synthesizer = ailink.New(okDriver{}, "gpt-4o-mini", zap.NewNop())

	response := engine.Run(context.Background(), sampleInput(server.URL))

	require.True(t, response.Success)
	require.Equal(t, "AI-powered audit completed successfully", response.Message)
	require.Equal(t, "gpt-4o-mini", response.Metadata.ModelUsed)
	require.NotNil(t, response.Metadata.TokensUsed)
	require.Equal(t, 321, *response.Metadata.TokensUsed)
	require.Contains(t, response.Metadata.Note, "AI recommendations generated via OpenAI.")
	require.Equal(t, "- Facebook: VERIFIED via website", response.AuditResults.AIRecommendations.Content)
}

func TestRunToleratesUnreachableSite(t *testing.T) {
	engine := newTestEngine(t)
	response := engine.Run(context.Background(), sampleInput("http://127.0.0.1:1/"))

	report := response.AuditResults
	require.NotNil(t, report)

	require.Zero(t, report.WebsiteAudit.TechnicalSEO.Score)
	require.False(t, report.WebsiteAudit.ContentQuality.HasMetaTitle)
	require.Nil(t, report.WebsiteAudit.SecurityTrust.Score)
	require.Contains(t, report.WebsiteAudit.SecurityTrust.Issues,
		"Trust signals not fully evaluated in manual fetch-only mode")
	require.Nil(t, report.SocialMediaPresence.SocialScore)
	require.Equal(t, "F", report.VisibilityScores.Grade)
}

func TestResolvePageSpeedPrefersLabMetrics(t *testing.T) {
	raw := 812.0
	lcp := 2400.0
	speedIndex := 1800.0

	require.Equal(t, &lcp, resolvePageSpeed(probeReport(&lcp, &speedIndex), &raw))
	require.Equal(t, &speedIndex, resolvePageSpeed(probeReport(nil, &speedIndex), &raw))
	require.Equal(t, &raw, resolvePageSpeed(probeReport(nil, nil), &raw))
}

func TestResolveMobileFriendly(t *testing.T) {
	good := 0.8
	bad := 0.3

	friendly := resolveMobileFriendly(scoredReport(&good), false, true)
	require.NotNil(t, friendly)
	require.True(t, *friendly)

	friendly = resolveMobileFriendly(scoredReport(&bad), true, true)
	require.NotNil(t, friendly)
	require.False(t, *friendly)

	friendly = resolveMobileFriendly(scoredReport(nil), true, true)
	require.NotNil(t, friendly)
	require.True(t, *friendly)

	require.Nil(t, resolveMobileFriendly(scoredReport(nil), false, false))
}

func TestNewWiresEngineFromConfig(t *testing.T) {
	cfg := &config.Config{}
	cfg.Probes.Enabled = true
	cfg.Probes.InternalLimit = 10
	cfg.AI.Provider = "openai"

	engine := New(cfg, zap.NewNop())
	require.NotNil(t, engine.Fetcher)
	require.NotNil(t, engine.Extractor)
	require.NotNil(t, engine.Socials)
	require.NotNil(t, engine.Listings)
	require.NotNil(t, engine.Synthesizer)
	require.NotNil(t, engine.Prober)
	require.Equal(t, 10, engine.Prober.InternalLimit)

	cfg.Probes.Enabled = false
	require.Nil(t, New(cfg, nil).Prober)
}
