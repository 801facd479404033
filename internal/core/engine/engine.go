// Package engine orchestrates one audit run: fetch, extract, resolve,
// score, probe, synthesize, assemble. Each stage degrades independently;
// a run always produces a complete report.
package engine

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/vizlens/vizlens/internal/ailink"
	"github.com/vizlens/vizlens/internal/ailink/driver"
	"github.com/vizlens/vizlens/internal/ailink/driver/openai"
	"github.com/vizlens/vizlens/internal/ailink/driver/openrouter"
	"github.com/vizlens/vizlens/internal/config"
	"github.com/vizlens/vizlens/internal/core"
	"github.com/vizlens/vizlens/internal/core/extract"
	"github.com/vizlens/vizlens/internal/core/fetch"
	"github.com/vizlens/vizlens/internal/core/identity"
	"github.com/vizlens/vizlens/internal/core/probe"
	"github.com/vizlens/vizlens/internal/core/resolve"
	"github.com/vizlens/vizlens/internal/core/score"
)

const auditMethod = "manual_fetch_with_osat_probes_and_ai_recommendations"

const noteBase = "Social media discovery leverages website parsing + SERPER; Google Business Profile detection via Places API. OSAT-style probes added (lighthouse/security/extractor/sitemap/internal/keywords). "

// Engine runs audits. All collaborators are injected so tests can stub
// the network edges; Prober may be nil to skip deep probes.
type Engine struct {
	Fetcher     *fetch.Fetcher
	Extractor   *extract.Extractor
	Socials     *resolve.SocialResolver
	Listings    *resolve.ListingResolver
	Prober      *probe.Runner
	Synthesizer *ailink.Synthesizer
	Logger      *zap.Logger
	Clock       func() time.Time
}

// New wires an engine from configuration. Missing API keys disable the
// corresponding stage instead of failing the build.
func New(cfg *config.Config, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}

	fetcher := fetch.New(logger.Named("fetch"))
	if cfg.Fetch.Timeout > 0 {
		fetcher.Timeout = cfg.Fetch.Timeout
	}

	serper := &resolve.SerperClient{
		BaseURL: cfg.Serper.BaseURL,
		APIKey:  cfg.Serper.APIKey,
		Timeout: cfg.Serper.Timeout,
	}
	places := &resolve.PlacesClient{
		BaseURL: cfg.Places.BaseURL,
		APIKey:  cfg.Places.APIKey,
		Timeout: cfg.Places.Timeout,
	}

	var prober *probe.Runner
	if cfg.Probes.Enabled {
		prober = probe.New(cfg.Probes.PSIAPIKey, logger.Named("probe"))
		if cfg.Probes.InternalLimit > 0 {
			prober.InternalLimit = cfg.Probes.InternalLimit
		}
		if cfg.Probes.KeywordTop > 0 {
			prober.KeywordTop = cfg.Probes.KeywordTop
		}
	}

	return &Engine{
		Fetcher:     fetcher,
		Extractor:   &extract.Extractor{Prober: fetcher, Logger: logger.Named("extract")},
		Socials:     &resolve.SocialResolver{Search: serper, Logger: logger.Named("social")},
		Listings:    &resolve.ListingResolver{Places: places, Logger: logger.Named("listing")},
		Prober:      prober,
		Synthesizer: ailink.New(buildDriver(cfg.AI), modelFor(cfg.AI), logger.Named("ailink")),
		Logger:      logger,
		Clock:       time.Now,
	}
}

func buildDriver(cfg config.AIConfig) driver.Driver {
	switch cfg.Provider {
	case "openrouter":
		if cfg.OpenRouter.APIKey == "" {
			return nil
		}
		return openrouter.NewClient(cfg.OpenRouter.BaseURL, cfg.OpenRouter.APIKey,
			cfg.OpenRouter.SiteURL, cfg.OpenRouter.AppTitle)
	default:
		if cfg.OpenAI.APIKey == "" {
			return nil
		}
		return openai.NewClient(cfg.OpenAI.BaseURL, cfg.OpenAI.APIKey)
	}
}

func modelFor(cfg config.AIConfig) string {
	if cfg.Provider == "openrouter" {
		return cfg.OpenRouter.Model
	}
	return cfg.OpenAI.Model
}

// Run executes the complete audit for one validated input.
func (e *Engine) Run(ctx context.Context, input core.AuditInput) core.AuditResponse {
	start := e.now()

	fetched := e.Fetcher.Fetch(ctx, input.WebsiteURL)
	signals := e.Extractor.Extract(ctx, fetched.HTMLPreview, input.WebsiteURL)
	tokens := identity.BuildTokens(&input)

	platforms := make(map[core.Platform]core.PlatformMatch, len(core.Platforms))
	for platform, outcome := range e.Socials.Resolve(ctx, &input, signals.SocialLinks, tokens) {
		platforms[platform] = outcome.Flatten()
	}
	listing := e.Listings.Resolve(ctx, &input, tokens).Flatten()

	report := e.assemble(&input, fetched, signals, platforms, listing)

	if e.Prober != nil {
		osat := e.Prober.Run(ctx, input.WebsiteURL)
		report.OsatChecks = osat
		report.WebsiteAudit.TechnicalSEO.PageSpeedEstimate = core.PageSpeedEstimate{
			DesktopMillis: resolvePageSpeed(osat.Lighthouse.Desktop, fetched.DesktopMillis),
			MobileMillis:  resolvePageSpeed(osat.Lighthouse.Mobile, fetched.MobileMillis),
		}
		report.WebsiteAudit.TechnicalSEO.MobileFriendly = resolveMobileFriendly(osat.Lighthouse.Mobile, signals.HasViewport, fetched.HTMLPreview != "")
	}

	recommendations := e.Synthesizer.Synthesize(ctx, report, input)
	report.AIRecommendations = &recommendations

	message := "AI-powered audit completed successfully"
	if !recommendations.Success {
		message = "Audit completed with fallback data (OpenAI API key not configured)"
	}

	elapsed := e.now().Sub(start)
	return core.AuditResponse{
		Success:      recommendations.Success,
		Message:      message,
		Input:        &input,
		AuditResults: report,
		Metadata: core.Metadata{
			ModelUsed:     recommendations.ModelUsed,
			TokensUsed:    recommendations.TokensUsed,
			AuditMethod:   auditMethod,
			Timestamp:     e.now().Format(time.RFC3339),
			ExecutionTime: fmt.Sprintf("%.2f seconds", elapsed.Seconds()),
			Note:          buildNote(recommendations),
		},
		Timestamp: e.now().Format(time.RFC3339),
	}
}

// assemble turns the raw stage outputs into the structured report.
func (e *Engine) assemble(input *core.AuditInput, fetched core.FetchResult, signals extract.Signals, platforms map[core.Platform]core.PlatformMatch, listing core.BusinessListing) *core.AuditReport {
	technicalIssues, technicalStrengths := score.TechnicalFindings(fetched)
	contentIssues, contentStrengths := score.ContentFindings(signals.MetaTitle != nil, signals.MetaDescription != nil)

	technicalScore := score.Technical(fetched)
	keywordUsage := score.KeywordUsage(signals.Text, input.Keywords)
	contentScore := score.Content(signals.MetaTitle != nil, signals.MetaDescription != nil, signals.HeadingStructure, keywordUsage)

	var trustScore *int
	if signals.TrustEvaluated {
		trustScore = score.Trust(fetched.HasSSL, signals.PrivacyFound, signals.TermsFound, signals.ContactVisible)
	}

	socialScore := score.Social(platforms)
	localScore := score.Local(listing)
	listing.Score = &localScore

	overall := score.Overall(&technicalScore, &contentScore, socialScore, &localScore)
	grade := score.Grade(overall)

	return &core.AuditReport{
		WebsiteAudit: core.WebsiteAudit{
			TechnicalSEO: core.TechnicalSEO{
				Score:             technicalScore,
				SSLValid:          fetched.HasSSL,
				RobotsTxtPresent:  fetched.HasRobots,
				SitemapXMLPresent: fetched.HasSitemap,
				PageSpeedEstimate: core.PageSpeedEstimate{
					DesktopMillis: fetched.DesktopMillis,
					MobileMillis:  fetched.MobileMillis,
				},
				MobileFriendly: resolveMobileFriendly(probe.PerformanceReport{}, signals.HasViewport, fetched.HTMLPreview != ""),
				Issues:         technicalIssues,
				Strengths:      technicalStrengths,
			},
			ContentQuality: core.ContentQuality{
				Score:              contentScore,
				HasMetaTitle:       signals.MetaTitle != nil,
				HasMetaDescription: signals.MetaDescription != nil,
				MetaTitle:          signals.MetaTitle,
				MetaDescription:    signals.MetaDescription,
				KeywordUsage:       keywordUsage,
				Issues:             contentIssues,
				Strengths:          contentStrengths,
			},
			SecurityTrust: core.SecurityTrust{
				Score:                trustScore,
				SSLCertificate:       fetched.HasSSL,
				PrivacyPolicyFound:   signals.PrivacyFound,
				TermsConditionsFound: signals.TermsFound,
				ContactInfoVisible:   signals.ContactVisible,
				Issues: score.TrustIssues(signals.TrustEvaluated, fetched.HasSSL,
					signals.PrivacyFound, signals.TermsFound, signals.ContactVisible),
			},
		},
		SocialMediaPresence: core.SocialPresence{
			BusinessName:       input.BusinessName,
			Website:            input.WebsiteURL,
			Platforms:          platforms,
			SocialScore:        socialScore,
			TotalPlatforms:     score.TotalPlatforms(platforms),
			IntegrationQuality: score.IntegrationQuality(platforms),
			Recommendations:    score.SocialRecommendations(platforms),
		},
		GoogleBusinessProfile: listing,
		VisibilityScores: core.VisibilityScores{
			WebsiteAudit:           technicalScore,
			ContentQuality:         contentScore,
			SocialMediaPresence:    valueOrZero(socialScore),
			GoogleBusinessProfile:  localScore,
			OverallVisibilityScore: overall,
			Grade:                  grade,
			GradeDescription:       score.GradeDescription(grade),
		},
		KeyFindings: score.KeyFindings(technicalIssues, technicalStrengths, contentIssues, contentStrengths),
		Recommendations: core.Recommendations{
			ImmediateActions: []core.Action{
				{
					Priority:    "medium",
					Category:    "technical",
					Action:      "Resolve missing robots.txt/sitemap if absent",
					Impact:      "medium",
					Effort:      "low",
					Description: "Ensure basic crawlability files exist to improve technical SEO.",
				},
			},
			ShortTermStrategy: []string{"Link detected social profiles across the website and verify Google Business Profile data."},
			LongTermStrategy:  []string{"Decide which verified channels to promote and keep Google Business Profile reviews flowing."},
			QuickWins: []string{
				"Add meta title and description if missing",
				"Increase on-page copy for key pages",
				"Add social icons that point to verified profiles",
			},
		},
		CompetitiveInsights: core.CompetitiveInsights{
			MarketPositionEstimate:       "unknown",
			DifferentiationOpportunities: []string{},
			CompetitiveAdvantages:        []string{},
			AreasForImprovement:          []string{"Expand Google Business signals and cross-link social profiles"},
		},
		WebsiteFetch: fetched,
	}
}

// resolvePageSpeed prefers lab metrics over the raw fetch timing: LCP
// first, then speed index, then the measured round trip.
func resolvePageSpeed(report probe.PerformanceReport, fallback *float64) *float64 {
	if report.Metrics != nil {
		if report.Metrics.LargestContentfulPaintMs != nil {
			return report.Metrics.LargestContentfulPaintMs
		}
		if report.Metrics.SpeedIndexMs != nil {
			return report.Metrics.SpeedIndexMs
		}
	}
	return fallback
}

// resolveMobileFriendly uses the mobile performance score when available,
// then the viewport meta tag, and stays unknown when the page never
// loaded.
func resolveMobileFriendly(mobile probe.PerformanceReport, hasViewport, hasHTML bool) *bool {
	if mobile.Scores != nil && mobile.Scores.Performance != nil {
		friendly := *mobile.Scores.Performance >= 0.5
		return &friendly
	}
	if hasHTML {
		return &hasViewport
	}
	return nil
}

func buildNote(recommendations core.AIRecommendations) string {
	if recommendations.Success {
		return noteBase + "AI recommendations generated via OpenAI."
	}
	fallback := recommendations.Note
	if fallback == "" {
		fallback = recommendations.Error
	}
	if fallback == "" {
		fallback = "AI recommendations unavailable."
	}
	return noteBase + "AI recommendations fallback: " + fallback
}

func valueOrZero(value *int) int {
	if value == nil {
		return 0
	}
	return *value
}

func (e *Engine) now() time.Time {
	if e.Clock != nil {
		return e.Clock()
	}
	return time.Now()
}
