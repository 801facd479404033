package core

import (
	"github.com/vizlens/vizlens/internal/core/probe"
)

// FetchResult captures one timed fetch of the target website. It is
// produced once per audit run and read-only afterward.
type FetchResult struct {
	StatusCode    int      `json:"status_code"`
	HasSSL        bool     `json:"has_ssl"`
	HTMLLength    int      `json:"html_length,omitempty"`
	HTMLPreview   string   `json:"html_preview,omitempty"`
	DesktopMillis *float64 `json:"response_time_ms_desktop"`
	MobileMillis  *float64 `json:"response_time_ms_mobile"`
	HasRobots     bool     `json:"has_robots"`
	HasSitemap    bool     `json:"has_sitemap"`
	Error         string   `json:"error,omitempty"`
}

// PageSpeedEstimate reports per-profile load estimates in milliseconds.
type PageSpeedEstimate struct {
	DesktopMillis *float64 `json:"desktop_ms"`
	MobileMillis  *float64 `json:"mobile_ms"`
}

// TechnicalSEO is the technical pillar of the website audit.
type TechnicalSEO struct {
	Score             int               `json:"score"`
	SSLValid          bool              `json:"ssl_valid"`
	RobotsTxtPresent  bool              `json:"robots_txt_present"`
	SitemapXMLPresent bool              `json:"sitemap_xml_present"`
	PageSpeedEstimate PageSpeedEstimate `json:"page_speed_estimate"`
	MobileFriendly    *bool             `json:"mobile_friendly"`
	Issues            []string          `json:"issues"`
	Strengths         []string          `json:"strengths"`
}

// ContentQuality is the content pillar of the website audit.
type ContentQuality struct {
	Score              int      `json:"score"`
	HasMetaTitle       bool     `json:"has_meta_title"`
	HasMetaDescription bool     `json:"has_meta_description"`
	MetaTitle          *string  `json:"meta_title"`
	MetaDescription    *string  `json:"meta_description"`
	KeywordUsage       string   `json:"keyword_usage"` // good / fair / poor / unknown
	Issues             []string `json:"issues"`
	Strengths          []string `json:"strengths"`
}

// SecurityTrust reports trust signals. Score is nil when no signal could
// be evaluated, which is distinct from a scored zero.
type SecurityTrust struct {
	Score                *int     `json:"score"`
	SSLCertificate       bool     `json:"ssl_certificate"`
	PrivacyPolicyFound   bool     `json:"privacy_policy_found"`
	TermsConditionsFound bool     `json:"terms_conditions_found"`
	ContactInfoVisible   bool     `json:"contact_info_visible"`
	Issues               []string `json:"issues"`
}

// WebsiteAudit groups the three website pillars.
type WebsiteAudit struct {
	TechnicalSEO   TechnicalSEO   `json:"technical_seo"`
	ContentQuality ContentQuality `json:"content_quality"`
	SecurityTrust  SecurityTrust  `json:"security_trust"`
}

// SocialPresence summarizes the per-platform resolution results.
// SocialScore is nil when no platform resolved at all.
type SocialPresence struct {
	BusinessName       string                     `json:"business_name"`
	Website            string                     `json:"website"`
	Platforms          map[Platform]PlatformMatch `json:"platforms"`
	SocialScore        *int                       `json:"social_score"`
	TotalPlatforms     int                        `json:"total_platforms"`
	IntegrationQuality string                     `json:"integration_quality"`
	Recommendations    []string                   `json:"recommendations"`
}

// VisibilityScores holds the four pillar scores and the overall grade.
type VisibilityScores struct {
	WebsiteAudit           int    `json:"website_audit"`
	ContentQuality         int    `json:"content_quality"`
	SocialMediaPresence    int    `json:"social_media_presence"`
	GoogleBusinessProfile  int    `json:"google_business_profile"`
	OverallVisibilityScore int    `json:"overall_visibility_score"`
	Grade                  string `json:"grade"`
	GradeDescription       string `json:"grade_description"`
}

// KeyFindings is the SWOT-style summary assembled from pillar findings.
type KeyFindings struct {
	Strengths     []string `json:"strengths"`
	Weaknesses    []string `json:"weaknesses"`
	Opportunities []string `json:"opportunities"`
	Threats       []string `json:"threats"`
}

// Action is a single prioritized recommendation.
type Action struct {
	Priority    string `json:"priority"` // high / medium / low
	Category    string `json:"category"` // seo / social / local / content / technical
	Action      string `json:"action"`
	Impact      string `json:"impact"`
	Effort      string `json:"effort"`
	Description string `json:"description"`
}

// Recommendations groups prioritized actions by horizon.
type Recommendations struct {
	ImmediateActions  []Action `json:"immediate_actions"`
	ShortTermStrategy []string `json:"short_term_strategy"`
	LongTermStrategy  []string `json:"long_term_strategy"`
	QuickWins         []string `json:"quick_wins"`
}

// CompetitiveInsights is a coarse market-positioning estimate.
type CompetitiveInsights struct {
	MarketPositionEstimate       string   `json:"market_position_estimate"`
	DifferentiationOpportunities []string `json:"differentiation_opportunities"`
	CompetitiveAdvantages        []string `json:"competitive_advantages"`
	AreasForImprovement          []string `json:"areas_for_improvement"`
}

// AIRecommendations carries the synthesized verification verdicts, or the
// fallback text when the completion provider was unavailable.
type AIRecommendations struct {
	Content    string `json:"content"`
	Success    bool   `json:"success"`
	ModelUsed  string `json:"model_used,omitempty"`
	TokensUsed *int   `json:"tokens_used,omitempty"`
	Note       string `json:"note,omitempty"`
	Error      string `json:"error,omitempty"`
}

// AuditReport is the complete structured result of one audit run. It owns
// every sub-object by composition; no state is shared across runs.
type AuditReport struct {
	WebsiteAudit          WebsiteAudit        `json:"website_audit"`
	SocialMediaPresence   SocialPresence      `json:"social_media_presence"`
	GoogleBusinessProfile BusinessListing     `json:"google_business_profile"`
	VisibilityScores      VisibilityScores    `json:"visibility_scores"`
	KeyFindings           KeyFindings         `json:"key_findings"`
	Recommendations       Recommendations     `json:"recommendations"`
	CompetitiveInsights   CompetitiveInsights `json:"competitive_insights"`
	OsatChecks            *probe.Results      `json:"osat_checks,omitempty"`
	AIRecommendations     *AIRecommendations  `json:"ai_recommendations,omitempty"`
	WebsiteFetch          FetchResult         `json:"website_fetch"`
}

// Metadata describes how and when the audit ran.
type Metadata struct {
	ModelUsed     string `json:"model_used,omitempty"`
	TokensUsed    *int   `json:"tokens_used,omitempty"`
	AuditMethod   string `json:"audit_method"`
	Timestamp     string `json:"timestamp"`
	ExecutionTime string `json:"execution_time,omitempty"`
	Note          string `json:"note,omitempty"`
}

// AuditResponse is the envelope returned to callers.
type AuditResponse struct {
	Success      bool         `json:"success"`
	Message      string       `json:"message"`
	Input        *AuditInput  `json:"input,omitempty"`
	AuditResults *AuditReport `json:"audit_results,omitempty"`
	Metadata     Metadata     `json:"metadata"`
	Timestamp    string       `json:"timestamp"`
}
