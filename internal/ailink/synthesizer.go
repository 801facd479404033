// Package ailink turns a finished audit into ownership verdicts by
// prompting a completion provider. The provider only judges whether the
// discovered social profiles and business listing belong to the audited
// business; it never re-scores anything.
package ailink

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/vizlens/vizlens/internal/ailink/driver"
	"github.com/vizlens/vizlens/internal/core"
)

const systemPrompt = `You are a strict verification assistant. Only determine whether social media or Google Business listings belong to the provided business. Use short verdicts like "Instagram is verified via website" or "TikTok page does not belong to this business." Never mention SEO, HTML, or other data.`

const fallbackText = `AI verification temporarily unavailable.
- Facebook: NOT CHECKED
- Instagram: NOT CHECKED
- Twitter: NOT CHECKED
- LinkedIn: NOT CHECKED
- YouTube: NOT CHECKED
- TikTok: NOT CHECKED
- Google Business Profile: NOT CHECKED`

const fallbackNote = "AI verification unavailable. Using fallback verdicts."

var (
	defaultTemperature = 0.7
	defaultMaxTokens   = 2000
)

// Synthesizer asks the configured driver for ownership verdicts.
type Synthesizer struct {
	Driver driver.Driver
	Model  string
	Logger *zap.Logger
}

// New builds a synthesizer. driver may be nil when no provider is
// configured, in which case every call returns the fallback verdicts.
func New(d driver.Driver, model string, logger *zap.Logger) *Synthesizer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Synthesizer{Driver: d, Model: model, Logger: logger}
}

// Synthesize produces verification verdicts for the report. It never
// fails: provider errors degrade to the static fallback with
// success=false.
func (s *Synthesizer) Synthesize(ctx context.Context, report *core.AuditReport, input core.AuditInput) core.AIRecommendations {
	if s == nil || s.Driver == nil || strings.TrimSpace(s.Model) == "" {
		return core.AIRecommendations{
			Content: fallbackText,
			Success: false,
			Note:    fallbackNote,
		}
	}

	req := &driver.Request{
		Model: s.Model,
		Messages: []driver.Message{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: BuildPrompt(report, input)},
		},
		Temperature: &defaultTemperature,
		MaxTokens:   &defaultMaxTokens,
	}

	resp, err := s.Driver.Complete(ctx, req)
	if err != nil {
		s.Logger.Error("completion request failed",
			zap.String("provider", s.Driver.Name()),
			zap.Error(err))
		return core.AIRecommendations{
			Content: fallbackText,
			Success: false,
			Error:   "Failed to generate AI recommendations: " + err.Error(),
		}
	}

	content := resp.Content
	if strings.TrimSpace(content) == "" {
		content = "No recommendations generated"
	}

	result := core.AIRecommendations{
		Content:   content,
		Success:   true,
		ModelUsed: s.Model,
	}
	if resp.Usage != nil {
		tokens := resp.Usage.TotalTokens
		result.TokensUsed = &tokens
	}
	return result
}

// BuildPrompt renders the verification prompt: identity block, trusted
// website-linked profiles, unverified candidates, the listing candidate,
// and the decision rules.
func BuildPrompt(report *core.AuditReport, input core.AuditInput) string {
	businessName := valueOr(input.BusinessName, "Unknown Business")
	website := valueOr(input.WebsiteURL, "N/A")
	domain := website
	if parsed, err := url.Parse(website); err == nil && parsed.Hostname() != "" {
		domain = parsed.Hostname()
	}
	description := valueOr(input.Description, "Not provided")
	cities := valueOr(input.City.Joined(), "N/A")
	countries := valueOr(input.Country.Joined(), "N/A")

	var trusted, unverified []string
	for _, platform := range core.Platforms {
		match, ok := report.SocialMediaPresence.Platforms[platform]
		if !ok || !match.Resolved() {
			continue
		}
		label := strings.ToUpper(string(platform))
		if match.Source == core.ProvenanceWebsite {
			trusted = append(trusted, fmt.Sprintf("- %s: %s", label, match.URL))
		} else {
			unverified = append(unverified, fmt.Sprintf("- %s: %s | Status: %s",
				label, match.URL, strings.ToLower(string(match.Confidence))))
		}
	}

	gbpBlock := "- None"
	if listing := report.GoogleBusinessProfile; listing.Found == "YES" && listing.Name != "" {
		gbpBlock = fmt.Sprintf("- %s (%s) | Phone: %s | Rating: %s (%s reviews) | Status: %s",
			listing.Name,
			valueOr(listing.Address, "N/A"),
			valueOr(listing.Phone, "N/A"),
			floatOr(listing.Rating, "N/A"),
			intOr(listing.Reviews, "N/A"),
			valueOr(listing.Confidence, "unknown"))
	}

	return fmt.Sprintf(`You verify whether discovered social profiles and Google Business listings truly belong to a business.

Business:
- Name: %s
- Domain: %s
- Description: %s
- Location: %s, %s

Trusted (linked from website – already verified):
%s

Unverified social/GBP candidates:
%s

Google Business Profile candidate:
%s

Rules:
1. Profiles linked from the official website are VERIFIED automatically.
2. For every other record, compare the business name, description, domain, and location before deciding.
3. If the name or location clearly does not match, respond with "NOT OWNED".
4. If there is no confident match, respond with "NOT FOUND".
5. NEVER assume ownership without evidence.

Output:
- Provide one short verdict per record (e.g., "Instagram is verified via website", "TikTok page does not belong to this business", "No Google Business Profile exists").
- No explanations unless explicitly requested.
- Ignore all technical/SEO/performance data.`,
		businessName, domain, description, cities, countries,
		block(trusted), block(unverified), gbpBlock)
}

func block(lines []string) string {
	if len(lines) == 0 {
		return "- None"
	}
	return strings.Join(lines, "\n")
}

func valueOr(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

func floatOr(value *float64, fallback string) string {
	if value == nil {
		return fallback
	}
	return fmt.Sprintf("%g", *value)
}

func intOr(value *int, fallback string) string {
	if value == nil {
		return fallback
	}
	return fmt.Sprintf("%d", *value)
}
