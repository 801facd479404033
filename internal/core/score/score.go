// Package score turns extracted audit signals into normalized 0-100
// pillar scores, an overall score, and a letter grade. Every function is
// pure and deterministic; identical inputs always produce identical
// output.
package score

import (
	"fmt"
	"math"
	"strings"

	"github.com/vizlens/vizlens/internal/core"
)

const (
	perPlatformPoints = 12
	websiteLinkBonus  = 3
	searchMatchBonus  = 2
)

// Technical scores status, TLS, robots.txt, and sitemap.xml presence.
func Technical(result core.FetchResult) int {
	score := 0
	if result.StatusCode == 200 {
		score += 40
	}
	if result.HasSSL {
		score += 20
	}
	if result.HasRobots {
		score += 20
	}
	if result.HasSitemap {
		score += 20
	}
	return min(score, 100)
}

// KeywordUsage tiers the supplied keywords by substring hits in the page
// text: 0 hits poor, 1-2 fair, 3+ good. No keywords at all is "unknown",
// which scores the same as poor but is reported distinctly.
func KeywordUsage(text string, keywords []string) string {
	if len(keywords) == 0 {
		return "unknown"
	}

	lower := strings.ToLower(text)
	hits := 0
	for _, kw := range keywords {
		kw = strings.TrimSpace(kw)
		if kw == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(kw)) {
			hits++
		}
	}

	switch {
	case hits == 0:
		return "poor"
	case hits <= 2:
		return "fair"
	default:
		return "good"
	}
}

// Content scores meta tags, heading structure, and keyword usage.
func Content(hasMetaTitle, hasMetaDescription bool, headingStructure, keywordUsage string) int {
	score := 0
	if hasMetaTitle {
		score += 25
	}
	if hasMetaDescription {
		score += 25
	}

	switch headingStructure {
	case "good":
		score += 20
	case "fair":
		score += 10
	}

	switch keywordUsage {
	case "good":
		score += 30
	case "fair":
		score += 15
	}

	return min(score, 100)
}

// Trust sums 25-point credits for SSL, privacy page, terms page, and
// visible contact info. Zero credits returns nil: "unscorable" is
// distinct from "scored zero".
func Trust(ssl, privacyFound, termsFound, contactVisible bool) *int {
	score := 0
	if ssl {
		score += 25
	}
	if privacyFound {
		score += 25
	}
	if termsFound {
		score += 25
	}
	if contactVisible {
		score += 25
	}
	if score == 0 {
		return nil
	}
	return &score
}

// Social normalizes per-platform points against the theoretical maximum
// (every platform linked from the website). Nil when nothing resolved.
func Social(platforms map[core.Platform]core.PlatformMatch) *int {
	raw := 0
	foundAny := false
	maxRaw := len(core.Platforms) * (perPlatformPoints + websiteLinkBonus)

	for _, match := range platforms {
		if match.Source == core.ProvenanceNone {
			continue
		}
		foundAny = true
		raw += perPlatformPoints
		if match.Source == core.ProvenanceWebsite {
			raw += websiteLinkBonus
		} else {
			raw += searchMatchBonus
		}
	}

	if !foundAny {
		return nil
	}
	score := int(math.Round(math.Min(100, float64(raw)/float64(maxRaw)*100)))
	return &score
}

// TotalPlatforms counts platforms with a real resolved URL.
func TotalPlatforms(platforms map[core.Platform]core.PlatformMatch) int {
	count := 0
	for _, match := range platforms {
		if match.Resolved() {
			count++
		}
	}
	return count
}

// IntegrationQuality rates how many found profiles are actually linked
// from the website.
func IntegrationQuality(platforms map[core.Platform]core.PlatformMatch) string {
	found, linked := 0, 0
	for _, match := range platforms {
		if match.Source == core.ProvenanceNone {
			continue
		}
		found++
		if match.Source == core.ProvenanceWebsite {
			linked++
		}
	}

	if found == 0 {
		return "poor"
	}

	ratio := float64(linked) / float64(found)
	switch {
	case ratio >= 0.75:
		return "excellent"
	case ratio >= 0.5:
		return "good"
	case ratio >= 0.25:
		return "fair"
	default:
		return "poor"
	}
}

// SocialRecommendations emits one actionable line per missing or
// unlinked platform, in report order.
func SocialRecommendations(platforms map[core.Platform]core.PlatformMatch) []string {
	recommendations := make([]string, 0, len(core.Platforms))
	for _, platform := range core.Platforms {
		match := platforms[platform]
		switch match.Source {
		case core.ProvenanceNone:
			recommendations = append(recommendations,
				fmt.Sprintf("Claim and optimize your %s profile, then add it to your website.", platform))
		case core.ProvenanceSearch:
			recommendations = append(recommendations,
				fmt.Sprintf("Link the %s profile from your website to strengthen trust signals.", platform))
		}
	}
	if len(recommendations) == 0 {
		recommendations = append(recommendations, "Maintain consistent posting on active social channels.")
	}
	return recommendations
}

// Local scores the business listing: up to 60 points from the rating plus
// a tiered review-volume bonus, capped at 100. Not-found scores 0.
func Local(listing core.BusinessListing) int {
	if listing.Found != "YES" {
		return 0
	}

	rating := 4.0
	if listing.Rating != nil {
		rating = *listing.Rating
	}
	ratingScore := rating / 5 * 60

	reviewScore := 10.0
	if listing.Reviews != nil {
		switch reviews := *listing.Reviews; {
		case reviews >= 50:
			reviewScore = 40
		case reviews >= 10:
			reviewScore = 25
		case reviews > 0:
			reviewScore = 15
		}
	}

	return int(math.Round(math.Min(100, ratingScore+reviewScore)))
}

// Overall averages the pillar scores after defaulting nils to 0 and
// clamping each to [0,100].
func Overall(scores ...*int) int {
	if len(scores) == 0 {
		return 0
	}

	sum := 0
	for _, score := range scores {
		value := 0
		if score != nil {
			value = *score
		}
		sum += clamp(value, 0, 100)
	}
	return int(math.Round(float64(sum) / float64(len(scores))))
}

// Grade maps an overall score onto the fixed A-F ladder.
func Grade(score int) string {
	switch {
	case score >= 90:
		return "A"
	case score >= 80:
		return "B"
	case score >= 70:
		return "C"
	case score >= 60:
		return "D"
	case score >= 50:
		return "E"
	default:
		return "F"
	}
}

// GradeDescription narrates a grade for the report.
func GradeDescription(grade string) string {
	switch grade {
	case "A":
		return "Excellent visibility across all pillars"
	case "B":
		return "Strong visibility with minor gaps"
	case "C":
		return "Average visibility with room to grow"
	case "D":
		return "Below-average visibility; needs attention"
	case "E":
		return "Weak visibility across channels"
	default:
		return "Critical visibility gaps detected"
	}
}

func clamp(value, lo, hi int) int {
	if value < lo {
		return lo
	}
	if value > hi {
		return hi
	}
	return value
}
