package score

import (
	"fmt"

	"github.com/vizlens/vizlens/internal/core"
)

const keyFindingsLimit = 5

// TechnicalFindings splits technical signals into issue and strength
// lines for the report.
func TechnicalFindings(result core.FetchResult) (issues, strengths []string) {
	issues = []string{}
	strengths = []string{}

	if result.StatusCode != 200 {
		issues = append(issues, fmt.Sprintf("Website returned status %d", result.StatusCode))
	}
	if result.HasSSL {
		strengths = append(strengths, "Valid SSL detected")
	} else {
		issues = append(issues, "SSL not detected")
	}
	if result.HasRobots {
		strengths = append(strengths, "robots.txt present")
	} else {
		issues = append(issues, "robots.txt missing")
	}
	if result.HasSitemap {
		strengths = append(strengths, "sitemap.xml present")
	} else {
		issues = append(issues, "sitemap.xml missing")
	}
	return issues, strengths
}

// ContentFindings splits meta-tag presence into issue and strength lines.
func ContentFindings(hasMetaTitle, hasMetaDescription bool) (issues, strengths []string) {
	issues = []string{}
	strengths = []string{}

	if hasMetaTitle {
		strengths = append(strengths, "Meta title found")
	} else {
		issues = append(issues, "Missing meta title")
	}
	if hasMetaDescription {
		strengths = append(strengths, "Meta description found")
	} else {
		issues = append(issues, "Missing meta description")
	}
	return issues, strengths
}

// TrustIssues lists absent trust signals. When the page could not be
// evaluated at all it returns the single fetch-only caveat line.
func TrustIssues(evaluated, ssl, privacyFound, termsFound, contactVisible bool) []string {
	if !evaluated {
		return []string{"Trust signals not fully evaluated in manual fetch-only mode"}
	}

	issues := []string{}
	if !ssl {
		issues = append(issues, "SSL not detected")
	}
	if !privacyFound {
		issues = append(issues, "Privacy policy not detected in HTML")
	}
	if !termsFound {
		issues = append(issues, "Terms & conditions not detected in HTML")
	}
	if !contactVisible {
		issues = append(issues, "Contact info (email/phone) not detected in HTML")
	}
	return issues
}

// KeyFindings merges the technical and content findings into the
// top-level strengths/weaknesses summary, capped at five entries each.
func KeyFindings(technicalIssues, technicalStrengths, contentIssues, contentStrengths []string) core.KeyFindings {
	return core.KeyFindings{
		Strengths:  capAt(append(append([]string{}, technicalStrengths...), contentStrengths...), keyFindingsLimit),
		Weaknesses: capAt(append(append([]string{}, technicalIssues...), contentIssues...), keyFindingsLimit),
		Opportunities: []string{
			"Use search-engine social matches and Google Places data to expand visibility signals",
		},
		Threats: []string{},
	}
}

func capAt(items []string, limit int) []string {
	if len(items) > limit {
		return items[:limit]
	}
	return items
}
