package output

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/vizlens/vizlens/internal/core"
)

// TableFormatter renders the report as ASCII tables with text sections
// for findings and recommendations.
type TableFormatter struct{}

// FormatAudit renders an audit response as tables.
func (f *TableFormatter) FormatAudit(response *core.AuditResponse) (string, error) {
	if response == nil || response.AuditResults == nil {
		return "", nil
	}
	report := response.AuditResults

	var sections []string
	sections = append(sections, scoresTable(report))
	sections = append(sections, platformsTable(report))
	sections = append(sections, listingSection(report.GoogleBusinessProfile))

	if s := findingsSection(report.KeyFindings); s != "" {
		sections = append(sections, s)
	}
	if s := recommendationsSection(report.Recommendations); s != "" {
		sections = append(sections, s)
	}
	if report.AIRecommendations != nil && strings.TrimSpace(report.AIRecommendations.Content) != "" {
		sections = append(sections, "AI Verification:\n"+report.AIRecommendations.Content)
	}
	if response.Metadata.Note != "" {
		sections = append(sections, "Note: "+response.Metadata.Note)
	}

	return strings.Join(sections, "\n\n"), nil
}

func scoresTable(report *core.AuditReport) string {
	scores := report.VisibilityScores

	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"Pillar", "Score"})
	t.AppendRow(table.Row{"Website audit", scores.WebsiteAudit})
	t.AppendRow(table.Row{"Content quality", scores.ContentQuality})
	t.AppendRow(table.Row{"Social media presence", scores.SocialMediaPresence})
	t.AppendRow(table.Row{"Google Business Profile", scores.GoogleBusinessProfile})
	t.AppendFooter(table.Row{
		fmt.Sprintf("Overall (%s)", scores.Grade),
		scores.OverallVisibilityScore,
	})

	return t.Render() + "\n" + scores.GradeDescription
}

func platformsTable(report *core.AuditReport) string {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"Platform", "Profile", "Source", "Confidence"})

	for _, platform := range core.Platforms {
		match, ok := report.SocialMediaPresence.Platforms[platform]
		if !ok {
			continue
		}
		t.AppendRow(table.Row{
			string(platform),
			match.URL,
			string(match.Source),
			string(match.Confidence),
		})
	}

	quality := report.SocialMediaPresence.IntegrationQuality
	found := report.SocialMediaPresence.TotalPlatforms
	t.AppendFooter(table.Row{"", fmt.Sprintf("%d found", found), "integration", quality})

	return t.Render()
}

func listingSection(listing core.BusinessListing) string {
	if listing.Found != "YES" {
		return "Google Business Profile: not found"
	}

	line := fmt.Sprintf("Google Business Profile: %s (%s)", listing.Name, listing.Address)
	if listing.Rating != nil && listing.Reviews != nil {
		line += fmt.Sprintf(" | Rating: %g (%d reviews)", *listing.Rating, *listing.Reviews)
	}
	return line
}

func findingsSection(findings core.KeyFindings) string {
	var b strings.Builder
	writeList(&b, "Strengths", findings.Strengths)
	writeList(&b, "Weaknesses", findings.Weaknesses)
	writeList(&b, "Opportunities", findings.Opportunities)
	return strings.TrimRight(b.String(), "\n")
}

func recommendationsSection(recs core.Recommendations) string {
	var b strings.Builder
	if len(recs.ImmediateActions) > 0 {
		b.WriteString("Immediate actions:\n")
		for _, action := range recs.ImmediateActions {
			fmt.Fprintf(&b, "  - [%s] %s\n", action.Priority, action.Action)
		}
	}
	writeList(&b, "Quick wins", recs.QuickWins)
	return strings.TrimRight(b.String(), "\n")
}

func writeList(b *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	b.WriteString(title + ":\n")
	for _, item := range items {
		b.WriteString("  - " + item + "\n")
	}
}
