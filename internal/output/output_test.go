package output

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vizlens/vizlens/internal/core"
)

func sampleResponse() *core.AuditResponse {
	rating := 4.5
	reviews := 120
	social := 17

	return &core.AuditResponse{
		Success: true,
		AuditResults: &core.AuditReport{
			SocialMediaPresence: core.SocialPresence{
				Platforms: map[core.Platform]core.PlatformMatch{
					core.PlatformFacebook: {
						URL:        "https://facebook.com/acmewidgets",
						Source:     core.ProvenanceWebsite,
						Confidence: core.ConfidenceHigh,
					},
					core.PlatformTikTok: core.NoMatch(),
				},
				SocialScore:        &social,
				TotalPlatforms:     1,
				IntegrationQuality: "excellent",
			},
			GoogleBusinessProfile: core.BusinessListing{
				Found:   "YES",
				Name:    "Acme Widgets",
				Address: "1 Mill Lane, Leeds",
				Rating:  &rating,
				Reviews: &reviews,
			},
			VisibilityScores: core.VisibilityScores{
				WebsiteAudit:           80,
				ContentQuality:         85,
				SocialMediaPresence:    17,
				GoogleBusinessProfile:  94,
				OverallVisibilityScore: 69,
				Grade:                  "C",
				GradeDescription:       "Fair - Significant improvements possible",
			},
			KeyFindings: core.KeyFindings{
				Strengths:  []string{"Valid SSL detected"},
				Weaknesses: []string{"sitemap.xml missing"},
			},
			AIRecommendations: &core.AIRecommendations{Content: "- Facebook: VERIFIED"},
		},
		Metadata: core.Metadata{Note: "probes enabled"},
	}
}

func TestParseFormat(t *testing.T) {
	format, err := ParseFormat("")
	require.NoError(t, err)
	require.Equal(t, FormatTable, format)

	format, err = ParseFormat(" JSON ")
	require.NoError(t, err)
	require.Equal(t, FormatJSON, format)

	_, err = ParseFormat("xml")
	require.Error(t, err)
}

func TestTableFormatterRendersSections(t *testing.T) {
	rendered, err := (&TableFormatter{}).FormatAudit(sampleResponse())
	require.NoError(t, err)

	require.Contains(t, rendered, "Website audit")
	require.Contains(t, rendered, "Overall (C)")
	require.Contains(t, rendered, "https://facebook.com/acmewidgets")
	require.Contains(t, rendered, "NOT FOUND")
	require.Contains(t, rendered, "Rating: 4.5 (120 reviews)")
	require.Contains(t, rendered, "Valid SSL detected")
	require.Contains(t, rendered, "- Facebook: VERIFIED")
	require.Contains(t, rendered, "Note: probes enabled")
}

func TestTableFormatterHandlesEmptyResponse(t *testing.T) {
	rendered, err := (&TableFormatter{}).FormatAudit(nil)
	require.NoError(t, err)
	require.Empty(t, rendered)
}

func TestJSONFormatterRoundTrips(t *testing.T) {
	rendered, err := (&JSONFormatter{Indent: true}).FormatAudit(sampleResponse())
	require.NoError(t, err)
	require.Contains(t, rendered, `"overall_visibility_score": 69`)
	require.Contains(t, rendered, `"found": "YES"`)
}
