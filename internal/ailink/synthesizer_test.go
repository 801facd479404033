package ailink

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/vizlens/vizlens/internal/ailink/driver"
	"github.com/vizlens/vizlens/internal/core"
)

type stubDriver struct {
	req  *driver.Request
	resp *driver.Response
	err  error
}

func (s *stubDriver) Complete(_ context.Context, req *driver.Request) (*driver.Response, error) {
	s.req = req
	return s.resp, s.err
}

func (s *stubDriver) Name() string { return "stub" }

func sampleInput() core.AuditInput {
	return core.AuditInput{
		WebsiteURL:   "https://acmewidgets.co.uk",
		BusinessName: "Acme Widgets",
		Industry:     "manufacturing",
		Country:      core.StringList{"gb"},
		City:         core.StringList{"Leeds"},
		Description:  "Widget maker",
	}
}

func sampleReport() *core.AuditReport {
	rating := 4.6
	reviews := 88
	return &core.AuditReport{
		SocialMediaPresence: core.SocialPresence{
			Platforms: map[core.Platform]core.PlatformMatch{
				core.PlatformFacebook: {
					URL:        "https://facebook.com/acmewidgets",
					Source:     core.ProvenanceWebsite,
					Confidence: core.ConfidenceHigh,
				},
				core.PlatformInstagram: {
					URL:        "https://instagram.com/acmewidgets",
					Source:     core.ProvenanceSearch,
					Confidence: core.ConfidenceLow,
				},
				core.PlatformTikTok: core.NoMatch(),
			},
		},
		GoogleBusinessProfile: core.BusinessListing{
			Found:      "YES",
			Name:       "Acme Widgets Ltd",
			Address:    "1 Factory Lane, Leeds",
			Phone:      "0113 000 0000",
			Rating:     &rating,
			Reviews:    &reviews,
			Confidence: "very_high",
		},
	}
}

func TestSynthesizeWithoutDriverFallsBack(t *testing.T) {
	s := New(nil, "", zap.NewNop())
	result := s.Synthesize(context.Background(), sampleReport(), sampleInput())

	require.False(t, result.Success)
	require.Equal(t, fallbackNote, result.Note)
	require.Contains(t, result.Content, "AI verification temporarily unavailable.")
	require.Contains(t, result.Content, "- Facebook: NOT CHECKED")
	require.Contains(t, result.Content, "- Google Business Profile: NOT CHECKED")
}

func TestSynthesizeSuccess(t *testing.T) {
	stub := &stubDriver{resp: &driver.Response{
		Content: "Facebook is verified via website",
		Usage:   &driver.Usage{TotalTokens: 321},
	}}
	s := New(stub, "gpt-4o-mini", zap.NewNop())

	result := s.Synthesize(context.Background(), sampleReport(), sampleInput())
	require.True(t, result.Success)
	require.Equal(t, "Facebook is verified via website", result.Content)
	require.Equal(t, "gpt-4o-mini", result.ModelUsed)
	require.Equal(t, 321, *result.TokensUsed)

	require.Equal(t, "gpt-4o-mini", stub.req.Model)
	require.Len(t, stub.req.Messages, 2)
	require.Equal(t, "system", stub.req.Messages[0].Role)
	require.Contains(t, stub.req.Messages[0].Content, "strict verification assistant")
	require.Equal(t, 0.7, *stub.req.Temperature)
	require.Equal(t, 2000, *stub.req.MaxTokens)
}

func TestSynthesizeDriverErrorDegrades(t *testing.T) {
	stub := &stubDriver{err: errors.New("connection refused")}
	s := New(stub, "gpt-4o-mini", zap.NewNop())

	result := s.Synthesize(context.Background(), sampleReport(), sampleInput())
	require.False(t, result.Success)
	require.Contains(t, result.Error, "Failed to generate AI recommendations: connection refused")
	require.Contains(t, result.Content, "AI verification temporarily unavailable.")
}

func TestBuildPromptBlocks(t *testing.T) {
	prompt := BuildPrompt(sampleReport(), sampleInput())

	require.Contains(t, prompt, "- Name: Acme Widgets")
	require.Contains(t, prompt, "- Domain: acmewidgets.co.uk")
	require.Contains(t, prompt, "- Location: Leeds, gb")
	require.Contains(t, prompt, "- FACEBOOK: https://facebook.com/acmewidgets")
	require.Contains(t, prompt, "- INSTAGRAM: https://instagram.com/acmewidgets | Status: low")
	require.NotContains(t, prompt, "TIKTOK")
	require.Contains(t, prompt, "- Acme Widgets Ltd (1 Factory Lane, Leeds) | Phone: 0113 000 0000 | Rating: 4.6 (88 reviews) | Status: very_high")
	require.Contains(t, prompt, `respond with "NOT OWNED"`)
	require.Contains(t, prompt, `respond with "NOT FOUND"`)
}

func TestBuildPromptEmptyReport(t *testing.T) {
	report := &core.AuditReport{
		SocialMediaPresence:   core.SocialPresence{Platforms: map[core.Platform]core.PlatformMatch{}},
		GoogleBusinessProfile: core.ListingNotFound(),
	}
	input := sampleInput()
	input.Description = ""

	prompt := BuildPrompt(report, input)
	require.Contains(t, prompt, "- Description: Not provided")
	require.Contains(t, prompt, "Trusted (linked from website – already verified):\n- None")
	require.Contains(t, prompt, "Google Business Profile candidate:\n- None")
}
