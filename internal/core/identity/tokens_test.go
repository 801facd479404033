package identity

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vizlens/vizlens/internal/core"
)

func TestTokenizeStripsLegalSuffixes(t *testing.T) {
	tokens := Tokenize("Acme Tech Ltd")
	require.Contains(t, tokens, "acme")
	require.Contains(t, tokens, "tech")
	require.NotContains(t, tokens, "ltd")
}

func TestTokenizeAddsCompoundToken(t *testing.T) {
	tokens := Tokenize("Acme Corp")
	// "corp" survives the length filter, "acme" too, plus the join.
	require.Contains(t, tokens, "acmecorp")
}

func TestTokenizeDropsShortWords(t *testing.T) {
	tokens := Tokenize("Go Web Co")
	for _, token := range tokens {
		if token != "gowebco" {
			require.GreaterOrEqual(t, len(token), 4)
		}
	}
}

func TestTokenizeEmpty(t *testing.T) {
	require.Empty(t, Tokenize(""))
	require.Empty(t, Tokenize("Ltd Inc LLC"))
}

func TestBuildTokensUnions(t *testing.T) {
	input := &core.AuditInput{
		BusinessName: "Acme Tech Ltd",
		City:         core.StringList{"Lagos"},
		Country:      core.StringList{"Nigeria"},
		Keywords:     []string{"fintech payments"},
	}
	tokens := BuildTokens(input)
	require.Contains(t, tokens, "acme")
	require.Contains(t, tokens, "lagos")
	require.Contains(t, tokens, "nigeria")
	require.Contains(t, tokens, "fintech")
	require.Contains(t, tokens, "payments")
}

func TestBuildTokensDeduplicates(t *testing.T) {
	input := &core.AuditInput{
		BusinessName: "Lagos Bakery",
		City:         core.StringList{"Lagos"},
	}
	tokens := BuildTokens(input)

	count := 0
	for _, token := range tokens {
		if token == "lagos" {
			count++
		}
	}
	require.Equal(t, 1, count)
}

func TestBuildTokensLocationShapeEquivalence(t *testing.T) {
	lone := &core.AuditInput{BusinessName: "Acme", City: core.StringList{"Lagos"}, Country: core.StringList{"Nigeria"}}
	listed := &core.AuditInput{BusinessName: "Acme", City: core.StringList{"Lagos"}, Country: core.StringList{"Nigeria"}}
	require.Equal(t, BuildTokens(lone), BuildTokens(listed))
}

func TestMatchesAny(t *testing.T) {
	tokens := []string{"acme", "acmetech"}
	require.True(t, MatchesAny("Acme Tech Nigeria, 12 Marina Road", tokens))
	require.False(t, MatchesAny("Unrelated Store, Somewhere Else", tokens))
	require.False(t, MatchesAny("Acme Tech", nil))
	require.False(t, MatchesAny("", tokens))
}
