package resolve

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/vizlens/vizlens/internal/core"
	"github.com/vizlens/vizlens/internal/core/identity"
)

// ListingResolver checks for a local business listing. Only the first
// text-search candidate is considered; it must pass token verification on
// name+address or the resolver downgrades to the canonical not-found
// record. Every failure branch converges on that same shape so callers
// never see partial data.
type ListingResolver struct {
	Places *PlacesClient
	Logger *zap.Logger
}

// Resolve looks up the listing for the audited business.
func (r *ListingResolver) Resolve(ctx context.Context, input *core.AuditInput, tokens []string) ListingOutcome {
	if !r.Places.Configured() {
		return r.skip("places api key not configured")
	}

	name := strings.TrimSpace(input.BusinessName)
	if name == "" {
		return r.skip("business name missing")
	}

	query := strings.TrimSpace(name + " " + input.Location())
	if query == "" {
		query = name
	}

	candidates, err := r.Places.TextSearch(ctx, query)
	if err != nil {
		r.log().Warn("places text search failed", zap.String("query", query), zap.Error(err))
		return ListingOutcome{State: StateUnavailable, Reason: "text search failed", Listing: core.ListingNotFound()}
	}
	if len(candidates) == 0 || candidates[0].PlaceID == "" {
		return ListingOutcome{State: StateNotFound, Reason: "no listing match", Listing: core.ListingNotFound()}
	}

	candidate := candidates[0]
	details, err := r.Places.Details(ctx, candidate.PlaceID)
	if err != nil {
		r.log().Warn("places details lookup failed", zap.String("place_id", candidate.PlaceID), zap.Error(err))
		return ListingOutcome{State: StateUnavailable, Reason: "details lookup failed", Listing: core.ListingNotFound()}
	}

	listing := core.BusinessListing{
		Found:      "YES",
		Name:       firstNonEmpty(details.Name, candidate.Name, name),
		Address:    firstNonEmpty(details.FormattedAddress, candidate.FormattedAddress, "N/A"),
		Phone:      firstNonEmpty(details.FormattedPhoneNumber, "N/A"),
		Rating:     details.Rating,
		Reviews:    details.UserRatingsTotal,
		Confidence: "very_high",
	}

	// An empty token set means "cannot verify"; the candidate passes.
	if len(tokens) > 0 && !identity.MatchesAny(listing.Name+" "+listing.Address, tokens) {
		r.log().Info("listing candidate failed keyword verification",
			zap.String("candidate", listing.Name))
		return ListingOutcome{State: StateNotFound, Reason: "candidate failed keyword verification", Listing: core.ListingNotFound()}
	}

	return ListingOutcome{State: StateResolved, Listing: listing}
}

func (r *ListingResolver) skip(reason string) ListingOutcome {
	r.log().Info("local listing lookup skipped", zap.String("reason", reason))
	return ListingOutcome{State: StateUnavailable, Reason: reason, Listing: core.ListingNotFound()}
}

func (r *ListingResolver) log() *zap.Logger {
	if r != nil && r.Logger != nil {
		return r.Logger
	}
	return zap.NewNop()
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
