// Package resolve validates externally discovered social profiles and
// business listings against the audited identity. Both resolvers share
// the same pattern: prefer an authoritative on-site signal, fall back to
// a search API, and accept a candidate only when it shares an identity
// token with the business.
package resolve

import "github.com/vizlens/vizlens/internal/core"

// State distinguishes "checked and found nothing" from "could not check".
// The external JSON contract flattens both to not-found, but tests and
// diagnostics rely on the internal distinction.
type State int

const (
	StateResolved State = iota
	StateNotFound
	StateUnavailable
)

// Outcome is the internal tri-state result for one social platform.
type Outcome struct {
	State  State
	Reason string
	Match  core.PlatformMatch
}

// Flatten collapses the tri-state to the external platform record.
func (o Outcome) Flatten() core.PlatformMatch {
	if o.State == StateResolved {
		return o.Match
	}
	return core.NoMatch()
}

// ListingOutcome is the internal tri-state result for the local listing.
type ListingOutcome struct {
	State   State
	Reason  string
	Listing core.BusinessListing
}

// Flatten collapses the tri-state to the external listing record.
func (o ListingOutcome) Flatten() core.BusinessListing {
	if o.State == StateResolved {
		return o.Listing
	}
	return core.ListingNotFound()
}

func resolved(match core.PlatformMatch) Outcome {
	return Outcome{State: StateResolved, Match: match}
}

func notFound(reason string) Outcome {
	return Outcome{State: StateNotFound, Reason: reason, Match: core.NoMatch()}
}

func unavailable(reason string) Outcome {
	return Outcome{State: StateUnavailable, Reason: reason, Match: core.NoMatch()}
}
