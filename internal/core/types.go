package core

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Platform identifies a social network probed during an audit.
type Platform string

const (
	PlatformFacebook  Platform = "facebook"
	PlatformInstagram Platform = "instagram"
	PlatformLinkedIn  Platform = "linkedin"
	PlatformYouTube   Platform = "youtube"
	PlatformTwitter   Platform = "twitter"
	PlatformTikTok    Platform = "tiktok"
)

// Platforms lists every probed platform in report order.
var Platforms = []Platform{
	PlatformFacebook,
	PlatformInstagram,
	PlatformLinkedIn,
	PlatformYouTube,
	PlatformTwitter,
	PlatformTikTok,
}

// PlatformDomains maps each platform to the domain scanned for links.
// Twitter matches both x.com and twitter.com during resolution.
var PlatformDomains = map[Platform]string{
	PlatformFacebook:  "facebook.com",
	PlatformInstagram: "instagram.com",
	PlatformLinkedIn:  "linkedin.com",
	PlatformYouTube:   "youtube.com",
	PlatformTwitter:   "x.com",
	PlatformTikTok:    "tiktok.com",
}

// Provenance records how a platform match was obtained.
type Provenance string

const (
	ProvenanceWebsite Provenance = "website"
	ProvenanceSearch  Provenance = "search"
	ProvenanceNone    Provenance = "none"
)

// Confidence is the coarse trust tier derived from provenance.
type Confidence string

const (
	ConfidenceHigh Confidence = "HIGH"
	ConfidenceLow  Confidence = "LOW"
	ConfidenceNone Confidence = "NONE"
)

// URLNotFound is the sentinel URL for unresolved platforms.
const URLNotFound = "NOT FOUND"

// PlatformMatch is the resolved state of one social platform.
// Source "website" always implies confidence HIGH; source "none" always
// implies the NOT FOUND sentinel and confidence NONE.
type PlatformMatch struct {
	URL        string     `json:"url"`
	Source     Provenance `json:"source"`
	Confidence Confidence `json:"confidence"`
}

// Resolved reports whether the platform was matched at all.
func (m PlatformMatch) Resolved() bool {
	return m.Source != ProvenanceNone && m.URL != "" && m.URL != URLNotFound
}

// NoMatch is the canonical unresolved platform record.
func NoMatch() PlatformMatch {
	return PlatformMatch{URL: URLNotFound, Source: ProvenanceNone, Confidence: ConfidenceNone}
}

// StringList accepts either a JSON/YAML string or list of strings and
// normalizes to a list. Input `"Lagos"` and `["Lagos"]` are equivalent
// everywhere downstream.
type StringList []string

// UnmarshalJSON coerces a lone string into a single-element list.
func (s *StringList) UnmarshalJSON(data []byte) error {
	var one string
	if err := json.Unmarshal(data, &one); err == nil {
		*s = StringList{one}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return fmt.Errorf("expected string or list of strings: %w", err)
	}
	*s = StringList(many)
	return nil
}

// UnmarshalYAML mirrors the JSON coercion for YAML input files.
func (s *StringList) UnmarshalYAML(unmarshal func(any) error) error {
	var one string
	if err := unmarshal(&one); err == nil {
		*s = StringList{one}
		return nil
	}
	var many []string
	if err := unmarshal(&many); err != nil {
		return fmt.Errorf("expected string or list of strings: %w", err)
	}
	*s = StringList(many)
	return nil
}

// Joined returns non-empty entries joined with a single space.
func (s StringList) Joined() string {
	parts := make([]string, 0, len(s))
	for _, v := range s {
		if v = strings.TrimSpace(v); v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, " ")
}

// AuditInput is the validated request contract for one audit run.
type AuditInput struct {
	WebsiteURL     string     `json:"website_url" yaml:"website_url" validate:"required,url,max=500"`
	BusinessName   string     `json:"business_name" yaml:"business_name" validate:"required,max=255"`
	Industry       string     `json:"industry" yaml:"industry" validate:"required,max=255"`
	Country        StringList `json:"country" yaml:"country" validate:"required,min=1"`
	City           StringList `json:"city" yaml:"city" validate:"required,min=1"`
	TargetAudience string     `json:"target_audience" yaml:"target_audience" validate:"required,max=500"`
	Description    string     `json:"description,omitempty" yaml:"description,omitempty"`
	Competitors    []string   `json:"competitors,omitempty" yaml:"competitors,omitempty" validate:"omitempty,dive,max=500"`
	Keywords       []string   `json:"keywords,omitempty" yaml:"keywords,omitempty" validate:"omitempty,dive,max=100"`
}

// Location joins city and country for search queries.
func (in *AuditInput) Location() string {
	return strings.TrimSpace(strings.TrimSpace(in.City.Joined()) + " " + strings.TrimSpace(in.Country.Joined()))
}

// BusinessListing is the local-listing (Google Business Profile) result.
// A candidate is either fully verified or collapsed into the canonical
// not-found record; half-populated listings are never emitted.
type BusinessListing struct {
	Found      string   `json:"found"` // YES / NO / UNKNOWN
	Name       string   `json:"name"`
	Address    string   `json:"address"`
	Phone      string   `json:"phone"`
	Rating     *float64 `json:"rating"`
	Reviews    *int     `json:"reviews"`
	Confidence string   `json:"confidence"` // very_high / high / medium / low
	Score      *int     `json:"score,omitempty"`
}

// ListingNotFound is the canonical not-found listing record.
func ListingNotFound() BusinessListing {
	return BusinessListing{
		Found:      "NO",
		Name:       "N/A",
		Address:    "N/A",
		Phone:      "N/A",
		Confidence: "low",
	}
}
