package probe

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/openrdap/rdap"
)

// RDAPLookup resolves domain registration data through the public RDAP
// bootstrap chain.
type RDAPLookup struct {
	Client  *rdap.Client
	Timeout time.Duration
}

// NewRDAPLookup builds a lookup with the default bootstrap client.
func NewRDAPLookup() *RDAPLookup {
	return &RDAPLookup{
		Client:  &rdap.Client{},
		Timeout: 15 * time.Second,
	}
}

// LookupDomain queries RDAP for the domain and flattens registrar,
// status, and expiration. A not-found answer is reported as an error so
// the caller records it without guessing.
func (l *RDAPLookup) LookupDomain(ctx context.Context, domain string) (DomainRegistration, error) {
	req := rdap.NewDomainRequest(domain)
	if l.Timeout > 0 {
		req.Timeout = l.Timeout
	}
	req = req.WithContext(ctx)

	client := l.Client
	if client == nil {
		client = &rdap.Client{}
	}

	resp, err := client.Do(req)
	if err != nil {
		var clientErr *rdap.ClientError
		if errors.As(err, &clientErr) && clientErr.Type == rdap.ObjectDoesNotExist {
			return DomainRegistration{}, errors.New("domain not registered")
		}
		return DomainRegistration{}, err
	}

	record, ok := resp.Object.(*rdap.Domain)
	if !ok || record == nil {
		return DomainRegistration{}, errors.New("unexpected rdap response")
	}

	registration := DomainRegistration{
		Domain: domain,
		Status: record.Status,
	}
	for _, entity := range record.Entities {
		for _, role := range entity.Roles {
			if role == "registrar" && entity.VCard != nil {
				registration.Registrar = entity.VCard.Name()
			}
		}
	}
	for _, event := range record.Events {
		if event.Action == "expiration" {
			registration.Expiration = event.Date
		}
	}
	return registration, nil
}

// domainRegistration derives the registrable domain from the site URL and
// runs the configured lookup.
func (r *Runner) domainRegistration(ctx context.Context, siteURL string) DomainRegistration {
	parsed, err := url.Parse(siteURL)
	if err != nil || parsed.Hostname() == "" {
		return DomainRegistration{Error: "Invalid site URL"}
	}
	domain := strings.TrimPrefix(strings.ToLower(parsed.Hostname()), "www.")

	if r.Registry == nil {
		return DomainRegistration{Domain: domain, Error: "Registration lookup not configured"}
	}

	registration, err := r.Registry.LookupDomain(ctx, domain)
	if err != nil {
		return DomainRegistration{Domain: domain, Error: err.Error()}
	}
	registration.Domain = domain
	return registration
}
