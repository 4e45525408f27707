package crm

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	apperrors "github.com/stonefield/sitegate/internal/errors"
)

// ContactFinder is the directory dependency of the Verifier.
type ContactFinder interface {
	SearchContactByEmail(ctx context.Context, email string) (*Contact, error)
}

// Verifier decides whether an email has access: the contact must exist in the
// directory and appear on the configured list. Verification is read-only and
// never mutates anything on the CRM side.
type Verifier struct {
	contacts   ContactFinder
	sources    []MembershipSource
	listID     string
	configured bool
}

// VerifierOption modifies a Verifier.
type VerifierOption func(*Verifier)

// WithContactFinder overrides the contact directory (primarily for testing).
func WithContactFinder(f ContactFinder) VerifierOption {
	return func(v *Verifier) {
		v.contacts = f
	}
}

// WithMembershipSources overrides the membership sources tried, in order
// (primarily for testing).
func WithMembershipSources(sources ...MembershipSource) VerifierOption {
	return func(v *Verifier) {
		v.sources = sources
	}
}

// NewVerifier creates a Verifier over the given client and list. The primary
// cursor-paginated membership endpoint is tried first, then the legacy
// offset-paginated one.
func NewVerifier(client *Client, listID string, options ...VerifierOption) (*Verifier, error) {
	if client == nil {
		return nil, errors.New("[NewVerifier] client is required")
	}
	if listID == "" {
		return nil, errors.New("[NewVerifier] listID is required")
	}

	v := &Verifier{
		contacts:   client,
		sources:    []MembershipSource{&v3MembershipSource{client: client}, &legacyMembershipSource{client: client}},
		listID:     listID,
		configured: client.Configured(),
	}
	for _, opt := range options {
		opt(v)
	}
	return v, nil
}

// VerifyAccess reports whether the email belongs to a contact on the list.
// Returns ErrCrmNotConfigured when no API token was supplied and
// ErrContactNotFound when the directory has no matching contact. Membership
// lookups fail closed: once every source has been exhausted or has failed,
// the answer is false with a nil error.
func (v *Verifier) VerifyAccess(ctx context.Context, email string) (bool, error) {
	if !v.configured {
		return false, apperrors.ErrCrmNotConfigured
	}

	contact, err := v.contacts.SearchContactByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrContactNotFound) {
			return false, err
		}
		return false, fmt.Errorf("verify access: %w", err)
	}

	for _, source := range v.sources {
		member, err := source.Contains(ctx, v.listID, contact.ID)
		if err != nil {
			log.Err(err).Str("contactID", contact.ID).Msg("membership source failed, trying next")
			continue
		}
		if member {
			return true, nil
		}
	}

	// Every source exhausted or failed: no access rather than an error to
	// the visitor.
	return false, nil
}
