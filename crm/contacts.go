package crm

import (
	"context"
	"fmt"

	apperrors "github.com/stonefield/sitegate/internal/errors"
	"github.com/stonefield/sitegate/token"
)

// Contact is the slice of a CRM contact record the gate cares about.
type Contact struct {
	ID    string
	Email string
}

type contactSearchRequest struct {
	FilterGroups []filterGroup `json:"filterGroups"`
	Properties   []string      `json:"properties"`
	Limit        int           `json:"limit"`
}

type filterGroup struct {
	Filters []filter `json:"filters"`
}

type filter struct {
	PropertyName string `json:"propertyName"`
	Operator     string `json:"operator"`
	Value        string `json:"value"`
}

type contactSearchResponse struct {
	Total   int `json:"total"`
	Results []struct {
		ID         string            `json:"id"`
		Properties map[string]string `json:"properties"`
	} `json:"results"`
}

// SearchContactByEmail looks up a contact by exact email match. The email is
// normalized first so lookups are case-insensitive. Returns
// ErrContactNotFound when the directory has no such contact.
func (c *Client) SearchContactByEmail(ctx context.Context, email string) (*Contact, error) {
	email = token.NormalizeEmail(email)

	req := contactSearchRequest{
		FilterGroups: []filterGroup{{
			Filters: []filter{{PropertyName: "email", Operator: "EQ", Value: email}},
		}},
		Properties: []string{"email", "firstname", "lastname"},
		Limit:      1,
	}

	var resp contactSearchResponse
	if err := c.postJSON(ctx, "/crm/v3/objects/contacts/search", req, &resp); err != nil {
		return nil, fmt.Errorf("contact search: %w", err)
	}

	if len(resp.Results) == 0 {
		return nil, apperrors.ErrContactNotFound
	}

	found := resp.Results[0]
	return &Contact{ID: found.ID, Email: found.Properties["email"]}, nil
}
