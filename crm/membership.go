package crm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
)

const membershipPageSize = 100

// MembershipSource answers "is contact X on list Y". The verifier tries
// sources in fixed order and falls through to the next on any error.
type MembershipSource interface {
	Contains(ctx context.Context, listID, contactID string) (bool, error)
}

// v3MembershipSource walks the v3 list-memberships endpoint, following the
// paging.next.after cursor until the contact is found or pages run out.
type v3MembershipSource struct {
	client *Client
}

type v3MembershipPage struct {
	Results []json.RawMessage `json:"results"`
	Paging  *struct {
		Next *struct {
			After string `json:"after"`
		} `json:"next"`
	} `json:"paging"`
}

func (s *v3MembershipSource) Contains(ctx context.Context, listID, contactID string) (bool, error) {
	after := ""
	for {
		path := fmt.Sprintf("/crm/v3/lists/%s/memberships/join-order?limit=%d", url.PathEscape(listID), membershipPageSize)
		if after != "" {
			path += "&after=" + url.QueryEscape(after)
		}

		var page v3MembershipPage
		if err := s.client.getJSON(ctx, path, &page); err != nil {
			return false, fmt.Errorf("v3 memberships page: %w", err)
		}

		for _, raw := range page.Results {
			if memberID(raw) == contactID {
				return true, nil
			}
		}

		if page.Paging == nil || page.Paging.Next == nil || page.Paging.Next.After == "" {
			return false, nil
		}
		after = page.Paging.Next.After
	}
}

// memberID normalizes a single membership entry to a canonical contact id
// string. Entries arrive either as an object carrying a record id or as a
// bare id (string or number); anything else normalizes to "".
func memberID(raw json.RawMessage) string {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err == nil {
		if id, ok := obj["recordId"]; ok {
			return idString(id)
		}
		if id, ok := obj["id"]; ok {
			return idString(id)
		}
		return ""
	}
	return idString(raw)
}

func idString(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return ""
}

// legacyMembershipSource walks the v1 list-contacts endpoint, which pages
// with a vid-offset cursor plus a has-more flag.
type legacyMembershipSource struct {
	client *Client
}

type legacyMembershipPage struct {
	Contacts []struct {
		Vid int64 `json:"vid"`
	} `json:"contacts"`
	HasMore   bool  `json:"has-more"`
	VidOffset int64 `json:"vid-offset"`
}

func (s *legacyMembershipSource) Contains(ctx context.Context, listID, contactID string) (bool, error) {
	var offset int64
	for {
		path := fmt.Sprintf("/contacts/v1/lists/%s/contacts/all?count=%d&vidOffset=%d", url.PathEscape(listID), membershipPageSize, offset)

		var page legacyMembershipPage
		if err := s.client.getJSON(ctx, path, &page); err != nil {
			return false, fmt.Errorf("legacy memberships page: %w", err)
		}

		for _, contact := range page.Contacts {
			if strconv.FormatInt(contact.Vid, 10) == contactID {
				return true, nil
			}
		}

		if !page.HasMore {
			return false, nil
		}
		offset = page.VidOffset
	}
}
