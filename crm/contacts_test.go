package crm_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stonefield/sitegate/crm"
	apperrors "github.com/stonefield/sitegate/internal/errors"
	"github.com/stretchr/testify/require"
)

func TestClient_SearchContactByEmail(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		var gotMethod, gotPath, gotAuth string
		var gotBody map[string]any
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotMethod = r.Method
			gotPath = r.URL.Path
			gotAuth = r.Header.Get("Authorization")
			_ = json.NewDecoder(r.Body).Decode(&gotBody)
			_, _ = w.Write([]byte(`{"total":1,"results":[{"id":"1234","properties":{"email":"reader@example.com"}}]}`))
		}))
		defer srv.Close()

		client := crm.NewClient(srv.URL, "test-token")
		contact, err := client.SearchContactByEmail(context.Background(), "  Reader@Example.com ")
		require.NoError(t, err)
		require.Equal(t, "1234", contact.ID)
		require.Equal(t, "reader@example.com", contact.Email)

		require.Equal(t, http.MethodPost, gotMethod)
		require.Equal(t, "/crm/v3/objects/contacts/search", gotPath)
		require.Equal(t, "Bearer test-token", gotAuth)

		// The email filter must carry the normalized address.
		groups := gotBody["filterGroups"].([]any)
		filters := groups[0].(map[string]any)["filters"].([]any)
		first := filters[0].(map[string]any)
		require.Equal(t, "email", first["propertyName"])
		require.Equal(t, "EQ", first["operator"])
		require.Equal(t, "reader@example.com", first["value"])
	})

	t.Run("not found", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"total":0,"results":[]}`))
		}))
		defer srv.Close()

		client := crm.NewClient(srv.URL, "test-token")
		_, err := client.SearchContactByEmail(context.Background(), "unknown@example.com")
		require.ErrorIs(t, err, apperrors.ErrContactNotFound)
	})

	t.Run("upstream failure", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "nope", http.StatusBadGateway)
		}))
		defer srv.Close()

		client := crm.NewClient(srv.URL, "test-token")
		_, err := client.SearchContactByEmail(context.Background(), "reader@example.com")
		require.ErrorIs(t, err, apperrors.ErrUpstream)
		require.NotErrorIs(t, err, apperrors.ErrContactNotFound)
	})
}
