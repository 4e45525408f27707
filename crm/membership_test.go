package crm_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stonefield/sitegate/crm"
	apperrors "github.com/stonefield/sitegate/internal/errors"
	"github.com/stretchr/testify/require"
)

// newTestVerifier wires a Verifier against a test server standing in for the
// whole CRM API.
func newTestVerifier(t *testing.T, handler http.Handler) (*crm.Verifier, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := crm.NewClient(srv.URL, "test-token")
	v, err := crm.NewVerifier(client, "99")
	require.NoError(t, err)
	return v, srv
}

// contactFound responds to the contact search with a single match.
func contactFound(mux *http.ServeMux, contactID string) {
	mux.HandleFunc("POST /crm/v3/objects/contacts/search", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"total":1,"results":[{"id":%q,"properties":{"email":"reader@example.com"}}]}`, contactID)
	})
}

func TestVerifier_PrimaryPagination(t *testing.T) {
	t.Run("match on the final of three pages", func(t *testing.T) {
		mux := http.NewServeMux()
		contactFound(mux, "777")

		var pages atomic.Int32
		var firstAfter atomic.Value
		mux.HandleFunc("GET /crm/v3/lists/99/memberships/join-order", func(w http.ResponseWriter, r *http.Request) {
			switch pages.Add(1) {
			case 1:
				firstAfter.Store(r.URL.Query().Get("after"))
				_, _ = w.Write([]byte(`{"results":[{"recordId":"1"},{"recordId":"2"}],"paging":{"next":{"after":"p2"}}}`))
			case 2:
				_, _ = w.Write([]byte(`{"results":[{"recordId":"3"}],"paging":{"next":{"after":"p3"}}}`))
			default:
				_, _ = w.Write([]byte(`{"results":[{"recordId":"777"}]}`))
			}
		})

		v, _ := newTestVerifier(t, mux)
		granted, err := v.VerifyAccess(context.Background(), "reader@example.com")
		require.NoError(t, err)
		require.True(t, granted)
		require.EqualValues(t, 3, pages.Load())
		require.Equal(t, "", firstAfter.Load())
	})

	t.Run("stops on first match without over-fetching", func(t *testing.T) {
		mux := http.NewServeMux()
		contactFound(mux, "1")

		var pages atomic.Int32
		mux.HandleFunc("GET /crm/v3/lists/99/memberships/join-order", func(w http.ResponseWriter, r *http.Request) {
			pages.Add(1)
			_, _ = w.Write([]byte(`{"results":[{"recordId":"1"}],"paging":{"next":{"after":"p2"}}}`))
		})

		v, _ := newTestVerifier(t, mux)
		granted, err := v.VerifyAccess(context.Background(), "reader@example.com")
		require.NoError(t, err)
		require.True(t, granted)
		require.EqualValues(t, 1, pages.Load())
	})

	t.Run("accepts bare member ids", func(t *testing.T) {
		mux := http.NewServeMux()
		contactFound(mux, "42")
		mux.HandleFunc("GET /crm/v3/lists/99/memberships/join-order", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"results":["41",42,{"recordId":"43"}]}`))
		})

		v, _ := newTestVerifier(t, mux)
		granted, err := v.VerifyAccess(context.Background(), "reader@example.com")
		require.NoError(t, err)
		require.True(t, granted)
	})
}

func TestVerifier_LegacyFallback(t *testing.T) {
	t.Run("primary failure falls back to legacy", func(t *testing.T) {
		mux := http.NewServeMux()
		contactFound(mux, "555")
		mux.HandleFunc("GET /crm/v3/lists/99/memberships/join-order", func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "gone", http.StatusNotFound)
		})

		var pages atomic.Int32
		var firstOffset atomic.Value
		mux.HandleFunc("GET /contacts/v1/lists/99/contacts/all", func(w http.ResponseWriter, r *http.Request) {
			switch pages.Add(1) {
			case 1:
				firstOffset.Store(r.URL.Query().Get("vidOffset"))
				_, _ = w.Write([]byte(`{"contacts":[{"vid":1},{"vid":2}],"has-more":true,"vid-offset":2}`))
			default:
				_, _ = w.Write([]byte(`{"contacts":[{"vid":555}],"has-more":false,"vid-offset":0}`))
			}
		})

		v, _ := newTestVerifier(t, mux)
		granted, err := v.VerifyAccess(context.Background(), "reader@example.com")
		require.NoError(t, err)
		require.True(t, granted)
		require.EqualValues(t, 2, pages.Load())
		require.Equal(t, "0", firstOffset.Load())
	})

	t.Run("no match on either endpoint", func(t *testing.T) {
		mux := http.NewServeMux()
		contactFound(mux, "555")

		var primaryPages, legacyPages atomic.Int32
		mux.HandleFunc("GET /crm/v3/lists/99/memberships/join-order", func(w http.ResponseWriter, r *http.Request) {
			primaryPages.Add(1)
			_, _ = w.Write([]byte(`{"results":[{"recordId":"1"}]}`))
		})
		mux.HandleFunc("GET /contacts/v1/lists/99/contacts/all", func(w http.ResponseWriter, r *http.Request) {
			legacyPages.Add(1)
			_, _ = w.Write([]byte(`{"contacts":[{"vid":1}],"has-more":false,"vid-offset":0}`))
		})

		v, _ := newTestVerifier(t, mux)
		granted, err := v.VerifyAccess(context.Background(), "reader@example.com")
		require.NoError(t, err)
		require.False(t, granted)
		require.EqualValues(t, 1, primaryPages.Load())
		require.EqualValues(t, 1, legacyPages.Load())
	})

	t.Run("both endpoints failing is no access, not an error", func(t *testing.T) {
		mux := http.NewServeMux()
		contactFound(mux, "555")
		mux.HandleFunc("GET /crm/v3/lists/99/memberships/join-order", func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "bad", http.StatusInternalServerError)
		})
		mux.HandleFunc("GET /contacts/v1/lists/99/contacts/all", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`not json`))
		})

		v, _ := newTestVerifier(t, mux)
		granted, err := v.VerifyAccess(context.Background(), "reader@example.com")
		require.NoError(t, err)
		require.False(t, granted)
	})
}

func TestVerifier_Preconditions(t *testing.T) {
	t.Run("not configured", func(t *testing.T) {
		client := crm.NewClient("http://unused.invalid", "")
		v, err := crm.NewVerifier(client, "99")
		require.NoError(t, err)

		_, err = v.VerifyAccess(context.Background(), "reader@example.com")
		require.ErrorIs(t, err, apperrors.ErrCrmNotConfigured)
	})

	t.Run("contact not found surfaces as its own outcome", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("POST /crm/v3/objects/contacts/search", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"total":0,"results":[]}`))
		})

		v, _ := newTestVerifier(t, mux)
		_, err := v.VerifyAccess(context.Background(), "unknown@example.com")
		require.ErrorIs(t, err, apperrors.ErrContactNotFound)
	})

	t.Run("missing list id", func(t *testing.T) {
		client := crm.NewClient("http://unused.invalid", "token")
		_, err := crm.NewVerifier(client, "")
		require.Error(t, err)
	})
}
