package authflow

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testGoogleConfig() GoogleConfig {
	return GoogleConfig{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		RedirectURL:  "https://app.example/auth/flow/google-connect",
		Timeout:      time.Second,
	}
}

func TestGoogleAuthorizationURI(t *testing.T) {
	t.Parallel()

	client := NewGoogleClient(testGoogleConfig())

	auth, err := client.AuthorizationURI(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, auth.CodeVerifier)
	require.NotEmpty(t, auth.State)

	parsed, err := url.Parse(auth.URI)
	require.NoError(t, err)
	query := parsed.Query()

	assert.Equal(t, "client-id", query.Get("client_id"))
	assert.Equal(t, auth.State, query.Get("state"))
	assert.Equal(t, "S256", query.Get("code_challenge_method"))
	assert.NotEmpty(t, query.Get("code_challenge"))
	assert.Equal(t, "https://app.example/auth/flow/google-connect", query.Get("redirect_uri"))

	second, err := client.AuthorizationURI(context.Background())
	require.NoError(t, err)
	assert.NotEqual(t, auth.CodeVerifier, second.CodeVerifier)
	assert.NotEqual(t, auth.State, second.State)
}

func TestGoogleProfile(t *testing.T) {
	t.Parallel()

	t.Run("fetches and decodes the userinfo document", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "Bearer access-token", r.Header.Get("Authorization"))
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{
				"id": "google-123",
				"email": "jane@example.com",
				"verified_email": true,
				"given_name": "Jane",
				"family_name": "Doe"
			}`))
		}))
		defer srv.Close()

		client := NewGoogleClient(testGoogleConfig())
		client.profileURL = srv.URL

		profile, err := client.Profile(context.Background(), "access-token")
		require.NoError(t, err)
		assert.Equal(t, "google-123", profile.ID)
		assert.Equal(t, "jane@example.com", profile.Email)
		assert.True(t, profile.VerifiedEmail)
		assert.Equal(t, "Jane", profile.GivenName)
		assert.Equal(t, "Doe", profile.FamilyName)
	})

	t.Run("non-200 response fails", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer srv.Close()

		client := NewGoogleClient(testGoogleConfig())
		client.profileURL = srv.URL

		_, err := client.Profile(context.Background(), "expired")
		assert.ErrorIs(t, err, ErrProfileFetchFailed)
	})
}
