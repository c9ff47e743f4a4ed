package authflow

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/endpoints"

	"github.com/amethyst-live/identity/pkg/randstr"
)

const googleProfileURL = "https://www.googleapis.com/oauth2/v2/userinfo?alt=json"

// stateLength is the length of the generated OAuth2 state value.
const stateLength = 32

// GoogleConfig holds the Google OAuth2 client credentials and the bound on
// outbound calls to the provider.
type GoogleConfig struct {
	ClientID     string        `env:"GOOGLE_CLIENT_ID,required"`
	ClientSecret string        `env:"GOOGLE_CLIENT_SECRET,required"`
	RedirectURL  string        `env:"GOOGLE_REDIRECT_URL,required"`
	Timeout      time.Duration `env:"GOOGLE_HTTP_TIMEOUT" envDefault:"10s"`
}

// GoogleClient implements Client against Google's OAuth2 endpoints using
// the PKCE code flow.
type GoogleClient struct {
	conf       oauth2.Config
	http       *http.Client
	profileURL string
}

var _ Client = (*GoogleClient)(nil)

// NewGoogleClient builds a Google OAuth2 client from config.
func NewGoogleClient(cfg GoogleConfig) *GoogleClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &GoogleClient{
		conf: oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes: []string{
				"https://www.googleapis.com/auth/userinfo.email",
				"https://www.googleapis.com/auth/userinfo.profile",
			},
			Endpoint: endpoints.Google,
		},
		http:       &http.Client{Timeout: timeout},
		profileURL: googleProfileURL,
	}
}

// AuthorizationURI builds the authorization redirect with a fresh PKCE
// verifier (S256 challenge) and random state value.
func (g *GoogleClient) AuthorizationURI(ctx context.Context) (Authorization, error) {
	state, err := randstr.New(stateLength)
	if err != nil {
		return Authorization{}, err
	}
	verifier := oauth2.GenerateVerifier()
	return Authorization{
		URI:          g.conf.AuthCodeURL(state, oauth2.S256ChallengeOption(verifier)),
		CodeVerifier: verifier,
		State:        state,
	}, nil
}

// Exchange trades the authorization code plus verifier for an access token.
func (g *GoogleClient) Exchange(ctx context.Context, code, verifier string) (string, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, g.http)
	token, err := g.conf.Exchange(ctx, code, oauth2.VerifierOption(verifier))
	if err != nil {
		return "", errors.Join(ErrExchangeFailed, err)
	}
	return token.AccessToken, nil
}

// Profile fetches the userinfo document for the access token.
func (g *GoogleClient) Profile(ctx context.Context, accessToken string) (*Profile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.profileURL, nil)
	if err != nil {
		return nil, errors.Join(ErrProfileFetchFailed, err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := g.http.Do(req)
	if err != nil {
		return nil, errors.Join(ErrProfileFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Join(ErrProfileFetchFailed,
			fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	var profile Profile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, errors.Join(ErrProfileFetchFailed, err)
	}
	return &profile, nil
}
