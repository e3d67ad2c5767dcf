package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/tourvisto/backend/internal/domain"
)

// peopleAPIURL is the extended profile endpoint used to fetch a higher
// quality avatar than the one embedded in the userinfo response.
const peopleAPIURL = "https://people.googleapis.com/v1/people/me?personFields=photos"

// userinfoURL is the OpenID Connect userinfo endpoint.
const userinfoURL = "https://openidconnect.googleapis.com/v1/userinfo"

// Provider abstracts the external identity provider so the auth service and
// handler tests can run without network access.
type Provider interface {
	// AuthCodeURL returns the provider URL to redirect the user to,
	// carrying the opaque state value.
	AuthCodeURL(state string) string

	// Exchange redeems an authorization code for the user's identity.
	Exchange(ctx context.Context, code string) (domain.Identity, error)
}

// GoogleProvider implements Provider against Google OAuth 2.0.
type GoogleProvider struct {
	config *oauth2.Config
	client *http.Client // nil means http.DefaultClient; injectable for tests
}

// NewGoogleProvider builds a GoogleProvider. redirectURL is the absolute
// callback URL registered with the OAuth application.
func NewGoogleProvider(clientID, clientSecret, redirectURL string) *GoogleProvider {
	return &GoogleProvider{
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		},
	}
}

// AuthCodeURL returns the Google consent page URL for the given state.
func (p *GoogleProvider) AuthCodeURL(state string) string {
	return p.config.AuthCodeURL(state)
}

// Exchange redeems the authorization code and assembles the identity from
// the userinfo endpoint. A People API photo lookup then runs best-effort:
// its failure downgrades the avatar, never the sign-in.
func (p *GoogleProvider) Exchange(ctx context.Context, code string) (domain.Identity, error) {
	tok, err := p.config.Exchange(p.ctxWithClient(ctx), code)
	if err != nil {
		return domain.Identity{}, fmt.Errorf("auth.GoogleProvider.Exchange: %w", err)
	}

	client := oauth2.NewClient(p.ctxWithClient(ctx), oauth2.StaticTokenSource(tok))

	identity, err := fetchUserinfo(ctx, client)
	if err != nil {
		return domain.Identity{}, fmt.Errorf("auth.GoogleProvider.Exchange: %w", err)
	}

	if photo, err := fetchProfilePhoto(ctx, client); err == nil && photo != "" {
		identity.ImageURL = photo
	}

	return identity, nil
}

// ctxWithClient injects the test HTTP client into the context the oauth2
// package reads its transport from.
func (p *GoogleProvider) ctxWithClient(ctx context.Context) context.Context {
	if p.client == nil {
		return ctx
	}
	return context.WithValue(ctx, oauth2.HTTPClient, p.client)
}

// fetchUserinfo reads the OpenID Connect userinfo document.
func fetchUserinfo(ctx context.Context, client *http.Client) (domain.Identity, error) {
	var doc struct {
		Sub     string `json:"sub"`
		Name    string `json:"name"`
		Email   string `json:"email"`
		Picture string `json:"picture"`
	}
	if err := getJSON(ctx, client, userinfoURL, &doc); err != nil {
		return domain.Identity{}, err
	}
	if doc.Sub == "" {
		return domain.Identity{}, fmt.Errorf("userinfo response missing subject")
	}
	return domain.Identity{
		AccountID: doc.Sub,
		Name:      doc.Name,
		Email:     doc.Email,
		ImageURL:  doc.Picture,
	}, nil
}

// fetchProfilePhoto asks the People API for the primary profile photo.
func fetchProfilePhoto(ctx context.Context, client *http.Client) (string, error) {
	var doc struct {
		Photos []struct {
			URL string `json:"url"`
		} `json:"photos"`
	}
	if err := getJSON(ctx, client, peopleAPIURL, &doc); err != nil {
		return "", err
	}
	if len(doc.Photos) == 0 {
		return "", nil
	}
	return doc.Photos[0].URL, nil
}

// getJSON performs an authenticated GET and decodes the JSON body into out.
func getJSON(ctx context.Context, client *http.Client, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET %s: status %d", url, resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
