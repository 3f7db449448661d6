package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"
	"golang.org/x/oauth2/google"
)

// Profile is the provider-issued identity assertion reduced to the
// fields a local account needs.
type Profile struct {
	ProviderID string
	Email      string
	FirstName  string
	LastName   string
	Picture    string
}

// Provider is a federated identity provider. AuthCodeURL starts the
// redirect flow; FetchProfile exchanges the callback code for a
// profile.
type Provider interface {
	Name() string
	AuthCodeURL(state string) string
	FetchProfile(ctx context.Context, code string) (*Profile, error)
}

type googleProvider struct {
	config *oauth2.Config
}

func NewGoogleProvider(clientID, clientSecret, redirectBase string) Provider {
	return &googleProvider{
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectBase + "/auth/google/callback",
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		},
	}
}

func (p *googleProvider) Name() string { return "google" }

func (p *googleProvider) AuthCodeURL(state string) string {
	return p.config.AuthCodeURL(state)
}

func (p *googleProvider) FetchProfile(ctx context.Context, code string) (*Profile, error) {
	token, err := p.config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("google token exchange: %w", err)
	}

	var info struct {
		ID         string `json:"id"`
		Email      string `json:"email"`
		GivenName  string `json:"given_name"`
		FamilyName string `json:"family_name"`
		Picture    string `json:"picture"`
	}
	if err := fetchJSON(ctx, p.config.Client(ctx, token), "https://www.googleapis.com/oauth2/v2/userinfo", &info); err != nil {
		return nil, fmt.Errorf("google userinfo: %w", err)
	}

	return &Profile{
		ProviderID: info.ID,
		Email:      info.Email,
		FirstName:  info.GivenName,
		LastName:   info.FamilyName,
		Picture:    info.Picture,
	}, nil
}

type githubProvider struct {
	config *oauth2.Config
}

func NewGithubProvider(clientID, clientSecret, redirectBase string) Provider {
	return &githubProvider{
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectBase + "/auth/github/callback",
			Scopes:       []string{"read:user", "user:email"},
			Endpoint:     github.Endpoint,
		},
	}
}

func (p *githubProvider) Name() string { return "github" }

func (p *githubProvider) AuthCodeURL(state string) string {
	return p.config.AuthCodeURL(state)
}

func (p *githubProvider) FetchProfile(ctx context.Context, code string) (*Profile, error) {
	token, err := p.config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("github token exchange: %w", err)
	}

	client := p.config.Client(ctx, token)

	var info struct {
		ID        int64  `json:"id"`
		Name      string `json:"name"`
		Email     string `json:"email"`
		AvatarURL string `json:"avatar_url"`
	}
	if err := fetchJSON(ctx, client, "https://api.github.com/user", &info); err != nil {
		return nil, fmt.Errorf("github user: %w", err)
	}

	email := info.Email
	if email == "" {
		// Email is hidden on many GitHub profiles; the emails endpoint
		// still returns the verified primary.
		var emails []struct {
			Email    string `json:"email"`
			Primary  bool   `json:"primary"`
			Verified bool   `json:"verified"`
		}
		if err := fetchJSON(ctx, client, "https://api.github.com/user/emails", &emails); err != nil {
			return nil, fmt.Errorf("github emails: %w", err)
		}
		for _, e := range emails {
			if e.Primary && e.Verified {
				email = e.Email
				break
			}
		}
	}

	first, last := splitName(info.Name)
	return &Profile{
		ProviderID: fmt.Sprintf("%d", info.ID),
		Email:      email,
		FirstName:  first,
		LastName:   last,
		Picture:    info.AvatarURL,
	}, nil
}

func fetchJSON(ctx context.Context, client *http.Client, url string, out interface{}) error {
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
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func splitName(full string) (string, string) {
	parts := strings.Fields(full)
	switch len(parts) {
	case 0:
		return "", ""
	case 1:
		return parts[0], ""
	default:
		return parts[0], strings.Join(parts[1:], " ")
	}
}
