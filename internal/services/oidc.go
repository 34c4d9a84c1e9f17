package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"

	types "github.com/edutax/edutax-backend/internal/domain"
)

type OIDCConfig struct {
	IssuerURL    string
	ClientID     string
	ClientSecret string
	RedirectURL  string
	Scopes       []string
}

type oidcDiscovery struct {
	Issuer                string `json:"issuer"`
	AuthorizationEndpoint string `json:"authorization_endpoint"`
	TokenEndpoint         string `json:"token_endpoint"`
	UserinfoEndpoint      string `json:"userinfo_endpoint"`
	EndSessionEndpoint    string `json:"end_session_endpoint"`
	JWKSURI               string `json:"jwks_uri"`
}

// OIDCProvider is the authorization-code client for one identity provider.
type OIDCProvider struct {
	oauth         *oauth2.Config
	httpClient    *http.Client
	userinfoURL   string
	endSessionURL string
	// idTokens is nil when the provider publishes no jwks_uri; the profile then
	// comes from userinfo alone.
	idTokens *idTokenVerifier
}

// DiscoverOIDCProvider loads the provider's endpoints from its well-known
// configuration document.
func DiscoverOIDCProvider(ctx context.Context, httpClient *http.Client, cfg OIDCConfig) (*OIDCProvider, error) {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	issuer := strings.TrimRight(strings.TrimSpace(cfg.IssuerURL), "/")
	if issuer == "" {
		return nil, fmt.Errorf("oidc issuer url is empty")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, issuer+"/.well-known/openid-configuration", nil)
	if err != nil {
		return nil, err
	}
	res, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("oidc discovery: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, fmt.Errorf("oidc discovery failed: %s", res.Status)
	}

	var d oidcDiscovery
	if err := json.NewDecoder(res.Body).Decode(&d); err != nil {
		return nil, fmt.Errorf("decode oidc discovery: %w", err)
	}
	if d.AuthorizationEndpoint == "" || d.TokenEndpoint == "" || d.UserinfoEndpoint == "" {
		return nil, fmt.Errorf("oidc discovery missing authorization, token or userinfo endpoint")
	}

	scopes := cfg.Scopes
	if len(scopes) == 0 {
		scopes = []string{"openid", "email", "profile"}
	}
	p := &OIDCProvider{
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       scopes,
			Endpoint: oauth2.Endpoint{
				AuthURL:  d.AuthorizationEndpoint,
				TokenURL: d.TokenEndpoint,
			},
		},
		httpClient:    httpClient,
		userinfoURL:   d.UserinfoEndpoint,
		endSessionURL: d.EndSessionEndpoint,
	}
	if d.JWKSURI != "" {
		iss := d.Issuer
		if iss == "" {
			iss = issuer
		}
		p.idTokens = newIDTokenVerifier(httpClient, iss, cfg.ClientID, d.JWKSURI)
	}
	return p, nil
}

func (p *OIDCProvider) AuthCodeURL(state, verifier, nonce string) string {
	return p.oauth.AuthCodeURL(state,
		oauth2.S256ChallengeOption(verifier),
		oauth2.SetAuthURLParam("nonce", nonce),
	)
}

func (p *OIDCProvider) ClientID() string { return p.oauth.ClientID }

func (p *OIDCProvider) EndSessionURL() string { return p.endSessionURL }

// FetchProfile exchanges code for a token, verifies the ID token when the
// provider signs one, and reads the userinfo endpoint. Userinfo values win over
// ID token claims, but both must name the same subject.
func (p *OIDCProvider) FetchProfile(ctx context.Context, code, verifier, nonce string) (types.UserProfile, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, p.httpClient)

	tok, err := p.oauth.Exchange(ctx, code, oauth2.VerifierOption(verifier))
	if err != nil {
		return types.UserProfile{}, fmt.Errorf("exchange code: %w", err)
	}

	claims := map[string]any{}
	if p.idTokens != nil {
		raw, _ := tok.Extra("id_token").(string)
		idClaims, err := p.idTokens.verify(ctx, raw, nonce)
		if err != nil {
			return types.UserProfile{}, err
		}
		for k, v := range idClaims {
			claims[k] = v
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.userinfoURL, nil)
	if err != nil {
		return types.UserProfile{}, err
	}
	res, err := p.oauth.Client(ctx, tok).Do(req)
	if err != nil {
		return types.UserProfile{}, fmt.Errorf("userinfo: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return types.UserProfile{}, fmt.Errorf("userinfo failed: %s: %s", res.Status, strings.TrimSpace(string(body)))
	}

	info := map[string]any{}
	if err := json.NewDecoder(res.Body).Decode(&info); err != nil {
		return types.UserProfile{}, fmt.Errorf("decode userinfo: %w", err)
	}
	if sub, ok := claims["sub"]; ok && firstClaim(info, "sub") != "" && info["sub"] != sub {
		return types.UserProfile{}, fmt.Errorf("userinfo subject does not match id_token")
	}
	for k, v := range info {
		if s, isString := v.(string); isString && strings.TrimSpace(s) == "" {
			continue
		}
		claims[k] = v
	}
	return claimsToProfile(claims), nil
}

func firstClaim(c map[string]any, keys ...string) string {
	for _, k := range keys {
		if s, _ := c[k].(string); strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s)
		}
	}
	return ""
}

func claimsToProfile(c map[string]any) types.UserProfile {
	return types.UserProfile{
		Subject:         firstClaim(c, "sub"),
		Email:           firstClaim(c, "email"),
		FirstName:       firstClaim(c, "given_name", "first_name"),
		LastName:        firstClaim(c, "family_name", "last_name"),
		ProfileImageURL: firstClaim(c, "picture", "profile_image_url"),
	}
}
