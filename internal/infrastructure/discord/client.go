// Package discord wraps the Discord REST API surface the community site
// depends on: OAuth2 login, guild member/role lookups, and webhook delivery.
package discord

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/majikku/community-api/internal/api/metrics"
	"github.com/majikku/community-api/internal/core/domain"
	"github.com/majikku/community-api/internal/core/ports"
)

const (
	defaultAPIEndpoint = "https://discord.com/api/v10"
	cdnEndpoint        = "https://cdn.discordapp.com"

	requestTimeout = 10 * time.Second
	// memberPageLimit is Discord's maximum page size for the guild members
	// listing.
	memberPageLimit = 1000
)

// Config carries the Discord application and guild settings.
type Config struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string
	BotToken     string
	GuildID      string
	// APIEndpoint overrides the Discord API base URL; used in tests.
	APIEndpoint string
}

// Client talks to the Discord REST API. It implements ports.RoleProvider.
type Client struct {
	cfg  Config
	http *http.Client
	log  zerolog.Logger
}

func NewClient(cfg Config, log zerolog.Logger) *Client {
	if cfg.APIEndpoint == "" {
		cfg.APIEndpoint = defaultAPIEndpoint
	}
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: requestTimeout},
		log:  log,
	}
}

// AuthorizeURL builds the OAuth2 authorization redirect for the login flow.
func (c *Client) AuthorizeURL(state string) string {
	q := url.Values{}
	q.Set("client_id", c.cfg.ClientID)
	q.Set("redirect_uri", c.cfg.RedirectURI)
	q.Set("response_type", "code")
	q.Set("scope", "identify")
	if state != "" {
		q.Set("state", state)
	}
	return c.cfg.APIEndpoint + "/oauth2/authorize?" + q.Encode()
}

// ExchangeCode trades an OAuth2 authorization code for an access token.
func (c *Client) ExchangeCode(ctx context.Context, code string) (string, error) {
	form := url.Values{}
	form.Set("client_id", c.cfg.ClientID)
	form.Set("client_secret", c.cfg.ClientSecret)
	form.Set("grant_type", "authorization_code")
	form.Set("code", code)
	form.Set("redirect_uri", c.cfg.RedirectURI)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.APIEndpoint+"/oauth2/token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("exchange code: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var body struct {
		AccessToken string `json:"access_token"`
	}
	if err := c.do(req, &body); err != nil {
		return "", fmt.Errorf("exchange code: %w", err)
	}
	if body.AccessToken == "" {
		return "", fmt.Errorf("exchange code: empty access token")
	}
	return body.AccessToken, nil
}

type userPayload struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
}

// Identify fetches the authenticated user's identity with their access token.
func (c *Client) Identify(ctx context.Context, accessToken string) (*domain.Actor, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.APIEndpoint+"/users/@me", nil)
	if err != nil {
		return nil, fmt.Errorf("identify: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	var user userPayload
	if err := c.do(req, &user); err != nil {
		return nil, fmt.Errorf("identify: %w", err)
	}

	return &domain.Actor{
		ID:        user.ID,
		Username:  user.Username,
		AvatarURL: avatarURL(user.ID, user.Avatar),
	}, nil
}

type memberPayload struct {
	Nick  string      `json:"nick"`
	Roles []string    `json:"roles"`
	User  userPayload `json:"user"`
}

// MemberRoles returns the guild role ids held by actorID. A user who is not a
// guild member yields an empty set, not an error.
func (c *Client) MemberRoles(ctx context.Context, actorID string) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		fmt.Sprintf("%s/guilds/%s/members/%s", c.cfg.APIEndpoint, c.cfg.GuildID, actorID), nil)
	if err != nil {
		return nil, fmt.Errorf("member roles: %w", err)
	}
	req.Header.Set("Authorization", "Bot "+c.cfg.BotToken)

	resp, err := c.http.Do(req)
	if err != nil {
		metrics.IdentityLookupsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("member roles: %w: %v", domain.ErrIdentityLookup, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		metrics.IdentityLookupsTotal.WithLabelValues("miss").Inc()
		return []string{}, nil
	}
	if resp.StatusCode != http.StatusOK {
		metrics.IdentityLookupsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("member roles: %w: status %d", domain.ErrIdentityLookup, resp.StatusCode)
	}

	var member memberPayload
	if err := json.NewDecoder(resp.Body).Decode(&member); err != nil {
		metrics.IdentityLookupsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("member roles: %w: %v", domain.ErrIdentityLookup, err)
	}

	metrics.IdentityLookupsTotal.WithLabelValues("ok").Inc()
	return member.Roles, nil
}

// ListMembers pages through the full guild member list.
func (c *Client) ListMembers(ctx context.Context) ([]ports.GuildMember, error) {
	var members []ports.GuildMember
	after := ""
	for {
		page, err := c.listMembersPage(ctx, after)
		if err != nil {
			return nil, err
		}
		for _, m := range page {
			members = append(members, ports.GuildMember{
				ID:        m.User.ID,
				Username:  m.User.Username,
				Nickname:  m.Nick,
				AvatarURL: avatarURL(m.User.ID, m.User.Avatar),
				RoleIDs:   m.Roles,
			})
		}
		if len(page) < memberPageLimit {
			return members, nil
		}
		after = page[len(page)-1].User.ID
	}
}

func (c *Client) listMembersPage(ctx context.Context, after string) ([]memberPayload, error) {
	u := fmt.Sprintf("%s/guilds/%s/members?limit=%d", c.cfg.APIEndpoint, c.cfg.GuildID, memberPageLimit)
	if after != "" {
		u += "&after=" + url.QueryEscape(after)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	req.Header.Set("Authorization", "Bot "+c.cfg.BotToken)

	var page []memberPayload
	if err := c.do(req, &page); err != nil {
		return nil, fmt.Errorf("list members: %w: %v", domain.ErrIdentityLookup, err)
	}
	return page, nil
}

// do executes req and decodes a 2xx JSON body into out.
func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("discord api status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// avatarURL builds the CDN avatar URL; users without an avatar get none.
func avatarURL(userID, avatarHash string) string {
	if avatarHash == "" {
		return ""
	}
	return fmt.Sprintf("%s/avatars/%s/%s.png", cdnEndpoint, userID, avatarHash)
}
