// Package identity contains the REST client for the external identity
// provider. The provider owns sign-up, sign-in and sessions; this client
// only reads the user directory.
package identity

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"time"

	"joylist/config"
	"joylist/internal/domain/entity"
	"joylist/internal/domain/service"
	"joylist/internal/errors"

	"golang.org/x/time/rate"
)

const (
	defaultTimeout = 5 * time.Second

	// The provider enforces its own API quota; the outbound throttle keeps
	// bursts of enrichment traffic under it.
	outboundRPS   = 20
	outboundBurst = 40
)

// userPayload is the provider's wire representation of a user.
type userPayload struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	ImageURL  string `json:"image_url"`
}

// Client implements service.IdentityProvider against the provider's REST API.
type Client struct {
	baseURL    string
	apiToken   string
	httpClient *http.Client
	throttle   *rate.Limiter
}

// NewClient is the constructor for Client.
func NewClient(cfg *config.Config) (service.IdentityProvider, error) {
	idCfg := cfg.Identity
	if idCfg == nil || idCfg.BaseURL == "" {
		return nil, errors.New("identity provider configuration is missing")
	}

	timeout := idCfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{
		baseURL:    idCfg.BaseURL,
		apiToken:   idCfg.APIToken,
		httpClient: &http.Client{Timeout: timeout},
		throttle:   rate.NewLimiter(outboundRPS, outboundBurst),
	}, nil
}

// GetUserList fetches the profiles for a set of user IDs in one batch call.
func (c *Client) GetUserList(ctx context.Context, userIDs []string) ([]*entity.UserProfile, error) {
	if len(userIDs) == 0 {
		return []*entity.UserProfile{}, nil
	}

	query := url.Values{}
	for _, id := range userIDs {
		query.Add("user_id", id)
	}

	payloads, err := c.listUsers(ctx, query)
	if err != nil {
		return nil, err
	}

	return toProfiles(payloads), nil
}

// GetUserByUsername fetches a single profile by its public handle.
func (c *Client) GetUserByUsername(ctx context.Context, username string) (*entity.UserProfile, error) {
	query := url.Values{}
	query.Add("username", username)

	payloads, err := c.listUsers(ctx, query)
	if err != nil {
		return nil, err
	}
	if len(payloads) == 0 {
		return nil, service.ErrProviderUserNotFound
	}

	return toProfile(payloads[0]), nil
}

// SearchUsers runs the provider's user search.
func (c *Client) SearchUsers(ctx context.Context, query string) ([]*entity.UserProfile, error) {
	params := url.Values{}
	params.Add("query", query)

	payloads, err := c.listUsers(ctx, params)
	if err != nil {
		return nil, err
	}

	return toProfiles(payloads), nil
}

func (c *Client) listUsers(ctx context.Context, query url.Values) ([]userPayload, error) {
	if err := c.throttle.Wait(ctx); err != nil {
		return nil, errors.Wrap(err, "identity request throttled")
	}

	endpoint := c.baseURL + "/v1/users?" + query.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build identity request")
	}
	req.Header.Set("Authorization", "Bearer "+c.apiToken)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "identity provider unreachable")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))

		return nil, errors.Errorf("identity provider returned %d: %s", resp.StatusCode, string(body))
	}

	var payloads []userPayload
	if err := json.NewDecoder(resp.Body).Decode(&payloads); err != nil {
		return nil, errors.Wrap(err, "malformed identity provider response")
	}

	return payloads, nil
}

func toProfile(payload userPayload) *entity.UserProfile {
	return &entity.UserProfile{
		ID:        payload.ID,
		Username:  payload.Username,
		FirstName: payload.FirstName,
		LastName:  payload.LastName,
		ImageURL:  payload.ImageURL,
	}
}

func toProfiles(payloads []userPayload) []*entity.UserProfile {
	profiles := make([]*entity.UserProfile, 0, len(payloads))
	for _, payload := range payloads {
		profiles = append(profiles, toProfile(payload))
	}

	return profiles
}
