package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/minicommerce/order-service/internal/models"
)

const userService = "user-lookup"

type UserClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewUserClient(baseURL string) *UserClient {
	return &UserClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// GetUser fetches the profile for a user ID from the user-lookup service.
// It performs exactly one call; retry policy belongs to the caller.
func (c *UserClient) GetUser(ctx context.Context, userID string) (*models.UserProfile, error) {
	endpoint := fmt.Sprintf("%s/users/%s", c.baseURL, url.PathEscape(userID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &EnrichmentError{Service: userService, Kind: KindUnreachable, Err: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &EnrichmentError{Service: userService, Kind: KindUnreachable,
			Err: fmt.Errorf("failed to call user service: %w", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, &EnrichmentError{Service: userService, Kind: KindNotFound,
			Err: fmt.Errorf("user %s not found", userID)}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &EnrichmentError{Service: userService, Kind: KindUnreachable,
			Err: fmt.Errorf("user service returned status %d", resp.StatusCode)}
	}

	var profile models.UserProfile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, &EnrichmentError{Service: userService, Kind: KindMalformed,
			Err: fmt.Errorf("failed to decode response: %w", err)}
	}

	return &profile, nil
}
