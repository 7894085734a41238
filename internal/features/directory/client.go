package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Directory is a read-only lookup of external user metadata. FindByID
// returns (nil, nil) when the directory has no record for the user.
type Directory interface {
	FindByID(ctx context.Context, userID int64) (*Record, error)
}

// Client talks to the external user directory over HTTP.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
	}
}

// Enabled reports whether a directory endpoint is configured. The check-user
// action degrades to "not found" when it is not.
func (c *Client) Enabled() bool {
	return c.baseURL != ""
}

func (c *Client) FindByID(ctx context.Context, userID int64) (*Record, error) {
	if !c.Enabled() {
		return nil, nil
	}

	url := fmt.Sprintf("%s/users/%d", c.baseURL, userID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build directory request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("directory request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("directory returned status %d", resp.StatusCode)
	}

	var record Record
	if err := json.NewDecoder(resp.Body).Decode(&record); err != nil {
		return nil, fmt.Errorf("decode directory response: %w", err)
	}

	return &record, nil
}
