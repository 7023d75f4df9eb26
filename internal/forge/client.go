// Package forge defines the protocol types and client for hosting-platform communication.
package forge

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/kilupskalvis/cmr/internal/models"
)

// HTTPClient implements ClientInterface over HTTP.
type HTTPClient struct {
	baseURL    string
	repoName   string
	token      string
	httpClient *http.Client
}

// NewHTTPClient creates an HTTP-based forge client.
func NewHTTPClient(baseURL, repoName, token string) *HTTPClient {
	return &HTTPClient{
		baseURL:    baseURL,
		repoName:   repoName,
		token:      token,
		httpClient: &http.Client{},
	}
}

func (c *HTTPClient) repoURL(path string) string {
	return fmt.Sprintf("%s/api/v1/repos/%s%s", c.baseURL, c.repoName, path)
}

func (c *HTTPClient) getJSON(ctx context.Context, url string, respBody interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decodeError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(respBody); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}

// FileHistory returns historical change records for a file.
func (c *HTTPClient) FileHistory(ctx context.Context, filePath string, window int) ([]*models.ChangeRecord, error) {
	q := url.Values{}
	q.Set("path", filePath)
	q.Set("window", strconv.Itoa(window))

	var resp FileHistoryResponse
	if err := c.getJSON(ctx, c.repoURL("/history?"+q.Encode()), &resp); err != nil {
		return nil, err
	}
	return resp.Records, nil
}

// ChangeSet returns metadata about a change-set.
func (c *HTTPClient) ChangeSet(ctx context.Context, changeSetID string) (*models.ChangeSetInfo, error) {
	var info models.ChangeSetInfo
	if err := c.getJSON(ctx, c.repoURL("/changesets/"+url.PathEscape(changeSetID)), &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// RemoteError represents a structured error from the forge.
type RemoteError struct {
	Code    string
	Message string
	Status  int
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("forge error (%d): %s — %s", e.Status, e.Code, e.Message)
}

func decodeError(resp *http.Response) error {
	var errResp ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&errResp); err != nil {
		return &RemoteError{
			Code:    "unknown",
			Message: fmt.Sprintf("HTTP %d", resp.StatusCode),
			Status:  resp.StatusCode,
		}
	}

	return &RemoteError{
		Code:    errResp.Error,
		Message: errResp.Message,
		Status:  resp.StatusCode,
	}
}
