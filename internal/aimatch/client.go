// Package aimatch wraps the face recognition service that indexes stored
// report photos and matches sighting photos against them.
package aimatch

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// MatchResult is the recognition service's verdict on a sighting photo.
type MatchResult struct {
	MatchFound   bool    `json:"match_found"`
	Confidence   float64 `json:"confidence"`
	MatchedImage string  `json:"matched_image"`
	FilePath     string  `json:"file_path"`
	Message      string  `json:"message"`
}

// FindMatch submits a sighting photo for face matching. The service takes
// the image as a base64 form field and answers with match/no-match plus a
// confidence score.
func (c *Client) FindMatch(ctx context.Context, photo io.Reader) (*MatchResult, error) {
	raw, err := io.ReadAll(photo)
	if err != nil {
		return nil, fmt.Errorf("failed to read sighting photo: %w", err)
	}

	form := url.Values{}
	form.Set("file_data", base64.StdEncoding.EncodeToString(raw))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/find_match_react_native", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create match request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call face recognition service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("face recognition service returned status %d: %s", resp.StatusCode, string(body))
	}

	var result MatchResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode match response: %w", err)
	}

	return &result, nil
}
