package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Chat endpoint paths. Which one a message goes to is decided per send by
// the caller's lifecycle stage; the paths themselves are fixed contract.
const (
	SalesChatPath   = "/chat"
	AnalystChatPath = "/api/chat-arquitecto"
)

// ErrNotFound reports that the requested campaign does not exist.
var ErrNotFound = errors.New("api: campaign not found")

// RequestError is an application-level failure reported by the backend
// (success:false with an optional message). The message is surfaced to the
// user verbatim; the backend promises no more structure than that.
type RequestError struct {
	Message string
}

func (e *RequestError) Error() string {
	if e.Message == "" {
		return "api: request rejected by server"
	}
	return e.Message
}

// Client talks to the AutoNeura backend. All methods issue a single request
// with no retries; transient failures are the caller's to surface.
type Client struct {
	base *url.URL
	http *http.Client
}

// NewClient creates a Client for the given base URL.
func NewClient(baseURL string, timeout time.Duration) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("api: parsing base URL %q: %w", baseURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("api: base URL %q must include scheme and host", baseURL)
	}
	return &Client{
		base: u,
		http: &http.Client{Timeout: timeout},
	}, nil
}

// ListCampaigns fetches the caller's campaigns in server order.
func (c *Client) ListCampaigns(ctx context.Context) ([]CampaignSummary, error) {
	var out []CampaignSummary
	if err := c.getJSON(ctx, "/api/mis-campanas", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetCampaign fetches the full record for one campaign.
// Returns ErrNotFound when the server answers 404.
func (c *Client) GetCampaign(ctx context.Context, id ID) (CampaignDetail, error) {
	var out CampaignDetail
	path := "/api/campana/" + url.PathEscape(string(id))
	if err := c.getJSON(ctx, path, &out); err != nil {
		return CampaignDetail{}, err
	}
	return out, nil
}

// CreateCampaign submits a full creation payload. A success:false response
// is returned as a *RequestError carrying the server's message verbatim.
func (c *Client) CreateCampaign(ctx context.Context, p CreatePayload) error {
	body, status, err := c.postJSON(ctx, "/api/crear-campana", p)
	if err != nil {
		return err
	}
	var res struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	if jsonErr := json.Unmarshal(body, &res); jsonErr != nil {
		return fmt.Errorf("api: decoding create response (status %d): %w", status, jsonErr)
	}
	if !res.Success {
		return &RequestError{Message: res.Error}
	}
	return nil
}

// UpdateCampaign submits a partial update for the campaign named in the
// payload. Success is a 2xx status; callers should re-fetch rather than
// assume the payload is the new server state.
func (c *Client) UpdateCampaign(ctx context.Context, p UpdatePayload) error {
	if p.ID == "" {
		return errors.New("api: update payload missing campaign id")
	}
	_, status, err := c.postJSON(ctx, "/api/actualizar-campana", p)
	if err != nil {
		return err
	}
	if status < 200 || status > 299 {
		return fmt.Errorf("api: update failed with status %d", status)
	}
	return nil
}

// Chat posts a message to the given chat endpoint path and returns the
// assistant's reply verbatim.
func (c *Client) Chat(ctx context.Context, path, message string) (string, error) {
	body, status, err := c.postJSON(ctx, path, map[string]string{"message": message})
	if err != nil {
		return "", err
	}
	if status < 200 || status > 299 {
		return "", fmt.Errorf("api: chat failed with status %d", status)
	}
	var res struct {
		Response string `json:"response"`
	}
	if jsonErr := json.Unmarshal(body, &res); jsonErr != nil {
		return "", fmt.Errorf("api: decoding chat response: %w", jsonErr)
	}
	return res.Response, nil
}

// Dashboard fetches the server-computed KPI rollup.
func (c *Client) Dashboard(ctx context.Context) (DashboardData, error) {
	var out DashboardData
	if err := c.getJSON(ctx, "/api/dashboard-data", &out); err != nil {
		return DashboardData{}, err
	}
	return out, nil
}

// getJSON issues a GET and decodes a JSON body into out.
func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint(path), nil)
	if err != nil {
		return fmt.Errorf("api: building request for %s: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("api: GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("api: GET %s: unexpected status %d", path, resp.StatusCode)
	}

	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("api: decoding %s response: %w", path, err)
	}
	return nil
}

// postJSON issues a POST with a JSON body and returns the raw response body
// and status. Non-2xx statuses are not an error here; some endpoints encode
// failure in the body and some in the status, so callers decide.
func (c *Client) postJSON(ctx context.Context, path string, payload any) ([]byte, int, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, 0, fmt.Errorf("api: encoding %s payload: %w", path, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(path), bytes.NewReader(raw))
	if err != nil {
		return nil, 0, fmt.Errorf("api: building request for %s: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("api: POST %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("api: reading %s response: %w", path, err)
	}
	return body, resp.StatusCode, nil
}

// endpoint joins the base URL with an API path.
func (c *Client) endpoint(path string) string {
	u := *c.base
	u.Path = strings.TrimRight(u.Path, "/") + path
	return u.String()
}
