package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"lightfeedback-cli/internal/model"

	"go.uber.org/zap"
)

// ClientConfig holds configuration for creating a Client.
type ClientConfig struct {
	// ServerURL is the base URL of the feedback backend (e.g. "http://localhost:8000").
	ServerURL string
	// HTTPClient is used for all requests. If nil, http.DefaultClient is used.
	// No client-side timeout is imposed beyond the transport's own.
	HTTPClient *http.Client
	// Logger receives request/response debug events. If nil, a nop logger is used.
	Logger *zap.Logger
}

// Client talks to the feedback backend over HTTP/JSON. All methods are safe
// for concurrent use; the client holds no per-user state.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

func NewClient(config ClientConfig) (*Client, error) {
	if strings.TrimSpace(config.ServerURL) == "" {
		return nil, fmt.Errorf("api: ServerURL is required")
	}
	if _, err := url.Parse(config.ServerURL); err != nil {
		return nil, fmt.Errorf("api: invalid ServerURL %q: %w", config.ServerURL, err)
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		baseURL:    strings.TrimRight(config.ServerURL, "/"),
		httpClient: httpClient,
		logger:     logger,
	}, nil
}

// Login authenticates a user and returns their role. The backend's rejection
// detail ("User not found", "Incorrect password") travels back as *Error.
func (c *Client) Login(ctx context.Context, username, password string) (model.Role, error) {
	body, err := c.doRequest(ctx, http.MethodPost, "/login", map[string]string{
		"username": username,
		"password": password,
	})
	if err != nil {
		return "", err
	}

	var response struct {
		Role string `json:"role"`
	}
	if err := json.Unmarshal(body, &response); err != nil {
		return "", fmt.Errorf("api: failed to parse login response: %w", err)
	}
	role, ok := model.ParseRole(response.Role)
	if !ok {
		return "", fmt.Errorf("api: backend returned unknown role %q", response.Role)
	}
	return role, nil
}

// Signup registers a new account. The backend enforces role validity and
// username uniqueness.
func (c *Client) Signup(ctx context.Context, username, password string, role model.Role) error {
	_, err := c.doRequest(ctx, http.MethodPost, "/signup", map[string]string{
		"username": username,
		"password": password,
		"role":     string(role),
	})
	return err
}

// ListOptions are the optional query parameters of the feedback list endpoint.
// The zero value requests the backend's defaults (all records, newest first).
type ListOptions struct {
	// Acknowledged filters to read (true) or unread (false) records when set.
	Acknowledged *bool
	// SortAscending requests oldest-first ordering; default is newest first.
	SortAscending bool
	// Manager restricts an employee's list to records from one manager.
	Manager string
}

func (o ListOptions) query() url.Values {
	q := url.Values{}
	if o.Acknowledged != nil {
		q.Set("acknowledged", strconv.FormatBool(*o.Acknowledged))
	}
	if o.SortAscending {
		q.Set("sort", "asc")
	}
	if o.Manager != "" {
		q.Set("manager", o.Manager)
	}
	return q
}

// ListFeedback fetches all records addressed to or from username. The shape of
// each record depends on the user's role: managers see "to", employees see
// "from" (nil when anonymous).
func (c *Client) ListFeedback(ctx context.Context, username string, opts ListOptions) ([]model.FeedbackRecord, error) {
	path := "/feedback/" + url.PathEscape(username)
	if q := opts.query(); len(q) > 0 {
		path += "?" + q.Encode()
	}
	body, err := c.doRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var records []model.FeedbackRecord
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, fmt.Errorf("api: failed to parse feedback list: %w", err)
	}
	return records, nil
}

// Acknowledge marks a record as read. Acknowledging an already-acknowledged
// record succeeds (the backend reports "Already acknowledged").
func (c *Client) Acknowledge(ctx context.Context, feedbackID int) error {
	_, err := c.doRequest(ctx, http.MethodPatch, fmt.Sprintf("/feedback/%d/acknowledge", feedbackID), nil)
	return err
}

// SetComment attaches the employee's comment to an acknowledged record.
func (c *Client) SetComment(ctx context.Context, feedbackID int, comment string) error {
	_, err := c.doRequest(ctx, http.MethodPatch, fmt.Sprintf("/feedback/%d/comment", feedbackID), map[string]string{
		"comment": comment,
	})
	return err
}

// CreateFeedback submits a new record and returns the backend-assigned id.
func (c *Client) CreateFeedback(ctx context.Context, draft model.FeedbackDraft) (int, error) {
	body, err := c.doRequest(ctx, http.MethodPost, "/feedback", draft)
	if err != nil {
		return 0, err
	}

	var response struct {
		FeedbackID int `json:"feedback_id"`
	}
	if err := json.Unmarshal(body, &response); err != nil {
		return 0, fmt.Errorf("api: failed to parse create response: %w", err)
	}
	return response.FeedbackID, nil
}

// UpdateFeedback replaces the editable fields of an existing record. The
// backend rejects updates from anyone but the original sender.
func (c *Client) UpdateFeedback(ctx context.Context, feedbackID int, draft model.FeedbackDraft) error {
	_, err := c.doRequest(ctx, http.MethodPut, fmt.Sprintf("/feedback/%d", feedbackID), draft)
	return err
}

// ManagerSummary fetches the read-only sentiment aggregate for a manager.
func (c *Client) ManagerSummary(ctx context.Context, username string) (model.Summary, error) {
	body, err := c.doRequest(ctx, http.MethodGet, "/dashboard/manager/"+url.PathEscape(username), nil)
	if err != nil {
		return model.Summary{}, err
	}

	var summary model.Summary
	if err := json.Unmarshal(body, &summary); err != nil {
		return model.Summary{}, fmt.Errorf("api: failed to parse manager summary: %w", err)
	}
	return summary, nil
}

// EmployeeTimeline fetches an employee's feedback newest first.
func (c *Client) EmployeeTimeline(ctx context.Context, username string) (model.Timeline, error) {
	body, err := c.doRequest(ctx, http.MethodGet, "/dashboard/employee/"+url.PathEscape(username), nil)
	if err != nil {
		return model.Timeline{}, err
	}

	var timeline model.Timeline
	if err := json.Unmarshal(body, &timeline); err != nil {
		return model.Timeline{}, fmt.Errorf("api: failed to parse employee timeline: %w", err)
	}
	return timeline, nil
}

// doRequest performs one HTTP round-trip. 2xx returns the raw body; any other
// status decodes the backend's `{"detail": ...}` shape into *Error so callers
// can surface the message verbatim.
func (c *Client) doRequest(ctx context.Context, method, path string, requestBody any) ([]byte, error) {
	var bodyReader io.Reader
	if requestBody != nil {
		encoded, err := json.Marshal(requestBody)
		if err != nil {
			return nil, fmt.Errorf("api: failed to encode request body: %w", err)
		}
		bodyReader = bytes.NewReader(encoded)
	}

	request, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("api: failed to create request: %w", err)
	}
	if requestBody != nil {
		request.Header.Set("Content-Type", "application/json")
	}

	response, err := c.httpClient.Do(request)
	if err != nil {
		c.logger.Debug("request failed", zap.String("method", method), zap.String("path", path), zap.Error(err))
		return nil, fmt.Errorf("api: request to %s %s failed: %w", method, path, err)
	}
	defer response.Body.Close()

	responseBody, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf("api: failed to read response body: %w", err)
	}

	c.logger.Debug("request done",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", response.StatusCode),
		zap.Int("bytes", len(responseBody)))

	if response.StatusCode >= 200 && response.StatusCode < 300 {
		return responseBody, nil
	}

	apiErr := &Error{StatusCode: response.StatusCode}
	if jsonErr := json.Unmarshal(responseBody, apiErr); jsonErr != nil || apiErr.Detail == "" {
		// Non-JSON or detail-less error body; keep a trimmed excerpt so the
		// failure is still diagnosable.
		apiErr.Detail = strings.TrimSpace(string(responseBody))
		if len(apiErr.Detail) > 200 {
			apiErr.Detail = apiErr.Detail[:200]
		}
	}
	return nil, apiErr
}
