package hubspot

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/faces-agency/talent-sync/internal/config"
)

// HTTPDoer is the interface for executing HTTP requests.
// *http.Client satisfies it; tests substitute fakes.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client is the HubSpot CRM API client. Transient failures are NOT
// retried here: the single-submission path surfaces them to the caller
// and the batch path isolates them per chunk.
type Client struct {
	baseURL     string
	accessToken string
	httpClient  HTTPDoer
}

// NewClient creates a new HubSpot API client
func NewClient(cfg config.HubSpotConfig) *Client {
	return &Client{
		baseURL:     cfg.BaseURL,
		accessToken: cfg.AccessToken,
		httpClient:  &http.Client{Timeout: cfg.Timeout()},
	}
}

// SetHTTPClient sets a custom HTTP client (useful for testing)
func (c *Client) SetHTTPClient(client HTTPDoer) {
	c.httpClient = client
}

// doRequest performs an authenticated request to the HubSpot API
func (c *Client) doRequest(ctx context.Context, method, endpoint string, body interface{}) ([]byte, error) {
	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{Status: resp.StatusCode, Body: string(respBody)}
	}

	return respBody, nil
}

// APIError is a non-success HTTP response from the CRM, carrying the raw
// error body for per-batch error reporting.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error (status %d): %s", e.Status, e.Body)
}

// CreateContact creates a new contact and returns its id.
func (c *Client) CreateContact(ctx context.Context, properties map[string]string) (string, error) {
	respBody, err := c.doRequest(ctx, http.MethodPost, "/crm/v3/objects/contacts", Contact{Properties: properties})
	if err != nil {
		return "", err
	}

	var created contactObject
	if err := json.Unmarshal(respBody, &created); err != nil {
		return "", fmt.Errorf("failed to parse create response: %w", err)
	}
	return created.ID, nil
}

// UpdateContact patches an existing contact's properties.
func (c *Client) UpdateContact(ctx context.Context, contactID string, properties map[string]string) error {
	endpoint := fmt.Sprintf("/crm/v3/objects/contacts/%s", contactID)
	_, err := c.doRequest(ctx, http.MethodPatch, endpoint, Contact{Properties: properties})
	return err
}

// Search forwards an arbitrary contact search and returns the raw CRM
// response body. Used by the relay endpoint, which passes the caller's
// search request through untouched.
func (c *Client) Search(ctx context.Context, req SearchRequest) (json.RawMessage, error) {
	respBody, err := c.doRequest(ctx, http.MethodPost, "/crm/v3/objects/contacts/search", req)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(respBody), nil
}

// SearchContactByPhone looks up an existing contact whose mobile or
// WhatsApp number equals the given value. Filter groups are OR-combined,
// so a match on either property counts. Returns the first match's id,
// or "" when no contact matches.
func (c *Client) SearchContactByPhone(ctx context.Context, phone string) (string, error) {
	search := SearchRequest{
		FilterGroups: []FilterGroup{
			{Filters: []Filter{{PropertyName: "faces_mobile", Operator: "EQ", Value: phone}}},
			{Filters: []Filter{{PropertyName: "faces_whatsapp", Operator: "EQ", Value: phone}}},
		},
	}

	respBody, err := c.doRequest(ctx, http.MethodPost, "/crm/v3/objects/contacts/search", search)
	if err != nil {
		return "", err
	}

	var result searchResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("failed to parse search response: %w", err)
	}

	if len(result.Results) > 0 {
		return result.Results[0].ID, nil
	}
	return "", nil
}

// BatchCreateContacts creates one chunk of contacts in a single bulk call
// and returns the number of created objects echoed back.
func (c *Client) BatchCreateContacts(ctx context.Context, contacts []Contact) (int, error) {
	respBody, err := c.doRequest(ctx, http.MethodPost, "/crm/v3/objects/contacts/batch/create",
		batchCreateRequest{Inputs: contacts})
	if err != nil {
		return 0, err
	}

	var result batchCreateResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return 0, fmt.Errorf("failed to parse batch create response: %w", err)
	}
	return len(result.Results), nil
}
