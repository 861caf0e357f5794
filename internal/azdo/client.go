// Package azdo is a thin client for the Azure DevOps REST API. Each method
// wraps exactly one endpoint; orchestration lives in the clone package.
package azdo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/kazz187/blueprint/pkg/cerr"
)

const apiVersion = "7.1"

type Client struct {
	orgURL string
	token  string
	client *http.Client
}

type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client, mainly for tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.client = hc
	}
}

// NewClient creates a client for one Azure DevOps organization. orgURL is
// the organization base URL (https://dev.azure.com/{org}); token is a
// personal access token.
func NewClient(orgURL, token string, opts ...Option) *Client {
	c := &Client{
		orgURL: strings.TrimSuffix(orgURL, "/"),
		token:  token,
		client: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Token returns the configured personal access token. The repository
// replicator needs it to build import service endpoints.
func (c *Client) Token() string {
	return c.token
}

type apiErrorBody struct {
	Message string `json:"message"`
}

// doJSON issues one request and decodes the JSON response into out (when
// out is non-nil). Non-2xx responses are mapped onto cerr codes by status.
func (c *Client) doJSON(ctx context.Context, method, path string, query url.Values, body, out any) error {
	if query == nil {
		query = url.Values{}
	}
	if query.Get("api-version") == "" {
		query.Set("api-version", apiVersion)
	}
	u := c.orgURL + path + "?" + query.Encode()

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return cerr.NewError(cerr.Internal, "failed to encode request", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return cerr.NewError(cerr.Internal, "failed to build request", err)
	}
	req.SetBasicAuth("", c.token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return cerr.NewError(cerr.Unavailable, fmt.Sprintf("%s %s failed", method, path), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.errorFromResponse(method, path, resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return cerr.NewError(cerr.Internal, fmt.Sprintf("failed to decode %s %s response", method, path), err)
	}
	return nil
}

func (c *Client) errorFromResponse(method, path string, resp *http.Response) error {
	code := cerr.NewCodeFromHTTPStatus(resp.StatusCode)
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))

	msg := fmt.Sprintf("%s %s returned %d", method, path, resp.StatusCode)
	var body apiErrorBody
	if err := json.Unmarshal(data, &body); err == nil && body.Message != "" {
		msg = body.Message
	}
	return cerr.NewError(code, msg, nil)
}

// listResponse is the standard {count, value} envelope of list endpoints.
type listResponse[T any] struct {
	Count int `json:"count"`
	Value []T `json:"value"`
}

func escape(s string) string {
	return url.PathEscape(s)
}
