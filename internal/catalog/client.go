package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/Sammk21/ecommerce-admin/internal/auth"
)

// ErrNotFound is returned when a requested product does not exist.
var ErrNotFound = errors.New("product not found")

// RemoteError wraps a failed catalog API call.
type RemoteError struct {
	Op     string
	Status int // zero when the request never got a response
	Err    error
}

func (e *RemoteError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("catalog %s: status %d", e.Op, e.Status)
	}
	return fmt.Sprintf("catalog %s: %v", e.Op, e.Err)
}

func (e *RemoteError) Unwrap() error { return e.Err }

// Client calls the remote catalog REST API. Every operation takes the session
// credential explicitly.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a catalog Client for the given base URL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// listEnvelope is the catalog's wire shape for List responses.
type listEnvelope struct {
	Data struct {
		Products []Product `json:"products"`
		Total    int       `json:"total"`
		Pages    int       `json:"pages"`
	} `json:"data"`
}

// getEnvelope is the catalog's wire shape for single-product responses.
type getEnvelope struct {
	Data Product `json:"data"`
}

// List fetches one page of products. Any failure — network, non-2xx status,
// malformed body — degrades to an empty page rather than propagating, so the
// list view always renders.
func (c *Client) List(ctx context.Context, cred auth.Credential, params ListParams) ListResult {
	params = params.Normalize()

	q := url.Values{}
	q.Set("page", strconv.Itoa(params.Page))
	q.Set("limit", strconv.Itoa(params.Limit))
	q.Set("sort", params.Sort)
	q.Set("order", params.Order)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/products?"+q.Encode(), nil)
	if err != nil {
		log.Printf("catalog list: build request: %v", err)
		return ListResult{}
	}
	c.setHeaders(req, cred)

	resp, err := c.http.Do(req)
	if err != nil {
		log.Printf("catalog list: %v", err)
		return ListResult{}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("catalog list: status %d", resp.StatusCode)
		return ListResult{}
	}

	var env listEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		log.Printf("catalog list: decode response: %v", err)
		return ListResult{}
	}

	return ListResult{
		Products:   env.Data.Products,
		Total:      env.Data.Total,
		TotalPages: env.Data.Pages,
	}
}

// Get fetches a single product. Returns ErrNotFound when the catalog reports
// 404, a *RemoteError on any other failure.
func (c *Client) Get(ctx context.Context, cred auth.Credential, id string) (*Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/products/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, &RemoteError{Op: "get", Err: err}
	}
	c.setHeaders(req, cred)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &RemoteError{Op: "get", Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrNotFound
	case resp.StatusCode != http.StatusOK:
		return nil, &RemoteError{Op: "get", Status: resp.StatusCode}
	}

	var env getEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, &RemoteError{Op: "get", Err: fmt.Errorf("decode response: %w", err)}
	}
	return &env.Data, nil
}

// Create submits a new product record.
func (c *Client) Create(ctx context.Context, cred auth.Credential, rec Record) error {
	return c.send(ctx, cred, "create", http.MethodPost, c.baseURL+"/products", &rec)
}

// Update replaces the editable fields of an existing product.
func (c *Client) Update(ctx context.Context, cred auth.Credential, id string, rec Record) error {
	return c.send(ctx, cred, "update", http.MethodPut, c.baseURL+"/products/"+url.PathEscape(id), &rec)
}

// Delete removes a product from the catalog.
func (c *Client) Delete(ctx context.Context, cred auth.Credential, id string) error {
	return c.send(ctx, cred, "delete", http.MethodDelete, c.baseURL+"/products/"+url.PathEscape(id), nil)
}

// send performs a mutating call and maps any failure to *RemoteError.
func (c *Client) send(ctx context.Context, cred auth.Credential, op, method, target string, body interface{}) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return &RemoteError{Op: op, Err: fmt.Errorf("encode request: %w", err)}
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return &RemoteError{Op: op, Err: err}
	}
	c.setHeaders(req, cred)

	resp, err := c.http.Do(req)
	if err != nil {
		return &RemoteError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain a little of the body for the log; the caller only needs the status.
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		log.Printf("catalog %s: status %d: %s", op, resp.StatusCode, snippet)
		return &RemoteError{Op: op, Status: resp.StatusCode}
	}
	return nil
}

func (c *Client) setHeaders(req *http.Request, cred auth.Credential) {
	req.Header.Set("Authorization", cred.Header())
	req.Header.Set("Content-Type", "application/json")
}
