// Package client talks to the catalog admin HTTP API.
package client

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

	"github.com/shopspring/decimal"
	"github.com/yourorg/catalogadmin/internal/apperrors"
	"github.com/yourorg/catalogadmin/internal/models"
)

// ErrEmptyResponse is returned when a successful status carries no body.
var ErrEmptyResponse = errors.New("empty response body")

// ErrMalformedResponse is returned when a response decodes but lacks the
// expected resource.
var ErrMalformedResponse = errors.New("malformed response")

type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New returns a client for the API rooted at baseURL, for example
// "http://localhost:8080/api/v1". A nil httpClient uses a 30s timeout client.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

type productJSON struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       string   `json:"price"`
	Stock       int      `json:"stock"`
	CategoryID  int64    `json:"category_id"`
	Currency    string   `json:"currency"`
	Featured    bool     `json:"featured"`
	Images      []string `json:"images"`
	CreatedAt   string   `json:"created_at"`
	UpdatedAt   string   `json:"updated_at"`
}

type productEnvelope struct {
	Product *productJSON `json:"product"`
}

type categoriesEnvelope struct {
	Categories []struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	} `json:"categories"`
}

type errorEnvelope struct {
	Error struct {
		Message string `json:"message"`
		Param   string `json:"param"`
	} `json:"error"`
}

func (c *Client) GetProduct(ctx context.Context, productID string) (*models.Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.productURL(productID), nil)
	if err != nil {
		return nil, err
	}

	var env productEnvelope
	if err := c.do(req, "get product", resource{"product", productID}, &env); err != nil {
		return nil, err
	}
	return env.toProduct()
}

func (c *Client) ListCategories(ctx context.Context) ([]models.Category, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/categories", nil)
	if err != nil {
		return nil, err
	}

	var env categoriesEnvelope
	if err := c.do(req, "list categories", resource{"categories", ""}, &env); err != nil {
		return nil, err
	}
	if env.Categories == nil {
		return nil, fmt.Errorf("list categories: %w", ErrMalformedResponse)
	}

	out := make([]models.Category, len(env.Categories))
	for i, cat := range env.Categories {
		out[i] = models.Category{ID: cat.ID, Name: cat.Name}
	}
	return out, nil
}

// UpdateProduct sends payload as a multipart PATCH. credential, when set, is
// sent as a bearer token.
func (c *Client) UpdateProduct(ctx context.Context, productID string, payload *UpdatePayload, credential string) (*models.Product, error) {
	body, contentType, err := payload.Encode()
	if err != nil {
		return nil, fmt.Errorf("encode payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, c.productURL(productID), body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", contentType)
	if credential != "" {
		req.Header.Set("Authorization", "Bearer "+credential)
	}

	var env productEnvelope
	if err := c.do(req, "update product", resource{"product", productID}, &env); err != nil {
		return nil, err
	}
	return env.toProduct()
}

func (c *Client) productURL(productID string) string {
	return c.baseURL + "/products/" + url.PathEscape(productID)
}

type resource struct {
	name string
	id   string
}

func (c *Client) do(req *http.Request, op string, res resource, out any) error {
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return apperrors.NewTimeoutError(op)
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s: read body: %w", op, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(op, res, resp.StatusCode, data)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return fmt.Errorf("%s: %w", op, ErrEmptyResponse)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%s: decode: %w", op, err)
	}
	return nil
}

func statusError(op string, res resource, status int, body []byte) error {
	var env errorEnvelope
	_ = json.Unmarshal(body, &env)
	msg := env.Error.Message
	if msg == "" {
		msg = http.StatusText(status)
	}

	switch status {
	case http.StatusNotFound:
		return apperrors.NewNotFoundError(res.name, res.id)
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return apperrors.NewValidationError(env.Error.Param, msg)
	case http.StatusUnauthorized, http.StatusForbidden:
		return apperrors.NewUnauthorizedError(msg)
	case http.StatusServiceUnavailable:
		return apperrors.NewServiceUnavailableError(msg)
	case http.StatusGatewayTimeout:
		return apperrors.NewTimeoutError(op)
	default:
		return fmt.Errorf("%s: unexpected status %d: %s", op, status, msg)
	}
}

func (e productEnvelope) toProduct() (*models.Product, error) {
	if e.Product == nil {
		return nil, fmt.Errorf("product: %w", ErrMalformedResponse)
	}
	p := e.Product

	price, err := decimal.NewFromString(p.Price)
	if err != nil {
		return nil, fmt.Errorf("product price %q: %w", p.Price, err)
	}

	out := &models.Product{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       price,
		Stock:       p.Stock,
		CategoryID:  p.CategoryID,
		Currency:    p.Currency,
		Featured:    p.Featured,
		Images:      p.Images,
	}
	out.CreatedAt, _ = time.Parse(time.RFC3339, p.CreatedAt)
	out.UpdatedAt, _ = time.Parse(time.RFC3339, p.UpdatedAt)
	return out, nil
}
