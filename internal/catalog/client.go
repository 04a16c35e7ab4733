// Package catalog implements the client for the remote product catalog API.
// Raw records are validated and normalized at this boundary; nothing
// malformed reaches the rest of the application.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"strings"

	"github.com/storefront-go/storefront/internal/domain"
	"github.com/storefront-go/storefront/pkg/httpclient"
	"github.com/storefront-go/storefront/pkg/validator"
)

const apiName = "catalog"

// Page is one window of a product listing.
type Page struct {
	Products []domain.Product `json:"products"`
	Total    int              `json:"total"`
	Skip     int              `json:"skip"`
	Limit    int              `json:"limit"`
}

// Client queries the catalog API. Requests are issued once; any non-2xx
// status or transport failure is returned as an error with no partial data.
type Client struct {
	http    *httpclient.Client
	baseURL string
	logger  *slog.Logger
}

// NewClient creates a catalog client for the given base URL.
func NewClient(httpClient *httpclient.Client, baseURL string, logger *slog.Logger) *Client {
	return &Client{
		http:    httpClient,
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logger,
	}
}

// listResponse mirrors the catalog API's paginated listing shape.
type listResponse struct {
	Products []domain.Product `json:"products"`
	Total    int              `json:"total"`
	Skip     int              `json:"skip"`
	Limit    int              `json:"limit"`
}

// Products fetches a plain listing window.
func (c *Client) Products(ctx context.Context, limit, skip int) (*Page, error) {
	return c.fetchPage(ctx, c.baseURL+"/products?"+windowQuery(limit, skip))
}

// ProductsByCategory fetches a category-scoped listing window.
func (c *Client) ProductsByCategory(ctx context.Context, category string, limit, skip int) (*Page, error) {
	u := fmt.Sprintf("%s/products/category/%s?%s", c.baseURL, url.PathEscape(category), windowQuery(limit, skip))
	return c.fetchPage(ctx, u)
}

// Search fetches a search result window for the given query.
func (c *Client) Search(ctx context.Context, query string, limit, skip int) (*Page, error) {
	q := url.Values{}
	q.Set("q", query)
	q.Set("limit", strconv.Itoa(limit))
	q.Set("skip", strconv.Itoa(skip))
	return c.fetchPage(ctx, c.baseURL+"/products/search?"+q.Encode())
}

// Categories fetches the list of category names.
func (c *Client) Categories(ctx context.Context) ([]string, error) {
	resp, err := c.http.Get(ctx, c.baseURL+"/products/category-list")
	if err != nil {
		return nil, fmt.Errorf("fetch categories: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, httpclient.ErrorFromResponse(resp, apiName)
	}
	defer func() { _ = resp.Body.Close() }()

	var categories []string
	if err := json.NewDecoder(resp.Body).Decode(&categories); err != nil {
		return nil, fmt.Errorf("decode categories: %w", err)
	}

	return categories, nil
}

// fetchPage issues one GET and decodes the listing response, dropping any
// record that fails schema validation.
func (c *Client) fetchPage(ctx context.Context, u string) (*Page, error) {
	resp, err := c.http.Get(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("fetch products: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, httpclient.ErrorFromResponse(resp, apiName)
	}
	defer func() { _ = resp.Body.Close() }()

	var list listResponse
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return nil, fmt.Errorf("decode products: %w", err)
	}

	products := make([]domain.Product, 0, len(list.Products))
	for _, p := range list.Products {
		p.Normalize()
		if err := validator.Validate(p); err != nil {
			c.logger.WarnContext(ctx, "dropping malformed catalog record",
				slog.Int64("product_id", p.ID),
				slog.String("error", err.Error()),
			)
			continue
		}
		products = append(products, p)
	}

	return &Page{
		Products: products,
		Total:    list.Total,
		Skip:     list.Skip,
		Limit:    list.Limit,
	}, nil
}

func windowQuery(limit, skip int) string {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	q.Set("skip", strconv.Itoa(skip))
	return q.Encode()
}
