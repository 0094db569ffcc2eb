package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/minicommerce/order-service/internal/models"
)

const productService = "product-lookup"

type ProductClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewProductClient(baseURL string) *ProductClient {
	return &ProductClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// GetProduct fetches name and price for a product code from the
// product-lookup service.
func (c *ProductClient) GetProduct(ctx context.Context, productCode string) (*models.ProductInfo, error) {
	endpoint := fmt.Sprintf("%s/products/%s", c.baseURL, url.PathEscape(productCode))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &EnrichmentError{Service: productService, Kind: KindUnreachable, Err: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &EnrichmentError{Service: productService, Kind: KindUnreachable,
			Err: fmt.Errorf("failed to call product service: %w", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, &EnrichmentError{Service: productService, Kind: KindNotFound,
			Err: fmt.Errorf("product %s not found", productCode)}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &EnrichmentError{Service: productService, Kind: KindUnreachable,
			Err: fmt.Errorf("product service returned status %d", resp.StatusCode)}
	}

	var product models.ProductInfo
	if err := json.NewDecoder(resp.Body).Decode(&product); err != nil {
		return nil, &EnrichmentError{Service: productService, Kind: KindMalformed,
			Err: fmt.Errorf("failed to decode response: %w", err)}
	}

	return &product, nil
}
